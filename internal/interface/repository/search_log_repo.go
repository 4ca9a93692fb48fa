package repository

import (
	"context"
	"time"

	"flight-query-service/internal/domain/entity"
	"flight-query-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSearchLogRepository implements SearchLogRepository
type MongoSearchLogRepository struct {
	collection *mongo.Collection
}

// NewMongoSearchLogRepository creates a new search log repository
func NewMongoSearchLogRepository(db *mongo.Database) repository.SearchLogRepository {
	collection := db.Collection("search_logs")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Create unique index on requestId
	collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"requestId": 1},
		Options: options.Index().SetUnique(true),
	})

	// Create index on createdAt for recent queries
	collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.M{"createdAt": -1},
	})

	return &MongoSearchLogRepository{
		collection: collection,
	}
}

// Save upserts a search log keyed by request ID
func (r *MongoSearchLogRepository) Save(ctx context.Context, log *entity.SearchLog) error {
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}
	if log.ID == "" {
		log.ID = primitive.NewObjectID().Hex()
	}

	updateDoc := bson.M{
		"query":         log.Query,
		"status":        log.Status,
		"missingFields": log.MissingFields,
		"parsed":        log.Parsed,
		"payload":       log.Payload,
		"errorDetail":   log.ErrorDetail,
		"durationMs":    log.DurationMs,
		"createdAt":     log.CreatedAt,
	}

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"requestId": log.RequestID},
		bson.M{
			"$set":         updateDoc,
			"$setOnInsert": bson.M{"_id": log.ID},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

// FindByRequestID finds a search log by request ID
func (r *MongoSearchLogRepository) FindByRequestID(ctx context.Context, requestID string) (*entity.SearchLog, error) {
	var log entity.SearchLog
	err := r.collection.FindOne(ctx, bson.M{"requestId": requestID}).Decode(&log)
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// FindRecent returns the newest search logs first
func (r *MongoSearchLogRepository) FindRecent(ctx context.Context, limit int) ([]*entity.SearchLog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []*entity.SearchLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
