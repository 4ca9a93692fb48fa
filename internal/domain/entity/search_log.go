// internal/domain/entity/search_log.go
package entity

import (
	"time"
)

// SearchLog is the audit entry written for every /search call
type SearchLog struct {
	ID            string          `bson:"_id,omitempty"`
	RequestID     string          `bson:"requestId"` // unique index
	Query         string          `bson:"query"`
	Status        string          `bson:"status"`
	MissingFields []string        `bson:"missingFields,omitempty"`
	Parsed        *ParsedEcho     `bson:"parsed,omitempty"`
	Payload       *BookingPayload `bson:"payload,omitempty"`
	ErrorDetail   string          `bson:"errorDetail,omitempty"`
	DurationMs    int64           `bson:"durationMs"`
	CreatedAt     time.Time       `bson:"createdAt"`
}
