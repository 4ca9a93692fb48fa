package repository

import (
	"context"

	"flight-query-service/internal/domain/entity"
)

// SearchLogRepository defines the interface for the search audit trail
type SearchLogRepository interface {
	Save(ctx context.Context, log *entity.SearchLog) error
	FindByRequestID(ctx context.Context, requestID string) (*entity.SearchLog, error)
	FindRecent(ctx context.Context, limit int) ([]*entity.SearchLog, error)
}
