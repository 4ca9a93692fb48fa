package repository

import (
	"context"
	"time"

	"flight-query-service/internal/domain/entity"
)

// QueryExtractor turns a free-text flight query into draft fields.
// today is the reference date given to the model for relative phrases.
type QueryExtractor interface {
	Extract(ctx context.Context, query string, today time.Time) (*entity.DraftExtraction, error)
	Name() string
}
