package repository

import (
	"context"

	"flight-query-service/internal/domain/entity"
)

// AirportRepository defines the interface for airport lookups
type AirportRepository interface {
	GetByAirportCode(ctx context.Context, code string) (*entity.Airport, error)
	FindByCityName(ctx context.Context, cityName string) (*entity.Airport, error)
}
