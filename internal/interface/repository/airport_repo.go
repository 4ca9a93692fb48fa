package repository

import (
	"context"
	"strings"
	"time"

	"flight-query-service/internal/domain/entity"
	"flight-query-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormAirportRepository implements the AirportRepository interface
type GormAirportRepository struct {
	db *gorm.DB
}

// NewGormAirportRepository creates a new GORM airport repository
func NewGormAirportRepository(db *gorm.DB) repository.AirportRepository {
	return &GormAirportRepository{
		db: db,
	}
}

// AirportList GORM model for database mapping
type AirportList struct {
	ID          uint           `gorm:"primaryKey"`
	AirportCode string         `gorm:"column:airportcode;unique"`
	AirportName string         `gorm:"column:airport_name"`
	CityCode    string         `gorm:"column:citycode"`
	CityName    string         `gorm:"column:cityname"`
	TzName      string         `gorm:"column:tzname"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides the default table name
func (AirportList) TableName() string {
	return "m_airport_list"
}

// GetByAirportCode finds an airport by its IATA code
func (r *GormAirportRepository) GetByAirportCode(ctx context.Context, code string) (*entity.Airport, error) {
	var row AirportList
	result := r.db.WithContext(ctx).
		Where("airportcode = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	return row.toEntity(), nil
}

// FindByCityName finds the main airport of a city, case-insensitively.
// Rows whose airport code equals the city code win over secondary airports.
func (r *GormAirportRepository) FindByCityName(ctx context.Context, cityName string) (*entity.Airport, error) {
	var row AirportList
	result := r.db.WithContext(ctx).
		Where("LOWER(cityname) = ?", strings.ToLower(strings.TrimSpace(cityName))).
		Order("CASE WHEN airportcode = citycode THEN 0 ELSE 1 END").
		First(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	return row.toEntity(), nil
}

func (a AirportList) toEntity() *entity.Airport {
	return &entity.Airport{
		ID:          a.ID,
		AirportCode: a.AirportCode,
		AirportName: a.AirportName,
		CityCode:    a.CityCode,
		CityName:    a.CityName,
		TzName:      a.TzName,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
		DeletedAt:   a.DeletedAt,
	}
}
