package entity

import (
	"time"

	"gorm.io/gorm"
)

// Airport maps an IATA airport code to its city
type Airport struct {
	ID          uint
	AirportCode string
	AirportName string
	CityCode    string
	CityName    string
	TzName      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt
}
