package usecase

import (
	"strings"

	"flight-query-service/internal/domain/entity"
)

// AssemblePayload builds the booking search request from a complete record.
// A resolved return date adds the reverse segment.
func AssemblePayload(record *entity.ExtractionRecord) *entity.BookingPayload {
	origin := strings.TrimSpace(record.Origin)
	destination := strings.TrimSpace(record.Destination)

	segments := []entity.Segment{{
		DepFrom: origin,
		ArrTo:   destination,
		DepDate: record.DepartureDate,
	}}
	if record.ReturnDate != "" {
		segments = append(segments, entity.Segment{
			DepFrom: destination,
			ArrTo:   origin,
			DepDate: record.ReturnDate,
		})
	}

	return &entity.BookingPayload{
		Adults:         entity.IntValue(record.Adults, defaultAdults),
		Children:       entity.IntValue(record.Children, 0),
		Infants:        entity.IntValue(record.Infants, 0),
		Cabin:          record.Cabin,
		Stops:          false,
		AirlineInclude: record.Airline,
		Ages:           []int{},
		Segments:       segments,
	}
}
