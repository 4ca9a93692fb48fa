// internal/domain/entity/payload.go
package entity

// Segment is one leg of the itinerary handed to the booking system
type Segment struct {
	DepFrom string `json:"depfrom" bson:"depfrom"`
	ArrTo   string `json:"arrto" bson:"arrto"`
	DepDate string `json:"depdate" bson:"depdate"`
}

// BookingPayload is the search request for the downstream booking system
type BookingPayload struct {
	Adults         int       `json:"adults" bson:"adults"`
	Children       int       `json:"children" bson:"children"`
	Infants        int       `json:"infants" bson:"infants"`
	Cabin          string    `json:"cabin" bson:"cabin"`
	Stops          bool      `json:"stops" bson:"stops"`
	AirlineInclude string    `json:"airline_include" bson:"airlineInclude"`
	Ages           []int     `json:"ages" bson:"ages"`
	Segments       []Segment `json:"segments" bson:"segments"`
}

// IsRoundTrip reports whether a return segment is present
func (p *BookingPayload) IsRoundTrip() bool {
	return len(p.Segments) > 1
}
