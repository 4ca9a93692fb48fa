package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftExtractionTolerantDecode(t *testing.T) {
	var d DraftExtraction
	err := json.Unmarshal([]byte(`{
		"from": "DEL",
		"to": null,
		"depdate": "tomorrow",
		"retdate": 20250610,
		"adults": "3",
		"children": 1.0,
		"infants": "none",
		"cabin": "Business",
		"extra": {"ignored": true}
	}`), &d)
	require.NoError(t, err)

	assert.Equal(t, "DEL", d.From)
	assert.Equal(t, "", d.To)
	assert.Equal(t, "20250610", d.RetDate)
	require.NotNil(t, d.Adults)
	assert.Equal(t, 3, *d.Adults)
	require.NotNil(t, d.Children)
	assert.Equal(t, 1, *d.Children)
	assert.Nil(t, d.Infants)
	assert.Equal(t, "", d.AirlineInclude)
}

func TestNewExtractionRecord(t *testing.T) {
	n := 2
	r := NewExtractionRecord(&DraftExtraction{From: "DEL", To: "DXB", DepDate: "tomorrow", RetDate: "after 3 days", Adults: &n, AirlineInclude: "EK"})
	assert.Equal(t, "DEL", r.Origin)
	assert.Equal(t, "tomorrow", r.RawDepartureDate)
	assert.Equal(t, "after 3 days", r.RawReturnDate)
	assert.Empty(t, r.DepartureDate)
	assert.Equal(t, 2, IntValue(r.Adults, 1))
	assert.Equal(t, 0, IntValue(r.Children, 0))
	assert.Equal(t, "EK", r.Airline)

	assert.NotNil(t, NewExtractionRecord(nil))
}
