// internal/domain/entity/extraction.go
package entity

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// DraftExtraction is the raw output of the upstream extractor for one query.
// Date fields are still natural-language expressions.
type DraftExtraction struct {
	From           string `json:"from"`
	To             string `json:"to"`
	DepDate        string `json:"depdate"`
	RetDate        string `json:"retdate"`
	Adults         *int   `json:"adults"`
	Children       *int   `json:"children"`
	Infants        *int   `json:"infants"`
	Cabin          string `json:"cabin"`
	AirlineInclude string `json:"airline_include"`
}

// UnmarshalJSON accepts what language models actually emit: null for absent
// fields, counts as numbers or numeric strings, and extra keys.
func (d *DraftExtraction) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*d = DraftExtraction{
		From:           flexString(raw["from"]),
		To:             flexString(raw["to"]),
		DepDate:        flexString(raw["depdate"]),
		RetDate:        flexString(raw["retdate"]),
		Adults:         flexInt(raw["adults"]),
		Children:       flexInt(raw["children"]),
		Infants:        flexInt(raw["infants"]),
		Cabin:          flexString(raw["cabin"]),
		AirlineInclude: flexString(raw["airline_include"]),
	}
	return nil
}

func flexString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func flexInt(raw json.RawMessage) *int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		n := int(f)
		return &n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return &n
		}
	}
	return nil
}

// ExtractionRecord is the working record for one request: extractor fields
// plus the resolved dates. It lives for a single request and is never stored.
type ExtractionRecord struct {
	Origin           string
	Destination      string
	RawDepartureDate string
	RawReturnDate    string
	DepartureDate    string // resolved YYYY-MM-DD, empty when unresolved
	ReturnDate       string // resolved YYYY-MM-DD, empty when unresolved
	Adults           *int
	Children         *int
	Infants          *int
	Cabin            string
	Airline          string
}

// NewExtractionRecord copies the draft into a fresh record with no dates resolved.
func NewExtractionRecord(d *DraftExtraction) *ExtractionRecord {
	if d == nil {
		return &ExtractionRecord{}
	}
	return &ExtractionRecord{
		Origin:           d.From,
		Destination:      d.To,
		RawDepartureDate: d.DepDate,
		RawReturnDate:    d.RetDate,
		Adults:           d.Adults,
		Children:         d.Children,
		Infants:          d.Infants,
		Cabin:            d.Cabin,
		Airline:          d.AirlineInclude,
	}
}

// IntValue dereferences a count, falling back to def when absent.
func IntValue(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
