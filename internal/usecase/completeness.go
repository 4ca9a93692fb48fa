package usecase

import (
	"strings"

	"flight-query-service/internal/domain/entity"
)

// Follow-up questions, one per missing field.
const (
	PromptFrom    = "✈️ Where are you flying *from*?"
	PromptTo      = "🛬 Where are you flying *to*?"
	PromptDepDate = "📅 When do you want to *depart*?"
)

const (
	defaultAdults = 1
	defaultCabin  = "economy"
)

// Placeholders the extractor emits instead of leaving a field empty.
var missingSentinels = map[string]struct{}{
	"":                              {},
	"none":                          {},
	"null":                          {},
	"not provided":                  {},
	"departure city (not provided)": {},
	"arrival city (not provided)":   {},
}

// IsMissing reports whether an extracted value carries no information.
func IsMissing(value string) bool {
	_, ok := missingSentinels[strings.ToLower(strings.TrimSpace(value))]
	return ok
}

// CompletenessChecker decides whether a record is ready to become a booking payload.
type CompletenessChecker struct{}

// NewCompletenessChecker creates a new completeness checker
func NewCompletenessChecker() *CompletenessChecker {
	return &CompletenessChecker{}
}

// Check reports missing required fields in the order origin, destination,
// departure, with a follow-up prompt for each. A departure that was given but
// could not be resolved counts as missing. The return date never matters here.
func (c *CompletenessChecker) Check(record *entity.ExtractionRecord) entity.CompletenessResult {
	if record == nil {
		record = &entity.ExtractionRecord{}
	}

	var missing, prompts []string
	if IsMissing(record.Origin) {
		missing = append(missing, entity.FieldFrom)
		prompts = append(prompts, PromptFrom)
	}
	if IsMissing(record.Destination) {
		missing = append(missing, entity.FieldTo)
		prompts = append(prompts, PromptTo)
	}
	if IsMissing(record.RawDepartureDate) || record.DepartureDate == "" {
		missing = append(missing, entity.FieldDepDate)
		prompts = append(prompts, PromptDepDate)
	}

	if len(missing) > 0 {
		return entity.CompletenessResult{
			Missing: missing,
			Prompts: prompts,
			Parsed: entity.ParsedEcho{
				From:            optional(record.Origin),
				To:              optional(record.Destination),
				DepDate:         optional(record.RawDepartureDate),
				ResolvedDepDate: optional(record.DepartureDate),
			},
		}
	}

	return entity.CompletenessResult{
		Complete: true,
		Record:   withDefaults(record),
	}
}

// withDefaults returns a copy of record with passenger counts, cabin and airline filled in.
func withDefaults(record *entity.ExtractionRecord) *entity.ExtractionRecord {
	out := *record

	adults := entity.IntValue(record.Adults, defaultAdults)
	children := entity.IntValue(record.Children, 0)
	infants := entity.IntValue(record.Infants, 0)
	out.Adults, out.Children, out.Infants = &adults, &children, &infants

	out.Cabin = strings.ToLower(strings.TrimSpace(record.Cabin))
	if IsMissing(out.Cabin) {
		out.Cabin = defaultCabin
	}
	out.Airline = strings.TrimSpace(record.Airline)
	if IsMissing(out.Airline) {
		out.Airline = ""
	}
	return &out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
