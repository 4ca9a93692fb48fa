package entity

import "errors"

var (
	// ErrEmptyQuery is returned when the search query is blank.
	ErrEmptyQuery = errors.New("missing 'query'")
	// ErrInvalidModelOutput is returned when the extractor reply holds no JSON object.
	ErrInvalidModelOutput = errors.New("model output contains no JSON object")
	// ErrExtractorNotConfigured is returned when no API key is set for the selected extractor.
	ErrExtractorNotConfigured = errors.New("extractor not configured")
)
