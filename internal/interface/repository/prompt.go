package repository

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"text/template"
	"time"

	"flight-query-service/internal/domain/entity"
)

//go:embed prompts/extractor_prompt.tmpl
var extractorPromptText string

var extractorPrompt = template.Must(template.New("extractor").Parse(extractorPromptText))

// BuildExtractorPrompt renders the extraction prompt for query with today as the reference date.
func BuildExtractorPrompt(query string, today time.Time) (string, error) {
	var buf bytes.Buffer
	err := extractorPrompt.Execute(&buf, struct {
		Today string
		Query string
	}{
		Today: today.Format("2006-01-02"),
		Query: query,
	})
	if err != nil {
		return "", fmt.Errorf("render extractor prompt: %w", err)
	}
	return buf.String(), nil
}

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// ParseModelOutput decodes the first JSON object found in a model reply.
// Models wrap JSON in prose or code fences; everything outside the braces is ignored.
func ParseModelOutput(content string) (*entity.DraftExtraction, error) {
	raw := jsonObjectPattern.FindString(content)
	if raw == "" {
		return nil, entity.ErrInvalidModelOutput
	}
	var draft entity.DraftExtraction
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidModelOutput, err)
	}
	return &draft, nil
}
