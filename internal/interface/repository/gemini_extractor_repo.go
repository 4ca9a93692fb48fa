package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"flight-query-service/internal/domain/entity"
	"flight-query-service/pkg/logger"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiExtractor extracts flight fields with a Google Gemini model
type GeminiExtractor struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
	logger  logger.Logger
}

// NewGeminiExtractor creates a new Gemini extractor
func NewGeminiExtractor(ctx context.Context, apiKey, modelName string, timeout time.Duration, logger logger.Logger) (*GeminiExtractor, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini: %w", entity.ErrExtractorNotConfigured)
	}
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0)
	model.ResponseMIMEType = "application/json"

	return &GeminiExtractor{
		client:  client,
		model:   model,
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Name returns the backend name
func (e *GeminiExtractor) Name() string {
	return "gemini"
}

// Extract sends the rendered prompt and parses the model reply
func (e *GeminiExtractor) Extract(ctx context.Context, query string, today time.Time) (*entity.DraftExtraction, error) {
	prompt, err := BuildExtractorPrompt(query, today)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini: no candidates: %w", entity.ErrInvalidModelOutput)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	e.logger.Debug("Gemini reply received", "length", sb.Len())
	return ParseModelOutput(sb.String())
}

// Close closes the underlying Gemini client
func (e *GeminiExtractor) Close() error {
	return e.client.Close()
}
