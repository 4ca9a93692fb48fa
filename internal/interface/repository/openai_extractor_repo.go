package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"flight-query-service/internal/domain/entity"
	"flight-query-service/internal/domain/repository"
	"flight-query-service/pkg/logger"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// OpenAIConfig holds the chat completions endpoint settings
type OpenAIConfig struct {
	APIKey    string
	OrgID     string
	ProjectID string
	BaseURL   string
	Model     string
	Timeout   time.Duration
}

// OpenAIExtractor extracts flight fields through an OpenAI-compatible chat completions API
type OpenAIExtractor struct {
	cfg        OpenAIConfig
	httpClient *http.Client
	logger     logger.Logger
}

// NewOpenAIExtractor creates a new OpenAI extractor
func NewOpenAIExtractor(cfg OpenAIConfig, logger logger.Logger) (repository.QueryExtractor, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("openai: %w", entity.ErrExtractorNotConfigured)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultOpenAIBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)

	return &OpenAIExtractor{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Name returns the backend name
func (e *OpenAIExtractor) Name() string {
	return "openai"
}

// Extract sends the rendered prompt and parses the model reply
func (e *OpenAIExtractor) Extract(ctx context.Context, query string, today time.Time) (*entity.DraftExtraction, error) {
	prompt, err := BuildExtractorPrompt(query, today)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(chatRequest{
		Model:       e.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	url := strings.TrimRight(e.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.cfg.APIKey)
	if e.cfg.OrgID != "" {
		req.Header.Set("OpenAI-Organization", e.cfg.OrgID)
	}
	if e.cfg.ProjectID != "" {
		req.Header.Set("OpenAI-Project", e.cfg.ProjectID)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		e.logger.Error("OpenAI request failed", "status", resp.StatusCode, "body", string(respBody))
		return nil, fmt.Errorf("openai api error: status=%d body=%s", resp.StatusCode, string(respBody))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return nil, fmt.Errorf("openai: no choices: %w", entity.ErrInvalidModelOutput)
	}

	content := strings.TrimSpace(out.Choices[0].Message.Content)
	e.logger.Debug("OpenAI reply received", "model", e.cfg.Model, "length", len(content))
	return ParseModelOutput(content)
}
