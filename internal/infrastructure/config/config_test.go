package config

import (
	"testing"
	"time"

	"flight-query-service/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "EXTRACTOR", "EXTRACTOR_TIMEOUT", "OPENAI_API_KEY", "OPENAI_MODEL", "MONGODB_DSN", "POSTGRES_URI", "EXTRACTION_CACHE_SIZE"} {
		t.Setenv(k, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, ExtractorOpenAI, cfg.Extractor)
	assert.Equal(t, "gpt-4o", cfg.OpenAIModel)
	assert.Equal(t, 30*time.Second, cfg.ExtractorTimeout)
	assert.Equal(t, 256, cfg.ExtractionCacheSize)
	assert.Empty(t, cfg.MongoURI)
	assert.Empty(t, cfg.PostgresURI)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("EXTRACTOR", "Gemini")
	t.Setenv("EXTRACTOR_TIMEOUT", "45")
	t.Setenv("READ_TIMEOUT", "2m")
	t.Setenv("OPENAI_API_KEY", "  sk-abc  ")
	t.Setenv("EXTRACTION_CACHE_SIZE", "not-a-number")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, ExtractorGemini, cfg.Extractor)
	assert.Equal(t, 45*time.Second, cfg.ExtractorTimeout)
	assert.Equal(t, 2*time.Minute, cfg.ReadTimeout)
	assert.Equal(t, "sk-abc", cfg.OpenAIAPIKey)
	assert.Equal(t, 256, cfg.ExtractionCacheSize)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"openai with key", Config{Extractor: ExtractorOpenAI, OpenAIAPIKey: "k"}, false},
		{"openai without key", Config{Extractor: ExtractorOpenAI}, true},
		{"gemini with key", Config{Extractor: ExtractorGemini, GeminiAPIKey: "k"}, false},
		{"gemini without key", Config{Extractor: ExtractorGemini, OpenAIAPIKey: "k"}, true},
		{"unknown backend", Config{Extractor: "claude"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.cfg.Extractor != "claude" {
				assert.ErrorIs(t, err, entity.ErrExtractorNotConfigured)
			}
		})
	}
}
