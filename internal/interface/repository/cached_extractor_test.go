package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"flight-query-service/internal/domain/entity"
	"flight-query-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingExtractor struct {
	calls int
	err   error
}

func (c *countingExtractor) Extract(_ context.Context, query string, _ time.Time) (*entity.DraftExtraction, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return &entity.DraftExtraction{From: "DEL", DepDate: query}, nil
}

func (c *countingExtractor) Name() string { return "counting" }

func TestCachedExtractorHitsOnSameDayAndQuery(t *testing.T) {
	next := &countingExtractor{}
	c, err := NewCachedExtractor(next, 8, logger.NewNop())
	require.NoError(t, err)

	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	ctx := context.Background()

	first, err := c.Extract(ctx, "DEL tomorrow", day)
	require.NoError(t, err)
	second, err := c.Extract(ctx, "  del   TOMORROW ", day)
	require.NoError(t, err)

	assert.Equal(t, 1, next.calls)
	assert.Equal(t, first.DepDate, second.DepDate)
	assert.Equal(t, "counting", c.Name())

	second.From = "BOM"
	third, err := c.Extract(ctx, "DEL tomorrow", day)
	require.NoError(t, err)
	assert.Equal(t, "DEL", third.From, "callers must get their own copy")
}

func TestCachedExtractorKeysOnDay(t *testing.T) {
	next := &countingExtractor{}
	c, err := NewCachedExtractor(next, 8, logger.NewNop())
	require.NoError(t, err)

	ctx := context.Background()
	_, _ = c.Extract(ctx, "tomorrow", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	_, _ = c.Extract(ctx, "tomorrow", time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, 2, next.calls)
	assert.Equal(t, 2, c.Len())
}

func TestCachedExtractorDoesNotCacheErrors(t *testing.T) {
	next := &countingExtractor{err: errors.New("timeout")}
	c, err := NewCachedExtractor(next, 8, logger.NewNop())
	require.NoError(t, err)

	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	_, err = c.Extract(context.Background(), "q", day)
	assert.Error(t, err)
	_, err = c.Extract(context.Background(), "q", day)
	assert.Error(t, err)

	assert.Equal(t, 2, next.calls)
	assert.Zero(t, c.Len())
}

func TestNewCachedExtractorRejectsBadSize(t *testing.T) {
	_, err := NewCachedExtractor(&countingExtractor{}, 0, logger.NewNop())
	assert.Error(t, err)
}
