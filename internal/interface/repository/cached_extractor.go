package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"flight-query-service/internal/domain/entity"
	"flight-query-service/internal/domain/repository"
	"flight-query-service/pkg/logger"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedExtractor is a read-through LRU cache in front of another extractor.
// Entries are keyed by the reference day and the normalized query, so relative
// phrases never leak across days. Failures are not cached.
type CachedExtractor struct {
	next   repository.QueryExtractor
	cache  *lru.Cache[string, entity.DraftExtraction]
	logger logger.Logger
}

// NewCachedExtractor wraps next with an LRU cache holding size entries
func NewCachedExtractor(next repository.QueryExtractor, size int, logger logger.Logger) (*CachedExtractor, error) {
	cache, err := lru.New[string, entity.DraftExtraction](size)
	if err != nil {
		return nil, fmt.Errorf("create extraction cache: %w", err)
	}
	return &CachedExtractor{next: next, cache: cache, logger: logger}, nil
}

// Name returns the wrapped backend name
func (c *CachedExtractor) Name() string {
	return c.next.Name()
}

// Extract returns a cached draft or delegates to the wrapped extractor
func (c *CachedExtractor) Extract(ctx context.Context, query string, today time.Time) (*entity.DraftExtraction, error) {
	key := today.Format("2006-01-02") + "|" + strings.Join(strings.Fields(strings.ToLower(query)), " ")

	if draft, ok := c.cache.Get(key); ok {
		c.logger.Debug("Extraction cache hit", "key", key)
		return &draft, nil
	}

	draft, err := c.next.Extract(ctx, query, today)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, *draft)
	return draft, nil
}

// Len returns the number of cached entries
func (c *CachedExtractor) Len() int {
	return c.cache.Len()
}
