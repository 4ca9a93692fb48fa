// Package bootstrap wires configuration into the search processor and its
// optional backing stores. Both the server and the CLI start here.
package bootstrap

import (
	"context"
	"fmt"

	"flight-query-service/internal/domain/repository"
	"flight-query-service/internal/infrastructure/config"
	"flight-query-service/internal/infrastructure/persistence"
	repo "flight-query-service/internal/interface/repository"
	"flight-query-service/internal/usecase"
	"flight-query-service/pkg/dateresolver"
	"flight-query-service/pkg/logger"
	"flight-query-service/pkg/metrics"
)

// App holds the wired processor and the resources that must be released on exit.
type App struct {
	Processor *usecase.SearchProcessor
	Extractor repository.QueryExtractor
	closers   []func(context.Context) error
	logger    logger.Logger
}

// NewExtractor builds the configured extractor backend, wrapped in the LRU cache
// when EXTRACTION_CACHE_SIZE is positive. The returned closer is never nil.
func NewExtractor(ctx context.Context, cfg *config.Config, log logger.Logger) (repository.QueryExtractor, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	var (
		ext    repository.QueryExtractor
		closer = noop
		err    error
	)
	switch cfg.Extractor {
	case config.ExtractorGemini:
		g, gerr := repo.NewGeminiExtractor(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.ExtractorTimeout, log)
		if gerr != nil {
			return nil, noop, gerr
		}
		ext = g
		closer = func(context.Context) error { return g.Close() }
	default:
		ext, err = repo.NewOpenAIExtractor(repo.OpenAIConfig{
			APIKey:    cfg.OpenAIAPIKey,
			OrgID:     cfg.OpenAIOrgID,
			ProjectID: cfg.OpenAIProjectID,
			BaseURL:   cfg.OpenAIBaseURL,
			Model:     cfg.OpenAIModel,
			Timeout:   cfg.ExtractorTimeout,
		}, log)
		if err != nil {
			return nil, noop, err
		}
	}

	if cfg.ExtractionCacheSize > 0 {
		cached, err := repo.NewCachedExtractor(ext, cfg.ExtractionCacheSize, log)
		if err != nil {
			_ = closer(ctx)
			return nil, noop, err
		}
		ext = cached
	}
	return ext, closer, nil
}

// New builds the application. MongoDB and PostgreSQL are connected only when
// configured; a connection failure is fatal because the operator asked for it.
func New(ctx context.Context, cfg *config.Config, m *metrics.Metrics, log logger.Logger) (*App, error) {
	app := &App{logger: log}

	ext, closeExt, err := NewExtractor(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("build extractor: %w", err)
	}
	app.Extractor = ext
	app.closers = append(app.closers, closeExt)

	var searchLogRepo repository.SearchLogRepository
	if cfg.MongoURI != "" {
		log.Info("Connecting to MongoDB")
		client, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoUser, cfg.MongoPassword)
		if err != nil {
			app.Close(ctx)
			return nil, err
		}
		app.closers = append(app.closers, client.Disconnect)
		searchLogRepo = repo.NewMongoSearchLogRepository(client.Database(cfg.MongoDB))
	}

	var airportRepo repository.AirportRepository
	if cfg.PostgresURI != "" {
		log.Info("Connecting to PostgreSQL")
		db, err := persistence.NewPostgresDB(cfg.PostgresURI)
		if err != nil {
			app.Close(ctx)
			return nil, err
		}
		if sqlDB, err := db.DB(); err == nil {
			app.closers = append(app.closers, func(context.Context) error { return sqlDB.Close() })
		}
		airportRepo = repo.NewGormAirportRepository(db)
	}

	resolver := dateresolver.New(
		dateresolver.WithLogger(log),
		dateresolver.WithMatchHook(m.ObserveResolution),
	)
	app.Processor = usecase.NewSearchProcessor(ext, airportRepo, searchLogRepo, resolver, m, log)
	return app, nil
}

// Close releases resources in reverse order of acquisition
func (a *App) Close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			a.logger.Error("Failed to release resource", "error", err)
		}
	}
	a.closers = nil
}
