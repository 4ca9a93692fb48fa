package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"flight-query-service/internal/domain/entity"
	"flight-query-service/internal/domain/repository"
	"flight-query-service/pkg/dateresolver"
	"flight-query-service/pkg/logger"
	"flight-query-service/pkg/metrics"

	"github.com/google/uuid"
)

type requestIDKey struct{}

// ContextWithRequestID attaches the request id used to key the search log.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request id, or a fresh one when none was attached.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

var iataCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// SearchProcessor turns a free-text query into either a booking payload or a
// list of follow-up questions.
type SearchProcessor struct {
	extractor     repository.QueryExtractor
	airportRepo   repository.AirportRepository
	searchLogRepo repository.SearchLogRepository
	resolver      *dateresolver.Resolver
	checker       *CompletenessChecker
	metrics       *metrics.Metrics
	logger        logger.Logger
	now           func() time.Time
}

// NewSearchProcessor creates a new search processor. airportRepo,
// searchLogRepo and metrics may be nil.
func NewSearchProcessor(
	extractor repository.QueryExtractor,
	airportRepo repository.AirportRepository,
	searchLogRepo repository.SearchLogRepository,
	resolver *dateresolver.Resolver,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *SearchProcessor {
	return &SearchProcessor{
		extractor:     extractor,
		airportRepo:   airportRepo,
		searchLogRepo: searchLogRepo,
		resolver:      resolver,
		checker:       NewCompletenessChecker(),
		metrics:       metrics,
		logger:        logger,
		now:           time.Now,
	}
}

// WithClock replaces the clock that defines "today".
func (sp *SearchProcessor) WithClock(now func() time.Time) *SearchProcessor {
	sp.now = now
	return sp
}

// Search processes one query. Resolution failures surface as missing fields;
// only extractor failures are returned as errors.
func (sp *SearchProcessor) Search(ctx context.Context, query string) (*entity.SearchResponse, error) {
	start := time.Now()
	requestID := RequestIDFromContext(ctx)
	log := sp.logger.With("requestId", requestID)

	if strings.TrimSpace(query) == "" {
		return nil, entity.ErrEmptyQuery
	}

	today := dateresolver.Anchor(sp.now())
	log.Info("Processing search query", "query", query, "today", today.Format(dateresolver.Layout))

	// Extract fields
	extractStart := time.Now()
	draft, err := sp.extractor.Extract(ctx, query, today)
	sp.metrics.ObserveExtraction(time.Since(extractStart).Seconds())
	if err != nil {
		log.Error("Extraction failed", "extractor", sp.extractor.Name(), "error", err)
		sp.metrics.ObserveError("extract")
		sp.metrics.ObserveSearch(entity.StatusFailed)
		sp.saveLog(ctx, log, &entity.SearchLog{
			RequestID:   requestID,
			Query:       query,
			Status:      entity.StatusFailed,
			ErrorDetail: err.Error(),
			DurationMs:  time.Since(start).Milliseconds(),
		})
		return nil, fmt.Errorf("extract query: %w", err)
	}
	log.Debug("Extracted draft", "from", draft.From, "to", draft.To, "depdate", draft.DepDate, "retdate", draft.RetDate)

	// Build record and map city names to airport codes
	record := entity.NewExtractionRecord(draft)
	record.Origin = sp.airportCode(ctx, log, record.Origin)
	record.Destination = sp.airportCode(ctx, log, record.Destination)

	// Resolve dates; the return date is anchored on the departure
	sp.resolveDates(record, today)

	result := sp.checker.Check(record)

	var resp *entity.SearchResponse
	if !result.Complete {
		resp = &entity.SearchResponse{
			Status:        entity.StatusIncomplete,
			Message:       "Missing fields: " + strings.Join(result.Missing, ", "),
			MissingFields: result.Missing,
			FollowUp:      result.Prompts,
			Parsed:        &result.Parsed,
		}
		log.Info("Search query incomplete", "missing", result.Missing)
	} else {
		resp = &entity.SearchResponse{
			Status:  entity.StatusComplete,
			Payload: AssemblePayload(result.Record),
		}
		log.Info("Search query complete",
			"from", result.Record.Origin,
			"to", result.Record.Destination,
			"depdate", result.Record.DepartureDate,
			"retdate", result.Record.ReturnDate)
	}

	sp.metrics.ObserveSearch(resp.Status)
	sp.saveLog(ctx, log, &entity.SearchLog{
		RequestID:     requestID,
		Query:         query,
		Status:        resp.Status,
		MissingFields: resp.MissingFields,
		Parsed:        resp.Parsed,
		Payload:       resp.Payload,
		DurationMs:    time.Since(start).Milliseconds(),
	})

	return resp, nil
}

func (sp *SearchProcessor) resolveDates(record *entity.ExtractionRecord, today time.Time) {
	if IsMissing(record.RawDepartureDate) {
		return
	}
	departure, ok := sp.resolver.Resolve(record.RawDepartureDate, today)
	if !ok {
		return
	}
	record.DepartureDate = departure.String()

	if IsMissing(record.RawReturnDate) {
		return
	}
	if ret, ok := sp.resolver.ResolveReturn(record.RawReturnDate, departure); ok {
		record.ReturnDate = ret.String()
	}
}

// airportCode swaps a city name for its airport code when the lookup table knows it.
func (sp *SearchProcessor) airportCode(ctx context.Context, log logger.Logger, value string) string {
	v := strings.TrimSpace(value)
	if sp.airportRepo == nil || IsMissing(v) || iataCodePattern.MatchString(v) {
		return value
	}
	airport, err := sp.airportRepo.FindByCityName(ctx, v)
	if err != nil {
		log.Debug("Airport lookup failed, keeping raw value", "city", v, "error", err)
		return value
	}
	return airport.AirportCode
}

func (sp *SearchProcessor) saveLog(ctx context.Context, log logger.Logger, entry *entity.SearchLog) {
	if sp.searchLogRepo == nil {
		return
	}
	if err := sp.searchLogRepo.Save(ctx, entry); err != nil {
		sp.metrics.ObserveError("search_log")
		log.Warn("Failed to save search log", "error", err)
	}
}
