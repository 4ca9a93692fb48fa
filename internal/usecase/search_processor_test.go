package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"flight-query-service/internal/domain/entity"
	"flight-query-service/pkg/dateresolver"
	"flight-query-service/pkg/logger"
	"flight-query-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExtractor struct {
	draft *entity.DraftExtraction
	err   error
	today time.Time
	calls int
}

func (f *fakeExtractor) Extract(_ context.Context, _ string, today time.Time) (*entity.DraftExtraction, error) {
	f.calls++
	f.today = today
	if f.err != nil {
		return nil, f.err
	}
	d := *f.draft
	return &d, nil
}

func (f *fakeExtractor) Name() string { return "fake" }

type fakeAirportRepo struct {
	byCity map[string]string
}

func (f *fakeAirportRepo) GetByAirportCode(_ context.Context, code string) (*entity.Airport, error) {
	return &entity.Airport{AirportCode: code}, nil
}

func (f *fakeAirportRepo) FindByCityName(_ context.Context, city string) (*entity.Airport, error) {
	code, ok := f.byCity[city]
	if !ok {
		return nil, errors.New("record not found")
	}
	return &entity.Airport{AirportCode: code, CityName: city}, nil
}

type fakeSearchLogRepo struct {
	mu   sync.Mutex
	logs []*entity.SearchLog
	err  error
}

func (f *fakeSearchLogRepo) Save(_ context.Context, log *entity.SearchLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs = append(f.logs, log)
	return f.err
}

func (f *fakeSearchLogRepo) FindByRequestID(_ context.Context, id string) (*entity.SearchLog, error) {
	for _, l := range f.logs {
		if l.RequestID == id {
			return l, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeSearchLogRepo) FindRecent(_ context.Context, limit int) ([]*entity.SearchLog, error) {
	return f.logs, nil
}

func fixedClock(s string) func() time.Time {
	t, err := time.Parse(dateresolver.Layout, s)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t.Add(15 * time.Hour) }
}

func newTestProcessor(ext *fakeExtractor, logs *fakeSearchLogRepo, m *metrics.Metrics) *SearchProcessor {
	sp := NewSearchProcessor(ext, nil, nil, dateresolver.New(), m, logger.NewNop())
	if logs != nil {
		sp.searchLogRepo = logs
	}
	return sp.WithClock(fixedClock("2025-06-01"))
}

func TestSearchIncompleteEchoesResolvedDeparture(t *testing.T) {
	ext := &fakeExtractor{draft: &entity.DraftExtraction{From: "DEL", DepDate: "tomorrow"}}
	sp := newTestProcessor(ext, nil, nil)

	resp, err := sp.Search(context.Background(), "flight from delhi tomorrow")
	require.NoError(t, err)

	assert.Equal(t, entity.StatusIncomplete, resp.Status)
	assert.Equal(t, []string{entity.FieldTo}, resp.MissingFields)
	assert.Equal(t, []string{PromptTo}, resp.FollowUp)
	assert.Equal(t, "Missing fields: to", resp.Message)
	require.NotNil(t, resp.Parsed)
	assert.Equal(t, "DEL", *resp.Parsed.From)
	assert.Nil(t, resp.Parsed.To)
	assert.Equal(t, "tomorrow", *resp.Parsed.DepDate)
	require.NotNil(t, resp.Parsed.ResolvedDepDate)
	assert.Equal(t, "2025-06-02", *resp.Parsed.ResolvedDepDate)
	assert.Nil(t, resp.Payload)
	assert.Equal(t, "2025-06-01", ext.today.Format(dateresolver.Layout))
}

func TestSearchCompleteRoundTrip(t *testing.T) {
	ext := &fakeExtractor{draft: &entity.DraftExtraction{
		From:    "DEL",
		To:      "DXB",
		DepDate: "day after tomorrow",
		RetDate: "after 10 days",
	}}
	sp := newTestProcessor(ext, nil, nil)

	resp, err := sp.Search(context.Background(), "DEL to DXB day after tomorrow, back after 10 days")
	require.NoError(t, err)

	assert.Equal(t, entity.StatusComplete, resp.Status)
	require.NotNil(t, resp.Payload)
	require.Len(t, resp.Payload.Segments, 2)
	assert.Equal(t, entity.Segment{DepFrom: "DEL", ArrTo: "DXB", DepDate: "2025-06-03"}, resp.Payload.Segments[0])
	assert.Equal(t, entity.Segment{DepFrom: "DXB", ArrTo: "DEL", DepDate: "2025-06-13"}, resp.Payload.Segments[1])
	assert.Equal(t, 1, resp.Payload.Adults)
	assert.Equal(t, "economy", resp.Payload.Cabin)
}

func TestSearchMissingOrder(t *testing.T) {
	ext := &fakeExtractor{draft: &entity.DraftExtraction{To: "DXB", DepDate: "None"}}
	resp, err := newTestProcessor(ext, nil, nil).Search(context.Background(), "to dubai")
	require.NoError(t, err)

	assert.Equal(t, []string{entity.FieldFrom, entity.FieldDepDate}, resp.MissingFields)
	assert.Equal(t, []string{PromptFrom, PromptDepDate}, resp.FollowUp)
	assert.Equal(t, "Missing fields: from, depdate", resp.Message)
}

func TestSearchUnresolvableReturnIsDropped(t *testing.T) {
	ext := &fakeExtractor{draft: &entity.DraftExtraction{From: "DEL", To: "DXB", DepDate: "tomorrow", RetDate: "someday"}}
	resp, err := newTestProcessor(ext, nil, nil).Search(context.Background(), "q")
	require.NoError(t, err)

	assert.Equal(t, entity.StatusComplete, resp.Status)
	assert.Len(t, resp.Payload.Segments, 1)
}

func TestSearchReturnNotResolvedWithoutDeparture(t *testing.T) {
	ext := &fakeExtractor{draft: &entity.DraftExtraction{From: "DEL", To: "DXB", DepDate: "someday", RetDate: "2025-07-01"}}
	resp, err := newTestProcessor(ext, nil, nil).Search(context.Background(), "q")
	require.NoError(t, err)

	assert.Equal(t, entity.StatusIncomplete, resp.Status)
	assert.Equal(t, []string{entity.FieldDepDate}, resp.MissingFields)
}

func TestSearchEmptyQuery(t *testing.T) {
	ext := &fakeExtractor{}
	_, err := newTestProcessor(ext, nil, nil).Search(context.Background(), "   ")
	assert.ErrorIs(t, err, entity.ErrEmptyQuery)
	assert.Zero(t, ext.calls)
}

func TestSearchExtractorFailure(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics("test", reg)
	logs := &fakeSearchLogRepo{}
	ext := &fakeExtractor{err: entity.ErrInvalidModelOutput}

	ctx := ContextWithRequestID(context.Background(), "req-42")
	_, err := newTestProcessor(ext, logs, m).Search(ctx, "DEL to DXB")

	assert.ErrorIs(t, err, entity.ErrInvalidModelOutput)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ErrorsCount.WithLabelValues("extract")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchesTotal.WithLabelValues(entity.StatusFailed)))
	require.Len(t, logs.logs, 1)
	assert.Equal(t, "req-42", logs.logs[0].RequestID)
	assert.Equal(t, entity.StatusFailed, logs.logs[0].Status)
}

func TestSearchLogFailureIsNotReturned(t *testing.T) {
	logs := &fakeSearchLogRepo{err: errors.New("mongo down")}
	ext := &fakeExtractor{draft: &entity.DraftExtraction{From: "DEL", To: "DXB", DepDate: "tomorrow"}}

	resp, err := newTestProcessor(ext, logs, nil).Search(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusComplete, resp.Status)
	require.Len(t, logs.logs, 1)
	assert.NotEmpty(t, logs.logs[0].RequestID)
	assert.NotNil(t, logs.logs[0].Payload)
}

func TestSearchMapsCityNamesToAirportCodes(t *testing.T) {
	ext := &fakeExtractor{draft: &entity.DraftExtraction{From: "Mumbai", To: "Atlantis", DepDate: "tomorrow"}}
	airports := &fakeAirportRepo{byCity: map[string]string{"Mumbai": "BOM"}}

	sp := NewSearchProcessor(ext, airports, nil, dateresolver.New(), nil, logger.NewNop()).
		WithClock(fixedClock("2025-06-01"))
	resp, err := sp.Search(context.Background(), "q")
	require.NoError(t, err)

	assert.Equal(t, "BOM", resp.Payload.Segments[0].DepFrom)
	assert.Equal(t, "Atlantis", resp.Payload.Segments[0].ArrTo)
}

func TestSearchRecordsResolutionMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics("test", reg)
	ext := &fakeExtractor{draft: &entity.DraftExtraction{From: "DEL", To: "DXB", DepDate: "tomorrow", RetDate: "after 3 days"}}

	resolver := dateresolver.New(dateresolver.WithMatchHook(m.ObserveResolution))
	sp := NewSearchProcessor(ext, nil, nil, resolver, m, logger.NewNop()).WithClock(fixedClock("2025-06-01"))
	_, err := sp.Search(context.Background(), "q")
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.DateResolutions.WithLabelValues(dateresolver.StrategyExactPhrase)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DateResolutions.WithLabelValues(dateresolver.StrategyRelativeOffset)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchesTotal.WithLabelValues(entity.StatusComplete)))
}
