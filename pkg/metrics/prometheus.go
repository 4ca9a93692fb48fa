package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	SearchesTotal     *prometheus.CounterVec
	DateResolutions   *prometheus.CounterVec
	ExtractionLatency prometheus.Histogram
	ErrorsCount       *prometheus.CounterVec
}

// NewMetrics creates the service metrics and registers them on reg.
// The server passes its own registry; tests pass a fresh one each.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		SearchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "The total number of flight searches by outcome",
		}, []string{"status"}),
		DateResolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "date_resolutions_total",
			Help:      "Date expressions resolved, by winning strategy",
		}, []string{"strategy"}),
		ExtractionLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "extraction_duration_seconds",
			Help:      "Time taken by the upstream extractor",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}

// ObserveResolution counts a resolved date expression. Safe on a nil receiver.
func (m *Metrics) ObserveResolution(strategy string) {
	if m == nil {
		return
	}
	m.DateResolutions.WithLabelValues(strategy).Inc()
}

// ObserveSearch counts a finished search. Safe on a nil receiver.
func (m *Metrics) ObserveSearch(status string) {
	if m == nil {
		return
	}
	m.SearchesTotal.WithLabelValues(status).Inc()
}

// ObserveError counts a failed operation. Safe on a nil receiver.
func (m *Metrics) ObserveError(operation string) {
	if m == nil {
		return
	}
	m.ErrorsCount.WithLabelValues(operation).Inc()
}

// ObserveExtraction records extractor latency in seconds. Safe on a nil receiver.
func (m *Metrics) ObserveExtraction(seconds float64) {
	if m == nil {
		return
	}
	m.ExtractionLatency.Observe(seconds)
}
