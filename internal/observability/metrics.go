package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ajudejf"

// Metrics holds the Prometheus counters and histograms for intake and directory traffic.
type Metrics struct {
	// Intake metrics.
	Submissions        *prometheus.CounterVec // labels: category, outcome={success,city_not_found,validation,insert_error,busy}
	SubmissionDuration prometheus.Histogram

	// Directory metrics.
	DirectoryLoads        *prometheus.CounterVec // labels: outcome={ready,empty,error}
	DirectoryLoadDuration prometheus.Histogram

	// City resolution metrics.
	CityCache *prometheus.CounterVec // labels: result={hit,miss}

	// Record store metrics.
	StoreRequests *prometheus.CounterVec   // labels: op={select,insert}, outcome={success,error}
	StoreDuration *prometheus.HistogramVec // labels: op={select,insert}

	// Submission events.
	EventsPublished *prometheus.CounterVec // labels: outcome={success,error}
	ActiveSessions  prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Submissions,
		m.SubmissionDuration,
		m.DirectoryLoads,
		m.DirectoryLoadDuration,
		m.CityCache,
		m.StoreRequests,
		m.StoreDuration,
		m.EventsPublished,
		m.ActiveSessions,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Intake submissions by category and outcome.",
		}, []string{"category", "outcome"}),
		SubmissionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "submission_duration_seconds",
			Help:      "Duration of a submission from city resolution to confirmation.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		DirectoryLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "directory_loads_total",
			Help:      "Directory loads by resulting state.",
		}, []string{"outcome"}),
		DirectoryLoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "directory_load_duration_seconds",
			Help:      "Duration of a complete directory load across all queried categories.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		CityCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "city_cache_total",
			Help:      "City resolution cache lookups by result.",
		}, []string{"result"}),
		StoreRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_requests_total",
			Help:      "Record store requests by operation and outcome.",
		}, []string{"op", "outcome"}),
		StoreDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_request_duration_seconds",
			Help:      "Record store request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"op"}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Submission events written to Kafka by outcome.",
		}, []string{"outcome"}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Intake sessions currently held in memory.",
		}),
	}
}
