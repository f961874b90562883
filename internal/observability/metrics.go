package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the analysis service.
type Metrics struct {
	AnalysesTotal prometheus.Counter
	YearsSkipped  prometheus.Counter

	// Outbound provider calls. Labels: provider, outcome={success,error}.
	ProviderRequests *prometheus.CounterVec
	ProviderDuration *prometheus.HistogramVec // label: provider

	// Scheduled tracked-location runs. Label: outcome={success,error}.
	ScheduledRuns *prometheus.CounterVec
}

// NewMetrics creates and registers all collectors with the default registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.AnalysesTotal,
		m.YearsSkipped,
		m.ProviderRequests,
		m.ProviderDuration,
		m.ScheduledRuns,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, so tests
// can construct fresh instances without "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		AnalysesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_odds",
			Name:      "analyses_total",
			Help:      "Total historical analyses completed.",
		}),
		YearsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_odds",
			Name:      "years_skipped_total",
			Help:      "Years excluded from analyses due to missing or incomplete provider data.",
		}),
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_odds",
			Name:      "provider_requests_total",
			Help:      "Outbound provider requests by provider and outcome.",
		}, []string{"provider", "outcome"}),
		ProviderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_odds",
			Name:      "provider_request_duration_seconds",
			Help:      "Outbound provider request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider"}),
		ScheduledRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_odds",
			Name:      "scheduled_runs_total",
			Help:      "Scheduled tracked-location analyses by outcome.",
		}, []string{"outcome"}),
	}
}
