package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// dashboard service.
type Metrics struct {
	// Resource loading metrics.
	ResourceFetches   *prometheus.CounterVec   // labels: resource, outcome={success,error}
	ResourceCache     *prometheus.CounterVec   // labels: resource, result={hit,miss}
	FetchDuration     *prometheus.HistogramVec // labels: resource
	DatasetLoaded     prometheus.Gauge
	SyntheticFallback prometheus.Gauge

	// View computation metrics.
	ChartBuilds  prometheus.Counter
	PanelBuilds  prometheus.Counter
	MarkerBuilds prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.ResourceFetches,
		m.ResourceCache,
		m.FetchDuration,
		m.DatasetLoaded,
		m.SyntheticFallback,
		m.ChartBuilds,
		m.PanelBuilds,
		m.MarkerBuilds,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ResourceFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "creek_dashboard",
			Name:      "resource_fetches_total",
			Help:      "JSON resource fetch attempts by resource and outcome.",
		}, []string{"resource", "outcome"}),
		ResourceCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "creek_dashboard",
			Name:      "resource_cache_total",
			Help:      "Resource cache lookups by resource and result.",
		}, []string{"resource", "result"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "creek_dashboard",
			Name:      "resource_fetch_duration_seconds",
			Help:      "Duration of individual resource fetches.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"resource"}),
		DatasetLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "creek_dashboard",
			Name:      "dataset_loaded",
			Help:      "1 once the aggregate dataset has loaded successfully.",
		}),
		SyntheticFallback: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "creek_dashboard",
			Name:      "synthetic_fallback_active",
			Help:      "1 when the service is running on fabricated fallback data.",
		}),
		ChartBuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "creek_dashboard",
			Name:      "chart_builds_total",
			Help:      "Chart view models computed.",
		}),
		PanelBuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "creek_dashboard",
			Name:      "panel_builds_total",
			Help:      "Sidebar panel view models computed.",
		}),
		MarkerBuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "creek_dashboard",
			Name:      "marker_builds_total",
			Help:      "Marker set view models computed.",
		}),
	}
}
