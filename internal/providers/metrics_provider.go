package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"mfd/internal/structures"
)

// AnalysisStatsSource exposes the store counters the gauges poll. Implemented
// by the analysis service; declared here to keep providers free of service
// imports.
type AnalysisStatsSource interface {
	RecordCount() int
	UserCount() int
	SkippedCount() int
}

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncRunsTotal()
	ObserveRunDuration(duration time.Duration)
	ObserveSnapshotDuration(duration time.Duration)
	SetGraphSize(nodes, edges int)
}

type MetricsProvider struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	cacheHits        prometheus.Counter
	cacheMisses      prometheus.Counter
	runsTotal        prometheus.Counter
	runDuration      prometheus.Histogram
	snapshotDuration prometheus.Histogram
	graphNodes       prometheus.Gauge
	graphEdges       prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncRunsTotal() {
	m.runsTotal.Inc()
}

func (m *MetricsProvider) ObserveRunDuration(duration time.Duration) {
	m.runDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) ObserveSnapshotDuration(duration time.Duration) {
	m.snapshotDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetGraphSize(nodes, edges int) {
	m.graphNodes.Set(float64(nodes))
	m.graphEdges.Set(float64(edges))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, service AnalysisStatsSource) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mfd_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mfd_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mfd_cache_hits_total",
			Help: "Total number of response cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mfd_cache_misses_total",
			Help: "Total number of response cache misses",
		}),

		runsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mfd_runs_total",
			Help: "Total number of completed analysis runs",
		}),

		runDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "mfd_run_duration_seconds",
			Help:    "Duration of full pipeline runs in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		snapshotDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "mfd_snapshot_duration_seconds",
			Help:    "Duration of snapshot persistence in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		graphNodes: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "mfd_graph_nodes",
			Help: "Node count of the last built migration graph",
		}),

		graphEdges: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "mfd_graph_edges",
			Help: "Edge count of the last built migration graph",
		}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "mfd_records_total",
		Help: "Current number of posting records in the store",
	}, func() float64 {
		return float64(service.RecordCount())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "mfd_users_total",
		Help: "Current number of distinct users in the store",
	}, func() float64 {
		return float64(service.UserCount())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "mfd_skipped_records_total",
		Help: "Total number of malformed records skipped since start",
	}, func() float64 {
		return float64(service.SkippedCount())
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncRunsTotal()                                    {}
func (n *noopMetrics) ObserveRunDuration(_ time.Duration)               {}
func (n *noopMetrics) ObserveSnapshotDuration(_ time.Duration)          {}
func (n *noopMetrics) SetGraphSize(_, _ int)                            {}
