package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	// Latency buckets in milliseconds; upstream inference calls dominate
	// the upper buckets.
	latencyBuckets = []float64{
		5, 10, 25,
		50, 100, 250,
		500, 1000, 2500,
		5000, 10000, 30000,
	}

	RequestTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "promptgate_requests_total",
			Help: "Total number of requests processed",
		},
		[]string{"method", "path", "status"},
	)

	RequestLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "promptgate_latency_ms",
			Help:    "Request latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"path"},
	)

	UpstreamLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "promptgate_upstream_latency_ms",
			Help:    "Inference provider latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"provider", "outcome"},
	)

	UpstreamTokens = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "promptgate_upstream_tokens_total",
			Help: "Tokens consumed by inference calls",
		},
		[]string{"provider", "kind"},
	)

	QuotaRemaining = promauto.With(registerer).NewGauge(
		prometheus.GaugeOpts{
			Name: "promptgate_quota_remaining",
			Help: "Prompts remaining in the current quota window",
		},
	)

	SessionsActive = promauto.With(registerer).NewGauge(
		prometheus.GaugeOpts{
			Name: "promptgate_sessions_active",
			Help: "Number of sessions currently held in memory",
		},
	)
)

func Initialize() {
	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry
}
