package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// total requests per endpoint, method and status code
	RequestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rotator_requests_total",
			Help: "Total API requests received",
		},
		[]string{"endpoint", "method", "status"},
	)

	// request latency in seconds per endpoint/method
	RequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rotator_request_duration_seconds",
			Help:    "Histogram of request latencies",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method"},
	)

	// impressions actually served (budget consumed)
	ImpressionCount = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rotator_impressions_total",
			Help: "Total impressions served",
		},
	)

	// requests answered with no banner to show
	NoFillCount = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rotator_nofill_total",
			Help: "Total empty (no banner) responses",
		},
	)

	// banners accepted by the most recent load
	BannersLoaded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rotator_banners_loaded",
			Help: "Banners accepted by the most recent config load",
		},
	)

	// records rejected by the most recent load
	BannersSkipped = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rotator_banners_skipped",
			Help: "Records rejected by the most recent config load",
		},
	)

	// requests rejected by the rate limiter
	RateLimitHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rotator_ratelimit_hits_total",
			Help: "Total requests rejected by the rate limiter",
		},
	)

	// inventory reloads by outcome
	ReloadCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rotator_reloads_total",
			Help: "Total inventory reloads",
		},
		[]string{"status"},
	)
)

func init() {
	// register all metrics
	prometheus.MustRegister(
		RequestCount,
		RequestLatency,
		ImpressionCount,
		NoFillCount,
		BannersLoaded,
		BannersSkipped,
		RateLimitHits,
		ReloadCount,
	)
}
