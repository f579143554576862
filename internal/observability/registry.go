package observability

import "time"

// MetricsRegistry provides an interface for recording application metrics.
// Handlers depend on this instead of the global Prometheus collectors so
// tests can inject a no-op implementation.
type MetricsRegistry interface {
	// HTTP request metrics
	IncrementRequests(endpoint, method, status string)
	RecordRequestLatency(endpoint, method string, duration time.Duration)

	// Rotation outcome metrics
	IncrementImpressions()
	IncrementNoFill()

	// Inventory load metrics
	SetBannersLoaded(count int)
	SetBannersSkipped(count int)
	IncrementReloads(status string)

	// Rate limiting metrics
	IncrementRateLimitHits()
}

// PrometheusRegistry implements MetricsRegistry using the global Prometheus
// collectors defined in metrics.go.
type PrometheusRegistry struct{}

// NewPrometheusRegistry creates a new PrometheusRegistry.
func NewPrometheusRegistry() *PrometheusRegistry {
	return &PrometheusRegistry{}
}

func (r *PrometheusRegistry) IncrementRequests(endpoint, method, status string) {
	RequestCount.WithLabelValues(endpoint, method, status).Inc()
}

func (r *PrometheusRegistry) RecordRequestLatency(endpoint, method string, duration time.Duration) {
	RequestLatency.WithLabelValues(endpoint, method).Observe(duration.Seconds())
}

func (r *PrometheusRegistry) IncrementImpressions() {
	ImpressionCount.Inc()
}

func (r *PrometheusRegistry) IncrementNoFill() {
	NoFillCount.Inc()
}

func (r *PrometheusRegistry) SetBannersLoaded(count int) {
	BannersLoaded.Set(float64(count))
}

func (r *PrometheusRegistry) SetBannersSkipped(count int) {
	BannersSkipped.Set(float64(count))
}

func (r *PrometheusRegistry) IncrementReloads(status string) {
	ReloadCount.WithLabelValues(status).Inc()
}

func (r *PrometheusRegistry) IncrementRateLimitHits() {
	RateLimitHits.Inc()
}

// NoOpRegistry implements MetricsRegistry with no-op methods for testing.
type NoOpRegistry struct{}

// NewNoOpRegistry creates a new NoOpRegistry.
func NewNoOpRegistry() *NoOpRegistry {
	return &NoOpRegistry{}
}

func (r *NoOpRegistry) IncrementRequests(endpoint, method, status string)                    {}
func (r *NoOpRegistry) RecordRequestLatency(endpoint, method string, duration time.Duration) {}
func (r *NoOpRegistry) IncrementImpressions()                                                {}
func (r *NoOpRegistry) IncrementNoFill()                                                     {}
func (r *NoOpRegistry) SetBannersLoaded(count int)                                           {}
func (r *NoOpRegistry) SetBannersSkipped(count int)                                          {}
func (r *NoOpRegistry) IncrementReloads(status string)                                       {}
func (r *NoOpRegistry) IncrementRateLimitHits()                                              {}
