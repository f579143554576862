package api

import (
	"io"
	"net/http"
	"time"

	"github.com/patrickwarner/bannerrotator/internal/middleware"
	"github.com/patrickwarner/bannerrotator/internal/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("bannerrotator")

// BannerHandler handles GET /banner rotation requests. Categories arrive as
// repeated "category" query parameters; no parameters means any banner in
// the inventory is fair game. A winning banner is returned as text/html, a
// miss as 204 No Content.
func (s *Server) BannerHandler(w http.ResponseWriter, r *http.Request) {
	_, span := tracer.Start(r.Context(), "BannerHandler",
		trace.WithAttributes(
			attribute.String("http.method", "GET"),
			attribute.String("http.route", "/banner"),
		))
	defer span.End()

	logger := middleware.LoggerFromRequest(r, s.Logger)

	start := time.Now()
	const endpoint = "banner"
	const method = "GET"

	if s.Limiter != nil && !s.Limiter.Allow() {
		s.Metrics.IncrementRateLimitHits()
		s.Metrics.IncrementRequests(endpoint, method, "429")
		s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
		http.Error(w, "too many requests", http.StatusTooManyRequests)
		return
	}

	categories := r.URL.Query()["category"]
	span.SetAttributes(attribute.StringSlice("categories", categories))

	html, ok := s.Store().Select(categories)
	if !ok {
		span.SetAttributes(attribute.String("rotation.result", "no_fill"))
		if observability.ShouldSample(observability.GetSamplingRate()) {
			logger.Info("no banner to show",
				zap.Strings("categories", categories),
				zap.String("event_type", "no_fill"))
		}
		s.Metrics.IncrementNoFill()
		s.Metrics.IncrementRequests(endpoint, method, "204")
		s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
		w.WriteHeader(http.StatusNoContent)
		return
	}

	span.SetAttributes(attribute.String("rotation.result", "impression"))
	if observability.ShouldSample(observability.GetSamplingRate()) {
		logger.Info("impression",
			zap.Strings("categories", categories),
			zap.String("event_type", "impression"))
	}
	s.Metrics.IncrementImpressions()
	s.Metrics.IncrementRequests(endpoint, method, "200")
	s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := io.WriteString(w, html); err != nil {
		logger.Error("write response", zap.Error(err))
	}
}
