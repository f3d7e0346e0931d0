package controller

import (
	"fmt"
	"net/http"
	"strconv"
	"taskmanager/pkg/metrics"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// WithMetrics returns a middleware recording a request counter and a latency
// histogram, both labelled with method, chi route pattern and status code.
// Labelling by pattern rather than path keeps ids out of the label values.
func WithMetrics(meter metric.Meter) (func(http.Handler) http.Handler, error) {
	requests, err := meter.Int64Counter("http_server_requests",
		metric.WithDescription("Number of HTTP requests served."))
	if err != nil {
		return nil, fmt.Errorf("could not create requests counter: %w", err)
	}
	duration, err := meter.Float64Histogram("http_server_request_duration",
		metric.WithDescription("HTTP request latency."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(metrics.DefaultBuckets...))
	if err != nil {
		return nil, fmt.Errorf("could not create duration histogram: %w", err)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			attrs := metric.WithAttributes(
				attribute.String("method", r.Method),
				attribute.String("route", RoutePattern(r)),
				attribute.String("status", strconv.Itoa(status)),
			)
			requests.Add(r.Context(), 1, attrs)
			duration.Record(r.Context(), time.Since(start).Seconds(), attrs)
		})
	}, nil
}
