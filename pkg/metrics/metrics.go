// Package metrics sets up OpenTelemetry metrics exported in the Prometheus
// format.
package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// Provider owns a Prometheus registry and the OpenTelemetry meter provider
// that exports into it.
type Provider struct {
	registry      *prometheus.Registry
	meterProvider *sdkmetric.MeterProvider
}

// New creates a Provider with its own registry, pre-populated with the Go
// runtime and process collectors.
func New() (*Provider, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	exp, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}

	return &Provider{
		registry:      registry,
		meterProvider: sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp)),
	}, nil
}

// Meter returns a named meter.
func (p *Provider) Meter(name string) metric.Meter {
	return p.meterProvider.Meter(name)
}

// Handler serves the registry in the Prometheus text format.
func (p *Provider) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}
