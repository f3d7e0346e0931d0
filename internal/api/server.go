// Package api configures and exposes the HTTP server, routes,
// metrics, docs and related middleware for the task manager service.
package api

import (
	_ "embed"
	"fmt"
	"net/http"
	"taskmanager/internal/api/handler/v1handler"
	"taskmanager/internal/config"
	"taskmanager/pkg/controller"
	"taskmanager/pkg/metrics"
	"taskmanager/pkg/token"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/swaggest/swgui/v5emb"
)

// v1Spec contains the embedded OpenAPI specification for version 1 of the API.
//
//go:embed specs/v1.yaml
var v1Spec []byte

const timeoutBody = `{"code":"UNAVAILABLE","message":"request timed out"}`

// Options holds configuration for the HTTP server.
// It is typically created from a config.Config via NewOptions.
// Zero durations fall back to the net/http defaults, except RequestTimeout
// which disables the per-request timeout.
type Options struct {
	// Addr is the TCP address the server listens on, e.g. ":8080".
	Addr string
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
	// RequestTimeout is the global timeout applied via http.TimeoutHandler for handling requests.
	RequestTimeout time.Duration
	// MaxHeaderBytes controls the maximum number of bytes the server
	// will read parsing the request header's keys and values, including the request line.
	MaxHeaderBytes int
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string
}

// NewOptions constructs an Options value from the provided application configuration.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Addr:              cfg.HTTP.Addr,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MetricsPath:       cfg.HTTP.MetricsPath,
	}
}

// Deps holds everything the server needs besides its Options.
type Deps struct {
	v1handler.Deps

	// Verifier checks bearer tokens on the task endpoints.
	Verifier token.Verifier
	// Metrics receives the HTTP instruments and serves MetricsPath.
	Metrics *metrics.Provider
}

// NewHandler builds the root router:
// - Prometheus metrics endpoint (MetricsPath)
// - embedded OpenAPI v1 spec and Swagger UI
// - v1 API routes
// - pprof endpoints for profiling
// - a liveness probe at /healthz
// Every route goes through the recoverer, logging, metrics and CORS middlewares.
func NewHandler(deps Deps, opts Options) (http.Handler, error) {
	withMetrics, err := controller.WithMetrics(deps.Metrics.Meter("taskmanager/http"))
	if err != nil {
		return nil, fmt.Errorf("could not create metrics middleware: %w", err)
	}

	r := chi.NewRouter()
	r.Use(
		controller.WithLogger,
		middleware.Recoverer,
		withMetrics,
		controller.WithCORS,
	)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// prometheus metrics
	r.Method(http.MethodGet, opts.MetricsPath, deps.Metrics.Handler())

	// v1 specs file
	r.Get("/specs/v1.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(v1Spec)
	})

	// v1 api
	h := v1handler.New(deps.Deps)
	sec := v1handler.NewSecHandler(deps.Verifier)
	r.Route("/v1", func(r chi.Router) {
		// swagger playground
		r.Handle("/docs/*", v5emb.New(
			"Task Manager",
			"/specs/v1.yaml",
			"/v1/docs/",
		))

		h.Routes(r, sec)
	})

	// pprof
	r.Mount("/debug/pprof", controller.PprofRouter())

	return r, nil
}

// NewServer wires up and returns a configured *http.Server using the provided
// Options. The router from NewHandler is wrapped with a request timeout.
func NewServer(deps Deps, opts Options) (*http.Server, error) {
	handler, err := NewHandler(deps, opts)
	if err != nil {
		return nil, err
	}

	if opts.RequestTimeout > 0 {
		handler = http.TimeoutHandler(handler, opts.RequestTimeout, timeoutBody)
	}

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
	}, nil
}
