// Package controller contains HTTP middlewares and helper handlers used by the API server.
//
// Provided middlewares:
//   - WithCORS: Adds permissive CORS headers and handles OPTIONS preflight.
//   - WithLogger: Attaches a request-scoped logger and request ID to the context and logs access info.
//   - WithMetrics: Records request counts and latencies on an OpenTelemetry meter.
//
// Provided helpers:
//   - PprofRouter: Returns a router exposing net/http/pprof handlers.
//   - RoutePattern: Returns the chi route pattern that served a request.
package controller
