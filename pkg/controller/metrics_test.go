package controller_test

import (
	"net/http"
	"net/http/httptest"
	"taskmanager/pkg/controller"
	"taskmanager/pkg/metrics"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func TestWithMetrics(t *testing.T) {
	provider, err := metrics.New()
	require.NoError(t, err)
	mw, err := controller.WithMetrics(provider.Meter("test"))
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(mw)
	r.Get("/v1/tasks/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/tasks/abc", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	out := httptest.NewRecorder()
	provider.Handler().ServeHTTP(out, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := out.Body.String()

	require.Contains(t, body, "http_server_requests_total")
	require.Contains(t, body, `route="/v1/tasks/{id}"`)
	require.Contains(t, body, `status="404"`)
	require.NotContains(t, body, "/v1/tasks/abc")
	require.Contains(t, body, "http_server_request_duration_seconds_bucket")
}
