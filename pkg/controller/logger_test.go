package controller_test

import (
	"net/http"
	"net/http/httptest"
	"taskmanager/pkg/controller"
	"taskmanager/pkg/logger"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{name: "X-Forwarded-For", headers: map[string]string{"X-Forwarded-For": "1.2.3.4, 5.6.7.8"}, want: "1.2.3.4"},
		{name: "X-Real-IP", headers: map[string]string{"X-Real-IP": "9.8.7.6"}, want: "9.8.7.6"},
		{name: "RemoteAddr", remoteAddr: "10.0.0.1:12345", want: "10.0.0.1"},
		{name: "invalid RemoteAddr passes through", remoteAddr: "not-an-addr", want: "not-an-addr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if tt.remoteAddr != "" {
				req.RemoteAddr = tt.remoteAddr
			}

			require.Equal(t, tt.want, controller.GetClientIP(req))
		})
	}
}

func TestWithLogger_SetsRequestIDAndPassesStatus(t *testing.T) {
	require.NoError(t, logger.Setup(logger.DevelopmentEnvironment, ""))

	// handler echoes request ID from context into a header so we can assert it
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Echo-Request-Id", controller.RequestID(r.Context()))
		w.WriteHeader(http.StatusCreated)
	})

	t.Run("supplied request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-Id", "abc-123")
		rec := httptest.NewRecorder()

		controller.WithLogger(next).ServeHTTP(rec, req)

		res := rec.Result()
		require.Equal(t, http.StatusCreated, res.StatusCode)
		require.Equal(t, "abc-123", res.Header.Get("X-Echo-Request-Id"))
		require.Equal(t, "abc-123", res.Header.Get("X-Request-Id"))
	})

	t.Run("generated request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		controller.WithLogger(next).ServeHTTP(rec, req)

		res := rec.Result()
		require.Equal(t, http.StatusCreated, res.StatusCode)
		require.NotEmpty(t, res.Header.Get("X-Echo-Request-Id"))
		require.Equal(t, res.Header.Get("X-Echo-Request-Id"), res.Header.Get("X-Request-Id"))
	})
}

func TestRoutePattern(t *testing.T) {
	var pattern string
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req)
			pattern = controller.RoutePattern(req)
		})
	})
	r.Get("/v1/tasks/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/tasks/42", nil))
	require.Equal(t, "/v1/tasks/{id}", pattern)

	unrouted := httptest.NewRequest(http.MethodGet, "/plain", nil)
	require.Equal(t, "/plain", controller.RoutePattern(unrouted))
}
