package controller_test

import (
	"net/http"
	"net/http/httptest"
	"taskmanager/pkg/controller"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func TestPprofRouter(t *testing.T) {
	r := chi.NewRouter()
	r.Mount("/debug/pprof", controller.PprofRouter())

	for _, path := range []string{"/debug/pprof/", "/debug/pprof/cmdline", "/debug/pprof/goroutine"} {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			require.NotEmpty(t, rec.Header().Get("Content-Type"))
		})
	}
}
