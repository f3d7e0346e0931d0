package controller

import (
	"net/http"
	"net/http/pprof"

	"github.com/go-chi/chi/v5"
)

// PprofRouter returns a router exposing the net/http/pprof handlers. It is
// meant to be mounted at /debug/pprof, the prefix pprof.Index expects.
func PprofRouter() http.Handler {
	r := chi.NewRouter()

	r.HandleFunc("/", pprof.Index)
	r.HandleFunc("/cmdline", pprof.Cmdline)
	r.HandleFunc("/profile", pprof.Profile)
	r.HandleFunc("/symbol", pprof.Symbol)
	r.HandleFunc("/trace", pprof.Trace)
	r.HandleFunc("/{profile}", pprof.Index)

	return r
}
