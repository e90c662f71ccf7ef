// Package http exposes a small operational surface for a running silo
// store: liveness, readiness, stats and Prometheus metrics. It is consumed
// by `silo serve`.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aretw0/silo/internal/engine"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Store defines the slice of the silo store the ops server needs.
type Store interface {
	State() engine.LifecycleState
	Len(ctx context.Context) (int, error)
}

// Server implements the ops routes around a running store.
type Server struct {
	store      Store
	collection string
}

// NewHandler creates the ops HTTP handler for a store. A nil registry
// disables the /metrics route.
func NewHandler(store Store, collection string, reg *prometheus.Registry) http.Handler {
	s := &Server{store: store, collection: collection}

	r := chi.NewRouter()
	r.Get("/healthz", s.health)
	r.Get("/readyz", s.ready)
	r.Get("/stats", s.stats)
	if reg != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}
	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	state := s.store.State()
	if state != engine.StateReady {
		http.Error(w, state.String(), http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ready")
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	count, err := s.store.Len(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("stats error: %v", err), http.StatusInternalServerError)
		return
	}

	resp := map[string]any{
		"state":      s.store.State().String(),
		"collection": s.collection,
		"records":    count,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, fmt.Sprintf("encode error: %v", err), http.StatusInternalServerError)
	}
}
