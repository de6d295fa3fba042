// Package httpapi wires the HTTP surface of the bank service.
// It keeps handlers thin, delegating storage to the service layer.
package httpapi

import (
	"log/slog"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tinoosan/volley/internal/service/banks"
)

// Server wires handlers and middleware using Chi.
type Server struct {
	svc   banks.Service
	ready ReadyChecker
	log   *slog.Logger
	rt    *chi.Mux
}

// New constructs the HTTP server with routes and middleware.
// If repo implements ReadyChecker it backs the /readyz probe.
func New(repo banks.Repo, writer banks.Writer, logger *slog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	r.Use(metricsMiddleware)

	s := &Server{svc: banks.New(repo, writer), rt: r, log: logger}
	if rc, ok := any(repo).(ReadyChecker); ok {
		s.ready = rc
	}
	s.routes()
	return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// routes declares the public HTTP API endpoints and attaches any per-route middleware.
func (s *Server) routes() {
	s.rt.Route("/api/banks", func(r chi.Router) {
		r.Get("/", s.listBanks)
		r.Post("/", s.postBank)
		r.Patch("/", s.patchBank)
		r.With(s.validateAccountNumber()).Get("/{accountNumber}", s.getBank)
		r.Delete("/{accountNumber}", s.deleteBank)
	})
	// Health (unversioned)
	s.rt.Get("/healthz", s.healthz)
	s.rt.Get("/readyz", s.readyz)
	s.rt.Method(http.MethodGet, "/metrics", metricsHandler())
}
