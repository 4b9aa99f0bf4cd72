// Package api exposes the simulator and the stored process list over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/cpusched/store"
)

// Server is the simulator REST API server.
type Server struct {
	router    chi.Router
	logger    *logrus.Entry
	store     store.Store
	startTime time.Time
}

// New creates a new Server with all routes registered.
func New(st store.Store) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		logger:    logrus.WithField("component", "api"),
		store:     st,
		startTime: time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := s.router

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(s.logger))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/simulate", s.handleSimulate)
		r.Post("/compare", s.handleCompare)

		r.Route("/processes", func(r chi.Router) {
			r.Get("/", s.handleListProcesses)
			r.Post("/", s.handleAddProcess)
			r.Delete("/", s.handleClearProcesses)
			r.Post("/simulate", s.handleSimulateStored)
		})
	})
}
