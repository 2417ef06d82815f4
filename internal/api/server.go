// Copyright (c) 2026 UniPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/uniportal/internal/platform/config"
	"github.com/taibuivan/uniportal/internal/platform/constants"
	"github.com/taibuivan/uniportal/internal/platform/metrics"
	"github.com/taibuivan/uniportal/internal/platform/middleware"
	"github.com/taibuivan/uniportal/internal/platform/sec"
	"github.com/taibuivan/uniportal/internal/users/auth"
	"github.com/taibuivan/uniportal/internal/users/session"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler. Always 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. 200 only when every dependency answers.
	Readiness http.HandlerFunc

	// Auth handles the role-qualified login, registration and profile routes.
	Auth *auth.Handler

	// Session handles the native credential provider.
	Session *session.Handler
}

// Dependencies are the cross-cutting collaborators of the middleware chain.
type Dependencies struct {
	Tokens      middleware.TokenVerifier
	Sessions    middleware.SessionResolver
	Metrics     *metrics.Metrics
	RateLimiter *middleware.RateLimiter
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(cfg *config.Config, log *slog.Logger, deps Dependencies, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log, deps.Metrics))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	if deps.RateLimiter != nil {
		r.Use(deps.RateLimiter.Middleware())
	}
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// The guard runs before identity resolution: it only looks at cookie presence.
	r.Use(middleware.NewRouteGuard(cfg.ProtectedPrefixes, cfg.LoginPath, deps.Metrics).Middleware())
	r.Use(middleware.Authenticate(deps.Tokens, deps.Sessions))

	// # Infrastructure Endpoints
	// Unauthenticated probes for container orchestration and scraping.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())

	// # Application API
	r.Route("/api/auth", func(api chi.Router) {
		if h.Auth != nil {
			h.Auth.RegisterRoutes(api)
		}
		if h.Session != nil {
			h.Session.RegisterRoutes(api)
		}
	})

	// # Protected Areas
	r.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Get("/dashboard", portalSummary("dashboard"))
		protected.Get("/dashboard/*", portalSummary("dashboard"))
	})
	r.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireRole(sec.RoleInstructor))
		protected.Get("/admin", portalSummary("admin"))
		protected.Get("/admin/*", portalSummary("admin"))
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
