// Copyright (c) 2026 Paddock. All rights reserved.

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

	"github.com/paddockhq/paddock/internal/admin"
	"github.com/paddockhq/paddock/internal/forum/category"
	"github.com/paddockhq/paddock/internal/forum/comment"
	"github.com/paddockhq/paddock/internal/forum/engagement"
	"github.com/paddockhq/paddock/internal/forum/topic"
	"github.com/paddockhq/paddock/internal/platform/config"
	"github.com/paddockhq/paddock/internal/platform/constants"
	"github.com/paddockhq/paddock/internal/platform/middleware"
	"github.com/paddockhq/paddock/internal/schedule/grandprix"
	"github.com/paddockhq/paddock/internal/users/account"
	"github.com/paddockhq/paddock/internal/users/auth"
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
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles authentication routes (login, register, me).
	Auth *auth.Handler

	// Account handles profile updates and public profile discovery.
	Account *account.Handler

	// Category handles forum boards.
	Category *category.Handler

	// Topic handles discussion threads.
	Topic *topic.Handler

	// Comment handles the comment trees under topics.
	Comment *comment.Handler

	// Engagement handles like toggles on topics and comments.
	Engagement *engagement.Handler

	// GrandPrix handles the race calendar.
	GrandPrix *grandprix.Handler

	// Admin handles the staff panel, member management, and backups.
	Admin *admin.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, loader middleware.UserLoader, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier, loader))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/users", h.Account.Routes())
		api.Mount("/admin", h.Admin.Routes())

		api.Route("/categories", h.Category.RegisterRoutes)

		api.Route("/topics", func(router chi.Router) {
			h.Topic.RegisterRoutes(router)
			h.Comment.RegisterTopicRoutes(router)
			h.Engagement.RegisterTopicRoutes(router)
		})

		api.Route("/comments", func(router chi.Router) {
			h.Comment.RegisterRoutes(router)
			h.Engagement.RegisterCommentRoutes(router)
		})

		api.Route("/grand-prix", h.GrandPrix.RegisterRoutes)
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
