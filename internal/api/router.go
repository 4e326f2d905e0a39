package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Health check (no auth required)
		r.Get("/health", s.handleHealth)

		// Auth endpoints (no auth required)
		r.Post("/auth/login", s.handleLogin)

		// Protected routes. Everything below can open physical doors.
		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			// WS ticket requires authentication
			r.Post("/auth/ws-ticket", s.handleWSTicket)

			// Relay actions
			r.Route("/relay", func(r chi.Router) {
				r.Post("/open-by-door-id", s.handleOpenByDoorID)
				r.Post("/open-by-key-id", s.handleOpenByKeyID)
				r.Post("/open-by-last-call", s.handleOpenByLastCall)
			})

			// Entity surface
			r.Route("/entities", func(r chi.Router) {
				r.Get("/", s.handleListEntities)
				r.Get("/{id}", s.handleGetEntity)
			})
			r.Post("/buttons/{id}/press", s.handlePressButton)

			// Account listing
			r.Get("/accounts", s.handleListAccounts)

			// Call log
			r.Get("/calls", s.handleListCalls)
			r.Get("/relay-opens", s.handleListRelayOpens)

			// WebSocket (auth via ticket, validated in handler)
			r.Get("/ws", s.handleWebSocket)
		})
	})

	return r
}

// handleHealth returns the server health status, including the call-log
// database when one is configured.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	checks := map[string]string{}

	if s.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.HealthCheck(ctx); err != nil {
			status = "degraded"
			checks["database"] = err.Error()
		} else {
			checks["database"] = "ok"
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  status,
		"version": s.version,
		"checks":  checks,
	})
}
