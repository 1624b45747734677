// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// BetterIDN API. Routes are grouped under /api/v1 with public and
// session-gated sections.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"betteridn/internal/apperr"
	"betteridn/internal/handlers"
	"betteridn/internal/middleware"
	"betteridn/internal/session"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. The credential endpoints are additionally
// guarded by the given rate limiter.
func New(sessionStore *session.Store, auth *handlers.Auth, posts *handlers.Posts, categories *handlers.Categories, authLimiter *middleware.RateLimiter, allowOrigin string) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{allowOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Origin", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.LoadSession(sessionStore))

	// Health check — no auth.
	r.Get("/health", healthHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			// Credential endpoints are rate-limited per IP.
			r.With(authLimiter.Middleware).Post("/signup", auth.Signup)
			r.With(authLimiter.Middleware).Post("/signin", auth.Signin)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Delete("/signout", auth.Signout)
				r.Get("/session", auth.Session)
			})
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", posts.List)
			r.Get("/{postID}", posts.Get)
			r.Get("/{postID}/comments", posts.ListComments)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Post("/", posts.Create)
				r.Put("/{postID}", posts.Update)
				r.Post("/{postID}/vote", posts.Vote)
				r.Post("/{postID}/comments", posts.CreateComment)
			})
		})

		r.With(middleware.RequireAuth).Post("/comments/{commentID}/vote", posts.VoteComment)

		r.Get("/users/{userID}/posts", posts.ListByUser)
		r.Get("/categories", categories.List)
	})

	// Unknown routes answer with the standard error envelope.
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		apperr.Write(w, apperr.NotFound("Route "+req.Method+":"+req.URL.Path+" not found"))
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
