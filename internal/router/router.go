// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// inventory admin.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"argeinventory/internal/handlers"
	"argeinventory/internal/middleware"
	"argeinventory/internal/session"
	"argeinventory/web"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. loginLimiter throttles login submissions per
// client IP.
func New(sessionStore *session.Store, admin *handlers.Admin, auth *handlers.Auth, loginLimiter *middleware.RateLimiter, secureCookies bool) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", healthHandler)
	r.Handle("/static/*", staticHandler())

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.NewCSRF(secureCookies))
		r.Use(middleware.LoadSession(sessionStore))

		// Auth pages, accessible without a session.
		r.Get("/login", auth.LoginPage)
		r.With(loginLimiter.Middleware).Post("/login", auth.LoginSubmit)
		r.Post("/logout", auth.Logout)

		// 2FA requires a session but not a completed 2FA step.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/2fa/setup", auth.TwoFASetupPage)
			r.Get("/2fa/verify", auth.TwoFAVerifyPage)
			r.With(loginLimiter.Middleware).Post("/2fa/verify", auth.TwoFAVerifySubmit)
		})

		// Authenticated + 2FA-verified admin area.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)

			r.Get("/", func(w http.ResponseWriter, r *http.Request) {
				http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", admin.CategoriesList)
				r.Post("/view", admin.CategoriesView)
				r.Get("/new", admin.CategoryNew)
				r.Post("/", admin.CategoryCreate)
				r.Get("/{id}/edit", admin.CategoryEdit)
				r.Post("/{id}", admin.CategoryUpdate)
				r.Put("/{id}", admin.CategoryUpdate)
				r.Delete("/{id}", admin.CategoryDelete)
			})
		})
	})

	return r
}

// staticHandler serves the embedded web/static tree under /static/.
func staticHandler() http.Handler {
	sub, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
