// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the inventory admin.
// Handlers are grouped by concern (admin, auth) and receive their
// dependencies through the handler struct.
package handlers

import (
	"log/slog"
	"net/http"

	"golang.org/x/text/language"

	"argeinventory/internal/cache"
	"argeinventory/internal/render"
	"argeinventory/internal/session"
	"argeinventory/internal/store"
)

// Admin groups all admin panel HTTP handlers and their dependencies.
type Admin struct {
	renderer   *render.Renderer
	sessions   *session.Store
	categories *store.CategoryStore
	snapshots  *cache.SnapshotCache
	locale     language.Tag
}

// NewAdmin creates a new Admin handler group with the given dependencies.
// locale drives the collation of sorted list columns.
func NewAdmin(renderer *render.Renderer, sessions *session.Store, categories *store.CategoryStore, snapshots *cache.SnapshotCache, locale language.Tag) *Admin {
	return &Admin{
		renderer:   renderer,
		sessions:   sessions,
		categories: categories,
		snapshots:  snapshots,
		locale:     locale,
	}
}

// flash queues a notification for the next rendered page. Failures are
// logged only; a lost flash never fails the request.
func (a *Admin) flash(r *http.Request, kind, msg string) {
	if err := a.sessions.AddFlash(r.Context(), r, session.Flash{Kind: kind, Message: msg}); err != nil {
		slog.Warn("add flash failed", "error", err)
	}
}

// takeFlashes pops the queued notifications of the current session.
func (a *Admin) takeFlashes(r *http.Request) []session.Flash {
	flashes, err := a.sessions.TakeFlashes(r.Context(), r)
	if err != nil {
		slog.Warn("take flashes failed", "error", err)
	}
	return flashes
}

// redirectTo sends the browser to path: an HX-Redirect for HTMX requests
// (a plain 3xx would be followed by the XHR and swapped into the page),
// a 303 otherwise.
func redirectTo(w http.ResponseWriter, r *http.Request, path string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}
