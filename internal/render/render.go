// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the admin interface.
// It supports full-page and HTMX partial rendering, automatically detecting
// the request type via the HX-Request header, and rendering a single named
// block for fragment endpoints such as list view interactions.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"argeinventory/internal/listview"
	"argeinventory/internal/middleware"
	"argeinventory/internal/models"
	"argeinventory/internal/session"
)

//go:embed templates/admin/*.html
var adminFS embed.FS

// PageData holds all data passed to admin templates.
type PageData struct {
	Title     string          // Page title for <title> tag
	Section   string          // Active sidebar section (e.g., "categories")
	Session   *session.Data   // Current user session (nil if unauthenticated)
	CSRFToken string          // CSRF token for forms and HTMX headers
	Data      map[string]any  // Page-specific data
	Flashes   []session.Flash // One-time notification messages
}

// Renderer handles template parsing and execution for admin pages.
type Renderer struct {
	templates map[string]*template.Template
	funcMap   template.FuncMap
}

// standaloneTemplates lists templates that render as full HTML pages
// without the base layout (they have their own <html>, <head>, etc.).
var standaloneTemplates = map[string]bool{
	"login":      true,
	"2fa_setup":  true,
	"2fa_verify": true,
}

// New creates a Renderer by parsing all admin templates from the embedded
// filesystem. Each page template is paired with the base layout.
// When devMode is true, templates load the unminified HTMX build and show
// a development badge.
func New(devMode bool) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		funcMap: template.FuncMap{
			"activeClass": func(current, target string) string {
				if current == target {
					return "nav-link active"
				}
				return "nav-link"
			},
			"isDev": func() bool {
				return devMode
			},
			"colorClass": colorClass,
			"sortIcon":   sortIcon,
			// inc turns a zero-based page index into the number users see.
			"inc": func(i int) int {
				return i + 1
			},
		},
	}

	entries, err := adminFS.ReadDir("templates/admin")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "base.html" || !strings.HasSuffix(name, ".html") {
			continue
		}

		tmplName := strings.TrimSuffix(name, ".html")

		// Standalone templates render as full pages without the base layout.
		var tmpl *template.Template
		var parseErr error

		if standaloneTemplates[tmplName] {
			tmpl, parseErr = template.New(name).Funcs(r.funcMap).ParseFS(
				adminFS, "templates/admin/"+name,
			)
		} else {
			tmpl, parseErr = template.New("base.html").Funcs(r.funcMap).ParseFS(
				adminFS, "templates/admin/base.html", "templates/admin/"+name,
			)
		}

		if parseErr != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, parseErr)
		}

		r.templates[tmplName] = tmpl
	}

	return r, nil
}

// Page renders a full admin page or an HTMX partial, depending on the
// request headers. For HTMX requests, only the "content" block is sent.
// For full page loads, the entire base layout is rendered.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	execName := "base.html"
	if standaloneTemplates[name] {
		execName = name + ".html"
	}
	if isHTMX(r) {
		execName = "content"
	}
	rn.execute(w, r, name, execName, data)
}

// Fragment renders only the named block of page name, regardless of the
// request type. List view interactions use it to swap the table in place.
func (rn *Renderer) Fragment(w http.ResponseWriter, r *http.Request, name, block string, data *PageData) {
	rn.execute(w, r, name, block, data)
}

func (rn *Renderer) execute(w http.ResponseWriter, r *http.Request, name, execName string, data *PageData) {
	tmpl, ok := rn.templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}

	// Inject CSRF token from context (set by CSRF middleware).
	data.CSRFToken = middleware.CSRFTokenFromCtx(r.Context())

	if data.Session == nil {
		data.Session = middleware.SessionFromCtx(r.Context())
	}

	// Render into a buffer so a failing template never leaves a half
	// written page behind a 200 status.
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, execName, data); err != nil {
		slog.Error("template execute failed", "template", name, "block", execName, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// isHTMX returns true if the request was made by HTMX (has HX-Request header).
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// colorClass maps a category color to its badge class. Unknown colors get
// the plain badge.
func colorClass(c models.Color) string {
	if !c.Valid() {
		return "badge"
	}
	return "badge badge-" + strings.ToLower(string(c))
}

// sortIcon returns the header indicator for a column's sort direction.
func sortIcon(d listview.SortDirection) string {
	switch d {
	case listview.SortAscending:
		return "▲"
	case listview.SortDescending:
		return "▼"
	default:
		return "↕"
	}
}
