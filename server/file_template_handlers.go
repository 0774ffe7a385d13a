package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/jrsteele09/ims-console/routing"
	"github.com/jrsteele09/ims-console/sessions"
	"github.com/rs/zerolog"
)

const contentTypeHTML = "text/html; charset=utf-8"

//go:embed templates/*
var templateFiles embed.FS

var templateFS = mustSub(templateFiles, "templates")

var templateFuncs = template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	},
}

// ParseTemplate parses a template from the embedded filesystem
func ParseTemplate(name string) (*template.Template, error) {
	content, err := fs.ReadFile(templateFS, name)
	if err != nil {
		return nil, err
	}
	return template.New(name).Funcs(templateFuncs).Parse(string(content))
}

// contentTemplates are rendered inside layout.html
var contentTemplates = []string{
	"admin_summary.html",
	"admin_categories.html",
	"admin_products.html",
	"admin_suppliers.html",
	"admin_users.html",
	"orders.html",
	"profile.html",
	"operator_products.html",
}

// standaloneTemplates are full pages
var standaloneTemplates = []string{
	"login.html",
	"unauthorized.html",
	"not_found.html",
}

func (s *Server) parseTemplates() error {
	s.pages = make(map[string]*template.Template)
	for _, name := range append(append([]string{}, contentTemplates...), standaloneTemplates...) {
		tmpl, err := ParseTemplate(name)
		if err != nil {
			return fmt.Errorf("template %s: %w", name, err)
		}
		s.pages[name] = tmpl
	}

	layout, err := ParseTemplate("layout.html")
	if err != nil {
		return fmt.Errorf("template layout.html: %w", err)
	}
	s.layout = layout
	return nil
}

// page is what a console screen hands to renderPage
type page struct {
	Title    string
	Template string
	Data     any
	Error    string // shown as an error toast
	Notice   string // shown as a success toast
}

// renderPage renders a screen with the console layout and the menu for the
// signed-in user's role
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, p page) {
	tmpl, ok := s.pages[p.Template]
	if !ok {
		http.Error(w, "Failed to load content template", http.StatusInternalServerError)
		return
	}

	var content bytes.Buffer
	if err := tmpl.Execute(&content, p.Data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("template", p.Template).Msg("Failed to render content")
		http.Error(w, "Failed to render content", http.StatusInternalServerError)
		return
	}

	data := map[string]any{
		"AppName":   s.appName,
		"PageTitle": p.Title,
		"Path":      r.URL.Path,
		"Content":   template.HTML(content.String()),
		"Error":     firstNonEmpty(p.Error, r.URL.Query().Get("error")),
		"Notice":    firstNonEmpty(p.Notice, r.URL.Query().Get("notice")),
	}
	if sess := sessions.FromContext(r.Context()); sess != nil {
		if profile, ok := sess.CurrentUser(); ok {
			items, logout := routing.Menu(profile.Role)
			data["User"] = profile
			data["Menu"] = items
			data["Logout"] = logout
		}
	}

	s.renderStandalone(w, r, http.StatusOK, s.layout, data)
}

func (s *Server) renderStandalone(w http.ResponseWriter, r *http.Request, status int, tmpl *template.Template, data any) {
	var out bytes.Buffer
	if err := tmpl.Execute(&out, data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("template", tmpl.Name()).Msg("Failed to render page")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	_, _ = out.WriteTo(w)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
