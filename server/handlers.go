package server

import (
	"net/http"

	"github.com/jrsteele09/ims-console/routing"
	"github.com/jrsteele09/ims-console/sessions"
)

// EntryHandler sends the root path to the landing screen for the visitor
func (s *Server) EntryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		redirectSuccess(w, r, routing.EntryPath(sessions.FromContext(r.Context()).CurrentUser()))
	}
}

func (s *Server) UnauthorizedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := map[string]any{
			"AppName": s.appName,
			"Home":    RouteRoot,
		}
		s.renderStandalone(w, r, http.StatusForbidden, s.pages["unauthorized.html"], data)
	}
}

func (s *Server) NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := map[string]any{
			"AppName": s.appName,
			"Home":    RouteRoot,
			"Path":    r.URL.Path,
		}
		s.renderStandalone(w, r, http.StatusNotFound, s.pages["not_found.html"], data)
	}
}

// ProfileHandler shows the signed-in user's profile
func (s *Server) ProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, _ := sessions.FromContext(r.Context()).CurrentUser()
		s.renderPage(w, r, page{Title: "Profile", Template: "profile.html", Data: profile})
	}
}
