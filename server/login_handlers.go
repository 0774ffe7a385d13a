package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/jrsteele09/ims-console/credstore"
	"github.com/jrsteele09/ims-console/gateway"
	"github.com/jrsteele09/ims-console/internal/errors"
	"github.com/jrsteele09/ims-console/routing"
	"github.com/jrsteele09/ims-console/sessions"
)

const (
	msgMissingCredentials = "Please fill in both email and password."
	msgUnknownRole        = "Unrecognized role"
	msgLoginFailed        = "Login failed"
	msgLoggedOut          = "Logged out successfully!"
)

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	AppName string
	Error   string
	Notice  string
	Email   string // Preserve email on error
}

// LoginPageHandler displays the login page (GET /login). Visitors who are
// already signed in go to their landing screen.
func (s *Server) LoginPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if target := routing.EntryPath(sessions.FromContext(r.Context()).CurrentUser()); target != routing.PathLogin {
			redirectSuccess(w, r, target)
			return
		}

		data := LoginPageData{
			AppName: s.appName,
			Error:   r.URL.Query().Get("error"),
			Notice:  popFlash(w, r),
			Email:   r.URL.Query().Get("email"),
		}
		s.renderStandalone(w, r, http.StatusOK, s.pages["login.html"], data)
	}
}

// LoginSubmissionHandler processes the login form submission
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		email := strings.TrimSpace(r.FormValue("email"))
		password := r.FormValue("password")
		remember := r.FormValue("rememberMe") != ""

		if email == "" || password == "" {
			renderLoginError(w, r, msgMissingCredentials, email)
			return
		}

		resp, err := s.gateway.Login(r.Context(), gateway.LoginRequest{
			Email:      email,
			Password:   password,
			RememberMe: remember,
		})
		if err != nil {
			if errors.Is(err, gateway.ErrSessionInvalidated) {
				return
			}
			renderLoginError(w, r, loginErrorMessage(err), email)
			return
		}

		if rm, ok := credstore.FromContext(r.Context()).(interface{ RememberMe(bool) }); ok {
			rm.RememberMe(remember)
		}
		sessions.FromContext(r.Context()).Establish(resp.User, resp.Token)

		redirectSuccess(w, r, routing.EntryPath(resp.User, true))
	}
}

func loginErrorMessage(err error) string {
	var credErr *gateway.CredentialsError
	var urlErr *url.Error
	switch {
	case errors.As(err, &credErr):
		return credErr.Message
	case errors.Is(err, errors.ErrUnknownRole), errors.Is(err, errors.ErrInvalidProfile):
		return msgUnknownRole
	case errors.As(err, &urlErr):
		return msgUnreachable
	default:
		return msgLoginFailed
	}
}

func renderLoginError(w http.ResponseWriter, r *http.Request, msg, email string) {
	redirectWithQuery(w, r, RouteLogin, url.Values{"error": {msg}, "email": {email}})
}

// LogoutHandler ends the session. It is safe to repeat.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions.FromContext(r.Context()).Terminate()
		setFlash(w, r, msgLoggedOut)
		redirectSuccess(w, r, RouteLogin)
	}
}
