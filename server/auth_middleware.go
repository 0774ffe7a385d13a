package server

import (
	"net/http"

	"github.com/jrsteele09/ims-console/routing"
	"github.com/jrsteele09/ims-console/sessions"
	"github.com/jrsteele09/ims-console/users"
)

// RequireRole guards a screen: visitors without a session go to the login
// screen and those without one of roles go to the unauthorized screen.
// The decision is re-made if the session changes while the screen runs.
func (s *Server) RequireRole(roles ...users.RoleType) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			sess := sessions.FromContext(r.Context())
			nav := routing.FromContext(r.Context())
			if sess == nil || nav == nil {
				redirectSuccess(w, r, routing.PathLogin)
				return
			}

			profile, ok := sess.CurrentUser()
			if d := routing.Admit(profile, ok, roles...); !d.Admitted {
				redirectSuccess(w, r, d.Redirect)
				return
			}

			unsubscribe := sess.Subscribe(func(profile users.Profile, ok bool) {
				if d := routing.Admit(profile, ok, roles...); !d.Admitted {
					nav.Navigate(d.Redirect)
				}
			})
			defer unsubscribe()

			next(w, r)
		}
	}
}
