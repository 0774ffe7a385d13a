// Package routing decides where a console visitor may go: admission to
// guarded screens, the landing screen for the root path, the role menu and
// forced navigation.
package routing

import (
	"github.com/jrsteele09/ims-console/users"
)

// Decision is the outcome of a guard evaluation. Exactly one of Admitted or
// Redirect is set.
type Decision struct {
	Admitted bool
	Redirect string
}

// Admit evaluates a guard requiring one of required. It is a pure function of
// its inputs and is re-run on every navigation. An empty required set admits
// no one.
func Admit(profile users.Profile, ok bool, required ...users.RoleType) Decision {
	if !ok {
		return Decision{Redirect: PathLogin}
	}
	if !profile.HasRole(required...) {
		return Decision{Redirect: PathUnauthorized}
	}
	return Decision{Admitted: true}
}

// EntryPath returns the landing screen for the root path. Anything that is
// not a known role goes to the login screen.
func EntryPath(profile users.Profile, ok bool) string {
	if !ok {
		return PathLogin
	}
	switch profile.Role {
	case users.RoleAdministrator:
		return PathAdminLanding
	case users.RoleOperator:
		return PathOperatorLanding
	default:
		return PathLogin
	}
}
