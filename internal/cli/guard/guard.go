// Package guard decides whether a destination is reachable given the current
// session. Decisions are pure: no network I/O, no session mutation.
package guard

import (
	"net/url"
	"slices"

	"github.com/canteen-dev/canteenctl/internal/cli/session"
)

const (
	// LoginPath is where unauthenticated navigation is sent. The originally
	// requested path travels along as the "redirect" query parameter.
	LoginPath = "/login"

	CustomerHome = "/user/home"
	AdminHome    = "/admin/dashboard"
)

// Route is the static access descriptor of a destination.
type Route struct {
	Path   string         `yaml:"path"`
	Public bool           `yaml:"public"`
	Roles  []session.Role `yaml:"roles"`
}

// RequiresAuth reports whether the destination needs an active session.
func (r Route) RequiresAuth() bool {
	return !r.Public
}

// Decision is the outcome of evaluating a route against a session:
// either allow, or redirect somewhere else.
type Decision struct {
	Allowed bool
	Target  string
	Query   url.Values
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func RedirectTo(target string, query url.Values) Decision {
	return Decision{Target: target, Query: query}
}

// HomeFor maps a role to its designated home destination.
func HomeFor(role session.Role) string {
	if role == session.RoleCustomer {
		return CustomerHome
	}
	return AdminHome
}

// Decide evaluates a destination against a session snapshot. sess is nil when
// nobody is logged in.
//
//  1. Public destinations are always allowed.
//  2. Without a session, redirect to login, preserving the original path.
//  3. With a session whose role is outside the destination's role set,
//     redirect to that role's home, never to login.
//  4. Otherwise allow.
func Decide(route Route, sess *session.Session) Decision {
	if route.Public {
		return Allow()
	}

	if sess == nil {
		query := url.Values{}
		query.Set("redirect", route.Path)
		return RedirectTo(LoginPath, query)
	}

	if len(route.Roles) > 0 && !slices.Contains(route.Roles, sess.Role) {
		return RedirectTo(HomeFor(sess.Role), nil)
	}

	return Allow()
}
