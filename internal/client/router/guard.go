// Package router maps console paths to screens and gates protected ones on
// the session state.
package router

import "github.com/dmitrijs2005/prepadmin/internal/client/session"

// Decision is the outcome of Guard.
type Decision int

const (
	RenderLoading Decision = iota
	RedirectLogin
	RedirectUnauthorized
	RenderContent
)

func (d Decision) String() string {
	switch d {
	case RenderLoading:
		return "loading"
	case RedirectLogin:
		return "redirect-login"
	case RedirectUnauthorized:
		return "redirect-unauthorized"
	case RenderContent:
		return "render"
	}
	return "unknown"
}

// Guard decides what a protected route shows for s. The checks run in order:
// loading, unauthenticated, missing admin flag.
func Guard(s session.State, requireAdmin bool) Decision {
	switch {
	case s.Status == session.StatusLoading:
		return RenderLoading
	case s.Status != session.StatusAuthenticated || s.Identity == nil:
		return RedirectLogin
	case requireAdmin && !s.Identity.IsAdmin:
		return RedirectUnauthorized
	default:
		return RenderContent
	}
}
