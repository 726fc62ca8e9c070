package router

import (
	"strings"

	"github.com/dmitrijs2005/prepadmin/internal/client/session"
)

const (
	PathRoot         = "/"
	PathLogin        = "/login"
	PathUnauthorized = "/unauthorized"
	PathHome         = "/admin/templates"
)

// Screen names what a route renders.
type Screen string

const (
	ScreenLogin        Screen = "login"
	ScreenUnauthorized Screen = "unauthorized"
	ScreenTemplates    Screen = "templates"
	ScreenTemplateNew  Screen = "template-new"
	ScreenTemplateEdit Screen = "template-edit"
	ScreenLessons      Screen = "lessons"
	ScreenLessonNew    Screen = "lesson-new"
	ScreenLessonEdit   Screen = "lesson-edit"
	ScreenInterviews   Screen = "interviews"
	ScreenInterview    Screen = "interview"
	ScreenUsers        Screen = "users"
)

// Route is one entry of the routing table. Pattern segments starting with
// ':' capture a parameter.
type Route struct {
	Pattern      string
	Screen       Screen
	Protected    bool
	RequireAdmin bool
}

// DefaultRoutes is the console's table. Order matters: the first match wins.
var DefaultRoutes = []Route{
	{Pattern: PathLogin, Screen: ScreenLogin},
	{Pattern: PathUnauthorized, Screen: ScreenUnauthorized},

	{Pattern: "/admin/templates", Screen: ScreenTemplates, Protected: true, RequireAdmin: true},
	{Pattern: "/admin/templates/new", Screen: ScreenTemplateNew, Protected: true, RequireAdmin: true},
	{Pattern: "/admin/templates/edit/:id", Screen: ScreenTemplateEdit, Protected: true, RequireAdmin: true},

	{Pattern: "/admin/lessons", Screen: ScreenLessons, Protected: true, RequireAdmin: true},
	{Pattern: "/admin/lessons/new", Screen: ScreenLessonNew, Protected: true, RequireAdmin: true},
	{Pattern: "/admin/lessons/:id", Screen: ScreenLessonEdit, Protected: true, RequireAdmin: true},

	{Pattern: "/admin/interviews", Screen: ScreenInterviews, Protected: true, RequireAdmin: true},
	{Pattern: "/admin/interviews/:id", Screen: ScreenInterview, Protected: true, RequireAdmin: true},
	{Pattern: "/admin/users", Screen: ScreenUsers, Protected: true, RequireAdmin: true},
}

// Match is a resolved navigation. Path is where the console ends up after
// redirects; Requested is what was asked for.
type Match struct {
	Requested string
	Path      string
	Route     Route
	Params    map[string]string
	Decision  Decision
}

// Redirected reports whether Path differs from Requested.
func (m Match) Redirected() bool { return m.Path != m.Requested }

type StateSource interface {
	State() session.State
}

type Router struct {
	routes []Route
	state  StateSource
	nav    *Navigator
}

func New(state StateSource, nav *Navigator, routes ...Route) *Router {
	if len(routes) == 0 {
		routes = DefaultRoutes
	}
	return &Router{routes: routes, state: state, nav: nav}
}

func (r *Router) Navigator() *Navigator { return r.nav }

// maxRedirects guards against a table that redirects in a cycle.
const maxRedirects = 8

// Resolve matches path, applies the guard and follows redirects without
// touching the navigator.
func (r *Router) Resolve(path string) Match {
	requested := cleanPath(path)
	cur := requested
	s := r.state.State()

	for i := 0; ; i++ {
		route, params, ok := r.lookup(cur)
		if !ok {
			// "/" and unknown paths land on the template list.
			cur = PathHome
			route, params, _ = r.lookup(cur)
		}

		d := RenderContent
		if route.Protected {
			d = Guard(s, route.RequireAdmin)
		}

		var next string
		switch d {
		case RedirectLogin:
			next = PathLogin
		case RedirectUnauthorized:
			next = PathUnauthorized
		}
		if next == "" || i >= maxRedirects {
			return Match{Requested: requested, Path: cur, Route: route, Params: params, Decision: d}
		}
		cur = next
	}
}

// Navigate resolves path and records it in the history. Redirect targets
// replace the requested path, so Back never returns to a guarded URL.
func (r *Router) Navigate(path string) Match {
	m := r.Resolve(path)
	r.nav.Push(m.Path)
	return m
}

// Refresh re-resolves the current location, e.g. after the session changed,
// replacing it if a redirect applies.
func (r *Router) Refresh() Match {
	m := r.Resolve(r.nav.Current())
	if m.Redirected() {
		r.nav.Replace(m.Path)
	}
	return m
}

// Back pops the history and re-resolves the location it lands on.
func (r *Router) Back() (Match, bool) {
	if _, ok := r.nav.Back(); !ok {
		return r.Refresh(), false
	}
	return r.Refresh(), true
}

func (r *Router) lookup(path string) (Route, map[string]string, bool) {
	for _, rt := range r.routes {
		if params, ok := matchPattern(rt.Pattern, path); ok {
			return rt, params, true
		}
	}
	return Route{}, nil, false
}

func matchPattern(pattern, path string) (map[string]string, bool) {
	ps := splitPath(pattern)
	xs := splitPath(path)
	if len(ps) != len(xs) {
		return nil, false
	}
	var params map[string]string
	for i, p := range ps {
		if strings.HasPrefix(p, ":") {
			if xs[i] == "" {
				return nil, false
			}
			if params == nil {
				params = make(map[string]string)
			}
			params[p[1:]] = xs[i]
			continue
		}
		if p != xs[i] {
			return nil, false
		}
	}
	return params, true
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func cleanPath(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	p = strings.TrimSpace(p)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	return p
}
