package cli

import (
	"context"

	"github.com/dmitrijs2005/prepadmin/internal/client/router"
)

// open navigates to path through the guard. It reports false, after telling
// the operator why, when the console did not land on the requested screen.
func (a *App) open(path string) (router.Match, bool) {
	m := a.router.Navigate(path)
	a.enter(m.Route.Screen)

	switch {
	case m.Decision == router.RenderLoading:
		printlnFn("Loading...")
		return m, false
	case m.Redirected():
		a.explain(m)
		return m, false
	}
	return m, true
}

func (a *App) explain(m router.Match) {
	switch m.Route.Screen {
	case router.ScreenLogin:
		printlnFn("Please log in first (type 'login').")
	case router.ScreenUnauthorized:
		printlnFn("Access denied: this console requires an admin account.")
	default:
		printlnFn("Redirected to", m.Path)
	}
}

// enter closes the list views that do not belong to screen, cancelling any
// fetch still running for them.
func (a *App) enter(screen router.Screen) {
	if screen != router.ScreenTemplates && a.templates != nil {
		a.templates.Close()
		a.templates = nil
	}
	if screen != router.ScreenLessons && a.lessons != nil {
		a.lessons.Close()
		a.lessons = nil
	}
	if screen != router.ScreenInterviews && a.interviews != nil {
		a.interviews.Close()
		a.interviews = nil
	}
	if screen != router.ScreenUsers && a.users != nil {
		a.users.Close()
		a.users = nil
	}
}

// Go opens path the way following a link in the admin UI would.
func (a *App) Go(ctx context.Context, path string) error {
	m, ok := a.open(path)
	if !ok {
		return nil
	}
	return a.render(ctx, m)
}

// Back returns to the previous screen.
func (a *App) Back(ctx context.Context) error {
	m, ok := a.router.Back()
	a.enter(m.Route.Screen)
	if !ok {
		printlnFn("No previous screen.")
		return nil
	}
	if m.Redirected() || m.Decision != router.RenderContent {
		a.explain(m)
		return nil
	}
	return a.render(ctx, m)
}

func (a *App) render(ctx context.Context, m router.Match) error {
	switch m.Route.Screen {
	case router.ScreenLogin:
		if a.isLoggedIn() {
			printlnFn("Already logged in. Type 'logout' to switch accounts.")
		} else {
			printlnFn("Not logged in. Type 'login' to sign in.")
		}
	case router.ScreenUnauthorized:
		printlnFn("Access denied: this console requires an admin account.")

	case router.ScreenTemplates:
		return a.listTemplates(ctx, a.templateFilter())
	case router.ScreenTemplateNew:
		return a.createTemplate(ctx)
	case router.ScreenTemplateEdit:
		return a.showTemplate(ctx, m.Params["id"])

	case router.ScreenLessons:
		return a.listLessons(ctx, a.lessonPage())
	case router.ScreenLessonNew:
		return a.createLesson(ctx)
	case router.ScreenLessonEdit:
		return a.showLesson(ctx, m.Params["id"])

	case router.ScreenInterviews:
		return a.listInterviews(ctx, a.interviewFilter())
	case router.ScreenInterview:
		return a.showInterview(ctx, m.Params["id"])
	case router.ScreenUsers:
		return a.listUsers(ctx, a.userPage())
	}
	return nil
}
