// Package api serves the interview-prep REST API the console talks to: a
// small in-memory stand-in for the real backend, used for local work and
// end-to-end tests.
//
// Errors follow the FastAPI shape: {"detail": "..."} or, for rejected
// bodies, {"detail": [{"loc": [...], "msg": "..."}]}. Missing or invalid
// bearer tokens get 401; authenticated non-admins get 403 on admin routes.
package api

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/prepadmin/internal/logging"
	"github.com/dmitrijs2005/prepadmin/internal/server/content"
	"github.com/dmitrijs2005/prepadmin/internal/server/users"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// API holds the dependencies needed by the REST handlers.
type API struct {
	users     *users.Service
	store     *content.Store
	images    *imageStore
	log       logging.Logger
	metrics   *requestMetrics
	now       func() time.Time
	publicURL string
}

// Option configures the API instance.
type Option func(*API)

func WithLogger(l logging.Logger) Option {
	return func(a *API) { a.log = l }
}

// WithRegisterer records request counters in reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(a *API) { a.metrics = newRequestMetrics(reg) }
}

// WithPublicURL sets the base of returned image URLs. By default it is
// derived from the upload request.
func WithPublicURL(u string) Option {
	return func(a *API) { a.publicURL = u }
}

func New(us *users.Service, store *content.Store, opts ...Option) *API {
	a := &API{
		users:  us,
		store:  store,
		images: newImageStore(),
		log:    logging.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.metrics == nil {
		a.metrics = newRequestMetrics(nil)
	}
	return a
}

// Router returns a chi.Router with all API routes mounted. Mount it under
// the API prefix, e.g. /api/v1.
func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(a.observe)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.Post("/auth/login", a.Login)
	r.Post("/auth/signup", a.Signup)
	r.Post("/auth/refresh", a.Refresh)
	r.Get("/images/{name}", a.GetImage)

	r.Group(func(r chi.Router) {
		r.Use(a.AuthMiddleware)

		r.Get("/users/me", a.Me)

		r.Get("/templates", a.ListTemplates)
		r.Get("/templates/{id}", a.GetTemplate)
		r.Get("/lessons", a.ListLessons)
		r.Get("/lessons/{id}", a.GetLesson)

		r.Get("/interviews", a.ListInterviews)
		r.Post("/interviews", a.CreateInterview)
		r.Post("/interviews/embeddings", a.Embedding)
		r.Post("/interviews/embeddings/batch", a.Embeddings)
		r.Get("/interviews/{id}", a.GetInterview)
		r.Patch("/interviews/{id}", a.UpdateInterview)

		r.Post("/billing/checkout", a.Checkout)
		r.Post("/billing/portal", a.Portal)

		r.Group(func(r chi.Router) {
			r.Use(a.AdminMiddleware)

			r.Get("/users", a.ListUsers)
			r.Patch("/users/{id}", a.UpdateUser)

			r.Post("/templates", a.CreateTemplate)
			r.Put("/templates/{id}", a.UpdateTemplate)
			r.Delete("/templates/{id}", a.DeleteTemplate)

			r.Post("/lessons", a.CreateLesson)
			r.Patch("/lessons/{id}", a.UpdateLesson)
			r.Delete("/lessons/{id}", a.DeleteLesson)

			r.Delete("/interviews/{id}", a.DeleteInterview)

			r.Post("/images/upload", a.UploadImage)
		})
	})

	return r
}

func (a *API) timestamp() string {
	return a.now().UTC().Format(time.RFC3339)
}
