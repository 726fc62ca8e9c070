package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/prepadmin/internal/client/client"
	"github.com/dmitrijs2005/prepadmin/internal/client/images"
	"github.com/dmitrijs2005/prepadmin/internal/client/metrics"
	"github.com/dmitrijs2005/prepadmin/internal/client/models"
	"github.com/dmitrijs2005/prepadmin/internal/client/resources"
	"github.com/dmitrijs2005/prepadmin/internal/client/router"
	"github.com/dmitrijs2005/prepadmin/internal/client/session"
	"github.com/dmitrijs2005/prepadmin/internal/client/tokenstore"
	"github.com/dmitrijs2005/prepadmin/internal/client/views"
	"github.com/dmitrijs2005/prepadmin/internal/config"
	"github.com/dmitrijs2005/prepadmin/internal/logging"
)

// Fallback messages for failures without a backend detail.
const (
	msgFetchTemplates  = "Failed to fetch templates"
	msgFetchTemplate   = "Failed to fetch template"
	msgSaveTemplate    = "Failed to save template"
	msgDeleteTemplate  = "Failed to delete template"
	msgFetchLessons    = "Failed to fetch lessons"
	msgFetchLesson     = "Failed to fetch lesson"
	msgSaveLesson      = "Failed to save lesson"
	msgDeleteLesson    = "Failed to delete lesson"
	msgFetchInterviews = "Failed to fetch interviews"
	msgFetchInterview  = "Failed to fetch interview"
	msgFetchUsers      = "Failed to fetch users"
	msgUploadImage     = "Failed to upload image"
)

type App struct {
	config   *config.Config
	log      logging.Logger
	tokens   tokenstore.Store
	metrics  *metrics.Metrics
	gateway  *client.Gateway
	res      *resources.Set
	session  *session.Manager
	router   *router.Router
	uploader images.Uploader
	reader   *bufio.Reader
	out      io.Writer

	closeStore func() error

	templates  *views.ListView[models.TemplateFilters, models.Template]
	lessons    *views.ListView[models.Page, models.Lesson]
	interviews *views.ListView[models.InterviewFilters, models.Interview]
	users      *views.ListView[models.Page, models.User]
}

// NewApp opens the configured token store and wires the console around it.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	store, closeStore, err := tokenstore.Open(ctx, tokenstore.Options{
		Kind:          c.TokenStore,
		SQLitePath:    c.DatabasePath,
		BoltPath:      c.BoltPath,
		RedisAddr:     c.RedisAddr,
		RedisPassword: c.RedisPass,
		RedisDB:       c.RedisDB,
		RedisPrefix:   c.RedisPrefix,
	})
	if err != nil {
		log.Error(ctx, "error opening token store", "kind", c.TokenStore, "error", err)
		return nil, err
	}

	a, err := newApp(ctx, c, log, store, &http.Client{Timeout: c.RequestTimeout}, os.Stdin, os.Stdout)
	if err != nil {
		_ = closeStore()
		return nil, err
	}
	a.closeStore = closeStore
	return a, nil
}

func newApp(ctx context.Context, c *config.Config, log logging.Logger, store tokenstore.Store, hc *http.Client, in io.Reader, out io.Writer) (*App, error) {
	a := &App{
		config:     c,
		log:        log,
		tokens:     store,
		metrics:    metrics.New("prepadmin"),
		reader:     bufio.NewReader(in),
		out:        out,
		closeStore: func() error { return nil },
	}

	// The session manager does not exist yet; the closure reads a.session
	// only when a 401 arrives.
	reset := client.ResetterFunc(func(ctx context.Context, path string) {
		a.session.ResetAndNavigate(ctx, path)
		printlnFn("Your session has expired. Please log in again.")
	})

	a.gateway = client.New(c.APIBaseURL, store,
		client.WithHTTPClient(hc),
		client.WithLogger(log),
		client.WithObserver(a.metrics),
		client.WithResetter(reset),
	)
	a.res = resources.New(a.gateway)
	a.session = session.New(store, a.gateway, a.res.Users, session.WithLogger(log))

	nav := router.NewNavigator(router.PathRoot)
	a.session.SetNavigator(nav)
	a.router = router.New(a.session, nav)

	switch c.ImageUploader {
	case config.UploaderS3:
		up, err := images.NewS3Uploader(ctx, images.S3Options{
			Region:        c.S3Region,
			Bucket:        c.S3Bucket,
			BaseEndpoint:  c.S3BaseEndpoint,
			AccessKey:     c.S3AccessKey,
			SecretKey:     c.S3SecretKey,
			PublicBaseURL: c.S3PublicBaseURL,
		}, hc)
		if err != nil {
			return nil, fmt.Errorf("s3 uploader: %w", err)
		}
		a.uploader = up
	case config.UploaderBackend, "":
		a.uploader = images.NewBackendUploader(a.res.Images)
	default:
		return nil, fmt.Errorf("unknown image uploader %q", c.ImageUploader)
	}

	return a, nil
}

// Run restores the persisted session, opens the landing screen and serves
// the REPL until the operator exits.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	a.session.Restore(ctx)
	printlnFn("prepadmin console, backend", a.gateway.BaseURL())
	_ = a.Go(ctx, router.PathRoot)

	runREPL(ctx, a, a.status, a.reader)
	return nil
}

// Close releases the open list views and the token store.
func (a *App) Close() error {
	a.enter("")
	return a.closeStore()
}

func (a *App) isLoggedIn() bool {
	return a.session.State().Status == session.StatusAuthenticated
}

// status is the prompt text: who is signed in and where the console is.
func (a *App) status() string {
	who := "guest"
	if s := a.session.State(); s.Identity != nil {
		who = s.Identity.Email
	}
	return fmt.Sprintf("%s %s", who, a.router.Navigator().Current())
}
