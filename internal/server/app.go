// Package server runs the development backend: the REST API under /api/v1,
// Prometheus metrics under /metrics and a health probe, with graceful
// shutdown on SIGINT, SIGTERM or SIGQUIT.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/prepadmin/internal/common"
	"github.com/dmitrijs2005/prepadmin/internal/config"
	"github.com/dmitrijs2005/prepadmin/internal/logging"
	"github.com/dmitrijs2005/prepadmin/internal/server/api"
	"github.com/dmitrijs2005/prepadmin/internal/server/content"
	"github.com/dmitrijs2005/prepadmin/internal/server/refreshtokens"
	"github.com/dmitrijs2005/prepadmin/internal/server/users"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// APIPrefix is where the REST API is mounted.
const APIPrefix = "/api/v1"

const (
	refreshTokenValidity = 7 * 24 * time.Hour
	shutdownTimeout      = 5 * time.Second
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	api      *api.API
	registry *prometheus.Registry
}

// NewApp builds the server with its seed accounts and sample content. An
// empty DevServerSecret gets a random one, so tokens do not survive a
// restart.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	secret := c.DevServerSecret
	if secret == "" {
		s, err := common.MakeRandHexString(32)
		if err != nil {
			return nil, fmt.Errorf("generate secret: %w", err)
		}
		secret = s
	}

	us := users.NewService(users.NewMemoryRepository(), refreshtokens.NewMemoryRepository(),
		users.NewBcryptHasher(0), []byte(secret), c.DevTokenValidity, refreshTokenValidity)

	seeds := []struct {
		email, password, name string
		admin                 bool
	}{
		{c.DevAdminEmail, c.DevAdminPassword, "Admin", true},
		{c.DevMemberEmail, c.DevMemberPassword, "Member", false},
	}
	for _, s := range seeds {
		if s.email == "" {
			continue
		}
		if _, err := us.Register(ctx, s.email, s.password, s.name, s.admin); err != nil {
			return nil, fmt.Errorf("seed user %s: %w", s.email, err)
		}
		logger.Info(ctx, "seeded account", "email", s.email, "admin", s.admin)
	}

	store := content.NewStore()
	if err := store.Seed(time.Now()); err != nil {
		return nil, fmt.Errorf("seed content: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &App{
		config:   c,
		logger:   logger,
		api:      api.New(us, store, api.WithLogger(logger), api.WithRegisterer(reg)),
		registry: reg,
	}, nil
}

// Handler is the full HTTP surface of the server.
func (app *App) Handler() http.Handler {
	r := chi.NewRouter()
	r.Mount(APIPrefix, app.api.Router())
	r.Handle("/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves on the configured address until ctx ends or a signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	app.initSignalHandler(cancelFunc)

	ln, err := net.Listen("tcp", app.config.DevServerAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", app.config.DevServerAddr, err)
	}
	return app.Serve(ctx, ln)
}

// Serve serves on ln until ctx ends, then shuts down gracefully.
func (app *App) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           app.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "dev server listening", "addr", ln.Addr().String(), "api", APIPrefix)
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down dev server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
