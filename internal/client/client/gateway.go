package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/prepadmin/internal/client/tokenstore"
	"github.com/dmitrijs2005/prepadmin/internal/common"
	"github.com/dmitrijs2005/prepadmin/internal/logging"
	"github.com/google/uuid"
)

const (
	DefaultBaseURL     = "http://localhost:8000/api/v1"
	DefaultContentType = "application/json"

	maxResponseBody = 10 << 20
)

// Request describes one backend call. Path is relative to the base URL.
// Route is the path pattern used as a metrics label; Path is used when
// empty. Body takes precedence over JSON.
type Request struct {
	Method      string
	Path        string
	Route       string
	Query       url.Values
	Body        io.Reader
	JSON        any
	ContentType string
}

func (r Request) route() string {
	if r.Route != "" {
		return r.Route
	}
	return r.Path
}

// Gateway is the single choke point for backend requests.
type Gateway struct {
	baseURL     string
	contentType string
	http        *http.Client
	tokens      tokenstore.Store
	resetter    Resetter
	log         logging.Logger
	observer    Observer
	newID       func() string
}

var _ Doer = (*Gateway)(nil)

type Option func(*Gateway)

func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) { g.http = c }
}

func WithLogger(l logging.Logger) Option {
	return func(g *Gateway) { g.log = l }
}

func WithObserver(o Observer) Option {
	return func(g *Gateway) { g.observer = o }
}

// WithResetter sets the collaborator notified after a 401.
func WithResetter(r Resetter) Option {
	return func(g *Gateway) { g.resetter = r }
}

// WithContentType replaces the default Content-Type of bodies.
func WithContentType(ct string) Option {
	return func(g *Gateway) { g.contentType = ct }
}

// New returns a Gateway for baseURL (DefaultBaseURL when empty) reading the
// credential from tokens.
func New(baseURL string, tokens tokenstore.Store, opts ...Option) *Gateway {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	g := &Gateway{
		baseURL:     strings.TrimRight(baseURL, "/"),
		contentType: DefaultContentType,
		http:        http.DefaultClient,
		tokens:      tokens,
		resetter:    nopResetter{},
		log:         logging.Nop(),
		observer:    nopObserver{},
		newID:       uuid.NewString,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// BaseURL returns the address every request is resolved against.
func (g *Gateway) BaseURL() string { return g.baseURL }

// Do sends r with the stored bearer token attached and decodes a 2xx JSON
// response into out. A 401 clears the token store and triggers the
// Resetter before the error is returned.
func (g *Gateway) Do(ctx context.Context, r Request, out any) error {
	return g.send(ctx, r, out, true)
}

// doAnonymous is the unauthenticated path used by the auth endpoints. A 401
// still clears the store but does not navigate.
func (g *Gateway) doAnonymous(ctx context.Context, r Request, out any) error {
	return g.send(ctx, r, out, false)
}

func (g *Gateway) send(ctx context.Context, r Request, out any, authenticated bool) error {
	req, err := g.newRequest(ctx, r)
	if err != nil {
		return err
	}

	if authenticated {
		if err := g.withAuthorization(ctx, req); err != nil {
			return err
		}
	}

	reqID := g.newID()
	req.Header.Set(common.RequestIDHeaderName, reqID)
	log := g.log.With("method", req.Method, "path", r.Path, "request_id", reqID)

	start := time.Now()
	resp, err := g.http.Do(req)
	if err != nil {
		g.observer.ObserveRequest(req.Method, r.route(), 0, time.Since(start))
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		log.Warn(ctx, "request failed", "error", err)
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, req.Method, r.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	elapsed := time.Since(start)
	g.observer.ObserveRequest(req.Method, r.route(), resp.StatusCode, elapsed)
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}
	log.Info(ctx, "request completed", "status", resp.StatusCode, "duration", elapsed)

	return g.inspect(ctx, r, resp.StatusCode, body, out, authenticated)
}

func (g *Gateway) newRequest(ctx context.Context, r Request) (*http.Request, error) {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	u := g.baseURL + "/" + strings.TrimLeft(r.Path, "/")
	if len(r.Query) > 0 {
		u += "?" + r.Query.Encode()
	}

	body := r.Body
	if body == nil && r.JSON != nil {
		b, err := json.Marshal(r.JSON)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		ct := r.ContentType
		if ct == "" {
			ct = g.contentType
		}
		req.Header.Set("Content-Type", ct)
	}
	return req, nil
}

// withAuthorization is the outbound stage.
func (g *Gateway) withAuthorization(ctx context.Context, req *http.Request) error {
	token, err := g.tokens.Get(ctx)
	if err != nil {
		return fmt.Errorf("read token: %w", err)
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}
	return nil
}

// inspect is the inbound stage.
func (g *Gateway) inspect(ctx context.Context, r Request, status int, body []byte, out any, authenticated bool) error {
	if status == http.StatusUnauthorized {
		g.handleUnauthorized(ctx, r, authenticated)
	}

	if status < 200 || status > 299 {
		return newAPIError(status, body)
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", r.Path, err)
	}
	return nil
}

func (g *Gateway) handleUnauthorized(ctx context.Context, r Request, navigate bool) {
	g.observer.ObserveUnauthorized(r.route())

	// The caller may already be cancelled; the credential must go regardless.
	if err := g.tokens.Clear(context.WithoutCancel(ctx)); err != nil {
		g.log.Error(ctx, "failed to clear token after 401", "path", r.Path, "error", err)
	}
	if !navigate {
		return
	}
	g.log.Warn(ctx, "session rejected by backend, returning to login", "path", r.Path)
	g.resetter.ResetAndNavigate(ctx, LoginPath)
}
