package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/prepadmin/internal/client/tokenstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*************
 * helpers
 *************/

type recordingResetter struct {
	mu    sync.Mutex
	paths []string
}

func (r *recordingResetter) ResetAndNavigate(_ context.Context, path string) {
	r.mu.Lock()
	r.paths = append(r.paths, path)
	r.mu.Unlock()
}

func (r *recordingResetter) calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

type countingObserver struct {
	mu           sync.Mutex
	statuses     []int
	unauthorized int
}

func (o *countingObserver) ObserveRequest(_, _ string, status int, _ time.Duration) {
	o.mu.Lock()
	o.statuses = append(o.statuses, status)
	o.mu.Unlock()
}

func (o *countingObserver) ObserveUnauthorized(string) {
	o.mu.Lock()
	o.unauthorized++
	o.mu.Unlock()
}

func newTestGateway(t *testing.T, h http.HandlerFunc, token string) (*Gateway, *tokenstore.MemoryStore, *recordingResetter) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	store := tokenstore.NewMemoryStore()
	if token != "" {
		require.NoError(t, store.Set(context.Background(), token))
	}
	rr := &recordingResetter{}
	g := New(srv.URL+"/api/v1", store, WithHTTPClient(srv.Client()), WithResetter(rr))
	return g, store, rr
}

/*************
 * outbound stage
 *************/

func TestGateway_AttachesBearerWhenTokenPresent(t *testing.T) {
	var gotAuth, gotReqID, gotPath string
	g, _, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		gotPath = r.URL.Path
		_, _ = io.WriteString(w, `[]`)
	}, "tok123")

	var out []map[string]any
	require.NoError(t, g.Do(context.Background(), Request{Path: "/templates"}, &out))

	assert.Equal(t, "Bearer tok123", gotAuth)
	assert.NotEmpty(t, gotReqID)
	assert.Equal(t, "/api/v1/templates", gotPath)
}

func TestGateway_NoAuthorizationHeaderWithoutToken(t *testing.T) {
	var present bool
	g, _, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header["Authorization"]
		w.WriteHeader(http.StatusOK)
	}, "")

	require.NoError(t, g.Do(context.Background(), Request{Path: "/templates"}, nil))
	assert.False(t, present)
}

func TestGateway_ContentTypeDefaultAndOverride(t *testing.T) {
	var got []string
	var mu sync.Mutex
	g, _, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		got = append(got, r.Header.Get("Content-Type"))
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}, "tok")

	ctx := context.Background()
	require.NoError(t, g.Do(ctx, Request{Method: http.MethodPost, Path: "/lessons", JSON: map[string]string{"id": "l1"}}, nil))
	require.NoError(t, g.Do(ctx, Request{Method: http.MethodPost, Path: "/images/upload", Body: strings.NewReader("--x--"), ContentType: "multipart/form-data; boundary=x"}, nil))

	assert.Equal(t, []string{"application/json", "multipart/form-data; boundary=x"}, got)
}

func TestGateway_QueryAndDecode(t *testing.T) {
	g, _, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Hard", r.URL.Query().Get("difficulty"))
		_, _ = io.WriteString(w, `{"id":"t1","title":"Case"}`)
	}, "tok")

	var out struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	err := g.Do(context.Background(), Request{Path: "templates", Query: map[string][]string{"difficulty": {"Hard"}}}, &out)
	require.NoError(t, err)
	assert.Equal(t, "t1", out.ID)
	assert.Equal(t, "Case", out.Title)
}

/*************
 * inbound stage
 *************/

func TestGateway_UnauthorizedClearsStoreAndNavigatesOnce(t *testing.T) {
	g, store, rr := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"detail":"Could not validate credentials"}`)
	}, "stale")

	err := g.Do(context.Background(), Request{Path: "/lessons"}, nil)
	require.ErrorIs(t, err, ErrUnauthorized)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Could not validate credentials", apiErr.Detail)

	tok, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tok)
	assert.Equal(t, []string{"/login"}, rr.calls())
}

func TestGateway_UnauthorizedWithOtherCallsInFlight(t *testing.T) {
	release := make(chan struct{})
	var inFlight sync.WaitGroup
	inFlight.Add(3)

	g, store, rr := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/users/me" {
			inFlight.Wait()
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		inFlight.Done()
		<-release
		_, _ = io.WriteString(w, `[]`)
	}, "tok")

	obs := &countingObserver{}
	g.observer = obs

	ctx := context.Background()
	var wg sync.WaitGroup
	var okCount atomic.Int32
	for _, p := range []string{"/templates", "/lessons", "/interviews"} {
		wg.Add(1)
		go func(p string) {
			defer wg.Done()
			if err := g.Do(ctx, Request{Path: p}, nil); err == nil {
				okCount.Add(1)
			}
		}(p)
	}

	err := g.Do(ctx, Request{Path: "/users/me"}, nil)
	require.ErrorIs(t, err, ErrUnauthorized)

	tok, _ := store.Get(ctx)
	assert.Empty(t, tok, "store is empty right after the 401 is handled")
	assert.Equal(t, []string{"/login"}, rr.calls())

	close(release)
	wg.Wait()

	assert.Equal(t, int32(3), okCount.Load())
	assert.Equal(t, []string{"/login"}, rr.calls(), "still exactly one navigation")
	assert.Equal(t, 1, obs.unauthorized)
}

func TestGateway_UnauthorizedWithSQLiteStore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/users/me" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = io.WriteString(w, `[]`)
	}))
	t.Cleanup(srv.Close)

	ctx := context.Background()
	store, closeFn, err := tokenstore.Open(ctx, tokenstore.Options{
		Kind:       "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "prepadmin.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })
	require.NoError(t, store.Set(ctx, "tok"))

	rr := &recordingResetter{}
	g := New(srv.URL+"/api/v1", store, WithHTTPClient(srv.Client()), WithResetter(rr))

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, g.Do(ctx, Request{Path: "/templates"}, nil))
		}()
	}
	require.ErrorIs(t, g.Do(ctx, Request{Path: "/users/me"}, nil), ErrUnauthorized)
	wg.Wait()

	tok, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
	assert.Equal(t, []string{"/login"}, rr.calls())
}

func TestGateway_OtherStatusesPassThrough(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		is     error
		detail string
	}{
		{"forbidden", http.StatusForbidden, `{"detail":"Admin only"}`, ErrForbidden, "Admin only"},
		{"not found", http.StatusNotFound, `{"detail":"Template not found"}`, ErrNotFound, "Template not found"},
		{"validation list", http.StatusUnprocessableEntity,
			`{"detail":[{"loc":["body","title"],"msg":"field required"},{"loc":["body","id"],"msg":"field required"}]}`,
			nil, "title: field required; id: field required"},
		{"no detail", http.StatusInternalServerError, `oops`, nil, "request failed with status 500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, store, rr := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}, "tok")

			err := g.Do(context.Background(), Request{Path: "/templates/x"}, nil)
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.detail, apiErr.Detail)
			assert.Equal(t, tt.body, string(apiErr.Body))
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
			assert.NotErrorIs(t, err, ErrUnauthorized)

			tok, _ := store.Get(context.Background())
			assert.Equal(t, "tok", tok, "non-401 leaves the token alone")
			assert.Empty(t, rr.calls())
		})
	}
}

func TestGateway_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	store := tokenstore.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), "tok"))
	rr := &recordingResetter{}
	g := New(base, store, WithResetter(rr))

	err := g.Do(context.Background(), Request{Path: "/templates"}, nil)
	require.ErrorIs(t, err, ErrUnavailable)

	tok, _ := store.Get(context.Background())
	assert.Equal(t, "tok", tok)
	assert.Empty(t, rr.calls())
}

func TestGateway_CancelledContext(t *testing.T) {
	g, _, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}, "tok")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := g.Do(ctx, Request{Path: "/templates"}, nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, errors.Is(err, ErrUnavailable))
}

func TestGateway_ObserverSeesStatuses(t *testing.T) {
	g, _, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/missing" {
			w.WriteHeader(http.StatusNotFound)
		}
	}, "tok")
	obs := &countingObserver{}
	g.observer = obs

	_ = g.Do(context.Background(), Request{Path: "/ok"}, nil)
	_ = g.Do(context.Background(), Request{Path: "/missing"}, nil)

	assert.Equal(t, []int{200, 404}, obs.statuses)
}

func TestNew_DefaultBaseURL(t *testing.T) {
	g := New("", tokenstore.NewMemoryStore())
	assert.Equal(t, DefaultBaseURL, g.BaseURL())
	assert.Equal(t, "http://h/api", New("http://h/api/", nil).BaseURL())
}
