package session

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/prepadmin/internal/client/client"
	"github.com/dmitrijs2005/prepadmin/internal/client/models"
	"github.com/dmitrijs2005/prepadmin/internal/client/resources"
	"github.com/dmitrijs2005/prepadmin/internal/client/tokenstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*************
 * fakes
 *************/

type fakeAuth struct {
	calls atomic.Int32
	resp  *models.AuthResponse
	err   error
}

func (f *fakeAuth) Login(context.Context, string, string) (*models.AuthResponse, error) {
	f.calls.Add(1)
	return f.resp, f.err
}

type fakeUsers struct {
	calls atomic.Int32
	user  *models.User
	err   error
}

func (f *fakeUsers) Me(context.Context) (*models.User, error) {
	f.calls.Add(1)
	return f.user, f.err
}

type fakeNav struct {
	mu    sync.Mutex
	paths []string
}

func (n *fakeNav) Replace(path string) {
	n.mu.Lock()
	n.paths = append(n.paths, path)
	n.mu.Unlock()
}

func recordStatuses(m *Manager) func() []Status {
	var mu sync.Mutex
	var got []Status
	m.Subscribe(func(s State) {
		mu.Lock()
		got = append(got, s.Status)
		mu.Unlock()
	})
	return func() []Status {
		mu.Lock()
		defer mu.Unlock()
		return append([]Status(nil), got...)
	}
}

func tokenOf(t *testing.T, s tokenstore.Store) string {
	t.Helper()
	tok, err := s.Get(context.Background())
	require.NoError(t, err)
	return tok
}

/*************
 * Restore
 *************/

func TestRestore_NoTokenSkipsNetwork(t *testing.T) {
	store := tokenstore.NewMemoryStore()
	users := &fakeUsers{}
	m := New(store, &fakeAuth{}, users)
	require.Equal(t, StatusLoading, m.State().Status, "initial state")
	statuses := recordStatuses(m)

	m.Restore(context.Background())

	assert.Equal(t, StatusUnauthenticated, m.State().Status)
	assert.Equal(t, []Status{StatusUnauthenticated}, statuses())
	assert.Zero(t, users.calls.Load())
}

func TestRestore_ValidToken(t *testing.T) {
	store := tokenstore.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), "tok"))
	m := New(store, &fakeAuth{}, &fakeUsers{user: &models.User{ID: "u1", IsAdmin: true}})

	m.Restore(context.Background())

	st := m.State()
	assert.Equal(t, StatusAuthenticated, st.Status)
	assert.Equal(t, "u1", st.Identity.ID)
	assert.True(t, st.IsAdmin())
	assert.Equal(t, "tok", tokenOf(t, store))
}

func TestRestore_RejectedTokenIsCleared(t *testing.T) {
	store := tokenstore.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), "expired"))
	m := New(store, &fakeAuth{}, &fakeUsers{err: errors.New("boom")})

	m.Restore(context.Background())

	assert.Equal(t, StatusUnauthenticated, m.State().Status)
	assert.Empty(t, tokenOf(t, store))
}

func TestRestore_RejectedByBackendThroughGateway(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"detail":"Could not validate credentials"}`)
	}))
	defer srv.Close()

	store := tokenstore.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), "expired"))

	var m *Manager
	gw := client.New(srv.URL, store, client.WithResetter(client.ResetterFunc(func(ctx context.Context, p string) {
		m.ResetAndNavigate(ctx, p)
	})))
	nav := &fakeNav{}
	m = New(store, gw, resources.NewUsers(gw), WithNavigator(nav))

	m.Restore(context.Background())

	assert.Equal(t, StatusUnauthenticated, m.State().Status)
	assert.Empty(t, tokenOf(t, store))
	assert.Equal(t, []string{"/login"}, nav.paths)
}

/*************
 * Login
 *************/

func TestLogin_Admin(t *testing.T) {
	store := tokenstore.NewMemoryStore()
	m := New(store,
		&fakeAuth{resp: &models.AuthResponse{AccessToken: "tok123"}},
		&fakeUsers{user: &models.User{ID: "u1", Email: "a@b.com", IsAdmin: true}})
	statuses := recordStatuses(m)

	require.NoError(t, m.Login(context.Background(), "a@b.com", "x"))

	st := m.State()
	assert.Equal(t, StatusAuthenticated, st.Status)
	assert.True(t, st.Identity.IsAdmin)
	assert.Equal(t, "tok123", tokenOf(t, store))
	assert.Equal(t, []Status{StatusLoading, StatusAuthenticated}, statuses())
	assert.Empty(t, m.LastError())
}

func TestLogin_NonAdminIsRejected(t *testing.T) {
	store := tokenstore.NewMemoryStore()
	m := New(store,
		&fakeAuth{resp: &models.AuthResponse{AccessToken: "tok-member"}},
		&fakeUsers{user: &models.User{ID: "u2", IsAdmin: false}})
	statuses := recordStatuses(m)

	err := m.Login(context.Background(), "member@b.com", "x")
	require.ErrorIs(t, err, ErrAdminRequired)

	assert.Equal(t, StatusUnauthenticated, m.State().Status)
	assert.Nil(t, m.State().Identity)
	assert.Empty(t, tokenOf(t, store))
	assert.Equal(t, "admin access required", m.LastError())
	assert.NotContains(t, statuses(), StatusAuthenticated)
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name    string
		auth    *fakeAuth
		users   *fakeUsers
		wantMsg string
	}{
		{
			name:    "wrong credentials",
			auth:    &fakeAuth{err: &client.APIError{Status: 401, Detail: "Incorrect email or password", Body: []byte(`{"detail":"Incorrect email or password"}`)}},
			users:   &fakeUsers{},
			wantMsg: "Incorrect email or password",
		},
		{
			name:    "backend down",
			auth:    &fakeAuth{err: client.ErrUnavailable},
			users:   &fakeUsers{},
			wantMsg: MsgLoginFailed,
		},
		{
			name:    "identity fetch fails",
			auth:    &fakeAuth{resp: &models.AuthResponse{AccessToken: "tok"}},
			users:   &fakeUsers{err: client.ErrUnavailable},
			wantMsg: MsgLoginFailed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := tokenstore.NewMemoryStore()
			m := New(store, tt.auth, tt.users)

			require.Error(t, m.Login(context.Background(), "a@b.com", "x"))
			assert.Equal(t, StatusUnauthenticated, m.State().Status)
			assert.Empty(t, tokenOf(t, store))
			assert.Equal(t, tt.wantMsg, m.LastError())
		})
	}
}

/*************
 * Logout / reset
 *************/

func TestLogout_SynchronousWithoutNetwork(t *testing.T) {
	store := tokenstore.NewMemoryStore()
	auth := &fakeAuth{resp: &models.AuthResponse{AccessToken: "tok"}}
	users := &fakeUsers{user: &models.User{IsAdmin: true}}
	m := New(store, auth, users)
	require.NoError(t, m.Login(context.Background(), "a@b.com", "x"))
	authCalls, userCalls := auth.calls.Load(), users.calls.Load()

	m.Logout()

	assert.Equal(t, StatusUnauthenticated, m.State().Status)
	assert.Empty(t, tokenOf(t, store))
	assert.Equal(t, authCalls, auth.calls.Load())
	assert.Equal(t, userCalls, users.calls.Load())
}

func TestResetAndNavigate(t *testing.T) {
	nav := &fakeNav{}
	m := New(tokenstore.NewMemoryStore(), &fakeAuth{}, &fakeUsers{})
	m.SetNavigator(nav)

	m.ResetAndNavigate(context.Background(), "/login")

	assert.Equal(t, StatusUnauthenticated, m.State().Status)
	assert.Equal(t, []string{"/login"}, nav.paths)
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	m := New(tokenstore.NewMemoryStore(), &fakeAuth{}, &fakeUsers{})
	var n atomic.Int32
	unsub := m.Subscribe(func(State) { n.Add(1) })

	m.Logout()
	unsub()
	unsub()
	m.Logout()

	assert.Equal(t, int32(1), n.Load())
}

/*************
 * end to end
 *************/

func TestEndToEnd_LoginThenListTemplates(t *testing.T) {
	var templatesAuth atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/login":
			require.NoError(t, r.ParseForm())
			if r.PostForm.Get("username") != "a@b.com" || r.PostForm.Get("password") != "x" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = io.WriteString(w, `{"access_token":"tok123","token_type":"bearer"}`)
		case "/api/v1/users/me":
			if r.Header.Get("Authorization") != "Bearer tok123" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = io.WriteString(w, `{"id":"u1","email":"a@b.com","full_name":"A B","is_admin":true}`)
		case "/api/v1/templates":
			templatesAuth.Store(r.Header.Get("Authorization"))
			_, _ = io.WriteString(w, `[]`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	store := tokenstore.NewMemoryStore()
	var m *Manager
	gw := client.New(srv.URL+"/api/v1", store, client.WithResetter(client.ResetterFunc(func(ctx context.Context, p string) {
		m.ResetAndNavigate(ctx, p)
	})))
	rs := resources.New(gw)
	m = New(store, gw, rs.Users)

	require.NoError(t, m.Login(context.Background(), "a@b.com", "x"))
	assert.Equal(t, "tok123", tokenOf(t, store))
	assert.Equal(t, StatusAuthenticated, m.State().Status)

	_, err := rs.Templates.List(context.Background(), models.TemplateFilters{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok123", templatesAuth.Load())
}
