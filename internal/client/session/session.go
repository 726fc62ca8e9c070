// Package session owns the console's notion of who is signed in.
//
// The Manager is an observable store: State returns a snapshot and Subscribe
// registers a callback that runs after every transition. It starts in
// StatusLoading; Restore or Login move it on.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/prepadmin/internal/client/client"
	"github.com/dmitrijs2005/prepadmin/internal/client/models"
	"github.com/dmitrijs2005/prepadmin/internal/client/tokenstore"
	"github.com/dmitrijs2005/prepadmin/internal/logging"
)

// ErrAdminRequired rejects a login whose identity is not an admin.
var ErrAdminRequired = errors.New("admin access required")

// MsgLoginFailed is shown when a failed login carries no backend detail.
const MsgLoginFailed = "Login failed. Please check your credentials."

type Authenticator interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
}

type IdentityFetcher interface {
	Me(ctx context.Context) (*models.User, error)
}

// Navigator moves the console to path, replacing the current history entry.
type Navigator interface {
	Replace(path string)
}

type Manager struct {
	tokens tokenstore.Store
	auth   Authenticator
	users  IdentityFetcher
	log    logging.Logger

	mu      sync.Mutex
	state   State
	lastErr string
	nav     Navigator
	subs    map[int]func(State)
	nextSub int

	// notifyMu keeps callbacks in transition order.
	notifyMu sync.Mutex
}

type Option func(*Manager)

func WithLogger(l logging.Logger) Option {
	return func(m *Manager) { m.log = l }
}

func WithNavigator(n Navigator) Option {
	return func(m *Manager) { m.nav = n }
}

func New(tokens tokenstore.Store, auth Authenticator, users IdentityFetcher, opts ...Option) *Manager {
	m := &Manager{
		tokens: tokens,
		auth:   auth,
		users:  users,
		log:    logging.Nop(),
		state:  Loading(),
		subs:   make(map[int]func(State)),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// SetNavigator wires the navigator once it exists.
func (m *Manager) SetNavigator(n Navigator) {
	m.mu.Lock()
	m.nav = n
	m.mu.Unlock()
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// LastError is the message of the latest failed login, "" after a success.
func (m *Manager) LastError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// Subscribe registers fn for every later transition. Callbacks run on the
// goroutine that caused the transition and must not call Restore, Login,
// Logout or ResetAndNavigate.
func (m *Manager) Subscribe(fn func(State)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			m.mu.Unlock()
		})
	}
}

func (m *Manager) set(s State) {
	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()

	m.mu.Lock()
	m.state = s
	subs := make([]func(State), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	for _, fn := range subs {
		fn(s)
	}
}

// clearToken never fails the caller: a store that cannot be cleared is
// logged and the session still ends.
func (m *Manager) clearToken(ctx context.Context) {
	if err := m.tokens.Clear(context.WithoutCancel(ctx)); err != nil {
		m.log.Error(ctx, "failed to clear token", "error", err)
	}
}

// Restore resolves a persisted token into an identity. Run once at startup.
// Failures end in StatusUnauthenticated with the store cleared.
func (m *Manager) Restore(ctx context.Context) {
	if m.State().Status != StatusLoading {
		m.set(Loading())
	}

	token, err := m.tokens.Get(ctx)
	if err != nil {
		m.log.Warn(ctx, "cannot read stored token", "error", err)
		m.clearToken(ctx)
		m.set(Unauthenticated())
		return
	}
	if token == "" {
		m.set(Unauthenticated())
		return
	}

	u, err := m.users.Me(ctx)
	if err != nil {
		m.log.Info(ctx, "stored session rejected", "error", err)
		m.clearToken(ctx)
		m.set(Unauthenticated())
		return
	}
	m.log.Info(ctx, "session restored", "email", u.Email, "is_admin", u.IsAdmin)
	m.set(Authenticated(u))
}

// Login signs in and requires an admin identity. On any failure the store is
// cleared, the state is StatusUnauthenticated and the error is returned.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	m.mu.Lock()
	m.lastErr = ""
	m.mu.Unlock()
	m.set(Loading())

	u, err := m.login(ctx, email, password)
	if err != nil {
		m.clearToken(ctx)
		msg := err.Error()
		if !errors.Is(err, ErrAdminRequired) {
			msg = client.ErrorDetail(err, MsgLoginFailed)
		}
		m.mu.Lock()
		m.lastErr = msg
		m.mu.Unlock()
		m.log.Warn(ctx, "login failed", "email", email, "error", err)
		m.set(Unauthenticated())
		return err
	}

	m.log.Info(ctx, "logged in", "email", u.Email)
	m.set(Authenticated(u))
	return nil
}

func (m *Manager) login(ctx context.Context, email, password string) (*models.User, error) {
	resp, err := m.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := m.tokens.Set(ctx, resp.AccessToken); err != nil {
		return nil, err
	}
	u, err := m.users.Me(ctx)
	if err != nil {
		return nil, err
	}
	if !u.IsAdmin {
		return nil, ErrAdminRequired
	}
	return u, nil
}

// Logout clears the store and ends the session. No request is made.
func (m *Manager) Logout() {
	m.clearToken(context.Background())
	m.set(Unauthenticated())
}

// ResetAndNavigate discards the in-memory identity and moves to path. The
// gateway calls it after a 401, having already cleared the store.
func (m *Manager) ResetAndNavigate(ctx context.Context, path string) {
	m.log.Debug(ctx, "resetting session", "to", path)
	m.set(Unauthenticated())

	m.mu.Lock()
	nav := m.nav
	m.mu.Unlock()
	if nav != nil {
		nav.Replace(path)
	}
}

var _ client.Resetter = (*Manager)(nil)
