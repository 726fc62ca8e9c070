package client

import (
	"context"
	"time"
)

// Doer issues one backend request and decodes a 2xx JSON body into out
// (out may be nil). Resource clients depend on this rather than on Gateway.
type Doer interface {
	Do(ctx context.Context, r Request, out any) error
}

// Resetter discards in-memory session state and navigates to path,
// replacing the current history entry.
type Resetter interface {
	ResetAndNavigate(ctx context.Context, path string)
}

// ResetterFunc adapts a function to Resetter.
type ResetterFunc func(ctx context.Context, path string)

func (f ResetterFunc) ResetAndNavigate(ctx context.Context, path string) { f(ctx, path) }

// Observer receives one call per completed request. status is 0 when the
// request never got a response.
type Observer interface {
	ObserveRequest(method, route string, status int, d time.Duration)
	ObserveUnauthorized(route string)
}

// LoginPath is where the gateway sends the operator after a 401.
const LoginPath = "/login"

type nopResetter struct{}

func (nopResetter) ResetAndNavigate(context.Context, string) {}

type nopObserver struct{}

func (nopObserver) ObserveRequest(string, string, int, time.Duration) {}
func (nopObserver) ObserveUnauthorized(string)                        {}
