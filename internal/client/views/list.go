// Package views holds screen state that outlives a single request.
package views

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/prepadmin/internal/client/client"
)

var (
	// ErrSuperseded is returned by a Load whose result was discarded because
	// a newer Load started.
	ErrSuperseded = errors.New("superseded by a newer fetch")
	ErrClosed     = errors.New("view closed")
)

// FetchFunc loads the items matching filter.
type FetchFunc[F, T any] func(ctx context.Context, filter F) ([]T, error)

// Snapshot is what a list screen renders. Err is the inline error text.
type Snapshot[F, T any] struct {
	Filter  F
	Items   []T
	Loading bool
	Err     string
}

// ListView runs one fetch per filter change. Each Load gets a sequence
// number and its own context; starting a Load cancels the previous one, and
// only the latest Load may update the snapshot. After Close nothing does.
type ListView[F, T any] struct {
	fetch    FetchFunc[F, T]
	fallback string

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	closed bool
	snap   Snapshot[F, T]
}

// NewListView builds a view; fallback is shown for errors without a backend
// detail.
func NewListView[F, T any](fetch FetchFunc[F, T], fallback string) *ListView[F, T] {
	return &ListView[F, T]{fetch: fetch, fallback: fallback}
}

// Load fetches the items for filter and waits for the result.
func (v *ListView[F, T]) Load(ctx context.Context, filter F) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrClosed
	}
	v.seq++
	seq := v.seq
	if v.cancel != nil {
		v.cancel()
	}
	fctx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	v.snap.Filter = filter
	v.snap.Loading = true
	v.mu.Unlock()

	items, err := v.fetch(fctx, filter)
	cancel()

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return ErrClosed
	}
	if seq != v.seq {
		return ErrSuperseded
	}
	v.cancel = nil
	v.snap.Loading = false
	if err != nil {
		v.snap.Err = client.ErrorDetail(err, v.fallback)
		return err
	}
	v.snap.Items = items
	v.snap.Err = ""
	return nil
}

// Reload repeats the fetch with the current filter.
func (v *ListView[F, T]) Reload(ctx context.Context) error {
	return v.Load(ctx, v.Snapshot().Filter)
}

func (v *ListView[F, T]) Snapshot() Snapshot[F, T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	s := v.snap
	s.Items = append([]T(nil), v.snap.Items...)
	return s
}

// Remove drops the items for which match is true, e.g. after a delete.
func (v *ListView[F, T]) Remove(match func(T) bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	kept := v.snap.Items[:0:0]
	for _, it := range v.snap.Items {
		if !match(it) {
			kept = append(kept, it)
		}
	}
	v.snap.Items = kept
}

// SetError shows msg inline, e.g. when a delete from this screen fails.
func (v *ListView[F, T]) SetError(err error, fallback string) {
	v.mu.Lock()
	v.snap.Err = client.ErrorDetail(err, fallback)
	v.mu.Unlock()
}

// Close unmounts the view: the in-flight fetch is cancelled and any later
// result is dropped.
func (v *ListView[F, T]) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}
