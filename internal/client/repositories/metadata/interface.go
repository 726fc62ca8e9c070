// Package metadata is a small key/value repository over the local SQLite
// metadata table. The session slot lives here.
package metadata

import (
	"context"
	"time"
)

// Repository stores opaque values under string keys. Get on a missing key
// returns (nil, nil).
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	UpdatedAt(ctx context.Context, key string) (time.Time, bool, error)
}
