// Package tokenstore persists the single bearer credential of the console.
//
// A Store holds zero or one token. Get reports absence as ("", nil), Set
// overwrites, Clear is idempotent. Stores do not track expiry: a token is
// considered usable until the backend rejects it. All implementations are
// safe for concurrent use.
package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/prepadmin/internal/client/localdb"
	"github.com/dmitrijs2005/prepadmin/internal/common"
	"github.com/dmitrijs2005/prepadmin/internal/filex"
	"github.com/redis/go-redis/v9"
)

// Store is the persisted credential slot.
type Store interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Timestamped is implemented by stores that record when the token was
// written. ok is false when no token is stored.
type Timestamped interface {
	SavedAt(ctx context.Context) (at time.Time, ok bool, err error)
}

// ErrEmptyToken is returned by Set for an empty token; use Clear instead.
var ErrEmptyToken = errors.New("empty token")

// Options selects and configures a backend for Open.
type Options struct {
	Kind string

	SQLitePath string
	BoltPath   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// Open builds the Store described by o. The returned close function releases
// the backend's resources and is never nil.
func Open(ctx context.Context, o Options) (Store, func() error, error) {
	noop := func() error { return nil }

	switch o.Kind {
	case "memory":
		return NewMemoryStore(), noop, nil

	case "sqlite", "":
		if err := filex.EnsureParentDir(o.SQLitePath); err != nil {
			return nil, noop, err
		}
		db, err := localdb.Open(ctx, o.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return NewSQLiteStore(db), db.Close, nil

	case "bolt":
		if err := filex.EnsureParentDir(o.BoltPath); err != nil {
			return nil, noop, err
		}
		s, err := OpenBoltStore(o.BoltPath)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil

	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:        o.RedisAddr,
			Password:    o.RedisPassword,
			DB:          o.RedisDB,
			DialTimeout: 5 * time.Second,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			_ = rdb.Close()
			return nil, noop, fmt.Errorf("connect redis %s: %w", o.RedisAddr, err)
		}
		return NewRedisStore(rdb, o.RedisPrefix), rdb.Close, nil

	default:
		return nil, noop, fmt.Errorf("unknown token store %q", o.Kind)
	}
}

func slotKey(prefix string) string {
	return prefix + common.AccessTokenKey
}
