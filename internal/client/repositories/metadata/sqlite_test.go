package metadata

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/prepadmin/internal/client/localdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := localdb.Open(context.Background(), filepath.Join(t.TempDir(), "meta.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSetAndGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "access_token", []byte("tok123")))

	v, err := r.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.Equal(t, []byte("tok123"), v)
}

func TestGet_MissingKeyReturnsNilNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, err := r.Get(context.Background(), "access_token")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestSet_OverwritesAndTouchesTimestamp(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	first := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	second := first.Add(time.Hour)

	r.now = func() time.Time { return first }
	require.NoError(t, r.Set(ctx, "access_token", []byte("old")))
	r.now = func() time.Time { return second }
	require.NoError(t, r.Set(ctx, "access_token", []byte("new")))

	v, err := r.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), v)

	ts, ok, err := r.UpdatedAt(ctx, "access_token")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, second.Equal(ts), "got %v", ts)
}

func TestUpdatedAt_MissingKey(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	_, ok, err := r.UpdatedAt(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDelete_IsIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "access_token", []byte("tok")))
	require.NoError(t, r.Delete(ctx, "access_token"))
	require.NoError(t, r.Delete(ctx, "access_token"))

	v, err := r.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestErrorsAreWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	assert.ErrorContains(t, err, "failed to get metadata[k]")
	assert.ErrorContains(t, r.Set(ctx, "k", []byte("v")), "failed to set metadata[k]")
	assert.ErrorContains(t, r.Delete(ctx, "k"), "failed to delete metadata[k]")
	_, _, err = r.UpdatedAt(ctx, "k")
	assert.ErrorContains(t, err, "failed to get metadata[k] timestamp")
}
