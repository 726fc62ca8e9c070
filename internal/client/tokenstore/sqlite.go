package tokenstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/prepadmin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/prepadmin/internal/common"
	"github.com/dmitrijs2005/prepadmin/internal/dbx"
)

// SQLiteStore keeps the token in the access_token row of the local
// metadata table.
type SQLiteStore struct {
	db *sql.DB
}

var _ Timestamped = (*SQLiteStore)(nil)

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Get(ctx context.Context) (string, error) {
	v, err := metadata.NewSQLiteRepository(s.db).Get(ctx, common.AccessTokenKey)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return string(v), nil
}

func (s *SQLiteStore) Set(ctx context.Context, token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Set(ctx, common.AccessTokenKey, []byte(token))
	})
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Delete(ctx, common.AccessTokenKey)
	})
}

// SavedAt reports when the current token was stored.
func (s *SQLiteStore) SavedAt(ctx context.Context) (time.Time, bool, error) {
	return metadata.NewSQLiteRepository(s.db).UpdatedAt(ctx, common.AccessTokenKey)
}
