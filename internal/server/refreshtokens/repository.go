// Package refreshtokens keeps the dev server's outstanding refresh tokens.
package refreshtokens

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/prepadmin/internal/common"
)

type Repository interface {
	Create(ctx context.Context, userID string, token string, validity time.Duration) error
	// Consume returns the owner of token and invalidates it. Unknown and
	// expired tokens yield common.ErrorNotFound.
	Consume(ctx context.Context, token string) (string, error)
}

type entry struct {
	userID    string
	expiresAt time.Time
}

// MemoryRepository is a Repository held in a map.
type MemoryRepository struct {
	mu     sync.Mutex
	tokens map[string]entry
	now    func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{tokens: make(map[string]entry), now: time.Now}
}

func (r *MemoryRepository) Create(_ context.Context, userID string, token string, validity time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tokens[token]; ok {
		return common.ErrorAlreadyExists
	}
	r.tokens[token] = entry{userID: userID, expiresAt: r.now().Add(validity)}
	return nil
}

func (r *MemoryRepository) Consume(_ context.Context, token string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.tokens[token]
	if !ok {
		return "", common.ErrorNotFound
	}
	delete(r.tokens, token)
	if r.now().After(e.expiresAt) {
		return "", common.ErrorNotFound
	}
	return e.userID, nil
}
