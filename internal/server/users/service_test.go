package users

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/prepadmin/internal/client/models"
	"github.com/dmitrijs2005/prepadmin/internal/common"
	"github.com/dmitrijs2005/prepadmin/internal/server/refreshtokens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService(NewMemoryRepository(), refreshtokens.NewMemoryRepository(),
		NewBcryptHasher(4), []byte("test-secret"), time.Minute, time.Hour)
}

func TestService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	u, err := s.Register(ctx, "admin@example.com", "pw", "Admin", true)
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.NotEqual(t, "pw", u.PasswordHash)

	_, err = s.Register(ctx, "ADMIN@example.com", "other", "", false)
	require.ErrorIs(t, err, common.ErrorAlreadyExists)

	_, err = s.Register(ctx, " ", "pw", "", false)
	require.ErrorIs(t, err, ErrInvalidSignup)

	pair, err := s.Login(ctx, "admin@example.com", "pw")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	got, err := s.Authenticate(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.True(t, got.Public().IsAdmin)
}

func TestService_LoginFailures(t *testing.T) {
	ctx := context.Background()
	s := newTestService()
	_, err := s.Register(ctx, "member@example.com", "pw", "", false)
	require.NoError(t, err)

	_, err = s.Login(ctx, "member@example.com", "wrong")
	require.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = s.Login(ctx, "nobody@example.com", "pw")
	require.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = s.Authenticate(ctx, "garbage")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestService_RefreshIsSingleUse(t *testing.T) {
	ctx := context.Background()
	s := newTestService()
	_, err := s.Register(ctx, "member@example.com", "pw", "", false)
	require.NoError(t, err)

	pair, err := s.Login(ctx, "member@example.com", "pw")
	require.NoError(t, err)

	next, err := s.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	_, err = s.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestService_UpdateAndList(t *testing.T) {
	ctx := context.Background()
	s := newTestService()
	a, err := s.Register(ctx, "a@example.com", "pw", "A", false)
	require.NoError(t, err)
	_, err = s.Register(ctx, "b@example.com", "pw", "B", false)
	require.NoError(t, err)

	admin := true
	name := "Alice"
	u, err := s.Update(ctx, a.ID, models.UserUpdate{IsAdmin: &admin, FullName: &name})
	require.NoError(t, err)
	assert.True(t, u.IsAdmin)
	assert.Equal(t, "Alice", u.FullName)

	_, err = s.Update(ctx, "missing", models.UserUpdate{})
	require.ErrorIs(t, err, common.ErrorNotFound)

	all, err := s.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	rest, err := s.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Len(t, rest, 1)

	none, err := s.List(ctx, 5, 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}
