package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/prepadmin/internal/client/models"
	"github.com/dmitrijs2005/prepadmin/internal/common"
	"github.com/dmitrijs2005/prepadmin/internal/server/auth"
	"github.com/dmitrijs2005/prepadmin/internal/server/refreshtokens"
	"github.com/google/uuid"
)

// ErrInvalidSignup rejects a registration with an empty email or password.
var ErrInvalidSignup = errors.New("email and password are required")

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type Service struct {
	repo                         Repository
	refreshTokenRepo             refreshtokens.Repository
	hasher                       Hasher
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	now                          func() time.Time
}

func NewService(repo Repository, refreshTokenRepo refreshtokens.Repository, hasher Hasher, secret []byte, accessValidity, refreshValidity time.Duration) *Service {
	return &Service{
		repo:                         repo,
		refreshTokenRepo:             refreshTokenRepo,
		hasher:                       hasher,
		jwtSecret:                    secret,
		accessTokenValidityDuration:  accessValidity,
		refreshTokenValidityDuration: refreshValidity,
		now:                          time.Now,
	}
}

// Register creates an account. A taken email yields common.ErrorAlreadyExists.
func (s *Service) Register(ctx context.Context, email, password, fullName string, isAdmin bool) (*User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidSignup
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := &User{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
		IsAdmin:      isAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

func (s *Service) issue(ctx context.Context, user *User) (*TokenPair, error) {
	accessToken, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	refreshToken, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}

	if err := s.refreshTokenRepo.Create(ctx, user.ID, refreshToken, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Login checks the password and issues a token pair. Unknown emails and
// wrong passwords both yield common.ErrorUnauthorized.
func (s *Service) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.repo.GetUserByLogin(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if !s.hasher.Check(password, user.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}

	return s.issue(ctx, user)
}

// Refresh trades a refresh token for a new pair. Refresh tokens are single
// use.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := s.refreshTokenRepo.Consume(ctx, refreshToken)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}
	return s.issue(ctx, user)
}

// Authenticate resolves an access token to its user.
func (s *Service) Authenticate(ctx context.Context, accessToken string) (*User, error) {
	userID, err := auth.GetUserIDFromToken(accessToken, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}
	return user, nil
}

func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func (s *Service) List(ctx context.Context, skip, limit int) ([]*User, error) {
	return s.repo.List(ctx, skip, limit)
}

// Update applies the non-nil fields of u.
func (s *Service) Update(ctx context.Context, id string, u models.UserUpdate) (*User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.FullName != nil {
		user.FullName = *u.FullName
	}
	if u.IsAdmin != nil {
		user.IsAdmin = *u.IsAdmin
	}
	if u.SubscriptionStatus != nil {
		user.SubscriptionStatus = *u.SubscriptionStatus
	}
	user.UpdatedAt = s.now()
	return s.repo.Update(ctx, user)
}
