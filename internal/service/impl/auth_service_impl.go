package impl

import (
	"context"
	"errors"
	"strings"
	"time"

	"gpstrack/internal/domain"
	"gpstrack/internal/dto"
	"gpstrack/internal/service"
	"gpstrack/internal/store"
)

var _ service.AuthService = (*AuthServiceImpl)(nil)

type AuthServiceImpl struct {
	store     *store.Store
	passwords service.PasswordService
	tokens    service.TokenService
	now       func() time.Time
}

func NewAuthServiceImpl(st *store.Store, passwords service.PasswordService, tokens service.TokenService) *AuthServiceImpl {
	return &AuthServiceImpl{
		store:     st,
		passwords: passwords,
		tokens:    tokens,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func (a *AuthServiceImpl) Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, domain.NewFieldError("username", "required")
	}
	if len(req.Password) < 8 {
		return nil, domain.NewFieldError("password", "must be at least 8 characters")
	}

	if _, err := a.store.Users().GetByUsername(ctx, username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := a.passwords.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := a.now()
	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := a.store.Users().Create(ctx, user); err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{
		UserID:   user.ID.String(),
		Username: user.Username,
	}, nil
}

// Login exchanges username/password for a token pair. Lookup and verification
// failures collapse into the same error so the response never reveals which
// part was wrong.
func (a *AuthServiceImpl) Login(ctx context.Context, req dto.ObtainTokenRequest) (*dto.TokenResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := a.store.Users().GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !a.passwords.Verify(user.PasswordHash, req.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	return a.tokens.Issue(ctx, user)
}

// ResolvePrincipal loads the user a verified token was issued to. Tokens
// outlive nothing: a deleted user's otherwise-valid token resolves to
// ErrNotFound.
func (a *AuthServiceImpl) ResolvePrincipal(ctx context.Context, id domain.UserID) (*domain.User, error) {
	return a.store.Users().GetByID(ctx, id)
}
