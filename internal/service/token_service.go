package service

import (
	"context"

	"gpstrack/internal/domain"
	"gpstrack/internal/dto"
)

type TokenService interface {
	// Issue mints an access/refresh pair for the user with both expiry
	// timestamps computed from a single clock read.
	Issue(ctx context.Context, user *domain.User) (*dto.TokenResponse, error)
	// Refresh exchanges a valid refresh token for a new access token,
	// rotating the refresh token only when rotation is configured.
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	// Authenticate resolves a bearer access token to the principal it was
	// issued to.
	Authenticate(ctx context.Context, accessToken string) (domain.UserID, error)
}
