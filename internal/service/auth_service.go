package service

import (
	"context"

	"gpstrack/internal/domain"
	"gpstrack/internal/dto"
)

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req dto.ObtainTokenRequest) (*dto.TokenResponse, error)
	// ResolvePrincipal confirms a token subject still maps to a live user.
	ResolvePrincipal(ctx context.Context, id domain.UserID) (*domain.User, error)
}
