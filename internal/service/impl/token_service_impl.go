package impl

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gpstrack/internal/domain"
	"gpstrack/internal/dto"
	"gpstrack/internal/observability/metrics"
	"gpstrack/internal/observability/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ====== Config ======

type TokenConfig struct {
	Issuer     string        // e.g. "gpstrack"
	Audience   string        // e.g. "gpstrack-clients"
	AccessTTL  time.Duration // e.g. 15 * time.Minute
	RefreshTTL time.Duration // e.g. 7 * 24h
	SigningKey []byte        // HS256 secret

	// RotateRefresh controls whether a refresh exchange also reissues the
	// refresh token. The refresh expiry field is returned only when it does;
	// it is never fabricated for a token that was not reissued.
	RotateRefresh bool
}

// ====== Claims ======

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

type tokenClaims struct {
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// ====== Service ======

// TokenServiceImpl issues stateless HS256 token pairs. Nothing is persisted:
// validity is carried entirely by the token's own claims, so there is no
// server-side revocation.
type TokenServiceImpl struct {
	cfg TokenConfig
	now func() time.Time
}

func NewTokenServiceHS256(cfg TokenConfig) *TokenServiceImpl {
	return &TokenServiceImpl{
		cfg: cfg,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Issue mints an access+refresh pair. Both expiry timestamps derive from one
// clock read so the two are mutually consistent within a response.
func (t *TokenServiceImpl) Issue(ctx context.Context, user *domain.User) (*dto.TokenResponse, error) {
	result := "success"
	defer func() {
		metrics.TokensIssuedTotal.WithLabelValues("issue", result).Inc()
	}()

	now := t.now()

	access, err := t.sign(user.ID, tokenTypeAccess, now, t.cfg.AccessTTL)
	if err != nil {
		result = "failure"
		return nil, err
	}
	refresh, err := t.sign(user.ID, tokenTypeRefresh, now, t.cfg.RefreshTTL)
	if err != nil {
		result = "failure"
		return nil, err
	}

	reqID := middleware.RequestIDFromContext(ctx)
	traceID := middleware.TraceIDFromContext(ctx)
	slog.Info("issued tokens", "user_id", user.ID, "request_id", reqID, "trace_id", traceID)

	return &dto.TokenResponse{
		Access:           access,
		Refresh:          refresh,
		AccessExpiresAt:  now.Add(t.cfg.AccessTTL).Unix(),
		RefreshExpiresAt: now.Add(t.cfg.RefreshTTL).Unix(),
	}, nil
}

// Refresh validates the refresh JWT and mints a new access token. When
// rotation is enabled the refresh token is reissued as well, together with
// its own expiry; otherwise the response carries the access token alone.
func (t *TokenServiceImpl) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	result := "success"
	defer func() {
		metrics.TokensIssuedTotal.WithLabelValues("refresh", result).Inc()
	}()

	now := t.now()

	claims, err := t.parse(refreshToken, tokenTypeRefresh)
	if err != nil {
		result = "failure"
		return nil, domain.ErrInvalidCredentials
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		result = "failure"
		return nil, domain.ErrInvalidCredentials
	}

	access, err := t.sign(userID, tokenTypeAccess, now, t.cfg.AccessTTL)
	if err != nil {
		result = "failure"
		return nil, err
	}

	resp := &dto.TokenResponse{
		Access:          access,
		AccessExpiresAt: now.Add(t.cfg.AccessTTL).Unix(),
	}

	if t.cfg.RotateRefresh {
		rotated, err := t.sign(userID, tokenTypeRefresh, now, t.cfg.RefreshTTL)
		if err != nil {
			result = "failure"
			return nil, err
		}
		resp.Refresh = rotated
		resp.RefreshExpiresAt = now.Add(t.cfg.RefreshTTL).Unix()
	}

	reqID := middleware.RequestIDFromContext(ctx)
	traceID := middleware.TraceIDFromContext(ctx)
	slog.Info("refreshed tokens", "user_id", userID, "rotated", t.cfg.RotateRefresh, "request_id", reqID, "trace_id", traceID)

	return resp, nil
}

// Authenticate resolves a bearer access token to the user it was issued to.
func (t *TokenServiceImpl) Authenticate(ctx context.Context, accessToken string) (domain.UserID, error) {
	claims, err := t.parse(accessToken, tokenTypeAccess)
	if err != nil {
		return uuid.Nil, domain.ErrInvalidCredentials
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, domain.ErrInvalidCredentials
	}
	return userID, nil
}

// ====== Helpers ======

func (t *TokenServiceImpl) sign(userID domain.UserID, tokenType string, now time.Time, ttl time.Duration) (string, error) {
	claims := tokenClaims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.cfg.Issuer,
			Subject:   userID.String(),
			Audience:  jwt.ClaimStrings{t.cfg.Audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.cfg.SigningKey)
}

func (t *TokenServiceImpl) parse(tokenStr, wantType string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
	)
	tok, err := parser.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return t.cfg.SigningKey, nil
	})
	if err != nil || !tok.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.TokenType != wantType {
		return nil, errors.New("wrong token type")
	}
	if claims.Issuer != t.cfg.Issuer {
		return nil, errors.New("bad issuer")
	}
	if !containsAudience(claims.Audience, t.cfg.Audience) {
		return nil, errors.New("bad audience")
	}
	return claims, nil
}

// containsAudience checks if the expected audience is present in the claim audience list.
func containsAudience(aud jwt.ClaimStrings, expected string) bool {
	for _, a := range aud {
		if a == expected {
			return true
		}
	}
	return false
}
