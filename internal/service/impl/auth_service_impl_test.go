package impl

import (
	"context"
	"errors"
	"testing"
	"time"

	"gpstrack/internal/domain"
	"gpstrack/internal/dto"

	"github.com/google/uuid"
)

func newTestAuthService(t *testing.T) *AuthServiceImpl {
	t.Helper()

	st := newTestStore(t)
	tokens, _ := newTestTokenService(false)
	return NewAuthServiceImpl(st, NewPasswordServiceBcrypt(), tokens)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestAuthService(t)

	reg, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username: "testuser",
		Password: "testpass123",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if reg.Username != "testuser" || reg.UserID == "" {
		t.Fatalf("unexpected register response: %+v", reg)
	}

	tokens, err := svc.Login(context.Background(), dto.ObtainTokenRequest{
		Username: "testuser",
		Password: "testpass123",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if tokens.Access == "" || tokens.Refresh == "" {
		t.Fatalf("expected full token pair, got %+v", tokens)
	}
	if tokens.AccessExpiresAt >= tokens.RefreshExpiresAt {
		t.Fatalf("access expiry %d must precede refresh expiry %d", tokens.AccessExpiresAt, tokens.RefreshExpiresAt)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestAuthService(t)

	var fieldErr *domain.FieldError

	_, err := svc.Register(context.Background(), dto.RegisterRequest{Username: "", Password: "testpass123"})
	if !errors.As(err, &fieldErr) || fieldErr.Field != "username" {
		t.Fatalf("expected field error on username, got %v", err)
	}

	_, err = svc.Register(context.Background(), dto.RegisterRequest{Username: "testuser", Password: "short"})
	if !errors.As(err, &fieldErr) || fieldErr.Field != "password" {
		t.Fatalf("expected field error on password, got %v", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newTestAuthService(t)

	if _, err := svc.Register(context.Background(), dto.RegisterRequest{Username: "testuser", Password: "testpass123"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(context.Background(), dto.RegisterRequest{Username: "testuser", Password: "otherpass123"}); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	svc := newTestAuthService(t)

	if _, err := svc.Register(context.Background(), dto.RegisterRequest{Username: "testuser", Password: "testpass123"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	cases := []dto.ObtainTokenRequest{
		{Username: "testuser", Password: "wrongpass"},
		{Username: "nobody", Password: "testpass123"},
		{Username: "", Password: ""},
	}
	for _, req := range cases {
		if _, err := svc.Login(context.Background(), req); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("login %q/%q: expected ErrInvalidCredentials, got %v", req.Username, req.Password, err)
		}
	}
}

func TestResolvePrincipal(t *testing.T) {
	svc := newTestAuthService(t)

	reg, err := svc.Register(context.Background(), dto.RegisterRequest{Username: "testuser", Password: "testpass123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	id, err := uuid.Parse(reg.UserID)
	if err != nil {
		t.Fatalf("parse user id: %v", err)
	}
	user, err := svc.ResolvePrincipal(context.Background(), id)
	if err != nil {
		t.Fatalf("resolve principal: %v", err)
	}
	if user.Username != "testuser" {
		t.Fatalf("resolved wrong user: %+v", user)
	}

	if _, err := svc.ResolvePrincipal(context.Background(), uuid.New()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown subject, got %v", err)
	}
}

func TestLoginExpiriesNotInThePast(t *testing.T) {
	st := newTestStore(t)
	tokens := NewTokenServiceHS256(TokenConfig{
		Issuer:     "gpstrack-test",
		Audience:   "gpstrack-clients",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
		SigningKey: []byte("test-signing-key"),
	})
	svc := NewAuthServiceImpl(st, NewPasswordServiceBcrypt(), tokens)

	if _, err := svc.Register(context.Background(), dto.RegisterRequest{Username: "testuser", Password: "testpass123"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	before := time.Now().Unix()
	resp, err := svc.Login(context.Background(), dto.ObtainTokenRequest{Username: "testuser", Password: "testpass123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessExpiresAt < before || resp.RefreshExpiresAt < before {
		t.Fatalf("expiries precede request time: %+v", resp)
	}
}
