package impl

import (
	"context"
	"testing"
	"time"

	"gpstrack/internal/domain"
	"gpstrack/internal/store"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(&domain.User{}, &domain.Device{}, &domain.Footprint{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	return store.New(db)
}

func createTestUser(t *testing.T, st *store.Store, username string) *domain.User {
	t.Helper()

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		PasswordHash: "unused",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := st.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func createTestDevice(t *testing.T, st *store.Store, owner domain.UserID, name string) *domain.Device {
	t.Helper()

	now := time.Now().UTC()
	device := &domain.Device{
		UserID:    owner,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := st.Devices().Create(context.Background(), device); err != nil {
		t.Fatalf("create device %s: %v", name, err)
	}
	return device
}

func strptr(s string) *string { return &s }

func f64ptr(f float64) *float64 { return &f }

func mustParseTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("parse time %s: %v", s, err)
	}
	return ts
}
