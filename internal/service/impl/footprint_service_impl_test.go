package impl

import (
	"context"
	"errors"
	"testing"

	"gpstrack/internal/domain"
	"gpstrack/internal/dto"
)

func createFootprintAt(t *testing.T, svc *FootprintServiceImpl, owner domain.UserID, deviceID, publishedAt string) *domain.Footprint {
	t.Helper()

	fp, err := svc.Create(context.Background(), owner, dto.FootprintCreateRequest{
		Lat:         f64ptr(51.01),
		Lng:         f64ptr(21.01),
		PublishedAt: strptr(publishedAt),
		DeviceID:    strptr(deviceID),
	})
	if err != nil {
		t.Fatalf("create footprint at %s: %v", publishedAt, err)
	}
	return fp
}

func TestFootprintCreateAndGet(t *testing.T) {
	st := newTestStore(t)
	svc := NewFootprintServiceImpl(st)
	user := createTestUser(t, st, "alice")
	device := createTestDevice(t, st, user.ID, "phone")

	fp := createFootprintAt(t, svc, user.ID, device.ID.String(), "2026-02-03T12:30:00Z")

	got, err := svc.Get(context.Background(), user.ID, fp.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Lat != 51.01 || got.Lng != 21.01 {
		t.Fatalf("coordinates = (%v, %v), want (51.01, 21.01)", got.Lat, got.Lng)
	}
	if got.DeviceID != device.ID {
		t.Fatalf("device = %s, want %s", got.DeviceID, device.ID)
	}
	if want := mustParseTime(t, "2026-02-03T12:30:00Z"); !got.PublishedAt.Equal(want) {
		t.Fatalf("published_at = %s, want %s", got.PublishedAt, want)
	}
}

func TestFootprintCreateRequiredFields(t *testing.T) {
	st := newTestStore(t)
	svc := NewFootprintServiceImpl(st)
	user := createTestUser(t, st, "alice")
	device := createTestDevice(t, st, user.ID, "phone")

	base := dto.FootprintCreateRequest{
		Lat:         f64ptr(51.01),
		Lng:         f64ptr(21.01),
		PublishedAt: strptr("2026-02-03T12:30:00Z"),
		DeviceID:    strptr(device.ID.String()),
	}

	cases := []struct {
		name   string
		mutate func(r *dto.FootprintCreateRequest)
		field  string
	}{
		{"missing lat", func(r *dto.FootprintCreateRequest) { r.Lat = nil }, "lat"},
		{"missing lng", func(r *dto.FootprintCreateRequest) { r.Lng = nil }, "lng"},
		{"missing published_at", func(r *dto.FootprintCreateRequest) { r.PublishedAt = nil }, "published_at"},
		{"missing device_id", func(r *dto.FootprintCreateRequest) { r.DeviceID = nil }, "device_id"},
		{"malformed published_at", func(r *dto.FootprintCreateRequest) { r.PublishedAt = strptr("yesterday") }, "published_at"},
		{"malformed device_id", func(r *dto.FootprintCreateRequest) { r.DeviceID = strptr("not-a-uuid") }, "device_id"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := base
			tc.mutate(&req)

			var fieldErr *domain.FieldError
			_, err := svc.Create(context.Background(), user.ID, req)
			if !errors.As(err, &fieldErr) {
				t.Fatalf("expected field error, got %v", err)
			}
			if fieldErr.Field != tc.field {
				t.Fatalf("field = %q, want %q", fieldErr.Field, tc.field)
			}
		})
	}
}

func TestFootprintCreateRejectsForeignDevice(t *testing.T) {
	st := newTestStore(t)
	svc := NewFootprintServiceImpl(st)
	alice := createTestUser(t, st, "alice")
	bob := createTestUser(t, st, "bob")
	bobDevice := createTestDevice(t, st, bob.ID, "bob-phone")

	var fieldErr *domain.FieldError
	_, err := svc.Create(context.Background(), alice.ID, dto.FootprintCreateRequest{
		Lat:         f64ptr(51.01),
		Lng:         f64ptr(21.01),
		PublishedAt: strptr("2026-02-03T12:30:00Z"),
		DeviceID:    strptr(bobDevice.ID.String()),
	})
	if !errors.As(err, &fieldErr) || fieldErr.Field != "device_id" {
		t.Fatalf("expected field error on device_id, got %v", err)
	}
}

func TestFootprintListTimeFilterBoundaries(t *testing.T) {
	st := newTestStore(t)
	svc := NewFootprintServiceImpl(st)
	user := createTestUser(t, st, "alice")
	device := createTestDevice(t, st, user.ID, "phone")

	createFootprintAt(t, svc, user.ID, device.ID.String(), "2020-01-01T00:00:00Z")
	middle := createFootprintAt(t, svc, user.ID, device.ID.String(), "2020-02-01T00:00:00Z")
	createFootprintAt(t, svc, user.ID, device.ID.String(), "2020-03-01T00:00:00Z")

	// start inclusive, end exclusive
	got, err := svc.List(context.Background(), user.ID, dto.FootprintQuery{
		StartDate: "2020-02-01T00:00:00Z",
		EndDate:   "2020-02-21T00:00:00Z",
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != middle.ID {
		t.Fatalf("expected exactly the 2020-02-01 footprint, got %d records", len(got))
	}

	// A footprint exactly at end_date is excluded.
	got, err = svc.List(context.Background(), user.ID, dto.FootprintQuery{
		EndDate: "2020-02-01T00:00:00Z",
	})
	if err != nil {
		t.Fatalf("list end only: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("end bound must be exclusive, got %d records", len(got))
	}

	// Open interval on both sides returns everything.
	got, err = svc.List(context.Background(), user.ID, dto.FootprintQuery{})
	if err != nil {
		t.Fatalf("list unbounded: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 records unbounded, got %d", len(got))
	}
}

func TestFootprintListMalformedDates(t *testing.T) {
	st := newTestStore(t)
	svc := NewFootprintServiceImpl(st)
	user := createTestUser(t, st, "alice")

	var fieldErr *domain.FieldError

	_, err := svc.List(context.Background(), user.ID, dto.FootprintQuery{StartDate: "not-a-date"})
	if !errors.As(err, &fieldErr) || fieldErr.Field != "start_date" {
		t.Fatalf("expected field error on start_date, got %v", err)
	}

	_, err = svc.List(context.Background(), user.ID, dto.FootprintQuery{EndDate: "also-not-a-date"})
	if !errors.As(err, &fieldErr) || fieldErr.Field != "end_date" {
		t.Fatalf("expected field error on end_date, got %v", err)
	}
}

func TestFootprintListIsOwnerScoped(t *testing.T) {
	st := newTestStore(t)
	svc := NewFootprintServiceImpl(st)
	alice := createTestUser(t, st, "alice")
	bob := createTestUser(t, st, "bob")
	aliceDevice := createTestDevice(t, st, alice.ID, "alice-phone")
	bobDevice := createTestDevice(t, st, bob.ID, "bob-phone")

	mine := createFootprintAt(t, svc, alice.ID, aliceDevice.ID.String(), "2026-02-01T00:00:00Z")
	createFootprintAt(t, svc, bob.ID, bobDevice.ID.String(), "2026-02-01T00:00:00Z")

	got, err := svc.List(context.Background(), alice.ID, dto.FootprintQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != mine.ID {
		t.Fatalf("list leaked foreign footprints: %d records", len(got))
	}
}

func TestFootprintCrossUserAccessLooksLikeNotFound(t *testing.T) {
	st := newTestStore(t)
	svc := NewFootprintServiceImpl(st)
	alice := createTestUser(t, st, "alice")
	bob := createTestUser(t, st, "bob")
	bobDevice := createTestDevice(t, st, bob.ID, "bob-phone")

	fp := createFootprintAt(t, svc, bob.ID, bobDevice.ID.String(), "2026-02-01T00:00:00Z")

	if _, err := svc.Get(context.Background(), alice.ID, fp.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("get foreign footprint: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Update(context.Background(), alice.ID, fp.ID, dto.FootprintPatchRequest{Lat: f64ptr(0)}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("update foreign footprint: expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(context.Background(), alice.ID, fp.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("delete foreign footprint: expected ErrNotFound, got %v", err)
	}
}

func TestFootprintPartialUpdate(t *testing.T) {
	st := newTestStore(t)
	svc := NewFootprintServiceImpl(st)
	user := createTestUser(t, st, "alice")
	device := createTestDevice(t, st, user.ID, "phone")

	fp := createFootprintAt(t, svc, user.ID, device.ID.String(), "2026-02-03T12:30:00Z")

	got, err := svc.Update(context.Background(), user.ID, fp.ID, dto.FootprintPatchRequest{Lat: f64ptr(52.5)})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if got.Lat != 52.5 {
		t.Fatalf("lat = %v, want 52.5", got.Lat)
	}
	if got.Lng != 21.01 {
		t.Fatalf("patching lat changed lng to %v", got.Lng)
	}
	if want := mustParseTime(t, "2026-02-03T12:30:00Z"); !got.PublishedAt.Equal(want) {
		t.Fatalf("patching lat changed published_at to %s", got.PublishedAt)
	}
	if got.DeviceID != device.ID {
		t.Fatalf("patching lat changed device to %s", got.DeviceID)
	}
}

func TestFootprintReparent(t *testing.T) {
	st := newTestStore(t)
	svc := NewFootprintServiceImpl(st)
	alice := createTestUser(t, st, "alice")
	bob := createTestUser(t, st, "bob")
	first := createTestDevice(t, st, alice.ID, "phone")
	second := createTestDevice(t, st, alice.ID, "watch")
	bobDevice := createTestDevice(t, st, bob.ID, "bob-phone")

	fp := createFootprintAt(t, svc, alice.ID, first.ID.String(), "2026-02-03T12:30:00Z")

	// Re-parenting onto another owned device works.
	got, err := svc.Update(context.Background(), alice.ID, fp.ID, dto.FootprintPatchRequest{DeviceID: strptr(second.ID.String())})
	if err != nil {
		t.Fatalf("reparent: %v", err)
	}
	if got.DeviceID != second.ID {
		t.Fatalf("device = %s, want %s", got.DeviceID, second.ID)
	}

	// Re-parenting onto a foreign device fails validation.
	var fieldErr *domain.FieldError
	_, err = svc.Update(context.Background(), alice.ID, fp.ID, dto.FootprintPatchRequest{DeviceID: strptr(bobDevice.ID.String())})
	if !errors.As(err, &fieldErr) || fieldErr.Field != "device_id" {
		t.Fatalf("expected field error on device_id, got %v", err)
	}

	// The failed attempt must not have re-parented anything.
	got, err = svc.Get(context.Background(), alice.ID, fp.ID)
	if err != nil {
		t.Fatalf("get after failed reparent: %v", err)
	}
	if got.DeviceID != second.ID {
		t.Fatalf("failed reparent mutated device to %s", got.DeviceID)
	}
}

func TestFootprintAcceptsDateOnlyTimestamps(t *testing.T) {
	st := newTestStore(t)
	svc := NewFootprintServiceImpl(st)
	user := createTestUser(t, st, "alice")
	device := createTestDevice(t, st, user.ID, "phone")

	createFootprintAt(t, svc, user.ID, device.ID.String(), "2020-02-01")

	got, err := svc.List(context.Background(), user.ID, dto.FootprintQuery{
		StartDate: "2020-02-01",
		EndDate:   "2020-02-02",
	})
	if err != nil {
		t.Fatalf("list with date-only bounds: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
}
