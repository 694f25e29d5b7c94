package impl

import (
	"context"
	"errors"
	"time"

	"gpstrack/internal/domain"
	"gpstrack/internal/dto"
	"gpstrack/internal/observability/metrics"
	"gpstrack/internal/service"
	"gpstrack/internal/store"

	"github.com/google/uuid"
)

var _ service.FootprintService = (*FootprintServiceImpl)(nil)

type FootprintServiceImpl struct {
	store *store.Store
	now   func() time.Time
}

func NewFootprintServiceImpl(st *store.Store) *FootprintServiceImpl {
	return &FootprintServiceImpl{
		store: st,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// List narrows the owner scope by the optional start_date (inclusive) and
// end_date (exclusive) bounds. Both bounds are folded into one filter
// specification handed to the store in a single call.
func (f *FootprintServiceImpl) List(ctx context.Context, owner domain.UserID, query dto.FootprintQuery) ([]*domain.Footprint, error) {
	filter := store.FootprintFilter{Owner: owner}

	if query.StartDate != "" {
		start, err := parseTimestamp("start_date", query.StartDate)
		if err != nil {
			return nil, err
		}
		filter.Start = &start
	}
	if query.EndDate != "" {
		end, err := parseTimestamp("end_date", query.EndDate)
		if err != nil {
			return nil, err
		}
		filter.End = &end
	}

	return f.store.Footprints().List(ctx, filter)
}

// Create records a footprint under one of the caller's own devices. Supplying
// a device the caller does not own fails validation without revealing whether
// that device exists.
func (f *FootprintServiceImpl) Create(ctx context.Context, owner domain.UserID, req dto.FootprintCreateRequest) (*domain.Footprint, error) {
	result := "success"
	defer func() {
		metrics.FootprintsRecordedTotal.WithLabelValues(result).Inc()
	}()

	if req.Lat == nil {
		result = "failure"
		return nil, domain.NewFieldError("lat", "required")
	}
	if req.Lng == nil {
		result = "failure"
		return nil, domain.NewFieldError("lng", "required")
	}
	if req.PublishedAt == nil || *req.PublishedAt == "" {
		result = "failure"
		return nil, domain.NewFieldError("published_at", "required")
	}
	if req.DeviceID == nil || *req.DeviceID == "" {
		result = "failure"
		return nil, domain.NewFieldError("device_id", "required")
	}

	publishedAt, err := parseTimestamp("published_at", *req.PublishedAt)
	if err != nil {
		result = "failure"
		return nil, err
	}
	deviceID, err := f.resolveOwnedDevice(ctx, owner, *req.DeviceID)
	if err != nil {
		result = "failure"
		return nil, err
	}

	now := f.now()
	fp := &domain.Footprint{
		DeviceID:    deviceID,
		Lat:         *req.Lat,
		Lng:         *req.Lng,
		PublishedAt: publishedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := f.store.Footprints().Create(ctx, fp); err != nil {
		result = "failure"
		return nil, err
	}
	return fp, nil
}

func (f *FootprintServiceImpl) Get(ctx context.Context, owner domain.UserID, id domain.FootprintID) (*domain.Footprint, error) {
	return f.store.Footprints().GetByIDAndOwner(ctx, id, owner)
}

// Update applies a partial update. Re-parenting onto another device is
// validated against the new device's ownership before anything is written.
func (f *FootprintServiceImpl) Update(ctx context.Context, owner domain.UserID, id domain.FootprintID, req dto.FootprintPatchRequest) (*domain.Footprint, error) {
	fp, err := f.store.Footprints().GetByIDAndOwner(ctx, id, owner)
	if err != nil {
		return nil, err
	}

	if req.Lat != nil {
		fp.Lat = *req.Lat
	}
	if req.Lng != nil {
		fp.Lng = *req.Lng
	}
	if req.PublishedAt != nil {
		publishedAt, err := parseTimestamp("published_at", *req.PublishedAt)
		if err != nil {
			return nil, err
		}
		fp.PublishedAt = publishedAt
	}
	if req.DeviceID != nil {
		deviceID, err := f.resolveOwnedDevice(ctx, owner, *req.DeviceID)
		if err != nil {
			return nil, err
		}
		fp.DeviceID = deviceID
	}

	fp.UpdatedAt = f.now()
	if err := f.store.Footprints().Save(ctx, fp); err != nil {
		return nil, err
	}
	return fp, nil
}

func (f *FootprintServiceImpl) Delete(ctx context.Context, owner domain.UserID, id domain.FootprintID) error {
	if _, err := f.store.Footprints().GetByIDAndOwner(ctx, id, owner); err != nil {
		return err
	}
	return f.store.Footprints().Delete(ctx, id)
}

// resolveOwnedDevice parses the device identifier and confirms the caller
// owns it. Unknown and foreign devices produce the same validation error.
func (f *FootprintServiceImpl) resolveOwnedDevice(ctx context.Context, owner domain.UserID, raw string) (domain.DeviceID, error) {
	deviceID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.NewFieldError("device_id", "invalid identifier")
	}
	if _, err := f.store.Devices().GetByIDAndOwner(ctx, deviceID, owner); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return uuid.Nil, domain.NewFieldError("device_id", "no such device")
		}
		return uuid.Nil, err
	}
	return deviceID, nil
}
