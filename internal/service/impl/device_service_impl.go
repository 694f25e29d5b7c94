package impl

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"gpstrack/internal/domain"
	"gpstrack/internal/dto"
	"gpstrack/internal/observability/metrics"
	"gpstrack/internal/service"
	"gpstrack/internal/store"
)

var _ service.DeviceService = (*DeviceServiceImpl)(nil)

type DeviceServiceImpl struct {
	store *store.Store
	now   func() time.Time
}

func NewDeviceServiceImpl(st *store.Store) *DeviceServiceImpl {
	return &DeviceServiceImpl{
		store: st,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func (d *DeviceServiceImpl) List(ctx context.Context, owner domain.UserID) ([]*domain.Device, error) {
	return d.store.Devices().ListByOwner(ctx, owner)
}

// Create registers a device for the principal. The owner comes from the
// authenticated identity only; nothing in the request body can change it.
func (d *DeviceServiceImpl) Create(ctx context.Context, owner domain.UserID, req dto.DeviceCreateRequest) (*domain.Device, error) {
	result := "success"
	defer func() {
		metrics.DevicesCreatedTotal.WithLabelValues(result).Inc()
	}()

	name, err := validateDeviceName(req.Name)
	if err != nil {
		result = "failure"
		return nil, err
	}

	now := d.now()
	device := &domain.Device{
		UserID:    owner,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := d.store.Devices().Create(ctx, device); err != nil {
		result = "failure"
		return nil, err
	}
	return device, nil
}

func (d *DeviceServiceImpl) Get(ctx context.Context, owner domain.UserID, id domain.DeviceID) (*domain.Device, error) {
	return d.store.Devices().GetByIDAndOwner(ctx, id, owner)
}

// Update applies a partial update. Fields absent from the request stay as
// they are.
func (d *DeviceServiceImpl) Update(ctx context.Context, owner domain.UserID, id domain.DeviceID, req dto.DevicePatchRequest) (*domain.Device, error) {
	device, err := d.store.Devices().GetByIDAndOwner(ctx, id, owner)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name, err := validateDeviceName(*req.Name)
		if err != nil {
			return nil, err
		}
		device.Name = name
	}

	device.UpdatedAt = d.now()
	if err := d.store.Devices().Save(ctx, device); err != nil {
		return nil, err
	}
	return device, nil
}

// Delete removes the device and, in the same transaction, every footprint
// it owns. An unowned device is indistinguishable from a missing one.
func (d *DeviceServiceImpl) Delete(ctx context.Context, owner domain.UserID, id domain.DeviceID) error {
	return d.store.WithTx(ctx, func(tx *store.Store) error {
		if _, err := tx.Devices().GetByIDAndOwner(ctx, id, owner); err != nil {
			return err
		}
		return tx.Devices().Delete(ctx, id)
	})
}

func validateDeviceName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.NewFieldError("name", "required")
	}
	// The limit counts characters, not bytes.
	if utf8.RuneCountInString(name) > domain.MaxDeviceNameLen {
		return "", domain.NewFieldError("name", "must be at most 50 characters")
	}
	return name, nil
}
