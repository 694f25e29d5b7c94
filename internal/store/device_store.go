package store

import (
	"context"
	"errors"

	"gpstrack/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeviceStore struct{ db *gorm.DB }

func (s *Store) Devices() *DeviceStore { return &DeviceStore{db: s.DB} }

func (d *DeviceStore) Create(ctx context.Context, device *domain.Device) error {
	if device.ID == uuid.Nil {
		device.ID = uuid.New()
	}
	return d.db.WithContext(ctx).Create(device).Error
}

// ListByOwner returns every device owned by userID, newest first.
func (d *DeviceStore) ListByOwner(ctx context.Context, userID domain.UserID) ([]*domain.Device, error) {
	var devices []*domain.Device
	if err := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&devices).Error; err != nil {
		return nil, err
	}
	return devices, nil
}

// GetByIDAndOwner resolves a device only within the owner's scope. A device
// owned by someone else looks exactly like a missing one.
func (d *DeviceStore) GetByIDAndOwner(ctx context.Context, id domain.DeviceID, userID domain.UserID) (*domain.Device, error) {
	var device domain.Device
	if err := d.db.WithContext(ctx).
		First(&device, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &device, nil
}

func (d *DeviceStore) Save(ctx context.Context, device *domain.Device) error {
	return d.db.WithContext(ctx).Save(device).Error
}

// Delete removes the device and all of its footprints. Callers wrap it in
// Store.WithTx so the cascade is atomic.
func (d *DeviceStore) Delete(ctx context.Context, id domain.DeviceID) error {
	if err := d.db.WithContext(ctx).Where("device_id = ?", id).Delete(&domain.Footprint{}).Error; err != nil {
		return err
	}
	return d.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Device{}).Error
}
