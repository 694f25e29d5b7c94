package service

import (
	"context"

	"gpstrack/internal/domain"
	"gpstrack/internal/dto"
)

// DeviceService exposes the owner-scoped CRUD surface for devices. Every
// method takes the resolved principal explicitly; there is no ambient
// request identity.
type DeviceService interface {
	List(ctx context.Context, owner domain.UserID) ([]*domain.Device, error)
	Create(ctx context.Context, owner domain.UserID, req dto.DeviceCreateRequest) (*domain.Device, error)
	Get(ctx context.Context, owner domain.UserID, id domain.DeviceID) (*domain.Device, error)
	Update(ctx context.Context, owner domain.UserID, id domain.DeviceID, req dto.DevicePatchRequest) (*domain.Device, error)
	Delete(ctx context.Context, owner domain.UserID, id domain.DeviceID) error
}
