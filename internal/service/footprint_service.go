package service

import (
	"context"

	"gpstrack/internal/domain"
	"gpstrack/internal/dto"
)

type FootprintService interface {
	// List applies the optional time-window query on top of the owner scope.
	List(ctx context.Context, owner domain.UserID, query dto.FootprintQuery) ([]*domain.Footprint, error)
	Create(ctx context.Context, owner domain.UserID, req dto.FootprintCreateRequest) (*domain.Footprint, error)
	Get(ctx context.Context, owner domain.UserID, id domain.FootprintID) (*domain.Footprint, error)
	Update(ctx context.Context, owner domain.UserID, id domain.FootprintID, req dto.FootprintPatchRequest) (*domain.Footprint, error)
	Delete(ctx context.Context, owner domain.UserID, id domain.FootprintID) error
}
