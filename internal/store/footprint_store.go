package store

import (
	"context"
	"errors"
	"time"

	"gpstrack/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FootprintFilter is the single filter specification for list queries:
// mandatory owner scope plus optional time bounds. Start is inclusive,
// End exclusive; a nil bound leaves that side open.
type FootprintFilter struct {
	Owner domain.UserID
	Start *time.Time
	End   *time.Time
}

type FootprintStore struct{ db *gorm.DB }

func (s *Store) Footprints() *FootprintStore { return &FootprintStore{db: s.DB} }

func (f *FootprintStore) Create(ctx context.Context, fp *domain.Footprint) error {
	if fp.ID == uuid.Nil {
		fp.ID = uuid.New()
	}
	return f.db.WithContext(ctx).Create(fp).Error
}

// List returns the footprints matching the filter, ordered by published_at.
// Ownership is transitive through the device.
func (f *FootprintStore) List(ctx context.Context, filter FootprintFilter) ([]*domain.Footprint, error) {
	q := f.db.WithContext(ctx).
		Model(&domain.Footprint{}).
		Select("footprints.*").
		Joins("JOIN devices ON devices.id = footprints.device_id").
		Where("devices.user_id = ?", filter.Owner)

	if filter.Start != nil {
		q = q.Where("footprints.published_at >= ?", *filter.Start)
	}
	if filter.End != nil {
		q = q.Where("footprints.published_at < ?", *filter.End)
	}

	var footprints []*domain.Footprint
	if err := q.Order("footprints.published_at").Find(&footprints).Error; err != nil {
		return nil, err
	}
	return footprints, nil
}

func (f *FootprintStore) GetByIDAndOwner(ctx context.Context, id domain.FootprintID, userID domain.UserID) (*domain.Footprint, error) {
	var fp domain.Footprint
	if err := f.db.WithContext(ctx).
		Select("footprints.*").
		Joins("JOIN devices ON devices.id = footprints.device_id").
		Where("footprints.id = ? AND devices.user_id = ?", id, userID).
		First(&fp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &fp, nil
}

func (f *FootprintStore) Save(ctx context.Context, fp *domain.Footprint) error {
	return f.db.WithContext(ctx).Save(fp).Error
}

func (f *FootprintStore) Delete(ctx context.Context, id domain.FootprintID) error {
	return f.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Footprint{}).Error
}
