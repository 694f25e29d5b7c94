package domain

import "time"

// Footprint is a single timestamped position report. Its effective owner is
// the owner of the device it belongs to.
type Footprint struct {
	ID          FootprintID `gorm:"type:uuid;primaryKey" db:"id" json:"id"`
	DeviceID    DeviceID    `gorm:"type:uuid;index:idx_footprints_device_time,priority:1;not null" db:"device_id" json:"device_id"`
	Lat         float64     `gorm:"not null" db:"lat" json:"lat"`
	Lng         float64     `gorm:"not null" db:"lng" json:"lng"`
	PublishedAt time.Time   `gorm:"index:idx_footprints_device_time,priority:2;not null" db:"published_at" json:"published_at"`
	CreatedAt   time.Time   `gorm:"not null" db:"created_at" json:"-"`
	UpdatedAt   time.Time   `gorm:"not null" db:"updated_at" json:"-"`
}

func (Footprint) TableName() string { return "footprints" }
