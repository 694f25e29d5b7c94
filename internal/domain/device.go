package domain

import "time"

// MaxDeviceNameLen bounds the free-text device name.
const MaxDeviceNameLen = 50

// Device is a GPS-reporting unit. The owner is assigned server-side on
// creation and never changes afterwards.
type Device struct {
	ID        DeviceID  `gorm:"type:uuid;primaryKey" db:"id" json:"id"`
	UserID    UserID    `gorm:"type:uuid;index;not null" db:"user_id" json:"user_id"`
	Name      string    `gorm:"type:text;not null" db:"name" json:"name"`
	CreatedAt time.Time `gorm:"not null" db:"created_at" json:"-"`
	UpdatedAt time.Time `gorm:"not null" db:"updated_at" json:"-"`
}

func (Device) TableName() string { return "devices" }
