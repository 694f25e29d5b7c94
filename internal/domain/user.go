package domain

import "time"

type User struct {
	ID           UserID    `gorm:"type:uuid;primaryKey" db:"id" json:"id"`
	Username     string    `gorm:"type:text;uniqueIndex:ux_users_username;not null" db:"username" json:"username"`
	PasswordHash string    `gorm:"type:text;not null" db:"password_hash" json:"-"`
	CreatedAt    time.Time `gorm:"not null" db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"not null" db:"updated_at" json:"updatedAt"`
}

func (User) TableName() string { return "users" }
