package models

import "time"

// BaseModel is gorm.Model without soft-delete. Deletes remove rows for real,
// so the ordered cascade plans stay the single source of truth for cleanup.
type BaseModel struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
