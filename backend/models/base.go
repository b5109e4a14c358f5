package models

import (
	"time"

	"gorm.io/gorm"
)

// Model mirrors gorm.Model with JSON names matching the rest of the API
// payload. DeletedAt never serializes; soft-deleted rows are an internal
// concern.
type Model struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
