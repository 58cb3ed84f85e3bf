package models

import (
	"time"

	"gorm.io/gorm"
)

// Transition records one published idle-hint change. Rows are a diagnostic
// history only; the engine never reads them back and always boots unknown.
type Transition struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	RunID     string         `gorm:"not null;index" json:"run_id"`
	Timestamp time.Time      `gorm:"not null;index" json:"timestamp"`
	State     string         `gorm:"not null" json:"state"` // "idle" or "active"
	IdleMs    int64          `gorm:"not null;default:0" json:"idle_ms"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
