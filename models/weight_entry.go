package models

import (
	"time"

	"gorm.io/gorm"
)

// WeightEntry is one point of the user's weight history. A row is appended
// whenever the profile weight changes; the stored profile keeps only the
// latest value, the history feeds the trend chart.
type WeightEntry struct {
	gorm.Model
	UserID     uint      `gorm:"index;not null"`
	WeightKg   float64   `gorm:"not null"`
	RecordedAt time.Time `gorm:"index;not null"`
}
