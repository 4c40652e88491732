package models

import (
	"time"

	"gorm.io/gorm"
)

type ExerciseLog struct {
	gorm.Model
	UserID      uint      `gorm:"index;not null"`
	Date        time.Time `gorm:"index;not null"` // truncate to local midnight
	Activity    string    `gorm:"not null"`       // e.g. "running"
	DurationMin float64
	Calories    float64 // burned, manual or AI-estimated
	Source      string  `gorm:"size:16"` // "manual" | "ai"
}
