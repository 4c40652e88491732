package models

import (
	"time"

	"gorm.io/gorm"
)

// DailyProgress is a per-day rollup of what the user actually consumed and
// burned, refreshed whenever progress is requested or a log changes.
type DailyProgress struct {
	gorm.Model
	UserID uint      `gorm:"index;not null"`
	Date   time.Time `gorm:"index;not null"`

	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
	Sugar    float64
	Fiber    float64

	ExerciseCalories float64
	MealsLogged      int
}
