package models

import (
	"gorm.io/gorm"
)

// NutritionGoal holds each user's daily targets as last computed (or manually
// overridden). Recomputed from the profile whenever biometrics change.
type NutritionGoal struct {
	gorm.Model
	UserID   uint `gorm:"index;not null"`
	Calories int  // kcal/day
	Protein  int  // g/day
	Carbs    int
	Fats     int
	Sugars   int
	Fiber    int
	Strategy string `gorm:"size:32"` // macro split strategy used to derive this goal
}
