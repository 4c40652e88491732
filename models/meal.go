package models

import (
	"time"

	"gorm.io/gorm"
)

// One Meal (breakfast/lunch/…)
type Meal struct {
	gorm.Model
	UserID uint      // FK → users.id
	Type   string    // "Breakfast"|"Lunch"|…
	AteAt  time.Time // timestamp of the meal
	Items  []MealItem
}

// Each MealItem stores a nutrition snapshot taken at logging time, so later
// catalog changes never rewrite history.
type MealItem struct {
	gorm.Model
	MealID uint
	Meal   Meal

	FoodName string  `gorm:"not null"`
	Barcode  string  `gorm:"size:64"` // set when resolved via barcode scan
	Grams    float64 // consumed amount

	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
	Sugar    float64
	Fiber    float64
	Sodium   float64

	Source string `gorm:"size:16"` // "barcode" | "photo" | "text" | "manual"
}
