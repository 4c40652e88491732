package models

import "gorm.io/gorm"

// A catalog entry cached from OpenFoodFacts. Nutrients are per 100 g.
type FoodProduct struct {
	gorm.Model
	Barcode string `gorm:"type:varchar(64);uniqueIndex;not null"`
	Name    string `gorm:"not null"`
	Brand   string

	Calories float64 // kcal per 100 g
	Protein  float64
	Carbs    float64
	Fat      float64
	Sugar    float64
	Fiber    float64
	Sodium   float64 // mg per 100 g
}
