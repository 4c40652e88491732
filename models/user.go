package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"`
	FullName string

	// Onboarding profile, feeds the nutrition plan calculator
	Gender          string `gorm:"size:16"` // "male" | "female" | ""
	Birthday        time.Time
	HeightCm        float64
	WeightKg        float64
	WorkoutsPerWeek int
	Goal            string  `gorm:"size:32"` // "lose_weight" | "maintain_weight" | "gain_weight"
	WeeklyRateKg    float64 // desired kg change per week

	ProfilePicture string
	Premium        bool // premium users bypass AI usage limits
	Onboarded      bool
	MFAEnabled     bool
	MFACode        string
	MFACodeSentAt  time.Time // codes expire; see VerifyMFACode
}
