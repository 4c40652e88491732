package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/Arg10M10/nutrisnap-health-hub-sub001/config"
	"github.com/Arg10M10/nutrisnap-health-hub-sub001/models"
	"github.com/Arg10M10/nutrisnap-health-hub-sub001/utils"
)

// ProfileInput carries partial profile updates; zero values leave the stored
// field untouched.
type ProfileInput struct {
	FullName        string   `json:"full_name"`
	Gender          string   `json:"gender"`
	Birthday        string   `json:"birthday"` // YYYY-MM-DD
	HeightCm        float64  `json:"height_cm"`
	WeightKg        float64  `json:"weight_kg"`
	WorkoutsPerWeek *int     `json:"workouts_per_week"`
	Goal            string   `json:"goal"`
	WeeklyRateKg    *float64 `json:"weekly_rate_kg"`
	ProfilePicture  string   `json:"profile_picture"` // base64 data URI
}

func FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := config.DB.First(&user, "email = ?", email).Error; err != nil {
		return nil, errors.New("user not found")
	}
	return &user, nil
}

func FindUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		return nil, errors.New("user not found")
	}
	return &user, nil
}

func GetUserProfile(userID uint) (map[string]interface{}, error) {
	user, err := FindUserByID(userID)
	if err != nil {
		return nil, err
	}

	age := 0
	if !user.Birthday.IsZero() {
		age = utils.CalculateAge(user.Birthday)
	}

	profile := map[string]interface{}{
		"id":                user.ID,
		"email":             user.Email,
		"full_name":         user.FullName,
		"gender":            user.Gender,
		"birthday":          user.Birthday.Format("2006-01-02"),
		"age":               age,
		"height_cm":         user.HeightCm,
		"weight_kg":         user.WeightKg,
		"workouts_per_week": user.WorkoutsPerWeek,
		"goal":              user.Goal,
		"weekly_rate_kg":    user.WeeklyRateKg,
		"profile_picture":   user.ProfilePicture,
		"premium":           user.Premium,
		"onboarded":         user.Onboarded,
		"mfa_enabled":       user.MFAEnabled,
	}

	if bmi, err := utils.CalculateBMI(user.HeightCm, user.WeightKg); err == nil {
		profile["bmi"] = bmi
		profile["bmi_category"] = utils.BMICategory(bmi)
	}
	return profile, nil
}

// UpdateUserProfile applies the partial update and recomputes the nutrition
// plan when any calculator input changed.
func UpdateUserProfile(userID uint, input ProfileInput) (*models.User, error) {
	user, err := FindUserByID(userID)
	if err != nil {
		return nil, err
	}

	planInputsChanged := false
	previousWeight := user.WeightKg

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Gender != "" {
		user.Gender = input.Gender
		planInputsChanged = true
	}
	if input.Birthday != "" {
		if birthday, err := time.Parse("2006-01-02", input.Birthday); err == nil {
			user.Birthday = birthday
			planInputsChanged = true
		}
	}
	if input.HeightCm > 0 {
		user.HeightCm = input.HeightCm
		planInputsChanged = true
	}
	if input.WeightKg > 0 {
		user.WeightKg = input.WeightKg
		planInputsChanged = true
	}
	if input.WorkoutsPerWeek != nil && *input.WorkoutsPerWeek >= 0 {
		user.WorkoutsPerWeek = *input.WorkoutsPerWeek
		planInputsChanged = true
	}
	if input.Goal != "" {
		user.Goal = input.Goal
		planInputsChanged = true
	}
	if input.WeeklyRateKg != nil {
		user.WeeklyRateKg = *input.WeeklyRateKg
		planInputsChanged = true
	}
	if input.ProfilePicture != "" {
		url, err := utils.UploadBase64ImageToS3(input.ProfilePicture, user.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to upload image: %v", err)
		}
		user.ProfilePicture = url
	}

	if err := config.DB.Save(user).Error; err != nil {
		return nil, err
	}

	recordWeightChange(user.ID, previousWeight, user.WeightKg)

	if planInputsChanged && user.Onboarded {
		if _, err := RecomputePlanForUser(user, ""); err != nil {
			return nil, err
		}
	}
	return user, nil
}

// weightChanged reports whether the new weight is a real change worth a
// history row, not a no-op resave of the same value.
func weightChanged(oldKg, newKg float64) bool {
	return newKg > 0 && math.Abs(newKg-oldKg) >= 0.01
}

// recordWeightChange appends a weight history row. Best-effort: the chart
// missing a point must not fail the profile update that caused it.
func recordWeightChange(userID uint, oldKg, newKg float64) {
	if !weightChanged(oldKg, newKg) {
		return
	}
	entry := models.WeightEntry{UserID: userID, WeightKg: newKg, RecordedAt: time.Now()}
	if err := config.DB.Create(&entry).Error; err != nil {
		log.Printf("weight history write failed for user %d: %v", userID, err)
	}
}

// ListWeightHistory returns the user's recorded weights, oldest first, for
// the trend chart.
func ListWeightHistory(userID uint) ([]models.WeightEntry, error) {
	var entries []models.WeightEntry
	err := config.DB.
		Where("user_id = ?", userID).
		Order("recorded_at ASC").
		Find(&entries).Error
	return entries, err
}

// CompleteUserOnboarding stores the full profile in one shot and computes the
// initial nutrition plan.
func CompleteUserOnboarding(userID uint, input ProfileInput, strategy string) (*models.NutritionGoal, error) {
	user, err := FindUserByID(userID)
	if err != nil {
		return nil, err
	}
	previousWeight := user.WeightKg

	if input.Gender != "" {
		user.Gender = input.Gender
	}
	if input.Birthday != "" {
		if birthday, err := time.Parse("2006-01-02", input.Birthday); err == nil {
			user.Birthday = birthday
		}
	}
	if input.HeightCm > 0 {
		user.HeightCm = input.HeightCm
	}
	if input.WeightKg > 0 {
		user.WeightKg = input.WeightKg
	}
	if input.WorkoutsPerWeek != nil && *input.WorkoutsPerWeek >= 0 {
		user.WorkoutsPerWeek = *input.WorkoutsPerWeek
	}
	if input.Goal != "" {
		user.Goal = input.Goal
	}
	if input.WeeklyRateKg != nil {
		user.WeeklyRateKg = *input.WeeklyRateKg
	}
	if input.ProfilePicture != "" {
		url, err := utils.UploadBase64ImageToS3(input.ProfilePicture, "onboarding/"+user.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to upload profile picture: %w", err)
		}
		user.ProfilePicture = url
	}
	user.Onboarded = true

	if err := config.DB.Save(user).Error; err != nil {
		return nil, err
	}

	recordWeightChange(user.ID, previousWeight, user.WeightKg)

	return RecomputePlanForUser(user, utilsSplitStrategy(strategy))
}

func utilsSplitStrategy(s string) utils.SplitStrategy {
	if s == string(utils.PerKilogramSplit) {
		return utils.PerKilogramSplit
	}
	return utils.PercentageSplit
}

func DeleteUser(userID uint) error {
	return config.DB.Delete(&models.User{}, userID).Error
}
