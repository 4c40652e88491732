package services

import (
	"errors"

	"github.com/Arg10M10/nutrisnap-health-hub-sub001/config"
	"github.com/Arg10M10/nutrisnap-health-hub-sub001/models"
	"github.com/Arg10M10/nutrisnap-health-hub-sub001/utils"

	"gorm.io/gorm"
)

// statsFromProfile maps the stored profile onto calculator input. Missing
// fields stay zero; the calculator substitutes its own defaults.
func statsFromProfile(user *models.User) utils.UserStats {
	age := 0
	if !user.Birthday.IsZero() {
		age = utils.CalculateAge(user.Birthday)
	}
	return utils.UserStats{
		WeightKg:        user.WeightKg,
		HeightCm:        user.HeightCm,
		Age:             age,
		Gender:          user.Gender,
		WorkoutsPerWeek: user.WorkoutsPerWeek,
		Goal:            utils.Goal(user.Goal),
		WeeklyRateKg:    user.WeeklyRateKg,
	}
}

// RecomputePlanForUser derives the user's plan from their profile and upserts
// it as the persisted daily goal. Called after onboarding and whenever
// biometrics change.
func RecomputePlanForUser(user *models.User, strategy utils.SplitStrategy) (*models.NutritionGoal, error) {
	if user == nil {
		return nil, errors.New("user required")
	}
	if strategy == "" {
		strategy = utils.PercentageSplit
	}

	plan := utils.CalculateNutritionPlan(statsFromProfile(user), strategy, utils.DefaultPlanConfig())

	var goal models.NutritionGoal
	err := config.DB.Where("user_id = ?", user.ID).First(&goal).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	goal.UserID = user.ID
	goal.Calories = plan.Calories
	goal.Protein = plan.Protein
	goal.Carbs = plan.Carbs
	goal.Fats = plan.Fats
	goal.Sugars = plan.Sugars
	goal.Fiber = plan.Fiber
	goal.Strategy = string(strategy)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := config.DB.Create(&goal).Error; err != nil {
			return nil, err
		}
		return &goal, nil
	}
	if err := config.DB.Save(&goal).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

// GetNutritionGoal returns the persisted goal, or an empty one when the user
// has not onboarded yet.
func GetNutritionGoal(userID uint) (*models.NutritionGoal, error) {
	var goal models.NutritionGoal
	err := config.DB.Where("user_id = ?", userID).First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.NutritionGoal{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// OverrideNutritionGoal lets the user pin manual daily targets.
func OverrideNutritionGoal(userID uint, calories, protein, carbs, fats, sugars, fiber int) (*models.NutritionGoal, error) {
	var goal models.NutritionGoal
	err := config.DB.Where("user_id = ?", userID).First(&goal).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	goal.UserID = userID
	goal.Calories = calories
	goal.Protein = protein
	goal.Carbs = carbs
	goal.Fats = fats
	goal.Sugars = sugars
	goal.Fiber = fiber
	goal.Strategy = "manual"

	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = config.DB.Create(&goal).Error
	} else {
		err = config.DB.Save(&goal).Error
	}
	if err != nil {
		return nil, err
	}
	return &goal, nil
}
