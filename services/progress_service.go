package services

import (
	"log"
	"time"

	"github.com/Arg10M10/nutrisnap-health-hub-sub001/config"
	"github.com/Arg10M10/nutrisnap-health-hub-sub001/models"
)

type ProgressService struct {
	mealSvc     *MealService
	exerciseSvc *ExerciseService
}

func NewProgressService(ms *MealService, es *ExerciseService) *ProgressService {
	return &ProgressService{mealSvc: ms, exerciseSvc: es}
}

// GetGoalsAndProgress aggregates today's intake against the stored goal and
// refreshes the DailyProgress rollup row.
func (s *ProgressService) GetGoalsAndProgress(userID uint) (*models.NutritionGoal, map[string]interface{}, error) {
	return s.GetGoalsAndProgressByDate(userID, time.Now())
}

func (s *ProgressService) GetGoalsAndProgressByDate(userID uint, date time.Time) (*models.NutritionGoal, map[string]interface{}, error) {
	goal, err := GetNutritionGoal(userID)
	if err != nil {
		return nil, nil, err
	}

	start := dayStartLocal(date)
	end := start.Add(24 * time.Hour)

	meals, err := s.mealSvc.ListMealsByDateRange(userID, start, end)
	if err != nil {
		return goal, nil, err
	}
	totals := sumIntake(meals)

	burned, err := s.exerciseSvc.ExerciseCaloriesForDay(userID, start)
	if err != nil {
		return goal, nil, err
	}

	dp := models.DailyProgress{
		UserID:           userID,
		Date:             start,
		Calories:         totals.calories,
		Protein:          totals.protein,
		Carbs:            totals.carbs,
		Fat:              totals.fat,
		Sugar:            totals.sugar,
		Fiber:            totals.fiber,
		ExerciseCalories: burned,
		MealsLogged:      len(meals),
	}
	// Best-effort rollup refresh: history just misses a point on failure.
	if err := config.DB.
		Where("user_id = ? AND date = ?", userID, start).
		Assign(dp).
		FirstOrCreate(&dp).Error; err != nil {
		log.Printf("daily progress rollup write failed for user %d: %v", userID, err)
	}

	return goal, buildProgressPayload(goal, totals, burned), nil
}

type intakeTotals struct {
	calories, protein, carbs, fat, sugar, fiber float64
}

func sumIntake(meals []models.Meal) intakeTotals {
	var t intakeTotals
	for _, m := range meals {
		for _, it := range m.Items {
			t.calories += it.Calories
			t.protein += it.Protein
			t.carbs += it.Carbs
			t.fat += it.Fat
			t.sugar += it.Sugar
			t.fiber += it.Fiber
		}
	}
	return t
}

// progressPercent is the ring fill: consumed over target, capped at 1.
// A zero target (no goal yet) renders as an empty ring.
func progressPercent(consumed, target float64) float64 {
	if target <= 0 {
		return 0
	}
	p := consumed / target
	if p > 1 {
		return 1
	}
	return p
}

func buildProgressPayload(goal *models.NutritionGoal, t intakeTotals, burned float64) map[string]interface{} {
	metric := func(consumed float64, target int) map[string]float64 {
		return map[string]float64{
			"consumed": consumed,
			"goal":     float64(target),
			"percent":  progressPercent(consumed, float64(target)),
		}
	}
	return map[string]interface{}{
		"calories": metric(t.calories, goal.Calories),
		"protein":  metric(t.protein, goal.Protein),
		"carbs":    metric(t.carbs, goal.Carbs),
		"fats":     metric(t.fat, goal.Fats),
		"sugars":   metric(t.sugar, goal.Sugars),
		"fiber":    metric(t.fiber, goal.Fiber),
		"exercise": map[string]float64{"burned": burned},
	}
}

func (s *ProgressService) GetProgressHistory(userID uint) ([]models.DailyProgress, error) {
	var rows []models.DailyProgress
	err := config.DB.
		Where("user_id = ?", userID).
		Order("date desc").
		Find(&rows).Error
	return rows, err
}

// Badge is a gamification achievement derived from logging history; nothing
// is persisted, badges are recomputed from the logs.
type Badge struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Earned bool   `json:"earned"`
}

// LoggingStreak counts consecutive local days with at least one meal logged,
// ending today (or yesterday, so a streak isn't "broken" before breakfast).
// Day bucketing happens in Go; SQL DATE() would depend on the DB session
// timezone and disagree with the local day boundaries used everywhere else.
func (s *ProgressService) LoggingStreak(userID uint) (int, error) {
	cutoff := dayStartLocal(time.Now()).AddDate(0, 0, -366)
	var stamps []time.Time
	err := config.DB.Model(&models.Meal{}).
		Where("user_id = ? AND ate_at >= ?", userID, cutoff).
		Order("ate_at DESC").
		Pluck("ate_at", &stamps).Error
	if err != nil {
		return 0, err
	}
	return streakFromTimes(stamps, time.Now()), nil
}

// streakFromTimes walks backwards from the anchor day over the set of local
// days that have at least one timestamp.
func streakFromTimes(stamps []time.Time, now time.Time) int {
	days := make(map[time.Time]struct{}, len(stamps))
	for _, ts := range stamps {
		days[dayStartLocal(ts)] = struct{}{}
	}
	if len(days) == 0 {
		return 0
	}

	cursor := dayStartLocal(now)
	if _, ok := days[cursor]; !ok {
		cursor = cursor.AddDate(0, 0, -1)
	}

	streak := 0
	for {
		if _, ok := days[cursor]; !ok {
			return streak
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
}

func (s *ProgressService) Badges(userID uint) ([]Badge, error) {
	streak, err := s.LoggingStreak(userID)
	if err != nil {
		return nil, err
	}

	var totalMeals int64
	if err := config.DB.Model(&models.Meal{}).Where("user_id = ?", userID).Count(&totalMeals).Error; err != nil {
		return nil, err
	}
	var totalScans int64
	if err := config.DB.Model(&models.AIUsageLog{}).
		Where("user_id = ? AND feature = ?", userID, string(FeatureFoodScan)).
		Count(&totalScans).Error; err != nil {
		return nil, err
	}

	return []Badge{
		{ID: "first_bite", Name: "First Bite", Earned: totalMeals >= 1},
		{ID: "first_scan", Name: "Scanner", Earned: totalScans >= 1},
		{ID: "three_day_streak", Name: "Warming Up", Earned: streak >= 3},
		{ID: "week_streak", Name: "Full Week", Earned: streak >= 7},
		{ID: "month_streak", Name: "Habit Built", Earned: streak >= 30},
	}, nil
}
