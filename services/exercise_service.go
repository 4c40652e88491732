package services

import (
	"time"

	"github.com/Arg10M10/nutrisnap-health-hub-sub001/config"
	"github.com/Arg10M10/nutrisnap-health-hub-sub001/models"
)

func dayStartLocal(t time.Time) time.Time {
	loc := time.Local
	tt := t.In(loc)
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, loc)
}

type ExerciseService struct {
	ai *AIService
}

func NewExerciseService(ai *AIService) *ExerciseService {
	return &ExerciseService{ai: ai}
}

// LogExercise records a workout with a caller-supplied calorie figure.
func (s *ExerciseService) LogExercise(userID uint, activity string, durationMin, calories float64) (*models.ExerciseLog, error) {
	entry := &models.ExerciseLog{
		UserID:      userID,
		Date:        dayStartLocal(time.Now()),
		Activity:    activity,
		DurationMin: durationMin,
		Calories:    calories,
		Source:      "manual",
	}
	if err := config.DB.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// LogExerciseWithEstimate asks the AI for a calorie estimate before saving.
// Callers gate this behind the exercise_ai quota.
func (s *ExerciseService) LogExerciseWithEstimate(user *models.User, activity string, durationMin float64) (*models.ExerciseLog, error) {
	weight := user.WeightKg
	if weight <= 0 {
		weight = 70
	}
	calories, err := s.ai.EstimateExerciseCalories(activity, durationMin, weight)
	if err != nil {
		return nil, err
	}

	entry := &models.ExerciseLog{
		UserID:      user.ID,
		Date:        dayStartLocal(time.Now()),
		Activity:    activity,
		DurationMin: durationMin,
		Calories:    calories,
		Source:      "ai",
	}
	if err := config.DB.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *ExerciseService) ListExercises(userID uint, from, to time.Time) ([]models.ExerciseLog, error) {
	var logs []models.ExerciseLog
	err := config.DB.
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}

// ExerciseCaloriesForDay sums calories burned on the given local day.
func (s *ExerciseService) ExerciseCaloriesForDay(userID uint, day time.Time) (float64, error) {
	start := dayStartLocal(day)
	end := start.Add(24 * time.Hour)

	var total float64
	err := config.DB.Model(&models.ExerciseLog{}).
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Select("COALESCE(SUM(calories), 0)").
		Scan(&total).Error
	return total, err
}

func (s *ExerciseService) DeleteExercise(userID, logID uint) error {
	return config.DB.
		Where("id = ? AND user_id = ?", logID, userID).
		Delete(&models.ExerciseLog{}).Error
}
