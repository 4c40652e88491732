package controllers

import (
	"net/http"

	"github.com/Arg10M10/nutrisnap-health-hub-sub001/services"

	"github.com/gin-gonic/gin"
)

type SuggestionController struct {
	AI     *services.AIService
	Limits *services.AILimitService
}

func NewSuggestionController(ai *services.AIService, limits *services.AILimitService) *SuggestionController {
	return &SuggestionController{AI: ai, Limits: limits}
}

// GET /ai/suggestions, gated by the ai_suggestions quota (2/week free tier).
func (s *SuggestionController) GetSuggestions(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if !gateAIFeature(c, s.Limits, user, services.FeatureAISuggestions) {
		return
	}

	goal, err := services.GetNutritionGoal(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	suggestions, err := s.AI.SuggestAdjustments(user.ID, goal)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	s.Limits.LogUsage(user.ID, services.FeatureAISuggestions)

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// POST /ai/diet-plan, gated by the diet_plan quota (1/week free tier).
func (s *SuggestionController) GenerateDietPlan(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if !gateAIFeature(c, s.Limits, user, services.FeatureDietPlan) {
		return
	}

	goal, err := services.GetNutritionGoal(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if goal.Calories == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "complete onboarding before generating a diet plan"})
		return
	}

	meals, err := s.AI.GenerateWeeklyDietPlan(goal)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	s.Limits.LogUsage(user.ID, services.FeatureDietPlan)

	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

// POST /ai/workouts, gated by the exercise_ai quota. Returns workout
// suggestions the app can hand straight to the exercise log.
func (s *SuggestionController) GenerateWorkouts(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if !gateAIFeature(c, s.Limits, user, services.FeatureExerciseAI) {
		return
	}

	workouts, err := s.AI.GenerateWorkouts(user)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	s.Limits.LogUsage(user.ID, services.FeatureExerciseAI)

	c.JSON(http.StatusOK, gin.H{"workouts": workouts})
}
