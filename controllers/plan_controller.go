package controllers

import (
	"net/http"

	"github.com/Arg10M10/nutrisnap-health-hub-sub001/services"
	"github.com/Arg10M10/nutrisnap-health-hub-sub001/utils"

	"github.com/gin-gonic/gin"
)

// CalculatePlanInput mirrors what the mobile onboarding flow sends.
type CalculatePlanInput struct {
	Gender          string  `json:"gender"`
	Age             int     `json:"age"`
	Height          float64 `json:"height"` // cm
	Weight          float64 `json:"weight"` // kg
	WorkoutsPerWeek int     `json:"workoutsPerWeek"`
	Goal            string  `json:"goal"`
	WeeklyRate      float64 `json:"weeklyRate"` // kg per week
	Strategy        string  `json:"strategy"`   // optional, defaults to percentage
}

// CalculatePlan computes daily targets from the request body alone; nothing
// is persisted. Malformed numeric fields fall back to calculator defaults
// instead of erroring, so the client always gets a usable plan.
func CalculatePlan(c *gin.Context) {
	var input CalculatePlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	strategy := utils.PercentageSplit
	if input.Strategy == string(utils.PerKilogramSplit) {
		strategy = utils.PerKilogramSplit
	}

	plan := utils.CalculateNutritionPlan(utils.UserStats{
		WeightKg:        input.Weight,
		HeightCm:        input.Height,
		Age:             input.Age,
		Gender:          input.Gender,
		WorkoutsPerWeek: input.WorkoutsPerWeek,
		Goal:            utils.Goal(input.Goal),
		WeeklyRateKg:    input.WeeklyRate,
	}, strategy, utils.DefaultPlanConfig())

	c.JSON(http.StatusOK, plan)
}

// RecomputePlan rebuilds the stored goal from the current profile.
func RecomputePlan(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var input struct {
		Strategy string `json:"strategy"`
	}
	_ = c.ShouldBindJSON(&input) // empty body is fine

	strategy := utils.PercentageSplit
	if input.Strategy == string(utils.PerKilogramSplit) {
		strategy = utils.PerKilogramSplit
	}

	goal, err := services.RecomputePlanForUser(user, strategy)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"goal": goal})
}
