package controllers

import (
	"net/http"
	"time"

	"github.com/Arg10M10/nutrisnap-health-hub-sub001/services"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	Progress *services.ProgressService
}

func NewProgressController(ps *services.ProgressService) *ProgressController {
	return &ProgressController{Progress: ps}
}

func (p *ProgressController) GetGoals(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	goal, progress, err := p.Progress.GetGoalsAndProgress(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"goals": goal, "progress": progress})
}

func (p *ProgressController) GetGoalsByDate(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	dateStr := c.Query("date") // expected format: YYYY-MM-DD
	if dateStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'date' query param"})
		return
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
		return
	}

	goal, progress, err := p.Progress.GetGoalsAndProgressByDate(user.ID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": dateStr, "goals": goal, "progress": progress})
}

// UpdateGoals pins manual targets, replacing the computed plan.
func (p *ProgressController) UpdateGoals(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		Calories int `json:"calories" binding:"required,gt=0"`
		Protein  int `json:"protein" binding:"required,gte=0"`
		Carbs    int `json:"carbs" binding:"required,gte=0"`
		Fats     int `json:"fats" binding:"required,gte=0"`
		Sugars   int `json:"sugars"`
		Fiber    int `json:"fiber"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := services.OverrideNutritionGoal(user.ID, req.Calories, req.Protein, req.Carbs, req.Fats, req.Sugars, req.Fiber)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

func (p *ProgressController) History(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	rows, err := p.Progress.GetProgressHistory(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (p *ProgressController) Badges(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	badges, err := p.Progress.Badges(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	streak, err := p.Progress.LoggingStreak(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"streak": streak, "badges": badges})
}
