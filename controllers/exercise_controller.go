package controllers

import (
	"net/http"
	"time"

	"github.com/Arg10M10/nutrisnap-health-hub-sub001/services"

	"github.com/gin-gonic/gin"
)

type ExerciseController struct {
	Exercises *services.ExerciseService
	Progress  *services.ProgressService
	Limits    *services.AILimitService
	Hub       *services.RealtimeHub
}

func NewExerciseController(es *services.ExerciseService, ps *services.ProgressService, limits *services.AILimitService, hub *services.RealtimeHub) *ExerciseController {
	return &ExerciseController{Exercises: es, Progress: ps, Limits: limits, Hub: hub}
}

// POST /exercise  { "activity": "running", "duration_min": 30, "calories": 280 }
func (e *ExerciseController) Log(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		Activity    string  `json:"activity" binding:"required"`
		DurationMin float64 `json:"duration_min" binding:"required,gt=0"`
		Calories    float64 `json:"calories" binding:"required,gte=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := e.Exercises.LogExercise(user.ID, req.Activity, req.DurationMin, req.Calories)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	e.pushProgress(user.ID)
	c.JSON(http.StatusCreated, entry)
}

// POST /exercise/estimate  { "activity": "swimming", "duration_min": 45 }
// Gated by the exercise_ai quota; the calorie figure comes from the AI.
func (e *ExerciseController) LogWithEstimate(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		Activity    string  `json:"activity" binding:"required"`
		DurationMin float64 `json:"duration_min" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !gateAIFeature(c, e.Limits, user, services.FeatureExerciseAI) {
		return
	}

	entry, err := e.Exercises.LogExerciseWithEstimate(user, req.Activity, req.DurationMin)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	e.Limits.LogUsage(user.ID, services.FeatureExerciseAI)

	e.pushProgress(user.ID)
	c.JSON(http.StatusCreated, entry)
}

// GET /exercise?from=YYYY-MM-DD&to=YYYY-MM-DD (defaults to the last 7 days)
func (e *ExerciseController) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	to := time.Now()
	from := to.AddDate(0, 0, -7)
	if s := c.Query("from"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			from = t
		}
	}
	if s := c.Query("to"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			to = t.Add(24 * time.Hour)
		}
	}

	logs, err := e.Exercises.ListExercises(user.ID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (e *ExerciseController) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	logID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := e.Exercises.DeleteExercise(user.ID, logID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	e.pushProgress(user.ID)
	c.Status(http.StatusNoContent)
}

func (e *ExerciseController) pushProgress(userID uint) {
	_, progress, err := e.Progress.GetGoalsAndProgress(userID)
	if err != nil || progress == nil {
		return
	}
	e.Hub.BroadcastProgress(userID, progress)
}
