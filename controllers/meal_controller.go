package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Arg10M10/nutrisnap-health-hub-sub001/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MealController struct {
	Meals    *services.MealService
	Progress *services.ProgressService
	Hub      *services.RealtimeHub
}

func NewMealController(ms *services.MealService, ps *services.ProgressService, hub *services.RealtimeHub) *MealController {
	return &MealController{Meals: ms, Progress: ps, Hub: hub}
}

type mealRequest struct {
	Type  string                    `json:"type" binding:"required"`
	AteAt time.Time                 `json:"ate_at"`
	Items []services.MealItemRequest `json:"items" binding:"required"`
}

func (m *MealController) Add(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req mealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.AteAt.IsZero() {
		req.AteAt = time.Now()
	}

	meal, err := m.Meals.AddMeal(user.ID, req.Type, req.AteAt, req.Items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	m.pushProgress(user.ID)
	c.JSON(http.StatusCreated, meal)
}

func (m *MealController) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	mealID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req mealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.AteAt.IsZero() {
		req.AteAt = time.Now()
	}

	meal, err := m.Meals.UpdateMeal(user.ID, mealID, req.Type, req.AteAt, req.Items)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	m.pushProgress(user.ID)
	c.JSON(http.StatusOK, meal)
}

func (m *MealController) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	mealID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := m.Meals.DeleteMeal(user.ID, mealID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	m.pushProgress(user.ID)
	c.Status(http.StatusNoContent)
}

func (m *MealController) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	mealID, ok := paramID(c, "id")
	if !ok {
		return
	}

	meal, err := m.Meals.GetMeal(user.ID, mealID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meal)
}

// List supports ?date=YYYY-MM-DD to fetch a single day, otherwise all meals.
func (m *MealController) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if dateStr := c.Query("date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
			return
		}
		start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.Local)
		meals, err := m.Meals.ListMealsByDateRange(user.ID, start, start.Add(24*time.Hour))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, meals)
		return
	}

	meals, err := m.Meals.ListMeals(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meals)
}

func (m *MealController) Recent(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	items, err := m.Meals.ListRecentMealItems(user.ID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

// pushProgress refreshes the daily rollup and notifies connected clients.
// Best-effort: failures here never fail the request that triggered it.
func (m *MealController) pushProgress(userID uint) {
	_, progress, err := m.Progress.GetGoalsAndProgress(userID)
	if err != nil || progress == nil {
		return
	}
	m.Hub.BroadcastProgress(userID, progress)
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}
