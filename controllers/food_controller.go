package controllers

import (
	"net/http"

	"github.com/Arg10M10/nutrisnap-health-hub-sub001/services"

	"github.com/gin-gonic/gin"
)

type FoodController struct {
	Foods  *services.FoodService
	Limits *services.AILimitService
}

func NewFoodController(fs *services.FoodService, limits *services.AILimitService) *FoodController {
	return &FoodController{Foods: fs, Limits: limits}
}

// GET /food/search?q=yogurt
func (f *FoodController) Search(c *gin.Context) {
	out, err := f.Foods.Search(c.Query("q"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /food/barcode/:code
func (f *FoodController) LookupBarcode(c *gin.Context) {
	res, err := f.Foods.LookupBarcode(c.Param("code"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /food/recognize  { "image_base64": "data:image/jpeg;base64,…" }
// Gated by the food_scan quota.
func (f *FoodController) RecognizePhoto(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		ImageBase64 string `json:"image_base64" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !gateAIFeature(c, f.Limits, user, services.FeatureFoodScan) {
		return
	}

	products, labels, err := f.Foods.RecognizePhoto(req.ImageBase64)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	// The scan happened; count it even if the user discards the result.
	f.Limits.LogUsage(user.ID, services.FeatureFoodScan)

	c.JSON(http.StatusOK, gin.H{"labels": labels, "products": products})
}

// POST /food/analyze-text  { "description": "two eggs and toast" }
// manual_food_scan is unlimited, but still passes through the gate so the
// policy lives in one place.
func (f *FoodController) AnalyzeText(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		Description string `json:"description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !gateAIFeature(c, f.Limits, user, services.FeatureManualFoodScan) {
		return
	}

	est, err := f.Foods.AnalyzeDescription(req.Description)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	f.Limits.LogUsage(user.ID, services.FeatureManualFoodScan)

	c.JSON(http.StatusOK, est)
}
