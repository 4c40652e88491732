package controllers

import (
	"net/http"

	"github.com/Arg10M10/nutrisnap-health-hub-sub001/services"

	"github.com/gin-gonic/gin"
)

func GetProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := services.GetUserProfile(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func UpdateProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var input services.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := services.UpdateUserProfile(user.ID, input); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

type OnboardingInput struct {
	services.ProfileInput
	Strategy string `json:"strategy"` // "percentage" | "per_kilogram", defaults to percentage
}

// CompleteOnboarding stores the profile and returns the freshly computed
// daily targets so the app can show them on the summary step.
func CompleteOnboarding(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var input OnboardingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := services.CompleteUserOnboarding(user.ID, input.ProfileInput, input.Strategy)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

func DeleteAccount(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if err := services.DeleteUser(user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// WeightHistory returns the recorded weights, oldest first.
func WeightHistory(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	entries, err := services.ListWeightHistory(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}
