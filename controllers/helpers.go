package controllers

import (
	"net/http"

	"github.com/Arg10M10/nutrisnap-health-hub-sub001/models"
	"github.com/Arg10M10/nutrisnap-health-hub-sub001/services"

	"github.com/gin-gonic/gin"
)

// currentUser loads the authenticated user set by the auth middleware.
// Aborts with 401 when the context has no valid user.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get("userID")
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}
	userID, ok := v.(uint)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}
	user, err := services.FindUserByID(userID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return nil, false
	}
	return user, true
}

// gateAIFeature runs the quota check and writes the appropriate response on
// denial or infrastructure failure. Returns true when the action may proceed.
// Store failures map to 503, an exhausted quota to 429. Callers and clients
// can tell them apart.
func gateAIFeature(c *gin.Context, limits *services.AILimitService, user *models.User, feature services.AIFeature) bool {
	decision, err := limits.CheckFeature(user, feature)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "usage check unavailable, try again later"})
		return false
	}
	if !decision.Allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":      decision.Message(),
			"limit":      decision.Limit,
			"time_frame": decision.TimeFrame,
		})
		return false
	}
	return true
}
