package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postPlan(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/plan/calculate", CalculatePlan)

	req := httptest.NewRequest(http.MethodPost, "/plan/calculate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCalculatePlanEndpoint(t *testing.T) {
	w := postPlan(t, `{
		"gender": "male",
		"age": 30,
		"height": 170,
		"weight": 70,
		"workoutsPerWeek": 3,
		"goal": "maintain_weight",
		"weeklyRate": 0
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	var plan map[string]int
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plan))

	assert.Equal(t, 2224, plan["calories"])
	assert.Equal(t, 167, plan["protein"])
	assert.Equal(t, 195, plan["carbs"])
	assert.Equal(t, 86, plan["fats"])
	assert.Equal(t, 56, plan["sugars"])
	assert.Equal(t, 31, plan["fiber"])
}

func TestCalculatePlanEndpointStrategySelect(t *testing.T) {
	w := postPlan(t, `{
		"gender": "male",
		"age": 30,
		"height": 170,
		"weight": 70,
		"workoutsPerWeek": 3,
		"goal": "maintain_weight",
		"strategy": "per_kilogram"
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	var plan map[string]int
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plan))
	assert.Equal(t, 140, plan["protein"]) // 2 g per kg body weight
	assert.Equal(t, 0, plan["fiber"])
}

func TestCalculatePlanEndpointEmptyBodyUsesDefaults(t *testing.T) {
	w := postPlan(t, `{}`)
	require.Equal(t, http.StatusOK, w.Code)

	var plan map[string]int
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plan))
	assert.Equal(t, 1941, plan["calories"]) // default profile, sedentary
}

func TestCalculatePlanEndpointRejectsMalformedJSON(t *testing.T) {
	w := postPlan(t, `{"weight": "seventy"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
