package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Arg10M10/nutrisnap-health-hub-sub001/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAITestService(handler http.HandlerFunc) (*AIService, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return &AIService{
		client:  &http.Client{Timeout: 2 * time.Second},
		baseURL: srv.URL,
		token:   "test-token",
		model:   "test-model",
	}, srv
}

func completionWith(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"content": content}},
		},
	})
	return string(b)
}

func TestAnalyzeFoodText(t *testing.T) {
	svc, srv := newAITestService(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.NotNil(t, req.ResponseFormat)
		assert.Equal(t, "json_object", req.ResponseFormat.Type)

		w.Write([]byte(completionWith(`{"name":"scrambled eggs","grams":120,"calories":180,"protein":13,"carbs":2,"fat":13,"sugar":1}`)))
	})
	defer srv.Close()

	est, err := svc.AnalyzeFoodText("two scrambled eggs")
	require.NoError(t, err)
	assert.Equal(t, "scrambled eggs", est.Name)
	assert.Equal(t, 180.0, est.Calories)
	assert.Equal(t, 13.0, est.Protein)
}

func TestAnalyzeFoodTextFillsName(t *testing.T) {
	svc, srv := newAITestService(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionWith(`{"grams":100,"calories":50}`)))
	})
	defer srv.Close()

	est, err := svc.AnalyzeFoodText("mystery soup")
	require.NoError(t, err)
	assert.Equal(t, "mystery soup", est.Name)
}

func TestEstimateExerciseCalories(t *testing.T) {
	svc, srv := newAITestService(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionWith(`{"calories":312}`)))
	})
	defer srv.Close()

	cal, err := svc.EstimateExerciseCalories("running", 30, 70)
	require.NoError(t, err)
	assert.Equal(t, 312.0, cal)
}

func TestEstimateExerciseCaloriesClampsNegative(t *testing.T) {
	svc, srv := newAITestService(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionWith(`{"calories":-40}`)))
	})
	defer srv.Close()

	cal, err := svc.EstimateExerciseCalories("napping", 30, 70)
	require.NoError(t, err)
	assert.Zero(t, cal)
}

func TestGenerateWorkouts(t *testing.T) {
	svc, srv := newAITestService(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionWith(`{"workouts":[
			{"name":"Running","duration_min":30,"calories":310},
			{"name":"Strength training","duration_min":45,"calories":250},
			{"name":"Swimming","duration_min":30,"calories":280}
		]}`)))
	})
	defer srv.Close()

	user := &models.User{WeightKg: 70, Goal: "lose_weight", WorkoutsPerWeek: 3}
	workouts, err := svc.GenerateWorkouts(user)
	require.NoError(t, err)
	require.Len(t, workouts, 3)
	assert.Equal(t, "Running", workouts[0].Name)
	assert.Equal(t, 30.0, workouts[0].DurationMin)
	assert.Equal(t, 310.0, workouts[0].Calories)
}

func TestGenerateWorkoutsEmpty(t *testing.T) {
	svc, srv := newAITestService(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionWith(`{"workouts":[]}`)))
	})
	defer srv.Close()

	_, err := svc.GenerateWorkouts(&models.User{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty workout plan")
}

func TestCompleteAPIError(t *testing.T) {
	svc, srv := newAITestService(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limit exceeded"}}`))
	})
	defer srv.Close()

	_, err := svc.complete("hi", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit exceeded")
	assert.Contains(t, err.Error(), "429")
}

func TestCompleteMissingToken(t *testing.T) {
	svc := &AIService{client: http.DefaultClient, baseURL: "http://unused"}
	_, err := svc.complete("hi", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestCompleteEmptyChoices(t *testing.T) {
	svc, srv := newAITestService(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	})
	defer srv.Close()

	_, err := svc.complete("hi", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty completion")
}
