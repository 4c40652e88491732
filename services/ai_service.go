package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Arg10M10/nutrisnap-health-hub-sub001/config"
	"github.com/Arg10M10/nutrisnap-health-hub-sub001/models"
)

// AIService talks to an OpenAI-compatible chat completions endpoint for the
// text-based estimation features (food description analysis, exercise calorie
// estimates, diet suggestions, product rating).
type AIService struct {
	client  *http.Client
	baseURL string
	token   string
	model   string
}

func NewAIService() *AIService {
	baseURL := os.Getenv("OPENAI_API_URL")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &AIService{
		client:  &http.Client{Timeout: 30 * time.Second}, // cold completions can be slow
		baseURL: baseURL,
		token:   os.Getenv("OPENAI_API_KEY"),
		model:   model,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	ResponseFormat *struct {
		Type string `json:"type"`
	} `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// complete sends one prompt and returns the raw completion text.
func (a *AIService) complete(prompt string, wantJSON bool) (string, error) {
	if a.token == "" {
		return "", fmt.Errorf("OPENAI_API_KEY not set")
	}

	reqBody := chatRequest{
		Model:       a.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.2,
	}
	if wantJSON {
		reqBody.ResponseFormat = &struct {
			Type string `json:"type"`
		}{Type: "json_object"}
	}
	b, _ := json.Marshal(reqBody)

	req, err := http.NewRequest("POST", a.baseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+a.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ai request error: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read ai response error: %w", err)
	}

	var out chatResponse
	if err := json.Unmarshal(respBytes, &out); err != nil {
		preview := string(respBytes)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		return "", fmt.Errorf("decode ai response error: %v | body: %s", err, preview)
	}
	if resp.StatusCode != http.StatusOK {
		if out.Error != nil && out.Error.Message != "" {
			return "", fmt.Errorf("ai api error (%d): %s", resp.StatusCode, out.Error.Message)
		}
		return "", fmt.Errorf("ai api error (%d): %s", resp.StatusCode, string(respBytes))
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("empty completion")
	}
	return out.Choices[0].Message.Content, nil
}

// NutrientEstimate is the structured answer for a described food portion.
type NutrientEstimate struct {
	Name     string  `json:"name"`
	Grams    float64 `json:"grams"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Sugar    float64 `json:"sugar"`
}

// AnalyzeFoodText estimates nutrients for a free-text food description
// ("two scrambled eggs with a slice of toast").
func (a *AIService) AnalyzeFoodText(description string) (*NutrientEstimate, error) {
	prompt := fmt.Sprintf(`You are an expert nutritionist. Estimate the nutrition of this food as eaten: %q.
Respond ONLY with a valid JSON object:
{"name": string, "grams": number, "calories": number, "protein": number, "carbs": number, "fat": number, "sugar": number}
All nutrient values are for the whole described portion, in grams except calories (kcal).`, description)

	content, err := a.complete(prompt, true)
	if err != nil {
		return nil, err
	}
	var est NutrientEstimate
	if err := json.Unmarshal([]byte(content), &est); err != nil {
		return nil, fmt.Errorf("unexpected estimate payload: %w", err)
	}
	if est.Name == "" {
		est.Name = description
	}
	return &est, nil
}

// EstimateExerciseCalories estimates calories burned for a described workout.
func (a *AIService) EstimateExerciseCalories(activity string, durationMin, weightKg float64) (float64, error) {
	prompt := fmt.Sprintf(`Estimate calories burned for a %.0f kg person doing %q for %.0f minutes.
Respond ONLY with a valid JSON object: {"calories": number}`, weightKg, activity, durationMin)

	content, err := a.complete(prompt, true)
	if err != nil {
		return 0, err
	}
	var out struct {
		Calories float64 `json:"calories"`
	}
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return 0, fmt.Errorf("unexpected estimate payload: %w", err)
	}
	if out.Calories < 0 {
		out.Calories = 0
	}
	return out.Calories, nil
}

// SuggestAdjustments asks for practical adjustments based on today's logged
// meals and the user's daily targets.
func (a *AIService) SuggestAdjustments(userID uint, goal *models.NutritionGoal) ([]string, error) {
	var items []models.MealItem
	today := time.Now().Format("2006-01-02")
	if err := config.DB.
		Table("meal_items mi").
		Joins("JOIN meals m ON m.id = mi.meal_id").
		Where("m.user_id = ? AND DATE(m.ate_at) = ?", userID, today).
		Select("mi.food_name, mi.grams, mi.calories, mi.protein, mi.sugar").
		Scan(&items).Error; err != nil {
		return nil, fmt.Errorf("db error fetching meals: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("Today's meals:\n")
	if len(items) == 0 {
		sb.WriteString("- (no meals logged yet)\n")
	} else {
		for _, it := range items {
			sb.WriteString(fmt.Sprintf("- %s: %.0fg, %.0f kcal, %.0fg protein\n",
				it.FoodName, it.Grams, it.Calories, it.Protein))
		}
	}
	if goal != nil {
		sb.WriteString(fmt.Sprintf("\nDaily targets: %d kcal, %dg protein, %dg carbs, %dg fat, max %dg sugars.\n",
			goal.Calories, goal.Protein, goal.Carbs, goal.Fats, goal.Sugars))
	}
	sb.WriteString("\nSuggest 3-5 practical adjustments or additions for the rest of the day. Respond ONLY with a valid JSON object: {\"suggestions\": [string]}")

	content, err := a.complete(sb.String(), true)
	if err != nil {
		return nil, err
	}
	var out struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, fmt.Errorf("unexpected suggestions payload: %w", err)
	}
	if len(out.Suggestions) == 0 {
		return nil, fmt.Errorf("empty suggestions")
	}
	return out.Suggestions, nil
}

// PlannedMeal is one entry of a generated weekly diet plan.
type PlannedMeal struct {
	Day      string  `json:"day"`
	Meal     string  `json:"meal"`
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
}

// GenerateWeeklyDietPlan builds a 7-day meal plan that fits the user's
// targets.
func (a *AIService) GenerateWeeklyDietPlan(goal *models.NutritionGoal) ([]PlannedMeal, error) {
	if goal == nil {
		return nil, fmt.Errorf("nutrition goal required")
	}
	prompt := fmt.Sprintf(`Create a 7-day meal plan (breakfast, lunch, dinner) hitting roughly %d kcal/day with %dg protein, %dg carbs and %dg fat.
Respond ONLY with a valid JSON object: {"meals": [{"day": string, "meal": string, "name": string, "calories": number}]}`,
		goal.Calories, goal.Protein, goal.Carbs, goal.Fats)

	content, err := a.complete(prompt, true)
	if err != nil {
		return nil, err
	}
	var out struct {
		Meals []PlannedMeal `json:"meals"`
	}
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, fmt.Errorf("unexpected plan payload: %w", err)
	}
	if len(out.Meals) == 0 {
		return nil, fmt.Errorf("empty diet plan")
	}
	return out.Meals, nil
}

// SuggestedWorkout is one entry of a generated workout set.
type SuggestedWorkout struct {
	Name        string  `json:"name"`
	DurationMin float64 `json:"duration_min"`
	Calories    float64 `json:"calories"`
}

// GenerateWorkouts proposes workouts sized to the user's weight, goal and
// training frequency. The entries match what LogExercise accepts, so the app
// can log a suggested workout directly.
func (a *AIService) GenerateWorkouts(user *models.User) ([]SuggestedWorkout, error) {
	weight := user.WeightKg
	if weight <= 0 {
		weight = 70
	}
	goal := user.Goal
	if goal == "" {
		goal = "maintain_weight"
	}
	prompt := fmt.Sprintf(`Propose 3-5 workouts for a %.0f kg person whose goal is %q, training %d times per week.
Respond ONLY with a valid JSON object: {"workouts": [{"name": string, "duration_min": number, "calories": number}]}
calories is the estimated burn for the workout.`, weight, goal, user.WorkoutsPerWeek)

	content, err := a.complete(prompt, true)
	if err != nil {
		return nil, err
	}
	var out struct {
		Workouts []SuggestedWorkout `json:"workouts"`
	}
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, fmt.Errorf("unexpected workouts payload: %w", err)
	}
	if len(out.Workouts) == 0 {
		return nil, fmt.Errorf("empty workout plan")
	}
	return out.Workouts, nil
}

// RateProduct classifies a product's healthiness with a short reason.
func (a *AIService) RateProduct(p *models.FoodProduct) (rating, reason string, err error) {
	prompt := fmt.Sprintf(`Rate the product %q per 100g: %.0f kcal, %.1fg protein, %.1fg carbs, %.1fg fat, %.1fg sugars.
Respond ONLY with a valid JSON object: {"rating": "healthy"|"moderate"|"avoid", "reason": string (max 20 words)}`,
		p.Name, p.Calories, p.Protein, p.Carbs, p.Fat, p.Sugar)

	content, err := a.complete(prompt, true)
	if err != nil {
		return "", "", err
	}
	var out struct {
		Rating string `json:"rating"`
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return "", "", fmt.Errorf("unexpected rating payload: %w", err)
	}
	return out.Rating, out.Reason, nil
}
