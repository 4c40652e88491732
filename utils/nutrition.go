package utils

import (
	"math"
	"strings"
)

type Goal string

const (
	GoalLoseWeight     Goal = "lose_weight"
	GoalMaintainWeight Goal = "maintain_weight"
	GoalGainWeight     Goal = "gain_weight"
)

// SplitStrategy picks how target calories are divided into macros. The app
// historically shipped two variants for the same domain; both are kept as
// explicit named modes so callers choose deliberately.
type SplitStrategy string

const (
	// PercentageSplit: 30% protein / 35% fat / 35% carbs of target calories.
	PercentageSplit SplitStrategy = "percentage"
	// PerKilogramSplit: protein anchored at g-per-kg of body weight (capped),
	// fat at 30% of calories, carbs take the remainder.
	PerKilogramSplit SplitStrategy = "per_kilogram"
)

// FloorPolicy selects the minimum-calorie safety net applied to weight-loss
// targets.
type FloorPolicy string

const (
	FlatFloor     FloorPolicy = "flat"     // one global floor for everyone
	GenderedFloor FloorPolicy = "gendered" // stricter male floor, per clinical guidance
)

// UserStats is the calculator input. Zero/negative numeric fields are treated
// as "unknown" and replaced with domain-reasonable defaults rather than
// rejected. This is a best-effort estimation service, not a validator.
type UserStats struct {
	WeightKg        float64
	HeightCm        float64
	Age             int
	Gender          string // "male" | "female"; anything else falls back to male offsets
	WorkoutsPerWeek int
	Goal            Goal
	WeeklyRateKg    float64 // magnitude is used; sign is implied by Goal
}

// NutritionPlan is the daily target set. All values are whole units
// (kcal, grams), never negative.
type NutritionPlan struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fats     int `json:"fats"`
	Sugars   int `json:"sugars"`
	Fiber    int `json:"fiber"`
}

// ActivityTier maps a minimum weekly workout count to a TDEE multiplier.
type ActivityTier struct {
	MinWorkouts int
	Multiplier  float64
}

// PlanConfig hoists every tunable the calculation depends on out of the code
// so tests can vary them and product can settle policy questions in one place.
type PlanConfig struct {
	// ~7700 kcal per kg of body fat; converts weekly rate to a daily delta.
	KcalPerKgBodyFat float64
	// Checked top-down; first tier whose MinWorkouts is satisfied wins.
	ActivityTiers []ActivityTier

	// PercentageSplit ratios (of target calories).
	ProteinRatio float64
	FatRatio     float64
	CarbRatio    float64
	SugarRatio   float64
	FiberPer1000 float64 // grams of fiber per 1000 kcal

	// PerKilogramSplit knobs.
	ProteinGPerKg    float64
	ProteinCapRatio  float64 // protein calories never exceed this share of target
	LeanFatRatio     float64
	StrictSugarRatio float64
	StrictSugarCapG  float64

	FloorPolicy     FloorPolicy
	FlatFloorKcal   float64
	MaleFloorKcal   float64
	FemaleFloorKcal float64

	// Substitutes for missing/implausible inputs.
	DefaultWeightKg float64
	DefaultHeightCm float64
	DefaultAge      int
	DefaultWorkouts int
}

// DefaultPlanConfig returns the production policy. The gendered floor is the
// stricter of the two historical variants and is treated as authoritative.
func DefaultPlanConfig() PlanConfig {
	return PlanConfig{
		KcalPerKgBodyFat: 7700,
		ActivityTiers: []ActivityTier{
			{MinWorkouts: 6, Multiplier: 1.725},
			{MinWorkouts: 4, Multiplier: 1.55},
			{MinWorkouts: 2, Multiplier: 1.375},
			{MinWorkouts: 0, Multiplier: 1.2},
		},

		ProteinRatio: 0.30,
		FatRatio:     0.35,
		CarbRatio:    0.35,
		SugarRatio:   0.10,
		FiberPer1000: 14,

		ProteinGPerKg:    2,
		ProteinCapRatio:  0.35,
		LeanFatRatio:     0.30,
		StrictSugarRatio: 0.05,
		StrictSugarCapG:  30,

		FloorPolicy:     GenderedFloor,
		FlatFloorKcal:   1200,
		MaleFloorKcal:   1500,
		FemaleFloorKcal: 1200,

		DefaultWeightKg: 70,
		DefaultHeightCm: 170,
		DefaultAge:      30,
		DefaultWorkouts: 3,
	}
}

// CalculateNutritionPlan derives daily calorie and macro targets from the
// user's biometrics and goal. Pure and deterministic: same stats, same plan.
func CalculateNutritionPlan(stats UserStats, strategy SplitStrategy, cfg PlanConfig) NutritionPlan {
	stats = sanitizeStats(stats, cfg)

	// 1) BMR, Mifflin-St Jeor. Unknown gender gets the male offset.
	bmr := 10*stats.WeightKg + 6.25*stats.HeightCm - 5*float64(stats.Age)
	if strings.ToLower(stats.Gender) == "female" {
		bmr -= 161
	} else {
		bmr += 5
	}

	// 2) TDEE from weekly workout count.
	tdee := math.Round(bmr * activityMultiplier(stats.WorkoutsPerWeek, cfg.ActivityTiers))

	// 3) Goal adjustment. Daily delta from the desired weekly body-mass change.
	delta := math.Round(math.Abs(stats.WeeklyRateKg) * cfg.KcalPerKgBodyFat / 7)
	target := tdee
	switch stats.Goal {
	case GoalLoseWeight:
		target = tdee - delta
		if floor := cfg.safetyFloor(stats.Gender); target < floor {
			target = floor
		}
	case GoalGainWeight:
		target = tdee + delta
	}

	// 4) Macro split.
	plan := NutritionPlan{Calories: int(math.Round(target))}
	switch strategy {
	case PerKilogramSplit:
		protein := math.Round(cfg.ProteinGPerKg * stats.WeightKg)
		if protein*4 > cfg.ProteinCapRatio*target {
			protein = math.Round(cfg.ProteinCapRatio * target / 4)
		}
		fats := math.Round(cfg.LeanFatRatio * target / 9)
		carbs := math.Round((target - protein*4 - fats*9) / 4)
		sugars := math.Round(cfg.StrictSugarRatio * target / 4)
		if sugars > cfg.StrictSugarCapG {
			sugars = cfg.StrictSugarCapG
		}
		plan.Protein = clampGrams(protein)
		plan.Fats = clampGrams(fats)
		plan.Carbs = clampGrams(carbs)
		plan.Sugars = clampGrams(sugars)
	default: // PercentageSplit
		plan.Protein = clampGrams(math.Round(target * cfg.ProteinRatio / 4))
		plan.Fats = clampGrams(math.Round(target * cfg.FatRatio / 9))
		plan.Carbs = clampGrams(math.Round(target * cfg.CarbRatio / 4))
		plan.Sugars = clampGrams(math.Round(target * cfg.SugarRatio / 4))
		plan.Fiber = clampGrams(math.Round(target / 1000 * cfg.FiberPer1000))
	}
	if plan.Calories < 0 {
		plan.Calories = 0
	}
	return plan
}

func (c PlanConfig) safetyFloor(gender string) float64 {
	if c.FloorPolicy == FlatFloor {
		return c.FlatFloorKcal
	}
	if strings.ToLower(gender) == "female" {
		return c.FemaleFloorKcal
	}
	return c.MaleFloorKcal
}

func activityMultiplier(workouts int, tiers []ActivityTier) float64 {
	for _, t := range tiers {
		if workouts >= t.MinWorkouts {
			return t.Multiplier
		}
	}
	// Empty/misconfigured table: sedentary.
	return 1.2
}

// sanitizeStats substitutes defaults for missing or implausible inputs.
func sanitizeStats(s UserStats, cfg PlanConfig) UserStats {
	if s.WeightKg <= 0 || math.IsNaN(s.WeightKg) || math.IsInf(s.WeightKg, 0) {
		s.WeightKg = cfg.DefaultWeightKg
	}
	if s.HeightCm <= 0 || math.IsNaN(s.HeightCm) || math.IsInf(s.HeightCm, 0) {
		s.HeightCm = cfg.DefaultHeightCm
	}
	if s.Age <= 0 {
		s.Age = cfg.DefaultAge
	}
	if s.WorkoutsPerWeek < 0 {
		s.WorkoutsPerWeek = cfg.DefaultWorkouts
	}
	if math.IsNaN(s.WeeklyRateKg) || math.IsInf(s.WeeklyRateKg, 0) {
		s.WeeklyRateKg = 0
	}
	return s
}

func clampGrams(v float64) int {
	if v < 0 {
		return 0
	}
	return int(v)
}
