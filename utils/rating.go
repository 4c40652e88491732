package utils

import (
	"fmt"
	"strings"
)

// WarningSeverity categorizes how serious a finding is.
type WarningSeverity string

const (
	Info    WarningSeverity = "info"
	Caution WarningSeverity = "caution"
	High    WarningSeverity = "high"
)

// ProductWarning is a structured finding suitable for the API / UI.
type ProductWarning struct {
	Code     string          `json:"code"`
	Severity WarningSeverity `json:"severity"`
	Message  string          `json:"message"`
	Metric   string          `json:"metric,omitempty"`
	Value    float64         `json:"value,omitempty"`
	Limit    float64         `json:"limit,omitempty"`
}

// ProductRating is the local (non-AI) health classification of a product.
type ProductRating struct {
	Rating   string           `json:"rating"` // "healthy" | "moderate" | "avoid"
	Warnings []ProductWarning `json:"warnings"`
}

// Per-100g "high" thresholds, after the UK FSA front-of-pack traffic lights.
const (
	highFatPer100g    = 17.5 // g
	highSugarPer100g  = 22.5 // g
	highSodiumPer100g = 600  // mg (≈1.5 g salt)
	midFatPer100g     = 3.0
	midSugarPer100g   = 5.0
	midSodiumPer100g  = 120
)

// RateProductLocal classifies a product from its per-100g nutrients with a
// rule table. Used as the offline fallback when the AI rating call is
// unavailable; findings only reference nutrients that are present.
func RateProductLocal(name string, fatG, sugarG, sodiumMg, fiberG float64) ProductRating {
	warnings := []ProductWarning{}
	highs, mids := 0, 0

	grade := func(code, label, unit string, value, mid, high float64) {
		if value <= 0 {
			return
		}
		switch {
		case value >= high:
			highs++
			warnings = append(warnings, ProductWarning{
				Code:     code + "_high",
				Severity: High,
				Message:  fmt.Sprintf("High in %s (%.1f%s per 100g).", label, value, unit),
				Metric:   code + "_per_100g",
				Value:    value,
				Limit:    high,
			})
		case value >= mid:
			mids++
			warnings = append(warnings, ProductWarning{
				Code:     code + "_moderate",
				Severity: Caution,
				Message:  fmt.Sprintf("Moderate %s content (%.1f%s per 100g).", label, value, unit),
				Metric:   code + "_per_100g",
				Value:    value,
				Limit:    mid,
			})
		}
	}

	grade("fat", "fat", "g", fatG, midFatPer100g, highFatPer100g)
	grade("sugar", "sugars", "g", sugarG, midSugarPer100g, highSugarPer100g)
	grade("sodium", "sodium", "mg", sodiumMg, midSodiumPer100g, highSodiumPer100g)

	if fiberG >= 6 {
		warnings = append(warnings, ProductWarning{
			Code:     "fiber_positive",
			Severity: Info,
			Message:  "Good fiber content for a per-100g serving.",
			Metric:   "fiber_g_per_100g",
			Value:    fiberG,
		})
	}

	// Name nudges for obvious candy/soda style items lacking nutrient data
	if highs == 0 && mids == 0 && looksLikeTreat(strings.ToLower(name)) {
		warnings = append(warnings, ProductWarning{
			Code:     "treat_heuristic",
			Severity: Info,
			Message:  "Typically an occasional treat rather than an everyday food.",
		})
	}

	rating := "healthy"
	switch {
	case highs >= 2:
		rating = "avoid"
	case highs == 1 || mids >= 2:
		rating = "moderate"
	}
	return ProductRating{Rating: rating, Warnings: warnings}
}

func looksLikeTreat(name string) bool {
	for _, w := range []string{"candy", "soda", "cola", "chocolate", "cookie", "donut", "chips", "energy drink"} {
		if strings.Contains(name, w) {
			return true
		}
	}
	return false
}
