package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateProductLocal(t *testing.T) {
	tests := []struct {
		name     string
		fat      float64
		sugar    float64
		sodium   float64
		fiber    float64
		rating   string
		warnings int
	}{
		{"plain oats", 1.5, 1.0, 5, 10, "healthy", 1}, // fiber note only
		{"milk chocolate", 30, 55, 80, 2, "avoid", 2}, // fat + sugar both high
		{"salted crackers", 12, 2, 700, 3, "moderate", 2},
		{"yogurt drink", 3.5, 12, 60, 0, "moderate", 2}, // two moderates
		{"water", 0, 0, 0, 0, "healthy", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RateProductLocal(tt.name, tt.fat, tt.sugar, tt.sodium, tt.fiber)
			assert.Equal(t, tt.rating, got.Rating)
			assert.Len(t, got.Warnings, tt.warnings)
		})
	}
}

func TestRateProductLocalWarningDetail(t *testing.T) {
	got := RateProductLocal("cola", 0, 26, 0, 0)
	require.Len(t, got.Warnings, 1)

	w := got.Warnings[0]
	assert.Equal(t, "sugar_high", w.Code)
	assert.Equal(t, High, w.Severity)
	assert.Equal(t, 26.0, w.Value)
	assert.Equal(t, 22.5, w.Limit)
	assert.Equal(t, "moderate", got.Rating)
}

func TestRateProductLocalTreatHeuristic(t *testing.T) {
	// No nutrient data at all, but the name gives it away.
	got := RateProductLocal("Gummy Candy Mix", 0, 0, 0, 0)
	assert.Equal(t, "healthy", got.Rating) // rating stays data-driven
	require.Len(t, got.Warnings, 1)
	assert.Equal(t, "treat_heuristic", got.Warnings[0].Code)
	assert.Equal(t, Info, got.Warnings[0].Severity)
}
