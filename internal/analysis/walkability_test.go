package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierForArea(t *testing.T) {
	tests := []struct {
		areaCode string
		expected WalkTier
	}{
		{"D02", TierExcellent},
		{"d02 XY34", TierExcellent},
		{"D05", TierGood},
		{"D24", TierPoor},
		{"D99", TierAverage},
		{"", TierAverage},
		{"unknown", TierAverage},
	}

	for _, tt := range tests {
		t.Run(tt.areaCode, func(t *testing.T) {
			assert.Equal(t, tt.expected, TierForArea(tt.areaCode))
		})
	}
}

func TestWalkJitterDeterministic(t *testing.T) {
	a := WalkJitter("prop-1|10 Main Street")
	b := WalkJitter("prop-1|10 Main Street")
	c := WalkJitter("prop-2|12 Main Street")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.GreaterOrEqual(t, a, -0.5)
	assert.LessOrEqual(t, a, 0.5)
}

func TestEstimateWalkability(t *testing.T) {
	// Central property in an excellent area, no jitter
	profile := EstimateWalkability("D02", 1.0, 0, 0)
	assert.Equal(t, 8.5, profile.Score)
	assert.Equal(t, "excellent", profile.Rating)

	// Breakdown categories absorb half the adjustment
	assert.Equal(t, 9.3, profile.Breakdown.Transport)

	// Unknown area falls back to the average tier
	profile = EstimateWalkability("X99", 7.0, 0, 0)
	assert.Equal(t, 6.0, profile.Score)
	assert.Equal(t, "average", profile.Rating)
}

func TestEstimateWalkabilityDevelopmentSignal(t *testing.T) {
	quiet := EstimateWalkability("D05", 3.0, 2, 0)
	busy := EstimateWalkability("D05", 3.0, 6, 0)

	assert.InDelta(t, 0.2, busy.Score-quiet.Score, 0.001)
}

func TestEstimateWalkabilityClamped(t *testing.T) {
	// Even with maximum positive adjustments the score stays within [1,10]
	high := EstimateWalkability("D02", 0.5, 10, 0.5)
	assert.LessOrEqual(t, high.Score, 10.0)

	low := EstimateWalkability("D24", 15.0, 0, -0.5)
	assert.GreaterOrEqual(t, low.Score, 1.0)
	assert.Equal(t, "poor", low.Rating)
}

func TestRatingForScore(t *testing.T) {
	assert.Equal(t, "excellent", RatingForScore(8.0))
	assert.Equal(t, "good", RatingForScore(7.0))
	assert.Equal(t, "average", RatingForScore(5.5))
	assert.Equal(t, "poor", RatingForScore(4.0))
}

func TestNeutralWalkability(t *testing.T) {
	profile := NeutralWalkability()
	assert.Equal(t, 6.0, profile.Score)
	assert.Equal(t, "average", profile.Rating)
	assert.Nil(t, profile.NearestTransit)
}
