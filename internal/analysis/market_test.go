package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"homescope/server/internal/models"
)

func TestClassifyMarketPosition(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		median   float64
		expected string
	}{
		{"Well below median", 400000, 500000, models.PositionBelow},
		{"Well above median", 520000, 500000, models.PositionAbove},
		{"Exactly at median", 500000, 500000, models.PositionAt},
		{"Dead-band lower edge inclusive", 98000, 100000, models.PositionAt},
		{"Dead-band upper edge inclusive", 102000, 100000, models.PositionAt},
		{"Just below dead band", 97999.9, 100000, models.PositionBelow},
		{"Just above dead band", 102000.1, 100000, models.PositionAbove},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := ClassifyMarketPosition(tt.price, tt.median)
			assert.Equal(t, tt.expected, pos.Position)
		})
	}
}

func TestClassifyMarketPositionPercent(t *testing.T) {
	pos := ClassifyMarketPosition(400000, 500000)
	assert.Equal(t, models.PositionBelow, pos.Position)
	assert.InDelta(t, -20.0, pos.Percent, 0.001)
}

func TestClassifyMarketPositionZeroMedian(t *testing.T) {
	// Degenerate peer groups must not divide by zero
	pos := ClassifyMarketPosition(400000, 0)
	assert.Equal(t, models.PositionAt, pos.Position)
	assert.Equal(t, 0.0, pos.Percent)
}

func TestCompetitionLevel(t *testing.T) {
	tests := []struct {
		pctOverAsking float64
		expected      string
	}{
		{35, models.CompetitionHigh},
		{30, models.CompetitionHigh},
		{20, models.CompetitionMedium},
		{15, models.CompetitionMedium},
		{10, models.CompetitionLow},
		{0, models.CompetitionLow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, CompetitionLevel(tt.pctOverAsking))
	}
}
