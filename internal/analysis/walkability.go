package analysis

import (
	"hash/fnv"
	"math"
	"math/rand"
	"strings"

	"homescope/server/internal/models"
)

// WalkTier buckets an area by how walkable it typically is.
type WalkTier string

const (
	TierExcellent WalkTier = "excellent"
	TierGood      WalkTier = "good"
	TierAverage   WalkTier = "average"
	TierPoor      WalkTier = "poor"
)

type tierProfile struct {
	score     float64
	breakdown models.WalkabilityBreakdown
	rentMult  float64
}

var walkTiers = map[WalkTier]tierProfile{
	TierExcellent: {
		score: 8,
		breakdown: models.WalkabilityBreakdown{
			Transport: 9, Shopping: 9, Education: 7,
			Healthcare: 8, Leisure: 8, Services: 8,
		},
		rentMult: 1.25,
	},
	TierGood: {
		score: 7,
		breakdown: models.WalkabilityBreakdown{
			Transport: 7, Shopping: 7, Education: 7,
			Healthcare: 7, Leisure: 7, Services: 7,
		},
		rentMult: 1.10,
	},
	TierAverage: {
		score: 6,
		breakdown: models.WalkabilityBreakdown{
			Transport: 6, Shopping: 6, Education: 6,
			Healthcare: 6, Leisure: 5, Services: 6,
		},
		rentMult: 1.00,
	},
	TierPoor: {
		score: 4,
		breakdown: models.WalkabilityBreakdown{
			Transport: 3, Shopping: 4, Education: 5,
			Healthcare: 4, Leisure: 4, Services: 4,
		},
		rentMult: 0.85,
	},
}

// areaTiers maps Dublin routing-key prefixes to a walkability tier.
// Unknown areas fall back to the average tier.
var areaTiers = map[string]WalkTier{
	"d01": TierExcellent,
	"d02": TierExcellent,
	"d04": TierExcellent,
	"d06": TierExcellent,
	"d08": TierExcellent,
	"d03": TierGood,
	"d05": TierGood,
	"d07": TierGood,
	"d09": TierGood,
	"d14": TierGood,
	"d15": TierGood,
	"d10": TierPoor,
	"d17": TierPoor,
	"d22": TierPoor,
	"d24": TierPoor,
}

// TierForArea resolves an area code to its walkability tier by prefix.
func TierForArea(areaCode string) WalkTier {
	code := strings.ToLower(strings.ReplaceAll(areaCode, " ", ""))
	if len(code) >= 3 {
		if tier, ok := areaTiers[code[:3]]; ok {
			return tier
		}
	}
	return TierAverage
}

// TierRentMultiplier returns the rent scaling factor of a tier.
func TierRentMultiplier(tier WalkTier) float64 {
	return walkTiers[tier].rentMult
}

// WalkJitter derives the per-property differentiation jitter in
// [-0.5, +0.5] from a stable seed key, so repeated runs score the same
// property identically.
func WalkJitter(seedKey string) float64 {
	h := fnv.New64a()
	h.Write([]byte(seedKey))
	r := rand.New(rand.NewSource(int64(h.Sum64())))
	return r.Float64() - 0.5
}

// EstimateWalkability derives a walkability profile from the property's
// area tier, adjusted by its distance from the city center, nearby
// development activity and the differentiation jitter. Used only when a
// live amenities lookup yields nothing.
func EstimateWalkability(areaCode string, distanceKm float64, nearbyPlanning int, jitter float64) models.WalkabilityProfile {
	tier := walkTiers[TierForArea(areaCode)]

	adjustment := centralityAdjustment(distanceKm)
	if nearbyPlanning > 5 {
		adjustment += 0.2
	}

	score := roundScore(clampScore(tier.score + adjustment + jitter))

	// Each category absorbs half the deterministic adjustment and a
	// smaller share of the jitter, independently clamped.
	catDelta := 0.5*adjustment + 0.3*jitter
	b := tier.breakdown
	breakdown := models.WalkabilityBreakdown{
		Transport:  roundScore(clampScore(b.Transport + catDelta)),
		Shopping:   roundScore(clampScore(b.Shopping + catDelta)),
		Education:  roundScore(clampScore(b.Education + catDelta)),
		Healthcare: roundScore(clampScore(b.Healthcare + catDelta)),
		Leisure:    roundScore(clampScore(b.Leisure + catDelta)),
		Services:   roundScore(clampScore(b.Services + catDelta)),
	}

	return models.WalkabilityProfile{
		Score:     score,
		Rating:    RatingForScore(score),
		Breakdown: breakdown,
	}
}

// NeutralWalkability is the profile applied when enrichment fails entirely.
func NeutralWalkability() models.WalkabilityProfile {
	tier := walkTiers[TierAverage]
	return models.WalkabilityProfile{
		Score:     tier.score,
		Rating:    RatingForScore(tier.score),
		Breakdown: tier.breakdown,
	}
}

// RatingForScore maps a final score to its qualitative label.
func RatingForScore(score float64) string {
	switch {
	case score >= 7.5:
		return string(TierExcellent)
	case score >= 6.5:
		return string(TierGood)
	case score >= 5:
		return string(TierAverage)
	default:
		return string(TierPoor)
	}
}

func centralityAdjustment(distanceKm float64) float64 {
	switch {
	case distanceKm < 2:
		return 0.5
	case distanceKm <= 5:
		return 0.2
	case distanceKm <= 10:
		return 0
	default:
		return -0.3
	}
}

func clampScore(score float64) float64 {
	return math.Min(10, math.Max(1, score))
}

func roundScore(score float64) float64 {
	return math.Round(score*10) / 10
}
