package analysis

import (
	"math"

	"homescope/server/internal/models"
)

// Fixed financing assumptions applied to every estimate. Callers may not
// override these per request.
const (
	DownPaymentFraction = 0.20
	MortgageTermYears   = 30
	MortgageAnnualRate  = 4.0
)

// EstimateMortgage computes the amortised monthly cost of buying at the
// given price under the fixed assumptions. Returns nil for a non-positive
// price; callers must also skip rentals.
func EstimateMortgage(price float64) *models.MortgageEstimate {
	if price <= 0 {
		return nil
	}

	principal := price * (1 - DownPaymentFraction)
	monthlyRate := MortgageAnnualRate / 1200
	n := float64(MortgageTermYears * 12)

	factor := math.Pow(1+monthlyRate, n)
	monthly := principal * monthlyRate * factor / (factor - 1)

	return &models.MortgageEstimate{
		MonthlyPayment: math.Round(monthly),
		DownPayment:    math.Round(price * DownPaymentFraction),
		TotalInterest:  math.Round(monthly*n - principal),
		AnnualRate:     MortgageAnnualRate,
		TermYears:      MortgageTermYears,
	}
}

// Rent estimation constants: a base rent for a one-bed plus a per-bedroom
// increment, scaled by area quality and centrality.
const (
	baseMonthlyRent   = 1200.0
	rentPerExtraBed   = 450.0
	maxCentralityMult = 1.15
	minCentralityMult = 0.80
)

// EstimateMonthlyRent predicts the achievable monthly rent for a property
// from its bedroom count, the rent multiplier of its area's walkability
// tier, and its distance from the city center.
func EstimateMonthlyRent(beds int, tierMultiplier, distanceKm float64) float64 {
	if beds < 1 {
		beds = 1
	}
	base := baseMonthlyRent + rentPerExtraBed*float64(beds-1)

	centrality := maxCentralityMult - 0.02*distanceKm
	centrality = math.Min(maxCentralityMult, math.Max(minCentralityMult, centrality))

	return math.Round(base * tierMultiplier * centrality)
}

// RentalYield returns the gross annual yield percentage, or 0 when either
// input is unusable.
func RentalYield(annualRent, price float64) float64 {
	if annualRent <= 0 || price <= 0 {
		return 0
	}
	return annualRent / price * 100
}
