package models

import "time"

// Insight names one winning property on a single comparison axis.
type Insight struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// InsightSet is the full output of the ranking engine for one batch.
// Each single-winner field is nil when no property qualified on that axis.
type InsightSet struct {
	BestOverall        *Insight `json:"best_overall,omitempty"`
	BestInvestment     *Insight `json:"best_investment,omitempty"`
	BestFamily         *Insight `json:"best_family,omitempty"`
	BestCommuter       *Insight `json:"best_commuter,omitempty"`
	BestRentalYield    *Insight `json:"best_rental_yield,omitempty"`
	FastestSale        *Insight `json:"fastest_sale,omitempty"`
	LowestPrice        *Insight `json:"lowest_price,omitempty"`
	LowestPricePerSqm  *Insight `json:"lowest_price_per_sqm,omitempty"`
	HighestWalkability *Insight `json:"highest_walkability,omitempty"`
	LowestMortgage     *Insight `json:"lowest_mortgage,omitempty"`
	ClosestTransit     *Insight `json:"closest_transit,omitempty"`

	Warnings       []string `json:"warnings"`
	Highlights     []string `json:"highlights"`
	MarketInsights []string `json:"market_insights"`
}

// Winners counts the single-winner insights that were emitted.
func (s *InsightSet) Winners() int {
	count := 0
	for _, insight := range []*Insight{
		s.BestOverall, s.BestInvestment, s.BestFamily, s.BestCommuter,
		s.BestRentalYield, s.FastestSale, s.LowestPrice, s.LowestPricePerSqm,
		s.HighestWalkability, s.LowestMortgage, s.ClosestTransit,
	} {
		if insight != nil {
			count++
		}
	}
	return count
}

// ComparisonRecord is the persisted trace of one served comparison.
type ComparisonRecord struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	CreatedAt     time.Time `json:"created_at"`
	PropertyCount int       `json:"property_count"`
	InsightCount  int       `json:"insight_count"`
	FallbackCount int       `json:"fallback_count"`
	DurationMs    int64     `json:"duration_ms"`
	Addresses     string    `json:"addresses"`
}
