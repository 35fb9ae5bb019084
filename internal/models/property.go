package models

import (
	"fmt"
	"time"
)

// PropertyKind discriminates how a comparable property entered the market.
type PropertyKind string

const (
	KindSold    PropertyKind = "sold"
	KindListing PropertyKind = "listing"
	KindRental  PropertyKind = "rental"
)

// RentToCapitalMultiplier converts a monthly rent into a capital-equivalent
// price for peer-group comparisons.
const RentToCapitalMultiplier = 240

// ComparableProperty is one candidate in a comparison batch.
type ComparableProperty struct {
	ComparisonID string       `json:"comparison_id"`
	Address      string       `json:"address"`
	Latitude     *float64     `json:"latitude"`
	Longitude    *float64     `json:"longitude"`
	AreaCode     string       `json:"area_code,omitempty"`
	Kind         PropertyKind `json:"kind"`
	SoldPrice    *float64     `json:"sold_price,omitempty"`
	AskingPrice  *float64     `json:"asking_price,omitempty"`
	MonthlyRent  *float64     `json:"monthly_rent,omitempty"`
	Beds         *int         `json:"beds,omitempty"`
	Baths        *int         `json:"baths,omitempty"`
	FloorArea    *float64     `json:"floor_area,omitempty"`
	PropertyType string       `json:"property_type,omitempty"`
	Date         *time.Time   `json:"date,omitempty"`
}

// EffectivePrice resolves the property's capital-equivalent price:
// sold price, then asking price, then monthly rent scaled by the
// rent-to-capital multiplier. Returns 0 when no price is usable.
func (p *ComparableProperty) EffectivePrice() float64 {
	if p.SoldPrice != nil && *p.SoldPrice > 0 {
		return *p.SoldPrice
	}
	if p.AskingPrice != nil && *p.AskingPrice > 0 {
		return *p.AskingPrice
	}
	if p.MonthlyRent != nil && *p.MonthlyRent > 0 {
		return *p.MonthlyRent * RentToCapitalMultiplier
	}
	return 0
}

// HasCoordinates reports whether both latitude and longitude are present.
func (p *ComparableProperty) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// Bedrooms returns the bedroom count, defaulting to 1 when absent.
func (p *ComparableProperty) Bedrooms() int {
	if p.Beds == nil || *p.Beds < 1 {
		return 1
	}
	return *p.Beds
}

// Validate checks the per-property invariants before enrichment: a known
// kind, an address, and exactly one price field matching the kind.
func (p *ComparableProperty) Validate() error {
	switch p.Kind {
	case KindSold, KindListing, KindRental:
	default:
		return fmt.Errorf("invalid property kind: %q", p.Kind)
	}
	if p.Address == "" {
		return fmt.Errorf("property address is required")
	}

	priced := 0
	for _, v := range []*float64{p.SoldPrice, p.AskingPrice, p.MonthlyRent} {
		if v != nil {
			priced++
		}
	}
	if priced == 0 {
		return fmt.Errorf("property %q must carry a sold price, asking price or monthly rent", p.Address)
	}
	if priced > 1 {
		return fmt.Errorf("property %q must carry exactly one price field", p.Address)
	}

	var price *float64
	var priceField string
	switch p.Kind {
	case KindSold:
		price, priceField = p.SoldPrice, "sold_price"
	case KindListing:
		price, priceField = p.AskingPrice, "asking_price"
	case KindRental:
		price, priceField = p.MonthlyRent, "monthly_rent"
	}
	if price == nil {
		return fmt.Errorf("property %q with kind %q must carry %s", p.Address, p.Kind, priceField)
	}
	if *price < 0 {
		return fmt.Errorf("property %q has a negative %s", p.Address, priceField)
	}
	if p.FloorArea != nil && *p.FloorArea < 0 {
		return fmt.Errorf("property %q has a negative floor_area", p.Address)
	}
	return nil
}

// AreaStats summarises the market of one geographic area.
type AreaStats struct {
	MedianPrice     float64 `json:"median_price"`
	AvgPricePerSqm  float64 `json:"avg_price_per_sqm"`
	PctOverAsking   float64 `json:"pct_over_asking"`
	AvgDaysOnMarket float64 `json:"avg_days_on_market"`
}

// MarketPosition classifies a price against a reference median.
type MarketPosition struct {
	Position string  `json:"position"` // below, at or above
	Percent  float64 `json:"percent"`
}

const (
	PositionBelow = "below"
	PositionAt    = "at"
	PositionAbove = "above"
)

const (
	CompetitionLow    = "low"
	CompetitionMedium = "medium"
	CompetitionHigh   = "high"
)

// MortgageEstimate holds the amortised cost of financing a purchase.
type MortgageEstimate struct {
	MonthlyPayment float64 `json:"monthly_payment"`
	DownPayment    float64 `json:"down_payment"`
	TotalInterest  float64 `json:"total_interest"`
	AnnualRate     float64 `json:"annual_rate"`
	TermYears      int     `json:"term_years"`
}

// WalkabilityBreakdown scores each amenity category out of 10.
type WalkabilityBreakdown struct {
	Transport  float64 `json:"transport"`
	Shopping   float64 `json:"shopping"`
	Education  float64 `json:"education"`
	Healthcare float64 `json:"healthcare"`
	Leisure    float64 `json:"leisure"`
	Services   float64 `json:"services"`
}

// TransitStop is the nearest rapid-transit stop to a property.
type TransitStop struct {
	Name      string  `json:"name"`
	DistanceM float64 `json:"distance_m"`
	Mode      string  `json:"mode"`
}

// WalkabilityProfile is an overall walk score with its category breakdown.
type WalkabilityProfile struct {
	Score          float64              `json:"score"` // 1-10, one decimal
	Rating         string               `json:"rating"`
	Breakdown      WalkabilityBreakdown `json:"breakdown"`
	NearestTransit *TransitStop         `json:"nearest_transit,omitempty"`
}

// PlanningApplication is a simplified planning-register match.
type PlanningApplication struct {
	Description string  `json:"description"`
	Status      string  `json:"status"`
	DistanceM   float64 `json:"distance_m"`
	Type        string  `json:"type"`
	Confidence  string  `json:"confidence"`
	Reference   string  `json:"reference"`
}

// PlanningSummary aggregates planning activity around a property.
type PlanningSummary struct {
	Total          int                   `json:"total"`
	NearbyCount    int                   `json:"nearby_count"`
	RadiusM        float64               `json:"radius_m"`
	Applications   []PlanningApplication `json:"applications"`
	TopApplication *PlanningApplication  `json:"top_application,omitempty"`
}

// EnrichedProperty is a ComparableProperty plus every derived metric the
// insight engine consumes. Built once per request, never persisted.
type EnrichedProperty struct {
	ComparableProperty

	AreaMedianPrice      float64            `json:"area_median_price"`
	PeerGroupMedian      float64            `json:"peer_group_median"`
	PeerGroup            string             `json:"peer_group"`
	AreaPricePerSqm      float64            `json:"area_price_per_sqm"`
	AreaPctOverAsking    float64            `json:"area_pct_over_asking"`
	MarketPosition       MarketPosition     `json:"market_position"`
	AreaMarketPosition   MarketPosition     `json:"area_market_position"`
	CompetitionLevel     string             `json:"competition_level"`
	AvgDaysOnMarket      float64            `json:"avg_days_on_market"`
	Mortgage             *MortgageEstimate  `json:"mortgage,omitempty"`
	Walkability          WalkabilityProfile `json:"walkability"`
	Planning             *PlanningSummary   `json:"planning,omitempty"`
	DistanceFromCenterKm float64            `json:"distance_from_center_km"`
	EstimatedMonthlyRent *float64           `json:"estimated_monthly_rent,omitempty"`
	EstimatedYieldPct    *float64           `json:"estimated_yield_pct,omitempty"`
	MapImage             string             `json:"map_image"`
	Fallback             bool               `json:"fallback,omitempty"`
}

// PricePerSqm returns the property's own price per square metre, or 0 when
// either the price or the floor area is unusable.
func (e *EnrichedProperty) PricePerSqm() float64 {
	if e.FloorArea == nil || *e.FloorArea <= 0 {
		return 0
	}
	price := e.EffectivePrice()
	if price <= 0 {
		return 0
	}
	return price / *e.FloorArea
}
