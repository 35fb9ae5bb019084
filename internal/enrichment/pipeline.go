package enrichment

import (
	"sync"

	"github.com/sirupsen/logrus"

	"homescope/server/internal/analysis"
	"homescope/server/internal/areastats"
	"homescope/server/internal/geometry"
	"homescope/server/internal/mapimage"
	"homescope/server/internal/metrics"
	"homescope/server/internal/models"
)

// AmenitiesSource is a live walkability lookup; nil means no data.
type AmenitiesSource interface {
	Lookup(lat, lon float64) *models.WalkabilityProfile
}

// PlanningSource resolves planning activity around a coordinate pair.
type PlanningSource interface {
	Lookup(lat, lon float64, address, areaCode string) models.PlanningSummary
}

// MapSource resolves a map-image reference for a property location.
type MapSource interface {
	ImageURL(lat, lon *float64) string
}

// AreaStatsFunc resolves an area code to its market summary.
type AreaStatsFunc func(areaCode string) models.AreaStats

// Pipeline derives every per-property metric the insight engine consumes.
type Pipeline struct {
	logger        *logrus.Logger
	amenities     AmenitiesSource
	planning      PlanningSource
	maps          MapSource
	areaStats     AreaStatsFunc
	centerLat     float64
	centerLon     float64
	jitterEnabled bool
}

func NewPipeline(logger *logrus.Logger, amenities AmenitiesSource, planning PlanningSource, maps MapSource, centerLat, centerLon float64, jitter bool) *Pipeline {
	return &Pipeline{
		logger:        logger,
		amenities:     amenities,
		planning:      planning,
		maps:          maps,
		areaStats:     areastats.Lookup,
		centerLat:     centerLat,
		centerLon:     centerLon,
		jitterEnabled: jitter,
	}
}

// SetAreaStats overrides the area-statistics source.
func (pl *Pipeline) SetAreaStats(fn AreaStatsFunc) {
	pl.areaStats = fn
}

// EnrichAll enriches every property concurrently and returns the results
// in input order. Each property's failure is absorbed locally, so the
// output always has one entry per input.
func (pl *Pipeline) EnrichAll(props []models.ComparableProperty) []models.EnrichedProperty {
	medians := analysis.PeerGroupMedians(props)

	results := make([]models.EnrichedProperty, len(props))
	var wg sync.WaitGroup
	for i := range props {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = pl.enrichSafe(props[i], medians)
		}(i)
	}
	wg.Wait()

	return results
}

// enrichSafe isolates a single property's enrichment: a panic anywhere in
// the pipeline yields the documented fallback block instead of failing the
// batch.
func (pl *Pipeline) enrichSafe(p models.ComparableProperty, medians map[string]float64) (result models.EnrichedProperty) {
	defer func() {
		if r := recover(); r != nil {
			pl.logger.WithFields(logrus.Fields{
				"address": p.Address,
				"panic":   r,
			}).Error("Property enrichment failed, using fallback values")
			metrics.EnrichmentFallbacks.Inc()
			result = pl.fallback(p)
		}
	}()
	return pl.enrich(p, medians)
}

func (pl *Pipeline) enrich(p models.ComparableProperty, medians map[string]float64) models.EnrichedProperty {
	stats := pl.areaStats(p.AreaCode)
	price := p.EffectivePrice()

	peerGroup := analysis.PeerGroupKey(&p)
	peerMedian, ok := medians[peerGroup]
	if !ok || peerMedian <= 0 {
		// Degenerate peer group; the area median is the best reference left.
		peerMedian = stats.MedianPrice
	}

	e := models.EnrichedProperty{
		ComparableProperty: p,
		AreaMedianPrice:    stats.MedianPrice,
		PeerGroupMedian:    peerMedian,
		PeerGroup:          peerGroup,
		AreaPricePerSqm:    stats.AvgPricePerSqm,
		AreaPctOverAsking:  stats.PctOverAsking,
		MarketPosition:     analysis.ClassifyMarketPosition(price, peerMedian),
		AreaMarketPosition: analysis.ClassifyMarketPosition(price, stats.MedianPrice),
		CompetitionLevel:   analysis.CompetitionLevel(stats.PctOverAsking),
		AvgDaysOnMarket:    stats.AvgDaysOnMarket,
	}

	if p.Kind != models.KindRental && price > 0 {
		e.Mortgage = analysis.EstimateMortgage(price)
	}

	// Properties without coordinates sit at the reference point, so the
	// distance is 0 rather than undefined.
	lat, lon := pl.centerLat, pl.centerLon
	if p.HasCoordinates() {
		lat, lon = *p.Latitude, *p.Longitude
	}
	e.DistanceFromCenterKm = geometry.KilometersBetween(lat, lon, pl.centerLat, pl.centerLon)

	if p.HasCoordinates() {
		summary := pl.planning.Lookup(lat, lon, p.Address, p.AreaCode)
		e.Planning = &summary
	}

	var profile *models.WalkabilityProfile
	if p.HasCoordinates() {
		profile = pl.amenities.Lookup(lat, lon)
	}
	if profile == nil {
		jitter := 0.0
		if pl.jitterEnabled {
			jitter = analysis.WalkJitter(p.ComparisonID + "|" + p.Address)
		}
		nearby := 0
		if e.Planning != nil {
			nearby = e.Planning.NearbyCount
		}
		estimated := analysis.EstimateWalkability(p.AreaCode, e.DistanceFromCenterKm, nearby, jitter)
		profile = &estimated
	}
	e.Walkability = *profile

	e.MapImage = pl.maps.ImageURL(p.Latitude, p.Longitude)

	if p.Kind != models.KindRental && p.HasCoordinates() && price > 0 {
		tier := analysis.TierForArea(p.AreaCode)
		rent := analysis.EstimateMonthlyRent(p.Bedrooms(), analysis.TierRentMultiplier(tier), e.DistanceFromCenterKm)
		yield := analysis.RentalYield(rent*12, price)
		e.EstimatedMonthlyRent = &rent
		e.EstimatedYieldPct = &yield
	}

	return e
}

// fallback is the city-average enrichment block applied when a property's
// pipeline fails at any step.
func (pl *Pipeline) fallback(p models.ComparableProperty) models.EnrichedProperty {
	stats := areastats.DefaultStats
	return models.EnrichedProperty{
		ComparableProperty: p,
		AreaMedianPrice:    stats.MedianPrice,
		PeerGroupMedian:    stats.MedianPrice,
		PeerGroup:          analysis.PeerGroupKey(&p),
		AreaPricePerSqm:    stats.AvgPricePerSqm,
		AreaPctOverAsking:  stats.PctOverAsking,
		MarketPosition:     models.MarketPosition{Position: models.PositionAt, Percent: 0},
		AreaMarketPosition: models.MarketPosition{Position: models.PositionAt, Percent: 0},
		CompetitionLevel:   models.CompetitionMedium,
		AvgDaysOnMarket:    stats.AvgDaysOnMarket,
		Walkability:        analysis.NeutralWalkability(),
		MapImage:           mapimage.PlaceholderImage,
		Fallback:           true,
	}
}
