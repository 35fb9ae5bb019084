package analysis

import "homescope/server/internal/models"

// marketDeadBandPct is the band around the median inside which a price is
// classified as "at" market, inclusive of the band edges.
const marketDeadBandPct = 2.0

// ClassifyMarketPosition compares a price to a reference median and returns
// the signed percentage difference with a below/at/above classification.
// A non-positive median is treated as parity since a degenerate peer group
// can have no usable prices.
func ClassifyMarketPosition(price, median float64) models.MarketPosition {
	if median <= 0 {
		return models.MarketPosition{Position: models.PositionAt, Percent: 0}
	}

	pct := (price - median) / median * 100

	position := models.PositionAt
	switch {
	case pct < -marketDeadBandPct:
		position = models.PositionBelow
	case pct > marketDeadBandPct:
		position = models.PositionAbove
	}

	return models.MarketPosition{Position: position, Percent: pct}
}

// CompetitionLevel derives the competitiveness of an area from its
// percentage of sales over asking.
func CompetitionLevel(pctOverAsking float64) string {
	switch {
	case pctOverAsking >= 30:
		return models.CompetitionHigh
	case pctOverAsking >= 15:
		return models.CompetitionMedium
	default:
		return models.CompetitionLow
	}
}
