package analysis

import (
	"fmt"

	"homescope/server/internal/models"
)

// Scoring thresholds shared across axes.
const (
	pricePerSqmCeiling   = 15000.0 // €/m² above which fast-sale appeal is nil
	investTransitDecayM  = 1000.0
	commuteTransitDecayM = 2000.0
	daysOnMarketCeiling  = 90.0
)

// axisScore returns a property's score on one axis. ok is false when the
// property is ineligible for that axis.
type axisScore func(i int, p *models.EnrichedProperty) (score float64, ok bool)

// argMax scans left to right and returns the index of the highest eligible
// score. Ties keep the first-encountered property: comparisons are strictly
// greater, so every axis shares the same tie-break semantics.
func argMax(props []models.EnrichedProperty, score axisScore) (int, bool) {
	best := -1
	bestScore := 0.0
	for i := range props {
		s, ok := score(i, &props[i])
		if !ok {
			continue
		}
		if best == -1 || s > bestScore {
			best = i
			bestScore = s
		}
	}
	return best, best >= 0
}

// argMin is argMax over the negated score.
func argMin(props []models.EnrichedProperty, score axisScore) (int, bool) {
	return argMax(props, func(i int, p *models.EnrichedProperty) (float64, bool) {
		s, ok := score(i, p)
		return -s, ok
	})
}

// BuildInsights runs every ranking pass over the enriched batch and
// assembles the warnings, highlights and aggregate sentences.
func BuildInsights(props []models.EnrichedProperty) models.InsightSet {
	set := models.InsightSet{
		Warnings:       []string{},
		Highlights:     []string{},
		MarketInsights: []string{},
	}
	if len(props) == 0 {
		return set
	}

	set.BestOverall = bestOverall(props)
	set.BestInvestment = bestInvestment(props)
	set.BestFamily = bestFamily(props)
	set.BestCommuter = bestCommuter(props)
	set.BestRentalYield = bestRentalYield(props)
	set.FastestSale = fastestSale(props)
	set.LowestPrice = lowestPrice(props)
	set.LowestPricePerSqm = lowestPricePerSqm(props)
	set.HighestWalkability = highestWalkability(props)
	set.LowestMortgage = lowestMortgage(props)
	set.ClosestTransit = closestTransit(props)

	set.Warnings = collectWarnings(props)
	set.Highlights = collectHighlights(props)
	set.MarketInsights = collectMarketInsights(props)

	return set
}

// inversePricePerSqmScore rewards cheap floor space, capped at 10.
func inversePricePerSqmScore(ppsqm float64) float64 {
	if ppsqm <= 0 {
		return 0
	}
	return min(10, 50000/ppsqm)
}

// inverseMortgageScore rewards a low monthly payment, capped at 10.
func inverseMortgageScore(monthly float64) float64 {
	if monthly <= 0 {
		return 0
	}
	return min(10, 20000/monthly)
}

// positionBonus is the flat market-position contribution to overall value.
func positionBonus(position string) float64 {
	switch position {
	case models.PositionBelow:
		return 2
	case models.PositionAt:
		return 1
	default:
		return 0
	}
}

// transitScore decays linearly from 10 at the stop to 0 at decayM meters.
func transitScore(stop *models.TransitStop, decayM float64) float64 {
	if stop == nil {
		return 0
	}
	return 10 * max(0, 1-stop.DistanceM/decayM)
}

func bestOverall(props []models.EnrichedProperty) *models.Insight {
	idx, ok := argMax(props, func(_ int, p *models.EnrichedProperty) (float64, bool) {
		score := 0.3 * inversePricePerSqmScore(p.PricePerSqm())
		score += 0.25 * p.Walkability.Score
		score += positionBonus(p.MarketPosition.Position)
		if p.Mortgage != nil {
			score += 0.2 * inverseMortgageScore(p.Mortgage.MonthlyPayment)
		}
		if price := p.EffectivePrice(); price > 0 {
			// Bedrooms per €100k, a cheap size-efficiency proxy.
			score += min(2, float64(p.Bedrooms())/(price/100000))
		}
		return score, true
	})
	if !ok {
		return nil
	}
	p := &props[idx]
	return &models.Insight{
		Index: idx,
		Reason: fmt.Sprintf("%s offers the best balance of price, space, walkability (%.1f) and financing cost",
			p.Address, p.Walkability.Score),
	}
}

func bestInvestment(props []models.EnrichedProperty) *models.Insight {
	idx, ok := argMax(props, func(_ int, p *models.EnrichedProperty) (float64, bool) {
		score := 0.4 * p.Walkability.Score
		score += 0.3 * transitScore(p.Walkability.NearestTransit, investTransitDecayM)
		if p.MarketPosition.Position == models.PositionBelow {
			score += 0.3 * 10
		}
		if p.CompetitionLevel == models.CompetitionMedium {
			score += 0.2 * 10
		}
		return score, true
	})
	if !ok {
		return nil
	}
	p := &props[idx]
	return &models.Insight{
		Index: idx,
		Reason: fmt.Sprintf("%s combines strong walkability and transit access with a %s-market price",
			p.Address, p.MarketPosition.Position),
	}
}

func bestFamily(props []models.EnrichedProperty) *models.Insight {
	idx, ok := argMax(props, func(_ int, p *models.EnrichedProperty) (float64, bool) {
		beds := min(4, float64(p.Bedrooms()))
		score := 0.3 * beds / 4
		score += 0.3 * p.Walkability.Breakdown.Education / 10
		score += 0.2 * p.Walkability.Breakdown.Shopping / 10
		score += 0.2 * p.Walkability.Breakdown.Healthcare / 10
		return score, true
	})
	if !ok {
		return nil
	}
	p := &props[idx]
	return &models.Insight{
		Index: idx,
		Reason: fmt.Sprintf("%s has %d bedrooms with the strongest schools and amenities nearby",
			p.Address, p.Bedrooms()),
	}
}

func bestCommuter(props []models.EnrichedProperty) *models.Insight {
	idx, ok := argMax(props, func(_ int, p *models.EnrichedProperty) (float64, bool) {
		score := 0.6 * transitScore(p.Walkability.NearestTransit, commuteTransitDecayM) / 10
		score += 0.4 * p.Walkability.Breakdown.Transport / 10
		return score, true
	})
	if !ok {
		return nil
	}
	p := &props[idx]
	reason := fmt.Sprintf("%s has the best public-transport access", p.Address)
	if stop := p.Walkability.NearestTransit; stop != nil {
		reason = fmt.Sprintf("%s is %0.fm from %s (%s)", p.Address, stop.DistanceM, stop.Name, stop.Mode)
	}
	return &models.Insight{Index: idx, Reason: reason}
}

func bestRentalYield(props []models.EnrichedProperty) *models.Insight {
	yields := make([]float64, len(props))
	for i := range props {
		p := &props[i]
		if p.Kind == models.KindRental {
			continue
		}
		price := p.EffectivePrice()
		if price <= 0 {
			continue
		}
		rent := EstimateMonthlyRent(p.Bedrooms(), TierRentMultiplier(TierForArea(p.AreaCode)), p.DistanceFromCenterKm)
		yields[i] = RentalYield(rent*12, price)
	}

	idx, ok := argMax(props, func(i int, _ *models.EnrichedProperty) (float64, bool) {
		return yields[i], yields[i] > 0
	})
	if !ok {
		return nil
	}
	p := &props[idx]
	return &models.Insight{
		Index:  idx,
		Reason: fmt.Sprintf("%s has the highest estimated gross yield at %.1f%%", p.Address, yields[idx]),
	}
}

func fastestSale(props []models.EnrichedProperty) *models.Insight {
	idx, ok := argMax(props, func(_ int, p *models.EnrichedProperty) (float64, bool) {
		score := 0.0
		if ppsqm := p.PricePerSqm(); ppsqm > 0 {
			score += 0.3 * max(0, 1-ppsqm/pricePerSqmCeiling)
		}
		if p.MarketPosition.Position == models.PositionBelow {
			score += 0.3
		}
		if p.CompetitionLevel == models.CompetitionHigh {
			score += 0.2
		}
		if p.AvgDaysOnMarket > 0 {
			score += 0.2 * max(0, 1-p.AvgDaysOnMarket/daysOnMarketCeiling)
		}
		return score, true
	})
	if !ok {
		return nil
	}
	p := &props[idx]
	return &models.Insight{
		Index: idx,
		Reason: fmt.Sprintf("%s is priced to move in a market averaging %.0f days on market",
			p.Address, p.AvgDaysOnMarket),
	}
}

func lowestPrice(props []models.EnrichedProperty) *models.Insight {
	idx, ok := argMin(props, func(_ int, p *models.EnrichedProperty) (float64, bool) {
		price := p.EffectivePrice()
		return price, price > 0
	})
	if !ok {
		return nil
	}
	p := &props[idx]
	return &models.Insight{
		Index:  idx,
		Reason: fmt.Sprintf("%s is the cheapest option at €%.0f", p.Address, p.EffectivePrice()),
	}
}

func lowestPricePerSqm(props []models.EnrichedProperty) *models.Insight {
	idx, ok := argMin(props, func(_ int, p *models.EnrichedProperty) (float64, bool) {
		ppsqm := p.PricePerSqm()
		return ppsqm, ppsqm > 0
	})
	if !ok {
		return nil
	}
	p := &props[idx]
	return &models.Insight{
		Index:  idx,
		Reason: fmt.Sprintf("%s offers the most space for the money at €%.0f/m²", p.Address, p.PricePerSqm()),
	}
}

func highestWalkability(props []models.EnrichedProperty) *models.Insight {
	idx, ok := argMax(props, func(_ int, p *models.EnrichedProperty) (float64, bool) {
		return p.Walkability.Score, p.Walkability.Score > 0
	})
	if !ok {
		return nil
	}
	p := &props[idx]
	return &models.Insight{
		Index:  idx,
		Reason: fmt.Sprintf("%s is the most walkable with a score of %.1f/10", p.Address, p.Walkability.Score),
	}
}

func lowestMortgage(props []models.EnrichedProperty) *models.Insight {
	idx, ok := argMin(props, func(_ int, p *models.EnrichedProperty) (float64, bool) {
		if p.Mortgage == nil {
			return 0, false
		}
		return p.Mortgage.MonthlyPayment, true
	})
	if !ok {
		return nil
	}
	p := &props[idx]
	return &models.Insight{
		Index:  idx,
		Reason: fmt.Sprintf("%s has the lowest monthly repayment at €%.0f", p.Address, p.Mortgage.MonthlyPayment),
	}
}

func closestTransit(props []models.EnrichedProperty) *models.Insight {
	idx, ok := argMin(props, func(_ int, p *models.EnrichedProperty) (float64, bool) {
		if p.Walkability.NearestTransit == nil {
			return 0, false
		}
		return p.Walkability.NearestTransit.DistanceM, true
	})
	if !ok {
		return nil
	}
	p := &props[idx]
	stop := p.Walkability.NearestTransit
	return &models.Insight{
		Index:  idx,
		Reason: fmt.Sprintf("%s is closest to rapid transit: %s at %.0fm", p.Address, stop.Name, stop.DistanceM),
	}
}

func collectWarnings(props []models.EnrichedProperty) []string {
	warnings := []string{}
	for i := range props {
		p := &props[i]
		if p.MarketPosition.Percent > 15 {
			warnings = append(warnings, fmt.Sprintf(
				"%s is priced %.1f%% above its peer-group median", p.Address, p.MarketPosition.Percent))
		}
		if p.Planning != nil && p.Planning.NearbyCount > 2 {
			warnings = append(warnings, fmt.Sprintf(
				"%s has %d planning applications within %.0fm", p.Address, p.Planning.NearbyCount, p.Planning.RadiusM))
		}
		if p.CompetitionLevel == models.CompetitionHigh && p.MarketPosition.Percent > 5 {
			warnings = append(warnings, fmt.Sprintf(
				"%s is above market in a highly competitive area", p.Address))
		}
	}
	return warnings
}

func collectHighlights(props []models.EnrichedProperty) []string {
	highlights := []string{}
	for i := range props {
		p := &props[i]
		below := p.MarketPosition.Position == models.PositionBelow
		if below && p.Walkability.Score >= 7 {
			highlights = append(highlights, fmt.Sprintf(
				"%s is below market in a very walkable location", p.Address))
		}
		if p.Walkability.Score >= 9 {
			highlights = append(highlights, fmt.Sprintf(
				"%s has exceptional walkability (%.1f/10)", p.Address, p.Walkability.Score))
		}
		if below && p.CompetitionLevel == models.CompetitionMedium {
			highlights = append(highlights, fmt.Sprintf(
				"%s is below market with moderate buyer competition", p.Address))
		}
		if p.Bedrooms() >= 3 && p.Walkability.Breakdown.Education >= 7 {
			highlights = append(highlights, fmt.Sprintf(
				"%s pairs %d bedrooms with strong schools nearby", p.Address, p.Bedrooms()))
		}
	}
	return highlights
}

func collectMarketInsights(props []models.EnrichedProperty) []string {
	var priceSum float64
	var priced int
	var walkSum float64
	var highCompetition, belowMedian int

	for i := range props {
		p := &props[i]
		if price := p.EffectivePrice(); price > 0 {
			priceSum += price
			priced++
		}
		walk := p.Walkability.Score
		if walk <= 0 {
			walk = 5
		}
		walkSum += walk
		if p.CompetitionLevel == models.CompetitionHigh {
			highCompetition++
		}
		if p.MarketPosition.Position == models.PositionBelow {
			belowMedian++
		}
	}

	insights := []string{}
	if priced > 0 {
		insights = append(insights, fmt.Sprintf(
			"The average price across the comparison is €%.0f", priceSum/float64(priced)))
	}
	insights = append(insights, fmt.Sprintf(
		"Average walkability across the comparison is %.1f/10", walkSum/float64(len(props))))
	insights = append(insights, fmt.Sprintf(
		"%d of %d properties are in high-competition areas", highCompetition, len(props)))
	insights = append(insights, fmt.Sprintf(
		"%d of %d properties are priced below their peer-group median", belowMedian, len(props)))
	return insights
}
