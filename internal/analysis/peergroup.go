package analysis

import (
	"fmt"
	"sort"
	"strings"

	"homescope/server/internal/models"
)

var apartmentKeywords = []string{"apartment", "flat", "studio", "penthouse"}

var houseKeywords = []string{
	"house", "bungalow", "cottage", "terrace", "semi-detached",
	"detached", "townhouse", "end of terrace",
}

// TypeBucket collapses a free-form property type into one of the coarse
// buckets used for peer grouping: apartment, house or other.
func TypeBucket(propertyType string) string {
	t := strings.ToLower(propertyType)
	for _, kw := range apartmentKeywords {
		if strings.Contains(t, kw) {
			return "apartment"
		}
	}
	for _, kw := range houseKeywords {
		if strings.Contains(t, kw) {
			return "house"
		}
	}
	return "other"
}

// PeerGroupKey derives the grouping key for a property: bedroom count
// (1 when absent) plus the coarse type bucket.
func PeerGroupKey(p *models.ComparableProperty) string {
	return fmt.Sprintf("%d-bed-%s", p.Bedrooms(), TypeBucket(p.PropertyType))
}

// PeerGroupMedians groups the batch by peer-group key and returns the
// median effective price of each group. Properties without a usable price
// are excluded. The result is independent of input order.
func PeerGroupMedians(props []models.ComparableProperty) map[string]float64 {
	groups := make(map[string][]float64)
	for i := range props {
		price := props[i].EffectivePrice()
		if price <= 0 {
			continue
		}
		key := PeerGroupKey(&props[i])
		groups[key] = append(groups[key], price)
	}

	medians := make(map[string]float64, len(groups))
	for key, prices := range groups {
		medians[key] = median(prices)
	}
	return medians
}

// median computes the standard even/odd median of the values. The slice is
// sorted in place.
func median(values []float64) float64 {
	sort.Float64s(values)
	n := len(values)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return values[n/2]
	}
	return (values[n/2-1] + values[n/2]) / 2
}
