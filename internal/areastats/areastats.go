// Package areastats resolves an area code to its market summary. The data
// is a keyed constant table refreshed out of band; unknown areas fall back
// to the city-wide default.
package areastats

import (
	"strings"

	"homescope/server/internal/models"
)

// DefaultStats is used for unknown or missing area codes. The values are
// city-wide averages.
var DefaultStats = models.AreaStats{
	MedianPrice:     425000,
	AvgPricePerSqm:  5200,
	PctOverAsking:   18,
	AvgDaysOnMarket: 45,
}

var areaTable = map[string]models.AreaStats{
	"d01": {MedianPrice: 420000, AvgPricePerSqm: 6100, PctOverAsking: 24, AvgDaysOnMarket: 34},
	"d02": {MedianPrice: 495000, AvgPricePerSqm: 7200, PctOverAsking: 31, AvgDaysOnMarket: 28},
	"d03": {MedianPrice: 445000, AvgPricePerSqm: 5600, PctOverAsking: 22, AvgDaysOnMarket: 38},
	"d04": {MedianPrice: 680000, AvgPricePerSqm: 7900, PctOverAsking: 33, AvgDaysOnMarket: 31},
	"d05": {MedianPrice: 390000, AvgPricePerSqm: 4700, PctOverAsking: 17, AvgDaysOnMarket: 42},
	"d06": {MedianPrice: 620000, AvgPricePerSqm: 7100, PctOverAsking: 29, AvgDaysOnMarket: 33},
	"d07": {MedianPrice: 415000, AvgPricePerSqm: 5400, PctOverAsking: 21, AvgDaysOnMarket: 37},
	"d08": {MedianPrice: 450000, AvgPricePerSqm: 6000, PctOverAsking: 26, AvgDaysOnMarket: 35},
	"d09": {MedianPrice: 410000, AvgPricePerSqm: 5000, PctOverAsking: 19, AvgDaysOnMarket: 40},
	"d10": {MedianPrice: 320000, AvgPricePerSqm: 3900, PctOverAsking: 11, AvgDaysOnMarket: 55},
	"d14": {MedianPrice: 560000, AvgPricePerSqm: 6300, PctOverAsking: 25, AvgDaysOnMarket: 36},
	"d15": {MedianPrice: 380000, AvgPricePerSqm: 4300, PctOverAsking: 16, AvgDaysOnMarket: 44},
	"d17": {MedianPrice: 310000, AvgPricePerSqm: 3700, PctOverAsking: 9, AvgDaysOnMarket: 58},
	"d22": {MedianPrice: 330000, AvgPricePerSqm: 3900, PctOverAsking: 12, AvgDaysOnMarket: 52},
	"d24": {MedianPrice: 340000, AvgPricePerSqm: 4000, PctOverAsking: 13, AvgDaysOnMarket: 50},
}

// Lookup returns the market summary for an area code, matching on the
// routing-key prefix.
func Lookup(areaCode string) models.AreaStats {
	code := strings.ToLower(strings.ReplaceAll(areaCode, " ", ""))
	if len(code) >= 3 {
		if stats, ok := areaTable[code[:3]]; ok {
			return stats
		}
	}
	return DefaultStats
}
