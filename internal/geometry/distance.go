package geometry

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// KilometersBetween returns the great-circle distance between two
// coordinate pairs in kilometers.
func KilometersBetween(lat1, lon1, lat2, lon2 float64) float64 {
	return MetersBetween(lat1, lon1, lat2, lon2) / 1000
}

// MetersBetween returns the great-circle distance between two coordinate
// pairs in meters.
func MetersBetween(lat1, lon1, lat2, lon2 float64) float64 {
	// orb points are longitude-first
	return geo.DistanceHaversine(orb.Point{lon1, lat1}, orb.Point{lon2, lat2})
}
