package mapimage

import "fmt"

// PlaceholderImage is served for properties without coordinates.
const PlaceholderImage = "/static/map-placeholder.png"

// Generator builds static map-image references for a property location.
type Generator struct {
	baseURL string
}

func NewGenerator(baseURL string) *Generator {
	return &Generator{baseURL: baseURL}
}

// ImageURL returns a static map URL for the coordinates, or the
// placeholder when either coordinate is absent.
func (g *Generator) ImageURL(lat, lon *float64) string {
	if lat == nil || lon == nil {
		return PlaceholderImage
	}
	return fmt.Sprintf("%s/static?lat=%.5f&lon=%.5f&zoom=15&size=600x400", g.baseURL, *lat, *lon)
}
