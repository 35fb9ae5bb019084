package config

// City represents a reference-city configuration
type City struct {
	Name      string    `json:"name"`
	Center    []float64 `json:"center"` // latitude, longitude
	ZoomLevel int       `json:"zoom_level"`
}

// SupportedCities is a list of cities supported by the application
var SupportedCities = []City{
	{
		Name:      "dublin",
		Center:    []float64{53.3498, -6.2603},
		ZoomLevel: 13,
	},
	// Add more cities here as needed
}

// GetCityNames returns a list of supported city names
func GetCityNames() []string {
	names := make([]string, len(SupportedCities))
	for i, city := range SupportedCities {
		names[i] = city.Name
	}
	return names
}

// GetCityByName returns a city configuration by name
func GetCityByName(name string) *City {
	for _, city := range SupportedCities {
		if city.Name == name {
			return &city
		}
	}
	return nil
}

// DefaultCity returns the city used when the configured name is unknown.
func DefaultCity() *City {
	return &SupportedCities[0]
}

// CenterLatLon returns the city center as a latitude/longitude pair.
func (c *City) CenterLatLon() (float64, float64) {
	if len(c.Center) != 2 {
		return 0, 0
	}
	return c.Center[0], c.Center[1]
}
