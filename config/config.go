package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// Server configuration
	Server struct {
		// Port the HTTP API listens on
		Port int `env:"PORT" envDefault:"5250"`

		// City whose center is used as the distance reference point
		City string `env:"REFERENCE_CITY" envDefault:"dublin"`
	}

	// Adapters configuration for the external data services
	Adapters struct {
		// Base URL of the amenities service
		AmenitiesURL string `env:"AMENITIES_URL" envDefault:"https://amenities.homescope.app"`

		// Base URL of the planning-applications service
		PlanningURL string `env:"PLANNING_URL" envDefault:"https://planning.homescope.app"`

		// Base URL of the static map-image generator
		MapImageURL string `env:"MAP_IMAGE_URL" envDefault:"https://maps.homescope.app"`

		// Timeout for adapter calls (in seconds)
		TimeoutSeconds int `env:"ADAPTER_TIMEOUT" envDefault:"5"`
	}

	// Walkability estimator configuration
	Walkability struct {
		// Whether to apply the per-property differentiation jitter
		Jitter bool `env:"WALK_JITTER" envDefault:"true"`
	}

	// History configuration for the comparison-history store
	History struct {
		// Whether comparisons are recorded at all
		Enabled bool `env:"HISTORY_ENABLED" envDefault:"true"`

		// Path to the sqlite database file
		DBPath string `env:"HISTORY_DB_PATH" envDefault:"database/history.db"`

		// Buffer size of the recording queue
		QueueSize int `env:"HISTORY_QUEUE_SIZE" envDefault:"64"`

		// Maximum number of retries for failed writes
		MaxRetries int `env:"HISTORY_MAX_RETRIES" envDefault:"3"`

		// Delay between retries in seconds
		RetryDelay int `env:"HISTORY_RETRY_DELAY" envDefault:"2"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
