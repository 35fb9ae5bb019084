package amenities

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"homescope/server/internal/metrics"
	"homescope/server/internal/models"
)

// Client looks up live walkability data for a coordinate pair. Lookups are
// best effort: any failure yields nil so callers can fall back to the
// area-based estimator.
type Client struct {
	logger    *logrus.Logger
	baseURL   string
	client    *http.Client
	cache     map[string]*models.WalkabilityProfile
	cacheLock sync.RWMutex
}

func NewClient(logger *logrus.Logger, baseURL string, timeout time.Duration) *Client {
	return &Client{
		logger:  logger,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		cache:   make(map[string]*models.WalkabilityProfile),
	}
}

type amenitiesResponse struct {
	Score     float64                     `json:"score"`
	Rating    string                      `json:"rating"`
	Breakdown models.WalkabilityBreakdown `json:"breakdown"`
	Transit   *models.TransitStop         `json:"nearest_transit"`
}

// Lookup fetches the walkability profile around the coordinates. Returns
// nil on any failure or non-success response; the error is logged, never
// propagated.
func (c *Client) Lookup(lat, lon float64) *models.WalkabilityProfile {
	cacheKey := fmt.Sprintf("%.4f,%.4f", lat, lon)

	c.cacheLock.RLock()
	if profile, ok := c.cache[cacheKey]; ok {
		c.cacheLock.RUnlock()
		return profile
	}
	c.cacheLock.RUnlock()

	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%.6f", lat))
	params.Set("lon", fmt.Sprintf("%.6f", lon))

	req, err := http.NewRequest("GET", c.baseURL+"/v1/walkability?"+params.Encode(), nil)
	if err != nil {
		c.logger.WithError(err).Error("Failed to create amenities request")
		return nil
	}
	req.Header.Set("User-Agent", "HomeScope Comparison Engine/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.WithError(err).Warn("Amenities lookup failed, falling back to estimator")
		metrics.AdapterFailures.WithLabelValues("amenities").Inc()
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.WithField("status", resp.StatusCode).Warn("Amenities service returned non-success status")
		metrics.AdapterFailures.WithLabelValues("amenities").Inc()
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.WithError(err).Warn("Failed to read amenities response")
		metrics.AdapterFailures.WithLabelValues("amenities").Inc()
		return nil
	}

	var result amenitiesResponse
	if err := json.Unmarshal(body, &result); err != nil {
		c.logger.WithError(err).Warn("Failed to parse amenities response")
		metrics.AdapterFailures.WithLabelValues("amenities").Inc()
		return nil
	}

	if result.Score <= 0 {
		return nil
	}

	profile := &models.WalkabilityProfile{
		Score:          result.Score,
		Rating:         result.Rating,
		Breakdown:      result.Breakdown,
		NearestTransit: result.Transit,
	}

	c.cacheLock.Lock()
	c.cache[cacheKey] = profile
	c.cacheLock.Unlock()

	return profile
}
