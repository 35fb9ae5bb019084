package planning

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"homescope/server/internal/metrics"
	"homescope/server/internal/models"
)

const (
	// NearbyRadiusM is the radius within which applications count as nearby.
	NearbyRadiusM = 1000.0

	// lowConfidenceRadiusM is the tighter cutoff for low-confidence matches.
	lowConfidenceRadiusM = NearbyRadiusM / 2
)

// Client queries the planning-applications register around a property.
// Failures degrade to an all-zero summary, never an error.
type Client struct {
	logger  *logrus.Logger
	baseURL string
	client  *http.Client
}

func NewClient(logger *logrus.Logger, baseURL string, timeout time.Duration) *Client {
	return &Client{
		logger:  logger,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type application struct {
	Description string  `json:"description"`
	Status      string  `json:"status"`
	DistanceM   float64 `json:"distance_m"`
	Type        string  `json:"type"`
	Reference   string  `json:"reference"`
}

type planningResponse struct {
	HighConfidence   []application `json:"high_confidence"`
	MediumConfidence []application `json:"medium_confidence"`
	LowConfidence    []application `json:"low_confidence"`
}

// Lookup fetches planning applications around the coordinates with the
// expanded-search flag set. The three confidence buckets are merged in
// descending confidence order; low-confidence matches are kept only within
// half the nearby radius.
func (c *Client) Lookup(lat, lon float64, address, areaCode string) models.PlanningSummary {
	empty := models.PlanningSummary{RadiusM: NearbyRadiusM, Applications: []models.PlanningApplication{}}

	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%.6f", lat))
	params.Set("lon", fmt.Sprintf("%.6f", lon))
	params.Set("address", address)
	params.Set("area_code", areaCode)
	params.Set("expanded", "true")

	req, err := http.NewRequest("GET", c.baseURL+"/v1/applications?"+params.Encode(), nil)
	if err != nil {
		c.logger.WithError(err).Error("Failed to create planning request")
		return empty
	}
	req.Header.Set("User-Agent", "HomeScope Comparison Engine/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.WithError(err).Warn("Planning lookup failed")
		metrics.AdapterFailures.WithLabelValues("planning").Inc()
		return empty
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.WithField("status", resp.StatusCode).Warn("Planning service returned non-success status")
		metrics.AdapterFailures.WithLabelValues("planning").Inc()
		return empty
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.WithError(err).Warn("Failed to read planning response")
		metrics.AdapterFailures.WithLabelValues("planning").Inc()
		return empty
	}

	var result planningResponse
	if err := json.Unmarshal(body, &result); err != nil {
		c.logger.WithError(err).Warn("Failed to parse planning response")
		metrics.AdapterFailures.WithLabelValues("planning").Inc()
		return empty
	}

	return summarise(result)
}

func summarise(result planningResponse) models.PlanningSummary {
	total := len(result.HighConfidence) + len(result.MediumConfidence) + len(result.LowConfidence)

	apps := []models.PlanningApplication{}
	appendBucket := func(bucket []application, confidence string, radius float64) {
		for _, a := range bucket {
			if a.DistanceM > radius {
				continue
			}
			apps = append(apps, models.PlanningApplication{
				Description: a.Description,
				Status:      a.Status,
				DistanceM:   a.DistanceM,
				Type:        a.Type,
				Confidence:  confidence,
				Reference:   a.Reference,
			})
		}
	}
	appendBucket(result.HighConfidence, "high", NearbyRadiusM)
	appendBucket(result.MediumConfidence, "medium", NearbyRadiusM)
	appendBucket(result.LowConfidence, "low", lowConfidenceRadiusM)

	summary := models.PlanningSummary{
		Total:        total,
		NearbyCount:  len(apps),
		RadiusM:      NearbyRadiusM,
		Applications: apps,
	}
	if len(apps) > 0 {
		// Kept for clients that still read a single application.
		summary.TopApplication = &apps[0]
	}
	return summary
}
