package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"homescope/server/config"
	"homescope/server/internal/analysis"
	"homescope/server/internal/enrichment"
	"homescope/server/internal/history"
	"homescope/server/internal/metrics"
	"homescope/server/internal/models"
)

// MaxBatchSize caps the number of properties in one comparison.
const MaxBatchSize = 5

type Handler struct {
	logger   *logrus.Logger
	pipeline *enrichment.Pipeline
	recorder *history.Recorder
	started  time.Time
}

type CompareRequest struct {
	Properties []models.ComparableProperty `json:"properties"`
}

type CompareResponse struct {
	ComparisonID string                    `json:"comparison_id"`
	Properties   []models.EnrichedProperty `json:"properties"`
	Insights     models.InsightSet         `json:"insights"`
}

// NewHandler wires the comparison pipeline behind the HTTP boundary.
// recorder may be nil when history is disabled.
func NewHandler(logger *logrus.Logger, pipeline *enrichment.Pipeline, recorder *history.Recorder) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return &Handler{
		logger:   logger,
		pipeline: pipeline,
		recorder: recorder,
		started:  time.Now(),
	}
}

// CompareProperties enriches a batch of 1-5 properties and ranks them.
// Validation failures return a descriptive 400 before any enrichment;
// anything unexpected afterwards becomes a generic 500.
func (h *Handler) CompareProperties(c *gin.Context) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.WithField("panic", r).Error("Comparison failed unexpectedly")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compare properties"})
		}
	}()

	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse comparison request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if len(req.Properties) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one property is required"})
		return
	}
	if len(req.Properties) > MaxBatchSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A maximum of 5 properties can be compared"})
		return
	}
	for i := range req.Properties {
		if err := req.Properties[i].Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	comparisonID := uuid.NewString()
	start := time.Now()

	enriched := h.pipeline.EnrichAll(req.Properties)
	insights := analysis.BuildInsights(enriched)

	metrics.ComparisonsTotal.Inc()
	h.logger.WithFields(logrus.Fields{
		"comparison_id": comparisonID,
		"properties":    len(enriched),
		"duration_ms":   time.Since(start).Milliseconds(),
	}).Info("Comparison served")

	h.record(comparisonID, enriched, &insights, time.Since(start))

	c.JSON(http.StatusOK, CompareResponse{
		ComparisonID: comparisonID,
		Properties:   enriched,
		Insights:     insights,
	})
}

func (h *Handler) record(id string, enriched []models.EnrichedProperty, insights *models.InsightSet, duration time.Duration) {
	if h.recorder == nil {
		return
	}

	addresses := make([]string, len(enriched))
	fallbacks := 0
	for i := range enriched {
		addresses[i] = enriched[i].Address
		if enriched[i].Fallback {
			fallbacks++
		}
	}

	h.recorder.Record(&models.ComparisonRecord{
		ID:            id,
		CreatedAt:     time.Now(),
		PropertyCount: len(enriched),
		InsightCount:  insights.Winners(),
		FallbackCount: fallbacks,
		DurationMs:    duration.Milliseconds(),
		Addresses:     strings.Join(addresses, "; "),
	})
}

// GetHistory returns recently served comparisons, newest first.
func (h *Handler) GetHistory(c *gin.Context) {
	if h.recorder == nil {
		c.JSON(http.StatusOK, []models.ComparisonRecord{})
		return
	}

	limitStr := c.DefaultQuery("limit", "20")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 20
	}

	records, err := h.recorder.Recent(limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get comparison history")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get comparison history"})
		return
	}

	c.JSON(http.StatusOK, records)
}

// HealthCheck reports liveness, uptime and the supported reference cities.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"uptime_seconds": int(time.Since(h.started).Seconds()),
		"cities":         config.GetCityNames(),
	})
}
