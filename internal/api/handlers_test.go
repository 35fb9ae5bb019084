package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homescope/server/internal/enrichment"
	"homescope/server/internal/mapimage"
	"homescope/server/internal/models"
)

type stubAmenities struct{}

func (stubAmenities) Lookup(lat, lon float64) *models.WalkabilityProfile { return nil }

type stubPlanning struct{}

func (stubPlanning) Lookup(lat, lon float64, address, areaCode string) models.PlanningSummary {
	return models.PlanningSummary{RadiusM: 1000, Applications: []models.PlanningApplication{}}
}

type stubMaps struct{}

func (stubMaps) ImageURL(lat, lon *float64) string {
	if lat == nil || lon == nil {
		return mapimage.PlaceholderImage
	}
	return "https://maps.example/static"
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	pipeline := enrichment.NewPipeline(logger, stubAmenities{}, stubPlanning{}, stubMaps{}, 53.3498, -6.2603, false)
	handler := NewHandler(logger, pipeline, nil)

	router := gin.New()
	SetupRoutes(router, handler)
	return router
}

func postCompare(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest("POST", "/api/compare", bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func propertyJSON(address string, price float64) string {
	return fmt.Sprintf(`{
		"address": %q,
		"kind": "listing",
		"asking_price": %f,
		"area_code": "D02",
		"beds": 2,
		"property_type": "Apartment",
		"latitude": 53.35,
		"longitude": -6.26,
		"comparison_id": "cmp-1"
	}`, address, price)
}

func TestCompareProperties(t *testing.T) {
	router := newTestRouter()

	body := fmt.Sprintf(`{"properties": [%s, %s]}`,
		propertyJSON("1 Dame Street", 400000),
		propertyJSON("2 Dame Street", 520000))

	w := postCompare(t, router, body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp CompareResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.ComparisonID)
	require.Len(t, resp.Properties, 2)
	assert.Equal(t, "1 Dame Street", resp.Properties[0].Address)
	assert.Equal(t, "2 Dame Street", resp.Properties[1].Address)
	require.NotNil(t, resp.Insights.BestOverall)
	assert.NotNil(t, resp.Insights.LowestPrice)
	assert.NotNil(t, resp.Insights.LowestMortgage)
}

func TestComparePropertiesEmptyBatch(t *testing.T) {
	router := newTestRouter()

	w := postCompare(t, router, `{"properties": []}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "At least one property is required")
}

func TestComparePropertiesOversizedBatch(t *testing.T) {
	router := newTestRouter()

	properties := make([]string, 6)
	for i := range properties {
		properties[i] = propertyJSON(fmt.Sprintf("%d Dame Street", i), 400000)
	}
	body := fmt.Sprintf(`{"properties": [%s, %s, %s, %s, %s, %s]}`,
		properties[0], properties[1], properties[2], properties[3], properties[4], properties[5])

	w := postCompare(t, router, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "maximum of 5")
}

func TestComparePropertiesMalformedBody(t *testing.T) {
	router := newTestRouter()

	w := postCompare(t, router, `{"properties": [`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request body")
}

func TestComparePropertiesInvalidKind(t *testing.T) {
	router := newTestRouter()

	w := postCompare(t, router, `{"properties": [{"address": "1 Dame Street", "kind": "auction", "asking_price": 100}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid property kind")
}

func TestComparePropertiesMissingPrice(t *testing.T) {
	router := newTestRouter()

	w := postCompare(t, router, `{"properties": [{"address": "1 Dame Street", "kind": "listing"}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "must carry")
}

func TestComparePropertiesKindPriceMismatch(t *testing.T) {
	router := newTestRouter()

	// A rental must carry a monthly rent, not an asking price
	w := postCompare(t, router, `{"properties": [{"address": "1 Dame Street", "kind": "rental", "asking_price": 400000}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "must carry monthly_rent")
}

func TestComparePropertiesMultiplePriceFields(t *testing.T) {
	router := newTestRouter()

	w := postCompare(t, router, `{"properties": [{"address": "1 Dame Street", "kind": "listing", "asking_price": 400000, "monthly_rent": 2500}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "exactly one price field")
}

func TestComparePropertiesRentalHasNoMortgage(t *testing.T) {
	router := newTestRouter()

	body := `{"properties": [{
		"address": "Rental unit",
		"kind": "rental",
		"monthly_rent": 2500,
		"area_code": "D02"
	}]}`

	w := postCompare(t, router, body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp CompareResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Properties, 1)
	assert.Nil(t, resp.Properties[0].Mortgage)
}

func TestComparePropertiesNoCoordinates(t *testing.T) {
	router := newTestRouter()

	body := `{"properties": [{
		"address": "Unknown location",
		"kind": "listing",
		"asking_price": 350000
	}]}`

	w := postCompare(t, router, body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp CompareResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Properties, 1)
	assert.Equal(t, 0.0, resp.Properties[0].DistanceFromCenterKm)
	assert.Equal(t, mapimage.PlaceholderImage, resp.Properties[0].MapImage)
}

func TestGetHistoryWithoutRecorder(t *testing.T) {
	router := newTestRouter()

	req, _ := http.NewRequest("GET", "/api/history", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter()

	req, _ := http.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.Contains(t, w.Body.String(), `"dublin"`)
}
