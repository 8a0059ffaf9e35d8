package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pulsemobile/pulse-insights/internal/config"
	"github.com/pulsemobile/pulse-insights/internal/storage"
	"github.com/pulsemobile/pulse-insights/internal/synth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(t *testing.T) (http.Handler, *storage.Store) {
	t.Helper()

	cfg := config.Default()
	cfg.Data.Dir = t.TempDir()
	cfg.Data.CustomerCount = 100
	cfg.Data.Seed = 42

	ref, err := cfg.Data.Reference()
	require.NoError(t, err)

	gen := synth.New(synth.Config{
		CustomerCount: cfg.Data.CustomerCount,
		UsageMonths:   cfg.Data.UsageMonths,
		ReferenceDate: ref,
	}, cfg.Data.Seed)

	store := storage.New(cfg.Data.Dir)
	store.SetDataset(gen.GenerateAll())

	handlers := NewHandlers(store, cfg.Data, cfg.Pricing)
	return SetupRoutes(handlers), store
}

func doGet(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthCheck(t *testing.T) {
	router, _ := setupTestRouter(t)

	rec := doGet(t, router, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var status HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "up", status.Checks["dataset"].Status)
}

func TestHealthCheckDegradedWithoutDataset(t *testing.T) {
	cfg := config.Default()
	store := storage.New(t.TempDir())
	handlers := NewHandlers(store, cfg.Data, cfg.Pricing)
	router := SetupRoutes(handlers)

	rec := doGet(t, router, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var status HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "degraded", status.Status)
}

func TestSimulateEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)

	rec := doGet(t, router, "/api/pricing/simulate?price=5&scenario=realistic")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SimulationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "realistic", resp.Metrics.Scenario)
	assert.InDelta(t, 0.3655, resp.Metrics.AdoptionRate, 0.001)
	// 100 customers × 50 multiplier = 5000 base
	assert.InDelta(t, 5000*resp.Metrics.AdoptionRate, float64(resp.Metrics.Subscribers), 0.51)
	assert.Len(t, resp.SegmentAdoption, 4)
	for segment, rate := range resp.SegmentAdoption {
		assert.LessOrEqual(t, rate, 0.8, segment)
	}
}

func TestSimulateValidation(t *testing.T) {
	router, _ := setupTestRouter(t)

	cases := []struct {
		name string
		path string
	}{
		{"missing price", "/api/pricing/simulate?scenario=realistic"},
		{"non-numeric price", "/api/pricing/simulate?price=cheap&scenario=realistic"},
		{"price below bound", "/api/pricing/simulate?price=0.5&scenario=realistic"},
		{"price above bound", "/api/pricing/simulate?price=25&scenario=realistic"},
		{"unknown scenario", "/api/pricing/simulate?price=5&scenario=miraculous"},
		{"missing scenario", "/api/pricing/simulate?price=5"},
	}
	for _, tc := range cases {
		rec := doGet(t, router, tc.path)
		assert.Equal(t, http.StatusBadRequest, rec.Code, tc.name)
	}
}

func TestSweepEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)

	rec := doGet(t, router, "/api/pricing/sweep?scenario=optimistic&step=0.5")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Scenario string `json:"scenario"`
		Points   []struct {
			Price   float64 `json:"price"`
			Revenue float64 `json:"revenue"`
		} `json:"points"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "optimistic", resp.Scenario)
	require.NotEmpty(t, resp.Points)
	assert.InDelta(t, 0.99, resp.Points[0].Price, 1e-9)

	rec = doGet(t, router, "/api/pricing/sweep?scenario=optimistic&step=-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScenariosEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)

	rec := doGet(t, router, "/api/pricing/scenarios")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Scenarios []struct {
			Name string `json:"name"`
		} `json:"scenarios"`
		MinPrice float64 `json:"min_price"`
		MaxPrice float64 `json:"max_price"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Scenarios, 4)
	assert.Equal(t, "optimistic", resp.Scenarios[0].Name)
	assert.Equal(t, 1.0, resp.MinPrice)
	assert.Equal(t, 20.0, resp.MaxPrice)
}

func TestInsightsSummaryEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)

	rec := doGet(t, router, "/api/insights/summary")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		TotalSavings  float64 `json:"total_savings"`
		Interventions int     `json:"total_interventions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Greater(t, resp.Interventions, 0)
	assert.Greater(t, resp.TotalSavings, 0.0)

	rec = doGet(t, router, "/api/insights/summary?start_date=not-a-date")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInsightsSegmentsEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)

	rec := doGet(t, router, "/api/insights/segments")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Segments []struct {
			Segment      string  `json:"customer_segment"`
			AdoptionRate float64 `json:"adoption_rate"`
		} `json:"segments"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Segments, 4)
}

func TestDatasetSummaryEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)

	rec := doGet(t, router, "/api/datasets/summary")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp DatasetSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 100, resp.Customers)
	assert.Equal(t, 1200, resp.UsageRows)
	assert.Equal(t, 80, resp.Tickets)
	assert.NotEmpty(t, resp.Manifest.RunID)
}

func TestRegenerateEndpoint(t *testing.T) {
	router, store := setupTestRouter(t)
	before := store.Manifest().RunID

	body := strings.NewReader(`{"seed": 7, "customer_count": 50}`)
	req := httptest.NewRequest(http.MethodPost, "/api/datasets/regenerate", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 50, store.CustomerCount())
	assert.NotEqual(t, before, store.Manifest().RunID)
	assert.EqualValues(t, 7, store.Manifest().Seed)
}

func TestEndpointsWithoutDataset(t *testing.T) {
	cfg := config.Default()
	store := storage.New(t.TempDir())
	handlers := NewHandlers(store, cfg.Data, cfg.Pricing)
	router := SetupRoutes(handlers)

	for _, path := range []string{
		"/api/pricing/simulate?price=5&scenario=realistic",
		"/api/pricing/sweep?scenario=realistic",
		"/api/insights/summary",
		"/api/datasets/summary",
	} {
		rec := doGet(t, router, path)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, path)
	}
}

func TestBrandEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)

	rec := doGet(t, router, "/api/brand")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Name   string `json:"name"`
		Colors struct {
			Primary string `json:"primary"`
		} `json:"colors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Pulse Mobile", resp.Name)
	assert.Equal(t, "#8a2be2", resp.Colors.Primary)
}

func TestParseFilter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet,
		"/api/insights/summary?start_date=2025-01-01&end_date=2025-01-31&types=Billing%20Support,Technical%20Support&segments=Power%20User", nil)

	f, err := parseFilter(req)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), f.Start)
	assert.Equal(t, 31, f.End.Day())
	assert.Equal(t, 23, f.End.Hour()) // end date is inclusive
	assert.Equal(t, []string{"Billing Support", "Technical Support"}, f.Types)
	assert.Equal(t, []string{"Power User"}, f.Segments)
}
