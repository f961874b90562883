package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/skygauge/weather-odds/internal/climate"
	"github.com/skygauge/weather-odds/internal/config"
	"github.com/skygauge/weather-odds/internal/observability"
	"github.com/skygauge/weather-odds/internal/store"
)

// unreachableProvider fails every fetch; the analysis still succeeds with an
// empty probability list.
type unreachableProvider struct{}

func (unreachableProvider) Name() string { return "unreachable" }

func (unreachableProvider) FetchRange(context.Context, float64, float64, time.Time, int, []string) ([]climate.DailyRecord, error) {
	return nil, errors.New("unreachable")
}

func testApp() (*fiber.App, *store.MemoryStore) {
	app := fiber.New()

	svc := climate.NewService(unreachableProvider{}, observability.NewMetricsForTesting())
	reports := store.NewMemoryStore()

	defaults := config.AnalysisDefaults{
		StartYear:            2015,
		EndYear:              2024,
		HeatwaveThresholdC:   40.0,
		HeatwaveDurationDays: 3,
		MuggyTempC:           32.0,
		MuggyHumidityPct:     70.0,
	}

	RegisterRoutes(app, svc, reports, defaults)
	return app, reports
}

// TestAnalyzeValidation verifies that missing or out-of-range query
// parameters are rejected before the analysis runs.
func TestAnalyzeValidation(t *testing.T) {
	app, _ := testApp()

	cases := []string{
		"/api/v1/analyze", // nothing at all
		"/api/v1/analyze?lat=48.85&lon=2.35&month=7",                                      // missing day
		"/api/v1/analyze?lat=abc&lon=2.35&month=7&day=15",                                 // non-numeric lat
		"/api/v1/analyze?lat=48.85&lon=2.35&month=13&day=15",                              // month out of range
		"/api/v1/analyze?lat=48.85&lon=2.35&month=7&day=32",                               // day out of range
		"/api/v1/analyze?lat=91&lon=2.35&month=7&day=15",                                  // lat out of range
		"/api/v1/analyze?lat=48.85&lon=2.35&month=7&day=15&start_year=2024&end_year=2015", // inverted range
	}

	for _, target := range cases {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", target, err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected status %d, got %d", target, http.StatusBadRequest, resp.StatusCode)
		}
	}
}

// TestAnalyzeNoData verifies that a provider outage degrades to an empty
// probability list with intact metadata rather than an error.
func TestAnalyzeNoData(t *testing.T) {
	app, _ := testApp()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyze?lat=48.85&lon=2.35&month=7&day=15&conditions=precipitation_gt_10,bogus_gt_5", nil)
	resp, err := app.Test(req, 10_000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var report climate.AnalysisReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}

	if report.Analysis.YearsWithData != 0 {
		t.Fatalf("expected 0 years with data, got %d", report.Analysis.YearsWithData)
	}
	if len(report.Probabilities) != 0 {
		t.Fatalf("expected empty probabilities, got %d entries", len(report.Probabilities))
	}
	if report.Analysis.Date != "07-15" {
		t.Fatalf("expected date 07-15, got %s", report.Analysis.Date)
	}
	if report.Analysis.Period != "2015-2024" {
		t.Fatalf("expected period 2015-2024, got %s", report.Analysis.Period)
	}
}

// TestLatestReport verifies the tracked-location cache endpoint.
func TestLatestReport(t *testing.T) {
	app, reports := testApp()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/locations/paris/latest", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}

	reports.SaveReport("paris", climate.AnalysisReport{
		Analysis: climate.AnalysisMeta{
			Location: climate.Coordinates{Lat: 48.85, Lon: 2.35},
			Date:     "07-15",
			Period:   "2015-2024",
		},
		Probabilities: []climate.EventProbability{},
	})

	req = httptest.NewRequest(http.MethodGet, "/api/v1/locations/paris/latest", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var cached store.CachedReport
	if err := json.NewDecoder(resp.Body).Decode(&cached); err != nil {
		t.Fatalf("failed to decode cached report: %v", err)
	}
	if cached.Report.Analysis.Location.Lat != 48.85 {
		t.Fatalf("expected lat 48.85, got %f", cached.Report.Analysis.Location.Lat)
	}
}
