package climate

import (
	"context"
	"log"
	"time"

	"github.com/skygauge/weather-odds/internal/observability"
)

// AnalysisRequest carries the validated inputs for one historical analysis.
// The HTTP boundary is responsible for range-checking; the service assumes
// well-typed values.
type AnalysisRequest struct {
	Lat   float64
	Lon   float64
	Month int
	Day   int

	StartYear int
	EndYear   int

	Conditions []string

	HeatwaveThresholdC   float64
	HeatwaveDurationDays int
	MuggyTempC           float64
	MuggyHumidityPct     float64
}

// Service runs historical probability analyses against a RangeProvider.
// It holds no per-request state; every Analyze call is independent.
type Service struct {
	provider RangeProvider
	metrics  *observability.Metrics
}

// NewService creates a new Service.
func NewService(provider RangeProvider, metrics *observability.Metrics) *Service {
	return &Service{
		provider: provider,
		metrics:  metrics,
	}
}

// Analyze estimates how often the requested conditions, a heatwave, and a
// muggy day occurred on the target month/day across the year range.
//
// Years are fetched sequentially in ascending order, one provider call per
// year covering heatwave-duration consecutive days starting at the target
// date. A year only contributes to any counter when its window comes back
// with exactly the requested number of days; fetch failures and short
// windows exclude the year from the denominator and every count.
func (s *Service) Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisReport, error) {
	specs, params := ParseConditions(req.Conditions)

	var counters eventCounters

	for year := req.StartYear; year <= req.EndYear; year++ {
		start := time.Date(year, time.Month(req.Month), req.Day, 0, 0, 0, 0, time.UTC)

		window, err := s.provider.FetchRange(ctx, req.Lat, req.Lon, start, req.HeatwaveDurationDays, params)
		if err != nil {
			log.Printf("climate: provider %s fetch failed for %d-%02d-%02d: %v; skipping year", s.provider.Name(), year, req.Month, req.Day, err)
			s.metrics.YearsSkipped.Inc()
			continue
		}
		if len(window) != req.HeatwaveDurationDays {
			log.Printf("climate: incomplete window for %d (%d of %d days); skipping year", year, len(window), req.HeatwaveDurationDays)
			s.metrics.YearsSkipped.Inc()
			continue
		}

		counters.yearsWithData++
		firstDay := window[0]

		// Muggy day: first day only, both values present and strictly above
		// their thresholds.
		if temp, humidity := firstDay.TempMax, firstDay.Humidity; temp != nil && humidity != nil {
			if *temp > req.MuggyTempC && *humidity > req.MuggyHumidityPct {
				counters.muggyDays++
			}
		}

		if isHeatwave(window, req.HeatwaveThresholdC) {
			counters.heatwaves++
		}

		// User conditions read the first day only; a missing value simply
		// does not match.
		for _, spec := range specs {
			if v := firstDay.Value(spec.ParamCode); v != nil && spec.Matches(*v) {
				spec.matchCount++
			}
		}
	}

	s.metrics.AnalysesTotal.Inc()

	return buildReport(req, specs, counters), nil
}

// isHeatwave reports whether every day of the window has a present
// temperature at or above the threshold. One missing or cooler day
// disqualifies the whole window.
func isHeatwave(window []DailyRecord, threshold float64) bool {
	for _, day := range window {
		if day.TempMax == nil || *day.TempMax < threshold {
			return false
		}
	}
	return true
}
