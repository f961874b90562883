package climate

import (
	"fmt"
	"math"
)

// Coordinates identifies the analyzed point in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// AnalysisMeta describes what was analyzed, independent of the outcome.
type AnalysisMeta struct {
	Location      Coordinates `json:"location"`
	Date          string      `json:"date"`   // MM-DD
	Period        string      `json:"period"` // YYYY-YYYY
	YearsWithData int         `json:"years_with_data"`
}

// EventProbability is one entry of the probability list: a user condition,
// the heatwave event, or the muggy-day event.
type EventProbability struct {
	Condition   string  `json:"condition"`
	EventCount  int     `json:"event_count"`
	Probability float64 `json:"probability"`
}

// AnalysisReport is the final result of one historical analysis.
type AnalysisReport struct {
	Analysis      AnalysisMeta       `json:"analysis"`
	Probabilities []EventProbability `json:"probabilities"`
}

// eventCounters accumulates per-year outcomes during the year loop.
type eventCounters struct {
	yearsWithData int
	heatwaves     int
	muggyDays     int
}

// buildReport turns the accumulated counters into the caller-facing report.
// With zero usable years the probability list stays empty (never null) and
// only the metadata is populated.
func buildReport(req AnalysisRequest, specs []*ConditionSpec, counters eventCounters) *AnalysisReport {
	report := &AnalysisReport{
		Analysis: AnalysisMeta{
			Location:      Coordinates{Lat: req.Lat, Lon: req.Lon},
			Date:          fmt.Sprintf("%02d-%02d", req.Month, req.Day),
			Period:        fmt.Sprintf("%d-%d", req.StartYear, req.EndYear),
			YearsWithData: counters.yearsWithData,
		},
		Probabilities: []EventProbability{},
	}

	if counters.yearsWithData == 0 {
		return report
	}

	for _, spec := range specs {
		report.Probabilities = append(report.Probabilities, EventProbability{
			Condition:   spec.Raw,
			EventCount:  spec.matchCount,
			Probability: probability(spec.matchCount, counters.yearsWithData),
		})
	}

	report.Probabilities = append(report.Probabilities, EventProbability{
		Condition:   fmt.Sprintf("heatwave (%d consecutive days > %g°C)", req.HeatwaveDurationDays, req.HeatwaveThresholdC),
		EventCount:  counters.heatwaves,
		Probability: probability(counters.heatwaves, counters.yearsWithData),
	})

	report.Probabilities = append(report.Probabilities, EventProbability{
		Condition:   fmt.Sprintf("muggy_day (temp > %g°C AND humidity > %g%%)", req.MuggyTempC, req.MuggyHumidityPct),
		EventCount:  counters.muggyDays,
		Probability: probability(counters.muggyDays, counters.yearsWithData),
	})

	return report
}

// probability is the event frequency as a percentage, rounded to 2 decimals.
func probability(count, years int) float64 {
	return math.Round(float64(count)/float64(years)*100*100) / 100
}
