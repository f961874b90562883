package httpapi

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/skygauge/weather-odds/internal/climate"
	"github.com/skygauge/weather-odds/internal/config"
	"github.com/skygauge/weather-odds/internal/store"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *climate.Service, reports *store.MemoryStore, defaults config.AnalysisDefaults) {
	v1 := app.Group("/api/v1")

	v1.Get("/analyze", func(c *fiber.Ctx) error {
		var req analyzeQuery
		if err := req.bind(c, defaults); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		report, err := service.Analyze(c.Context(), req.toRequest())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to run analysis")
		}

		return c.JSON(report)
	})

	v1.Get("/locations/:name/latest", func(c *fiber.Ctx) error {
		name := c.Params("name")

		cached, err := reports.LatestReport(name)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no report for requested location")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch report")
		}

		return c.JSON(cached)
	})
}

// analyzeQuery holds the query parameters for the analyze endpoint.
// Lat/lon/month/day are required; the rest default from configuration.
type analyzeQuery struct {
	Lat float64 `validate:"gte=-90,lte=90"`
	Lon float64 `validate:"gte=-180,lte=180"`

	Month int `validate:"min=1,max=12"`
	Day   int `validate:"min=1,max=31"`

	// POWER daily data starts in 1981.
	StartYear int `validate:"min=1981"`
	EndYear   int `validate:"min=1981,gtefield=StartYear"`

	Conditions []string

	HeatwaveThresholdC   float64
	HeatwaveDurationDays int     `validate:"min=1,max=14"`
	MuggyTempC           float64 `validate:"gte=-90,lte=60"`
	MuggyHumidityPct     float64 `validate:"gte=0,lte=100"`
}

func (q *analyzeQuery) toRequest() climate.AnalysisRequest {
	return climate.AnalysisRequest{
		Lat:                  q.Lat,
		Lon:                  q.Lon,
		Month:                q.Month,
		Day:                  q.Day,
		StartYear:            q.StartYear,
		EndYear:              q.EndYear,
		Conditions:           q.Conditions,
		HeatwaveThresholdC:   q.HeatwaveThresholdC,
		HeatwaveDurationDays: q.HeatwaveDurationDays,
		MuggyTempC:           q.MuggyTempC,
		MuggyHumidityPct:     q.MuggyHumidityPct,
	}
}

func (q *analyzeQuery) bind(c *fiber.Ctx, defaults config.AnalysisDefaults) error {
	var err error

	if q.Lat, err = requiredFloat(c, "lat"); err != nil {
		return err
	}
	if q.Lon, err = requiredFloat(c, "lon"); err != nil {
		return err
	}
	if q.Month, err = requiredInt(c, "month"); err != nil {
		return err
	}
	if q.Day, err = requiredInt(c, "day"); err != nil {
		return err
	}

	if q.StartYear, err = optionalInt(c, "start_year", defaults.StartYear); err != nil {
		return err
	}
	if q.EndYear, err = optionalInt(c, "end_year", defaults.EndYear); err != nil {
		return err
	}
	if q.HeatwaveThresholdC, err = optionalFloat(c, "heatwave_threshold", defaults.HeatwaveThresholdC); err != nil {
		return err
	}
	if q.HeatwaveDurationDays, err = optionalInt(c, "heatwave_days", defaults.HeatwaveDurationDays); err != nil {
		return err
	}
	if q.MuggyTempC, err = optionalFloat(c, "muggy_temp", defaults.MuggyTempC); err != nil {
		return err
	}
	if q.MuggyHumidityPct, err = optionalFloat(c, "muggy_humidity", defaults.MuggyHumidityPct); err != nil {
		return err
	}

	q.Conditions = splitConditions(c.Query("conditions"))
	return nil
}

// splitConditions splits a comma-separated condition list, dropping empty
// entries. Whether each condition itself is well-formed is the parser's
// concern, not the boundary's.
func splitConditions(s string) []string {
	var conditions []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			conditions = append(conditions, part)
		}
	}
	return conditions
}

func requiredFloat(c *fiber.Ctx, key string) (float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, fmt.Errorf("%s query parameter is required", key)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q is not a number", key, raw)
	}
	return v, nil
}

func requiredInt(c *fiber.Ctx, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, fmt.Errorf("%s query parameter is required", key)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q is not an integer", key, raw)
	}
	return v, nil
}

func optionalFloat(c *fiber.Ctx, key string, def float64) (float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q is not a number", key, raw)
	}
	return v, nil
}

func optionalInt(c *fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q is not an integer", key, raw)
	}
	return v, nil
}
