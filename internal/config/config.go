package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AnalysisDefaults are the thresholds applied when a caller omits the
// optional analysis parameters.
type AnalysisDefaults struct {
	StartYear int
	EndYear   int

	HeatwaveThresholdC   float64
	HeatwaveDurationDays int
	MuggyTempC           float64
	MuggyHumidityPct     float64
}

// TrackedLocation is a place the scheduler re-analyzes periodically.
// Either coordinates or a city/country pair (resolved through the geocoder
// at startup) must be supplied.
type TrackedLocation struct {
	Name string

	Lat       float64
	Lon       float64
	HasCoords bool

	City    string
	Country string
}

type AppConfig struct {
	Port        string
	HTTPTimeout time.Duration

	Defaults AnalysisDefaults

	// Tracked-location surface.
	TrackedLocations []TrackedLocation
	TrackedMonth     int
	TrackedDay       int
	RefreshInterval  time.Duration

	// Google geocoding key; only needed for tracked locations given as
	// city/country instead of coordinates.
	GeocoderAPIKey string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "30s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.Defaults = AnalysisDefaults{
		StartYear:            getenvInt("ANALYSIS_START_YEAR", 2015),
		EndYear:              getenvInt("ANALYSIS_END_YEAR", 2024),
		HeatwaveThresholdC:   getenvFloat("HEATWAVE_THRESHOLD_C", 40.0),
		HeatwaveDurationDays: getenvInt("HEATWAVE_DURATION_DAYS", 3),
		MuggyTempC:           getenvFloat("MUGGY_TEMP_C", 32.0),
		MuggyHumidityPct:     getenvFloat("MUGGY_HUMIDITY_PCT", 70.0),
	}
	if cfg.Defaults.StartYear > cfg.Defaults.EndYear {
		return nil, fmt.Errorf("ANALYSIS_START_YEAR must not be after ANALYSIS_END_YEAR")
	}
	if cfg.Defaults.HeatwaveDurationDays < 1 {
		return nil, fmt.Errorf("HEATWAVE_DURATION_DAYS must be at least 1")
	}

	intervalStr := getenvDefault("REFRESH_INTERVAL", "24h")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = interval

	month, day, err := parseTrackedDate(getenvDefault("TRACKED_DATE", "07-15"))
	if err != nil {
		return nil, err
	}
	cfg.TrackedMonth = month
	cfg.TrackedDay = day

	locs, err := parseTrackedLocations(os.Getenv("TRACKED_LOCATIONS"))
	if err != nil {
		return nil, err
	}
	cfg.TrackedLocations = locs

	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	return cfg, nil
}

// parseTrackedDate parses an MM-DD date-of-year.
func parseTrackedDate(s string) (month, day int, err error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid TRACKED_DATE %q: want MM-DD", s)
	}
	month, err = strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("invalid TRACKED_DATE month %q", parts[0])
	}
	day, err = strconv.Atoi(parts[1])
	if err != nil || day < 1 || day > 31 {
		return 0, 0, fmt.Errorf("invalid TRACKED_DATE day %q", parts[1])
	}
	return month, day, nil
}

// parseTrackedLocations parses a semicolon-separated list of entries of the
// form "name@lat,lon" or "name@City,CC".
func parseTrackedLocations(s string) ([]TrackedLocation, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var locs []TrackedLocation
	for _, entry := range strings.Split(s, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		name, rest, ok := strings.Cut(entry, "@")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid TRACKED_LOCATIONS entry %q: want name@lat,lon or name@City,CC", entry)
		}
		first, second, ok := strings.Cut(rest, ",")
		if !ok {
			return nil, fmt.Errorf("invalid TRACKED_LOCATIONS entry %q: want two comma-separated values", entry)
		}

		loc := TrackedLocation{Name: strings.TrimSpace(name)}

		lat, latErr := strconv.ParseFloat(strings.TrimSpace(first), 64)
		lon, lonErr := strconv.ParseFloat(strings.TrimSpace(second), 64)
		if latErr == nil && lonErr == nil {
			loc.Lat = lat
			loc.Lon = lon
			loc.HasCoords = true
		} else {
			loc.City = strings.TrimSpace(first)
			loc.Country = strings.TrimSpace(second)
		}

		locs = append(locs, loc)
	}

	return locs, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
