package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/skygauge/weather-odds/internal/climate"
	"github.com/skygauge/weather-odds/internal/config"
	"github.com/skygauge/weather-odds/internal/observability"
	"github.com/skygauge/weather-odds/internal/store"
)

// Scheduler periodically re-runs the historical analysis for configured
// tracked locations and caches the latest report per location.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *climate.Service
	store     *store.MemoryStore
	metrics   *observability.Metrics

	locations []config.TrackedLocation
	month     int
	day       int
	defaults  config.AnalysisDefaults
	interval  time.Duration
}

// New creates a new Scheduler.
func New(cfg *config.AppConfig, service *climate.Service, reports *store.MemoryStore, metrics *observability.Metrics) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		store:     reports,
		metrics:   metrics,
		locations: cfg.TrackedLocations,
		month:     cfg.TrackedMonth,
		day:       cfg.TrackedDay,
		defaults:  cfg.Defaults,
		interval:  cfg.RefreshInterval,
	}
}

// Start schedules the periodic job, runs it once immediately, and starts the
// underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.locations) == 0 {
		log.Println("scheduler: no tracked locations configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 60
	}

	job, err := s.scheduler.Every(minutes).Minutes().Do(s.run)
	if err != nil {
		return err
	}
	job.SingletonMode()

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// run analyzes each tracked location in turn. Locations are processed
// sequentially; the analysis itself already issues one provider call per
// year, so fanning out per location would multiply pressure on the provider.
func (s *Scheduler) run() {
	log.Println("scheduler: refreshing tracked-location reports")

	for _, loc := range s.locations {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)

		report, err := s.service.Analyze(ctx, climate.AnalysisRequest{
			Lat:                  loc.Lat,
			Lon:                  loc.Lon,
			Month:                s.month,
			Day:                  s.day,
			StartYear:            s.defaults.StartYear,
			EndYear:              s.defaults.EndYear,
			HeatwaveThresholdC:   s.defaults.HeatwaveThresholdC,
			HeatwaveDurationDays: s.defaults.HeatwaveDurationDays,
			MuggyTempC:           s.defaults.MuggyTempC,
			MuggyHumidityPct:     s.defaults.MuggyHumidityPct,
		})
		cancel()

		if err != nil {
			log.Printf("scheduler: analysis failed for %s: %v", loc.Name, err)
			s.metrics.ScheduledRuns.WithLabelValues("error").Inc()
			continue
		}

		s.store.SaveReport(loc.Name, *report)
		s.metrics.ScheduledRuns.WithLabelValues("success").Inc()
	}

	log.Println("scheduler: completed tracked-location refresh")
}
