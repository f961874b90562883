package store

import (
	"errors"
	"sync"
	"time"

	"github.com/skygauge/weather-odds/internal/climate"
)

var (
	// ErrNotFound is returned when no report exists for a tracked location.
	ErrNotFound = errors.New("no report for location")
)

// CachedReport is an analysis report together with when it was computed.
type CachedReport struct {
	Report    climate.AnalysisReport `json:"report"`
	UpdatedAt time.Time              `json:"updated_at"` // always UTC
}

// MemoryStore is a concurrency-safe in-memory cache of the latest report per
// tracked location. Each save supersedes the previous report.
type MemoryStore struct {
	mu sync.RWMutex

	// key: tracked-location name
	reports map[string]CachedReport
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		reports: make(map[string]CachedReport),
	}
}

// SaveReport stores the latest report for a tracked location.
func (s *MemoryStore) SaveReport(name string, report climate.AnalysisReport) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reports[name] = CachedReport{
		Report:    report,
		UpdatedAt: time.Now().UTC(),
	}
}

// LatestReport returns the most recent report for a tracked location.
func (s *MemoryStore) LatestReport(name string) (CachedReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cached, ok := s.reports[name]
	if !ok {
		return CachedReport{}, ErrNotFound
	}
	return cached, nil
}
