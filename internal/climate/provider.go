package climate

import (
	"context"
	"time"
)

// RangeProvider abstracts a remote daily-climate source (e.g. NASA POWER).
//
// FetchRange returns one DailyRecord per calendar day in the inclusive range
// [start, start+days-1], in date order. Implementations collapse all failure
// modes (transport errors, bad status, malformed payload, missing series)
// into a single error; callers treat any error as "no data" for the range.
type RangeProvider interface {
	Name() string
	FetchRange(ctx context.Context, lat, lon float64, start time.Time, days int, params []string) ([]DailyRecord, error)
}
