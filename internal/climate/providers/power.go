package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/skygauge/weather-odds/internal/climate"
	"github.com/skygauge/weather-odds/internal/observability"
)

var (
	errUnexpectedStatus = errors.New("unexpected status code")
	errNoSeries         = errors.New("no parameter series in response")
	errCircuitOpen      = errors.New("circuit breaker open")
)

// PowerProvider implements climate.RangeProvider against the NASA POWER
// daily point API.
type PowerProvider struct {
	name    string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
	metrics *observability.Metrics
}

// NewPowerProvider creates a POWER client sharing the given HTTP client.
func NewPowerProvider(client *http.Client, metrics *observability.Metrics) *PowerProvider {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "nasa-power",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &PowerProvider{
		name:    "nasa-power",
		baseURL: "https://power.larc.nasa.gov/api/temporal/daily/point",
		client:  client,
		circuit: cb,
		metrics: metrics,
	}
}

func (p *PowerProvider) Name() string {
	return p.name
}

// powerResponse is the slice of the POWER payload we care about: each
// parameter code maps to a date-string → value series. A null value in the
// JSON decodes to a nil pointer.
type powerResponse struct {
	Properties struct {
		Parameter map[string]map[string]*float64 `json:"parameter"`
	} `json:"properties"`
}

// FetchRange requests days consecutive daily records starting at start and
// reshapes the parameter-keyed payload into date-ordered records.
//
// Parameter codes are deduplicated and sorted before being joined into the
// request so identical analyses produce identical URLs. One attempt only;
// every failure mode comes back as an error the caller maps to "no data"
// for the year.
func (p *PowerProvider) FetchRange(ctx context.Context, lat, lon float64, start time.Time, days int, params []string) ([]climate.DailyRecord, error) {
	codes := sortedUnique(params)
	end := start.AddDate(0, 0, days-1)

	values := url.Values{}
	values.Set("parameters", strings.Join(codes, ","))
	values.Set("community", "RE")
	values.Set("latitude", fmt.Sprintf("%f", lat))
	values.Set("longitude", fmt.Sprintf("%f", lon))
	values.Set("start", start.Format("20060102"))
	values.Set("end", end.Format("20060102"))
	values.Set("format", "JSON")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	result, err := p.circuit.Execute(func() (interface{}, error) {
		resp, execErr := p.client.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("%w: %d", errUnexpectedStatus, resp.StatusCode)
		}

		var payload powerResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr != nil {
			return nil, decodeErr
		}
		return &payload, nil
	})
	p.metrics.ProviderDuration.WithLabelValues(p.name).Observe(time.Since(started).Seconds())

	if err != nil {
		p.metrics.ProviderRequests.WithLabelValues(p.name, "error").Inc()
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}
		return nil, err
	}
	p.metrics.ProviderRequests.WithLabelValues(p.name, "success").Inc()

	payload, ok := result.(*powerResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}

	return reshape(payload, codes)
}

// reshape turns the parameter-keyed-by-date payload into date-ordered
// records. The first requested code with a non-empty series defines which
// dates exist in this response; with no such code the whole range is
// treated as missing.
func reshape(payload *powerResponse, codes []string) ([]climate.DailyRecord, error) {
	series := payload.Properties.Parameter

	var dates []string
	for _, code := range codes {
		if len(series[code]) > 0 {
			for d := range series[code] {
				dates = append(dates, d)
			}
			break
		}
	}
	if len(dates) == 0 {
		return nil, errNoSeries
	}
	sort.Strings(dates)

	records := make([]climate.DailyRecord, 0, len(dates))
	for _, d := range dates {
		var rec climate.DailyRecord
		for _, code := range codes {
			if values, ok := series[code]; ok {
				rec.Set(code, values[d])
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func sortedUnique(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
