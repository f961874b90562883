package geocode

import (
	"fmt"

	"github.com/kelvins/geocoder"
)

// Resolve turns a city/country pair into coordinates via the Google
// Geocoding API. Used once at startup for tracked locations configured by
// name instead of coordinates.
func Resolve(apiKey, city, country string) (lat, lon float64, err error) {
	if apiKey == "" {
		return 0, 0, fmt.Errorf("geocoding %s,%s requires GEOCODER_API_KEY", city, country)
	}

	geocoder.ApiKey = apiKey

	loc, err := geocoder.Geocoding(geocoder.Address{
		City:    city,
		Country: country,
	})
	if err != nil {
		return 0, 0, fmt.Errorf("geocode %s,%s: %w", city, country, err)
	}

	return loc.Latitude, loc.Longitude, nil
}
