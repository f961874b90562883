package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTrackedLocations(t *testing.T) {
	locs, err := parseTrackedLocations("paris@48.85,2.35; austin@Austin,US")
	require.NoError(t, err)
	require.Len(t, locs, 2)

	assert.Equal(t, "paris", locs[0].Name)
	assert.True(t, locs[0].HasCoords)
	assert.Equal(t, 48.85, locs[0].Lat)
	assert.Equal(t, 2.35, locs[0].Lon)

	assert.Equal(t, "austin", locs[1].Name)
	assert.False(t, locs[1].HasCoords)
	assert.Equal(t, "Austin", locs[1].City)
	assert.Equal(t, "US", locs[1].Country)
}

func TestParseTrackedLocations_Empty(t *testing.T) {
	locs, err := parseTrackedLocations("  ")
	require.NoError(t, err)
	assert.Empty(t, locs)
}

func TestParseTrackedLocations_Invalid(t *testing.T) {
	for _, s := range []string{"paris", "@48.85,2.35", "paris@48.85"} {
		_, err := parseTrackedLocations(s)
		assert.Error(t, err, "entry %q should be rejected", s)
	}
}

func TestParseTrackedDate(t *testing.T) {
	month, day, err := parseTrackedDate("07-15")
	require.NoError(t, err)
	assert.Equal(t, 7, month)
	assert.Equal(t, 15, day)

	for _, s := range []string{"7", "13-01", "07-32", "ab-cd", "07-15-2024"} {
		_, _, err := parseTrackedDate(s)
		assert.Error(t, err, "date %q should be rejected", s)
	}
}
