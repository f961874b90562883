package climate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConditions_Valid(t *testing.T) {
	specs, params := ParseConditions([]string{"precipitation_gt_10", "temperature_lt_0.5"})
	require.Len(t, specs, 2)

	assert.Equal(t, "precipitation_gt_10", specs[0].Raw)
	assert.Equal(t, "precipitation", specs[0].Variable)
	assert.Equal(t, OpGreater, specs[0].Op)
	assert.Equal(t, 10.0, specs[0].Threshold)
	assert.Equal(t, ParamPrecip, specs[0].ParamCode)

	assert.Equal(t, OpLess, specs[1].Op)
	assert.Equal(t, 0.5, specs[1].Threshold)
	assert.Equal(t, ParamTempMax, specs[1].ParamCode)

	// Sorted, deduplicated, and always carrying the compound-event codes.
	assert.Equal(t, []string{ParamPrecip, ParamHumidity, ParamTempMax}, params)
}

func TestParseConditions_MalformedDropped(t *testing.T) {
	malformed := []string{
		"foo_gt",             // wrong arity
		"temperature_bad_5",  // unknown operator
		"bogus_gt_5",         // unknown variable
		"temperature_gt_abc", // non-numeric threshold
		"",
	}

	specs, params := ParseConditions(malformed)
	assert.Empty(t, specs)

	// Compound events still need these even with nothing parseable.
	assert.Equal(t, []string{ParamHumidity, ParamTempMax}, params)
}

func TestParseConditions_EmptyInput(t *testing.T) {
	specs, params := ParseConditions(nil)
	assert.Empty(t, specs)
	assert.Equal(t, []string{ParamHumidity, ParamTempMax}, params)
}

func TestConditionSpec_MatchesIsStrict(t *testing.T) {
	gt := &ConditionSpec{Op: OpGreater, Threshold: 10}
	assert.True(t, gt.Matches(10.01))
	assert.False(t, gt.Matches(10))
	assert.False(t, gt.Matches(9.99))

	lt := &ConditionSpec{Op: OpLess, Threshold: 10}
	assert.True(t, lt.Matches(9.99))
	assert.False(t, lt.Matches(10))
	assert.False(t, lt.Matches(10.01))
}
