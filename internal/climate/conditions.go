package climate

import (
	"log"
	"sort"
	"strconv"
	"strings"
)

// Operator is a threshold comparison in a condition string.
type Operator string

const (
	OpGreater Operator = "gt"
	OpLess    Operator = "lt"
)

// ConditionSpec is one parsed user condition, e.g. "precipitation_gt_10".
// matchCount accumulates across years during an analysis.
type ConditionSpec struct {
	Raw       string
	Variable  string
	Op        Operator
	Threshold float64
	ParamCode string

	matchCount int
}

// Matches reports whether a first-day value satisfies the condition.
// Comparisons are strict; equality never counts.
func (c *ConditionSpec) Matches(v float64) bool {
	switch c.Op {
	case OpGreater:
		return v > c.Threshold
	case OpLess:
		return v < c.Threshold
	default:
		return false
	}
}

// ParseConditions turns raw condition strings into ConditionSpecs and
// computes the set of POWER parameter codes needed to evaluate them.
//
// Parsing is best-effort: a string with the wrong number of parts, an
// unknown variable, an unknown operator, or a non-numeric threshold is
// dropped without surfacing an error. The returned parameter set always
// includes the temperature and humidity codes because the heatwave and
// muggy-day events need them regardless of what the user asked for.
func ParseConditions(raw []string) ([]*ConditionSpec, []string) {
	specs := make([]*ConditionSpec, 0, len(raw))
	needed := map[string]struct{}{
		ParamTempMax:  {},
		ParamHumidity: {},
	}

	for _, s := range raw {
		spec, ok := parseCondition(s)
		if !ok {
			log.Printf("climate: ignoring malformed condition %q", s)
			continue
		}
		needed[spec.ParamCode] = struct{}{}
		specs = append(specs, spec)
	}

	params := make([]string, 0, len(needed))
	for code := range needed {
		params = append(params, code)
	}
	sort.Strings(params)

	return specs, params
}

func parseCondition(s string) (*ConditionSpec, bool) {
	parts := strings.Split(s, "_")
	if len(parts) != 3 {
		return nil, false
	}

	code, ok := VariableCatalog[parts[0]]
	if !ok {
		return nil, false
	}

	op := Operator(parts[1])
	if op != OpGreater && op != OpLess {
		return nil, false
	}

	threshold, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return nil, false
	}

	return &ConditionSpec{
		Raw:       s,
		Variable:  parts[0],
		Op:        op,
		Threshold: threshold,
		ParamCode: code,
	}, true
}
