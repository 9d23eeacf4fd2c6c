package player

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

// parseNumber never fails: anything that is not a number is NaN.
func parseNumber(s string) float64 {
	f, err := cast.ToFloat64E(strings.TrimSpace(s))
	if err != nil {
		return math.NaN()
	}

	return f
}

// parseBool treats "", "false", "no", "off" and "0" (any case) as false and
// every other string as true.
func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "", "false", "no", "off", "0":
		return false
	}

	return true
}

// parseBoolValue extends parseBool to the loosely typed embed parameters.
func parseBoolValue(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	case string:
		return parseBool(b)
	case *string:
		return b != nil && parseBool(*b)
	}

	if f, err := cast.ToFloat64E(v); err == nil {
		return f != 0 && !math.IsNaN(f)
	}

	return true
}
