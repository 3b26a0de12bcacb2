package utils

import (
	"encoding/json"
	"math"
	"strings"
)

// Int converts a decoded document value to int using explicit type switching.
// It accepts JSON numbers, native integers (YAML) and integral floats; anything
// else, including numeric strings, is rejected.
func Int(val any) (int, bool) {
	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case int32:
		return int(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int(v), true
	case uint32:
		return int(v), true
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	case float64:
		// -math.MinInt is the first float64 past the int range.
		if v != math.Trunc(v) || v < math.MinInt || v >= -math.MinInt {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}

// String converts a decoded document value to a trimmed string.
func String(val any) (string, bool) {
	switch v := val.(type) {
	case string:
		return strings.TrimSpace(v), true
	case []byte:
		return strings.TrimSpace(string(v)), true
	default:
		return "", false
	}
}

// Bool converts a decoded document value to bool.
// Only real booleans are accepted; "1" or "true" strings are not coerced.
func Bool(val any) (bool, bool) {
	v, ok := val.(bool)
	return v, ok
}

// Strings converts a decoded list of strings.
// It fails if any element is not a string.
func Strings(val any) ([]string, bool) {
	items, ok := val.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := String(item)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}
