package wire

import (
	"encoding/json"
	"math"
	"strconv"
)

// Int coerces a decoded number into an int64.
// Floats are accepted only when integral.
func Int(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		return 0, false
	case string:
		if i, err := strconv.ParseInt(n, 10, 64); err == nil {
			return i, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// Float coerces a decoded number into a float64.
func Float(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f, true
		}
		return 0, false
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// String returns v when it is a string.
func String(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// Bool coerces a decoded bool. The strings "true" and "false" are accepted.
func Bool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch b {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}

// IntPtr returns a pointer to the coerced int, or nil when absent or not numeric.
func IntPtr(v any, ok bool) *int64 {
	if !ok {
		return nil
	}
	i, ok := Int(v)
	if !ok {
		return nil
	}
	return &i
}

// FloatPtr returns a pointer to the coerced float, or nil when absent or not numeric.
func FloatPtr(v any, ok bool) *float64 {
	if !ok {
		return nil
	}
	f, ok := Float(v)
	if !ok {
		return nil
	}
	return &f
}

// BoolPtr returns a pointer to the coerced bool, or nil when absent.
func BoolPtr(v any, ok bool) *bool {
	if !ok {
		return nil
	}
	b, ok := Bool(v)
	if !ok {
		return nil
	}
	return &b
}

// StringOr returns v as a string, or def when absent or not a string.
func StringOr(v any, ok bool, def string) string {
	if !ok {
		return def
	}
	if s, isStr := v.(string); isStr {
		return s
	}
	return def
}

// Strings collects the string elements of an array.
func Strings(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Text renders a scalar as a string. Numbers are formatted without exponent.
func Text(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case int64:
		return strconv.FormatInt(t, 10), true
	case int:
		return strconv.Itoa(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}
