package transform

import (
	"encoding/json"
	"strconv"
)

// The pulse documents are not consistent about numeric encoding: counts and
// amounts appear as JSON numbers, occasionally as strings, and sometimes as
// null. Coercion never fails; anything unusable becomes zero.

func coerceFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func coerceInt(v interface{}) int64 {
	return int64(coerceFloat(v))
}
