package tools

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const isoDateLayout = "2006-01-02"

// intParam extracts an integer parameter. The decoded JSON may carry it as
// a number or a numeric string; anything that is not a whole number is a
// format error rather than a silent coercion.
func intParam(params map[string]interface{}, key string) (int64, bool, error) {
	raw, ok := params[key]
	if !ok || raw == nil {
		return 0, false, nil
	}
	switch v := raw.(type) {
	case int:
		return int64(v), true, nil
	case int64:
		return v, true, nil
	case float64:
		if v != math.Trunc(v) {
			return 0, true, fmt.Errorf("parameter %s must be an integer", key)
		}
		return int64(v), true, nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, true, fmt.Errorf("parameter %s must be an integer", key)
		}
		return n, true, nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, true, fmt.Errorf("parameter %s must be an integer", key)
		}
		return n, true, nil
	default:
		return 0, true, fmt.Errorf("parameter %s must be an integer", key)
	}
}

func stringParam(params map[string]interface{}, key string) (string, bool) {
	raw, ok := params[key]
	if !ok || raw == nil {
		return "", false
	}
	s, ok := raw.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// missingParams returns the names of required parameters absent from the
// call, collected as a set rather than reported one at a time.
func missingParams(params map[string]interface{}, required ...string) []string {
	var missing []string
	for _, key := range required {
		raw, ok := params[key]
		if !ok || raw == nil {
			missing = append(missing, key)
			continue
		}
		if s, isString := raw.(string); isString && s == "" {
			missing = append(missing, key)
		}
	}
	return missing
}

// paginationParams applies the limit=10, offset=0 defaults and rejects
// non-integer values.
func paginationParams(params map[string]interface{}) (int, int, error) {
	limit := 10
	offset := 0

	if n, present, err := intParam(params, "limit"); err != nil {
		return 0, 0, err
	} else if present {
		limit = int(n)
	}
	if n, present, err := intParam(params, "offset"); err != nil {
		return 0, 0, err
	} else if present {
		offset = int(n)
	}
	return limit, offset, nil
}

func validISODate(value string) bool {
	_, err := time.Parse(isoDateLayout, value)
	return err == nil
}
