package transform

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// stringify renders a scalar field value the way a user would write it.
// JSON numbers arrive as float64; integral codes like naicsCode must not
// pick up an exponent or trailing zeros.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// stringField returns the record field as a string, with ok=false when the
// field is missing, null, or not a scalar convertible to string.
func stringField(r Record, name string) (string, bool) {
	v, ok := r[name]
	if !ok || v == nil {
		return "", false
	}
	switch v.(type) {
	case map[string]any, []any:
		return "", false
	}
	return stringify(v), true
}
