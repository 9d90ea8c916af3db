package service

import (
	"encoding/json"
	"strconv"
)

// truthy follows the loose truthiness the page uses to decide whether an
// optional field is worth showing.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case float64:
		return t != 0
	default:
		return true
	}
}

// displayString renders a decoded JSON value as text. Null and booleans
// render empty, objects and arrays as compact JSON.
func displayString(v any) string {
	switch t := v.(type) {
	case nil, bool:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// messageString is displayString for error messages, where a boolean true
// still reads as text.
func messageString(v any) string {
	if b, ok := v.(bool); ok {
		return strconv.FormatBool(b)
	}
	return displayString(v)
}
