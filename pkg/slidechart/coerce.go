package slidechart

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numericPrefix matches the longest leading float literal of a string.
var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// CoerceNumber converts v to a finite number. Strings are read up to their
// longest numeric prefix ("12px" is 12). Everything else, including NaN and
// infinities, becomes 0.
func CoerceNumber(v any) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		return parseLeadingFloat(string(n))
	case string:
		return parseLeadingFloat(n)
	default:
		return 0
	}
	return finite(f)
}

func parseLeadingFloat(s string) float64 {
	match := numericPrefix.FindString(strings.TrimLeft(s, " \t\r\n\f\v"))
	if match == "" {
		return 0
	}
	f, err := strconv.ParseFloat(match, 64)
	if err != nil {
		// Overflowing exponents report ErrRange with ±Inf.
		return 0
	}
	return finite(f)
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// stringify renders a loosely typed scalar as display text. The second
// result is false for nil.
func stringify(v any) (string, bool) {
	switch s := v.(type) {
	case nil:
		return "", false
	case string:
		return s, true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32), true
	case int:
		return strconv.Itoa(s), true
	case int64:
		return strconv.FormatInt(s, 10), true
	case bool:
		return strconv.FormatBool(s), true
	}
	return fmt.Sprint(v), true
}

// trimmedOr returns the trimmed text of v, or fallback when that is empty.
func trimmedOr(v any, fallback string) string {
	s, ok := stringify(v)
	if !ok {
		return fallback
	}
	if s = strings.TrimSpace(s); s == "" {
		return fallback
	}
	return s
}
