package dataset

import (
	"math"
	"strconv"
	"strings"
)

// parseNumeric coerces a raw cell to a float. A false result is the missing marker.
// Without configured separators the value must be a plain Go float literal.
func parseNumeric(s string, opt Options) (float64, bool) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return 0, false
	}
	raw = strings.ReplaceAll(raw, "\u00A0", " ")
	dec := opt.DecimalSeparator
	thou := opt.ThousandsSeparator
	if thou != 0 && thou != dec {
		raw = strings.ReplaceAll(raw, string(thou), "")
	}
	if dec != 0 && dec != '.' {
		if strings.Contains(raw, ".") {
			// a stray '.' next to a non-dot decimal separator is ambiguous
			return 0, false
		}
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	raw = strings.TrimSpace(raw)
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// coerce applies the field's kind on top of parseNumeric.
func coerce(s string, k Kind, opt Options) (float64, bool) {
	f, ok := parseNumeric(s, opt)
	if !ok {
		return 0, false
	}
	if k == KindInteger && f != math.Trunc(f) {
		return 0, false
	}
	return f, true
}

// formatNumber renders a number the way it is used as a group key:
// integers without a fractional part.
func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
