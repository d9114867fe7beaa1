package utils

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// NormalizeDecimal rewrites a locale decimal comma to a dot.
func NormalizeDecimal(s string) string {
	return strings.ReplaceAll(s, ",", ".")
}

// ParseDecimal accepts the shapes JSON APIs use for prices: numbers
// (json.Number or float64) and numeric strings.
func ParseDecimal(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case json.Number:
		return decimal.NewFromString(n.String())
	case float64:
		return decimal.NewFromFloat(n), nil
	case string:
		return decimal.NewFromString(strings.TrimSpace(n))
	default:
		return decimal.Decimal{}, fmt.Errorf("unsupported numeric value %T", v)
	}
}

// FormatFixed parses v and renders it with exactly places decimal digits.
func FormatFixed(v any, places int32) (string, error) {
	d, err := ParseDecimal(v)
	if err != nil {
		return "", err
	}
	return d.StringFixed(places), nil
}
