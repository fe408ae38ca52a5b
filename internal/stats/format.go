package stats

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Format is how a column renders its value
type Format string

const (
	FormatInteger Format = "integer"
	FormatDecimal Format = "decimal"
	FormatPct     Format = "percent"
)

// DefaultDecimals is the precision of rate stats such as AVG and ERA
const DefaultDecimals = 3

var hundred = decimal.NewFromInt(100)

// FormatInt renders a counting stat; absent values render "0"
func FormatInt(v float64, ok bool) string {
	if !ok {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatFixed renders v with exactly places decimals. Absent values render
// "0." followed by places zeros.
func FormatFixed(v float64, ok bool, places int) string {
	if !ok {
		if places <= 0 {
			return "0"
		}
		return "0." + strings.Repeat("0", places)
	}
	return decimal.NewFromFloat(v).StringFixed(int32(places))
}

// FormatPercent renders a ratio as a percentage with one decimal ("62.5%")
func FormatPercent(v float64, ok bool) string {
	if !ok {
		return "0.0%"
	}
	return decimal.NewFromFloat(v).Mul(hundred).StringFixed(1) + "%"
}

// render applies a column's format
func render(format Format, places int, v float64, ok bool) string {
	switch format {
	case FormatDecimal:
		return FormatFixed(v, ok, places)
	case FormatPct:
		return FormatPercent(v, ok)
	default:
		return FormatInt(v, ok)
	}
}
