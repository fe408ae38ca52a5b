package statsapi

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is a numeric field the stats service may send as a number, a numeric
// string, or null. Valid is false for anything that is not a finite number.
type Number struct {
	Value float64
	Valid bool
}

// NewNumber wraps v, marking it invalid if it is NaN or infinite
func NewNumber(v float64) Number {
	return Number{Value: v, Valid: isFinite(v)}
}

// Float returns the value, or 0 when the number is not valid
func (n Number) Float() float64 {
	if !n.Valid {
		return 0
	}
	return n.Value
}

// UnmarshalJSON accepts numbers, numeric strings and null
func (n *Number) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		*n = Number{}
		return nil
	}
	v, ok := toFloat(raw)
	*n = Number{Value: v, Valid: ok}
	return nil
}

// MarshalJSON writes null for invalid numbers
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// CountingStats maps a stat code (e.g. "ab", "2B", "K-L") to its value.
// Non-numeric values are dropped while decoding.
type CountingStats map[string]float64

// Get returns the value for code, or 0 when absent
func (c CountingStats) Get(code string) float64 {
	v, _ := c.Lookup(code)
	return v
}

// Lookup returns the value for code and whether a usable value was present
func (c CountingStats) Lookup(code string) (float64, bool) {
	if c == nil {
		return 0, false
	}
	v, ok := c[code]
	if !ok || !isFinite(v) {
		return 0, false
	}
	return v, true
}

// UnmarshalJSON decodes a stat group, keeping only numeric entries
func (c *CountingStats) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*c = nil
		return nil
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	stats := make(CountingStats, len(raw))
	for code, value := range raw {
		if v, ok := toFloat(value); ok {
			stats[code] = v
		}
	}
	*c = stats
	return nil
}

func toFloat(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, isFinite(val)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		return f, isFinite(f)
	case int:
		return float64(val), true
	default:
		return 0, false
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
