// Package classify buckets a numeric reading into the first labeled range
// that contains it.
package classify

import "github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/domain"

// Range is a half-open interval [Min, Max). A nil bound is unbounded on that
// side; a range with neither bound never matches.
type Range struct {
	Label string
	Min   *float64
	Max   *float64
}

func (r Range) Contains(v float64) bool {
	switch {
	case r.Min != nil && r.Max != nil:
		return v >= *r.Min && v < *r.Max
	case r.Min != nil:
		return v >= *r.Min
	case r.Max != nil:
		return v < *r.Max
	}
	return false
}

// Classify returns the label of the first range in ranges containing value.
// Ranges are tried in the order given. A nil value never matches.
func Classify(value *float64, ranges []Range) (string, bool) {
	if value == nil {
		return "", false
	}
	for _, r := range ranges {
		if r.Contains(*value) {
			return r.Label, true
		}
	}
	return "", false
}

// FromClassifications keeps the stored order of cs.
func FromClassifications(cs []domain.Classification) []Range {
	out := make([]Range, len(cs))
	for i, c := range cs {
		out[i] = Range{Label: c.RangeLabel, Min: c.MinValue, Max: c.MaxValue}
	}
	return out
}

// Severity labels of the fixed tracking scale.
const (
	Below10  = "< 10 mpy"
	From10   = "10-20 mpy"
	From20   = "20-30 mpy"
	From30   = "30-50 mpy"
	Above50  = "> 50 mpy"
	Critical = Above50
)

// SeverityScale is the fixed corrosion-rate scale used by temporal
// tracking. It is independent of the stored classifications.
func SeverityScale() []Range {
	return []Range{
		{Label: Below10, Max: f(10)},
		{Label: From10, Min: f(10), Max: f(20)},
		{Label: From20, Min: f(20), Max: f(30)},
		{Label: From30, Min: f(30), Max: f(50)},
		{Label: Above50, Min: f(50)},
	}
}

func f(v float64) *float64 { return &v }
