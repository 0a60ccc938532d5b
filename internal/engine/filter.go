package engine

import (
	"github.com/MikeSquared-Agency/Candyboard/internal/candy"
)

// Range is a closed interval of percentile points in [0,100].
type Range struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// FullRange covers every percentile.
var FullRange = Range{Low: 0, High: 100}

// Contains reports whether a [0,1] fraction, scaled to percentile points, lies in r.
// Low > High is taken literally and contains nothing.
func (r Range) Contains(fraction float64) bool {
	v := fraction * 100
	return v >= r.Low && v <= r.High
}

// Criteria selects candies by required flags and sugar/price percentile ranges.
// Flags not listed impose no constraint.
type Criteria struct {
	Required []candy.Flag `json:"required_flags"`
	Sugar    Range        `json:"sugar_range"`
	Price    Range        `json:"price_range"`
}

// DefaultCriteria requires no flags and spans both full ranges.
func DefaultCriteria() Criteria {
	return Criteria{Sugar: FullRange, Price: FullRange}
}

// Match reports whether r satisfies every constraint in c.
func (c Criteria) Match(r candy.Record) bool {
	for _, f := range c.Required {
		if !r.Has(f) {
			return false
		}
	}
	return c.Sugar.Contains(r.SugarPercent) && c.Price.Contains(r.PricePercent)
}

// Filter returns the records of ds matching c, in dataset order.
func Filter(ds *candy.Dataset, c Criteria) []candy.Record {
	out := make([]candy.Record, 0, ds.Len())
	for i := 0; i < ds.Len(); i++ {
		r := ds.At(i)
		if c.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
