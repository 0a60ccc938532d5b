package engine

import (
	"github.com/MikeSquared-Agency/Candyboard/internal/candy"
)

// Insight is a machine-readable observation about a selection.
// Wording belongs to whoever presents it.
type Insight string

const (
	InsightWinAbove       Insight = "win_above_average"
	InsightWinBelow       Insight = "win_below_average"
	InsightSugarAbove     Insight = "sugar_above_average"
	InsightSugarBelow     Insight = "sugar_below_average"
	InsightPriceAbove     Insight = "price_above_average"
	InsightPriceBelow     Insight = "price_below_average"
	InsightContainsNuts   Insight = "contains_nuts"
	InsightMissingChoc    Insight = "missing_chocolate"
	InsightMissingFruity  Insight = "missing_fruity"
	InsightMissingCaramel Insight = "missing_caramel"
)

// Assessment is the comparison of a selection plus the insights derived from it.
type Assessment struct {
	Comparison Comparison `json:"comparison"`
	Insights   []Insight  `json:"insights"`
}

// Assess compares selected against ds and derives insights: one above/below verdict per
// field (equal counts as below), a nut warning, and hints for missing staple categories.
func Assess(selected []candy.Record, ds *candy.Dataset) (Assessment, error) {
	cmp, err := Compare(selected, ds, AllFields...)
	if err != nil {
		return Assessment{}, err
	}

	a := Assessment{Comparison: cmp}
	a.Insights = append(a.Insights,
		verdict(cmp[FieldWin], InsightWinAbove, InsightWinBelow),
		verdict(cmp[FieldSugar], InsightSugarAbove, InsightSugarBelow),
		verdict(cmp[FieldPrice], InsightPriceAbove, InsightPriceBelow),
	)

	if anyHas(selected, candy.FlagPeanutyAlmondy) {
		a.Insights = append(a.Insights, InsightContainsNuts)
	}
	if !anyHas(selected, candy.FlagChocolate) {
		a.Insights = append(a.Insights, InsightMissingChoc)
	}
	if !anyHas(selected, candy.FlagFruity) {
		a.Insights = append(a.Insights, InsightMissingFruity)
	}
	if !anyHas(selected, candy.FlagCaramel) {
		a.Insights = append(a.Insights, InsightMissingCaramel)
	}
	return a, nil
}

func verdict(m Metric, above, below Insight) Insight {
	if m.Above() {
		return above
	}
	return below
}

func anyHas(records []candy.Record, f candy.Flag) bool {
	for _, r := range records {
		if r.Has(f) {
			return true
		}
	}
	return false
}
