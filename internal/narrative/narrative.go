// Package narrative holds the prose shown next to engine results: why a curated candy is
// recommended and what each selection insight means.
package narrative

import "github.com/MikeSquared-Agency/Candyboard/internal/engine"

// rationales explains the curated picks. Candies without an entry get none.
var rationales = map[string]string{
	"Reese's Peanut Butter cup": "Highest win percentage among all candies, so it has wide appeal. " +
		"The chocolate and peanut butter pairing gives a distinctive flavor, the brand has strong loyalty, " +
		"the smooth and creamy texture satisfies, and it comes in sizes that suit any kind of treat-giving.",
	"Twix": "A high win percentage shows strong popularity. " +
		"It combines chocolate, caramel and cookie, it is nut-free for those with allergies, " +
		"the bar form is easy to hand out, and it has a satisfying crunch.",
	"Starburst": "A fruity option for trick-or-treaters who skip chocolate, with a high win percentage among " +
		"fruit-flavored candies. Several flavors come in each pack, the chewy texture is a change from " +
		"chocolate bars, and individually wrapped pieces make portioning easy.",
}

// Rationale explains why a curated candy is recommended.
func Rationale(name string) string { return rationales[name] }

var insightText = map[engine.Insight]string{
	engine.InsightWinAbove: "Your selection has an above-average win rate. It is likely to be popular with trick-or-treaters.",
	engine.InsightWinBelow: "Your selection has a below-average win rate. Consider adding more popular candies to increase its appeal.",
	engine.InsightSugarAbove: "Your selection has an above-average sugar percentile. " +
		"It might be extra sweet compared to other candies.",
	engine.InsightSugarBelow: "Your selection has a below-average sugar percentile. " +
		"This might appeal to health-conscious parents.",
	engine.InsightPriceAbove: "Your selection has an above-average price percentile. " +
		"Consider including some more affordable options to balance your budget.",
	engine.InsightPriceBelow: "Your selection has a below-average price percentile, which is good for your budget. " +
		"Make sure you are not compromising too much on quality or popularity.",
	engine.InsightContainsNuts: "Allergy warning: some of your selected candies contain nuts. " +
		"Consider adding nut-free options.",
	engine.InsightMissingChoc: "None of your selected candies contain chocolate. " +
		"Chocolate-based candies appeal to many trick-or-treaters.",
	engine.InsightMissingFruity: "None of your selected candies are fruity. " +
		"Fruity candies add balance and variety.",
	engine.InsightMissingCaramel: "Your selection has no caramel candies, which are popular " +
		"and make an assortment more versatile.",
}

// InsightView pairs an insight code with its wording.
type InsightView struct {
	Code engine.Insight `json:"code"`
	Text string         `json:"text"`
}

// Describe attaches display text to each insight code.
func Describe(insights []engine.Insight) []InsightView {
	out := make([]InsightView, 0, len(insights))
	for _, in := range insights {
		out = append(out, InsightView{Code: in, Text: insightText[in]})
	}
	return out
}
