package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/MikeSquared-Agency/Candyboard/internal/candy"
	"github.com/MikeSquared-Agency/Candyboard/internal/engine"
)

var fieldLabels = map[engine.Field]string{
	engine.FieldWin:   "Win %",
	engine.FieldSugar: "Sugar %",
	engine.FieldPrice: "Price %",
}

func renderCandies(w io.Writer, records []candy.Record) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Name", "Win %", "Sugar %", "Price %", "Characteristics"})
	table.SetAutoWrapText(false)

	for _, r := range records {
		p := engine.BuildProfile(r)
		table.Append([]string{
			r.Name,
			fmt.Sprintf("%.1f", r.WinPercent),
			fmt.Sprintf("%.1f", r.SugarPercent*100),
			fmt.Sprintf("%.1f", r.PricePercent*100),
			strings.Join(p.Characteristics, ", "),
		})
	}
	table.Render()
}

// renderComparison prints one row per field in display order.
func renderComparison(w io.Writer, cmp engine.Comparison, subject string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Metric", subject, "Dataset", "Delta"})

	for _, f := range engine.AllFields {
		m, ok := cmp[f]
		if !ok {
			continue
		}
		table.Append([]string{
			fieldLabels[f],
			fmt.Sprintf("%.2f", m.SubsetMean),
			fmt.Sprintf("%.2f", m.DatasetMean),
			fmt.Sprintf("%+.2f", m.Delta),
		})
	}
	table.Render()
}
