package dataset

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/MikeSquared-Agency/Candyboard/internal/candy"
)

// Column names of the candy CSV.
const (
	ColumnName  = "competitorname"
	ColumnSugar = "sugarpercent"
	ColumnPrice = "pricepercent"
	ColumnWin   = "winpercent"
)

// RequiredColumns lists every column a candy table must carry.
func RequiredColumns() []string {
	cols := []string{ColumnName}
	for _, f := range candy.Flags {
		cols = append(cols, f.Column())
	}
	return append(cols, ColumnSugar, ColumnPrice, ColumnWin)
}

// CSVSource reads candies from a CSV file with a header row. Extra columns are ignored.
type CSVSource struct {
	Path string
}

func (s CSVSource) Name() string { return "csv:" + s.Path }

func (s CSVSource) Load(ctx context.Context) ([]candy.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.Path, err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.WithTypes(map[string]series.Type{ColumnName: series.String}),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.Path, df.Err)
	}
	return recordsFromFrame(df)
}

// recordsFromFrame converts a typed frame into records, rejecting missing or non-numeric columns.
func recordsFromFrame(df dataframe.DataFrame) ([]candy.Record, error) {
	present := make(map[string]bool)
	for _, n := range df.Names() {
		present[n] = true
	}
	for _, c := range RequiredColumns() {
		if !present[c] {
			return nil, fmt.Errorf("missing column %q", c)
		}
	}

	numeric := func(col string) ([]float64, error) {
		s := df.Col(col)
		switch s.Type() {
		case series.Int, series.Float, series.Bool:
		default:
			return nil, fmt.Errorf("column %q is not numeric", col)
		}
		vals := s.Float()
		// gota reads blank and NA cells as NaN.
		for i, v := range vals {
			if math.IsNaN(v) {
				return nil, fmt.Errorf("column %q row %d: missing value", col, i+1)
			}
		}
		return vals, nil
	}

	n := df.Nrow()
	records := make([]candy.Record, n)
	for i, name := range df.Col(ColumnName).Records() {
		records[i].Name = name
	}

	for _, f := range candy.Flags {
		vals, err := numeric(f.Column())
		if err != nil {
			return nil, err
		}
		for i, v := range vals {
			records[i].Set(f, v != 0)
		}
	}

	targets := []struct {
		col string
		set func(r *candy.Record, v float64)
	}{
		{ColumnSugar, func(r *candy.Record, v float64) { r.SugarPercent = v }},
		{ColumnPrice, func(r *candy.Record, v float64) { r.PricePercent = v }},
		{ColumnWin, func(r *candy.Record, v float64) { r.WinPercent = v }},
	}
	for _, t := range targets {
		vals, err := numeric(t.col)
		if err != nil {
			return nil, err
		}
		for i, v := range vals {
			t.set(&records[i], v)
		}
	}
	return records, nil
}
