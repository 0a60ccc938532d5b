package engine

import (
	"fmt"

	"github.com/MikeSquared-Agency/Candyboard/internal/candy"
)

// Field names a numeric column that can be averaged.
type Field string

const (
	FieldWin   Field = "win_percent"
	FieldSugar Field = "sugar_percent"
	FieldPrice Field = "price_percent"
)

// AllFields lists the comparable fields in display order.
var AllFields = []Field{FieldWin, FieldSugar, FieldPrice}

// value extracts the field in reporting units: win as-is, sugar and price in percentile points.
func (f Field) value(r candy.Record) (float64, error) {
	switch f {
	case FieldWin:
		return r.WinPercent, nil
	case FieldSugar:
		return r.SugarPercent * 100, nil
	case FieldPrice:
		return r.PricePercent * 100, nil
	}
	return 0, fmt.Errorf("unknown field %q", f)
}

// Metric is one field's subset mean against the dataset mean.
type Metric struct {
	SubsetMean  float64 `json:"subset_mean"`
	DatasetMean float64 `json:"dataset_mean"`
	Delta       float64 `json:"delta"`
}

// Above reports whether the subset mean is strictly greater than the dataset mean.
func (m Metric) Above() bool { return m.SubsetMean > m.DatasetMean }

// Comparison maps each requested field to its metric.
type Comparison map[Field]Metric

// Mean averages field f over records. It fails with ErrEmptySelection on no records.
func Mean(records []candy.Record, f Field) (float64, error) {
	if len(records) == 0 {
		return 0, candy.ErrEmptySelection
	}
	var sum float64
	for _, r := range records {
		v, err := f.value(r)
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return sum / float64(len(records)), nil
}

// Compare computes, for each field, the subset mean, the dataset mean and their difference.
// With no fields it compares all of them.
func Compare(subset []candy.Record, ds *candy.Dataset, fields ...Field) (Comparison, error) {
	if len(subset) == 0 {
		return nil, candy.ErrEmptySelection
	}
	if len(fields) == 0 {
		fields = AllFields
	}
	all := ds.Records()

	cmp := make(Comparison, len(fields))
	for _, f := range fields {
		sm, err := Mean(subset, f)
		if err != nil {
			return nil, err
		}
		dm, err := Mean(all, f)
		if err != nil {
			return nil, fmt.Errorf("dataset mean %s: %w", f, err)
		}
		cmp[f] = Metric{SubsetMean: sm, DatasetMean: dm, Delta: sm - dm}
	}
	return cmp, nil
}

// Summary holds dataset-wide means in reporting units.
type Summary struct {
	Count int               `json:"count"`
	Means map[Field]float64 `json:"means"`
}

// Summarize computes the dataset-wide mean of every field.
func Summarize(ds *candy.Dataset) (Summary, error) {
	all := ds.Records()
	s := Summary{Count: len(all), Means: make(map[Field]float64, len(AllFields))}
	for _, f := range AllFields {
		m, err := Mean(all, f)
		if err != nil {
			return Summary{}, err
		}
		s.Means[f] = m
	}
	return s, nil
}
