package candy

import (
	"errors"
	"fmt"
)

var (
	// ErrDataUnavailable means the dataset source is missing, unreadable or malformed.
	ErrDataUnavailable = errors.New("candy data unavailable")
	// ErrEmptySelection means an aggregate was requested over zero records.
	ErrEmptySelection = errors.New("empty selection")
	// ErrInvalidSelectionSize means a selection holds more than MaxSelection names or repeats one.
	ErrInvalidSelectionSize = errors.New("invalid selection size")
	// ErrUnknownCandy means a name is not present where it was looked up.
	ErrUnknownCandy = errors.New("unknown candy")
)

// MaxSelection is the largest assortment a user may build.
const MaxSelection = 3

// Flag is one of the nine boolean category tags of a candy.
type Flag string

const (
	FlagChocolate        Flag = "chocolate"
	FlagFruity           Flag = "fruity"
	FlagCaramel          Flag = "caramel"
	FlagPeanutyAlmondy   Flag = "peanutyalmondy"
	FlagNougat           Flag = "nougat"
	FlagCrispedRiceWafer Flag = "crispedricewafer"
	FlagHard             Flag = "hard"
	FlagBar              Flag = "bar"
	FlagPluribus         Flag = "pluribus"
)

// Flags lists every flag in canonical order.
var Flags = []Flag{
	FlagChocolate,
	FlagFruity,
	FlagCaramel,
	FlagPeanutyAlmondy,
	FlagNougat,
	FlagCrispedRiceWafer,
	FlagHard,
	FlagBar,
	FlagPluribus,
}

var flagLabels = map[Flag]string{
	FlagChocolate:        "Chocolate",
	FlagFruity:           "Fruity",
	FlagCaramel:          "Caramel",
	FlagPeanutyAlmondy:   "Peanuts/Almonds",
	FlagNougat:           "Nougat",
	FlagCrispedRiceWafer: "Crispy/Wafer",
	FlagHard:             "Hard",
	FlagBar:              "Bar",
	FlagPluribus:         "Pluribus",
}

// Column is the dataset column backing the flag.
func (f Flag) Column() string { return string(f) }

// Label is the human-readable category name.
func (f Flag) Label() string { return flagLabels[f] }

// Valid reports whether f is one of the nine known flags.
func (f Flag) Valid() bool {
	_, ok := flagLabels[f]
	return ok
}

// ParseFlag maps a column name to a Flag.
func ParseFlag(s string) (Flag, error) {
	f := Flag(s)
	if !f.Valid() {
		return "", fmt.Errorf("unknown flag %q", s)
	}
	return f, nil
}

// Record is one candy row.
type Record struct {
	Name string `json:"name"`

	Chocolate        bool `json:"chocolate"`
	Fruity           bool `json:"fruity"`
	Caramel          bool `json:"caramel"`
	PeanutyAlmondy   bool `json:"peanutyalmondy"`
	Nougat           bool `json:"nougat"`
	CrispedRiceWafer bool `json:"crispedricewafer"`
	Hard             bool `json:"hard"`
	Bar              bool `json:"bar"`
	Pluribus         bool `json:"pluribus"`

	// Percentile ranks in [0,1].
	SugarPercent float64 `json:"sugar_percent"`
	PricePercent float64 `json:"price_percent"`
	// Pairwise preference score in [0,100].
	WinPercent float64 `json:"win_percent"`
}

// Has reports whether the record carries flag f.
func (r Record) Has(f Flag) bool {
	switch f {
	case FlagChocolate:
		return r.Chocolate
	case FlagFruity:
		return r.Fruity
	case FlagCaramel:
		return r.Caramel
	case FlagPeanutyAlmondy:
		return r.PeanutyAlmondy
	case FlagNougat:
		return r.Nougat
	case FlagCrispedRiceWafer:
		return r.CrispedRiceWafer
	case FlagHard:
		return r.Hard
	case FlagBar:
		return r.Bar
	case FlagPluribus:
		return r.Pluribus
	}
	return false
}

// Set assigns flag f on the record.
func (r *Record) Set(f Flag, v bool) {
	switch f {
	case FlagChocolate:
		r.Chocolate = v
	case FlagFruity:
		r.Fruity = v
	case FlagCaramel:
		r.Caramel = v
	case FlagPeanutyAlmondy:
		r.PeanutyAlmondy = v
	case FlagNougat:
		r.Nougat = v
	case FlagCrispedRiceWafer:
		r.CrispedRiceWafer = v
	case FlagHard:
		r.Hard = v
	case FlagBar:
		r.Bar = v
	case FlagPluribus:
		r.Pluribus = v
	}
}

// Dataset is the ordered, immutable collection of candy records.
type Dataset struct {
	records []Record
	index   map[string]int
}

// NewDataset builds a dataset, rejecting duplicate or empty names.
func NewDataset(records []Record) (*Dataset, error) {
	ds := &Dataset{
		records: make([]Record, len(records)),
		index:   make(map[string]int, len(records)),
	}
	copy(ds.records, records)
	for i, r := range ds.records {
		if r.Name == "" {
			return nil, fmt.Errorf("%w: row %d has no name", ErrDataUnavailable, i+1)
		}
		if _, dup := ds.index[r.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrDataUnavailable, r.Name)
		}
		ds.index[r.Name] = i
	}
	return ds, nil
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// Records returns a copy of all records in dataset order.
func (d *Dataset) Records() []Record {
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}

// At returns the i-th record.
func (d *Dataset) At(i int) Record { return d.records[i] }

// Lookup finds a record by name.
func (d *Dataset) Lookup(name string) (Record, bool) {
	i, ok := d.index[name]
	if !ok {
		return Record{}, false
	}
	return d.records[i], true
}

// Names returns all names in dataset order.
func (d *Dataset) Names() []string {
	out := make([]string, len(d.records))
	for i, r := range d.records {
		out[i] = r.Name
	}
	return out
}
