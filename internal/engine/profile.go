package engine

import (
	"github.com/MikeSquared-Agency/Candyboard/internal/candy"
)

// RadarAxes labels the eleven dimensions of a radar vector, in order.
var RadarAxes = []string{
	"Win %", "Sugar %", "Price %",
	"Chocolate", "Fruity", "Peanut/Almond", "Nougat", "Crispy/Wafer", "Hard", "Bar", "Pluribus",
}

// radarFlags are the flags projected onto the radar after the three numeric axes.
// Caramel has no axis.
var radarFlags = []candy.Flag{
	candy.FlagChocolate,
	candy.FlagFruity,
	candy.FlagPeanutyAlmondy,
	candy.FlagNougat,
	candy.FlagCrispedRiceWafer,
	candy.FlagHard,
	candy.FlagBar,
	candy.FlagPluribus,
}

// Profile is the display-ready description of one candy.
type Profile struct {
	Characteristics []string  `json:"characteristics"`
	Radar           []float64 `json:"radar"`
}

// BuildProfile lists the record's true flags in canonical order and projects it
// onto the radar axes, all on a 0..100 scale.
func BuildProfile(r candy.Record) Profile {
	p := Profile{
		Characteristics: make([]string, 0, len(candy.Flags)),
		Radar:           make([]float64, 0, len(RadarAxes)),
	}
	for _, f := range candy.Flags {
		if r.Has(f) {
			p.Characteristics = append(p.Characteristics, f.Label())
		}
	}

	p.Radar = append(p.Radar, r.WinPercent, r.SugarPercent*100, r.PricePercent*100)
	for _, f := range radarFlags {
		if r.Has(f) {
			p.Radar = append(p.Radar, 100)
		} else {
			p.Radar = append(p.Radar, 0)
		}
	}
	return p
}
