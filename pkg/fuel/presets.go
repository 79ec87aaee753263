package fuel

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/gocarina/gocsv"
)

//go:embed presets.csv
var presetsCSV []byte

// Preset couples a biomass type with its typical proximate/ultimate
// analysis. The table ships with the package; callers needing site-specific
// fuels construct a Composition directly.
type Preset struct {
	Name     string  `csv:"name"`
	Carbon   float64 `csv:"carbon"`
	Hydrogen float64 `csv:"hydrogen"`
	Oxygen   float64 `csv:"oxygen"`
	Nitrogen float64 `csv:"nitrogen"`
	Sulfur   float64 `csv:"sulfur"`
	Ash      float64 `csv:"ash"`
	Moisture float64 `csv:"moisture"`
}

// Composition returns the preset analysis as a Composition record.
func (p Preset) Composition() Composition {
	return Composition{
		Carbon:   p.Carbon,
		Hydrogen: p.Hydrogen,
		Oxygen:   p.Oxygen,
		Nitrogen: p.Nitrogen,
		Sulfur:   p.Sulfur,
		Ash:      p.Ash,
		Moisture: p.Moisture,
	}
}

// Presets parses the embedded biomass table.
func Presets() ([]Preset, error) {
	var rows []*Preset
	if err := gocsv.UnmarshalBytes(presetsCSV, &rows); err != nil {
		return nil, fmt.Errorf("fuel: parsing preset table: %w", err)
	}
	out := make([]Preset, len(rows))
	for i, r := range rows {
		out[i] = *r
	}
	return out, nil
}

// PresetByName looks up a preset by its (case-insensitive) name.
func PresetByName(name string) (Preset, error) {
	presets, err := Presets()
	if err != nil {
		return Preset{}, err
	}
	for _, p := range presets {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("fuel: unknown preset %q", name)
}
