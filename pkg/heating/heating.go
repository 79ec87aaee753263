// Package heating computes the higher and lower heating values of a biomass
// fuel on the as-fired basis and cross-checks the result against a reported
// value.
package heating

import (
	"math"

	"github.com/dmltech/biofurnace/pkg/fuel"
)

// Coefficients holds the Dulong-form heating-value calibration. The factors
// multiply dry-basis mass percentages and yield kJ/kg of dry fuel.
type Coefficients struct {
	CarbonFactor   float64 `ini:"carbon_factor"`
	HydrogenFactor float64 `ini:"hydrogen_factor"`
	OxygenDivisor  float64 `ini:"oxygen_divisor"`
	SulfurFactor   float64 `ini:"sulfur_factor"`

	// LatentHeat is the heat of vaporization of water at the reference
	// temperature (25 degC), kJ/kg.
	LatentHeat float64 `ini:"latent_heat"`

	// WaterPerHydrogen is the mass of water formed per kg of fuel hydrogen.
	WaterPerHydrogen float64 `ini:"water_per_hydrogen"`

	// DeviationThreshold is the relative deviation against the reported LHV
	// above which the diagnostic flag is raised, percent.
	DeviationThreshold float64 `ini:"deviation_threshold"`
}

// DefaultCoefficients returns the reference Dulong calibration.
func DefaultCoefficients() Coefficients {
	return Coefficients{
		CarbonFactor:       338.2,
		HydrogenFactor:     1442.8,
		OxygenDivisor:      8.0,
		SulfurFactor:       94.2,
		LatentHeat:         2442.0,
		WaterPerHydrogen:   9.0,
		DeviationThreshold: 5.0,
	}
}

// Values is the heating-value characterization of a fuel, per kg as-fired.
type Values struct {
	HHV             float64 // kJ/kg
	LHV             float64 // kJ/kg
	CombustionWater float64 // kg water per kg as-fired fuel

	// Deviation of the computed LHV from the reported one, percent. Flagged
	// is raised when the magnitude exceeds the configured threshold; the
	// deviation is a diagnostic, never an error, and neither value is
	// overridden.
	Deviation float64
	Flagged   bool
}

// Compute evaluates the heating values for the given composition. A
// non-positive reportedLHV disables the deviation diagnostic.
func Compute(comp fuel.Composition, reportedLHV float64, c Coefficients) Values {
	n := comp.Normalized()

	hhvDry := c.CarbonFactor*n.Carbon +
		c.HydrogenFactor*(n.Hydrogen-n.Oxygen/c.OxygenDivisor) +
		c.SulfurFactor*n.Sulfur

	dry := n.DryMassFraction()
	hhv := hhvDry * dry

	// Water leaving with the flue gas: combustion water from the as-fired
	// hydrogen plus the fuel moisture itself.
	water := (c.WaterPerHydrogen*n.Hydrogen*dry + n.Moisture) / 100.0
	lhv := hhv - c.LatentHeat*water

	v := Values{HHV: hhv, LHV: lhv, CombustionWater: water}
	if reportedLHV > 0 {
		v.Deviation = (lhv - reportedLHV) / reportedLHV * 100.0
		v.Flagged = math.Abs(v.Deviation) > c.DeviationThreshold
	}
	return v
}
