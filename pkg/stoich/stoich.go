// Package stoich resolves the combustion air requirement and the flue-gas
// species balance for a biomass fuel. All amounts are referred to one kg of
// dry fuel.
package stoich

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/dmltech/biofurnace/pkg/fuel"
)

// Coefficients holds the stoichiometric calibration: the oxygen demand of
// each combustible element, the dry-air split, and the molecular weights
// used for the mass/mole conversions.
type Coefficients struct {
	// Oxygen demand coefficients, kg O2 per kg of element. These are the
	// calibrated mass coefficients of the reference correlation, not exact
	// molar ratios; see DESIGN.md.
	OxygenPerCarbon   float64 `ini:"oxygen_per_carbon"`
	OxygenPerHydrogen float64 `ini:"oxygen_per_hydrogen"`
	OxygenPerSulfur   float64 `ini:"oxygen_per_sulfur"`
	OxygenCredit      float64 `ini:"oxygen_credit"` // per kg fuel-bound oxygen

	AirOxygenMassFraction   float64 `ini:"air_oxygen_mass_fraction"`
	AirNitrogenMassFraction float64 `ini:"air_nitrogen_mass_fraction"`

	// Atomic and molecular weights, kg/kmol.
	CarbonAW   float64 `ini:"carbon_aw"`
	HydrogenAW float64 `ini:"hydrogen_aw"`
	SulfurAW   float64 `ini:"sulfur_aw"`
	CO2MW      float64 `ini:"co2_mw"`
	H2OMW      float64 `ini:"h2o_mw"`
	SO2MW      float64 `ini:"so2_mw"`
	O2MW       float64 `ini:"o2_mw"`
	N2MW       float64 `ini:"n2_mw"`
}

// DefaultCoefficients returns the reference calibration.
func DefaultCoefficients() Coefficients {
	return Coefficients{
		OxygenPerCarbon:         2.667,
		OxygenPerHydrogen:       8.0,
		OxygenPerSulfur:         2.0,
		OxygenCredit:            1.333,
		AirOxygenMassFraction:   0.232,
		AirNitrogenMassFraction: 0.768,
		CarbonAW:                12.011,
		HydrogenAW:              1.008,
		SulfurAW:                32.06,
		CO2MW:                   44.01,
		H2OMW:                   18.015,
		SO2MW:                   64.066,
		O2MW:                    31.999,
		N2MW:                    28.014,
	}
}

// Species holds one scalar per flue-gas species.
type Species struct {
	CO2 float64 `json:"co2"`
	H2O float64 `json:"h2o"`
	SO2 float64 `json:"so2"`
	O2  float64 `json:"o2"`
	N2  float64 `json:"n2"`
}

// Slice returns the species values in CO2, H2O, SO2, O2, N2 order.
func (s Species) Slice() []float64 {
	return []float64{s.CO2, s.H2O, s.SO2, s.O2, s.N2}
}

// Total returns the sum over all species.
func (s Species) Total() float64 {
	return floats.Sum(s.Slice())
}

func (s Species) scale(k float64) Species {
	return Species{CO2: s.CO2 * k, H2O: s.H2O * k, SO2: s.SO2 * k, O2: s.O2 * k, N2: s.N2 * k}
}

// Balance is the full stoichiometric characterization of the flue gas, per
// kg of dry fuel.
type Balance struct {
	OxygenDemand     float64 // kg O2 per kg dry fuel
	TheoreticalAir   float64 // kg dry air per kg dry fuel
	RealAir          float64 // kg dry air per kg dry fuel, with excess
	Masses           Species // kg per kg dry fuel
	Moles            Species // kmol per kg dry fuel
	MoleFractions    Species // volumetric percent
	MassFractions    Species // mass percent
	TotalMass        float64 // kg per kg dry fuel
	TotalMoles       float64 // kmol per kg dry fuel
	MixtureMolarMass float64 // kg/kmol
}

// NegativeOxygenDemandError signals a physically inconsistent composition:
// the fuel carries more bound oxygen than its combustibles demand.
type NegativeOxygenDemandError struct {
	Demand float64 // kg O2 per kg dry fuel
}

func (e *NegativeOxygenDemandError) Error() string {
	return fmt.Sprintf("stoich: negative oxygen demand (%.4f kg O2/kg fuel): composition is inconsistent", e.Demand)
}

// Compute resolves the air requirement and flue-gas balance for the given
// composition, excess-air percent and combustion-air humidity ratio
// (kg water per kg dry air).
func Compute(comp fuel.Composition, excessAirPct, humidityRatio float64, c Coefficients) (Balance, error) {
	o2 := (c.OxygenPerCarbon*comp.Carbon +
		c.OxygenPerHydrogen*comp.Hydrogen +
		c.OxygenPerSulfur*comp.Sulfur -
		c.OxygenCredit*comp.Oxygen) / 100.0
	if o2 < 0 {
		return Balance{}, &NegativeOxygenDemandError{Demand: o2}
	}

	airTheo := o2 / c.AirOxygenMassFraction
	airReal := airTheo * (1.0 + excessAirPct/100.0)

	var m Species
	m.CO2 = c.CO2MW / c.CarbonAW * comp.Carbon / 100.0
	m.H2O = c.H2OMW/(2.0*c.HydrogenAW)*comp.Hydrogen/100.0 +
		comp.MoisturePerKgDry() +
		humidityRatio*airReal
	m.SO2 = c.SO2MW / c.SulfurAW * comp.Sulfur / 100.0
	m.O2 = airReal*c.AirOxygenMassFraction - o2
	m.N2 = comp.Nitrogen/100.0 + airReal*c.AirNitrogenMassFraction

	n := Species{
		CO2: m.CO2 / c.CO2MW,
		H2O: m.H2O / c.H2OMW,
		SO2: m.SO2 / c.SO2MW,
		O2:  m.O2 / c.O2MW,
		N2:  m.N2 / c.N2MW,
	}

	totalMass := m.Total()
	totalMoles := n.Total()

	return Balance{
		OxygenDemand:     o2,
		TheoreticalAir:   airTheo,
		RealAir:          airReal,
		Masses:           m,
		Moles:            n,
		MoleFractions:    n.scale(100.0 / totalMoles),
		MassFractions:    m.scale(100.0 / totalMass),
		TotalMass:        totalMass,
		TotalMoles:       totalMoles,
		MixtureMolarMass: totalMass / totalMoles,
	}, nil
}

// MoleToMassFractions converts volumetric (mole) percentages to mass
// percentages.
func MoleToMassFractions(mole Species, c Coefficients) Species {
	m := Species{
		CO2: mole.CO2 * c.CO2MW,
		H2O: mole.H2O * c.H2OMW,
		SO2: mole.SO2 * c.SO2MW,
		O2:  mole.O2 * c.O2MW,
		N2:  mole.N2 * c.N2MW,
	}
	return m.scale(100.0 / m.Total())
}

// MassToMoleFractions converts mass percentages to volumetric (mole)
// percentages.
func MassToMoleFractions(mass Species, c Coefficients) Species {
	n := Species{
		CO2: mass.CO2 / c.CO2MW,
		H2O: mass.H2O / c.H2OMW,
		SO2: mass.SO2 / c.SO2MW,
		O2:  mass.O2 / c.O2MW,
		N2:  mass.N2 / c.N2MW,
	}
	return n.scale(100.0 / n.Total())
}
