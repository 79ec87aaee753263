package stoich

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmltech/biofurnace/pkg/fuel"
)

func bagasse() fuel.Composition {
	return fuel.Composition{
		Carbon: 50.29, Hydrogen: 5.82, Oxygen: 42.94,
		Nitrogen: 0.22, Sulfur: 0.08, Ash: 0.66,
		Moisture: 35.09,
	}
}

func TestComputeAirRequirement(t *testing.T) {
	c := DefaultCoefficients()
	bal, err := Compute(bagasse(), 30, 0.009587, c)
	require.NoError(t, err)

	assert.InDelta(t, 1.2360, bal.OxygenDemand, 5e-4)
	assert.InDelta(t, 5.328, bal.TheoreticalAir, 5e-3)
	assert.InDelta(t, bal.TheoreticalAir*1.3, bal.RealAir, 1e-9)
}

func TestComputeZeroExcessAir(t *testing.T) {
	c := DefaultCoefficients()
	bal, err := Compute(bagasse(), 0, 0, c)
	require.NoError(t, err)

	assert.InDelta(t, bal.TheoreticalAir, bal.RealAir, 1e-12)
	// All oxygen is consumed at the stoichiometric point.
	assert.InDelta(t, 0, bal.Masses.O2, 1e-12)
}

func TestComputeSpeciesBalance(t *testing.T) {
	c := DefaultCoefficients()
	bal, err := Compute(bagasse(), 30, 0.009587, c)
	require.NoError(t, err)

	assert.InDelta(t, 1.8427, bal.Masses.CO2, 5e-4)
	assert.InDelta(t, 1.1271, bal.Masses.H2O, 5e-4)
	assert.InDelta(t, 0.37081, bal.Masses.O2, 5e-4)
	assert.InDelta(t, 5.3214, bal.Masses.N2, 5e-3)
	assert.InDelta(t, 28.31, bal.MixtureMolarMass, 0.02)

	assert.InDelta(t, 100.0, bal.MoleFractions.Total(), 1e-9)
	assert.InDelta(t, 100.0, bal.MassFractions.Total(), 1e-9)
	assert.InDelta(t, 13.68, bal.MoleFractions.CO2, 0.05)
	assert.InDelta(t, 20.45, bal.MoleFractions.H2O, 0.05)
	assert.InDelta(t, 62.08, bal.MoleFractions.N2, 0.1)
}

func TestComputeHumidityAddsWater(t *testing.T) {
	c := DefaultCoefficients()
	dryAir, err := Compute(bagasse(), 30, 0, c)
	require.NoError(t, err)
	moistAir, err := Compute(bagasse(), 30, 0.01, c)
	require.NoError(t, err)

	extra := moistAir.Masses.H2O - dryAir.Masses.H2O
	assert.InDelta(t, 0.01*moistAir.RealAir, extra, 1e-9)
	// Only the water stream changes.
	assert.InDelta(t, dryAir.Masses.CO2, moistAir.Masses.CO2, 1e-12)
	assert.InDelta(t, dryAir.Masses.N2, moistAir.Masses.N2, 1e-12)
}

func TestComputeNegativeOxygenDemand(t *testing.T) {
	c := DefaultCoefficients()
	comp := fuel.Composition{Carbon: 5, Oxygen: 95}
	_, err := Compute(comp, 0, 0, c)
	require.Error(t, err)
	var demandErr *NegativeOxygenDemandError
	assert.True(t, errors.As(err, &demandErr))
}

func TestFractionConversionsRoundTrip(t *testing.T) {
	c := DefaultCoefficients()
	mole := Species{CO2: 13.7, H2O: 20.4, SO2: 0.01, O2: 3.8, N2: 62.09}

	mass := MoleToMassFractions(mole, c)
	back := MassToMoleFractions(mass, c)

	assert.InDelta(t, 100.0, mass.Total(), 1e-9)
	assert.InDelta(t, mole.CO2, back.CO2, 1e-9)
	assert.InDelta(t, mole.H2O, back.H2O, 1e-9)
	assert.InDelta(t, mole.SO2, back.SO2, 1e-9)
	assert.InDelta(t, mole.O2, back.O2, 1e-9)
	assert.InDelta(t, mole.N2, back.N2, 1e-9)
}
