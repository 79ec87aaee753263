package flow

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViscosityAtReference(t *testing.T) {
	c := DefaultConfig()
	assert.InDelta(t, c.SutherlandViscosity, Viscosity(c.SutherlandTemp, c), 1e-12)
	// Gas viscosity rises with temperature.
	assert.Greater(t, Viscosity(1100, c), Viscosity(300, c))
}

func TestFrictionFactorLaminar(t *testing.T) {
	c := DefaultConfig()
	assert.InDelta(t, 0.064, FrictionFactor(1000, 1e-4, c), 1e-12)
}

func TestFrictionFactorTurbulent(t *testing.T) {
	c := DefaultConfig()
	f := FrictionFactor(2.5e5, 0.0002, c)
	assert.Greater(t, f, 0.01)
	assert.Less(t, f, 0.05)
	// Rougher walls mean more friction.
	assert.Greater(t, FrictionFactor(2.5e5, 0.002, c), f)
}

func TestComputeInvalidDiameter(t *testing.T) {
	c := DefaultConfig()
	_, err := Compute(6.6, 28.3, 840, 14, 73.37, 0, c)
	require.Error(t, err)
	var geomErr *InvalidGeometryError
	assert.True(t, errors.As(err, &geomErr))
}

func TestComputeDuct(t *testing.T) {
	c := DefaultConfig()
	res, err := Compute(6.6054, 28.3124, 841.5, 14, 73.372, 0.762, c)
	require.NoError(t, err)

	assert.InDelta(t, 1.177, res.GasDensity, 0.002)
	assert.InDelta(t, 0.2242, res.OutletGasDensity, 5e-4)
	assert.InDelta(t, 0.45597, res.DuctArea, 1e-5)
	assert.InDelta(t, 12.31, res.Velocity, 0.02)
	assert.InDelta(t, 2.49e5, res.Reynolds, 1.5e3)
	assert.InDelta(t, 0.01664, res.FrictionFactor, 2e-4)
	assert.InDelta(t, 1.95, res.PressureDrop, 0.02)
	assert.InDelta(t, res.VolumetricFlow/res.DuctArea, res.Velocity, 1e-9)
}

func TestComputeRefractoryNetwork(t *testing.T) {
	c := DefaultConfig()
	res, err := Compute(6.6054, 28.3124, 841.5, 14, 73.372, 0.762, c)
	require.NoError(t, err)

	assert.InDelta(t, 6.95, res.HeatTransferCoeff, 0.05)
	assert.InDelta(t, 5748, res.HeatLoss, 30)
	assert.InDelta(t, 186.3, res.WallTemperature, 1.0)
	assert.InDelta(t, 607, res.RefractoryGradient, 4)
	assert.InDelta(t, 71.0, res.InsulationEfficiency, 0.5)

	// Wall sits between ambient and gas temperature; network temperature
	// drops add up.
	assert.Greater(t, res.WallTemperature, 14.0)
	assert.Less(t, res.WallTemperature, 841.5)
	internal := res.HeatLoss * (1.0 / (c.InternalFilm * math.Pi * 0.762))
	total := internal + res.RefractoryGradient + (res.WallTemperature - 14.0)
	assert.InDelta(t, 841.5-14.0, total, 1e-6)
}

func TestComputeNoTemperatureDifference(t *testing.T) {
	c := DefaultConfig()
	res, err := Compute(6.6, 28.3, 20, 20, 101.325, 0.762, c)
	require.NoError(t, err)
	assert.Zero(t, res.HeatLoss)
	assert.InDelta(t, 20.0, res.WallTemperature, 1e-12)
	assert.Zero(t, res.RefractoryGradient)
}
