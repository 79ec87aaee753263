package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmltech/biofurnace/pkg/fuel"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Input)
		field  string
	}{
		{"zero fuel flow", func(in *Input) { in.Operating.FuelFlow = 0 }, "fuel_flow"},
		{"negative fuel flow", func(in *Input) { in.Operating.FuelFlow = -1 }, "fuel_flow"},
		{"efficiency above 100", func(in *Input) { in.Operating.FurnaceEfficiency = 101 }, "furnace_efficiency"},
		{"negative efficiency", func(in *Input) { in.Operating.FurnaceEfficiency = -1 }, "furnace_efficiency"},
		{"negative excess air", func(in *Input) { in.Operating.ExcessAir = -5 }, "excess_air"},
		{"negative reported LHV", func(in *Input) { in.Operating.ReportedLHV = -100 }, "reported_lhv"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := DefaultInput()
			tc.mutate(&in)
			err := in.Validate()
			require.Error(t, err)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestValidateFuelErrorPassesThrough(t *testing.T) {
	in := DefaultInput()
	in.Fuel.Moisture = 150
	err := in.Validate()
	require.Error(t, err)
	var ferr *fuel.ValidationError
	assert.True(t, errors.As(err, &ferr))
}

// The reference operating point: bagasse at a highland mill. The expected
// values are hand-computed from the default calibration.
func TestEvaluateReferencePoint(t *testing.T) {
	res, err := Evaluate(DefaultInput(), DefaultConfig())
	require.NoError(t, err)

	// Ambient.
	assert.InDelta(t, 73.37, res.AtmosphericPressure, 0.05)
	assert.InDelta(t, 0.00959, res.HumidityRatio, 2e-4)
	assert.InDelta(t, 0.890, res.AirDensity, 0.005)

	// Heating values.
	assert.InDelta(t, 11468, res.HHV, 5)
	assert.InDelta(t, 9781, res.LHV, 5)
	assert.InDelta(t, -13.95, res.LHVDeviation, 0.1)
	assert.True(t, res.LHVFlagged)

	// Air and flue gas.
	assert.InDelta(t, 5.328, res.TheoreticalAir, 5e-3)
	assert.InDelta(t, 6.926, res.RealAir, 5e-3)
	assert.InDelta(t, 28.31, res.MixtureMolarMass, 0.02)
	assert.InDelta(t, 100.0, res.MoleFractions.Total(), 1e-9)

	// Temperatures.
	assert.InDelta(t, 847, res.OutletGasTemp, 20)
	assert.InDelta(t, 923, res.AdiabaticFlameTemp, 30)
	assert.Greater(t, res.AdiabaticFlameTemp, res.OutletGasTemp)

	// Duct flow.
	assert.InDelta(t, 3000.0/3600.0, res.FuelMassFlow, 1e-9)
	assert.InDelta(t, 6.605, res.GasMassFlow, 0.01)
	assert.InDelta(t, 12.3, res.Velocity, 1.0)
	assert.InDelta(t, 2.49e5, res.Reynolds, 1e4)
	assert.InDelta(t, 0.0166, res.FrictionFactor, 1e-3)
	assert.InDelta(t, 1.95, res.PressureDrop, 0.15)

	// Refractory.
	assert.InDelta(t, 5750, res.HeatLoss, 250)
	assert.InDelta(t, 186, res.WallTemperature, 10)
	assert.InDelta(t, 71.0, res.InsulationEfficiency, 1.0)

	// Energy accounting.
	assert.InDelta(t, 9472.5, res.TotalEnergy, 0.1)
	assert.InDelta(t, 8525.25, res.UsefulEnergy, 0.1)
	assert.InDelta(t, 947.25, res.ChimneyLosses, 0.1)
	assert.InDelta(t, 90.0, res.RealEfficiency, 1e-9)

	// Emissions.
	assert.InDelta(t, 1.196, res.CO2EmissionFactor, 5e-3)
	assert.InDelta(t, 24.45, res.CO2DryConcentration, 0.2)
}

func TestEvaluateZeroEfficiency(t *testing.T) {
	in := DefaultInput()
	in.Operating.FurnaceEfficiency = 0

	res, err := Evaluate(in, DefaultConfig())
	require.NoError(t, err)
	// No heat imparted to the gas: outlet stays at ambient.
	assert.InDelta(t, in.Ambient.DryBulbTemp, res.OutletGasTemp, 1e-9)
	assert.Zero(t, res.UsefulEnergy)
	assert.InDelta(t, res.TotalEnergy, res.ChimneyLosses, 1e-9)
}

func TestEvaluateNoReportedLHV(t *testing.T) {
	in := DefaultInput()
	in.Operating.ReportedLHV = 0

	res, err := Evaluate(in, DefaultConfig())
	require.NoError(t, err)
	assert.Zero(t, res.LHVDeviation)
	assert.False(t, res.LHVFlagged)
	// Energy accounting falls back to the computed LHV.
	assert.InDelta(t, res.FuelMassFlow*res.LHV, res.TotalEnergy, 1e-6)
}

func TestEvaluateDryBoundaries(t *testing.T) {
	in := DefaultInput()
	in.Fuel.Moisture = 0
	in.Ambient.RelativeHumidity = 0
	in.Operating.ExcessAir = 0

	res, err := Evaluate(in, DefaultConfig())
	require.NoError(t, err)
	assert.Zero(t, res.HumidityRatio)
	assert.InDelta(t, res.TheoreticalAir, res.RealAir, 1e-12)
	assert.InDelta(t, 0.0, res.MoleFractions.O2, 1e-9)
	// Dry fuel burns hotter.
	base, err := Evaluate(DefaultInput(), DefaultConfig())
	require.NoError(t, err)
	assert.Greater(t, res.OutletGasTemp, base.OutletGasTemp)
}

func TestEvaluateDeterministic(t *testing.T) {
	a, err := Evaluate(DefaultInput(), DefaultConfig())
	require.NoError(t, err)
	b, err := Evaluate(DefaultInput(), DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
