package energy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmltech/biofurnace/pkg/stoich"
)

func TestCpIntegral(t *testing.T) {
	// Constant Cp integrates to A * dT.
	p := CpPolynomial{A: 29.0}
	assert.InDelta(t, 29.0*200.0, p.Integral(300, 500), 1e-9)

	// Zero-width interval.
	full := DefaultGasCp().CO2
	assert.Zero(t, full.Integral(400, 400))
}

func TestEnthalpyAdditive(t *testing.T) {
	cp := DefaultGasCp()
	moles := stoich.Species{CO2: 0.02, H2O: 0.06, N2: 0.19, O2: 0.01, SO2: 1e-5}

	a := Enthalpy(moles, cp, 298.15, 700)
	b := Enthalpy(moles, cp, 700, 1100)
	whole := Enthalpy(moles, cp, 298.15, 1100)
	assert.InDelta(t, whole, a+b, 1e-9)
}

func TestSolveTemperatureSelfConsistent(t *testing.T) {
	cp := DefaultGasCp()
	moles := stoich.Species{N2: 1.0}
	q := Enthalpy(moles, cp, 298.15, 500)

	got, err := SolveTemperature(moles, q, 298.15, cp, DefaultSolverConfig())
	require.NoError(t, err)
	assert.InDelta(t, 500.0, got, 0.1)
}

func TestSolveTemperatureNoHeat(t *testing.T) {
	cp := DefaultGasCp()
	moles := stoich.Species{N2: 1.0}

	got, err := SolveTemperature(moles, 0, 287.15, cp, DefaultSolverConfig())
	require.NoError(t, err)
	assert.Equal(t, 287.15, got)

	got, err = SolveTemperature(moles, -500, 287.15, cp, DefaultSolverConfig())
	require.NoError(t, err)
	assert.Equal(t, 287.15, got)
}

func TestSolveTemperatureMonotonic(t *testing.T) {
	cp := DefaultGasCp()
	moles := stoich.Species{CO2: 0.04, H2O: 0.06, N2: 0.19, O2: 0.01}
	cfg := DefaultSolverConfig()

	prev := 288.15
	for _, q := range []float64{1000, 3000, 6000, 9000} {
		got, err := SolveTemperature(moles, q, 288.15, cp, cfg)
		require.NoError(t, err)
		assert.Greater(t, got, prev)
		prev = got
	}
}

func TestSolveTemperatureDeterministic(t *testing.T) {
	cp := DefaultGasCp()
	moles := stoich.Species{CO2: 0.04, H2O: 0.06, N2: 0.19, O2: 0.01}
	cfg := DefaultSolverConfig()

	a, err := SolveTemperature(moles, 8000, 288.15, cp, cfg)
	require.NoError(t, err)
	b, err := SolveTemperature(moles, 8000, 288.15, cp, cfg)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSolveTemperatureBracketTooLow(t *testing.T) {
	cp := DefaultGasCp()
	moles := stoich.Species{N2: 0.001}

	// A tiny gas stream cannot absorb this much heat below the bracket top.
	_, err := SolveTemperature(moles, 1e6, 288.15, cp, DefaultSolverConfig())
	require.Error(t, err)
	var convErr *ConvergenceError
	assert.True(t, errors.As(err, &convErr))
}

func TestSolveTemperatureIterationBudget(t *testing.T) {
	cp := DefaultGasCp()
	moles := stoich.Species{N2: 1.0}
	q := Enthalpy(moles, cp, 298.15, 1500)

	cfg := DefaultSolverConfig()
	cfg.MaxIterations = 2
	_, err := SolveTemperature(moles, q, 298.15, cp, cfg)
	require.Error(t, err)
	var convErr *ConvergenceError
	require.True(t, errors.As(err, &convErr))
	assert.Equal(t, 2, convErr.Iterations)
}
