// Package energy solves the flue-gas energy balance for a product
// temperature. The same bracketed root-finder serves the adiabatic flame
// temperature (full heat release) and the real outlet temperature (release
// scaled by the furnace efficiency).
package energy

import (
	"fmt"
	"math"

	"github.com/dmltech/biofurnace/pkg/stoich"
)

// CpPolynomial is an ideal-gas molar heat capacity correlation
// Cp(T) = A + B*T + C*T^2 + D*T^3 with T in kelvin and Cp in kJ/(kmol K).
type CpPolynomial struct {
	A, B, C, D float64
}

// Integral returns the enthalpy change per kmol between t0 and t1, kJ/kmol.
func (p CpPolynomial) Integral(t0, t1 float64) float64 {
	f := func(t float64) float64 {
		return p.A*t + p.B/2.0*t*t + p.C/3.0*t*t*t + p.D/4.0*t*t*t*t
	}
	return f(t1) - f(t0)
}

// GasCp bundles the per-species heat-capacity correlations.
type GasCp struct {
	CO2, H2O, N2, O2, SO2 CpPolynomial
}

// DefaultGasCp returns the standard ideal-gas polynomial set (Cengel & Boles
// form, valid roughly 273-1800 K). Treated as calibration data.
func DefaultGasCp() GasCp {
	return GasCp{
		CO2: CpPolynomial{A: 22.26, B: 5.981e-2, C: -3.501e-5, D: 7.469e-9},
		H2O: CpPolynomial{A: 32.24, B: 0.1923e-2, C: 1.055e-5, D: -3.595e-9},
		N2:  CpPolynomial{A: 28.90, B: -0.1571e-2, C: 0.8081e-5, D: -2.873e-9},
		O2:  CpPolynomial{A: 25.48, B: 1.520e-2, C: -0.7155e-5, D: 1.312e-9},
		SO2: CpPolynomial{A: 25.78, B: 5.795e-2, C: -3.812e-5, D: 8.612e-9},
	}
}

// SolverConfig bounds the bisection iteration.
type SolverConfig struct {
	Tolerance     float64 `ini:"tolerance"`      // residual, kJ/kg fuel
	MaxIterations int     `ini:"max_iterations"` // iteration budget
	BracketHigh   float64 `ini:"bracket_high"`   // upper temperature, K
}

// DefaultSolverConfig returns the standard solver bounds.
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{Tolerance: 1.0, MaxIterations: 100, BracketHigh: 3000.0}
}

// ConvergenceError reports that the energy-balance residual did not fall
// below tolerance within the iteration budget (or that the bracket cannot
// contain the solution). The unconverged value is never returned.
type ConvergenceError struct {
	Iterations int
	Residual   float64 // kJ/kg fuel
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("energy: no convergence after %d iterations (residual %.3f kJ/kg)", e.Iterations, e.Residual)
}

// Enthalpy returns the sensible heat absorbed by the flue gas between t0 and
// t1, kJ per kg of fuel, for the given species mole amounts (kmol per kg
// fuel).
func Enthalpy(moles stoich.Species, cp GasCp, t0, t1 float64) float64 {
	return moles.CO2*cp.CO2.Integral(t0, t1) +
		moles.H2O*cp.H2O.Integral(t0, t1) +
		moles.N2*cp.N2.Integral(t0, t1) +
		moles.O2*cp.O2.Integral(t0, t1) +
		moles.SO2*cp.SO2.Integral(t0, t1)
}

// SolveTemperature finds the product temperature T (kelvin) at which the
// sensible heat of the flue gas, referenced to ambientK, matches the
// available heat (kJ per kg fuel). A non-positive available heat returns the
// ambient temperature without iterating.
func SolveTemperature(moles stoich.Species, availableHeat, ambientK float64, cp GasCp, cfg SolverConfig) (float64, error) {
	if availableHeat <= 0 {
		return ambientK, nil
	}

	lo, hi := ambientK, cfg.BracketHigh
	if top := Enthalpy(moles, cp, ambientK, hi); top < availableHeat {
		return 0, &ConvergenceError{Iterations: 0, Residual: availableHeat - top}
	}

	mid := (lo + hi) / 2.0
	for i := 0; i < cfg.MaxIterations; i++ {
		mid = (lo + hi) / 2.0
		residual := Enthalpy(moles, cp, ambientK, mid) - availableHeat
		if math.Abs(residual) < cfg.Tolerance {
			return mid, nil
		}
		if residual < 0 {
			lo = mid
		} else {
			hi = mid
		}
	}

	residual := Enthalpy(moles, cp, ambientK, mid) - availableHeat
	return 0, &ConvergenceError{Iterations: cfg.MaxIterations, Residual: residual}
}
