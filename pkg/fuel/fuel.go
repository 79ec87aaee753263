// Package fuel defines the biomass fuel composition record, its validation
// rules and a table of typical biomass analyses.
package fuel

import "fmt"

// SumTolerance is the allowed deviation of the six dry-basis fractions from
// 100 percent.
const SumTolerance = 0.5

// Composition is the elemental analysis of a biomass fuel. The six elemental
// fields are mass percent on the dry basis; Moisture is the total moisture as
// a percent of the as-fired mass. A Composition is treated as immutable once
// validated.
type Composition struct {
	Carbon   float64 `json:"carbon"`
	Hydrogen float64 `json:"hydrogen"`
	Oxygen   float64 `json:"oxygen"`
	Nitrogen float64 `json:"nitrogen"`
	Sulfur   float64 `json:"sulfur"`
	Ash      float64 `json:"ash"`
	Moisture float64 `json:"moisture"`
}

// ValidationError reports a composition field that breaks an input
// invariant.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("fuel: invalid %s: %s", e.Field, e.Reason)
}

// DrySum returns the sum of the six dry-basis fractions, percent.
func (c Composition) DrySum() float64 {
	return c.Carbon + c.Hydrogen + c.Oxygen + c.Nitrogen + c.Sulfur + c.Ash
}

// DryMassFraction returns the dry mass per kg of as-fired fuel.
func (c Composition) DryMassFraction() float64 {
	return (100.0 - c.Moisture) / 100.0
}

// MoisturePerKgDry returns the fuel moisture referred to the dry basis,
// kg water per kg dry fuel.
func (c Composition) MoisturePerKgDry() float64 {
	return c.Moisture / (100.0 - c.Moisture)
}

// Normalized returns a copy whose dry-basis fractions are rescaled to sum to
// exactly 100. Moisture is unchanged.
func (c Composition) Normalized() Composition {
	sum := c.DrySum()
	if sum == 0 {
		return c
	}
	k := 100.0 / sum
	return Composition{
		Carbon:   c.Carbon * k,
		Hydrogen: c.Hydrogen * k,
		Oxygen:   c.Oxygen * k,
		Nitrogen: c.Nitrogen * k,
		Sulfur:   c.Sulfur * k,
		Ash:      c.Ash * k,
		Moisture: c.Moisture,
	}
}

// Validate checks the composition invariants: non-negative fractions, the
// dry-basis sum within SumTolerance of 100, and moisture in [0, 100).
func (c Composition) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"carbon", c.Carbon},
		{"hydrogen", c.Hydrogen},
		{"oxygen", c.Oxygen},
		{"nitrogen", c.Nitrogen},
		{"sulfur", c.Sulfur},
		{"ash", c.Ash},
	}
	for _, f := range fields {
		if f.value < 0 || f.value > 100 {
			return &ValidationError{Field: f.name, Reason: fmt.Sprintf("%g outside [0, 100]", f.value)}
		}
	}
	if sum := c.DrySum(); sum < 100.0-SumTolerance || sum > 100.0+SumTolerance {
		return &ValidationError{
			Field:  "composition",
			Reason: fmt.Sprintf("dry-basis fractions sum to %.3f, expected 100 +/- %.1f", sum, SumTolerance),
		}
	}
	if c.Moisture < 0 || c.Moisture >= 100 {
		return &ValidationError{Field: "moisture", Reason: fmt.Sprintf("%g outside [0, 100)", c.Moisture)}
	}
	return nil
}
