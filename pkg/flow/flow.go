// Package flow characterizes the flue-gas duct: velocity, Reynolds number,
// friction, pressure drop and the refractory heat-loss network.
package flow

import (
	"fmt"
	"math"
)

// Config holds the duct and refractory calibration.
type Config struct {
	Roughness              float64 `ini:"roughness"`               // absolute, m, refractory lining
	RefractoryConductivity float64 `ini:"refractory_conductivity"` // W/(m K)
	RefractoryThickness    float64 `ini:"refractory_thickness"`    // m
	InternalFilm           float64 `ini:"internal_film"`           // forced convection, W/(m2 K)
	ExternalFilm           float64 `ini:"external_film"`           // natural convection + radiation, W/(m2 K)

	// Sutherland viscosity correlation.
	SutherlandViscosity float64 `ini:"sutherland_viscosity"` // Pa s at SutherlandTemp
	SutherlandTemp      float64 `ini:"sutherland_temp"`      // K
	SutherlandConstant  float64 `ini:"sutherland_constant"`  // K

	// Duct-rating state at which volumetric flow, velocity and pressure
	// drop are evaluated. See DESIGN.md for the choice of this state.
	ReferencePressure    float64 `ini:"reference_pressure"`    // kPa
	ReferenceTemperature float64 `ini:"reference_temperature"` // K

	LaminarLimit         float64 `ini:"laminar_limit"`          // Reynolds number
	UniversalGasConstant float64 `ini:"universal_gas_constant"` // J/(kmol K)
}

// DefaultConfig returns the refractory-lined duct calibration.
func DefaultConfig() Config {
	return Config{
		Roughness:              0.00015,
		RefractoryConductivity: 0.5,
		RefractoryThickness:    0.15,
		InternalFilm:           50.0,
		ExternalFilm:           10.0,
		SutherlandViscosity:    1.716e-5,
		SutherlandTemp:         273.15,
		SutherlandConstant:     110.4,
		ReferencePressure:      101.325,
		ReferenceTemperature:   293.15,
		LaminarLimit:           2300.0,
		UniversalGasConstant:   8314.0,
	}
}

// Result is the fluid-flow and heat-loss characterization of the duct.
type Result struct {
	GasDensity       float64 // at the duct-rating state, kg/m3
	OutletGasDensity float64 // at outlet temperature and local pressure, kg/m3
	VolumetricFlow   float64 // m3/s at the rating state
	DuctArea         float64 // m2
	Velocity         float64 // m/s
	Viscosity        float64 // Pa s, at outlet temperature
	Reynolds         float64
	FrictionFactor   float64 // Darcy
	PressureDrop     float64 // Pa per m of duct

	ThermalResistance    float64 // K m/W per unit length
	HeatTransferCoeff    float64 // W/(m K) per unit length
	HeatLoss             float64 // W per m of duct
	WallTemperature      float64 // external surface, deg C
	RefractoryGradient   float64 // temperature drop across the lining, K
	InsulationEfficiency float64 // percent, versus a bare duct
}

// InvalidGeometryError reports a non-positive duct dimension.
type InvalidGeometryError struct {
	Diameter float64
}

func (e *InvalidGeometryError) Error() string {
	return fmt.Sprintf("flow: invalid duct diameter %g m", e.Diameter)
}

// Viscosity returns the dynamic viscosity of the flue gas at the given
// temperature from the Sutherland correlation, Pa s.
func Viscosity(tK float64, c Config) float64 {
	return c.SutherlandViscosity *
		math.Pow(tK/c.SutherlandTemp, 1.5) *
		(c.SutherlandTemp + c.SutherlandConstant) / (tK + c.SutherlandConstant)
}

// FrictionFactor returns the Darcy friction factor: 64/Re below the laminar
// limit, the explicit Swamee-Jain correlation above it.
func FrictionFactor(re, relativeRoughness float64, c Config) float64 {
	if re < c.LaminarLimit {
		return 64.0 / re
	}
	return 0.25 / math.Pow(math.Log10(relativeRoughness/3.7+5.74/math.Pow(re, 0.9)), 2)
}

// Compute characterizes the duct for the given gas mass flow (kg/s), mixture
// molar mass (kg/kmol), outlet and ambient temperatures (deg C), local
// atmospheric pressure (kPa) and internal diameter (m).
func Compute(massFlow, mixtureMolarMass, outletC, ambientC, localPressureKPa, diameter float64, c Config) (Result, error) {
	if diameter <= 0 {
		return Result{}, &InvalidGeometryError{Diameter: diameter}
	}

	outletK := outletC + 273.15
	rho := c.ReferencePressure * 1000.0 * mixtureMolarMass / (c.UniversalGasConstant * c.ReferenceTemperature)
	rhoOutlet := localPressureKPa * 1000.0 * mixtureMolarMass / (c.UniversalGasConstant * outletK)

	area := math.Pi * diameter * diameter / 4.0
	vol := massFlow / rho
	v := vol / area

	mu := Viscosity(outletK, c)
	re := rho * v * diameter / mu
	f := FrictionFactor(re, c.Roughness/diameter, c)
	dp := f / diameter * rho * v * v / 2.0

	// Series resistance network per unit duct length: internal film,
	// refractory wall, external film.
	outer := diameter + 2.0*c.RefractoryThickness
	rInt := 1.0 / (c.InternalFilm * math.Pi * diameter)
	rWall := math.Log(outer/diameter) / (2.0 * math.Pi * c.RefractoryConductivity)
	rExt := 1.0 / (c.ExternalFilm * math.Pi * outer)
	rTotal := rInt + rWall + rExt

	u := 1.0 / rTotal
	deltaT := outletC - ambientC
	q := u * deltaT
	wall := ambientC + q*rExt
	gradient := q * rWall

	insulation := 0.0
	if qBare := c.ExternalFilm * math.Pi * diameter * deltaT; qBare > 0 {
		insulation = (qBare - q) / qBare * 100.0
	}

	return Result{
		GasDensity:           rho,
		OutletGasDensity:     rhoOutlet,
		VolumetricFlow:       vol,
		DuctArea:             area,
		Velocity:             v,
		Viscosity:            mu,
		Reynolds:             re,
		FrictionFactor:       f,
		PressureDrop:         dp,
		ThermalResistance:    rTotal,
		HeatTransferCoeff:    u,
		HeatLoss:             q,
		WallTemperature:      wall,
		RefractoryGradient:   gradient,
		InsulationEfficiency: insulation,
	}, nil
}
