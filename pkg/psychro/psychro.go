// Package psychro derives the properties of combustion air from altitude,
// dry-bulb temperature and relative humidity.
package psychro

import (
	"fmt"
	"math"
)

// Constants holds the atmospheric and vapor-pressure calibration used by the
// correlations in this package. Obtain a baseline with DefaultConstants and
// override individual fields as needed.
type Constants struct {
	SeaLevelPressure float64 `ini:"sea_level_pressure"` // kPa
	LapseRate        float64 `ini:"lapse_rate"`         // K/m, tropospheric
	StandardTemp     float64 `ini:"standard_temp"`      // K, at sea level
	Gravity          float64 `ini:"gravity"`            // m/s2
	AirMolarMass     float64 `ini:"air_molar_mass"`     // kg/mol
	GasConstant      float64 `ini:"gas_constant"`       // J/(mol K)
	DryAirConstant   float64 `ini:"dry_air_constant"`   // J/(kg K)

	// Antoine coefficients for water. The correlation yields mmHg with
	// temperature in degrees Celsius; MmHgToKPa converts the result.
	AntoineA  float64 `ini:"antoine_a"`
	AntoineB  float64 `ini:"antoine_b"`
	AntoineC  float64 `ini:"antoine_c"`
	MmHgToKPa float64 `ini:"mmhg_to_kpa"`

	// MolarMassRatio is the water-to-dry-air molar mass ratio (0.622).
	MolarMassRatio float64 `ini:"molar_mass_ratio"`

	// Moist-air enthalpy coefficients, kJ/(kg K) and kJ/kg.
	DryAirCp    float64 `ini:"dry_air_cp"`
	VaporCp     float64 `ini:"vapor_cp"`
	VaporLatent float64 `ini:"vapor_latent"`
}

// DefaultConstants returns the standard-atmosphere calibration.
func DefaultConstants() Constants {
	return Constants{
		SeaLevelPressure: 101.325,
		LapseRate:        0.0065,
		StandardTemp:     288.15,
		Gravity:          9.81,
		AirMolarMass:     0.02896,
		GasConstant:      8.314,
		DryAirConstant:   287.05,
		AntoineA:         8.07131,
		AntoineB:         1730.63,
		AntoineC:         233.426,
		MmHgToKPa:        0.133322,
		MolarMassRatio:   0.622,
		DryAirCp:         1.006,
		VaporCp:          1.86,
		VaporLatent:      2501.0,
	}
}

// State is the resolved psychrometric condition of the combustion air.
type State struct {
	Pressure           float64 // local atmospheric pressure, kPa
	SaturationPressure float64 // saturation vapor pressure at dry bulb, kPa
	VaporPressure      float64 // actual vapor pressure, kPa
	HumidityRatio      float64 // kg water per kg dry air
	AirDensity         float64 // dry-air density at local conditions, kg/m3
	AirEnthalpy        float64 // moist-air enthalpy, kJ/kg dry air
}

// InvalidAmbientInputError reports an ambient input outside its physical
// range.
type InvalidAmbientInputError struct {
	Field string
	Value float64
}

func (e *InvalidAmbientInputError) Error() string {
	return fmt.Sprintf("psychro: %s out of range: %g", e.Field, e.Value)
}

// AtmosphericPressure returns the local pressure at the given altitude in
// kPa, from the standard barometric formula.
func AtmosphericPressure(altitude float64, c Constants) float64 {
	exponent := c.Gravity * c.AirMolarMass / (c.GasConstant * c.LapseRate)
	ratio := 1.0 - c.LapseRate*altitude/c.StandardTemp
	return c.SeaLevelPressure * math.Pow(ratio, exponent)
}

// SaturationPressure returns the saturation vapor pressure of water at the
// given dry-bulb temperature in kPa, from the Antoine correlation.
func SaturationPressure(dryBulbC float64, c Constants) float64 {
	log10p := c.AntoineA - c.AntoineB/(c.AntoineC+dryBulbC)
	return math.Pow(10.0, log10p) * c.MmHgToKPa
}

// Solve resolves the full psychrometric state for the given altitude (m),
// dry-bulb temperature (deg C) and relative humidity (percent).
func Solve(altitude, dryBulbC, relHumidity float64, c Constants) (State, error) {
	if relHumidity < 0 || relHumidity > 100 {
		return State{}, &InvalidAmbientInputError{Field: "relative humidity", Value: relHumidity}
	}
	if dryBulbC < -273.15 {
		return State{}, &InvalidAmbientInputError{Field: "dry-bulb temperature", Value: dryBulbC}
	}

	p := AtmosphericPressure(altitude, c)
	ps := SaturationPressure(dryBulbC, c)
	pv := relHumidity / 100.0 * ps
	w := c.MolarMassRatio * pv / (p - pv)

	tK := dryBulbC + 273.15
	rho := p * 1000.0 / (c.DryAirConstant * tK)
	h := c.DryAirCp*dryBulbC + w*(c.VaporLatent+c.VaporCp*dryBulbC)

	return State{
		Pressure:           p,
		SaturationPressure: ps,
		VaporPressure:      pv,
		HumidityRatio:      w,
		AirDensity:         rho,
		AirEnthalpy:        h,
	}, nil
}
