// Package engine composes the psychrometric, stoichiometric, heating-value,
// energy-balance and duct-flow modules into a single pure evaluation:
// validated input record in, combustion result record out.
package engine

import (
	"fmt"

	"github.com/dmltech/biofurnace/pkg/energy"
	"github.com/dmltech/biofurnace/pkg/flow"
	"github.com/dmltech/biofurnace/pkg/fuel"
	"github.com/dmltech/biofurnace/pkg/heating"
	"github.com/dmltech/biofurnace/pkg/psychro"
	"github.com/dmltech/biofurnace/pkg/stoich"
)

// Unit conversions.
const (
	KelvinOffset   = 273.15
	InchToMeter    = 0.0254
	SecondsPerHour = 3600.0
)

// AmbientConditions locates the furnace site. City is a label only; the
// physical state derives from altitude, temperature and humidity.
type AmbientConditions struct {
	City             string  `json:"city"`
	Altitude         float64 `json:"altitude"`          // m above sea level
	DryBulbTemp      float64 `json:"dry_bulb_temp"`     // deg C
	RelativeHumidity float64 `json:"relative_humidity"` // percent
}

// OperatingParameters describe the firing point of the furnace.
type OperatingParameters struct {
	FuelFlow          float64 `json:"fuel_flow"`          // kg/h as-fired
	ReportedLHV       float64 `json:"reported_lhv"`       // kJ/kg, 0 disables the cross-check
	FurnaceEfficiency float64 `json:"furnace_efficiency"` // percent
	ExcessAir         float64 `json:"excess_air"`         // percent of theoretical air
	DuctDiameter      float64 `json:"duct_diameter"`      // inches, internal
}

// Input is the validated record the pipeline evaluates.
type Input struct {
	Fuel      fuel.Composition    `json:"fuel"`
	Ambient   AmbientConditions   `json:"ambient"`
	Operating OperatingParameters `json:"operating"`
}

// DefaultInput returns the reference operating point: sugarcane bagasse
// fired at highland conditions. Callers always get a fresh copy; the engine
// keeps no package-level state.
func DefaultInput() Input {
	return Input{
		Fuel: fuel.Composition{
			Carbon: 50.29, Hydrogen: 5.82, Oxygen: 42.94,
			Nitrogen: 0.22, Sulfur: 0.08, Ash: 0.66,
			Moisture: 35.09,
		},
		Ambient: AmbientConditions{
			City:             "Bogota",
			Altitude:         2640,
			DryBulbTemp:      14,
			RelativeHumidity: 70,
		},
		Operating: OperatingParameters{
			FuelFlow:          3000,
			ReportedLHV:       11367,
			FurnaceEfficiency: 90,
			ExcessAir:         30,
			DuctDiameter:      30,
		},
	}
}

// ValidationError reports an operating parameter outside its allowed range.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("engine: invalid %s: %s", e.Field, e.Reason)
}

// Validate checks the input invariants that are not owned by a downstream
// module. Efficiency 0 is accepted: it is the no-heat-imparted edge case,
// not an error.
func (in Input) Validate() error {
	if err := in.Fuel.Validate(); err != nil {
		return err
	}
	op := in.Operating
	if op.FuelFlow <= 0 {
		return &ValidationError{Field: "fuel_flow", Reason: fmt.Sprintf("%g must be positive", op.FuelFlow)}
	}
	if op.FurnaceEfficiency < 0 || op.FurnaceEfficiency > 100 {
		return &ValidationError{Field: "furnace_efficiency", Reason: fmt.Sprintf("%g outside [0, 100]", op.FurnaceEfficiency)}
	}
	if op.ExcessAir < 0 {
		return &ValidationError{Field: "excess_air", Reason: fmt.Sprintf("%g must not be negative", op.ExcessAir)}
	}
	if op.ReportedLHV < 0 {
		return &ValidationError{Field: "reported_lhv", Reason: fmt.Sprintf("%g must not be negative", op.ReportedLHV)}
	}
	return nil
}

// CombustionResult is the full output record of one evaluation. It is
// produced fresh by Evaluate and never mutated afterwards.
type CombustionResult struct {
	// Heating values, as-fired basis.
	HHV             float64 `json:"hhv"`              // kJ/kg
	LHV             float64 `json:"lhv"`              // kJ/kg, computed
	CombustionWater float64 `json:"combustion_water"` // kg/kg fuel
	LHVDeviation    float64 `json:"lhv_deviation"`    // percent vs reported
	LHVFlagged      bool    `json:"lhv_flagged"`

	// Combustion air.
	AtmosphericPressure float64 `json:"atmospheric_pressure"` // kPa
	HumidityRatio       float64 `json:"humidity_ratio"`       // kg/kg dry air
	AirDensity          float64 `json:"air_density"`          // kg/m3
	AirEnthalpy         float64 `json:"air_enthalpy"`         // kJ/kg dry air
	TheoreticalAir      float64 `json:"theoretical_air"`      // kg/kg dry fuel
	RealAir             float64 `json:"real_air"`             // kg/kg dry fuel

	// Flue-gas composition.
	MoleFractions    stoich.Species `json:"mole_fractions"` // volumetric percent
	MassFractions    stoich.Species `json:"mass_fractions"` // mass percent
	MixtureMolarMass float64        `json:"mixture_molar_mass"`

	// Temperatures, deg C.
	AdiabaticFlameTemp float64 `json:"adiabatic_flame_temp"`
	OutletGasTemp      float64 `json:"outlet_gas_temp"`

	// Duct flow.
	FuelMassFlow     float64 `json:"fuel_mass_flow"` // kg/s
	GasMassFlow      float64 `json:"gas_mass_flow"`  // kg/s
	GasDensity       float64 `json:"gas_density"`    // kg/m3, duct-rating state
	OutletGasDensity float64 `json:"outlet_gas_density"`
	VolumetricFlow   float64 `json:"volumetric_flow"` // m3/s
	DuctArea         float64 `json:"duct_area"`       // m2
	Velocity         float64 `json:"velocity"`        // m/s
	Reynolds         float64 `json:"reynolds"`
	FrictionFactor   float64 `json:"friction_factor"`
	PressureDrop     float64 `json:"pressure_drop"` // Pa/m

	// Refractory losses.
	HeatLoss             float64 `json:"heat_loss"`        // W/m
	WallTemperature      float64 `json:"wall_temperature"` // deg C
	RefractoryGradient   float64 `json:"refractory_gradient"`
	InsulationEfficiency float64 `json:"insulation_efficiency"` // percent

	// Energy accounting.
	TotalEnergy    float64 `json:"total_energy"`    // kW
	UsefulEnergy   float64 `json:"useful_energy"`   // kW
	ChimneyLosses  float64 `json:"chimney_losses"`  // kW
	RealEfficiency float64 `json:"real_efficiency"` // percent

	// Emissions.
	CO2EmissionFactor   float64 `json:"co2_emission_factor"`   // kg CO2/kg fuel
	CO2DryConcentration float64 `json:"co2_dry_concentration"` // mass percent of dry gas
}

// Evaluate runs the full calculation pipeline for one operating point. It is
// a pure function: identical inputs yield identical results, and no state is
// shared between calls.
func Evaluate(in Input, cfg Config) (*CombustionResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	air, err := psychro.Solve(in.Ambient.Altitude, in.Ambient.DryBulbTemp, in.Ambient.RelativeHumidity, cfg.Psychro)
	if err != nil {
		return nil, err
	}

	bal, err := stoich.Compute(in.Fuel, in.Operating.ExcessAir, air.HumidityRatio, cfg.Stoich)
	if err != nil {
		return nil, err
	}

	hv := heating.Compute(in.Fuel, in.Operating.ReportedLHV, cfg.Heating)

	ambientK := in.Ambient.DryBulbTemp + KelvinOffset
	flameK, err := energy.SolveTemperature(bal.Moles, hv.LHV, ambientK, cfg.Cp, cfg.Solver)
	if err != nil {
		return nil, err
	}
	outletK, err := energy.SolveTemperature(bal.Moles, hv.LHV*in.Operating.FurnaceEfficiency/100.0, ambientK, cfg.Cp, cfg.Solver)
	if err != nil {
		return nil, err
	}

	fuelFlow := in.Operating.FuelFlow / SecondsPerHour
	gasFlow := fuelFlow * (1.0 + bal.RealAir)
	diameter := in.Operating.DuctDiameter * InchToMeter

	duct, err := flow.Compute(gasFlow, bal.MixtureMolarMass, outletK-KelvinOffset, in.Ambient.DryBulbTemp, air.Pressure, diameter, cfg.Flow)
	if err != nil {
		return nil, err
	}

	reference := in.Operating.ReportedLHV
	if reference <= 0 {
		reference = hv.LHV
	}
	total := fuelFlow * reference
	useful := total * in.Operating.FurnaceEfficiency / 100.0

	dryGas := bal.TotalMass - bal.Masses.H2O

	return &CombustionResult{
		HHV:             hv.HHV,
		LHV:             hv.LHV,
		CombustionWater: hv.CombustionWater,
		LHVDeviation:    hv.Deviation,
		LHVFlagged:      hv.Flagged,

		AtmosphericPressure: air.Pressure,
		HumidityRatio:       air.HumidityRatio,
		AirDensity:          air.AirDensity,
		AirEnthalpy:         air.AirEnthalpy,
		TheoreticalAir:      bal.TheoreticalAir,
		RealAir:             bal.RealAir,

		MoleFractions:    bal.MoleFractions,
		MassFractions:    bal.MassFractions,
		MixtureMolarMass: bal.MixtureMolarMass,

		AdiabaticFlameTemp: flameK - KelvinOffset,
		OutletGasTemp:      outletK - KelvinOffset,

		FuelMassFlow:     fuelFlow,
		GasMassFlow:      gasFlow,
		GasDensity:       duct.GasDensity,
		OutletGasDensity: duct.OutletGasDensity,
		VolumetricFlow:   duct.VolumetricFlow,
		DuctArea:         duct.DuctArea,
		Velocity:         duct.Velocity,
		Reynolds:         duct.Reynolds,
		FrictionFactor:   duct.FrictionFactor,
		PressureDrop:     duct.PressureDrop,

		HeatLoss:             duct.HeatLoss,
		WallTemperature:      duct.WallTemperature,
		RefractoryGradient:   duct.RefractoryGradient,
		InsulationEfficiency: duct.InsulationEfficiency,

		TotalEnergy:    total,
		UsefulEnergy:   useful,
		ChimneyLosses:  total - useful,
		RealEfficiency: in.Operating.FurnaceEfficiency,

		CO2EmissionFactor:   bal.Masses.CO2 * in.Fuel.DryMassFraction(),
		CO2DryConcentration: bal.Masses.CO2 / dryGas * 100.0,
	}, nil
}
