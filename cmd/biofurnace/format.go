package main

import (
	"fmt"

	"github.com/dmltech/biofurnace/pkg/engine"
	"github.com/dmltech/biofurnace/pkg/fuel"
	"github.com/dmltech/biofurnace/pkg/sensitivity"
)

func printResult(in engine.Input, r *engine.CombustionResult) {
	fmt.Println("Combustion Evaluation")
	fmt.Println("=====================")
	fmt.Println()

	fmt.Println("Site")
	fmt.Println("----")
	if in.Ambient.City != "" {
		fmt.Printf("  Location:               %s\n", in.Ambient.City)
	}
	fmt.Printf("  Altitude:               %.0f m\n", in.Ambient.Altitude)
	fmt.Printf("  Atmospheric pressure:   %.2f kPa\n", r.AtmosphericPressure)
	fmt.Printf("  Dry bulb / RH:          %.1f degC / %.0f %%\n", in.Ambient.DryBulbTemp, in.Ambient.RelativeHumidity)
	fmt.Printf("  Humidity ratio:         %.5f kg/kg dry air\n", r.HumidityRatio)
	fmt.Printf("  Air density:            %.3f kg/m3\n", r.AirDensity)
	fmt.Printf("  Air enthalpy:           %.2f kJ/kg dry air\n", r.AirEnthalpy)
	fmt.Println()

	fmt.Println("Fuel")
	fmt.Println("----")
	fmt.Printf("  HHV (as-fired):         %.0f kJ/kg\n", r.HHV)
	fmt.Printf("  LHV (as-fired):         %.0f kJ/kg\n", r.LHV)
	fmt.Printf("  Combustion water:       %.4f kg/kg fuel\n", r.CombustionWater)
	if in.Operating.ReportedLHV > 0 {
		flag := ""
		if r.LHVFlagged {
			flag = "  << CHECK"
		}
		fmt.Printf("  LHV deviation:          %+.2f %% vs reported %.0f kJ/kg%s\n",
			r.LHVDeviation, in.Operating.ReportedLHV, flag)
	}
	fmt.Println()

	fmt.Println("Combustion")
	fmt.Println("----------")
	fmt.Printf("  Theoretical air:        %.3f kg/kg dry fuel\n", r.TheoreticalAir)
	fmt.Printf("  Real air (%.0f%% excess): %.3f kg/kg dry fuel\n", in.Operating.ExcessAir, r.RealAir)
	fmt.Printf("  Adiabatic flame temp:   %.1f degC\n", r.AdiabaticFlameTemp)
	fmt.Printf("  Outlet gas temp:        %.1f degC\n", r.OutletGasTemp)
	fmt.Println()

	fmt.Println("Flue gas (vol %)")
	fmt.Println("----------------")
	fmt.Printf("  CO2 %6.2f   H2O %6.2f   SO2 %6.3f   O2 %6.2f   N2 %6.2f\n",
		r.MoleFractions.CO2, r.MoleFractions.H2O, r.MoleFractions.SO2,
		r.MoleFractions.O2, r.MoleFractions.N2)
	fmt.Printf("  Mixture molar mass:     %.2f kg/kmol\n", r.MixtureMolarMass)
	fmt.Println()

	fmt.Println("Duct")
	fmt.Println("----")
	fmt.Printf("  Gas mass flow:          %.3f kg/s\n", r.GasMassFlow)
	fmt.Printf("  Volumetric flow:        %.3f m3/s\n", r.VolumetricFlow)
	fmt.Printf("  Velocity:               %.2f m/s\n", r.Velocity)
	fmt.Printf("  Reynolds number:        %.3e\n", r.Reynolds)
	fmt.Printf("  Friction factor:        %.5f\n", r.FrictionFactor)
	fmt.Printf("  Pressure drop:          %.3f Pa/m\n", r.PressureDrop)
	fmt.Println()

	fmt.Println("Refractory")
	fmt.Println("----------")
	fmt.Printf("  Heat loss:              %.0f W/m\n", r.HeatLoss)
	fmt.Printf("  Wall temperature:       %.1f degC\n", r.WallTemperature)
	fmt.Printf("  Lining gradient:        %.0f K\n", r.RefractoryGradient)
	fmt.Printf("  Insulation efficiency:  %.1f %%\n", r.InsulationEfficiency)
	fmt.Println()

	fmt.Println("Energy")
	fmt.Println("------")
	fmt.Printf("  Total input:            %.1f kW\n", r.TotalEnergy)
	fmt.Printf("  Useful:                 %.1f kW\n", r.UsefulEnergy)
	fmt.Printf("  Chimney losses:         %.1f kW\n", r.ChimneyLosses)
	fmt.Printf("  Efficiency:             %.1f %%\n", r.RealEfficiency)
	fmt.Println()

	fmt.Println("Emissions")
	fmt.Println("---------")
	fmt.Printf("  CO2 factor:             %.4f kg/kg fuel\n", r.CO2EmissionFactor)
	fmt.Printf("  CO2 in dry gas:         %.2f mass %%\n", r.CO2DryConcentration)
}

func printSweep(r *sensitivity.Result) {
	fmt.Printf("Sweep: %s (base %.4g)\n", r.Parameter, r.BaseValue)
	fmt.Println()
	fmt.Printf("%12s %12s %10s %12s %12s\n", "value", "outlet degC", "m/s", "Pa/m", "insul %")
	for i, v := range r.Values {
		fmt.Printf("%12.4g %12.1f %10.2f %12.3f %12.1f\n",
			v, r.Temperatures[i], r.Velocities[i], r.PressureDrops[i], r.Efficiencies[i])
	}
	fmt.Println()
	if len(r.Skipped) > 0 {
		fmt.Printf("Skipped points: %d\n", len(r.Skipped))
	}
	fmt.Println("Sensitivity indices (output span, % of base):")
	for _, name := range []string{"outlet_gas_temp", "velocity", "pressure_drop", "insulation_efficiency"} {
		fmt.Printf("  %-22s %8.2f\n", name, r.Indices[name])
	}
}

func printRanking(ranked []sensitivity.Ranking) {
	fmt.Println("Parameter influence ranking")
	fmt.Println("---------------------------")
	for i, rk := range ranked {
		fmt.Printf("%3d. %-20s %8.2f\n", i+1, rk.Parameter, rk.MaxIndex)
	}
}

func printPresets(presets []fuel.Preset) {
	fmt.Printf("%-22s %6s %5s %6s %5s %5s %5s %6s\n",
		"Name", "C", "H", "O", "N", "S", "Ash", "Moist")
	for _, p := range presets {
		fmt.Printf("%-22s %6.2f %5.2f %6.2f %5.2f %5.2f %5.2f %6.2f\n",
			p.Name, p.Carbon, p.Hydrogen, p.Oxygen, p.Nitrogen, p.Sulfur, p.Ash, p.Moisture)
	}
}
