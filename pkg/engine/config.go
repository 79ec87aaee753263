package engine

import (
	"fmt"

	"gopkg.in/ini.v1"

	"github.com/dmltech/biofurnace/pkg/energy"
	"github.com/dmltech/biofurnace/pkg/flow"
	"github.com/dmltech/biofurnace/pkg/heating"
	"github.com/dmltech/biofurnace/pkg/psychro"
	"github.com/dmltech/biofurnace/pkg/stoich"
)

// Config collects the calibration of every stage of the pipeline.
type Config struct {
	Psychro psychro.Constants
	Stoich  stoich.Coefficients
	Heating heating.Coefficients
	Cp      energy.GasCp
	Solver  energy.SolverConfig
	Flow    flow.Config
}

// DefaultConfig returns the reference calibration for all stages.
func DefaultConfig() Config {
	return Config{
		Psychro: psychro.DefaultConstants(),
		Stoich:  stoich.DefaultCoefficients(),
		Heating: heating.DefaultCoefficients(),
		Cp:      energy.DefaultGasCp(),
		Solver:  energy.DefaultSolverConfig(),
		Flow:    flow.DefaultConfig(),
	}
}

// LoadConfig overlays calibration overrides from an INI file onto the
// defaults. Sections and keys not present in the file keep their default
// values, so a file overriding a single constant is valid.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := ini.Load(path)
	if err != nil {
		return Config{}, fmt.Errorf("engine: load config %s: %w", path, err)
	}

	sections := map[string]interface{}{
		"psychrometrics": &cfg.Psychro,
		"stoichiometry":  &cfg.Stoich,
		"heating":        &cfg.Heating,
		"solver":         &cfg.Solver,
		"flow":           &cfg.Flow,
	}
	for name, target := range sections {
		if sec, err := f.GetSection(name); err == nil {
			if err := sec.MapTo(target); err != nil {
				return Config{}, fmt.Errorf("engine: config section [%s]: %w", name, err)
			}
		}
	}
	return cfg, nil
}
