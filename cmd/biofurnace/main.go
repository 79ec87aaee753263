package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dmltech/biofurnace/pkg/engine"
	"github.com/dmltech/biofurnace/pkg/fuel"
	"github.com/dmltech/biofurnace/pkg/sensitivity"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	rootCmd := &cobra.Command{
		Use:          "biofurnace",
		Short:        "Biomass furnace combustion and duct-flow calculator",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(sweepCmd())
	rootCmd.AddCommand(rankCmd())
	rootCmd.AddCommand(presetsCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	var inputPath, configPath string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate one operating point",
		RunE: func(_ *cobra.Command, _ []string) error {
			in, cfg, err := loadSetup(inputPath, configPath)
			if err != nil {
				return err
			}
			res, err := engine.Evaluate(in, cfg)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(res)
			}
			printResult(in, res)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "JSON input file (omitted fields keep their defaults)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "INI calibration overrides")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the full result record as JSON")
	return cmd
}

func sweepCmd() *cobra.Command {
	var inputPath, configPath, parameter string
	var rangePct float64
	var points, workers int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Sweep one parameter and report output sensitivities",
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, cfg, err := loadSetup(inputPath, configPath)
			if err != nil {
				return err
			}
			res, err := sensitivity.Sweep(cmd.Context(), in, sensitivity.Request{
				Parameter:    parameter,
				RangePercent: rangePct,
				Points:       points,
				Workers:      workers,
			}, cfg)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(res)
			}
			printSweep(res)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "JSON input file")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "INI calibration overrides")
	cmd.Flags().StringVarP(&parameter, "parameter", "p", "", "parameter to sweep: "+strings.Join(sensitivity.Parameters(), ", "))
	cmd.Flags().Float64VarP(&rangePct, "range", "r", 20, "total sweep span, percent of the base value")
	cmd.Flags().IntVarP(&points, "points", "n", 21, "grid size")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "worker goroutines (0 = number of CPUs)")
	cobra.CheckErr(cmd.MarkFlagRequired("parameter"))
	return cmd
}

func rankCmd() *cobra.Command {
	var inputPath, configPath, parameters string
	var rangePct float64
	var points int

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank parameters by how strongly the outputs respond",
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, cfg, err := loadSetup(inputPath, configPath)
			if err != nil {
				return err
			}
			names := sensitivity.Parameters()
			if parameters != "" {
				names = strings.Split(parameters, ",")
				for i := range names {
					names[i] = strings.TrimSpace(names[i])
				}
			}
			ranked, err := sensitivity.Rank(cmd.Context(), in, names, rangePct, points, cfg)
			if err != nil {
				return err
			}
			printRanking(ranked)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "JSON input file")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "INI calibration overrides")
	cmd.Flags().StringVar(&parameters, "parameters", "", "comma-separated parameter names (default: all)")
	cmd.Flags().Float64VarP(&rangePct, "range", "r", 20, "total sweep span, percent of each base value")
	cmd.Flags().IntVarP(&points, "points", "n", 21, "grid size per parameter")
	return cmd
}

func presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the built-in fuel compositions",
		RunE: func(_ *cobra.Command, _ []string) error {
			presets, err := fuel.Presets()
			if err != nil {
				return err
			}
			printPresets(presets)
			return nil
		},
	}
}

// loadSetup builds the input record and calibration: defaults first, then the
// optional JSON input overlay and INI calibration overrides.
func loadSetup(inputPath, configPath string) (engine.Input, engine.Config, error) {
	in := engine.DefaultInput()
	if inputPath != "" {
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return engine.Input{}, engine.Config{}, fmt.Errorf("read input %s: %w", inputPath, err)
		}
		if err := json.Unmarshal(data, &in); err != nil {
			return engine.Input{}, engine.Config{}, fmt.Errorf("parse input %s: %w", inputPath, err)
		}
	}

	cfg := engine.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = engine.LoadConfig(configPath)
		if err != nil {
			return engine.Input{}, engine.Config{}, err
		}
	}
	return in, cfg, nil
}

func writeJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
