// Package sensitivity sweeps one operating parameter across a symmetric
// range around its base value and measures how strongly the key outputs
// respond. Points are independent, so they are evaluated on a worker pool.
package sensitivity

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/dmltech/biofurnace/pkg/engine"
)

// Request describes one sweep.
type Request struct {
	Parameter    string  // see Parameters for the accepted names
	RangePercent float64 // total symmetric span, percent of the base value
	Points       int     // grid size, >= 2
	Workers      int     // 0 means runtime.NumCPU()
}

// accessor reads and writes one sweepable parameter on an input record.
type accessor struct {
	get func(*engine.Input) float64
	set func(*engine.Input, float64)
}

var accessors = map[string]accessor{
	"fuel_flow": {
		get: func(in *engine.Input) float64 { return in.Operating.FuelFlow },
		set: func(in *engine.Input, v float64) { in.Operating.FuelFlow = v },
	},
	"reported_lhv": {
		get: func(in *engine.Input) float64 { return in.Operating.ReportedLHV },
		set: func(in *engine.Input, v float64) { in.Operating.ReportedLHV = v },
	},
	"furnace_efficiency": {
		get: func(in *engine.Input) float64 { return in.Operating.FurnaceEfficiency },
		set: func(in *engine.Input, v float64) { in.Operating.FurnaceEfficiency = v },
	},
	"excess_air": {
		get: func(in *engine.Input) float64 { return in.Operating.ExcessAir },
		set: func(in *engine.Input, v float64) { in.Operating.ExcessAir = v },
	},
	"duct_diameter": {
		get: func(in *engine.Input) float64 { return in.Operating.DuctDiameter },
		set: func(in *engine.Input, v float64) { in.Operating.DuctDiameter = v },
	},
	"moisture": {
		get: func(in *engine.Input) float64 { return in.Fuel.Moisture },
		set: func(in *engine.Input, v float64) { in.Fuel.Moisture = v },
	},
	"relative_humidity": {
		get: func(in *engine.Input) float64 { return in.Ambient.RelativeHumidity },
		set: func(in *engine.Input, v float64) { in.Ambient.RelativeHumidity = v },
	},
	"dry_bulb_temp": {
		get: func(in *engine.Input) float64 { return in.Ambient.DryBulbTemp },
		set: func(in *engine.Input, v float64) { in.Ambient.DryBulbTemp = v },
	},
	"altitude": {
		get: func(in *engine.Input) float64 { return in.Ambient.Altitude },
		set: func(in *engine.Input, v float64) { in.Ambient.Altitude = v },
	},
}

// Parameters returns the sweepable parameter names, sorted.
func Parameters() []string {
	names := make([]string, 0, len(accessors))
	for name := range accessors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InvalidParameterError reports an unknown parameter name or an unusable
// sweep request.
type InvalidParameterError struct {
	Name   string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("sensitivity: parameter %q: %s", e.Name, e.Reason)
}

// Result is the outcome of one sweep. The output arrays are aligned with
// Values; points whose evaluation failed hold NaN and are listed in Skipped.
type Result struct {
	Parameter string
	BaseValue float64

	Values        []float64
	Temperatures  []float64 // outlet gas, deg C
	Velocities    []float64 // m/s
	PressureDrops []float64 // Pa/m
	Efficiencies  []float64 // insulation, percent
	Skipped       []int

	// Indices holds the sensitivity index of each tracked output: the output
	// span across the sweep as a percent of its base value. MaxIndex is the
	// largest of them.
	Indices  map[string]float64
	MaxIndex float64
}

// Sweep evaluates the pipeline across the requested grid. Base metrics are
// taken from an evaluation at the unmodified input; points that fail
// validation (for example an efficiency sweep leaving [0, 100]) are skipped,
// not fatal.
func Sweep(ctx context.Context, base engine.Input, req Request, cfg engine.Config) (*Result, error) {
	acc, ok := accessors[req.Parameter]
	if !ok {
		return nil, &InvalidParameterError{Name: req.Parameter, Reason: "unknown parameter"}
	}
	if req.Points < 2 {
		return nil, &InvalidParameterError{Name: req.Parameter, Reason: fmt.Sprintf("need at least 2 points, got %d", req.Points)}
	}
	if req.RangePercent <= 0 {
		return nil, &InvalidParameterError{Name: req.Parameter, Reason: fmt.Sprintf("range must be positive, got %g%%", req.RangePercent)}
	}

	baseValue := acc.get(&base)
	if baseValue == 0 {
		return nil, &InvalidParameterError{Name: req.Parameter, Reason: "base value is zero, relative range is undefined"}
	}

	baseResult, err := engine.Evaluate(base, cfg)
	if err != nil {
		return nil, err
	}

	half := req.RangePercent / 200.0
	values := floats.Span(make([]float64, req.Points), baseValue*(1.0-half), baseValue*(1.0+half))

	workers := req.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > req.Points {
		workers = req.Points
	}

	results := make([]*engine.CombustionResult, req.Points)
	errs := make([]error, req.Points)

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				in := base
				acc.set(&in, values[i])
				results[i], errs[i] = engine.Evaluate(in, cfg)
			}
		}()
	}

	var cancelled error
	for i := 0; i < req.Points; i++ {
		if err := ctx.Err(); err != nil {
			cancelled = err
			break
		}
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	if cancelled != nil {
		return nil, cancelled
	}

	res := &Result{
		Parameter:     req.Parameter,
		BaseValue:     baseValue,
		Values:        values,
		Temperatures:  make([]float64, req.Points),
		Velocities:    make([]float64, req.Points),
		PressureDrops: make([]float64, req.Points),
		Efficiencies:  make([]float64, req.Points),
	}
	for i := 0; i < req.Points; i++ {
		if errs[i] != nil {
			log.WithFields(log.Fields{
				"parameter": req.Parameter,
				"value":     values[i],
			}).Warn("sweep point skipped: ", errs[i])
			res.Temperatures[i] = math.NaN()
			res.Velocities[i] = math.NaN()
			res.PressureDrops[i] = math.NaN()
			res.Efficiencies[i] = math.NaN()
			res.Skipped = append(res.Skipped, i)
			continue
		}
		res.Temperatures[i] = results[i].OutletGasTemp
		res.Velocities[i] = results[i].Velocity
		res.PressureDrops[i] = results[i].PressureDrop
		res.Efficiencies[i] = results[i].InsulationEfficiency
	}

	res.Indices = map[string]float64{
		"outlet_gas_temp":       index(res.Temperatures, baseResult.OutletGasTemp),
		"velocity":              index(res.Velocities, baseResult.Velocity),
		"pressure_drop":         index(res.PressureDrops, baseResult.PressureDrop),
		"insulation_efficiency": index(res.Efficiencies, baseResult.InsulationEfficiency),
	}
	for _, v := range res.Indices {
		if v > res.MaxIndex {
			res.MaxIndex = v
		}
	}
	return res, nil
}

// index measures the output span across the sweep relative to its base value,
// percent. NaN points are ignored; a fully skipped or flat output scores 0.
func index(outputs []float64, base float64) float64 {
	min, max := math.Inf(1), math.Inf(-1)
	for _, v := range outputs {
		if math.IsNaN(v) {
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if max < min || base == 0 {
		return 0
	}
	return (max - min) / math.Abs(base) * 100.0
}

// Ranking pairs a parameter with its strongest sensitivity index.
type Ranking struct {
	Parameter string
	MaxIndex  float64
}

// Rank sweeps every named parameter with the same range and grid and orders
// them by decreasing influence. Parameters whose sweep fails outright are
// logged and left out of the ranking.
func Rank(ctx context.Context, base engine.Input, params []string, rangePercent float64, points int, cfg engine.Config) ([]Ranking, error) {
	ranked := make([]Ranking, 0, len(params))
	for _, name := range params {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := Sweep(ctx, base, Request{Parameter: name, RangePercent: rangePercent, Points: points}, cfg)
		if err != nil {
			var invalid *InvalidParameterError
			if errors.As(err, &invalid) {
				return nil, err
			}
			log.WithField("parameter", name).Warn("sweep failed: ", err)
			continue
		}
		ranked = append(ranked, Ranking{Parameter: name, MaxIndex: res.MaxIndex})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].MaxIndex > ranked[j].MaxIndex })
	return ranked, nil
}
