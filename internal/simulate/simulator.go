// Package simulate estimates critical values of distribution-free EDF
// statistics by Monte Carlo: sorted uniform(0, 1) samples are drawn over and
// over, the statistic is computed for each draw, and evenly spaced order
// statistics of the results form the table.
package simulate

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"time"

	"gofit/internal/config"
	"gofit/internal/errors"
	"gofit/internal/gof"
	"gofit/internal/logger"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
	"github.com/op/go-logging"
	"golang.org/x/sync/errgroup"
)

// Rounds are generated in chunks of this size, each chunk with its own
// random stream.
const chunkRounds = 1024

// Config controls one simulation.
type Config struct {
	Samples   int    // values per simulated data set
	Precision int    // the table holds Precision-1 critical values
	Rounds    int    // simulated data sets, a multiple of Precision
	Workers   int    // chunks evaluated concurrently
	Seed      uint64 // same seed, same table
}

// ConfigFrom fills a Config from the environment defaults.
func ConfigFrom(sim config.SimulationConfig, samples int) Config {
	return Config{
		Samples:   samples,
		Precision: sim.Precision,
		Rounds:    sim.Rounds,
		Workers:   sim.Workers,
		Seed:      sim.Seed,
	}
}

func (c Config) validate() error {
	switch {
	case c.Samples < 1:
		return errors.SimulationError(fmt.Sprintf("samples must be positive, got %d", c.Samples), nil)
	case c.Precision < 2:
		return errors.SimulationError(fmt.Sprintf("precision must be at least 2, got %d", c.Precision), nil)
	case c.Rounds < c.Precision || c.Rounds%c.Precision != 0:
		return errors.SimulationError(fmt.Sprintf("rounds (%d) must be a positive multiple of precision (%d)", c.Rounds, c.Precision), nil)
	case c.Workers < 1:
		return errors.SimulationError(fmt.Sprintf("workers must be positive, got %d", c.Workers), nil)
	}
	return nil
}

// Table is the outcome of a simulation.
type Table struct {
	ID        string        `json:"id"`
	Samples   int           `json:"samples"`
	Precision int           `json:"precision"`
	Rounds    int           `json:"rounds"`
	Quantiles []float64     `json:"quantiles"`
	Mean      float64       `json:"mean"`
	StdDev    float64       `json:"stddev"`
	Median    float64       `json:"median"`
	Elapsed   time.Duration `json:"elapsed"`
}

// CriticalValue returns the simulated statistic exceeded with probability
// about alpha. With precision 100, alpha .05 selects Quantiles[94].
func (t *Table) CriticalValue(alpha float64) (float64, error) {
	i := int(math.Round(float64(t.Precision)*(1-alpha))) - 1
	if math.IsNaN(alpha) || i < 0 || i >= len(t.Quantiles) {
		return 0, errors.InvalidInput(fmt.Sprintf("alpha %g is outside the resolution of a precision %d table", alpha, t.Precision))
	}
	return t.Quantiles[i], nil
}

// Simulator runs simulations.
type Simulator struct {
	log *logging.Logger
}

// NewSimulator creates a simulator logging at the given level.
func NewSimulator(logLevel string) *Simulator {
	return &Simulator{log: logger.NewLogger(logLevel, "Simulate")}
}

// Run simulates stat for cfg.Rounds data sets of cfg.Samples sorted
// uniform(0, 1) values. stat is called from several goroutines at once. The
// result depends only on cfg, not on the worker count or scheduling.
func (s *Simulator) Run(ctx context.Context, stat gof.StatisticFunc, cfg Config) (*Table, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	id := uuid.New().String()
	start := time.Now()
	s.log.Infof("simulation %s: %d rounds of %d samples on %d workers", id, cfg.Rounds, cfg.Samples, cfg.Workers)

	values := make([]float64, cfg.Rounds)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for chunk := 0; chunk*chunkRounds < cfg.Rounds; chunk++ {
		lo := chunk * chunkRounds
		hi := min(lo+chunkRounds, cfg.Rounds)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewPCG(cfg.Seed, uint64(chunk)))
			data := make([]float64, cfg.Samples)
			for r := lo; r < hi; r++ {
				for i := range data {
					data[i] = rng.Float64()
				}
				slices.Sort(data)
				values[r] = stat(data)
			}
			s.log.Debugf("simulation %s: chunk %d done", id, chunk)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.SimulationError("simulation "+id+" interrupted", err)
	}

	slices.Sort(values)
	step := cfg.Rounds / cfg.Precision
	quantiles := make([]float64, 0, cfg.Precision-1)
	for i := step; i < cfg.Rounds; i += step {
		quantiles = append(quantiles, values[i])
	}

	table := &Table{
		ID:        id,
		Samples:   cfg.Samples,
		Precision: cfg.Precision,
		Rounds:    cfg.Rounds,
		Quantiles: quantiles,
	}
	if err := summarize(table, values); err != nil {
		return nil, err
	}
	table.Elapsed = time.Since(start)

	h, m, sec := logger.ParseTime(table.Elapsed)
	s.log.Noticef("simulation %s finished in %02d:%02d:%02d, mean %g, stddev %g", id, h, m, sec, table.Mean, table.StdDev)
	return table, nil
}

func summarize(table *Table, values stats.Float64Data) error {
	var err error
	if table.Mean, err = stats.Mean(values); err != nil {
		return errors.SimulationError("mean of simulated statistics", err)
	}
	if table.StdDev, err = stats.StandardDeviation(values); err != nil {
		return errors.SimulationError("standard deviation of simulated statistics", err)
	}
	if table.Median, err = stats.Median(values); err != nil {
		return errors.SimulationError("median of simulated statistics", err)
	}
	return nil
}
