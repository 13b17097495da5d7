package simulate

import (
	"context"
	"sync/atomic"
	"testing"

	"gofit/internal/config"
	"gofit/internal/errors"
	"gofit/internal/gof"
	"gofit/internal/nulldist"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSimulator() *Simulator {
	return NewSimulator("Warning")
}

func TestRun_Signature(t *testing.T) {
	stat := func([]float64) float64 { return 8 }
	table, err := newTestSimulator().Run(context.Background(), stat, Config{
		Samples: 3, Precision: 10, Rounds: 10, Workers: 2, Seed: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{8, 8, 8, 8, 8, 8, 8, 8, 8}, table.Quantiles)
	assert.Equal(t, 8.0, table.Mean)
	assert.Equal(t, 0.0, table.StdDev)
	assert.NotEmpty(t, table.ID)
}

func TestRun_Sorting(t *testing.T) {
	var i atomic.Int64
	i.Store(9)
	stat := func([]float64) float64 { return float64(i.Add(-1)) }
	table, err := newTestSimulator().Run(context.Background(), stat, Config{
		Samples: 3, Precision: 10, Rounds: 10, Workers: 4, Seed: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8}, table.Quantiles)
}

func TestRun_SortedUniformInput(t *testing.T) {
	stat := func(data []float64) float64 {
		for i, x := range data {
			if x < 0 || x >= 1 || (i > 0 && data[i-1] > x) {
				return 1
			}
		}
		return 0
	}
	table, err := newTestSimulator().Run(context.Background(), stat, Config{
		Samples: 7, Precision: 4, Rounds: 4000, Workers: 3, Seed: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, table.Mean)
}

func TestRun_IndependentOfWorkers(t *testing.T) {
	cfg := Config{Samples: 5, Precision: 20, Rounds: 5000, Workers: 1, Seed: 42}
	one, err := newTestSimulator().Run(context.Background(), gof.KSStat, cfg)
	require.NoError(t, err)

	cfg.Workers = 8
	many, err := newTestSimulator().Run(context.Background(), gof.KSStat, cfg)
	require.NoError(t, err)
	assert.Equal(t, one.Quantiles, many.Quantiles)
	assert.NotEqual(t, one.ID, many.ID)

	cfg.Seed = 43
	other, err := newTestSimulator().Run(context.Background(), gof.KSStat, cfg)
	require.NoError(t, err)
	assert.NotEqual(t, one.Quantiles, other.Quantiles)
}

func TestRun_AgreesWithNullDistribution(t *testing.T) {
	table, err := newTestSimulator().Run(context.Background(), gof.KSStat, Config{
		Samples: 10, Precision: 100, Rounds: 100000, Workers: 4, Seed: 7,
	})
	require.NoError(t, err)

	// The 95% critical value of D_10 is about .409.
	critical, err := table.CriticalValue(.05)
	require.NoError(t, err)
	assert.InDelta(t, .409, critical, .01)

	p, err := nulldist.KS.CDF(critical, 10)
	require.NoError(t, err)
	assert.InDelta(t, .95, p, .005)
}

func TestCriticalValue(t *testing.T) {
	table := &Table{Precision: 4, Quantiles: []float64{1, 2, 3}}
	v, err := table.CriticalValue(.25)
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)

	v, err = table.CriticalValue(.75)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	_, err = table.CriticalValue(.01)
	require.Error(t, err)
	_, err = table.CriticalValue(1)
	require.Error(t, err)
}

func TestRun_InvalidConfig(t *testing.T) {
	stat := func([]float64) float64 { return 0 }
	bad := []Config{
		{Samples: 0, Precision: 10, Rounds: 10, Workers: 1},
		{Samples: 3, Precision: 1, Rounds: 10, Workers: 1},
		{Samples: 3, Precision: 10, Rounds: 5, Workers: 1},
		{Samples: 3, Precision: 10, Rounds: 15, Workers: 1},
		{Samples: 3, Precision: 10, Rounds: 10, Workers: 0},
	}
	for _, cfg := range bad {
		_, err := newTestSimulator().Run(context.Background(), stat, cfg)
		require.Error(t, err, "%+v", cfg)
		assert.Equal(t, errors.CodeSimulationError, errors.GetCode(err))
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestSimulator().Run(ctx, gof.CvMStat, Config{
		Samples: 3, Precision: 10, Rounds: 10000, Workers: 2, Seed: 1,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, errors.CodeSimulationError, errors.GetCode(err))
}

func TestConfigFrom(t *testing.T) {
	cfg := ConfigFrom(config.SimulationConfig{Precision: 100, Rounds: 1000, Workers: 3, Seed: 9}, 12)
	assert.Equal(t, Config{Samples: 12, Precision: 100, Rounds: 1000, Workers: 3, Seed: 9}, cfg)
}
