package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"gofit/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("GOFIT_LOG_LEVEL", "WARNING")
	t.Setenv("GOFIT_STATISTIC", "ks")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTestCmd_Args(t *testing.T) {
	out, err := execute(t, "test", "--dist", "uniform", "--params", "0,4", "1", "2", "3")
	require.NoError(t, err)

	var got testOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "ks", got.Statistic)
	assert.Equal(t, 3, got.Samples)
	assert.InDelta(t, .25, float64(got.Value), 1e-12)
	assert.InDelta(t, 1-1./36, float64(got.PValue), 1e-9)
}

func TestTestCmd_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"x": [0.1, 0.4, 0.7]}`), 0o600))

	out, err := execute(t, "test", "--statistic", "cvm", "--dist", "uniform", "--json", path, "--path", "x")
	require.NoError(t, err)

	var got testOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "cvm", got.Statistic)
	assert.InDelta(t, .06, float64(got.Value), 1e-12)
	assert.InDelta(t, .851737, float64(got.PValue), 1e-5)
}

func TestTestCmd_Pole(t *testing.T) {
	out, err := execute(t, "test", "--statistic", "ad", "--dist", "uniform", "0", "0.5")
	require.NoError(t, err)
	assert.Contains(t, out, `"value": "+Inf"`)
	assert.Contains(t, out, `"pvalue": 0`)
}

func TestTestCmd_Errors(t *testing.T) {
	_, err := execute(t, "test", "--statistic", "chi2", "1", "2")
	require.Error(t, err)

	_, err = execute(t, "test", "--dist", "gamma", "1", "2")
	require.Error(t, err)

	_, err = execute(t, "test", "1", "x")
	require.Error(t, err)

	_, err = execute(t, "test")
	require.Error(t, err)

	_, err = execute(t, "test", "--file", "a.csv", "--json", "a.json")
	require.Error(t, err)
}

func TestNullCmds(t *testing.T) {
	out, err := execute(t, "cdf", "--samples", "5", "0.05", "1")
	require.NoError(t, err)
	var got []float64
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []float64{0, 1}, got)

	out, err = execute(t, "sf", "--statistic", "ad", "--samples", "1", "+Inf")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []float64{0}, got)

	_, err = execute(t, "cdf", "--samples", "0", "0.5")
	require.Error(t, err)

	_, err = execute(t, "cdf", "--samples", "1,2,3", "0.1", "0.2")
	require.Error(t, err)
}

func TestSimulateCmd(t *testing.T) {
	out, err := execute(t, "simulate", "4", "--precision", "10", "--rounds", "100", "--workers", "2")
	require.NoError(t, err)

	var got struct {
		Samples   int       `json:"samples"`
		Quantiles []float64 `json:"quantiles"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 4, got.Samples)
	assert.Len(t, got.Quantiles, 9)

	_, err = execute(t, "simulate", "four")
	require.Error(t, err)
}

func TestExitCode(t *testing.T) {
	_, err := execute(t, "test", "1", "x")
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))

	_, err = execute(t, "cdf", "--samples", "0", "0.5")
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))

	assert.Equal(t, 2, exitCode(errors.ConfigInvalid("GOFIT_SIM_WORKERS must be at least 1")))
	assert.Equal(t, 1, exitCode(errors.SimulationError("interrupted", nil)))
}
