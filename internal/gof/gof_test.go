package gof

import (
	"math"
	"testing"

	"gofit/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"
)

var (
	data1 = []float64{.125, .375, .625, .875}
	data2 = []float64{.1, .2, .3, .4}
	data3 = []float64{.6, .7, .8, .9}
)

// Results are compared to six significant digits.
const rtol = .5e-5

func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return out
}

func assertResult(t *testing.T, want, got Result) {
	t.Helper()
	assert.InEpsilon(t, want.Statistic, got.Statistic, rtol, "statistic")
	assert.InEpsilon(t, want.PValue, got.PValue, rtol, "pvalue")
}

func TestKSStat(t *testing.T) {
	assert.InEpsilon(t, .125, KSStat(data1), rtol)
	assert.InEpsilon(t, .6, KSStat(data2), rtol)
	assert.InEpsilon(t, .6, KSStat(data3), rtol)
}

func TestCvMStat(t *testing.T) {
	assert.InEpsilon(t, .0208333, CvMStat(data1), rtol)
	assert.InEpsilon(t, .383333, CvMStat(data2), rtol)
	assert.InEpsilon(t, .383333, CvMStat(data3), rtol)
}

func TestADStat(t *testing.T) {
	assert.InEpsilon(t, .153334, ADStat(data1), rtol)
	assert.InEpsilon(t, 1.749722, ADStat(data2), rtol)
	assert.InEpsilon(t, 1.749722, ADStat(data3), rtol)
	assert.True(t, math.IsInf(ADStat([]float64{0, .5}), 1))
}

func TestStatistics_Idempotent(t *testing.T) {
	for name, stat := range map[string]StatisticFunc{"ks": KSStat, "cvm": CvMStat, "ad": ADStat} {
		in := append([]float64(nil), data1...)
		first := stat(in)
		assert.Equal(t, first, stat(in), name)
		assert.Equal(t, data1, in, name)
		assert.True(t, math.IsNaN(stat(nil)), name)
	}
}

func TestRun_Custom(t *testing.T) {
	test := Test{
		Statistic: func([]float64) float64 { return 3 },
		Null:      constantFamily{survival: .5},
	}
	got, err := test.Run([]float64{1, 2, 3}, distuv.UnitNormal)
	require.NoError(t, err)
	assert.Equal(t, Result{Statistic: 3, PValue: .5}, got)
}

func TestRun_NamedDistribution(t *testing.T) {
	dist, err := Lookup("uniform", 1, 2)
	require.NoError(t, err)
	got, err := KSTest.Run([]float64{.2, .5, .8}, dist)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.PValue)
}

func TestKSTest(t *testing.T) {
	// P(D <= 1/4) = 2/9·(2·3/4 - 1)³ is the complement.
	got, err := KSTest.Run([]float64{1, 2, 3}, distuv.Uniform{Min: 0, Max: 4})
	require.NoError(t, err)
	assertResult(t, Result{.25, 1 - 1./36}, got)

	// Against R ks.test().
	got, err = KSTest.Run([]float64{.1, .4, .7}, distuv.Uniform{Min: 0, Max: 1})
	require.NoError(t, err)
	assertResult(t, Result{.3, .886222}, got)

	got, err = KSTest.Run([]float64{.1, .4, .7}, distuv.UnitNormal)
	require.NoError(t, err)
	assertResult(t, Result{.539828, .246999}, got)

	got, err = KSTest.Run(linspace(-1, 1, 9), distuv.UnitNormal)
	require.NoError(t, err)
	assertResult(t, Result{.158655, .951641}, got)

	got, err = KSTest.Run(linspace(-15, 15, 9), distuv.UnitNormal)
	require.NoError(t, err)
	assertResult(t, Result{.444356, .038850}, got)

	got, err = KSTest.Run([]float64{-.1, 1, 2}, distuv.Normal{Mu: 1, Sigma: 3})
	require.NoError(t, err)
	assertResult(t, Result{.369441, .679447}, got)
}

func TestCvMTest(t *testing.T) {
	// Against cvm.test() from the R goftest package.
	got, err := CvMTest.Run([]float64{.1, .4, .7}, distuv.Uniform{Min: 0, Max: 1})
	require.NoError(t, err)
	assertResult(t, Result{.06, .851737}, got)

	got, err = CvMTest.Run([]float64{.1, .4, .7}, distuv.UnitNormal)
	require.NoError(t, err)
	assertResult(t, Result{.196853, .281709}, got)
}

func TestADTest(t *testing.T) {
	// Against ad.test() from R goftest.
	got, err := ADTest.Run([]float64{.1, .4, .7}, distuv.Uniform{Min: 0, Max: 1})
	require.NoError(t, err)
	assertResult(t, Result{.366028, .875957}, got)

	got, err = ADTest.Run([]float64{.1, .4, .7}, distuv.UnitNormal)
	require.NoError(t, err)
	assertResult(t, Result{.921699, .390938}, got)

	// Poles of the weight function.
	for _, data := range [][]float64{{0, .5}, {1, .5}} {
		got, err = ADTest.Run(data, distuv.Uniform{Min: 0, Max: 1})
		require.NoError(t, err)
		assert.True(t, math.IsInf(got.Statistic, 1), "data %v", data)
		assert.Equal(t, 0.0, got.PValue, "data %v", data)
	}
}

func TestRun_AssumeSorted(t *testing.T) {
	data := linspace(0, 1, 1000)
	sorted := KSTest
	sorted.AssumeSorted = true

	a, err := KSTest.Run(data, distuv.Uniform{Min: 0, Max: 1})
	require.NoError(t, err)
	b, err := sorted.Run(data, distuv.Uniform{Min: 0, Max: 1})
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.InDelta(t, 0, a.Statistic, .5e-2)
	assert.InDelta(t, 1, a.PValue, .5e-2)
}

func TestRun_LeavesDataUntouched(t *testing.T) {
	data := []float64{.7, .1, .4}
	_, err := CvMTest.Run(data, distuv.UnitNormal)
	require.NoError(t, err)
	assert.Equal(t, []float64{.7, .1, .4}, data)
}

func TestRun_InvalidInput(t *testing.T) {
	_, err := KSTest.Run(nil, distuv.UnitNormal)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	_, err = KSTest.Run([]float64{.1, math.NaN()}, distuv.UnitNormal)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	_, err = KSTest.Run([]float64{.1}, nil)
	require.Error(t, err)
}

func TestPreset(t *testing.T) {
	for _, name := range []string{"ks", "cvm", "ad"} {
		test, err := Preset(name)
		require.NoError(t, err)
		assert.Equal(t, name, test.Null.Name())
	}
	_, err := Preset("chi2")
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name   string
		params []float64
		x      float64
		want   float64
	}{
		{"norm", nil, 0, .5},
		{"norm", []float64{1, 3}, 1, .5},
		{"uniform", []float64{1, 2}, 2, .5},
		{"expon", nil, 1, 1 - math.Exp(-1)},
		{"expon", []float64{2, 4}, 6, 1 - math.Exp(-1)},
		{"expon", []float64{2}, 1, 0},
		{"laplace", []float64{3}, 3, .5},
		{"logistic", []float64{0, 2}, 0, .5},
		{"gumbel_r", nil, 0, math.Exp(-1)},
		{"t", []float64{5}, 0, .5},
		{"t", []float64{5, 10, 2}, 10, .5},
		{"weibull_min", []float64{1}, 1, 1 - math.Exp(-1)},
		{"weibull_min", []float64{2, 1, 3}, 4, 1 - math.Exp(-1)},
	}
	for _, tt := range tests {
		dist, err := Lookup(tt.name, tt.params...)
		require.NoError(t, err, "%s%v", tt.name, tt.params)
		assert.InDelta(t, tt.want, dist.CDF(tt.x), 1e-12, "%s%v at %g", tt.name, tt.params, tt.x)
	}
}

func TestLookup_Errors(t *testing.T) {
	bad := []struct {
		name   string
		params []float64
	}{
		{"gamma", nil},
		{"norm", []float64{0, 1, 2}},
		{"norm", []float64{0, 0}},
		{"norm", []float64{0, -1}},
		{"norm", []float64{math.NaN()}},
		{"t", nil},
		{"t", []float64{-1}},
		{"weibull_min", []float64{0}},
	}
	for _, tt := range bad {
		_, err := Lookup(tt.name, tt.params...)
		require.Error(t, err, "%s%v", tt.name, tt.params)
		assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
	}
	assert.Contains(t, Distributions(), "weibull_min")
}

func TestParseData(t *testing.T) {
	got, err := ParseData([]string{"1", " 2.5 ", "-3e-1"})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2.5, -.3}, got)

	for _, fields := range [][]string{nil, {"1", "x"}, {"NaN"}, {"Inf"}, {""}} {
		_, err := ParseData(fields)
		require.Error(t, err, "%q", fields)
		assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
	}

	_, err = ParseData([]string{"1", "2", "three"})
	assert.Contains(t, err.Error(), "value 3")
}

type constantFamily struct {
	survival float64
}

func (constantFamily) Name() string { return "constant" }

func (f constantFamily) CDF(float64, int) (float64, error) { return 1 - f.survival, nil }

func (f constantFamily) Survival(float64, int) (float64, error) { return f.survival, nil }
