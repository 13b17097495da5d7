package gof

import (
	"fmt"
	"slices"

	"gofit/internal/errors"
	"gofit/internal/nulldist"

	"gonum.org/v1/gonum/floats"
)

// CDF is a fully specified continuous hypothesized distribution. Every
// gonum distuv distribution satisfies it.
type CDF interface {
	CDF(x float64) float64
}

// Result is the outcome of one goodness-of-fit test.
type Result struct {
	Statistic float64 `json:"statistic"`
	PValue    float64 `json:"pvalue"`
}

func (r Result) String() string {
	return fmt.Sprintf("statistic=%g pvalue=%g", r.Statistic, r.PValue)
}

// Test pairs a statistic with the null distribution of that statistic.
type Test struct {
	Statistic StatisticFunc
	Null      nulldist.Family
	// AssumeSorted skips sorting when the caller already holds ascending data.
	AssumeSorted bool
}

// The three EDF tests.
var (
	KSTest  = Test{Statistic: KSStat, Null: nulldist.KS}
	CvMTest = Test{Statistic: CvMStat, Null: nulldist.CvM}
	ADTest  = Test{Statistic: ADStat, Null: nulldist.AD}
)

// Preset returns the test for a statistic name: ks, cvm or ad.
func Preset(name string) (Test, error) {
	switch name {
	case "ks":
		return KSTest, nil
	case "cvm":
		return CvMTest, nil
	case "ad":
		return ADTest, nil
	}
	return Test{}, errors.InvalidInput(fmt.Sprintf("unknown statistic %q, expected ks, cvm or ad", name))
}

// Run tests data against dist. The data slice is left untouched. The
// p-value is the null survival probability of the observed statistic.
func (t Test) Run(data []float64, dist CDF) (Result, error) {
	if len(data) == 0 {
		return Result{}, errors.InvalidInput("no data to test")
	}
	if floats.HasNaN(data) {
		return Result{}, errors.InvalidInput("data contains NaN")
	}
	if dist == nil {
		return Result{}, errors.InvalidInput("no hypothesized distribution")
	}

	transformed := make([]float64, len(data))
	copy(transformed, data)
	if !t.AssumeSorted {
		slices.Sort(transformed)
	}
	for i, x := range transformed {
		transformed[i] = dist.CDF(x)
	}

	statistic := t.Statistic(transformed)
	pvalue, err := t.Null.Survival(statistic, len(data))
	if err != nil {
		return Result{}, errors.Wrapf(err, "%s p-value", t.Null.Name())
	}
	return Result{Statistic: statistic, PValue: pvalue}, nil
}
