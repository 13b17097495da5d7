package nulldist

import (
	"math"

	"gofit/internal/errors"
	"gofit/internal/numeric"
)

// Family is the null distribution of one statistic, parametrised by the
// sample count.
type Family interface {
	// Name is the short statistic name, e.g. "ks".
	Name() string

	// CDF returns P(statistic' <= statistic) for samples uniform(0, 1) draws.
	CDF(statistic float64, samples int) (float64, error)

	// Survival returns 1 - CDF, possibly through a separate, more precise
	// formula in the upper tail.
	Survival(statistic float64, samples int) (float64, error)
}

// Lookup returns the family registered under name (ks, cvm or ad).
func Lookup(name string) (Family, error) {
	switch name {
	case "ks":
		return KS, nil
	case "cvm":
		return CvM, nil
	case "ad":
		return AD, nil
	}
	return nil, errors.InvalidInput("unknown statistic " + name + ", expected ks, cvm or ad")
}

// CDFEach evaluates f.CDF with numeric.Broadcast semantics.
func CDFEach(f Family, statistics []float64, samples []int) ([]float64, error) {
	return numeric.Broadcast(f.CDF, statistics, samples)
}

// SurvivalEach evaluates f.Survival with numeric.Broadcast semantics.
func SurvivalEach(f Family, statistics []float64, samples []int) ([]float64, error) {
	return numeric.Broadcast(f.Survival, statistics, samples)
}

// evaluate applies the shared argument checks and runs the regime list.
func evaluate(regimes func() Regimes, statistic float64, samples int) (float64, error) {
	if samples <= 0 {
		return 0, errors.InvalidSamples(samples)
	}
	if math.IsNaN(statistic) {
		return statistic, nil
	}
	return clamp01(regimes().Eval(statistic, samples)), nil
}

// complement turns a CDF into a survival probability.
func complement(cdf float64, err error) (float64, error) {
	if err != nil {
		return 0, err
	}
	return 1 - cdf, nil
}
