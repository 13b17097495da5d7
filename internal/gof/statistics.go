package gof

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// StatisticFunc computes an EDF statistic from ascending values that have
// already been mapped through the hypothesized CDF. It must not modify its
// argument and must be safe for concurrent use.
type StatisticFunc func(sorted []float64) float64

// KSStat is the two-sided Kolmogorov-Smirnov supremum statistic
// max(max_i((i+1)/n - x_i), max_i(x_i - i/n)).
func KSStat(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	deviations := make([]float64, 2*n)
	nf := float64(n)
	for i, x := range sorted {
		deviations[2*i] = float64(i+1)/nf - x
		deviations[2*i+1] = x - float64(i)/nf
	}
	return floats.Max(deviations)
}

// CvMStat is the Cramér-von Mises statistic
// 1/(12n) + Σ_i ((2i+1)/(2n) - x_i)².
func CvMStat(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	twoN := 2 * float64(n)
	sum := 0.0
	for i, x := range sorted {
		d := float64(2*i+1)/twoN - x
		sum += d * d
	}
	return 1/(6*twoN) + sum
}

// ADStat is the Anderson-Darling statistic
// -n - Σ_i (2i+1)·log(x_i·(1 - x_{n-1-i}))/n.
//
// The weight function has poles at 0 and 1; a value sitting exactly on
// either yields +Inf.
func ADStat(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	sum := 0.0
	for i, x := range sorted {
		sum += float64(2*i+1) * math.Log(x*(1-sorted[n-1-i]))
	}
	return -float64(n) - sum/float64(n)
}
