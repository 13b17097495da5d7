package nulldist

import "math"

// Smirnov returns the one-sided tail P(D⁺_n >= statistic) from the exact
// Birnbaum-Tingey sum
//
//	d · Σ_{j=0}^{⌊n(1-d)⌋} C(n, j) (1 - d - j/n)^(n-j) (d + j/n)^(j-1)
//
// Every term is positive, so each one is formed in the log domain and the
// sum does not cancel.
func Smirnov(samples int, statistic float64) float64 {
	d := statistic
	switch {
	case math.IsNaN(d):
		return d
	case d <= 0:
		return 1
	case d >= 1:
		return 0
	}

	n := float64(samples)
	lgn, _ := math.Lgamma(n + 1)
	last := int(math.Floor(n * (1 - d)))
	sum := 0.0
	for j := 0; j <= last; j++ {
		jf := float64(j)
		lower := 1 - d - jf/n
		if lower <= 0 {
			// Only reachable at j = n(1-d), where the term is zero.
			break
		}
		lgj, _ := math.Lgamma(jf + 1)
		lgnj, _ := math.Lgamma(n - jf + 1)
		logTerm := lgn - lgj - lgnj +
			(n-jf)*math.Log(lower) +
			(jf-1)*math.Log(d+jf/n)
		sum += math.Exp(logTerm)
	}
	return math.Min(1, d*sum)
}
