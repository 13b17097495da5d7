package nulldist

import (
	"math"

	"gofit/internal/numeric"
)

// ADFamily is the null distribution of the Anderson-Darling statistic A²_n,
// after Marsaglia and Marsaglia (doi:10.18637/jss.v009.i02). Outside the
// single sample case it is good to about five decimal digits.
type ADFamily struct{}

// AD is the Anderson-Darling family.
var AD = ADFamily{}

var (
	adLimitLow  = numeric.Polynomial{2.00012, .247105, -.0649821, .0347962, -.011672, .00168691}
	adLimitHigh = numeric.Polynomial{1.0776, -2.30695, .43424, -.082433, .008056, -.0003146}

	adCorrectionMiddle = numeric.Polynomial{-.00022633, 6.54034, -14.6538, 14.458, -8.259, 1.91864}
	adCorrectionUpper  = numeric.Polynomial{-130.2137, 745.2337, -1705.091, 1950.646, -1116.36, 255.7844}
)

func (ADFamily) Name() string { return "ad" }

// CDFRegimes lists the CDF strategies in dispatch order.
func (ADFamily) CDFRegimes() Regimes {
	return Regimes{
		{
			Name:    "non-positive",
			Applies: func(s float64, _ int) bool { return s <= 0 },
			Eval:    zero,
		},
		{
			Name:    "infinite",
			Applies: func(s float64, _ int) bool { return math.IsInf(s, 1) },
			Eval:    one,
		},
		{
			Name:    "single-sample",
			Applies: func(_ float64, n int) bool { return n == 1 },
			Eval:    adSingleSample,
		},
		{
			Name:    "limit-corrected",
			Applies: always,
			Eval: func(s float64, n int) float64 {
				p := ADLimit(s)
				return p + ADCorrection(n, p)
			},
		},
	}
}

func (f ADFamily) CDF(statistic float64, samples int) (float64, error) {
	return evaluate(f.CDFRegimes, statistic, samples)
}

// Survival is the complement of the CDF.
func (f ADFamily) Survival(statistic float64, samples int) (float64, error) {
	return complement(f.CDF(statistic, samples))
}

// adSingleSample is exact for n = 1 (doi:10.1214/aoms/1177704850, eq. 8).
func adSingleSample(s float64, _ int) float64 {
	if s <= math.Log(4)-1 {
		return 0
	}
	return math.Sqrt(1 - 4*math.Exp(-1-s))
}

// ADLimit approximates the limiting distribution function of A² for a
// positive statistic.
func ADLimit(statistic float64) float64 {
	z := statistic
	if z < 2 {
		return math.Exp(-1.2337141/z) / math.Sqrt(z) * adLimitLow.Eval(z)
	}
	return math.Exp(-math.Exp(adLimitHigh.Eval(z)))
}

// ADCorrection is the finite sample adjustment to add to a limiting
// probability pinf.
func ADCorrection(samples int, pinf float64) float64 {
	n := float64(samples)
	c := .01265 + .1757/n
	switch {
	case pinf < c:
		x := pinf / c
		g1 := math.Sqrt(x) * (1 - x) * (49*x - 102)
		return ((.0037/n+.00078)/n + .00006) / n * g1
	case pinf < .8:
		return (.01365/n + .04213) / n * adCorrectionMiddle.Eval((pinf-c)/(.8-c))
	default:
		return adCorrectionUpper.Eval(pinf) / n
	}
}
