package nulldist

import (
	"math"
	"sync"

	"gofit/internal/numeric"
)

// CvMFamily is the null distribution of the Cramér-von Mises statistic
// W²_n, after Csörgő and Faraway (doi:10.2307/2346175).
type CvMFamily struct{}

// CvM is the Cramér-von Mises family.
var CvM = CvMFamily{}

const (
	cvmLimitTerms      = 11
	cvmCorrectionTerms = 21
)

var (
	cvmBesselOrders = [3]float64{.25, .75, 1.25}
	// Row weights contracting the Bessel orders.
	cvmGWeights = [3]float64{1, 1, 0}
	cvmHWeights = [3]float64{2, 3, -1}
	// Row weights across the three correction series.
	cvmAWeights = [3]float64{7, 16, 7}
	cvmBWeights = [3]float64{1, 0, 24}
)

type cvmTable struct {
	limitArgs   [cvmLimitTerms]float64
	limitCoeffs [cvmLimitTerms]float64

	fixArgs [3][cvmCorrectionTerms]float64
	fixCsa  [3][cvmCorrectionTerms]float64
	fixCsb  [3][cvmCorrectionTerms]float64
}

var cvmCoefficients = sync.OnceValue(func() cvmTable {
	var tab cvmTable

	halves := numeric.Varange(.5, cvmLimitTerms)
	ones := numeric.Varange(1, cvmLimitTerms)
	for k := 0; k < cvmLimitTerms; k++ {
		k41 := 4*float64(k) + 1
		tab.limitArgs[k] = k41 * k41 / 16
		tab.limitCoeffs[k] = math.Sqrt(k41) * math.Gamma(halves[k]) /
			(math.Pow(math.Pi, 1.5) * math.Gamma(ones[k]))
	}

	starts := numeric.VarangeRows([]float64{.5, 1, 1.5}, cvmCorrectionTerms)
	csbStarts := numeric.VarangeRows([]float64{.5, 1.5, 2.5}, cvmCorrectionTerms)
	denStarts := numeric.Varange(1, cvmCorrectionTerms)
	csaStarts := numeric.Varange(1.5, cvmCorrectionTerms)
	for r := range starts {
		for k := 0; k < cvmCorrectionTerms; k++ {
			a := 4*starts[r][k] - 1
			arg := a * a / 16
			den := 72 * math.Pow(math.Pi, 1.5) * math.Gamma(denStarts[k])
			tab.fixArgs[r][k] = arg
			tab.fixCsa[r][k] = math.Pow(arg, .75) * math.Gamma(csaStarts[k]) / den
			tab.fixCsb[r][k] = math.Pow(arg, 1.25) * math.Gamma(csbStarts[r][k]) / den
		}
	}
	return tab
})

func (CvMFamily) Name() string { return "cvm" }

// CDFRegimes lists the CDF strategies in dispatch order.
func (CvMFamily) CDFRegimes() Regimes {
	return Regimes{
		{
			Name:    "below-support",
			Applies: func(s float64, n int) bool { return s <= cvmLowest(n) },
			Eval:    zero,
		},
		{
			Name:    "above-support",
			Applies: func(s float64, n int) bool { return s >= float64(n)/3 },
			Eval:    one,
		},
		{
			Name: "csorgo-faraway-exact",
			Applies: func(s float64, n int) bool {
				nf := float64(n)
				return s <= cvmLowest(n)+1/(4*nf*nf)
			},
			Eval: cvmLowerExact,
		},
		{
			Name:    "limit-corrected",
			Applies: always,
			Eval: func(s float64, n int) float64 {
				return CvMLimit(s) + CvMCorrection(s)/float64(n)
			},
		},
	}
}

func (f CvMFamily) CDF(statistic float64, samples int) (float64, error) {
	return evaluate(f.CDFRegimes, statistic, samples)
}

// Survival is the complement of the CDF.
func (f CvMFamily) Survival(statistic float64, samples int) (float64, error) {
	return complement(f.CDF(statistic, samples))
}

// cvmLowest is the smallest attainable W²_n.
func cvmLowest(n int) float64 {
	return 1 / (12 * float64(n))
}

// cvmLowerExact is Γ(n+1)/Γ(n/2+1)·(π(s - 1/(12n)))^(n/2), in logs so
// large n does not overflow the Gamma functions.
func cvmLowerExact(s float64, n int) float64 {
	nf := float64(n)
	lgn, _ := math.Lgamma(nf + 1)
	lgh, _ := math.Lgamma(nf/2 + 1)
	return math.Exp(lgn - lgh + nf/2*math.Log(math.Pi*(s-cvmLowest(n))))
}

// CvMLimit is the limiting (n → ∞) distribution function of W².
func CvMLimit(statistic float64) float64 {
	tab := cvmCoefficients()
	sum := 0.0
	for k := 0; k < cvmLimitTerms; k++ {
		sum += tab.limitCoeffs[k] * numeric.ExpBesselK(.25, tab.limitArgs[k]/statistic)
	}
	return sum / math.Sqrt(statistic)
}

// CvMCorrection is the first term of Götze's expansion in 1/n, so that
// CvMLimit(s) + CvMCorrection(s)/n approximates the finite sample CDF.
func CvMCorrection(statistic float64) float64 {
	tab := cvmCoefficients()
	var ks [3]float64
	a, b := 0.0, 0.0
	for r := 0; r < 3; r++ {
		rowA, rowB := 0.0, 0.0
		for k := 0; k < cvmCorrectionTerms; k++ {
			numeric.ExpBesselKs(cvmBesselOrders[:], tab.fixArgs[r][k]/statistic, ks[:])
			g, h := 0.0, 0.0
			for o := range ks {
				g += cvmGWeights[o] * ks[o]
				h += cvmHWeights[o] * ks[o]
			}
			rowA += tab.fixCsa[r][k] * g
			rowB += tab.fixCsb[r][k] * h
		}
		a += cvmAWeights[r] * rowA
		b += cvmBWeights[r] * rowB
	}
	return CvMLimit(statistic)/12 - a/math.Pow(statistic, 1.5) - b/math.Pow(statistic, 2.5)
}
