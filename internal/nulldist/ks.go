package nulldist

import "math"

// ExactMethod evaluates P(D_n < statistic) exactly, or as close as the
// arithmetic allows.
type ExactMethod func(samples int, statistic float64) float64

// KSFamily is the null distribution of the two-sided one-sample
// Kolmogorov-Smirnov statistic D_n.
type KSFamily struct {
	// Exact backs the two Durbin regimes. Nil means DurbinMatrix.
	Exact ExactMethod
}

// KS is the production Kolmogorov-Smirnov family.
var KS = KSFamily{Exact: DurbinMatrix}

const (
	// Below this many samples the doubled Smirnov tail replaces Durbin for
	// large statistics.
	ksSmallSamples = 150
	// n·d² beyond which the doubled Smirnov tail is accurate for small n.
	ksSmirnovCutover = 7
	// Pelz-Good takes over from this many samples.
	ksPelzGoodSamples = 100000
	// n·d^1.5 below which Durbin is still affordable.
	ksDurbinCutover = 1.4
	// Below this survival probability 1 - CDF loses too many digits.
	ksSurvivalFloor = 1e-5
)

func (KSFamily) Name() string { return "ks" }

func (f KSFamily) exact() ExactMethod {
	if f.Exact == nil {
		return DurbinMatrix
	}
	return f.Exact
}

// CDFRegimes lists the CDF strategies in dispatch order.
func (f KSFamily) CDFRegimes() Regimes {
	exact := f.exact()
	durbin := func(d float64, n int) float64 { return exact(n, d) }
	return Regimes{
		{
			Name:    "below-support",
			Applies: func(d float64, n int) bool { return d <= 1/(2*float64(n)) },
			Eval:    zero,
		},
		{
			Name:    "above-support",
			Applies: func(d float64, _ int) bool { return d >= 1 },
			Eval:    one,
		},
		{
			Name:    "lower-exact",
			Applies: func(d float64, n int) bool { return d <= 1/float64(n) },
			Eval:    ksLowerExact,
		},
		{
			Name:    "upper-exact",
			Applies: func(d float64, n int) bool { return d >= 1-1/float64(n) },
			Eval: func(d float64, n int) float64 {
				return 1 - 2*math.Pow(1-d, float64(n))
			},
		},
		{
			Name: "durbin-small",
			Applies: func(d float64, n int) bool {
				return n < ksSmallSamples && float64(n)*d*d < ksSmirnovCutover
			},
			Eval: durbin,
		},
		{
			Name:    "smirnov-doubled",
			Applies: func(_ float64, n int) bool { return n < ksSmallSamples },
			Eval: func(d float64, n int) float64 {
				return 1 - 2*Smirnov(n, d)
			},
		},
		{
			Name: "durbin",
			Applies: func(d float64, n int) bool {
				return n < ksPelzGoodSamples && float64(n)*math.Pow(d, 1.5) < ksDurbinCutover
			},
			Eval: durbin,
		},
		{
			Name:    "pelz-good",
			Applies: always,
			Eval:    func(d float64, n int) float64 { return PelzGood(n, d) },
		},
	}
}

// SurvivalRegimes lists the survival strategies in dispatch order. The
// catch-all complements the CDF and switches to the doubled Smirnov tail
// once the complement drops under 1e-5.
func (f KSFamily) SurvivalRegimes() Regimes {
	cdf := f.CDFRegimes()
	return Regimes{
		{
			Name:    "above-support",
			Applies: func(d float64, _ int) bool { return d >= 1 },
			Eval:    zero,
		},
		{
			Name:    "upper-exact",
			Applies: func(d float64, n int) bool { return d >= 1-1/float64(n) },
			Eval: func(d float64, n int) float64 {
				return math.Min(1, 2*math.Pow(1-d, float64(n)))
			},
		},
		{
			Name:    "complement",
			Applies: always,
			Eval: func(d float64, n int) float64 {
				p := 1 - cdf.Eval(d, n)
				if p > ksSurvivalFloor {
					return p
				}
				return math.Min(1, 2*Smirnov(n, d))
			},
		},
	}
}

func (f KSFamily) CDF(statistic float64, samples int) (float64, error) {
	return evaluate(f.CDFRegimes, statistic, samples)
}

func (f KSFamily) Survival(statistic float64, samples int) (float64, error) {
	return evaluate(f.SurvivalRegimes, statistic, samples)
}

// ksLowerExact is n!·(2d - 1/n)^n, valid for 1/(2n) < d <= 1/n.
func ksLowerExact(d float64, n int) float64 {
	nf := float64(n)
	lf, _ := math.Lgamma(nf + 1)
	return math.Exp(lf + nf*math.Log(2*d-1/nf))
}
