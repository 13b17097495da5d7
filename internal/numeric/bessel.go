package numeric

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/integrate/quad"
)

const (
	// Nodes per quadrature panel.
	legendreOrder = 20
	// Panels never exceed this width in t.
	maxPanelWidth = 0.5
	// The integrand is dropped once it falls below exp(-tailExponent) of its value at t = 0.
	tailExponent = 40
)

type quadratureRule struct {
	nodes   []float64
	weights []float64
}

var unitLegendre = sync.OnceValue(func() quadratureRule {
	rule := quadratureRule{
		nodes:   make([]float64, legendreOrder),
		weights: make([]float64, legendreOrder),
	}
	quad.Legendre{}.FixedLocations(rule.nodes, rule.weights, 0, 1)
	return rule
})

// ExpBesselK returns exp(-x)·K_nu(x), the exponentially scaled modified
// Bessel function of the second kind, for real order nu and x > 0. The
// product underflows gracefully to zero for large x, where computing the
// factors separately would not. At x = 0 it is +Inf; negative x yields NaN.
func ExpBesselK(nu, x float64) float64 {
	var out [1]float64
	ExpBesselKs([]float64{nu}, x, out[:])
	return out[0]
}

// ExpBesselKs stores ExpBesselK(orders[i], x) in out[i]. The orders share
// one pass over the quadrature nodes.
func ExpBesselKs(orders []float64, x float64, out []float64) {
	out = out[:len(orders)]
	top := 0.0
	for i, nu := range orders {
		switch {
		case math.IsNaN(nu) || math.IsNaN(x) || x < 0:
			out[i] = math.NaN()
		case x == 0:
			out[i] = math.Inf(1)
		default:
			out[i] = 0
			top = math.Max(top, math.Abs(nu))
		}
	}
	if math.IsNaN(x) || x <= 0 || math.IsInf(x, 1) {
		return
	}

	upper := besselCutoff(top, x)
	if math.IsInf(upper, 1) {
		for i, nu := range orders {
			if !math.IsNaN(out[i]) {
				out[i] = besselSmallArgument(math.Abs(nu), x) * math.Exp(-x)
			}
		}
		return
	}

	// The integrand is close to a Gaussian of width 1/sqrt(x) for large x.
	width := math.Min(maxPanelWidth, 3/math.Sqrt(x))
	rule := unitLegendre()
	for a := 0.0; a < upper; a += width {
		b := math.Min(a+width, upper)
		span := b - a
		for j, node := range rule.nodes {
			t := a + node*span
			w := rule.weights[j] * span * math.Exp(-x*(1+math.Cosh(t)))
			if w == 0 {
				continue
			}
			for i, nu := range orders {
				out[i] += w * math.Cosh(nu*t)
			}
		}
	}
}

// besselCutoff returns the t beyond which the integrand is negligible.
func besselCutoff(nu, x float64) float64 {
	t := math.Acosh(1 + tailExponent/x)
	if math.IsInf(t, 1) {
		return t
	}
	for x*(math.Cosh(t)-1)-nu*t < tailExponent {
		t += maxPanelWidth
	}
	return t
}

// besselSmallArgument is the leading term of K_nu near zero.
func besselSmallArgument(nu, x float64) float64 {
	if nu == 0 {
		return -math.Log(x/2) - 0.5772156649015329
	}
	return 0.5 * math.Gamma(nu) * math.Pow(2/x, nu)
}
