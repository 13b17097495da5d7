package nulldist

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// The remaining power of two is carried separately from the mantissas. Matrix
// powers are held to an infinity norm of at most 2^256, so the product of two
// stays below 2^512. The n!/n^n product is kept above 2^-512.
const (
	matrixShift   = 256
	matrixScale   = 0x1p256
	exponentShift = 512
	exponentScale = 0x1p512
)

// DurbinMatrix returns P(D_n < statistic) through Durbin's matrix formula,
// following Marsaglia, Tsang and Wang (doi:10.18637/jss.v008.i18). The matrix
// power and the n!/n^n factor are accumulated as mantissa and base-2 exponent
// so neither overflows. Cost grows as (n·statistic)³·log n; samples must be
// positive.
func DurbinMatrix(samples int, statistic float64) float64 {
	kf, frac := math.Modf(float64(samples) * statistic)
	k := int(kf)
	h := 1 - frac

	p, exp := durbinPower(durbinBase(2*k+1, h), samples)

	x := p.At(k, k)
	n := float64(samples)
	for i := 1; i <= samples; i++ {
		x *= float64(i) / n
		if x < 1/exponentScale {
			x *= exponentScale
			exp -= exponentShift
		}
	}
	return math.Ldexp(x, exp)
}

// durbinBase builds the m×m matrix H for fractional excess h.
func durbinBase(m int, h float64) *mat.Dense {
	a := mat.NewDense(m, m, nil)
	for i := 0; i < m; i++ {
		for j := 0; j <= i+1 && j < m; j++ {
			a.Set(i, j, 1)
		}
	}
	for i := 0; i < m; i++ {
		a.Set(i, 0, a.At(i, 0)-math.Pow(h, float64(i+1)))
	}
	for j := 0; j < m; j++ {
		a.Set(m-1, j, a.At(m-1, j)-math.Pow(h, float64(m-j)))
	}
	if h > .5 {
		a.Set(m-1, 0, a.At(m-1, 0)+math.Pow(2*h-1, float64(m)))
	}
	a.Apply(func(i, j int, v float64) float64 {
		return v / math.Gamma(math.Max(1, float64(i-j+2)))
	}, a)
	return a
}

// durbinPower raises a to the n-th power by repeated squaring, rescaling
// whenever the infinity norm of a partial product passes 2^256. It returns
// the mantissa matrix and its base-2 exponent.
func durbinPower(a *mat.Dense, n int) (*mat.Dense, int) {
	m, _ := a.Dims()
	p := identity(m)
	base := mat.DenseCopyOf(a)
	tmp := mat.NewDense(m, m, nil)
	expBase, expP := 0, 0

	rescale := func(x *mat.Dense, exp *int) {
		for mat.Norm(x, math.Inf(1)) > matrixScale {
			x.Scale(1/matrixScale, x)
			*exp += matrixShift
		}
	}

	for s := n; s != 1; s /= 2 {
		if s%2 == 1 {
			tmp.Mul(p, base)
			p, tmp = tmp, p
			expP += expBase
			rescale(p, &expP)
		}
		tmp.Mul(base, base)
		base, tmp = tmp, base
		expBase *= 2
		rescale(base, &expBase)
	}
	tmp.Mul(p, base)
	exp := expP + expBase
	rescale(tmp, &exp)
	return tmp, exp
}

func identity(m int) *mat.Dense {
	id := mat.NewDense(m, m, nil)
	for i := 0; i < m; i++ {
		id.Set(i, i, 1)
	}
	return id
}
