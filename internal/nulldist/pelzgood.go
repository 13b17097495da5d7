package nulldist

import "math"

const (
	// The published series keeps 21 terms of each sum.
	pelzGoodMinTerms = 21
	// Further terms are added until w·k² passes this bound.
	pelzGoodDecay = 60
)

// PelzGood approximates P(D_n < statistic) with the Pelz-Good expansion of
// the Li-Chien formula (doi:10.18637/jss.v039.i11), carrying corrections up to
// third order in 1/sqrt(n). Only accurate when n·statistic² is not small.
func PelzGood(samples int, statistic float64) float64 {
	const (
		pi2 = math.Pi * math.Pi
		pi4 = pi2 * pi2
		pi6 = pi2 * pi4
	)
	x := 1 / statistic
	r2 := 1 / float64(samples)
	rx := math.Sqrt(r2) * x
	r2x := r2 * x
	r2x2 := r2x * x
	r4x := r2x * r2
	r4x2 := r2x2 * r2
	r4x3 := r2x2 * r2x
	r5x3 := r4x2 * rx
	r5x4 := r4x3 * rx
	r6x3 := r4x2 * r2x
	r7x5 := r5x4 * r2x
	r9x6 := r7x5 * r2x
	r11x8 := r9x6 * r2x2

	a1 := rx * (-r6x3/108 + r4x2/18 - r4x/36 - r2x/3 + r2/6 + 2)
	a2 := pi2 / 3 * r5x3 * (r4x3/8 - r2x2*5/12 - r2x*4/45 + x + 1./6)
	a3 := pi4 / 9 * r7x5 * (-r4x3/6 + r2x2/4 + r2x*53/90 - 1./2)
	a4 := pi6 / 108 * r11x8 * (r2x2/6 - 1)
	a5 := pi2 / 18 * r5x3 * (r2x/2 - 1)
	a6 := -pi4 * r9x6 / 108
	w := -pi2 / 2 * r2x2

	// The Gaussian weights decay slowly once sqrt(n)·statistic is large; 21
	// terms would then lose a visible part of the mass.
	terms := max(pelzGoodMinTerms, int(math.Ceil(math.Sqrt(pelzGoodDecay/-w))))
	sum := 0.0
	for k := 0; k < terms; k++ {
		h := float64(k) + .5
		i := float64(k) + 1
		hs2, is2 := h*h, i*i
		sum += (a1 + (a2+(a3+a4*hs2)*hs2)*hs2) * math.Exp(w*hs2)
		sum += (a5 + a6*is2) * is2 * math.Exp(w*is2)
	}
	return math.Sqrt(math.Pi/2) * sum
}
