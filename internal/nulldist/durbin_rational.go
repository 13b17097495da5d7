package nulldist

import (
	"math"
	"math/big"
)

// DurbinRecurrenceRational returns P(D_n < statistic) exactly, evaluating
// Durbin's recurrence (doi:10.18637/jss.v026.i02) in rational arithmetic.
// It is a reference for checking DurbinMatrix and is far too slow for
// routine use beyond a few dozen samples. samples must be positive and
// statistic in (0, 1).
func DurbinRecurrenceRational(samples int, statistic *big.Rat) *big.Rat {
	t := new(big.Rat).Mul(statistic, ratInt(samples))
	twoT := new(big.Rat).Mul(t, ratInt(2))
	negT := new(big.Rat).Neg(t)

	ft1 := floorRat(t) + 1
	fmt1 := floorRat(negT) + 1
	fdt1 := floorRat(twoT) + 1

	qs := make([]*big.Rat, samples+1)

	// q_i = i^i/i! while i <= t.
	i := 0
	for ; i < ft1 && i <= samples; i++ {
		qs[i] = new(big.Rat).SetFrac(intPow(i, i), factorial(i))
	}

	// t < i <= 2t subtracts the paths that cross the upper boundary.
	for ; i < fdt1 && i <= samples; i++ {
		sum := new(big.Rat)
		for j := 0; j < i+fmt1; j++ {
			left := ratPow(new(big.Rat).Add(t, ratInt(j)), j-1)
			left.Quo(left, new(big.Rat).SetInt(factorial(j)))
			base := new(big.Rat).Sub(ratInt(i-j), t)
			right := ratPow(base, i-j)
			right.Quo(right, new(big.Rat).SetInt(factorial(i-j)))
			sum.Add(sum, left.Mul(left, right))
		}
		q := new(big.Rat).SetFrac(intPow(i, i), factorial(i))
		qs[i] = q.Sub(q, sum.Mul(sum, twoT))
	}

	// Beyond 2t the recurrence only looks back fdt1 - 1 steps.
	for ; i <= samples; i++ {
		sum := new(big.Rat)
		for j := 1; j < fdt1; j++ {
			term := ratPow(new(big.Rat).Sub(twoT, ratInt(j)), j)
			term.Quo(term, new(big.Rat).SetInt(factorial(j)))
			term.Mul(term, qs[i-j])
			if j%2 == 1 {
				term.Neg(term)
			}
			sum.Add(sum, term)
		}
		qs[i] = sum.Neg(sum)
	}

	res := new(big.Rat).Mul(qs[samples], new(big.Rat).SetInt(factorial(samples)))
	return res.Quo(res, new(big.Rat).SetInt(intPow(samples, samples)))
}

// DurbinRecurrence adapts DurbinRecurrenceRational to the ExactMethod
// signature. The statistic is converted to a rational exactly.
func DurbinRecurrence(samples int, statistic float64) float64 {
	if math.IsNaN(statistic) || math.IsInf(statistic, 0) {
		return math.NaN()
	}
	p, _ := DurbinRecurrenceRational(samples, new(big.Rat).SetFloat64(statistic)).Float64()
	return p
}

func ratInt(i int) *big.Rat {
	return new(big.Rat).SetInt64(int64(i))
}

// floorRat rounds toward negative infinity.
func floorRat(r *big.Rat) int {
	// Euclidean division floors for a positive denominator.
	return int(new(big.Int).Div(r.Num(), r.Denom()).Int64())
}

func intPow(base, exp int) *big.Int {
	return new(big.Int).Exp(big.NewInt(int64(base)), big.NewInt(int64(exp)), nil)
}

func factorial(n int) *big.Int {
	if n < 2 {
		return big.NewInt(1)
	}
	return new(big.Int).MulRange(1, int64(n))
}

// ratPow raises r to an integer power; 0^0 is 1.
func ratPow(r *big.Rat, exp int) *big.Rat {
	if exp < 0 {
		r = new(big.Rat).Inv(r)
		exp = -exp
	}
	num := new(big.Int).Exp(r.Num(), big.NewInt(int64(exp)), nil)
	den := new(big.Int).Exp(r.Denom(), big.NewInt(int64(exp)), nil)
	return new(big.Rat).SetFrac(num, den)
}
