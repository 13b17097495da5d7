package numeric

// Varange returns n values start, start+1, ..., start+n-1.
func Varange(start float64, n int) []float64 {
	if n < 0 {
		n = 0
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)
	}
	return out
}

// VarangeRows returns one Varange row per start value.
func VarangeRows(starts []float64, n int) [][]float64 {
	rows := make([][]float64, len(starts))
	for i, start := range starts {
		rows[i] = Varange(start, n)
	}
	return rows
}

// Polynomial holds coefficients in ascending order of power.
type Polynomial []float64

// Eval evaluates the polynomial at x using Horner's scheme.
func (p Polynomial) Eval(x float64) float64 {
	if len(p) == 0 {
		return 0
	}
	acc := p[len(p)-1]
	for i := len(p) - 2; i >= 0; i-- {
		acc = acc*x + p[i]
	}
	return acc
}
