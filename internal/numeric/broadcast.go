package numeric

import (
	"fmt"

	"gofit/internal/errors"
)

// ScalarFunc evaluates one (statistic, samples) point.
type ScalarFunc func(statistic float64, samples int) (float64, error)

// Broadcast evaluates f element-wise. Slices of equal length are paired index
// by index; a slice of length one is repeated against the other operand. Any
// other combination of lengths is an input error. Evaluation is sequential and
// stops at the first failing element.
func Broadcast(f ScalarFunc, statistics []float64, samples []int) ([]float64, error) {
	n, err := broadcastLen(len(statistics), len(samples))
	if err != nil {
		return nil, err
	}

	out := make([]float64, n)
	for i := range out {
		stat := statistics[pick(i, len(statistics))]
		count := samples[pick(i, len(samples))]
		v, err := f(stat, count)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		out[i] = v
	}
	return out, nil
}

func broadcastLen(a, b int) (int, error) {
	switch {
	case a == b:
		return a, nil
	case a == 1:
		return b, nil
	case b == 1:
		return a, nil
	}
	return 0, errors.InvalidInput(fmt.Sprintf("cannot broadcast %d statistics against %d sample counts", a, b))
}

func pick(i, length int) int {
	if length == 1 {
		return 0
	}
	return i
}
