package nulldist

import (
	"fmt"
	"math"
)

// Regime maps a region of the (statistic, samples) plane to one evaluation
// strategy.
type Regime struct {
	Name    string
	Applies func(statistic float64, samples int) bool
	Eval    func(statistic float64, samples int) float64
}

// Regimes is an ordered list; the first applicable regime wins. The last
// entry must apply everywhere.
type Regimes []Regime

// Select returns the regime responsible for the point.
func (rs Regimes) Select(statistic float64, samples int) Regime {
	for _, r := range rs {
		if r.Applies == nil || r.Applies(statistic, samples) {
			return r
		}
	}
	panic(fmt.Sprintf("nulldist: no regime for statistic %g with %d samples", statistic, samples))
}

// Eval evaluates the point with the selected regime.
func (rs Regimes) Eval(statistic float64, samples int) float64 {
	return rs.Select(statistic, samples).Eval(statistic, samples)
}

// Names lists the regimes in dispatch order.
func (rs Regimes) Names() []string {
	names := make([]string, len(rs))
	for i, r := range rs {
		names[i] = r.Name
	}
	return names
}

func always(float64, int) bool { return true }

func zero(float64, int) float64 { return 0 }

func one(float64, int) float64 { return 1 }

// clamp01 trims rounding excursions outside [0, 1]. An infinite probability
// means a strategy broke down and comes out as NaN rather than a bound.
func clamp01(p float64) float64 {
	switch {
	case math.IsNaN(p):
		return p
	case math.IsInf(p, 0):
		return math.NaN()
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}
