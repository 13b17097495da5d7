package gof

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gofit/internal/errors"

	"gonum.org/v1/gonum/stat/distuv"
)

// distributionSpec describes a named distribution: the shape parameters it
// requires ahead of the optional loc and scale, and a constructor.
type distributionSpec struct {
	shapes []string
	build  func(shapes []float64, loc, scale float64) CDF
}

var distributions = map[string]distributionSpec{
	"norm": {
		build: func(_ []float64, loc, scale float64) CDF {
			return distuv.Normal{Mu: loc, Sigma: scale}
		},
	},
	"uniform": {
		build: func(_ []float64, loc, scale float64) CDF {
			return distuv.Uniform{Min: loc, Max: loc + scale}
		},
	},
	"expon": {
		build: func(_ []float64, loc, scale float64) CDF {
			return shifted{dist: distuv.Exponential{Rate: 1 / scale}, loc: loc}
		},
	},
	"laplace": {
		build: func(_ []float64, loc, scale float64) CDF {
			return distuv.Laplace{Mu: loc, Scale: scale}
		},
	},
	"logistic": {
		build: func(_ []float64, loc, scale float64) CDF {
			return distuv.Logistic{Mu: loc, S: scale}
		},
	},
	"gumbel_r": {
		build: func(_ []float64, loc, scale float64) CDF {
			return distuv.GumbelRight{Mu: loc, Beta: scale}
		},
	},
	"t": {
		shapes: []string{"df"},
		build: func(shapes []float64, loc, scale float64) CDF {
			return distuv.StudentsT{Mu: loc, Sigma: scale, Nu: shapes[0]}
		},
	},
	"weibull_min": {
		shapes: []string{"c"},
		build: func(shapes []float64, loc, scale float64) CDF {
			return shifted{dist: distuv.Weibull{K: shapes[0], Lambda: scale}, loc: loc}
		},
	},
}

// shifted moves a distribution supported on [0, ∞) to [loc, ∞).
type shifted struct {
	dist CDF
	loc  float64
}

func (s shifted) CDF(x float64) float64 {
	return s.dist.CDF(x - s.loc)
}

// Distributions lists the names Lookup accepts.
func Distributions() []string {
	names := make([]string, 0, len(distributions))
	for name := range distributions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup builds a named distribution from positional parameters: shape
// parameters first (df for t, c for weibull_min), then loc and scale, which
// default to 0 and 1.
func Lookup(name string, params ...float64) (CDF, error) {
	spec, ok := distributions[name]
	if !ok {
		return nil, errors.InvalidInput(fmt.Sprintf("unknown distribution %q, expected one of %s",
			name, strings.Join(Distributions(), ", ")))
	}

	required := len(spec.shapes)
	if len(params) < required || len(params) > required+2 {
		return nil, errors.InvalidInput(fmt.Sprintf("%s takes %d to %d parameters, got %d",
			name, required, required+2, len(params)))
	}
	for i, p := range params {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return nil, errors.InvalidInput(fmt.Sprintf("%s parameter %d is not finite", name, i))
		}
	}

	shapes := params[:required]
	for i, s := range shapes {
		if s <= 0 {
			return nil, errors.InvalidInput(fmt.Sprintf("%s shape %s must be positive, got %g", name, spec.shapes[i], s))
		}
	}
	loc, scale := 0.0, 1.0
	if len(params) > required {
		loc = params[required]
	}
	if len(params) > required+1 {
		scale = params[required+1]
	}
	if scale <= 0 {
		return nil, errors.InvalidInput(fmt.Sprintf("%s scale must be positive, got %g", name, scale))
	}
	return spec.build(shapes, loc, scale), nil
}
