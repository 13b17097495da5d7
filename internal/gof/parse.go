package gof

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gofit/internal/errors"
)

// ParseValue reads one sample value. Non-numeric text, NaN and infinities are
// input errors.
func ParseValue(field string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return 0, errors.InvalidInput(fmt.Sprintf("%q is not a number", field))
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.InvalidInput(fmt.Sprintf("%q is not a finite number", field))
	}
	return v, nil
}

// ParseData reads sample values, reporting the position of the first bad
// field. An empty list is an input error.
func ParseData(fields []string) ([]float64, error) {
	if len(fields) == 0 {
		return nil, errors.InvalidInput("no data values")
	}
	data := make([]float64, len(fields))
	for i, field := range fields {
		v, err := ParseValue(field)
		if err != nil {
			return nil, errors.Wrapf(err, "value %d", i+1)
		}
		data[i] = v
	}
	return data, nil
}
