package errors

import (
	"math"
)

// CheckVector returns a NumericalInstabilityError if any value is NaN or Inf.
// At most the first few offending values are reported.
func CheckVector(op string, values []float64) error {
	var unstable []float64
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			unstable = append(unstable, v)
			if len(unstable) >= 10 {
				break
			}
		}
	}
	if len(unstable) > 0 {
		return NewNumericalInstabilityError(op, unstable)
	}
	return nil
}

// CheckScalar returns a NumericalInstabilityError if the value is NaN or Inf.
func CheckScalar(op string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NewNumericalInstabilityError(op, []float64{value})
	}
	return nil
}
