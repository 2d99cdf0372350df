package utils

import "math"

// Round2 rounds a value to 2 decimal places.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// IsFinite reports whether a value is neither infinite nor NaN.
func IsFinite(value float64) bool {
	return !math.IsInf(value, 0) && !math.IsNaN(value)
}
