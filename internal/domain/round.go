package domain

import "math"

// Round2 rounds to 2 decimal places. All user-visible scores and token
// amounts are reported at this precision.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Clamp01 clamps a score into [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
