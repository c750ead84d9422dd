package common

import "math"

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// RoundToInt rounds half away from zero.
func RoundToInt(v float64) int {
	return int(math.Round(v))
}

func FloorToInt(v float64) int {
	return int(math.Floor(v))
}
