package pricing

import "math"

// RoundToNearestFive rounds to the nearest multiple of 5 currency units.
func RoundToNearestFive(v float64) float64 {
	return math.Round(v/5) * 5
}

// RoundPrice rounds to the nearest 5 when toFive is set, otherwise to the
// nearest integer.
func RoundPrice(v float64, toFive bool) float64 {
	if toFive {
		return RoundToNearestFive(v)
	}
	return math.Round(v)
}

// ClampZero floors a price at zero.
func ClampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
