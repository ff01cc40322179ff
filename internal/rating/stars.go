// Package rating maps a numeric review rating to the star glyph counts
// used when rendering it.
package rating

import "math"

// Stars splits a rating on the 0-5 half-point scale into full, half and
// empty star counts summing to 5. Anything outside (0, 5], including
// NaN, renders as five empty stars.
func Stars(r float64) (full, half, empty int) {
	if math.IsNaN(r) || r <= 0 || r > 5 {
		return 0, 0, 5
	}

	for i := 0; i <= 4; i++ {
		switch {
		case r-1 >= 0:
			full++
			r--
		case r == 0.5:
			half++
			r -= 0.5
		case r == 0:
			empty++
		default:
			return full, half, empty
		}
	}

	return full, half, empty
}

// RoundHalf rounds an average rating to the nearest half point, the
// granularity the star renderer understands.
func RoundHalf(r float64) float64 {
	return math.Round(r*2) / 2
}
