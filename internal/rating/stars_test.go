package rating

import (
	"math"
	"testing"
)

func TestStars(t *testing.T) {
	tests := []struct {
		name   string
		rating float64
		full   int
		half   int
		empty  int
	}{
		{"zero", 0, 0, 0, 5},
		{"half star", 0.5, 0, 1, 4},
		{"one", 1, 1, 0, 4},
		{"three and a half", 3.5, 3, 1, 1},
		{"four and a half", 4.5, 4, 1, 0},
		{"full marks", 5, 5, 0, 0},
		{"above scale", 5.5, 0, 0, 5},
		{"six", 6, 0, 0, 5},
		{"negative", -1, 0, 0, 5},
		{"not a number", math.NaN(), 0, 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			full, half, empty := Stars(tt.rating)
			if full != tt.full || half != tt.half || empty != tt.empty {
				t.Errorf("Stars(%v) = (%d, %d, %d), want (%d, %d, %d)",
					tt.rating, full, half, empty, tt.full, tt.half, tt.empty)
			}
		})
	}
}

func TestRoundHalf(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{4.2, 4.0},
		{4.25, 4.5},
		{4.3, 4.5},
		{4.74, 4.5},
		{4.75, 5.0},
		{0, 0},
	}

	for _, tt := range tests {
		if got := RoundHalf(tt.in); got != tt.want {
			t.Errorf("RoundHalf(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
