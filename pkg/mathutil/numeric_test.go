package mathutil

import "testing"

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{name: "round down", input: 1.2349, expected: 1.23},
		{name: "round up", input: 1.2351, expected: 1.24},
		{name: "negative rounds away from zero", input: -1.006, expected: -1.01},
		{name: "already exact", input: 42.10, expected: 42.10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Round(tt.input); got != tt.expected {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name        string
		val, lo, hi float64
		expected    float64
	}{
		{name: "within range", val: 5, lo: 0, hi: 10, expected: 5},
		{name: "below range", val: -3, lo: 0, hi: 10, expected: 0},
		{name: "above range", val: 15, lo: 0, hi: 10, expected: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.val, tt.lo, tt.hi); got != tt.expected {
				t.Errorf("Clamp(%v, %v, %v) = %v, expected %v", tt.val, tt.lo, tt.hi, got, tt.expected)
			}
		})
	}
}

func TestSafeRatio(t *testing.T) {
	if got := SafeRatio(10, 4); got != 2.5 {
		t.Errorf("SafeRatio(10, 4) = %v, expected 2.5", got)
	}
	if got := SafeRatio(10, 0); got != 0 {
		t.Errorf("SafeRatio(10, 0) = %v, expected 0 sentinel", got)
	}
}
