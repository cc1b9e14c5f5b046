package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{name: "Rounds up", input: 1234.567, expected: 1234.57},
		{name: "Rounds down", input: 1234.561, expected: 1234.56},
		{name: "Already at cents", input: 42.25, expected: 42.25},
		{name: "Negative", input: -0.005, expected: -0.01},
		{name: "Zero", input: 0, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Round(tt.input); got != tt.expected {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsZero(t *testing.T) {
	if !IsZero(0.005) {
		t.Error("IsZero(0.005) = false, expected true")
	}
	if IsZero(0.02) {
		t.Error("IsZero(0.02) = true, expected false")
	}
}

func TestWithinTolerance(t *testing.T) {
	if !WithinTolerance(100.004, 100.0, 0.01) {
		t.Error("WithinTolerance(100.004, 100.0, 0.01) = false, expected true")
	}
	if WithinTolerance(100.02, 100.0, 0.01) {
		t.Error("WithinTolerance(100.02, 100.0, 0.01) = true, expected false")
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{name: "NaN", input: math.NaN(), expected: 0},
		{name: "Positive infinity", input: math.Inf(1), expected: 0},
		{name: "Negative infinity", input: math.Inf(-1), expected: 0},
		{name: "Finite passes through", input: -1234.56, expected: -1234.56},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.expected {
				t.Errorf("Sanitize(%v) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestApplyPercentage(t *testing.T) {
	if got := ApplyPercentage(400000, 20); math.Abs(got-80000) > 1e-6 {
		t.Errorf("ApplyPercentage(400000, 20) = %v, expected 80000", got)
	}
	if got := ApplyPercentage(1000, 0); got != 0 {
		t.Errorf("ApplyPercentage(1000, 0) = %v, expected 0", got)
	}
}
