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
		{"Round up at midpoint", 1.235, 1.24},
		{"Round down below midpoint", 1.234, 1.23},
		{"Monthly payment", 599.550525, 599.55},
		{"Large number", 12345.678, 12345.68},
		{"Negative number", -1.234, -1.23},
		{"Zero", 0.0, 0.0},
		{"Very small negative", -0.001, 0.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsNegative(t *testing.T) {
	tests := []struct {
		name         string
		input        float64
		wantNegative bool
	}{
		{"Exactly zero", 0.0, false},
		{"Within tolerance", 0.004, false},
		{"Exactly negative tolerance", -0.01, false},
		{"Just below negative tolerance", -0.02, true},
		{"Negative down payment", -14000, true},
		{"Positive", 100.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNegative(tt.input); got != tt.wantNegative {
				t.Errorf("IsNegative(%v) = %v, expected %v", tt.input, got, tt.wantNegative)
			}
		})
	}
}

func TestWithinTolerance(t *testing.T) {
	if !WithinTolerance(599.55, 599.5505, 0.01) {
		t.Error("expected values within one cent to match")
	}
	if WithinTolerance(100, 101, 0.5) {
		t.Error("expected values a dollar apart not to match at 0.5 tolerance")
	}
	if WithinTolerance(math.NaN(), 0, 1) {
		t.Error("expected NaN never to be within tolerance")
	}
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected bool
	}{
		{"Zero", 0, true},
		{"Large", 1e12, true},
		{"NaN", math.NaN(), false},
		{"Positive infinity", math.Inf(1), false},
		{"Negative infinity", math.Inf(-1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFinite(tt.input); got != tt.expected {
				t.Errorf("IsFinite(%v) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestApplyPercentage(t *testing.T) {
	tests := []struct {
		name       string
		value      float64
		percentage float64
		expected   float64
	}{
		{"Buy-side closing costs", 600000, 2, 12000},
		{"Zero percent", 600000, 0, 0},
		{"Fractional percent", 1000, 2.5, 25},
		{"Negative value", -1000, 10, -100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ApplyPercentage(tt.value, tt.percentage)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("ApplyPercentage(%v, %v) = %v, expected %v", tt.value, tt.percentage, result, tt.expected)
			}
		})
	}
}

func TestMonthly(t *testing.T) {
	if got := Monthly(6000); got != 500 {
		t.Errorf("Monthly(6000) = %v, expected 500", got)
	}
	if got := Monthly(0); got != 0 {
		t.Errorf("Monthly(0) = %v, expected 0", got)
	}
}
