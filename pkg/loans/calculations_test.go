package loans

import (
	"errors"
	"math"
	"testing"
)

func TestCalculateMonthlyPayment(t *testing.T) {
	tests := []struct {
		name               string
		principal          float64
		annualInterestRate float64
		termYears          int
		expected           float64
		tolerance          float64
	}{
		{
			name:               "Standard 30-year mortgage",
			principal:          100000,
			annualInterestRate: 6.0,
			termYears:          30,
			expected:           599.55,
			tolerance:          0.01,
		},
		{
			name:               "Reference schedule loan",
			principal:          175000,
			annualInterestRate: 4.5,
			termYears:          30,
			expected:           886.70,
			tolerance:          0.01,
		},
		{
			name:               "Low rate existing balance",
			principal:          300000,
			annualInterestRate: 3.0,
			termYears:          30,
			expected:           1264.81,
			tolerance:          0.01,
		},
		{
			name:               "New home loan",
			principal:          484000,
			annualInterestRate: 6.5,
			termYears:          30,
			expected:           3059.21,
			tolerance:          0.01,
		},
		{
			name:               "40-year term",
			principal:          100000,
			annualInterestRate: 6.0,
			termYears:          40,
			expected:           550.21,
			tolerance:          0.01,
		},
		{
			name:               "Large principal at high rate",
			principal:          10000000,
			annualInterestRate: 20.0,
			termYears:          30,
			expected:           167101.87,
			tolerance:          0.01,
		},
		{
			name:               "Extreme rate pays interest only",
			principal:          100000,
			annualInterestRate: 20000,
			termYears:          30,
			expected:           100000 * 20000 / 1200.0,
			tolerance:          1e-6,
		},
		{
			name:               "Absurd rate stays finite",
			principal:          100000,
			annualInterestRate: 1e6,
			termYears:          30,
			expected:           100000 * 1e6 / 1200.0,
			tolerance:          1e-3,
		},
		{
			name:               "Zero interest loan",
			principal:          36000,
			annualInterestRate: 0.0,
			termYears:          30,
			expected:           100.0,
			tolerance:          1e-9,
		},
		{
			name:               "Zero principal",
			principal:          0,
			annualInterestRate: 5.0,
			termYears:          30,
			expected:           0,
			tolerance:          1e-9,
		},
		{
			name:               "Negative principal",
			principal:          -100000,
			annualInterestRate: 5.0,
			termYears:          30,
			expected:           -536.82,
			tolerance:          0.01,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CalculateMonthlyPayment(tt.principal, tt.annualInterestRate, tt.termYears)
			if err != nil {
				t.Fatalf("CalculateMonthlyPayment() error = %v", err)
			}
			if math.Abs(result-tt.expected) > tt.tolerance {
				t.Errorf("CalculateMonthlyPayment() = %.4f, expected %.4f", result, tt.expected)
			}
		})
	}
}

func TestCalculateMonthlyPaymentInvalidTerm(t *testing.T) {
	for _, term := range []int{0, -1, -30} {
		_, err := CalculateMonthlyPayment(100000, 6.0, term)
		if !errors.Is(err, ErrInvalidTerm) {
			t.Errorf("term %d: expected ErrInvalidTerm, got %v", term, err)
		}
	}
}

func TestCalculateMonthlyPaymentZeroRateIsExact(t *testing.T) {
	principals := []float64{0, 1, 12345.67, 100000, 333333.33, -5000}
	terms := []int{1, 7, 15, 30, 40}

	for _, principal := range principals {
		for _, term := range terms {
			result, err := CalculateMonthlyPayment(principal, 0, term)
			if err != nil {
				t.Fatalf("CalculateMonthlyPayment() error = %v", err)
			}
			expected := principal / float64(term*12)
			if result != expected {
				t.Errorf("CalculateMonthlyPayment(%v, 0, %d) = %v, expected exactly %v", principal, term, result, expected)
			}
		}
	}
}

func TestCalculateMonthlyPaymentCoversPrincipal(t *testing.T) {
	principals := []float64{0, 1000, 250000, 1e7}
	rates := []float64{0, 0.5, 3.0, 6.5, 12.0, 20.0, 5000, 20000, 1e6}
	terms := []int{1, 15, 30, 40}

	for _, principal := range principals {
		for _, rate := range rates {
			for _, term := range terms {
				payment, err := CalculateMonthlyPayment(principal, rate, term)
				if err != nil {
					t.Fatalf("CalculateMonthlyPayment() error = %v", err)
				}
				if math.IsNaN(payment) || math.IsInf(payment, 0) {
					t.Fatalf("payment for %v @ %v%% over %d years is not finite: %v", principal, rate, term, payment)
				}
				if payment < 0 {
					t.Errorf("payment for %v @ %v%% over %d years is negative: %v", principal, rate, term, payment)
				}
				totalPaid := payment * float64(term*12)
				// Allow for float rounding in the zero-rate case.
				if totalPaid < principal*(1-1e-12) {
					t.Errorf("total paid %.2f does not cover principal %.2f (%v%%, %d years)", totalPaid, principal, rate, term)
				}
			}
		}
	}
}

func TestCalculateMonthlyPaymentDeterministic(t *testing.T) {
	first, _ := CalculateMonthlyPayment(484000, 6.5, 30)
	second, _ := CalculateMonthlyPayment(484000, 6.5, 30)
	if first != second {
		t.Errorf("expected identical results, got %v and %v", first, second)
	}
}

func TestCalculateMonthlyPaymentTinyRate(t *testing.T) {
	result, err := CalculateMonthlyPayment(36000, 1e-300, 30)
	if err != nil {
		t.Fatalf("CalculateMonthlyPayment() error = %v", err)
	}
	if result != 100 {
		t.Errorf("expected straight-line payment of 100, got %v", result)
	}
}

func TestStandardMonthlyPayment(t *testing.T) {
	tests := []struct {
		principal float64
		rate      float64
	}{
		{100000, 6.0},
		{300000, 3.0},
		{0, 7.2},
		{-63000, 7.0},
		{360000, 0},
	}

	for _, tt := range tests {
		expected, err := CalculateMonthlyPayment(tt.principal, tt.rate, 30)
		if err != nil {
			t.Fatalf("CalculateMonthlyPayment() error = %v", err)
		}
		if got := StandardMonthlyPayment(tt.principal, tt.rate); got != expected {
			t.Errorf("StandardMonthlyPayment(%v, %v) = %v, expected %v", tt.principal, tt.rate, got, expected)
		}
	}
}
