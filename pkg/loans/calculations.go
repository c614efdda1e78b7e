// Package loans provides common loan processing utilities.
package loans

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/equity-unlock/pkg/constants"
)

// ErrInvalidTerm is returned when a loan term is not a positive number of years.
var ErrInvalidTerm = errors.New("loan term must be a positive number of years")

// CalculateMonthlyPayment calculates the fixed monthly principal and interest
// payment that fully amortizes principal over termYears at a fixed nominal
// annual rate (in percent, compounded monthly).
//
// Any finite principal and rate is accepted; a negative principal yields a
// negative payment. Only a non-positive term is rejected.
func CalculateMonthlyPayment(principal, annualInterestRate float64, termYears int) (float64, error) {
	if termYears <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidTerm, termYears)
	}
	return monthlyPayment(principal, annualInterestRate, termYears*constants.MonthsPerYear), nil
}

// StandardMonthlyPayment calculates the monthly payment over the default
// 30-year term. It cannot fail.
func StandardMonthlyPayment(principal, annualInterestRate float64) float64 {
	return monthlyPayment(principal, annualInterestRate, constants.DefaultTermYears*constants.MonthsPerYear)
}

// monthlyPayment expects termMonths > 0.
func monthlyPayment(principal, annualInterestRate float64, termMonths int) float64 {
	if annualInterestRate == 0 {
		// For zero interest, simply divide the principal by term
		return principal / float64(termMonths)
	}

	periodicInterestRate := annualInterestRate / constants.PercentageMultiplier / constants.MonthsPerYear
	// r / (1 - (1+r)^-n) equals r*(1+r)^n / ((1+r)^n - 1) but tends to r
	// instead of overflowing for very large rates.
	denominator := 1.00 - math.Pow(1.00+periodicInterestRate, -float64(termMonths))
	if denominator == 0 {
		// Rates too small to register in float64 degrade to straight-line repayment.
		return principal / float64(termMonths)
	}
	return principal * periodicInterestRate / denominator
}
