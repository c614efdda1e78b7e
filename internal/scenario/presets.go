package scenario

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTier is returned for a preset tier that does not exist.
var ErrUnknownTier = errors.New("unknown scenario tier")

// Tier labels one of the built-in example scenarios.
type Tier string

const (
	Conservative Tier = "CONSERVATIVE"
	Moderate     Tier = "MODERATE"
	Aggressive   Tier = "AGGRESSIVE"
)

func (t Tier) String() string {
	return string(t)
}

// Tiers lists the preset tiers in display order.
func Tiers() []Tier {
	return []Tier{Conservative, Moderate, Aggressive}
}

// ParseTier maps a tier name (case-insensitive) to a Tier.
func ParseTier(name string) (Tier, error) {
	candidate := Tier(strings.ToUpper(strings.TrimSpace(name)))
	if _, ok := presets[candidate]; ok {
		return candidate, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTier, name)
}

// Preset returns the example inputs for tier. Liability ids are regenerated
// on every call so presets can be loaded next to each other.
func Preset(tier Tier) (Inputs, error) {
	in, ok := presets[tier]
	if !ok {
		return Inputs{}, fmt.Errorf("%w: %q", ErrUnknownTier, string(tier))
	}
	in.Liabilities = in.Liabilities.WithFreshIDs()
	return in, nil
}

var presets = map[Tier]Inputs{
	Conservative: {
		Current: CurrentHome{
			Value:             650000,
			MortgageBalance:   400000,
			InterestRate:      3.25,
			PropertyTaxYearly: 7500,
			HOAMonthly:        50,
		},
		Liabilities: Liabilities{
			{Name: "Auto Loan", Balance: 35000, MonthlyPayment: 650},
			{Name: "Credit Cards", Balance: 15000, MonthlyPayment: 400},
		},
		NewHome: NewHome{
			Price:               750000,
			InterestRate:        6.5,
			PropertyTaxYearly:   8500,
			HOAMonthly:          100,
			ClosingCostsPercent: 2,
		},
	},
	Moderate: {
		Current: CurrentHome{
			Value:             850000,
			MortgageBalance:   500000,
			InterestRate:      3.0,
			PropertyTaxYearly: 9000,
			HOAMonthly:        150,
		},
		Liabilities: Liabilities{
			{Name: "SUV Loan", Balance: 45000, MonthlyPayment: 850},
			{Name: "Student Loans", Balance: 60000, MonthlyPayment: 600},
			{Name: "Credit Cards", Balance: 25000, MonthlyPayment: 750},
		},
		NewHome: NewHome{
			Price:               900000,
			InterestRate:        6.8,
			PropertyTaxYearly:   10000,
			HOAMonthly:          200,
			ClosingCostsPercent: 2,
		},
	},
	Aggressive: {
		Current: CurrentHome{
			Value:             1200000,
			MortgageBalance:   600000,
			InterestRate:      2.8,
			PropertyTaxYearly: 14000,
			HOAMonthly:        300,
		},
		Liabilities: Liabilities{
			{Name: "Luxury Car", Balance: 80000, MonthlyPayment: 1400},
			{Name: "Personal Loan", Balance: 50000, MonthlyPayment: 1100},
			{Name: "Credit Consolidation", Balance: 40000, MonthlyPayment: 1200},
		},
		NewHome: NewHome{
			Price:               1400000,
			InterestRate:        7.2,
			PropertyTaxYearly:   16000,
			HOAMonthly:          400,
			ClosingCostsPercent: 2,
		},
	},
}
