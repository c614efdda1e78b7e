// Package scenario evaluates the monthly cash-flow impact of selling the
// current home, paying off listed debts with the proceeds and buying a new
// home at a different rate.
package scenario

import (
	"github.com/iwvelando/equity-unlock/pkg/constants"
	"github.com/iwvelando/equity-unlock/pkg/loans"
	"github.com/iwvelando/equity-unlock/pkg/mathutil"
)

// CurrentHome describes the home being sold.
type CurrentHome struct {
	Value             float64 `json:"value" yaml:"value" mapstructure:"value"`
	MortgageBalance   float64 `json:"mortgageBalance" yaml:"mortgageBalance" mapstructure:"mortgageBalance"`
	InterestRate      float64 `json:"interestRate" yaml:"interestRate" mapstructure:"interestRate"` // annual percent
	PropertyTaxYearly float64 `json:"propertyTaxYearly" yaml:"propertyTaxYearly" mapstructure:"propertyTaxYearly"`
	HOAMonthly        float64 `json:"hoaMonthly" yaml:"hoaMonthly" mapstructure:"hoaMonthly"`
}

// NewHome describes the home being bought.
type NewHome struct {
	Price               float64 `json:"price" yaml:"price" mapstructure:"price"`
	InterestRate        float64 `json:"interestRate" yaml:"interestRate" mapstructure:"interestRate"` // annual percent
	PropertyTaxYearly   float64 `json:"propertyTaxYearly" yaml:"propertyTaxYearly" mapstructure:"propertyTaxYearly"`
	HOAMonthly          float64 `json:"hoaMonthly" yaml:"hoaMonthly" mapstructure:"hoaMonthly"`
	ClosingCostsPercent float64 `json:"closingCostsPercent" yaml:"closingCostsPercent" mapstructure:"closingCostsPercent"`
}

// Result holds every figure derived from one evaluation.
//
// AvailableDownPayment and NewLoanAmount are deliberately left unclamped:
// when the sale proceeds cannot cover the liabilities and closing costs the
// down payment goes negative and the loan grows past the purchase price.
type Result struct {
	NetEquity               float64 `json:"netEquity" yaml:"netEquity"`
	SellingCosts            float64 `json:"sellingCosts" yaml:"sellingCosts"`
	TotalLiabilitiesPayoff  float64 `json:"totalLiabilitiesPayoff" yaml:"totalLiabilitiesPayoff"`
	AvailableDownPayment    float64 `json:"availableDownPayment" yaml:"availableDownPayment"`
	NewLoanAmount           float64 `json:"newLoanAmount" yaml:"newLoanAmount"`
	OldPrincipalAndInterest float64 `json:"oldPrincipalAndInterest" yaml:"oldPrincipalAndInterest"`
	NewPrincipalAndInterest float64 `json:"newPrincipalAndInterest" yaml:"newPrincipalAndInterest"`
	TotalLiabilityPayments  float64 `json:"totalLiabilityPayments" yaml:"totalLiabilityPayments"`
	OldMonthlyTotal         float64 `json:"oldMonthlyTotal" yaml:"oldMonthlyTotal"`
	NewMonthlyTotal         float64 `json:"newMonthlyTotal" yaml:"newMonthlyTotal"`
	MonthlySavings          float64 `json:"monthlySavings" yaml:"monthlySavings"`

	// BreakEvenMonths is not computed yet and is always nil.
	BreakEvenMonths *float64 `json:"breakEvenMonths" yaml:"breakEvenMonths"`
}

// BreakEvenComputed reports whether BreakEvenMonths carries a real value.
func (r Result) BreakEvenComputed() bool {
	return r.BreakEvenMonths != nil
}

// Evaluate computes the sell, payoff and buy comparison. It is a pure
// function of its arguments and never fails; non-finite inputs propagate to
// the result and must be rejected by the caller beforehand.
func Evaluate(current CurrentHome, liabilities []Liability, newHome NewHome) Result {
	// Sell side.
	sellingCosts := current.Value * constants.SellingCostRate
	grossEquity := current.Value - current.MortgageBalance
	netProceedsAfterSale := grossEquity - sellingCosts

	// Liability payoff.
	debts := Liabilities(liabilities)
	totalLiabilitiesBalance := debts.TotalBalance()
	totalLiabilityPayments := debts.TotalMonthlyPayment()

	// Buy side. Liabilities are assumed paid in full even when the proceeds
	// fall short.
	availableDownPayment := netProceedsAfterSale - totalLiabilitiesBalance
	buyingClosingCosts := mathutil.ApplyPercentage(newHome.Price, newHome.ClosingCostsPercent)
	availableDownPayment = availableDownPayment - buyingClosingCosts

	newLoanAmount := newHome.Price - availableDownPayment

	// The existing balance is re-amortized over a fresh term at the current
	// rate as a proxy for the real payment; origination is not modeled.
	oldPrincipalAndInterest := loans.StandardMonthlyPayment(current.MortgageBalance, current.InterestRate)
	oldMonthlyTotal := oldPrincipalAndInterest +
		mathutil.Monthly(current.PropertyTaxYearly) +
		current.HOAMonthly +
		totalLiabilityPayments

	newPrincipalAndInterest := loans.StandardMonthlyPayment(newLoanAmount, newHome.InterestRate)
	newMonthlyTotal := newPrincipalAndInterest +
		mathutil.Monthly(newHome.PropertyTaxYearly) +
		newHome.HOAMonthly

	return Result{
		NetEquity:               grossEquity,
		SellingCosts:            sellingCosts,
		TotalLiabilitiesPayoff:  totalLiabilitiesBalance,
		AvailableDownPayment:    availableDownPayment,
		NewLoanAmount:           newLoanAmount,
		OldPrincipalAndInterest: oldPrincipalAndInterest,
		NewPrincipalAndInterest: newPrincipalAndInterest,
		TotalLiabilityPayments:  totalLiabilityPayments,
		OldMonthlyTotal:         oldMonthlyTotal,
		NewMonthlyTotal:         newMonthlyTotal,
		MonthlySavings:          oldMonthlyTotal - newMonthlyTotal,
		BreakEvenMonths:         nil,
	}
}

// Inputs groups the three records an evaluation is computed from.
type Inputs struct {
	Current     CurrentHome `json:"current" yaml:"current" mapstructure:"current"`
	Liabilities Liabilities `json:"liabilities" yaml:"liabilities" mapstructure:"liabilities"`
	NewHome     NewHome     `json:"newHome" yaml:"newHome" mapstructure:"newHome"`
}

// Evaluate runs Evaluate on the grouped inputs.
func (in Inputs) Evaluate() Result {
	return Evaluate(in.Current, in.Liabilities, in.NewHome)
}
