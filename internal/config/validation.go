package config

import (
	"errors"
	"fmt"

	"github.com/iwvelando/equity-unlock/internal/scenario"
	"github.com/iwvelando/equity-unlock/pkg/format"
	"github.com/iwvelando/equity-unlock/pkg/mathutil"
)

// ErrNonFinite is returned when an input is NaN or infinite.
var ErrNonFinite = errors.New("value must be a finite number")

// ErrDuplicateID is returned when two liabilities share an id.
var ErrDuplicateID = errors.New("duplicate liability id")

type namedValue struct {
	name  string
	value float64
}

func numericFields(in scenario.Inputs) []namedValue {
	fields := []namedValue{
		{"current.value", in.Current.Value},
		{"current.mortgageBalance", in.Current.MortgageBalance},
		{"current.interestRate", in.Current.InterestRate},
		{"current.propertyTaxYearly", in.Current.PropertyTaxYearly},
		{"current.hoaMonthly", in.Current.HOAMonthly},
		{"newHome.price", in.NewHome.Price},
		{"newHome.interestRate", in.NewHome.InterestRate},
		{"newHome.propertyTaxYearly", in.NewHome.PropertyTaxYearly},
		{"newHome.hoaMonthly", in.NewHome.HOAMonthly},
		{"newHome.closingCostsPercent", in.NewHome.ClosingCostsPercent},
	}
	for i, l := range in.Liabilities {
		fields = append(fields,
			namedValue{fmt.Sprintf("liabilities[%d].balance", i), l.Balance},
			namedValue{fmt.Sprintf("liabilities[%d].monthlyPayment", i), l.MonthlyPayment},
		)
	}
	return fields
}

// ValidateInputs is the boundary check run before evaluation: every number
// must be finite and liability ids must be unique. Range problems are only
// warnings, see InputWarnings.
func ValidateInputs(in scenario.Inputs) error {
	var errs []error
	for _, f := range numericFields(in) {
		if !mathutil.IsFinite(f.value) {
			errs = append(errs, fmt.Errorf("%s: %w", f.name, ErrNonFinite))
		}
	}

	seen := make(map[string]struct{}, len(in.Liabilities))
	for _, l := range in.Liabilities {
		if l.ID == "" {
			continue
		}
		if _, dup := seen[l.ID]; dup {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateID, l.ID))
		}
		seen[l.ID] = struct{}{}
	}
	return errors.Join(errs...)
}

// InputWarnings lists questionable but evaluable inputs and outcomes.
func InputWarnings(in scenario.Inputs) []string {
	var warnings []string

	for _, f := range numericFields(in) {
		if mathutil.IsFinite(f.value) && f.value < 0 {
			warnings = append(warnings, fmt.Sprintf("%s is negative (%.2f)", f.name, f.value))
		}
	}

	if in.Current.MortgageBalance > in.Current.Value {
		warnings = append(warnings, fmt.Sprintf("mortgage balance %s exceeds home value %s",
			format.Currency(in.Current.MortgageBalance), format.Currency(in.Current.Value)))
	}
	if in.NewHome.ClosingCostsPercent > 100 {
		warnings = append(warnings, fmt.Sprintf("closing costs of %.2f%% exceed the purchase price",
			in.NewHome.ClosingCostsPercent))
	}

	if ValidateInputs(in) != nil {
		return warnings
	}

	result := in.Evaluate()
	if mathutil.IsNegative(result.AvailableDownPayment) {
		warnings = append(warnings, fmt.Sprintf("sale proceeds fall %s short of paying off liabilities and closing costs",
			format.Currency(-result.AvailableDownPayment)))
	}
	if mathutil.Round(result.NewLoanAmount) > mathutil.Round(in.NewHome.Price) {
		warnings = append(warnings, fmt.Sprintf("new loan amount %s exceeds the purchase price %s",
			format.Currency(result.NewLoanAmount), format.Currency(in.NewHome.Price)))
	}
	return warnings
}
