package advisor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iwvelando/equity-unlock/internal/scenario"
	"github.com/iwvelando/equity-unlock/pkg/format"
)

// BuildPrompt formats the scenario into the advisory prompt.
func BuildPrompt(in scenario.Inputs, result scenario.Result) string {
	var b strings.Builder

	b.WriteString("Act as an expert real estate financial advisor.\n")
	b.WriteString("Analyze the following scenario for a homeowner considering moving from a low interest rate mortgage to a higher one to consolidate debt.\n\n")

	b.WriteString("**Current Situation:**\n")
	fmt.Fprintf(&b, "- Home Value: %s\n", format.WholeCurrency(in.Current.Value))
	fmt.Fprintf(&b, "- Current Mortgage Balance: %s\n", format.WholeCurrency(in.Current.MortgageBalance))
	fmt.Fprintf(&b, "- Current Rate: %s%%\n", rate(in.Current.InterestRate))
	fmt.Fprintf(&b, "- Liabilities to Payoff: %s (Total Payments: %s)\n",
		liabilitySummary(in.Liabilities), format.WholeCurrency(result.TotalLiabilityPayments))
	fmt.Fprintf(&b, "- Total Current Monthly Outflow (Housing + Debt): %s\n\n", format.WholeCurrency(result.OldMonthlyTotal))

	b.WriteString("**New Scenario:**\n")
	fmt.Fprintf(&b, "- New Home Price: %s\n", format.WholeCurrency(in.NewHome.Price))
	fmt.Fprintf(&b, "- New Interest Rate: %s%%\n", rate(in.NewHome.InterestRate))
	fmt.Fprintf(&b, "- New Loan Amount: %s\n", format.WholeCurrency(result.NewLoanAmount))
	fmt.Fprintf(&b, "- New Monthly Housing Payment: %s\n\n", format.WholeCurrency(result.NewMonthlyTotal))

	b.WriteString("**Result:**\n")
	fmt.Fprintf(&b, "- Net Monthly Savings: %s\n", format.WholeCurrency(result.MonthlySavings))
	fmt.Fprintf(&b, "- Total Debt Eliminated: %s\n\n", format.WholeCurrency(result.TotalLiabilitiesPayoff))

	b.WriteString("Provide a concise, professional, and persuasive summary (approx 150 words) explaining whether this is a good financial move.\n")
	b.WriteString("Focus on \"Cash Flow\" vs \"Interest Rate\".\n")
	b.WriteString("Use a tone that is empathetic to the fear of losing a 3% rate but highlights the freedom of eliminating bad debt.\n")
	b.WriteString("Format the output with markdown.\n")

	return b.String()
}

func liabilitySummary(liabilities scenario.Liabilities) string {
	if len(liabilities) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(liabilities))
	for _, l := range liabilities {
		parts = append(parts, fmt.Sprintf("%s: %s balance, %s/mo",
			l.Name, format.WholeCurrency(l.Balance), format.WholeCurrency(l.MonthlyPayment)))
	}
	return strings.Join(parts, "; ")
}

// rate prints 3 as "3" and 6.5 as "6.5".
func rate(percent float64) string {
	return strconv.FormatFloat(percent, 'f', -1, 64)
}
