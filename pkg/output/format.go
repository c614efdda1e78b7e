// Package output provides utilities for formatting and displaying scenario results.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/equity-unlock/internal/scenario"
	"github.com/iwvelando/equity-unlock/pkg/constants"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// NotComputed is printed in place of figures that are not calculated.
const NotComputed = "not computed"

// Report bundles the inputs and result of one evaluation for export.
type Report struct {
	Name     string          `json:"name,omitempty" yaml:"name,omitempty"`
	Inputs   scenario.Inputs `json:"inputs" yaml:"inputs"`
	Result   scenario.Result `json:"result" yaml:"result"`
	Warnings []string        `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

type row struct {
	label string
	value float64
}

func sellSideRows(r scenario.Result) []row {
	return []row{
		{"Net equity", r.NetEquity},
		{"Selling costs", r.SellingCosts},
		{"Liabilities paid off", r.TotalLiabilitiesPayoff},
		{"Available down payment", r.AvailableDownPayment},
		{"New loan amount", r.NewLoanAmount},
	}
}

func monthlyRows(r scenario.Result) []row {
	return []row{
		{"Old principal & interest", r.OldPrincipalAndInterest},
		{"Liability payments", r.TotalLiabilityPayments},
		{"Old monthly total", r.OldMonthlyTotal},
		{"New principal & interest", r.NewPrincipalAndInterest},
		{"New monthly total", r.NewMonthlyTotal},
		{"Monthly savings", r.MonthlySavings},
	}
}

// PrettyFormat writes a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, report Report) error {
	p := message.NewPrinter(language.English)
	name := report.Name
	if name == "" {
		name = "custom"
	}

	if _, err := fmt.Fprintf(w, "--- Results for scenario %s ---\n", name); err != nil {
		return err
	}

	sections := []struct {
		title string
		rows  []row
	}{
		{"Sale and purchase", sellSideRows(report.Result)},
		{"Monthly obligations", monthlyRows(report.Result)},
	}
	for _, section := range sections {
		if _, err := fmt.Fprintf(w, "\n%s\n", section.title); err != nil {
			return err
		}
		for _, r := range section.rows {
			if _, err := p.Fprintf(w, "  %-26s %s\n", r.label, money(p, r.value)); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintf(w, "\n  %-26s %s\n", "Break-even (months)", breakEven(report.Result)); err != nil {
		return err
	}

	for _, warning := range report.Warnings {
		if _, err := fmt.Fprintf(w, "warning: %s\n", warning); err != nil {
			return err
		}
	}
	return nil
}

func money(p *message.Printer, v float64) string {
	if v < 0 {
		return p.Sprintf("-$%.2f", -v)
	}
	return p.Sprintf("$%.2f", v)
}

func breakEven(r scenario.Result) string {
	if !r.BreakEvenComputed() {
		return NotComputed
	}
	return strconv.FormatFloat(*r.BreakEvenMonths, 'f', 1, 64)
}

// SummaryFormat writes one line per report comparing the monthly totals.
func SummaryFormat(w io.Writer, reports []Report) error {
	p := message.NewPrinter(language.English)
	if _, err := fmt.Fprintf(w, "%-12s | %-15s | %-12s | %-12s | %s\n",
		"Scenario", "New loan", "Old monthly", "New monthly", "Savings"); err != nil {
		return err
	}
	for _, report := range reports {
		r := report.Result
		if _, err := fmt.Fprintf(w, "%-12s | %-15s | %-12s | %-12s | %s\n",
			report.Name,
			money(p, r.NewLoanAmount),
			money(p, r.OldMonthlyTotal),
			money(p, r.NewMonthlyTotal),
			money(p, r.MonthlySavings),
		); err != nil {
			return err
		}
	}
	return nil
}

// CsvFormat writes one "metric","value" row per figure.
func CsvFormat(w io.Writer, report Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"metric", "value"}); err != nil {
		return err
	}

	rows := append(sellSideRows(report.Result), monthlyRows(report.Result)...)
	for _, r := range rows {
		if err := cw.Write([]string{r.label, strconv.FormatFloat(r.value, 'f', 2, 64)}); err != nil {
			return err
		}
	}
	if err := cw.Write([]string{"Break-even (months)", breakEven(report.Result)}); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

// CsvString returns the CSV rendering of report.
func CsvString(report Report) string {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, report); err != nil {
		return ""
	}
	return buf.String()
}

// JSONFormat writes report as indented JSON.
func JSONFormat(w io.Writer, report Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// YAMLFormat writes report as YAML.
func YAMLFormat(w io.Writer, report Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return err
	}
	return enc.Close()
}

// Write renders report in the named format.
func Write(w io.Writer, format string, report Report) error {
	switch format {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, report)
	case constants.OutputFormatCSV:
		return CsvFormat(w, report)
	case constants.OutputFormatJSON:
		return JSONFormat(w, report)
	case constants.OutputFormatYAML:
		return YAMLFormat(w, report)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// ContentType returns the MIME type of a format.
func ContentType(format string) string {
	switch format {
	case constants.OutputFormatCSV:
		return "text/csv; charset=utf-8"
	case constants.OutputFormatJSON:
		return "application/json"
	case constants.OutputFormatYAML:
		return "application/yaml"
	default:
		return "text/plain; charset=utf-8"
	}
}
