package output

import (
	"fmt"
	"strings"

	"github.com/nwgo/networth-projector/internal/calculation"
	"github.com/nwgo/networth-projector/internal/domain"
	"github.com/nwgo/networth-projector/pkg/money"
)

// ConsoleFormatter renders the timeline as a compact fixed-width table,
// one row per projected year.
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

func (ConsoleFormatter) Format(result *calculation.ProjectionResult) ([]byte, error) {
	var b strings.Builder
	writeHeader(&b, result)

	fmt.Fprintf(&b, "%-6s %16s %16s %14s %14s %14s %14s\n",
		"Year", "Net Worth", "Gross Income", "Taxes", "Expenses", "Saved", "Unallocated")
	b.WriteString(strings.Repeat("-", 100) + "\n")
	for _, snap := range result.Timeline {
		fmt.Fprintf(&b, "%-6d %16s %16s %14s %14s %14s %14s\n",
			snap.Year,
			money.FromDecimal(snap.NetWorth).Format(),
			money.FromDecimal(snap.Cashflow.GrossIncome).Format(),
			money.FromDecimal(snap.Taxes.Total()).Format(),
			money.FromDecimal(snap.Cashflow.TotalExpenses).Format(),
			money.FromDecimal(snap.Cashflow.NetAccountInflow).Format(),
			money.FromDecimal(snap.Cashflow.UnallocatedAnnual).Format(),
		)
	}
	return []byte(b.String()), nil
}

// ConsoleVerboseFormatter adds per-account balances and the year's
// diagnostic log lines beneath each row.
type ConsoleVerboseFormatter struct{}

func (ConsoleVerboseFormatter) Name() string { return "console-verbose" }

func (ConsoleVerboseFormatter) Format(result *calculation.ProjectionResult) ([]byte, error) {
	var b strings.Builder
	writeHeader(&b, result)

	for _, snap := range result.Timeline {
		fmt.Fprintf(&b, "Year %d  (net worth %s)\n", snap.Year, money.FromDecimal(snap.NetWorth).Format())
		for _, a := range snap.Accounts {
			fmt.Fprintf(&b, "  %-28s %16s", a.Name, money.FromDecimal(a.Amount).Format())
			if a.Type == domain.AccountProperty && a.LoanAmount.IsPositive() {
				fmt.Fprintf(&b, "  (loan %s)", money.FromDecimal(a.LoanAmount).Format())
			}
			b.WriteString("\n")
		}
		cf := snap.Cashflow
		fmt.Fprintf(&b, "  gross %s  tax %s  expenses %s  discretionary/mo %s  unallocated/mo %s\n",
			money.FromDecimal(cf.GrossIncome).Format(),
			money.FromDecimal(snap.Taxes.Total()).Format(),
			money.FromDecimal(cf.TotalExpenses).Format(),
			money.FromDecimal(cf.DiscretionaryMonthly).Format(),
			money.FromDecimal(cf.UnallocatedMonthly).Format(),
		)
		for _, line := range snap.Logs {
			fmt.Fprintf(&b, "  note: %s\n", line)
		}
		b.WriteString("\n")
	}
	return []byte(b.String()), nil
}

func writeHeader(b *strings.Builder, result *calculation.ProjectionResult) {
	fmt.Fprintf(b, "NET WORTH PROJECTION: %s\n", result.PlanName)
	fmt.Fprintf(b, "Final net worth: %s", money.FromDecimal(result.Summary.FinalNetWorth).Format())
	fmt.Fprintf(b, "   Peak: %s in %d\n", money.FromDecimal(result.Summary.PeakNetWorth).Format(), result.Summary.PeakYear)
	if result.Summary.FirstDeficitYear > 0 {
		fmt.Fprintf(b, "First unfunded deficit: %d\n", result.Summary.FirstDeficitYear)
	}
	b.WriteString("\n")
}
