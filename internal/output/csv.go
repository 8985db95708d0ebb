package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/nwgo/networth-projector/internal/calculation"
)

// CSVFormatter writes one row per projected year with the cashflow and tax
// aggregates, suitable for spreadsheet import.
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(result *calculation.ProjectionResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"year", "net_worth",
		"gross_income", "employer_match", "pretax_deductions",
		"federal_tax", "state_tax", "fica_tax", "total_tax",
		"total_expenses", "discretionary_monthly",
		"allocated_monthly", "unallocated_annual", "net_account_inflow",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, snap := range result.Timeline {
		cf := snap.Cashflow
		row := []string{
			strconv.Itoa(snap.Year),
			snap.NetWorth.StringFixed(2),
			cf.GrossIncome.StringFixed(2),
			cf.EmployerMatch.StringFixed(2),
			cf.PretaxDeductions.StringFixed(2),
			snap.Taxes.Federal.StringFixed(2),
			snap.Taxes.State.StringFixed(2),
			snap.Taxes.FICA.StringFixed(2),
			snap.Taxes.Total().StringFixed(2),
			cf.TotalExpenses.StringFixed(2),
			cf.DiscretionaryMonthly.StringFixed(2),
			cf.AllocatedMonthly.StringFixed(2),
			cf.UnallocatedAnnual.StringFixed(2),
			cf.NetAccountInflow.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
