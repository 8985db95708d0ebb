package domain

import (
	"github.com/shopspring/decimal"
)

// CashflowSummary aggregates one simulated year's money movement. Monthly
// figures are per-month; the rest are annual totals. The identity
//
//	GrossIncome + EmployerMatch − TotalTax − TotalExpenses − NetAccountInflow = UnallocatedAnnual
//
// holds for every snapshot within rounding tolerance.
type CashflowSummary struct {
	GrossIncome          decimal.Decimal `json:"gross_income"`
	EmployerMatch        decimal.Decimal `json:"employer_match"`
	PretaxDeductions     decimal.Decimal `json:"pretax_deductions"`
	TotalTax             decimal.Decimal `json:"total_tax"`
	TotalExpenses        decimal.Decimal `json:"total_expenses"`
	DiscretionaryMonthly decimal.Decimal `json:"discretionary_monthly"`
	AllocatedMonthly     decimal.Decimal `json:"allocated_monthly"`
	// UnallocatedMonthly may be negative: an unfunded deficit that must be
	// surfaced, never silently absorbed.
	UnallocatedMonthly decimal.Decimal `json:"unallocated_monthly"`
	UnallocatedAnnual  decimal.Decimal `json:"unallocated_annual"`
	NetAccountInflow   decimal.Decimal `json:"net_account_inflow"`
}

// TaxDetail breaks down the year's tax computation for inspection.
type TaxDetail struct {
	GrossIncome      decimal.Decimal `json:"gross_income"`
	AdjustedGross    decimal.Decimal `json:"adjusted_gross"`
	DeductionApplied decimal.Decimal `json:"deduction_applied"`
	Itemized         bool            `json:"itemized"`
	TaxableIncome    decimal.Decimal `json:"taxable_income"`

	Federal decimal.Decimal `json:"federal"`
	State   decimal.Decimal `json:"state"`
	FICA    decimal.Decimal `json:"fica"`

	FederalOverridden bool `json:"federal_overridden,omitempty"`
	StateOverridden   bool `json:"state_overridden,omitempty"`
	FICAOverridden    bool `json:"fica_overridden,omitempty"`
}

// Total sums the three tax components.
func (td TaxDetail) Total() decimal.Decimal {
	return td.Federal.Add(td.State).Add(td.FICA)
}

// YearSnapshot is one immutable point of the projected timeline, derived
// solely from the prior snapshot and the run's Assumptions. Entity slices
// are deep copies; later years never alias them.
type YearSnapshot struct {
	Year     int             `json:"year"`
	Accounts []Account       `json:"accounts"`
	Incomes  []Income        `json:"incomes"`
	Expenses []Expense       `json:"expenses"`
	Cashflow CashflowSummary `json:"cashflow"`
	Taxes    TaxDetail       `json:"taxes"`
	NetWorth decimal.Decimal `json:"net_worth"`
	// Logs records recoverable gaps hit while producing this snapshot
	// (missing tax tables, defaulted fields). They never halt the run.
	Logs []string `json:"logs,omitempty"`
}

// Timeline is the ordered sequence of snapshots a run produces.
type Timeline []YearSnapshot

// ComputeNetWorth sums the signed net-worth contribution of every account.
func ComputeNetWorth(accounts []Account) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.NetWorthContribution())
	}
	return total
}

// CloneAccounts deep-copies an account slice.
func CloneAccounts(accounts []Account) []Account {
	out := make([]Account, len(accounts))
	copy(out, accounts)
	return out
}

// CloneIncomes deep-copies an income slice.
func CloneIncomes(incomes []Income) []Income {
	out := make([]Income, len(incomes))
	copy(out, incomes)
	return out
}

// CloneExpenses deep-copies an expense slice, including escrow terms so a
// later year's escrow edit can never reach back into an older snapshot.
func CloneExpenses(expenses []Expense) []Expense {
	out := make([]Expense, len(expenses))
	copy(out, expenses)
	for i := range out {
		if out[i].Escrow != nil {
			escrow := *out[i].Escrow
			out[i].Escrow = &escrow
		}
	}
	return out
}

// FindAccount returns a pointer into the slice for the given id, or nil.
func FindAccount(accounts []Account, id string) *Account {
	for i := range accounts {
		if accounts[i].ID == id {
			return &accounts[i]
		}
	}
	return nil
}

// FindExpense returns a pointer into the slice for the given id, or nil.
func FindExpense(expenses []Expense, id string) *Expense {
	for i := range expenses {
		if expenses[i].ID == id {
			return &expenses[i]
		}
	}
	return nil
}
