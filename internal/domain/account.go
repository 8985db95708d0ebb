package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType discriminates the four account variants. Growth and net-worth
// logic dispatch on this tag rather than on runtime types.
type AccountType string

const (
	AccountSaved    AccountType = "saved"
	AccountInvested AccountType = "invested"
	AccountProperty AccountType = "property"
	AccountDebt     AccountType = "debt"
)

// OwnershipType distinguishes outright-owned property from financed property.
type OwnershipType string

const (
	OwnershipOwned    OwnershipType = "owned"
	OwnershipFinanced OwnershipType = "financed"
)

// TaxTreatment classifies how contributions and growth are taxed.
type TaxTreatment string

const (
	TaxTreatmentTaxable     TaxTreatment = "taxable"
	TaxTreatmentTraditional TaxTreatment = "traditional"
	TaxTreatmentRoth        TaxTreatment = "roth"
)

// Account is a closed tagged variant: the Type field selects which of the
// optional field groups below is meaningful. Amount holds the current value
// for asset variants and the outstanding balance for the Debt variant.
type Account struct {
	ID     string          `yaml:"id" json:"id"`
	Name   string          `yaml:"name" json:"name"`
	Type   AccountType     `yaml:"type" json:"type"`
	Amount decimal.Decimal `yaml:"amount" json:"amount"`

	// Saved and Debt variants: nominal annual rate in percent (5 means 5%).
	APR decimal.Decimal `yaml:"apr,omitempty" json:"apr,omitempty"`

	// Invested variant.
	NonVestedAmount      decimal.Decimal `yaml:"non_vested_amount,omitempty" json:"non_vested_amount,omitempty"`
	ExpenseRatio         decimal.Decimal `yaml:"expense_ratio,omitempty" json:"expense_ratio,omitempty"`
	TaxTreatment         TaxTreatment    `yaml:"tax_treatment,omitempty" json:"tax_treatment,omitempty"`
	ContributionEligible bool            `yaml:"contribution_eligible,omitempty" json:"contribution_eligible,omitempty"`
	VestingRatePerYear   decimal.Decimal `yaml:"vesting_rate_per_year,omitempty" json:"vesting_rate_per_year,omitempty"`

	// Property variant. LoanAmount is the current balance of the linked
	// mortgage.
	Ownership  OwnershipType   `yaml:"ownership,omitempty" json:"ownership,omitempty"`
	LoanAmount decimal.Decimal `yaml:"loan_amount,omitempty" json:"loan_amount,omitempty"`

	// Property and Debt variants: id of the paired Mortgage/Loan expense.
	// Must stay bidirectionally consistent with Expense.LinkedAccountID.
	LinkedExpenseID string `yaml:"linked_expense_id,omitempty" json:"linked_expense_id,omitempty"`
}

// NetWorthContribution returns the account's signed contribution to net
// worth: financed property nets out its loan balance, debt counts negative.
func (a Account) NetWorthContribution() decimal.Decimal {
	switch a.Type {
	case AccountProperty:
		return a.Amount.Sub(a.LoanAmount)
	case AccountDebt:
		return a.Amount.Neg()
	default:
		return a.Amount
	}
}

// VestedFraction derives the vested share of an invested account from the
// stored non-vested amount, clamped to [0, 1]. Accounts with no balance are
// fully vested.
func (a Account) VestedFraction() decimal.Decimal {
	if a.Type != AccountInvested || a.Amount.LessThanOrEqual(decimal.Zero) {
		return decimal.NewFromInt(1)
	}
	frac := decimal.NewFromInt(1).Sub(a.NonVestedAmount.Div(a.Amount))
	if frac.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	if frac.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.NewFromInt(1)
	}
	return frac
}

// VestedAmount returns the portion of the balance the owner keeps today.
func (a Account) VestedAmount() decimal.Decimal {
	if a.Type != AccountInvested {
		return a.Amount
	}
	vested := a.Amount.Sub(a.NonVestedAmount)
	if vested.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return vested
}

// IsLinked reports whether this account variant carries a back-reference to
// a Mortgage or Loan expense.
func (a Account) IsLinked() bool {
	return (a.Type == AccountProperty || a.Type == AccountDebt) && a.LinkedExpenseID != ""
}
