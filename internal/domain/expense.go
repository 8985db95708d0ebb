package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nwgo/networth-projector/pkg/dateutil"
)

// ExpenseType discriminates the expense variants.
type ExpenseType string

const (
	ExpenseRent       ExpenseType = "rent"
	ExpenseMortgage   ExpenseType = "mortgage"
	ExpenseLoan       ExpenseType = "loan"
	ExpenseDependent  ExpenseType = "dependent"
	ExpenseHealthcare ExpenseType = "healthcare"
	ExpenseVacation   ExpenseType = "vacation"
	ExpenseEmergency  ExpenseType = "emergency"
	ExpenseTransport  ExpenseType = "transport"
	ExpenseFood       ExpenseType = "food"
	ExpenseOther      ExpenseType = "other"
)

// InflationCategory selects which assumption rate inflates an expense.
type InflationCategory string

const (
	InflationGeneral    InflationCategory = "general"
	InflationHealthcare InflationCategory = "healthcare"
	InflationHousing    InflationCategory = "housing"
	InflationRent       InflationCategory = "rent"
)

// expenseInflationCategories is the static tag→category table. Amortized
// variants are listed under housing for completeness, but their amounts are
// derived from the payment schedule, not inflated.
var expenseInflationCategories = map[ExpenseType]InflationCategory{
	ExpenseRent:       InflationRent,
	ExpenseMortgage:   InflationHousing,
	ExpenseLoan:       InflationHousing,
	ExpenseHealthcare: InflationHealthcare,
	ExpenseDependent:  InflationGeneral,
	ExpenseVacation:   InflationGeneral,
	ExpenseEmergency:  InflationGeneral,
	ExpenseTransport:  InflationGeneral,
	ExpenseFood:       InflationGeneral,
	ExpenseOther:      InflationGeneral,
}

// InflationCategory returns the inflation category for an expense tag.
func (t ExpenseType) InflationCategory() InflationCategory {
	if c, ok := expenseInflationCategories[t]; ok {
		return c
	}
	return InflationGeneral
}

// IsAmortized reports whether this expense variant is driven by a fixed
// payment schedule rather than by inflation.
func (t ExpenseType) IsAmortized() bool {
	return t == ExpenseMortgage || t == ExpenseLoan
}

// EscrowTerms are the non-principal/interest components of a mortgage
// payment, computed off the current property valuation. Rates are percent
// of valuation per year; HOA and utilities are flat monthly dollars.
type EscrowTerms struct {
	PropertyTaxRate      decimal.Decimal `yaml:"property_tax_rate,omitempty" json:"property_tax_rate,omitempty"`
	PropertyTaxDeduction decimal.Decimal `yaml:"property_tax_deduction,omitempty" json:"property_tax_deduction,omitempty"`
	InsuranceRate        decimal.Decimal `yaml:"insurance_rate,omitempty" json:"insurance_rate,omitempty"`
	MaintenanceRate      decimal.Decimal `yaml:"maintenance_rate,omitempty" json:"maintenance_rate,omitempty"`
	PMIRate              decimal.Decimal `yaml:"pmi_rate,omitempty" json:"pmi_rate,omitempty"`
	HOAMonthly           decimal.Decimal `yaml:"hoa_monthly,omitempty" json:"hoa_monthly,omitempty"`
	UtilitiesMonthly     decimal.Decimal `yaml:"utilities_monthly,omitempty" json:"utilities_monthly,omitempty"`
}

// Expense is a closed tagged variant. Amount is per Frequency period. The
// Mortgage/Loan field group describes a fixed-rate, fixed-term schedule;
// for those variants Amount is derived from the schedule each year.
type Expense struct {
	ID            string          `yaml:"id" json:"id"`
	Name          string          `yaml:"name" json:"name"`
	Type          ExpenseType     `yaml:"type" json:"type"`
	Amount        decimal.Decimal `yaml:"amount" json:"amount"`
	Frequency     Frequency       `yaml:"frequency" json:"frequency"`
	StartDate     time.Time       `yaml:"start_date,omitempty" json:"start_date,omitempty"`
	EndDate       time.Time       `yaml:"end_date,omitempty" json:"end_date,omitempty"`
	TaxDeductible bool            `yaml:"tax_deductible,omitempty" json:"tax_deductible,omitempty"`

	// Mortgage and Loan variants. APR is percent; the principal and term
	// always describe the loan at origination, never the drifting balance.
	APR               decimal.Decimal `yaml:"apr,omitempty" json:"apr,omitempty"`
	OriginalPrincipal decimal.Decimal `yaml:"original_principal,omitempty" json:"original_principal,omitempty"`
	TermMonths        int             `yaml:"term_months,omitempty" json:"term_months,omitempty"`
	ExtraPrincipal    decimal.Decimal `yaml:"extra_principal,omitempty" json:"extra_principal,omitempty"`
	LinkedAccountID   string          `yaml:"linked_account_id,omitempty" json:"linked_account_id,omitempty"`

	// Mortgage variant only.
	Escrow *EscrowTerms `yaml:"escrow,omitempty" json:"escrow,omitempty"`

	// Current property valuation driving escrow; maintained by the engine
	// from the linked Property account.
	Valuation decimal.Decimal `yaml:"valuation,omitempty" json:"valuation,omitempty"`
}

// ActiveFraction returns the portion of the given calendar year this
// expense is active.
func (e Expense) ActiveFraction(year int) decimal.Decimal {
	return decimal.NewFromFloat(dateutil.ActiveFraction(year, e.StartDate, e.EndDate))
}

// AnnualAmount prorates the per-period amount to an annual figure for the
// given calendar year.
func (e Expense) AnnualAmount(year int) decimal.Decimal {
	return e.Amount.Mul(e.Frequency.PeriodsPerYear()).Mul(e.ActiveFraction(year))
}

// IsLinked reports whether this expense variant carries a link to a
// Property or Debt account.
func (e Expense) IsLinked() bool {
	return e.Type.IsAmortized() && e.LinkedAccountID != ""
}
