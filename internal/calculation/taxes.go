package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nwgo/networth-projector/internal/domain"
)

// TaxCalculator computes federal/state/FICA liability from annual income
// aggregates and the plan's tax parameter tables. All methods are pure.
type TaxCalculator struct {
	Params domain.TaxParameters
}

// NewTaxCalculator creates a tax calculator over a parameter table.
func NewTaxCalculator(params domain.TaxParameters) *TaxCalculator {
	return &TaxCalculator{Params: params}
}

// TaxInput carries the annual aggregates a year's tax computation needs.
type TaxInput struct {
	Year         int
	FilingStatus domain.FilingStatus
	State        string

	// GrossIncome is annual income prorated from each income's frequency
	// and active window. EarnedIncome is the wage subset subject to FICA.
	GrossIncome  decimal.Decimal
	EarnedIncome decimal.Decimal

	// PretaxDeductions reduce income tax; FICAExemptDeductions (pre-tax
	// insurance) additionally reduce the FICA base.
	PretaxDeductions     decimal.Decimal
	FICAExemptDeductions decimal.Decimal

	// Itemize elects itemized deductions; ItemizedTotal is the computed
	// itemized sum (mortgage interest, deductible expenses).
	Itemize       bool
	ItemizedTotal decimal.Decimal

	Overrides domain.TaxOverrides
}

// Calculate produces the year's TaxDetail. Manual overrides short-circuit
// before any bracket math; a missing (year, jurisdiction) table yields zero
// for that component and a log entry rather than an error, since state tax
// may legitimately not apply.
func (tc *TaxCalculator) Calculate(in TaxInput) (domain.TaxDetail, []string) {
	var logs []string

	detail := domain.TaxDetail{
		GrossIncome: in.GrossIncome,
		Itemized:    in.Itemize,
	}

	adjustedGross := in.GrossIncome.Sub(in.PretaxDeductions)
	if adjustedGross.LessThan(decimal.Zero) {
		adjustedGross = decimal.Zero
	}
	detail.AdjustedGross = adjustedGross

	// Federal.
	if in.Overrides.Federal != nil {
		detail.Federal = *in.Overrides.Federal
		detail.FederalOverridden = true
	} else {
		table := tc.Params.FindLatest(in.Year, in.FilingStatus, domain.JurisdictionFederal)
		if table == nil {
			logs = append(logs, fmt.Sprintf("year %d: no federal tax table for filing status %q, federal tax defaulted to 0", in.Year, in.FilingStatus))
		} else {
			deduction := table.StandardDeduction
			if in.Itemize {
				deduction = in.ItemizedTotal
			}
			detail.DeductionApplied = deduction
			taxable := adjustedGross.Sub(deduction)
			if taxable.LessThan(decimal.Zero) {
				taxable = decimal.Zero
			}
			detail.TaxableIncome = taxable
			detail.Federal = BracketTax(taxable, table.Brackets)
		}
	}

	// State. An empty state key means no state tax applies at all.
	if in.Overrides.State != nil {
		detail.State = *in.Overrides.State
		detail.StateOverridden = true
	} else if in.State != "" {
		table := tc.Params.FindLatest(in.Year, in.FilingStatus, in.State)
		if table == nil {
			logs = append(logs, fmt.Sprintf("year %d: no %s tax table for filing status %q, state tax defaulted to 0", in.Year, in.State, in.FilingStatus))
		} else {
			deduction := table.StandardDeduction
			if in.Itemize {
				deduction = in.ItemizedTotal
			}
			taxable := adjustedGross.Sub(deduction)
			if taxable.LessThan(decimal.Zero) {
				taxable = decimal.Zero
			}
			detail.State = BracketTax(taxable, table.Brackets)
		}
	}

	// FICA is computed off earned income only; pre-tax insurance is
	// FICA-exempt but 401k deferrals are not.
	if in.Overrides.FICA != nil {
		detail.FICA = *in.Overrides.FICA
		detail.FICAOverridden = true
	} else {
		table := tc.Params.FindLatest(in.Year, in.FilingStatus, domain.JurisdictionFederal)
		if table == nil {
			logs = append(logs, fmt.Sprintf("year %d: no federal tax table, FICA defaulted to 0", in.Year))
		} else {
			detail.FICA = tc.calculateFICA(in, table)
		}
	}

	return detail, logs
}

// calculateFICA computes Social Security tax against the wage base plus
// uncapped Medicare.
func (tc *TaxCalculator) calculateFICA(in TaxInput, table *domain.TaxTable) decimal.Decimal {
	earnedBase := in.EarnedIncome.Sub(in.FICAExemptDeductions)
	if earnedBase.LessThan(decimal.Zero) {
		earnedBase = decimal.Zero
	}
	ssBase := decimal.Min(earnedBase, table.SSWageBase)
	ssTax := ssBase.Mul(table.SSRate)
	medicareTax := earnedBase.Mul(table.MedicareRate)
	return ssTax.Add(medicareTax)
}

// BracketTax walks brackets in ascending threshold order and taxes the
// slice of income falling between each threshold and the next at that
// bracket's marginal rate. There are no cliff effects: the function is
// continuous at every boundary.
func BracketTax(taxableIncome decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	if taxableIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	total := decimal.Zero
	for i, bracket := range brackets {
		if taxableIncome.LessThanOrEqual(bracket.Threshold) {
			break
		}
		upper := taxableIncome
		if i+1 < len(brackets) && brackets[i+1].Threshold.LessThan(upper) {
			upper = brackets[i+1].Threshold
		}
		slice := upper.Sub(bracket.Threshold)
		if slice.GreaterThan(decimal.Zero) {
			total = total.Add(slice.Mul(bracket.Rate))
		}
	}
	return total
}

// ItemizedTotal sums the year's tax-deductible expense amounts. For
// amortized expenses the deductible amount is the year's total interest
// paid, not the full payment.
func ItemizedTotal(expenses []domain.Expense, year int, loans map[string]*Loan) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if !e.TaxDeductible {
			continue
		}
		if e.Type.IsAmortized() {
			if loan, ok := loans[e.ID]; ok {
				total = total.Add(loan.Annual(year).TotalInterest)
			}
			continue
		}
		total = total.Add(e.AnnualAmount(year))
	}
	return total
}
