package calculation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nwgo/networth-projector/internal/domain"
	"github.com/nwgo/networth-projector/pkg/dateutil"
)

// Loan represents a fixed-rate, fixed-term loan schedule derived from a
// Mortgage or Loan expense. The fixed payment is always computed from the
// principal and term at origination; only its principal/interest split
// drifts over the loan's life.
type Loan struct {
	ExpenseID      string
	Principal      decimal.Decimal // balance at origination
	APR            decimal.Decimal // percent, e.g. 6.5
	TermMonths     int
	Start          time.Time
	ExtraPrincipal decimal.Decimal // voluntary extra monthly principal
}

// AnnualAmortization summarizes one calendar year of a loan's schedule.
type AnnualAmortization struct {
	Year           int
	TotalInterest  decimal.Decimal
	TotalPrincipal decimal.Decimal
	TotalPayment   decimal.Decimal
}

// NewLoanFromExpense builds a Loan from an amortized expense variant.
func NewLoanFromExpense(e domain.Expense) (*Loan, error) {
	if !e.Type.IsAmortized() {
		return nil, fmt.Errorf("expense %s (%s) is not an amortized variant", e.ID, e.Type)
	}
	if e.TermMonths <= 0 {
		return nil, fmt.Errorf("expense %s: loan term must be positive, got %d months", e.ID, e.TermMonths)
	}
	if e.OriginalPrincipal.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("expense %s: loan principal must be positive, got %s", e.ID, e.OriginalPrincipal)
	}
	if e.APR.IsNegative() {
		return nil, fmt.Errorf("expense %s: loan APR cannot be negative, got %s", e.ID, e.APR)
	}
	if e.StartDate.IsZero() {
		return nil, fmt.Errorf("expense %s: loan start date is required", e.ID)
	}
	loan := &Loan{
		ExpenseID:      e.ID,
		Principal:      e.OriginalPrincipal,
		APR:            e.APR,
		TermMonths:     e.TermMonths,
		Start:          e.StartDate,
		ExtraPrincipal: e.ExtraPrincipal,
	}
	if err := loan.validateAmortizing(); err != nil {
		return nil, err
	}
	return loan, nil
}

// monthlyRate returns APR/100/12 as a decimal fraction.
func (l *Loan) monthlyRate() decimal.Decimal {
	return l.APR.Div(decimal.NewFromInt(100)).Div(decimal.NewFromInt(12))
}

// MonthlyPayment computes the fixed payment from the standard annuity
// formula against the starting balance and term. A 0% APR loan uses the
// simple-interest degenerate form principal/n instead of dividing by
// (1+i)^n − 1 = 0.
func (l *Loan) MonthlyPayment() decimal.Decimal {
	n := decimal.NewFromInt(int64(l.TermMonths))
	i := l.monthlyRate()
	if i.IsZero() {
		return l.Principal.Div(n)
	}
	compound := decimal.NewFromInt(1).Add(i).Pow(n)
	return l.Principal.Mul(i).Mul(compound).Div(compound.Sub(decimal.NewFromInt(1)))
}

// InterestOnlyPayment is the monthly interest on the starting balance.
func (l *Loan) InterestOnlyPayment() decimal.Decimal {
	return l.Principal.Mul(l.monthlyRate())
}

// validateAmortizing rejects parameter sets whose fixed payment cannot
// reduce the balance. This surfaces before simulation rather than running
// into a silent infinite-balance schedule.
func (l *Loan) validateAmortizing() error {
	if l.monthlyRate().IsZero() {
		return nil
	}
	if l.MonthlyPayment().LessThanOrEqual(l.InterestOnlyPayment()) {
		return fmt.Errorf("expense %s: non-amortizing loan, monthly payment %s does not exceed interest-only payment %s",
			l.ExpenseID, l.MonthlyPayment().StringFixed(2), l.InterestOnlyPayment().StringFixed(2))
	}
	return nil
}

// BalanceAtDate applies the fixed payment schedule from origination to the
// query date. Returns 0 when the date predates origination or the loan is
// paid off; the balance never goes negative.
func (l *Loan) BalanceAtDate(date time.Time) decimal.Decimal {
	if date.Before(l.Start) {
		return decimal.Zero
	}
	months := dateutil.MonthsBetween(l.Start, date)
	if months > l.TermMonths {
		months = l.TermMonths
	}

	payment := l.MonthlyPayment().Add(l.ExtraPrincipal)
	i := l.monthlyRate()
	balance := l.Principal
	for m := 0; m < months; m++ {
		interest := balance.Mul(i)
		principal := payment.Sub(interest)
		balance = balance.Sub(principal)
		if balance.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero
		}
	}
	return balance
}

// Annual returns the interest, principal, and cash paid within a calendar
// year, accounting for partial first and last years based on the start
// date and payoff month.
func (l *Loan) Annual(year int) AnnualAmortization {
	out := AnnualAmortization{Year: year}

	payment := l.MonthlyPayment().Add(l.ExtraPrincipal)
	i := l.monthlyRate()
	balance := l.Principal

	// Payments land at the end of each month from the start date.
	for m := 0; m < l.TermMonths; m++ {
		due := l.Start.AddDate(0, m+1, 0)
		if balance.LessThanOrEqual(decimal.Zero) {
			break
		}
		if due.Year() > year {
			break
		}
		interest := balance.Mul(i)
		principal := payment.Sub(interest)
		if principal.GreaterThan(balance) {
			// Final payment: only the remaining balance plus its interest.
			principal = balance
		}
		balance = balance.Sub(principal)
		if due.Year() == year {
			out.TotalInterest = out.TotalInterest.Add(interest)
			out.TotalPrincipal = out.TotalPrincipal.Add(principal)
			out.TotalPayment = out.TotalPayment.Add(interest.Add(principal))
		}
	}
	return out
}

// MonthlyEscrow aggregates the escrow components of a mortgage payment off
// the given property valuation: property tax with its deduction, then
// insurance, maintenance, and PMI as annual rates on the valuation, plus
// flat HOA and utilities.
func MonthlyEscrow(terms *domain.EscrowTerms, valuation decimal.Decimal) decimal.Decimal {
	if terms == nil {
		return decimal.Zero
	}
	hundred := decimal.NewFromInt(100)
	twelve := decimal.NewFromInt(12)

	taxedValue := valuation.Sub(terms.PropertyTaxDeduction)
	if taxedValue.LessThan(decimal.Zero) {
		taxedValue = decimal.Zero
	}
	propertyTax := taxedValue.Mul(terms.PropertyTaxRate).Div(hundred).Div(twelve)
	insurance := valuation.Mul(terms.InsuranceRate).Div(hundred).Div(twelve)
	maintenance := valuation.Mul(terms.MaintenanceRate).Div(hundred).Div(twelve)
	pmi := valuation.Mul(terms.PMIRate).Div(hundred).Div(twelve)

	return propertyTax.Add(insurance).Add(maintenance).Add(pmi).
		Add(terms.HOAMonthly).Add(terms.UtilitiesMonthly)
}

// MonthlyOutflow is the total monthly cash cost of an amortized expense in
// the given year: the fixed payment, any extra principal, and for
// mortgages the escrow on the current valuation. Once the loan is paid off
// only escrow remains.
func (l *Loan) MonthlyOutflow(e domain.Expense, year int) decimal.Decimal {
	escrow := MonthlyEscrow(e.Escrow, e.Valuation)
	endOfYear := dateutil.YearEnd(year)
	if l.BalanceAtDate(endOfYear).IsZero() && l.Annual(year).TotalPayment.IsZero() {
		return escrow
	}
	return l.MonthlyPayment().Add(l.ExtraPrincipal).Add(escrow)
}
