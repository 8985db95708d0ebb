package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/nwgo/networth-projector/internal/domain"
)

// Growth functions advance a single entity by one year. Every function is
// pure: it returns a new value and never mutates its input, which keeps
// earlier snapshots independently inspectable after later years run.

// LinkedBalance carries externally resolved balances for linked accounts:
// a Property's loan balance and valuation come from its Mortgage, a Debt's
// balance from its Loan.
type LinkedBalance struct {
	LoanBalance *decimal.Decimal
	Valuation   *decimal.Decimal
}

// GrowAccount dispatches on the account tag and returns the advanced
// account. contribution is the year's cash routed into the account by the
// waterfall and payroll; override supplies linked Mortgage/Loan balances.
func GrowAccount(a domain.Account, assumptions domain.Assumptions, contribution decimal.Decimal, override *LinkedBalance) domain.Account {
	switch a.Type {
	case domain.AccountSaved:
		return growSaved(a, contribution)
	case domain.AccountInvested:
		return growInvested(a, assumptions, contribution)
	case domain.AccountProperty:
		return growProperty(a, assumptions, override)
	case domain.AccountDebt:
		return growDebt(a, override)
	default:
		return a
	}
}

func growSaved(a domain.Account, contribution decimal.Decimal) domain.Account {
	next := a
	next.Amount = a.Amount.Mul(domain.GrowthFactor(a.APR)).Add(contribution)
	return next
}

func growInvested(a domain.Account, assumptions domain.Assumptions, contribution decimal.Decimal) domain.Account {
	next := a
	netRate := assumptions.InvestmentReturn.Sub(a.ExpenseRatio)
	factor := domain.GrowthFactor(netRate)
	next.Amount = a.Amount.Mul(factor).Add(contribution)

	// The non-vested slice grows with the account, then releases the
	// yearly vesting fraction. It can never exceed the balance or drop
	// below zero.
	nonVested := a.NonVestedAmount.Mul(factor)
	vestingFactor := decimal.NewFromInt(1).Sub(a.VestingRatePerYear.Div(decimal.NewFromInt(100)))
	if vestingFactor.LessThan(decimal.Zero) {
		vestingFactor = decimal.Zero
	}
	nonVested = nonVested.Mul(vestingFactor)
	if nonVested.LessThan(decimal.Zero) {
		nonVested = decimal.Zero
	}
	if nonVested.GreaterThan(next.Amount) {
		nonVested = next.Amount
	}
	next.NonVestedAmount = nonVested
	return next
}

func growProperty(a domain.Account, assumptions domain.Assumptions, override *LinkedBalance) domain.Account {
	next := a
	if override != nil && override.Valuation != nil {
		next.Amount = *override.Valuation
	} else {
		next.Amount = a.Amount.Mul(domain.GrowthFactor(assumptions.HousingAppreciation))
	}
	// The loan balance is driven by the linked mortgage's amortization,
	// never by independent growth.
	if override != nil && override.LoanBalance != nil {
		next.LoanAmount = *override.LoanBalance
	}
	return next
}

func growDebt(a domain.Account, override *LinkedBalance) domain.Account {
	next := a
	if override != nil && override.LoanBalance != nil {
		next.Amount = *override.LoanBalance
		return next
	}
	next.Amount = a.Amount.Mul(domain.GrowthFactor(a.APR))
	return next
}

// GrowIncome advances an income by one year. annual401kMax is the
// statutory contribution limit for the target year, used by the
// TRACK_ANNUAL_MAX strategy. Work salaries grow with the salary-growth
// rate; Social Security and passive incomes receive a general-inflation
// adjustment; windfalls stay fixed and expire with their window.
func GrowIncome(in domain.Income, assumptions domain.Assumptions, annual401kMax decimal.Decimal) domain.Income {
	next := in
	switch in.Type {
	case domain.IncomeWork:
		salaryFactor := domain.GrowthFactor(assumptions.SalaryGrowth)
		next.Amount = in.Amount.Mul(salaryFactor)
		switch in.ContributionGrowth {
		case domain.ContributionGrowWithSalary:
			next.Contribution401k = in.Contribution401k.Mul(salaryFactor)
			next.ContributionRoth = in.ContributionRoth.Mul(salaryFactor)
			next.EmployerMatch = in.EmployerMatch.Mul(salaryFactor)
		case domain.ContributionTrackAnnualMax:
			// Follow the statutory limit as it moves; fall back to the
			// configured dollars when no limit is set.
			if annual401kMax.GreaterThan(decimal.Zero) {
				next.Contribution401k = annual401kMax
			}
			next.ContributionRoth = in.ContributionRoth
			next.EmployerMatch = in.EmployerMatch
		default:
			// FIXED keeps dollar contributions constant.
		}
		// Insurance premiums track healthcare inflation.
		next.InsurancePremium = in.InsurancePremium.Mul(domain.GrowthFactor(assumptions.InflationHealthcare))
	case domain.IncomeSocialSecurity, domain.IncomePassive:
		next.Amount = in.Amount.Mul(domain.GrowthFactor(assumptions.InflationGeneral))
	default:
		// Windfalls are one-shot dollar amounts.
	}
	return next
}

// GrowExpense advances an expense by the inflation rate of its category.
// Amortized variants are skipped here: their amounts are derived from the
// payment schedule by the orchestrator.
func GrowExpense(e domain.Expense, assumptions domain.Assumptions) domain.Expense {
	if e.Type.IsAmortized() {
		return e
	}
	next := e
	rate := assumptions.InflationFor(e.Type.InflationCategory())
	next.Amount = e.Amount.Mul(domain.GrowthFactor(rate))
	return next
}

// Annual401kLimit returns the statutory contribution limit for the year at
// the given offset from the start year, growing the base limit with
// general inflation.
func Annual401kLimit(assumptions domain.Assumptions, yearOffset int) decimal.Decimal {
	limit := assumptions.Contribution401kLimit
	if limit.IsZero() || yearOffset <= 0 {
		return limit
	}
	factor := domain.GrowthFactor(assumptions.InflationGeneral)
	return limit.Mul(factor.Pow(decimal.NewFromInt(int64(yearOffset))))
}
