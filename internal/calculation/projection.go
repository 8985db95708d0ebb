package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nwgo/networth-projector/internal/domain"
	"github.com/nwgo/networth-projector/pkg/dateutil"
)

// yearState is the mutable working set the year loop threads from one
// iteration to the next. Each simulated year reads the prior state and
// produces a fresh one; snapshots only ever hold deep copies.
type yearState struct {
	Accounts []domain.Account
	Incomes  []domain.Income
	Expenses []domain.Expense
}

// simulateYear advances the plan by one year. yearOffset is 0-based; the
// produced snapshot covers calendar year plan.StartYear + yearOffset + 1.
// The phases run strictly in order: income/expense growth, taxes,
// linked-balance resolution, waterfall, account growth, assembly. No phase
// consults anything newer than the prior state.
func (pe *ProjectionEngine) simulateYear(plan *domain.Plan, state yearState, taxCalc *TaxCalculator, loans map[string]*Loan, yearOffset int) (domain.YearSnapshot, yearState, error) {
	year := plan.StartYear + yearOffset + 1
	assumptions := plan.Assumptions
	twelve := decimal.NewFromInt(12)

	var logs []string

	// (a) Grow incomes and expenses.
	limit := Annual401kLimit(assumptions, yearOffset+1)
	incomes := make([]domain.Income, len(state.Incomes))
	for i, in := range state.Incomes {
		incomes[i] = GrowIncome(in, assumptions, limit)
	}

	expenses := make([]domain.Expense, len(state.Expenses))
	for i, e := range state.Expenses {
		expenses[i] = GrowExpense(e, assumptions)
	}
	// Amortized expenses derive their amount from the schedule and the
	// current valuation of the linked property rather than from inflation.
	for i := range expenses {
		e := &expenses[i]
		if !e.Type.IsAmortized() {
			continue
		}
		loan, ok := loans[e.ID]
		if !ok {
			continue
		}
		if e.Type == domain.ExpenseMortgage {
			if prop := domain.FindAccount(state.Accounts, e.LinkedAccountID); prop != nil {
				e.Valuation = prop.Amount.Mul(domain.GrowthFactor(assumptions.HousingAppreciation))
			}
		}
		e.Amount = loan.MonthlyOutflow(*e, year)
		e.Frequency = domain.FrequencyMonthly
	}

	// (b) Taxes from the grown incomes and expenses.
	gross := decimal.Zero
	earned := decimal.Zero
	pretax := decimal.Zero
	ficaExempt := decimal.Zero
	annual401k := decimal.Zero
	annualRoth := decimal.Zero
	annualMatch := decimal.Zero
	for _, in := range incomes {
		annualAmount := in.AnnualAmount(year)
		gross = gross.Add(annualAmount)
		if in.Earned {
			earned = earned.Add(annualAmount)
		}
		if in.Type == domain.IncomeWork {
			frac := in.ActiveFraction(year)
			annual401k = annual401k.Add(in.Contribution401k.Mul(frac))
			annualRoth = annualRoth.Add(in.ContributionRoth.Mul(frac))
			annualMatch = annualMatch.Add(in.EmployerMatch.Mul(frac))
			ficaExempt = ficaExempt.Add(in.InsurancePremium.Mul(frac))
		}
		pretax = pretax.Add(in.AnnualPretaxDeductions(year))
	}

	taxDetail, taxLogs := taxCalc.Calculate(TaxInput{
		Year:                 year,
		FilingStatus:         plan.FilingStatus,
		State:                plan.State,
		GrossIncome:          gross,
		EarnedIncome:         earned,
		PretaxDeductions:     pretax,
		FICAExemptDeductions: ficaExempt,
		Itemize:              plan.ItemizeDeductions,
		ItemizedTotal:        ItemizedTotal(expenses, year, loans),
		Overrides:            plan.TaxOverrides,
	})
	logs = append(logs, taxLogs...)

	// (c) Resolve linked Mortgage/Loan balances into growth overrides.
	overrides := make(map[string]*LinkedBalance)
	for i := range expenses {
		e := &expenses[i]
		loan, ok := loans[e.ID]
		if !ok || !e.IsLinked() {
			continue
		}
		balance := loan.BalanceAtDate(dateutil.YearEnd(year))
		lb := &LinkedBalance{LoanBalance: &balance}
		if e.Type == domain.ExpenseMortgage && !e.Valuation.IsZero() {
			valuation := e.Valuation
			lb.Valuation = &valuation
		}
		overrides[e.LinkedAccountID] = lb
	}

	// (d) Waterfall over the month's discretionary cash. Insurance rides
	// inside the pre-tax deduction total, so expenses here are the fixed
	// expense entities only.
	annualExpenses := decimal.Zero
	for _, e := range expenses {
		annualExpenses = annualExpenses.Add(e.AnnualAmount(year))
	}
	totalTax := taxDetail.Total()
	discretionaryAnnual := gross.Sub(totalTax).Sub(pretax).Sub(annualRoth).Sub(annualExpenses)
	discretionaryMonthly := discretionaryAnnual.Div(twelve)
	monthlyFixedExpenses := annualExpenses.Div(twelve)

	waterfall := RunWaterfall(discretionaryMonthly, plan.Buckets, state.Accounts, monthlyFixedExpenses)

	// Retirement withdrawals cover any remaining deficit once the
	// configured retirement age is reached.
	withdrawnByAccount, withdrawnAnnual := pe.coverDeficit(plan, state.Accounts, waterfall.Remainder, yearOffset)
	remainderMonthly := waterfall.Remainder.Add(withdrawnAnnual.Div(twelve))
	if withdrawnAnnual.GreaterThan(decimal.Zero) {
		logs = append(logs, fmt.Sprintf("year %d: withdrew %s from accounts to cover spending deficit", year, withdrawnAnnual.StringFixed(2)))
	}
	if remainderMonthly.IsNegative() {
		logs = append(logs, fmt.Sprintf("year %d: unfunded deficit of %s/month", year, remainderMonthly.Neg().StringFixed(2)))
	}

	// (e) Grow accounts with their inflows.
	contributions := make(map[string]decimal.Decimal)
	for account, amount := range waterfall.ByAccount {
		contributions[account] = contributions[account].Add(amount.Mul(twelve))
	}
	for _, in := range incomes {
		if in.Type != domain.IncomeWork || in.MatchAccountID == "" {
			continue
		}
		frac := in.ActiveFraction(year)
		payroll := in.Contribution401k.Add(in.ContributionRoth).Add(in.EmployerMatch).Mul(frac)
		contributions[in.MatchAccountID] = contributions[in.MatchAccountID].Add(payroll)
	}
	for account, amount := range withdrawnByAccount {
		contributions[account] = contributions[account].Sub(amount)
	}

	accounts := make([]domain.Account, len(state.Accounts))
	for i, a := range state.Accounts {
		accounts[i] = GrowAccount(a, assumptions, contributions[a.ID], overrides[a.ID])
	}

	// (f) Assemble the immutable snapshot.
	allocatedAnnual := waterfall.Allocated().Mul(twelve)
	netInflow := annual401k.Add(annualRoth).Add(annualMatch).Add(allocatedAnnual).Sub(withdrawnAnnual)
	insuranceAnnual := ficaExempt

	snapshot := domain.YearSnapshot{
		Year:     year,
		Accounts: domain.CloneAccounts(accounts),
		Incomes:  domain.CloneIncomes(incomes),
		Expenses: domain.CloneExpenses(expenses),
		Cashflow: domain.CashflowSummary{
			GrossIncome:          gross,
			EmployerMatch:        annualMatch,
			PretaxDeductions:     pretax,
			TotalTax:             totalTax,
			TotalExpenses:        annualExpenses.Add(insuranceAnnual),
			DiscretionaryMonthly: discretionaryMonthly,
			AllocatedMonthly:     waterfall.Allocated(),
			UnallocatedMonthly:   remainderMonthly,
			UnallocatedAnnual:    remainderMonthly.Mul(twelve),
			NetAccountInflow:     netInflow,
		},
		Taxes:    taxDetail,
		NetWorth: domain.ComputeNetWorth(accounts),
		Logs:     logs,
	}

	next := yearState{Accounts: accounts, Incomes: incomes, Expenses: expenses}
	return snapshot, next, nil
}

// coverDeficit withdraws from saved and invested accounts, in list order,
// to fund a negative waterfall remainder once the plan's retirement age is
// reached. Each account gives up at most the configured withdrawal rate of
// its balance per year. Returns per-account withdrawals and the annual
// total.
func (pe *ProjectionEngine) coverDeficit(plan *domain.Plan, accounts []domain.Account, remainderMonthly decimal.Decimal, yearOffset int) (map[string]decimal.Decimal, decimal.Decimal) {
	withdrawn := make(map[string]decimal.Decimal)
	total := decimal.Zero

	a := plan.Assumptions
	if !remainderMonthly.IsNegative() || a.WithdrawalStrategy == "" || a.WithdrawalRate.LessThanOrEqual(decimal.Zero) {
		return withdrawn, total
	}
	if a.RetirementAge <= 0 || a.CurrentAge+yearOffset+1 < a.RetirementAge {
		return withdrawn, total
	}

	need := remainderMonthly.Neg().Mul(decimal.NewFromInt(12))
	for _, acct := range accounts {
		if need.LessThanOrEqual(decimal.Zero) {
			break
		}
		if acct.Type != domain.AccountSaved && acct.Type != domain.AccountInvested {
			continue
		}
		allowed := acct.Amount.Mul(a.WithdrawalRate).Div(decimal.NewFromInt(100))
		take := decimal.Min(need, allowed)
		if take.LessThanOrEqual(decimal.Zero) {
			continue
		}
		withdrawn[acct.ID] = take
		total = total.Add(take)
		need = need.Sub(take)
	}
	return withdrawn, total
}
