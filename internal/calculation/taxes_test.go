package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nwgo/networth-projector/internal/domain"
)

func testTaxParams() domain.TaxParameters {
	return domain.TaxParameters{
		Tables: []domain.TaxTable{
			{
				Year:         2026,
				FilingStatus: domain.FilingSingle,
				Jurisdiction: domain.JurisdictionFederal,
				Brackets: []domain.TaxBracket{
					{Threshold: decimal.Zero, Rate: decimal.NewFromFloat(0.10)},
					{Threshold: decimal.NewFromInt(10000), Rate: decimal.NewFromFloat(0.20)},
				},
				StandardDeduction: decimal.Zero,
				SSWageBase:        decimal.NewFromInt(168600),
				SSRate:            decimal.NewFromFloat(0.062),
				MedicareRate:      decimal.NewFromFloat(0.0145),
			},
			{
				Year:         2026,
				FilingStatus: domain.FilingSingle,
				Jurisdiction: "CO",
				Brackets: []domain.TaxBracket{
					{Threshold: decimal.Zero, Rate: decimal.NewFromFloat(0.044)},
				},
			},
		},
	}
}

func TestBracketTax(t *testing.T) {
	brackets := []domain.TaxBracket{
		{Threshold: decimal.Zero, Rate: decimal.NewFromFloat(0.10)},
		{Threshold: decimal.NewFromInt(10000), Rate: decimal.NewFromFloat(0.20)},
	}

	tests := []struct {
		name    string
		taxable decimal.Decimal
		want    decimal.Decimal
	}{
		{"zero income", decimal.Zero, decimal.Zero},
		{"negative income", decimal.NewFromInt(-5000), decimal.Zero},
		{"inside first bracket", decimal.NewFromInt(8000), decimal.NewFromInt(800)},
		{"exactly at boundary", decimal.NewFromInt(10000), decimal.NewFromInt(1000)},
		{"spanning both brackets", decimal.NewFromInt(50000), decimal.NewFromInt(9000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BracketTax(tt.taxable, brackets)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestBracketTaxContinuousAtBoundary(t *testing.T) {
	brackets := []domain.TaxBracket{
		{Threshold: decimal.Zero, Rate: decimal.NewFromFloat(0.10)},
		{Threshold: decimal.NewFromInt(10000), Rate: decimal.NewFromFloat(0.20)},
		{Threshold: decimal.NewFromInt(40000), Rate: decimal.NewFromFloat(0.30)},
	}

	// Tax just below and just above each boundary differs by at most the
	// marginal rate times the income step.
	step := decimal.NewFromFloat(0.01)
	for _, boundary := range []decimal.Decimal{decimal.NewFromInt(10000), decimal.NewFromInt(40000)} {
		below := BracketTax(boundary.Sub(step), brackets)
		at := BracketTax(boundary, brackets)
		above := BracketTax(boundary.Add(step), brackets)

		assert.True(t, at.Sub(below).LessThanOrEqual(step), "discontinuity below %s", boundary)
		assert.True(t, above.Sub(at).LessThanOrEqual(step), "discontinuity above %s", boundary)
	}
}

func TestBracketTaxMonotonic(t *testing.T) {
	brackets := []domain.TaxBracket{
		{Threshold: decimal.Zero, Rate: decimal.NewFromFloat(0.10)},
		{Threshold: decimal.NewFromInt(25000), Rate: decimal.NewFromFloat(0.22)},
		{Threshold: decimal.NewFromInt(95000), Rate: decimal.NewFromFloat(0.35)},
	}

	prev := decimal.Zero
	for income := 0; income <= 200000; income += 5000 {
		tax := BracketTax(decimal.NewFromInt(int64(income)), brackets)
		assert.True(t, tax.GreaterThanOrEqual(prev), "tax decreased at income %d", income)
		prev = tax
	}
}

func TestCalculateFederalAndState(t *testing.T) {
	calc := NewTaxCalculator(testTaxParams())

	detail, logs := calc.Calculate(TaxInput{
		Year:         2026,
		FilingStatus: domain.FilingSingle,
		State:        "CO",
		GrossIncome:  decimal.NewFromInt(50000),
		EarnedIncome: decimal.NewFromInt(50000),
	})

	require.Empty(t, logs)
	assert.True(t, detail.Federal.Equal(decimal.NewFromInt(9000)), "federal: got %s", detail.Federal)
	assert.True(t, detail.State.Equal(decimal.NewFromInt(2200)), "state: got %s", detail.State)

	// FICA: 50000*0.062 + 50000*0.0145.
	wantFICA := decimal.NewFromInt(3100).Add(decimal.NewFromInt(725))
	assert.True(t, detail.FICA.Equal(wantFICA), "fica: got %s", detail.FICA)
}

func TestCalculateNoStateConfigured(t *testing.T) {
	calc := NewTaxCalculator(testTaxParams())

	detail, logs := calc.Calculate(TaxInput{
		Year:         2026,
		FilingStatus: domain.FilingSingle,
		GrossIncome:  decimal.NewFromInt(50000),
		EarnedIncome: decimal.NewFromInt(50000),
	})

	assert.Empty(t, logs)
	assert.True(t, detail.State.IsZero())
}

func TestCalculateMissingTableDefaultsToZero(t *testing.T) {
	calc := NewTaxCalculator(domain.TaxParameters{})

	detail, logs := calc.Calculate(TaxInput{
		Year:         2026,
		FilingStatus: domain.FilingSingle,
		State:        "CO",
		GrossIncome:  decimal.NewFromInt(80000),
		EarnedIncome: decimal.NewFromInt(80000),
	})

	assert.True(t, detail.Federal.IsZero())
	assert.True(t, detail.State.IsZero())
	assert.True(t, detail.FICA.IsZero())
	assert.Len(t, logs, 3)
}

func TestCalculateUsesLatestEarlierTable(t *testing.T) {
	calc := NewTaxCalculator(testTaxParams())

	// 2030 has no table; the 2026 table applies.
	detail, logs := calc.Calculate(TaxInput{
		Year:         2030,
		FilingStatus: domain.FilingSingle,
		GrossIncome:  decimal.NewFromInt(50000),
		EarnedIncome: decimal.NewFromInt(50000),
	})

	assert.Empty(t, logs)
	assert.True(t, detail.Federal.Equal(decimal.NewFromInt(9000)))
}

func TestCalculateOverridesShortCircuit(t *testing.T) {
	// Overrides must win even with no tables configured at all.
	calc := NewTaxCalculator(domain.TaxParameters{})

	fed := decimal.NewFromInt(1234)
	state := decimal.NewFromInt(567)
	fica := decimal.NewFromInt(89)

	detail, logs := calc.Calculate(TaxInput{
		Year:         2026,
		FilingStatus: domain.FilingSingle,
		State:        "CO",
		GrossIncome:  decimal.NewFromInt(200000),
		EarnedIncome: decimal.NewFromInt(200000),
		Overrides:    domain.TaxOverrides{Federal: &fed, State: &state, FICA: &fica},
	})

	assert.Empty(t, logs)
	assert.True(t, detail.Federal.Equal(fed))
	assert.True(t, detail.State.Equal(state))
	assert.True(t, detail.FICA.Equal(fica))
	assert.True(t, detail.FederalOverridden)
	assert.True(t, detail.StateOverridden)
	assert.True(t, detail.FICAOverridden)
	assert.True(t, detail.Total().Equal(decimal.NewFromInt(1890)))
}

func TestCalculateFICAWageBase(t *testing.T) {
	calc := NewTaxCalculator(testTaxParams())

	// Earned income above the wage base: SS caps, Medicare does not.
	detail, _ := calc.Calculate(TaxInput{
		Year:         2026,
		FilingStatus: domain.FilingSingle,
		GrossIncome:  decimal.NewFromInt(250000),
		EarnedIncome: decimal.NewFromInt(250000),
	})

	wantSS := decimal.NewFromInt(168600).Mul(decimal.NewFromFloat(0.062))
	wantMedicare := decimal.NewFromInt(250000).Mul(decimal.NewFromFloat(0.0145))
	assert.True(t, detail.FICA.Equal(wantSS.Add(wantMedicare)), "got %s", detail.FICA)
}

func TestCalculateFICAExemptDeductions(t *testing.T) {
	calc := NewTaxCalculator(testTaxParams())

	// Pre-tax insurance reduces the FICA base; 401k deferrals do not.
	detail, _ := calc.Calculate(TaxInput{
		Year:                 2026,
		FilingStatus:         domain.FilingSingle,
		GrossIncome:          decimal.NewFromInt(100000),
		EarnedIncome:         decimal.NewFromInt(100000),
		PretaxDeductions:     decimal.NewFromInt(28000),
		FICAExemptDeductions: decimal.NewFromInt(5000),
	})

	base := decimal.NewFromInt(95000)
	want := base.Mul(decimal.NewFromFloat(0.062)).Add(base.Mul(decimal.NewFromFloat(0.0145)))
	assert.True(t, detail.FICA.Equal(want), "got %s", detail.FICA)
	assert.True(t, detail.AdjustedGross.Equal(decimal.NewFromInt(72000)))
}

func TestCalculateItemizedDeduction(t *testing.T) {
	params := testTaxParams()
	params.Tables[0].StandardDeduction = decimal.NewFromInt(14600)
	calc := NewTaxCalculator(params)

	standard, _ := calc.Calculate(TaxInput{
		Year:         2026,
		FilingStatus: domain.FilingSingle,
		GrossIncome:  decimal.NewFromInt(100000),
		EarnedIncome: decimal.NewFromInt(100000),
	})
	itemized, _ := calc.Calculate(TaxInput{
		Year:          2026,
		FilingStatus:  domain.FilingSingle,
		GrossIncome:   decimal.NewFromInt(100000),
		EarnedIncome:  decimal.NewFromInt(100000),
		Itemize:       true,
		ItemizedTotal: decimal.NewFromInt(24000),
	})

	assert.True(t, standard.DeductionApplied.Equal(decimal.NewFromInt(14600)))
	assert.True(t, itemized.DeductionApplied.Equal(decimal.NewFromInt(24000)))
	assert.True(t, itemized.Federal.LessThan(standard.Federal))
}

func TestItemizedTotalUsesLoanInterest(t *testing.T) {
	mortgage := domain.Expense{
		ID:                "m",
		Type:              domain.ExpenseMortgage,
		TaxDeductible:     true,
		APR:               decimal.NewFromInt(6),
		OriginalPrincipal: decimal.NewFromInt(300000),
		TermMonths:        360,
		StartDate:         date(2025, 1),
	}
	charity := domain.Expense{
		ID:            "c",
		Type:          domain.ExpenseOther,
		TaxDeductible: true,
		Amount:        decimal.NewFromInt(200),
		Frequency:     domain.FrequencyMonthly,
	}
	groceries := domain.Expense{
		ID:        "g",
		Type:      domain.ExpenseFood,
		Amount:    decimal.NewFromInt(900),
		Frequency: domain.FrequencyMonthly,
	}

	loan, err := NewLoanFromExpense(mortgage)
	require.NoError(t, err)
	loans := map[string]*Loan{"m": loan}

	total := ItemizedTotal([]domain.Expense{mortgage, charity, groceries}, 2026, loans)

	interest := loan.Annual(2026).TotalInterest
	want := interest.Add(decimal.NewFromInt(2400))
	assert.True(t, total.Equal(want), "want %s, got %s", want, total)
	assert.True(t, interest.GreaterThan(decimal.NewFromInt(15000)), "interest %s implausibly low", interest)
}
