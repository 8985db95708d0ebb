package config

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nwgo/networth-projector/internal/calculation"
	"github.com/nwgo/networth-projector/internal/domain"
)

func TestLoadFromFile(t *testing.T) {
	parser := NewInputParser()
	plan, err := parser.LoadFromFile(filepath.Join("testdata", "plan.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "Fixture Plan", plan.Name)
	assert.Equal(t, 2025, plan.StartYear)
	assert.Equal(t, 10, plan.Horizon)
	assert.Equal(t, domain.FilingSingle, plan.FilingStatus)
	require.Len(t, plan.Accounts, 3)
	require.Len(t, plan.Expenses, 2)
	require.Len(t, plan.Buckets, 2)

	house := domain.FindAccount(plan.Accounts, "house")
	require.NotNil(t, house)
	assert.Equal(t, domain.OwnershipFinanced, house.Ownership)
	assert.True(t, house.LoanAmount.Equal(decimal.NewFromInt(320000)))

	mortgage := domain.FindExpense(plan.Expenses, "mortgage")
	require.NotNil(t, mortgage)
	assert.Equal(t, 360, mortgage.TermMonths)
	assert.True(t, mortgage.APR.Equal(decimal.NewFromFloat(5.5)))
	require.NotNil(t, mortgage.Escrow)
	assert.True(t, mortgage.Escrow.HOAMonthly.Equal(decimal.NewFromInt(30)))

	require.NotNil(t, plan.TaxOverrides.FICA)
	assert.True(t, plan.TaxOverrides.FICA.IsZero())
	assert.Nil(t, plan.TaxOverrides.Federal)
}

func TestLoadedPlanProjects(t *testing.T) {
	parser := NewInputParser()
	plan, err := parser.LoadFromFile(filepath.Join("testdata", "plan.yaml"))
	require.NoError(t, err)

	engine := calculation.NewProjectionEngine()
	result, err := engine.Project(context.Background(), plan)
	require.NoError(t, err)
	assert.Len(t, result.Timeline, plan.Horizon)

	// The fixture pins FICA to zero via an override.
	assert.True(t, result.Timeline[0].Taxes.FICAOverridden)
	assert.True(t, result.Timeline[0].Taxes.FICA.IsZero())
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	parser := NewInputParser()
	_, err := parser.Parse([]byte("accounts: [\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing plan")
}

func TestValidatePlan(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.Plan)
		wantErr string
	}{
		{"missing name", func(p *domain.Plan) { p.Name = "" }, "name is required"},
		{"bad horizon", func(p *domain.Plan) { p.Horizon = 150 }, "between 1 and 100"},
		{"bad filing status", func(p *domain.Plan) { p.FilingStatus = "separate" }, "unknown filing status"},
		{"duplicate id", func(p *domain.Plan) { p.Incomes[0].ID = p.Accounts[0].ID }, "duplicate id"},
		{"unknown account type", func(p *domain.Plan) { p.Accounts[0].Type = "crypto" }, "unknown account type"},
		{"negative amount", func(p *domain.Plan) { p.Accounts[0].Amount = decimal.NewFromInt(-10) }, "must not be negative"},
		{
			"non-vested above balance",
			func(p *domain.Plan) {
				p.Accounts[1].NonVestedAmount = p.Accounts[1].Amount.Add(decimal.NewFromInt(1))
			},
			"non-vested",
		},
		{"unknown income frequency", func(p *domain.Plan) { p.Incomes[0].Frequency = "fortnightly" }, "unknown frequency"},
		{
			"contributions without target account",
			func(p *domain.Plan) { p.Incomes[0].MatchAccountID = "" },
			"match_account_id",
		},
		{
			"match into property",
			func(p *domain.Plan) { p.Incomes[0].MatchAccountID = "house" },
			"saved or invested",
		},
		{"unknown expense type", func(p *domain.Plan) { p.Expenses[1].Type = "subscriptions" }, "unknown expense type"},
		{
			"escrow on non-mortgage",
			func(p *domain.Plan) { p.Expenses[1].Escrow = &domain.EscrowTerms{} },
			"escrow",
		},
		{
			"inverted dates",
			func(p *domain.Plan) {
				p.Incomes[0].StartDate = mustDate("2030-01-01")
				p.Incomes[0].EndDate = mustDate("2028-01-01")
			},
			"end date precedes",
		},
		{"unknown cap type", func(p *domain.Plan) { p.Buckets[0].CapType = "percent" }, "unknown cap type"},
		{"zero cap value", func(p *domain.Plan) { p.Buckets[0].CapValue = decimal.Zero }, "must be positive"},
		{
			"second remainder bucket",
			func(p *domain.Plan) { p.Buckets[0].CapType = domain.CapRemainder },
			"only one remainder",
		},
		{
			"loan without term",
			func(p *domain.Plan) { p.Expenses[0].TermMonths = 0 },
			"term must be positive",
		},
		{
			"loan without start date",
			func(p *domain.Plan) { p.Expenses[0].StartDate = time.Time{} },
			"start date is required",
		},
		{
			"rate out of range",
			func(p *domain.Plan) { p.Assumptions.SalaryGrowth = decimal.NewFromInt(500) },
			"out of range",
		},
	}

	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := parser.LoadFromFile(filepath.Join("testdata", "plan.yaml"))
			require.NoError(t, err)

			tt.mutate(plan)
			err = parser.ValidatePlan(plan)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExamplePlanValidatesAndProjects(t *testing.T) {
	plan := CreateExamplePlan()

	parser := NewInputParser()
	require.NoError(t, parser.ValidatePlan(plan))

	engine := calculation.NewProjectionEngine()
	result, err := engine.Project(context.Background(), plan)
	require.NoError(t, err)
	assert.Len(t, result.Timeline, plan.Horizon)
	assert.True(t, result.Summary.FinalNetWorth.GreaterThan(decimal.Zero))
}

func TestExamplePlanRoundTrip(t *testing.T) {
	plan := CreateExamplePlan()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, SavePlan(plan, path))

	parser := NewInputParser()
	loaded, err := parser.LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, plan.Name, loaded.Name)
	assert.Equal(t, len(plan.Accounts), len(loaded.Accounts))
	assert.Equal(t, len(plan.Buckets), len(loaded.Buckets))
	assert.True(t, loaded.Accounts[0].Amount.Equal(plan.Accounts[0].Amount))
}

func mustDate(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}
