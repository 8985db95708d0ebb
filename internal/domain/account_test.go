package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNetWorthContribution(t *testing.T) {
	tests := []struct {
		name string
		a    Account
		want decimal.Decimal
	}{
		{
			"saved counts in full",
			Account{Type: AccountSaved, Amount: decimal.NewFromInt(5000)},
			decimal.NewFromInt(5000),
		},
		{
			"invested counts in full including non-vested",
			Account{Type: AccountInvested, Amount: decimal.NewFromInt(90000), NonVestedAmount: decimal.NewFromInt(10000)},
			decimal.NewFromInt(90000),
		},
		{
			"property nets out the loan",
			Account{Type: AccountProperty, Amount: decimal.NewFromInt(500000), LoanAmount: decimal.NewFromInt(320000)},
			decimal.NewFromInt(180000),
		},
		{
			"debt counts negative",
			Account{Type: AccountDebt, Amount: decimal.NewFromInt(15000)},
			decimal.NewFromInt(-15000),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.NetWorthContribution()
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestVestedFraction(t *testing.T) {
	a := Account{Type: AccountInvested, Amount: decimal.NewFromInt(100000), NonVestedAmount: decimal.NewFromInt(25000)}
	assert.True(t, a.VestedFraction().Equal(decimal.NewFromFloat(0.75)))
	assert.True(t, a.VestedAmount().Equal(decimal.NewFromInt(75000)))

	t.Run("zero balance is fully vested", func(t *testing.T) {
		empty := Account{Type: AccountInvested}
		assert.True(t, empty.VestedFraction().Equal(decimal.NewFromInt(1)))
	})

	t.Run("non-vested above balance clamps", func(t *testing.T) {
		odd := Account{Type: AccountInvested, Amount: decimal.NewFromInt(1000), NonVestedAmount: decimal.NewFromInt(2000)}
		assert.True(t, odd.VestedFraction().IsZero())
		assert.True(t, odd.VestedAmount().IsZero())
	})

	t.Run("other variants are fully vested", func(t *testing.T) {
		saved := Account{Type: AccountSaved, Amount: decimal.NewFromInt(1000)}
		assert.True(t, saved.VestedFraction().Equal(decimal.NewFromInt(1)))
		assert.True(t, saved.VestedAmount().Equal(decimal.NewFromInt(1000)))
	})
}

func TestComputeNetWorth(t *testing.T) {
	accounts := []Account{
		{Type: AccountSaved, Amount: decimal.NewFromInt(10000)},
		{Type: AccountInvested, Amount: decimal.NewFromInt(200000)},
		{Type: AccountProperty, Amount: decimal.NewFromInt(400000), LoanAmount: decimal.NewFromInt(280000)},
		{Type: AccountDebt, Amount: decimal.NewFromInt(12000)},
	}
	want := decimal.NewFromInt(10000 + 200000 + 120000 - 12000)
	assert.True(t, ComputeNetWorth(accounts).Equal(want))
}

func TestCloneExpensesDetachesEscrow(t *testing.T) {
	expenses := []Expense{
		{ID: "m", Type: ExpenseMortgage, Escrow: &EscrowTerms{HOAMonthly: decimal.NewFromInt(50)}},
	}

	clone := CloneExpenses(expenses)
	clone[0].Escrow.HOAMonthly = decimal.NewFromInt(999)

	assert.True(t, expenses[0].Escrow.HOAMonthly.Equal(decimal.NewFromInt(50)))
}
