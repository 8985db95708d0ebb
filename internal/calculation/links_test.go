package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nwgo/networth-projector/internal/domain"
)

func linkedFixture() ([]domain.Account, []domain.Expense) {
	accounts := []domain.Account{
		{ID: "house", Type: domain.AccountProperty, Amount: decimal.NewFromInt(500000), LinkedExpenseID: "mortgage"},
		{ID: "car-debt", Type: domain.AccountDebt, Amount: decimal.NewFromInt(18000), LinkedExpenseID: "car-loan"},
	}
	expenses := []domain.Expense{
		{ID: "mortgage", Type: domain.ExpenseMortgage, LinkedAccountID: "house"},
		{ID: "car-loan", Type: domain.ExpenseLoan, LinkedAccountID: "car-debt"},
	}
	return accounts, expenses
}

func TestResolveLinks(t *testing.T) {
	accounts, expenses := linkedFixture()

	links, err := ResolveLinks(accounts, expenses)
	require.NoError(t, err)

	assert.Equal(t, "house", links.AccountByExpense["mortgage"])
	assert.Equal(t, "car-debt", links.AccountByExpense["car-loan"])
	assert.Equal(t, "mortgage", links.ExpenseByAccount["house"])
}

func TestResolveLinksFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(accounts []domain.Account, expenses []domain.Expense)
		wantErr string
	}{
		{
			"dangling expense link",
			func(a []domain.Account, e []domain.Expense) { e[0].LinkedAccountID = "missing" },
			"does not exist",
		},
		{
			"mortgage linked to debt",
			func(a []domain.Account, e []domain.Expense) {
				e[0].LinkedAccountID = "car-debt"
				a[1].LinkedExpenseID = "mortgage"
			},
			"want property",
		},
		{
			"loan linked to property",
			func(a []domain.Account, e []domain.Expense) {
				e[1].LinkedAccountID = "house"
				a[0].LinkedExpenseID = "car-loan"
			},
			"want debt",
		},
		{
			"one-way link",
			func(a []domain.Account, e []domain.Expense) { a[0].LinkedExpenseID = "car-loan" },
			"back-reference",
		},
		{
			"dangling account link",
			func(a []domain.Account, e []domain.Expense) {
				e[0].LinkedAccountID = ""
				a[0].LinkedExpenseID = "gone"
			},
			"does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts, expenses := linkedFixture()
			tt.mutate(accounts, expenses)

			_, err := ResolveLinks(accounts, expenses)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			var ie *IntegrityError
			assert.ErrorAs(t, err, &ie)
		})
	}
}
