package calculation

import (
	"fmt"

	"github.com/nwgo/networth-projector/internal/domain"
)

// IntegrityError reports a dangling or mismatched Account↔Expense link.
// The engine treats these as data-integrity failures to surface, never as
// something it repairs.
type IntegrityError struct {
	EntityID string
	Reason   string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("data integrity: entity %s: %s", e.EntityID, e.Reason)
}

// LinkSet maps each amortized expense id to its paired account id and
// back. Both directions are validated before a run starts.
type LinkSet struct {
	AccountByExpense map[string]string
	ExpenseByAccount map[string]string
}

// ResolveLinks validates referential integrity of Mortgage↔Property and
// Loan↔Debt pairs once per run: every link must exist, point at the right
// variant, and be mirrored by its counterpart.
func ResolveLinks(accounts []domain.Account, expenses []domain.Expense) (*LinkSet, error) {
	links := &LinkSet{
		AccountByExpense: make(map[string]string),
		ExpenseByAccount: make(map[string]string),
	}

	for _, e := range expenses {
		if !e.IsLinked() {
			continue
		}
		acct := domain.FindAccount(accounts, e.LinkedAccountID)
		if acct == nil {
			return nil, &IntegrityError{EntityID: e.ID, Reason: fmt.Sprintf("linked account %q does not exist", e.LinkedAccountID)}
		}
		switch {
		case e.Type == domain.ExpenseMortgage && acct.Type != domain.AccountProperty:
			return nil, &IntegrityError{EntityID: e.ID, Reason: fmt.Sprintf("mortgage links to %s account %q, want property", acct.Type, acct.ID)}
		case e.Type == domain.ExpenseLoan && acct.Type != domain.AccountDebt:
			return nil, &IntegrityError{EntityID: e.ID, Reason: fmt.Sprintf("loan links to %s account %q, want debt", acct.Type, acct.ID)}
		}
		if acct.LinkedExpenseID != e.ID {
			return nil, &IntegrityError{EntityID: e.ID, Reason: fmt.Sprintf("account %q back-reference is %q, want %q", acct.ID, acct.LinkedExpenseID, e.ID)}
		}
		links.AccountByExpense[e.ID] = acct.ID
		links.ExpenseByAccount[acct.ID] = e.ID
	}

	for _, a := range accounts {
		if !a.IsLinked() {
			continue
		}
		exp := domain.FindExpense(expenses, a.LinkedExpenseID)
		if exp == nil {
			return nil, &IntegrityError{EntityID: a.ID, Reason: fmt.Sprintf("linked expense %q does not exist", a.LinkedExpenseID)}
		}
		if exp.LinkedAccountID != a.ID {
			return nil, &IntegrityError{EntityID: a.ID, Reason: fmt.Sprintf("expense %q back-reference is %q, want %q", exp.ID, exp.LinkedAccountID, a.ID)}
		}
	}

	return links, nil
}
