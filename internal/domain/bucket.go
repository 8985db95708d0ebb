package domain

import (
	"github.com/shopspring/decimal"
)

// CapType selects how a priority bucket caps its contribution.
type CapType string

const (
	// CapFixed contributes up to a fixed monthly dollar amount.
	CapFixed CapType = "fixed"
	// CapMax contributes up to an annual ceiling prorated to the month,
	// modeling statutory retirement-account limits.
	CapMax CapType = "max"
	// CapMultipleOfExpenses tops the target account up to CapValue months
	// of fixed expenses (an emergency-fund rule).
	CapMultipleOfExpenses CapType = "multiple_of_expenses"
	// CapRemainder absorbs everything left.
	CapRemainder CapType = "remainder"
)

// PriorityBucket is one entry of the cashflow waterfall. Order within the
// bucket list is significant: cash flows through buckets in list order.
type PriorityBucket struct {
	ID        string          `yaml:"id" json:"id"`
	Name      string          `yaml:"name" json:"name"`
	AccountID string          `yaml:"account_id" json:"account_id"`
	CapType   CapType         `yaml:"cap_type" json:"cap_type"`
	CapValue  decimal.Decimal `yaml:"cap_value,omitempty" json:"cap_value,omitempty"`
}
