package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/nwgo/networth-projector/internal/domain"
)

// BucketAllocation is one bucket's funded amount for the period.
type BucketAllocation struct {
	BucketID  string          `json:"bucket_id"`
	AccountID string          `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// WaterfallResult is the outcome of one waterfall pass: per-bucket and
// per-account inflows plus the final unallocated remainder. The remainder
// may be negative, representing an unfunded deficit that callers must
// surface rather than absorb.
type WaterfallResult struct {
	Allocations []BucketAllocation
	ByAccount   map[string]decimal.Decimal
	Remainder   decimal.Decimal
}

// Allocated sums all bucket contributions.
func (r WaterfallResult) Allocated() decimal.Decimal {
	total := decimal.Zero
	for _, a := range r.Allocations {
		total = total.Add(a.Amount)
	}
	return total
}

// RunWaterfall allocates one month's discretionary cash across the bucket
// list in strict list order. monthlyFixedExpenses feeds the
// MULTIPLE_OF_EXPENSES top-up rule; accounts supply current balances for
// the same rule. A bucket never contributes more than remains and
// contributions are never negative, so allocated + remainder always
// equals the input cash.
func RunWaterfall(monthlyCash decimal.Decimal, buckets []domain.PriorityBucket, accounts []domain.Account, monthlyFixedExpenses decimal.Decimal) WaterfallResult {
	result := WaterfallResult{
		ByAccount: make(map[string]decimal.Decimal, len(buckets)),
	}
	remaining := monthlyCash
	twelve := decimal.NewFromInt(12)

	for _, bucket := range buckets {
		available := decimal.Max(remaining, decimal.Zero)
		var contribution decimal.Decimal

		switch bucket.CapType {
		case domain.CapFixed:
			contribution = decimal.Min(bucket.CapValue, available)
		case domain.CapMax:
			// CapValue is an annual ceiling prorated to the month.
			contribution = decimal.Min(bucket.CapValue.Div(twelve), available)
		case domain.CapMultipleOfExpenses:
			target := bucket.CapValue.Mul(monthlyFixedExpenses)
			balance := decimal.Zero
			if acct := domain.FindAccount(accounts, bucket.AccountID); acct != nil {
				balance = acct.Amount
			}
			gap := decimal.Max(target.Sub(balance), decimal.Zero)
			contribution = decimal.Min(gap, available)
		case domain.CapRemainder:
			contribution = available
		default:
			contribution = decimal.Zero
		}

		if contribution.IsNegative() {
			contribution = decimal.Zero
		}
		result.Allocations = append(result.Allocations, BucketAllocation{
			BucketID:  bucket.ID,
			AccountID: bucket.AccountID,
			Amount:    contribution,
		})
		result.ByAccount[bucket.AccountID] = result.ByAccount[bucket.AccountID].Add(contribution)
		remaining = remaining.Sub(contribution)
	}

	result.Remainder = remaining
	return result
}
