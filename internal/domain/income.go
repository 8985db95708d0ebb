package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nwgo/networth-projector/pkg/dateutil"
)

// IncomeType discriminates the income variants.
type IncomeType string

const (
	IncomeWork           IncomeType = "work"
	IncomeSocialSecurity IncomeType = "social_security"
	IncomePassive        IncomeType = "passive"
	IncomeWindfall       IncomeType = "windfall"
)

// Frequency expresses how often an income or expense amount recurs.
type Frequency string

const (
	FrequencyWeekly   Frequency = "weekly"
	FrequencyMonthly  Frequency = "monthly"
	FrequencyAnnually Frequency = "annually"
)

// PeriodsPerYear returns the number of occurrences per calendar year.
// Unknown frequencies default to annual, matching the reconstruction policy
// of defaulting missing optional fields to neutral values.
func (f Frequency) PeriodsPerYear() decimal.Decimal {
	switch f {
	case FrequencyWeekly:
		return decimal.NewFromInt(52)
	case FrequencyMonthly:
		return decimal.NewFromInt(12)
	default:
		return decimal.NewFromInt(1)
	}
}

// ContributionGrowthStrategy controls how a Work income's 401k and match
// dollars evolve year over year.
type ContributionGrowthStrategy string

const (
	ContributionFixed          ContributionGrowthStrategy = "fixed"
	ContributionGrowWithSalary ContributionGrowthStrategy = "grow_with_salary"
	ContributionTrackAnnualMax ContributionGrowthStrategy = "track_annual_max"
)

// Income is a closed tagged variant. Amount is per Frequency period; the
// Work-only field group carries payroll deductions and the employer match.
type Income struct {
	ID        string          `yaml:"id" json:"id"`
	Name      string          `yaml:"name" json:"name"`
	Type      IncomeType      `yaml:"type" json:"type"`
	Amount    decimal.Decimal `yaml:"amount" json:"amount"`
	Frequency Frequency       `yaml:"frequency" json:"frequency"`
	StartDate time.Time       `yaml:"start_date,omitempty" json:"start_date,omitempty"`
	EndDate   time.Time       `yaml:"end_date,omitempty" json:"end_date,omitempty"`
	Earned    bool            `yaml:"earned" json:"earned"`

	// Work variant: annual dollar figures.
	Contribution401k   decimal.Decimal            `yaml:"contribution_401k,omitempty" json:"contribution_401k,omitempty"`
	ContributionRoth   decimal.Decimal            `yaml:"contribution_roth,omitempty" json:"contribution_roth,omitempty"`
	InsurancePremium   decimal.Decimal            `yaml:"insurance_premium,omitempty" json:"insurance_premium,omitempty"`
	EmployerMatch      decimal.Decimal            `yaml:"employer_match,omitempty" json:"employer_match,omitempty"`
	MatchAccountID     string                     `yaml:"match_account_id,omitempty" json:"match_account_id,omitempty"`
	MatchTaxCharacter  TaxTreatment               `yaml:"match_tax_character,omitempty" json:"match_tax_character,omitempty"`
	ContributionGrowth ContributionGrowthStrategy `yaml:"contribution_growth,omitempty" json:"contribution_growth,omitempty"`
}

// ActiveFraction returns the portion of the given calendar year this income
// is active, based on its start/end window.
func (in Income) ActiveFraction(year int) decimal.Decimal {
	return decimal.NewFromFloat(dateutil.ActiveFraction(year, in.StartDate, in.EndDate))
}

// AnnualAmount prorates the per-period amount to an annual figure for the
// given calendar year, honoring the active window.
func (in Income) AnnualAmount(year int) decimal.Decimal {
	return in.Amount.Mul(in.Frequency.PeriodsPerYear()).Mul(in.ActiveFraction(year))
}

// AnnualPretaxDeductions sums the deductions withheld before income tax,
// prorated to the active window. Only the Work variant carries them.
func (in Income) AnnualPretaxDeductions(year int) decimal.Decimal {
	if in.Type != IncomeWork {
		return decimal.Zero
	}
	return in.Contribution401k.Add(in.InsurancePremium).Mul(in.ActiveFraction(year))
}
