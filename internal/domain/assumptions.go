package domain

import (
	"github.com/shopspring/decimal"
)

// Assumptions is the immutable value object of economic and demographic
// rates for a projection run. All rates are percent values (2.5 means
// 2.5% per year). Only the user edits these between runs; the engine never
// mutates them.
type Assumptions struct {
	// Macro rates.
	InflationGeneral    decimal.Decimal `yaml:"inflation_general" json:"inflation_general"`
	InflationHealthcare decimal.Decimal `yaml:"inflation_healthcare" json:"inflation_healthcare"`
	InflationRent       decimal.Decimal `yaml:"inflation_rent" json:"inflation_rent"`
	HousingAppreciation decimal.Decimal `yaml:"housing_appreciation" json:"housing_appreciation"`

	// Income rates.
	SalaryGrowth decimal.Decimal `yaml:"salary_growth" json:"salary_growth"`

	// Investment rates.
	InvestmentReturn decimal.Decimal `yaml:"investment_return" json:"investment_return"`

	// Withdrawal strategy applied once retirement age is reached.
	WithdrawalStrategy string          `yaml:"withdrawal_strategy,omitempty" json:"withdrawal_strategy,omitempty"`
	WithdrawalRate     decimal.Decimal `yaml:"withdrawal_rate,omitempty" json:"withdrawal_rate,omitempty"`

	// Demographics.
	CurrentAge     int `yaml:"current_age,omitempty" json:"current_age,omitempty"`
	RetirementAge  int `yaml:"retirement_age,omitempty" json:"retirement_age,omitempty"`
	LifeExpectancy int `yaml:"life_expectancy,omitempty" json:"life_expectancy,omitempty"`

	// Statutory annual 401k contribution limit, grown with general
	// inflation; used by the TRACK_ANNUAL_MAX contribution strategy and by
	// MAX waterfall buckets.
	Contribution401kLimit decimal.Decimal `yaml:"contribution_401k_limit,omitempty" json:"contribution_401k_limit,omitempty"`
}

// InflationFor returns the percent inflation rate for a category.
func (a Assumptions) InflationFor(category InflationCategory) decimal.Decimal {
	switch category {
	case InflationHealthcare:
		return a.InflationHealthcare
	case InflationHousing:
		return a.HousingAppreciation
	case InflationRent:
		return a.InflationRent
	default:
		return a.InflationGeneral
	}
}

// ZeroGrowth returns an Assumptions value with every rate zeroed. Growing
// any entity under it must return the entity unchanged (modulo identity).
func ZeroGrowth() Assumptions {
	return Assumptions{}
}

// GrowthFactor converts a percent rate into a 1+r/100 multiplier.
func GrowthFactor(percentRate decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(1).Add(percentRate.Div(decimal.NewFromInt(100)))
}
