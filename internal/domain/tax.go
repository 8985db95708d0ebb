package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// FilingStatus selects the bracket table and standard deduction to apply.
type FilingStatus string

const (
	FilingSingle       FilingStatus = "single"
	FilingMarriedJoint FilingStatus = "married_joint"
)

// JurisdictionFederal is the jurisdiction key for federal tax tables; state
// tables use the state's own key (e.g. "CA"). A missing (year, jurisdiction)
// table legitimately means no tax for that component.
const JurisdictionFederal = "federal"

// TaxBracket is one (threshold, marginal rate) step. Threshold is the lower
// bound of the bracket; Rate is a decimal fraction (0.10 means 10%).
type TaxBracket struct {
	Threshold decimal.Decimal `yaml:"threshold" json:"threshold"`
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
}

// TaxTable holds the parameters for one (year, filing status, jurisdiction)
// combination. Bracket thresholds must be strictly increasing starting at 0.
// The FICA fields are meaningful on federal tables only.
type TaxTable struct {
	Year              int             `yaml:"year" json:"year"`
	FilingStatus      FilingStatus    `yaml:"filing_status" json:"filing_status"`
	Jurisdiction      string          `yaml:"jurisdiction" json:"jurisdiction"`
	Brackets          []TaxBracket    `yaml:"brackets" json:"brackets"`
	StandardDeduction decimal.Decimal `yaml:"standard_deduction" json:"standard_deduction"`

	SSWageBase   decimal.Decimal `yaml:"ss_wage_base,omitempty" json:"ss_wage_base,omitempty"`
	SSRate       decimal.Decimal `yaml:"ss_rate,omitempty" json:"ss_rate,omitempty"`
	MedicareRate decimal.Decimal `yaml:"medicare_rate,omitempty" json:"medicare_rate,omitempty"`
}

// Validate checks the strictly-increasing-from-zero bracket invariant and
// that no rate is negative.
func (t TaxTable) Validate() error {
	if len(t.Brackets) == 0 {
		return fmt.Errorf("tax table %s/%s/%d: no brackets", t.Jurisdiction, t.FilingStatus, t.Year)
	}
	if !t.Brackets[0].Threshold.IsZero() {
		return fmt.Errorf("tax table %s/%s/%d: first bracket threshold must be 0, got %s",
			t.Jurisdiction, t.FilingStatus, t.Year, t.Brackets[0].Threshold)
	}
	prev := decimal.NewFromInt(-1)
	for i, b := range t.Brackets {
		if b.Threshold.LessThanOrEqual(prev) {
			return fmt.Errorf("tax table %s/%s/%d: bracket %d threshold %s not strictly increasing",
				t.Jurisdiction, t.FilingStatus, t.Year, i, b.Threshold)
		}
		if b.Rate.IsNegative() {
			return fmt.Errorf("tax table %s/%s/%d: bracket %d rate is negative", t.Jurisdiction, t.FilingStatus, t.Year, i)
		}
		prev = b.Threshold
	}
	if t.SSRate.IsNegative() || t.MedicareRate.IsNegative() || t.SSWageBase.IsNegative() {
		return fmt.Errorf("tax table %s/%s/%d: FICA parameters cannot be negative", t.Jurisdiction, t.FilingStatus, t.Year)
	}
	return nil
}

// TaxParameters indexes tax tables by (year, filing status, jurisdiction).
type TaxParameters struct {
	Tables []TaxTable `yaml:"tables" json:"tables"`
}

// Find returns the table for the given key, or nil when absent. Callers
// treat a nil table as zero tax for that component.
func (tp TaxParameters) Find(year int, status FilingStatus, jurisdiction string) *TaxTable {
	for i := range tp.Tables {
		t := &tp.Tables[i]
		if t.Year == year && t.FilingStatus == status && t.Jurisdiction == jurisdiction {
			return t
		}
	}
	return nil
}

// FindLatest returns the table with the greatest year not exceeding the
// given year, so a multi-year projection keeps using the last published
// table instead of dropping to zero tax.
func (tp TaxParameters) FindLatest(year int, status FilingStatus, jurisdiction string) *TaxTable {
	var best *TaxTable
	for i := range tp.Tables {
		t := &tp.Tables[i]
		if t.FilingStatus != status || t.Jurisdiction != jurisdiction || t.Year > year {
			continue
		}
		if best == nil || t.Year > best.Year {
			best = t
		}
	}
	return best
}

// Validate checks every table.
func (tp TaxParameters) Validate() error {
	for _, t := range tp.Tables {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// TaxOverrides are user-entered replacements for computed tax components.
// A non-nil value wins unconditionally; the bracket math never runs for
// that component.
type TaxOverrides struct {
	Federal *decimal.Decimal `yaml:"federal,omitempty" json:"federal,omitempty"`
	State   *decimal.Decimal `yaml:"state,omitempty" json:"state,omitempty"`
	FICA    *decimal.Decimal `yaml:"fica,omitempty" json:"fica,omitempty"`
}

// UnmarshalYAML decodes optional override values given as plain scalars.
func (to *TaxOverrides) UnmarshalYAML(value *yaml.Node) error {
	type alias struct {
		Federal *string `yaml:"federal,omitempty"`
		State   *string `yaml:"state,omitempty"`
		FICA    *string `yaml:"fica,omitempty"`
	}
	var aux alias
	if err := value.Decode(&aux); err != nil {
		return err
	}
	parse := func(s *string) (*decimal.Decimal, error) {
		if s == nil {
			return nil, nil
		}
		d, err := decimal.NewFromString(*s)
		if err != nil {
			return nil, err
		}
		return &d, nil
	}
	var err error
	if to.Federal, err = parse(aux.Federal); err != nil {
		return fmt.Errorf("tax override federal: %w", err)
	}
	if to.State, err = parse(aux.State); err != nil {
		return fmt.Errorf("tax override state: %w", err)
	}
	if to.FICA, err = parse(aux.FICA); err != nil {
		return fmt.Errorf("tax override fica: %w", err)
	}
	return nil
}
