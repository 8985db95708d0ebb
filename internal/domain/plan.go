package domain

// Plan is the top-level input to a projection run: the live entity
// snapshot, the run's assumptions and tax tables, and the waterfall
// configuration. It is supplied by the persistence/UI layer; the engine
// only reads it.
type Plan struct {
	Name      string `yaml:"name" json:"name"`
	StartYear int    `yaml:"start_year" json:"start_year"`
	// Horizon is the number of years to project.
	Horizon int `yaml:"horizon" json:"horizon"`

	FilingStatus FilingStatus `yaml:"filing_status" json:"filing_status"`
	// State is the state jurisdiction key for state tax lookup; empty
	// means no state tax applies.
	State string `yaml:"state,omitempty" json:"state,omitempty"`
	// ItemizeDeductions elects itemized deductions over the standard
	// deduction.
	ItemizeDeductions bool `yaml:"itemize_deductions,omitempty" json:"itemize_deductions,omitempty"`

	Accounts []Account `yaml:"accounts" json:"accounts"`
	Incomes  []Income  `yaml:"incomes" json:"incomes"`
	Expenses []Expense `yaml:"expenses" json:"expenses"`

	Assumptions   Assumptions      `yaml:"assumptions" json:"assumptions"`
	TaxParameters TaxParameters    `yaml:"tax_parameters" json:"tax_parameters"`
	Buckets       []PriorityBucket `yaml:"buckets" json:"buckets"`
	TaxOverrides  TaxOverrides     `yaml:"tax_overrides,omitempty" json:"tax_overrides,omitempty"`
}
