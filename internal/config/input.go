package config

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/nwgo/networth-projector/internal/calculation"
	"github.com/nwgo/networth-projector/internal/domain"
)

// InputParser loads and validates plan files. All structural problems are
// reported up front, before the engine runs a single year.
type InputParser struct {
	logger calculation.Logger
}

func NewInputParser() *InputParser {
	return &InputParser{logger: &calculation.NopLogger{}}
}

func (p *InputParser) SetLogger(l calculation.Logger) {
	if l != nil {
		p.logger = l
	}
}

// LoadFromFile reads, parses, and validates a YAML plan.
func (p *InputParser) LoadFromFile(path string) (*domain.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan file: %w", err)
	}
	return p.Parse(data)
}

// Parse unmarshals a YAML plan and validates it.
func (p *InputParser) Parse(data []byte) (*domain.Plan, error) {
	var plan domain.Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("parsing plan: %w", err)
	}
	if err := p.ValidatePlan(&plan); err != nil {
		return nil, err
	}
	p.logger.Debugf("loaded plan %q: %d accounts, %d incomes, %d expenses",
		plan.Name, len(plan.Accounts), len(plan.Incomes), len(plan.Expenses))
	return &plan, nil
}

// ValidatePlan checks structural consistency: known enum values, unique
// IDs, coherent dates, non-negative amounts, resolvable links, and loan
// terms that actually amortize.
func (p *InputParser) ValidatePlan(plan *domain.Plan) error {
	if plan.Name == "" {
		return fmt.Errorf("plan name is required")
	}
	if plan.StartYear < 1900 || plan.StartYear > 2400 {
		return fmt.Errorf("start_year %d out of range", plan.StartYear)
	}
	if plan.Horizon < 1 || plan.Horizon > 100 {
		return fmt.Errorf("horizon must be between 1 and 100 years, got %d", plan.Horizon)
	}
	switch plan.FilingStatus {
	case domain.FilingSingle, domain.FilingMarriedJoint:
	default:
		return fmt.Errorf("unknown filing status %q", plan.FilingStatus)
	}
	if err := plan.TaxParameters.Validate(); err != nil {
		return fmt.Errorf("tax parameters: %w", err)
	}
	if err := p.validateAssumptions(plan.Assumptions); err != nil {
		return err
	}

	ids := make(map[string]string)
	claim := func(id, kind string) error {
		if id == "" {
			return fmt.Errorf("%s entity is missing an id", kind)
		}
		if prev, ok := ids[id]; ok {
			return fmt.Errorf("duplicate id %q (%s and %s)", id, prev, kind)
		}
		ids[id] = kind
		return nil
	}

	for i := range plan.Accounts {
		a := &plan.Accounts[i]
		if err := claim(a.ID, "account"); err != nil {
			return err
		}
		if err := p.validateAccount(a); err != nil {
			return fmt.Errorf("account %q: %w", a.ID, err)
		}
	}
	for i := range plan.Incomes {
		in := &plan.Incomes[i]
		if err := claim(in.ID, "income"); err != nil {
			return err
		}
		if err := p.validateIncome(in, plan.Accounts); err != nil {
			return fmt.Errorf("income %q: %w", in.ID, err)
		}
	}
	for i := range plan.Expenses {
		e := &plan.Expenses[i]
		if err := claim(e.ID, "expense"); err != nil {
			return err
		}
		if err := p.validateExpense(e); err != nil {
			return fmt.Errorf("expense %q: %w", e.ID, err)
		}
	}

	seenRemainder := false
	for i := range plan.Buckets {
		b := &plan.Buckets[i]
		if err := claim(b.ID, "bucket"); err != nil {
			return err
		}
		switch b.CapType {
		case domain.CapFixed, domain.CapMax, domain.CapMultipleOfExpenses:
			if b.CapValue.LessThanOrEqual(decimal.Zero) {
				return fmt.Errorf("bucket %q: cap value must be positive", b.ID)
			}
		case domain.CapRemainder:
			if seenRemainder {
				return fmt.Errorf("bucket %q: only one remainder bucket is allowed", b.ID)
			}
			seenRemainder = true
		default:
			return fmt.Errorf("bucket %q: unknown cap type %q", b.ID, b.CapType)
		}
		if b.AccountID == "" {
			return fmt.Errorf("bucket %q: account_id is required", b.ID)
		}
		if domain.FindAccount(plan.Accounts, b.AccountID) == nil {
			return fmt.Errorf("bucket %q: unknown account %q", b.ID, b.AccountID)
		}
	}

	if _, err := calculation.ResolveLinks(plan.Accounts, plan.Expenses); err != nil {
		return err
	}
	for _, e := range plan.Expenses {
		if !e.Type.IsAmortized() {
			continue
		}
		if _, err := calculation.NewLoanFromExpense(e); err != nil {
			return fmt.Errorf("expense %q: %w", e.ID, err)
		}
	}
	return nil
}

func (p *InputParser) validateAssumptions(a domain.Assumptions) error {
	rates := map[string]decimal.Decimal{
		"inflation_general":    a.InflationGeneral,
		"inflation_healthcare": a.InflationHealthcare,
		"inflation_rent":       a.InflationRent,
		"housing_appreciation": a.HousingAppreciation,
		"salary_growth":        a.SalaryGrowth,
	}
	for name, rate := range rates {
		if rate.LessThan(decimal.NewFromInt(-100)) || rate.GreaterThan(decimal.NewFromInt(100)) {
			return fmt.Errorf("assumption %s: rate %s%% out of range", name, rate)
		}
	}
	if a.WithdrawalRate.IsNegative() {
		return fmt.Errorf("assumption withdrawal_rate must not be negative")
	}
	if a.Contribution401kLimit.IsNegative() {
		return fmt.Errorf("assumption contribution_401k_limit must not be negative")
	}
	return nil
}

func (p *InputParser) validateAccount(a *domain.Account) error {
	switch a.Type {
	case domain.AccountSaved, domain.AccountInvested, domain.AccountProperty, domain.AccountDebt:
	default:
		return fmt.Errorf("unknown account type %q", a.Type)
	}
	if a.Amount.IsNegative() {
		return fmt.Errorf("amount must not be negative")
	}
	switch a.Type {
	case domain.AccountInvested:
		if a.NonVestedAmount.IsNegative() || a.NonVestedAmount.GreaterThan(a.Amount) {
			return fmt.Errorf("non-vested amount must be between 0 and the account amount")
		}
		switch a.TaxTreatment {
		case "", domain.TaxTreatmentTaxable, domain.TaxTreatmentTraditional, domain.TaxTreatmentRoth:
		default:
			return fmt.Errorf("unknown tax treatment %q", a.TaxTreatment)
		}
	case domain.AccountProperty:
		switch a.Ownership {
		case "", domain.OwnershipOwned, domain.OwnershipFinanced:
		default:
			return fmt.Errorf("unknown ownership %q", a.Ownership)
		}
		if a.Ownership == domain.OwnershipFinanced && a.LinkedExpenseID == "" {
			return fmt.Errorf("financed property must link a mortgage expense")
		}
	}
	return nil
}

func (p *InputParser) validateIncome(in *domain.Income, accounts []domain.Account) error {
	switch in.Type {
	case domain.IncomeWork, domain.IncomeSocialSecurity, domain.IncomePassive, domain.IncomeWindfall:
	default:
		return fmt.Errorf("unknown income type %q", in.Type)
	}
	switch in.Frequency {
	case domain.FrequencyWeekly, domain.FrequencyMonthly, domain.FrequencyAnnually:
	default:
		return fmt.Errorf("unknown frequency %q", in.Frequency)
	}
	if in.Amount.IsNegative() {
		return fmt.Errorf("amount must not be negative")
	}
	if !in.StartDate.IsZero() && !in.EndDate.IsZero() && in.EndDate.Before(in.StartDate) {
		return fmt.Errorf("end date precedes start date")
	}
	if in.Type != domain.IncomeWork {
		return nil
	}
	switch in.ContributionGrowth {
	case "", domain.ContributionFixed, domain.ContributionGrowWithSalary, domain.ContributionTrackAnnualMax:
	default:
		return fmt.Errorf("unknown contribution growth strategy %q", in.ContributionGrowth)
	}
	for name, v := range map[string]decimal.Decimal{
		"contribution_401k": in.Contribution401k,
		"contribution_roth": in.ContributionRoth,
		"insurance_premium": in.InsurancePremium,
		"employer_match":    in.EmployerMatch,
	} {
		if v.IsNegative() {
			return fmt.Errorf("%s must not be negative", name)
		}
	}
	if in.MatchAccountID != "" {
		target := domain.FindAccount(accounts, in.MatchAccountID)
		if target == nil {
			return fmt.Errorf("unknown match account %q", in.MatchAccountID)
		}
		if target.Type != domain.AccountInvested && target.Type != domain.AccountSaved {
			return fmt.Errorf("match account %q must be a saved or invested account", in.MatchAccountID)
		}
	} else if in.Contribution401k.IsPositive() || in.ContributionRoth.IsPositive() || in.EmployerMatch.IsPositive() {
		return fmt.Errorf("retirement contributions require a match_account_id")
	}
	return nil
}

func (p *InputParser) validateExpense(e *domain.Expense) error {
	switch e.Type {
	case domain.ExpenseRent, domain.ExpenseMortgage, domain.ExpenseLoan,
		domain.ExpenseDependent, domain.ExpenseHealthcare, domain.ExpenseVacation,
		domain.ExpenseEmergency, domain.ExpenseTransport, domain.ExpenseFood,
		domain.ExpenseOther:
	default:
		return fmt.Errorf("unknown expense type %q", e.Type)
	}
	switch e.Frequency {
	case domain.FrequencyWeekly, domain.FrequencyMonthly, domain.FrequencyAnnually:
	default:
		return fmt.Errorf("unknown frequency %q", e.Frequency)
	}
	if e.Amount.IsNegative() {
		return fmt.Errorf("amount must not be negative")
	}
	if !e.StartDate.IsZero() && !e.EndDate.IsZero() && e.EndDate.Before(e.StartDate) {
		return fmt.Errorf("end date precedes start date")
	}
	if e.Escrow != nil && e.Type != domain.ExpenseMortgage {
		return fmt.Errorf("escrow terms only apply to mortgages")
	}
	return nil
}

// CreateExamplePlan returns a fully-populated plan suitable as a starting
// template. It exercises every entity variant the engine understands.
func CreateExamplePlan() *domain.Plan {
	d := decimal.NewFromInt
	f := decimal.NewFromFloat
	year := time.Now().Year()

	return &domain.Plan{
		Name:         "Example Household Plan",
		StartYear:    year,
		Horizon:      30,
		FilingStatus: domain.FilingMarriedJoint,
		State:        "CO",
		Accounts: []domain.Account{
			{
				ID:     "checking",
				Name:   "Household Checking",
				Type:   domain.AccountSaved,
				Amount: d(12000),
				APR:    f(0.5),
			},
			{
				ID:                   "brokerage",
				Name:                 "Taxable Brokerage",
				Type:                 domain.AccountInvested,
				Amount:               d(85000),
				TaxTreatment:         domain.TaxTreatmentTaxable,
				ExpenseRatio:         f(0.04),
				ContributionEligible: true,
			},
			{
				ID:                   "retirement-401k",
				Name:                 "Employer 401(k)",
				Type:                 domain.AccountInvested,
				Amount:               d(240000),
				NonVestedAmount:      d(8000),
				VestingRatePerYear:   d(25),
				TaxTreatment:         domain.TaxTreatmentTraditional,
				ExpenseRatio:         f(0.03),
				ContributionEligible: true,
			},
			{
				ID:              "house",
				Name:            "Primary Residence",
				Type:            domain.AccountProperty,
				Amount:          d(520000),
				Ownership:       domain.OwnershipFinanced,
				LoanAmount:      d(390000),
				LinkedExpenseID: "mortgage",
			},
			{
				ID:              "car-loan-balance",
				Name:            "Car Loan",
				Type:            domain.AccountDebt,
				Amount:          d(18000),
				LinkedExpenseID: "car-loan",
			},
		},
		Incomes: []domain.Income{
			{
				ID:                 "salary",
				Name:               "Primary Salary",
				Type:               domain.IncomeWork,
				Amount:             d(9500),
				Frequency:          domain.FrequencyMonthly,
				Earned:             true,
				Contribution401k:   d(23000),
				ContributionRoth:   d(4000),
				InsurancePremium:   d(5400),
				EmployerMatch:      d(5700),
				MatchAccountID:     "retirement-401k",
				ContributionGrowth: domain.ContributionTrackAnnualMax,
			},
			{
				ID:        "rental",
				Name:      "Rental Income",
				Type:      domain.IncomePassive,
				Amount:    d(1400),
				Frequency: domain.FrequencyMonthly,
			},
			{
				ID:        "social-security",
				Name:      "Social Security",
				Type:      domain.IncomeSocialSecurity,
				Amount:    d(2800),
				Frequency: domain.FrequencyMonthly,
				StartDate: time.Date(year+25, time.January, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		Expenses: []domain.Expense{
			{
				ID:                "mortgage",
				Name:              "Mortgage",
				Type:              domain.ExpenseMortgage,
				Frequency:         domain.FrequencyMonthly,
				APR:               f(5.25),
				OriginalPrincipal: d(400000),
				TermMonths:        360,
				StartDate:         time.Date(year-2, time.June, 1, 0, 0, 0, 0, time.UTC),
				LinkedAccountID:   "house",
				TaxDeductible:     true,
				Escrow: &domain.EscrowTerms{
					PropertyTaxRate:      f(0.55),
					PropertyTaxDeduction: d(0),
					InsuranceRate:        f(0.35),
					MaintenanceRate:      f(1.0),
					HOAMonthly:           d(45),
					UtilitiesMonthly:     d(280),
				},
			},
			{
				ID:                "car-loan",
				Name:              "Car Loan",
				Type:              domain.ExpenseLoan,
				Frequency:         domain.FrequencyMonthly,
				APR:               f(6.9),
				OriginalPrincipal: d(24000),
				TermMonths:        60,
				StartDate:         time.Date(year-1, time.March, 1, 0, 0, 0, 0, time.UTC),
				LinkedAccountID:   "car-loan-balance",
			},
			{
				ID:        "groceries",
				Name:      "Groceries",
				Type:      domain.ExpenseFood,
				Amount:    d(900),
				Frequency: domain.FrequencyMonthly,
			},
			{
				ID:        "health-insurance-gap",
				Name:      "Out-of-pocket Healthcare",
				Type:      domain.ExpenseHealthcare,
				Amount:    d(250),
				Frequency: domain.FrequencyMonthly,
			},
			{
				ID:        "vacation",
				Name:      "Annual Vacation",
				Type:      domain.ExpenseVacation,
				Amount:    d(6000),
				Frequency: domain.FrequencyAnnually,
			},
		},
		Assumptions: domain.Assumptions{
			InflationGeneral:      f(2.5),
			InflationHealthcare:   f(5.0),
			InflationRent:         f(3.5),
			HousingAppreciation:   f(3.0),
			SalaryGrowth:          f(3.0),
			InvestmentReturn:      f(6.5),
			WithdrawalStrategy:    "fixed_percent",
			WithdrawalRate:        f(4.0),
			CurrentAge:            40,
			RetirementAge:         65,
			LifeExpectancy:        92,
			Contribution401kLimit: d(23000),
		},
		Buckets: []domain.PriorityBucket{
			{ID: "emergency-fund", Name: "Emergency Fund", AccountID: "checking", CapType: domain.CapMultipleOfExpenses, CapValue: d(6)},
			{ID: "brokerage-max", Name: "Brokerage", AccountID: "brokerage", CapType: domain.CapMax, CapValue: d(24000)},
			{ID: "sweep", Name: "Sweep", AccountID: "brokerage", CapType: domain.CapRemainder},
		},
		TaxParameters: ExampleTaxParameters(year),
	}
}

// ExampleTaxParameters returns a plausible federal and Colorado table set
// for the given year. Values approximate published married-joint brackets.
func ExampleTaxParameters(year int) domain.TaxParameters {
	d := decimal.NewFromInt
	f := decimal.NewFromFloat
	return domain.TaxParameters{
		Tables: []domain.TaxTable{
			{
				Year:         year,
				FilingStatus: domain.FilingMarriedJoint,
				Jurisdiction: domain.JurisdictionFederal,
				Brackets: []domain.TaxBracket{
					{Threshold: d(0), Rate: f(0.10)},
					{Threshold: d(23200), Rate: f(0.12)},
					{Threshold: d(94300), Rate: f(0.22)},
					{Threshold: d(201050), Rate: f(0.24)},
					{Threshold: d(383900), Rate: f(0.32)},
					{Threshold: d(487450), Rate: f(0.35)},
					{Threshold: d(731200), Rate: f(0.37)},
				},
				StandardDeduction: d(29200),
				SSWageBase:        d(168600),
				SSRate:            f(0.062),
				MedicareRate:      f(0.0145),
			},
			{
				Year:         year,
				FilingStatus: domain.FilingMarriedJoint,
				Jurisdiction: "CO",
				Brackets: []domain.TaxBracket{
					{Threshold: d(0), Rate: f(0.044)},
				},
			},
		},
	}
}

// SavePlan writes a plan back out as YAML, for the example generator.
func SavePlan(plan *domain.Plan, path string) error {
	data, err := yaml.Marshal(plan)
	if err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing plan file: %w", err)
	}
	return nil
}
