package calculation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nwgo/networth-projector/internal/domain"
)

// EngineState reports where a run is in its lifecycle. An engine moves
// Idle -> Iterating -> Done; a fresh Project call resets it to Iterating.
type EngineState int

const (
	StateIdle EngineState = iota
	StateIterating
	StateDone
)

func (s EngineState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateIterating:
		return "iterating"
	case StateDone:
		return "done"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// MetricsObserver receives run outcomes. pkg/metrics provides the
// Prometheus-backed implementation; the zero value of the engine reports
// nothing.
type MetricsObserver interface {
	ProjectionCompleted(years int, duration time.Duration)
	ValidationFailed()
}

// ProjectionSummary condenses a timeline for report headers and the CLI.
type ProjectionSummary struct {
	FinalNetWorth    decimal.Decimal `json:"finalNetWorth"`
	PeakNetWorth     decimal.Decimal `json:"peakNetWorth"`
	PeakYear         int             `json:"peakYear"`
	FirstDeficitYear int             `json:"firstDeficitYear,omitempty"`
}

// ProjectionResult is the full output of one run.
type ProjectionResult struct {
	PlanName string            `json:"planName"`
	Timeline domain.Timeline   `json:"timeline"`
	Summary  ProjectionSummary `json:"summary"`
}

// ProjectionEngine owns a simulation run. It is safe for concurrent use;
// each Project call works on its own cloned state, only the lifecycle
// state is shared.
type ProjectionEngine struct {
	Logger  Logger
	Metrics MetricsObserver

	mu    sync.Mutex
	state EngineState
}

func NewProjectionEngine() *ProjectionEngine {
	return &ProjectionEngine{
		Logger: &NopLogger{},
		state:  StateIdle,
	}
}

func (pe *ProjectionEngine) State() EngineState {
	pe.mu.Lock()
	defer pe.mu.Unlock()
	return pe.state
}

func (pe *ProjectionEngine) setState(s EngineState) {
	pe.mu.Lock()
	pe.state = s
	pe.mu.Unlock()
}

// Project validates the plan and runs the year loop to the plan's horizon.
// Validation failures abort before any simulation work. Cancellation is
// honored between years; a canceled run returns ctx.Err and no result.
func (pe *ProjectionEngine) Project(ctx context.Context, plan *domain.Plan) (*ProjectionResult, error) {
	start := time.Now()
	pe.setState(StateIterating)

	loans, err := pe.validate(plan)
	if err != nil {
		pe.setState(StateIdle)
		if pe.Metrics != nil {
			pe.Metrics.ValidationFailed()
		}
		return nil, err
	}

	pe.Logger.Infof("Starting projection %q: %d accounts, %d incomes, %d expenses, horizon %d years",
		plan.Name, len(plan.Accounts), len(plan.Incomes), len(plan.Expenses), plan.Horizon)

	taxCalc := NewTaxCalculator(plan.TaxParameters)
	state := yearState{
		Accounts: domain.CloneAccounts(plan.Accounts),
		Incomes:  domain.CloneIncomes(plan.Incomes),
		Expenses: domain.CloneExpenses(plan.Expenses),
	}

	timeline := make(domain.Timeline, 0, plan.Horizon)
	for y := 0; y < plan.Horizon; y++ {
		select {
		case <-ctx.Done():
			pe.setState(StateIdle)
			return nil, ctx.Err()
		default:
		}

		snapshot, next, err := pe.simulateYear(plan, state, taxCalc, loans, y)
		if err != nil {
			pe.setState(StateIdle)
			return nil, fmt.Errorf("simulating year %d: %w", plan.StartYear+y+1, err)
		}
		pe.Logger.Debugf("year %d: net worth %s", snapshot.Year, snapshot.NetWorth.StringFixed(2))
		timeline = append(timeline, snapshot)
		state = next
	}

	result := &ProjectionResult{
		PlanName: plan.Name,
		Timeline: timeline,
		Summary:  summarize(timeline),
	}

	pe.setState(StateDone)
	if pe.Metrics != nil {
		pe.Metrics.ProjectionCompleted(plan.Horizon, time.Since(start))
	}
	pe.Logger.Infof("Projection %q complete: final net worth %s", plan.Name, result.Summary.FinalNetWorth.StringFixed(2))
	return result, nil
}

// validate runs the up-front checks the year loop depends on: consistent
// tax tables, resolvable entity links, and amortizing loan terms. It
// returns the loan schedules keyed by expense ID.
func (pe *ProjectionEngine) validate(plan *domain.Plan) (map[string]*Loan, error) {
	if plan.Horizon <= 0 {
		return nil, fmt.Errorf("plan horizon must be positive, got %d", plan.Horizon)
	}
	if plan.StartYear <= 0 {
		return nil, fmt.Errorf("plan start year must be set")
	}
	if err := plan.TaxParameters.Validate(); err != nil {
		return nil, fmt.Errorf("tax parameters: %w", err)
	}
	if _, err := ResolveLinks(plan.Accounts, plan.Expenses); err != nil {
		return nil, err
	}
	for _, b := range plan.Buckets {
		if b.AccountID != "" && domain.FindAccount(plan.Accounts, b.AccountID) == nil {
			return nil, fmt.Errorf("bucket %q targets unknown account %q", b.ID, b.AccountID)
		}
	}

	loans := make(map[string]*Loan)
	for _, e := range plan.Expenses {
		if !e.Type.IsAmortized() {
			continue
		}
		loan, err := NewLoanFromExpense(e)
		if err != nil {
			return nil, fmt.Errorf("expense %q: %w", e.ID, err)
		}
		loans[e.ID] = loan
	}
	return loans, nil
}

func summarize(timeline domain.Timeline) ProjectionSummary {
	var s ProjectionSummary
	for i, snap := range timeline {
		if i == 0 || snap.NetWorth.GreaterThan(s.PeakNetWorth) {
			s.PeakNetWorth = snap.NetWorth
			s.PeakYear = snap.Year
		}
		if s.FirstDeficitYear == 0 && snap.Cashflow.UnallocatedAnnual.IsNegative() {
			s.FirstDeficitYear = snap.Year
		}
		s.FinalNetWorth = snap.NetWorth
	}
	return s
}
