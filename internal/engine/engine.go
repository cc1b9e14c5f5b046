// Package engine implements the derived-field recalculation engine: the
// fixed topological cascade that turns scenario inputs and ledger positions
// into the consolidated summary.
package engine

import (
	"github.com/owengrv/running-the-numbers/internal/scenario"
	"go.uber.org/zap"
)

// Saver persists a snapshot at the end of a recompute cascade. The store
// package provides the production implementation.
type Saver interface {
	Save(scenario.Snapshot) error
}

// Derived is the process-wide derived state, rebuilt in full on every
// mutation. It is never authoritative: persisting it is a display
// convenience, and a restore always recomputes it from inputs.
type Derived struct {
	Home        HomeResult
	Closing     ClosingResult
	Loans       scenario.LoanSummary
	Investments scenario.InvestmentSummary
	CashFlow    CashFlowResult
	Projection  []ProjectionRow
	OutOfPocket OutOfPocketResult
}

// Engine owns a scenario state and its derived values. All mutations go
// through Engine methods so the full cascade runs on every change; a
// mutator may never recompute a subset of the downstream calculators.
type Engine struct {
	logger  *zap.Logger
	state   *scenario.State
	derived Derived
	saver   Saver
}

// New constructs an engine around the given state and runs the initial
// recompute so derived values are immediately readable.
func New(logger *zap.Logger, state *scenario.State) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{logger: logger, state: state}
	e.Recompute()
	return e
}

// SetSaver installs a snapshot persister invoked at the end of every
// mutation cascade. Persistence failures are logged and swallowed; they
// never interrupt a recompute.
func (e *Engine) SetSaver(s Saver) {
	e.saver = s
}

// State exposes the underlying scenario state for read access.
func (e *Engine) State() *scenario.State {
	return e.state
}

// Derived returns the most recent fully-recomputed derived state.
func (e *Engine) Derived() Derived {
	return e.derived
}

// Recompute runs the full cascade in dependency order:
// home -> closing costs -> ledger aggregates -> cash flow -> projection.
// Each stage only reads the outputs of stages before it, so the ordering
// here is the single place the dependency graph lives.
func (e *Engine) Recompute() Derived {
	inputs := e.state.Inputs()

	home := ComputeHome(inputs)
	closing := ComputeClosing(inputs, home)
	loans := e.state.LoanTotals()
	investments := e.state.InvestmentTotals()

	var cashFlow CashFlowResult
	var projection []ProjectionRow
	var outOfPocket OutOfPocketResult
	switch e.state.Variant {
	case scenario.VariantBudget:
		cashFlow = ComputeCashFlow(inputs, home.TotalMonthly, e.state.ExpenseMonthlyTotal(), IncomeModeGross)
		renovation := e.state.RenovationTotals(inputs.ContingencyPct)
		outOfPocket = ComputeOutOfPocket(closing, renovation)
	default:
		cashFlow = ComputeCashFlow(inputs, home.TotalMonthly, loans.TotalMonthly, IncomeModeItemized)
		projection = ComputeProjection(inputs, home, loans, investments)
	}

	e.derived = Derived{
		Home:        home,
		Closing:     closing,
		Loans:       loans,
		Investments: investments,
		CashFlow:    cashFlow,
		Projection:  projection,
		OutOfPocket: outOfPocket,
	}
	return e.derived
}

// finishMutation runs the cascade and persists the resulting snapshot.
func (e *Engine) finishMutation() {
	e.Recompute()
	if e.saver == nil {
		return
	}
	if err := e.saver.Save(e.state.Snapshot()); err != nil {
		e.logger.Warn("failed to persist snapshot",
			zap.String("op", "engine.finishMutation"),
			zap.Error(err),
		)
	}
}

// SetInput stores one raw field value and runs the cascade.
func (e *Engine) SetInput(fieldID, value string) {
	e.state.SetField(fieldID, value)
	e.finishMutation()
}

// AddLoan appends a default loan position and runs the cascade.
func (e *Engine) AddLoan() int {
	id := e.state.AddLoan()
	e.finishMutation()
	return id
}

// RemoveLoan removes a loan position and runs the cascade.
func (e *Engine) RemoveLoan(id int) {
	e.state.RemoveLoan(id)
	e.finishMutation()
}

// UpdateLoan mutates one loan field and runs the cascade.
func (e *Engine) UpdateLoan(id int, field, value string) {
	e.state.UpdateLoan(id, field, value)
	e.finishMutation()
}

// AddInvestment appends a default investment position and runs the cascade.
func (e *Engine) AddInvestment() int {
	id := e.state.AddInvestment()
	e.finishMutation()
	return id
}

// RemoveInvestment removes an investment position and runs the cascade.
func (e *Engine) RemoveInvestment(id int) {
	e.state.RemoveInvestment(id)
	e.finishMutation()
}

// UpdateInvestment mutates one investment field and runs the cascade.
func (e *Engine) UpdateInvestment(id int, field, value string) {
	e.state.UpdateInvestment(id, field, value)
	e.finishMutation()
}

// AddExpense appends a default expense item and runs the cascade.
func (e *Engine) AddExpense() int {
	id := e.state.AddExpense()
	e.finishMutation()
	return id
}

// RemoveExpense removes an expense item and runs the cascade.
func (e *Engine) RemoveExpense(id int) {
	e.state.RemoveExpense(id)
	e.finishMutation()
}

// UpdateExpense mutates one expense field and runs the cascade.
func (e *Engine) UpdateExpense(id int, field, value string) {
	e.state.UpdateExpense(id, field, value)
	e.finishMutation()
}

// AddRenovation appends a default renovation item and runs the cascade.
func (e *Engine) AddRenovation() int {
	id := e.state.AddRenovation()
	e.finishMutation()
	return id
}

// RemoveRenovation removes a renovation item and runs the cascade.
func (e *Engine) RemoveRenovation(id int) {
	e.state.RemoveRenovation(id)
	e.finishMutation()
}

// UpdateRenovation mutates one renovation field and runs the cascade.
func (e *Engine) UpdateRenovation(id int, field, value string) {
	e.state.UpdateRenovation(id, field, value)
	e.finishMutation()
}

// Restore merges a snapshot into the state and runs the cascade, so derived
// values always reflect the restored inputs with no dependency on prior
// in-memory state.
func (e *Engine) Restore(snap scenario.Snapshot) {
	e.state.Restore(snap)
	e.finishMutation()
}
