package engine

import (
	"math"
	"reflect"
	"testing"

	"github.com/owengrv/running-the-numbers/internal/scenario"
)

func investorEngine() *Engine {
	state := scenario.NewState(scenario.VariantInvestor, map[string]string{
		scenario.FieldHomePrice:     "400000",
		scenario.FieldHomeDownPct:   "20",
		scenario.FieldHomeRate:      "6.5",
		scenario.FieldHomeTermYears: "30",
		scenario.FieldHomeCAGR:      "4",
		scenario.FieldIncomePrimary: "120000",
		scenario.FieldTaxBracket:    "25",
	})
	return New(nil, state)
}

func TestCascadePropagatesHomeChange(t *testing.T) {
	e := investorEngine()
	before := e.Derived()

	e.SetInput(scenario.FieldHomePrice, "500000")
	after := e.Derived()

	if after.Home.LoanAmount != 400000 {
		t.Errorf("LoanAmount = %.2f, expected 400000", after.Home.LoanAmount)
	}
	if after.CashFlow.Housing <= before.CashFlow.Housing {
		t.Error("cash flow housing expense did not pick up the new home payment")
	}
	if after.Projection[0].HomeValue != 500000 {
		t.Errorf("projection HomeValue(0) = %.2f, expected 500000", after.Projection[0].HomeValue)
	}
	if after.Closing.CashToClose <= before.Closing.CashToClose {
		t.Error("cash to close did not pick up the new down amount")
	}
}

func TestCascadePropagatesLedgerChange(t *testing.T) {
	e := investorEngine()
	id := e.AddLoan()
	e.UpdateLoan(id, "loanAmt", "60000")
	e.UpdateLoan(id, "rate", "10")

	derived := e.Derived()
	if derived.Loans.TotalDebt != 60000 {
		t.Errorf("TotalDebt = %.2f, expected 60000", derived.Loans.TotalDebt)
	}
	// 60000 * 10% / 12 = 500 interest-only
	if math.Abs(derived.CashFlow.LedgerExpenses-500) > 0.01 {
		t.Errorf("LedgerExpenses = %.2f, expected 500", derived.CashFlow.LedgerExpenses)
	}
	if derived.Projection[0].Debt != 60000 {
		t.Errorf("projection Debt = %.2f, expected 60000", derived.Projection[0].Debt)
	}

	e.RemoveLoan(id)
	if e.Derived().Loans.Count != 0 || e.Derived().CashFlow.LedgerExpenses != 0 {
		t.Error("removal did not propagate through the cascade")
	}
}

func TestRecomputeIsIdempotent(t *testing.T) {
	e := investorEngine()
	e.AddInvestment()
	first := e.Recompute()
	second := e.Recompute()

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated recompute with unchanged state produced different derived values")
	}
}

func TestRestoreRecomputesFromSnapshotOnly(t *testing.T) {
	e := investorEngine()
	e.AddLoan()
	e.AddInvestment()
	snap := e.State().Snapshot()
	want := e.Derived()

	fresh := New(nil, scenario.NewState(scenario.VariantInvestor, nil))
	fresh.Restore(snap)

	if !reflect.DeepEqual(fresh.Derived(), want) {
		t.Error("derived outputs after restore differ from the exporting engine")
	}
}

func TestBudgetVariantCascade(t *testing.T) {
	state := scenario.NewState(scenario.VariantBudget, map[string]string{
		scenario.FieldHomePrice:      "300000",
		scenario.FieldHomeDownPct:    "10",
		scenario.FieldHomeRate:       "6",
		scenario.FieldHomeTermYears:  "30",
		scenario.FieldIncomeGross:    "96000",
		scenario.FieldTaxBracket:     "20",
		scenario.FieldContingencyPct: "10",
	})
	e := New(nil, state)

	id := e.AddExpense()
	e.UpdateExpense(id, "amount", "1200")
	e.UpdateExpense(id, "frequency", scenario.FrequencyQuarterly)

	rid := e.AddRenovation()
	e.UpdateRenovation(rid, "amount", "10000")

	derived := e.Derived()
	if math.Abs(derived.CashFlow.LedgerExpenses-400) > 1e-9 {
		t.Errorf("LedgerExpenses = %.2f, expected 400 (quarterly 1200)", derived.CashFlow.LedgerExpenses)
	}
	if math.Abs(derived.CashFlow.GrossMonthly-8000) > 1e-9 {
		t.Errorf("GrossMonthly = %.2f, expected 8000", derived.CashFlow.GrossMonthly)
	}
	if derived.Projection != nil {
		t.Error("budget variant produced a net-worth projection, expected none")
	}
	expectedOOP := derived.Closing.CashToClose + 11000
	if math.Abs(derived.OutOfPocket.Total-expectedOOP) > 1e-9 {
		t.Errorf("OutOfPocket.Total = %.2f, expected %.2f", derived.OutOfPocket.Total, expectedOOP)
	}
}

type recordingSaver struct {
	saves []scenario.Snapshot
}

func (r *recordingSaver) Save(snap scenario.Snapshot) error {
	r.saves = append(r.saves, snap)
	return nil
}

func TestMutationsPersistSnapshots(t *testing.T) {
	e := investorEngine()
	saver := &recordingSaver{}
	e.SetSaver(saver)

	e.SetInput(scenario.FieldHomePrice, "410000")
	e.AddLoan()
	e.RemoveLoan(99) // no-op removal still completes the cascade

	if len(saver.saves) != 3 {
		t.Fatalf("saver invoked %d times, expected 3", len(saver.saves))
	}
	last := saver.saves[len(saver.saves)-1]
	if last.Inputs[scenario.FieldHomePrice] != "410000" {
		t.Errorf("persisted price = %q, expected 410000", last.Inputs[scenario.FieldHomePrice])
	}
}
