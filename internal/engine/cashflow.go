package engine

import (
	"github.com/owengrv/running-the-numbers/internal/scenario"
	"github.com/owengrv/running-the-numbers/pkg/constants"
)

// IncomeMode selects how gross income is assembled.
type IncomeMode int

const (
	// IncomeModeItemized sums the per-earner and other annual incomes.
	IncomeModeItemized IncomeMode = iota

	// IncomeModeGross uses the single gross-annual figure.
	IncomeModeGross
)

// RatioBand tiers the expense-to-income ratio for the health indicator.
type RatioBand string

const (
	BandComfortable  RatioBand = "green"
	BandTight        RatioBand = "yellow"
	BandOverextended RatioBand = "red"
)

// CashFlowResult holds the monthly income and expense rollup.
type CashFlowResult struct {
	GrossMonthly   float64
	TaxesMonthly   float64
	NetMonthly     float64
	Housing        float64
	LedgerExpenses float64
	OtherExpenses  float64
	TotalExpenses  float64
	Surplus        float64
	AnnualSurplus  float64

	// Ratio is total expenses as a percentage of net income, zero when
	// there is no net income.
	Ratio float64
	Band  RatioBand
}

// ComputeCashFlow normalizes income to monthly, applies the tax bracket, and
// nets out housing, ledger servicing, and other expenses. ledgerMonthly is
// the loan-servicing total (investor variant) or the itemized expense total
// (budget variant).
func ComputeCashFlow(inputs scenario.Inputs, housingMonthly, ledgerMonthly float64, mode IncomeMode) CashFlowResult {
	var grossAnnual float64
	if mode == IncomeModeGross {
		grossAnnual = inputs.GrossAnnualIncome
	} else {
		grossAnnual = inputs.IncomePrimaryAnnual + inputs.IncomeSecondaryAnnual + inputs.IncomeOtherAnnual
	}

	grossMonthly := grossAnnual / constants.MonthsPerYear
	taxes := grossMonthly * inputs.TaxBracketPct / constants.PercentageMultiplier
	netMonthly := grossMonthly - taxes

	totalExpenses := housingMonthly + ledgerMonthly + inputs.OtherExpensesMonthly
	surplus := netMonthly - totalExpenses

	ratio := 0.0
	if netMonthly > 0 {
		ratio = totalExpenses / netMonthly * constants.PercentageMultiplier
	}

	return CashFlowResult{
		GrossMonthly:   grossMonthly,
		TaxesMonthly:   taxes,
		NetMonthly:     netMonthly,
		Housing:        housingMonthly,
		LedgerExpenses: ledgerMonthly,
		OtherExpenses:  inputs.OtherExpensesMonthly,
		TotalExpenses:  totalExpenses,
		Surplus:        surplus,
		AnnualSurplus:  surplus * constants.MonthsPerYear,
		Ratio:          ratio,
		Band:           bandForRatio(ratio),
	}
}

func bandForRatio(ratio float64) RatioBand {
	switch {
	case ratio < constants.RatioBandComfortablePct:
		return BandComfortable
	case ratio < constants.RatioBandTightPct:
		return BandTight
	default:
		return BandOverextended
	}
}
