package engine

import (
	"math"

	"github.com/owengrv/running-the-numbers/internal/scenario"
	"github.com/owengrv/running-the-numbers/pkg/amortize"
	"github.com/owengrv/running-the-numbers/pkg/constants"
)

// ProjectionHorizonsYears are the fixed horizons of the net-worth table.
var ProjectionHorizonsYears = []int{0, 5, 10, 15, 20}

// ProjectionRow is one horizon of the investor-variant net-worth projection.
type ProjectionRow struct {
	Years           int
	HomeValue       float64
	MortgageBalance float64
	Equity          float64
	Investments     float64
	Debt            float64
	NetWorth        float64

	// Delta is the change versus the previous horizon; unset on the first row.
	Delta    float64
	HasDelta bool
}

// OutOfPocketResult is the budget-variant summary: the cash due at purchase
// plus the renovation budget.
type OutOfPocketResult struct {
	CashToClose float64
	Renovation  scenario.RenovationSummary
	Total       float64
}

// ComputeProjection builds the multi-year net-worth table from home equity,
// investment growth, and outstanding non-mortgage debt. Debt is held
// constant across horizons rather than amortized down.
func ComputeProjection(inputs scenario.Inputs, home HomeResult, loans scenario.LoanSummary, investments scenario.InvestmentSummary) []ProjectionRow {
	blendedRate := investments.BlendedCAGRPct / constants.PercentageMultiplier
	monthlyRate := blendedRate / constants.MonthsPerYear

	rows := make([]ProjectionRow, 0, len(ProjectionHorizonsYears))
	var previous float64
	for i, years := range ProjectionHorizonsYears {
		homeValue := 0.0
		if home.PurchasePrice > 0 {
			homeValue = home.PurchasePrice * math.Pow(1+inputs.HomeCAGRPct/constants.PercentageMultiplier, float64(years))
		}
		balance := amortize.BalanceAt(home.LoanAmount, inputs.RatePct, home.TermMonths, years*constants.MonthsPerYear)
		equity := homeValue - balance

		months := years * constants.MonthsPerYear
		portfolio := investments.TotalValue * math.Pow(1+blendedRate, float64(years))
		contributions := 0.0
		if monthlyRate > 0 {
			contributions = inputs.MonthlyContribution * (math.Pow(1+monthlyRate, float64(months)) - 1) / monthlyRate
		} else {
			contributions = inputs.MonthlyContribution * float64(months)
		}

		netWorth := equity + portfolio + contributions - loans.TotalDebt
		row := ProjectionRow{
			Years:           years,
			HomeValue:       homeValue,
			MortgageBalance: balance,
			Equity:          equity,
			Investments:     portfolio + contributions,
			Debt:            loans.TotalDebt,
			NetWorth:        netWorth,
		}
		if i > 0 {
			row.Delta = netWorth - previous
			row.HasDelta = true
		}
		rows = append(rows, row)
		previous = netWorth
	}
	return rows
}

// ComputeOutOfPocket derives the budget-variant out-of-pocket total.
func ComputeOutOfPocket(closing ClosingResult, renovation scenario.RenovationSummary) OutOfPocketResult {
	return OutOfPocketResult{
		CashToClose: closing.CashToClose,
		Renovation:  renovation,
		Total:       closing.CashToClose + renovation.Total,
	}
}
