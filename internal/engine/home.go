package engine

import (
	"github.com/owengrv/running-the-numbers/internal/scenario"
	"github.com/owengrv/running-the-numbers/pkg/amortize"
	"github.com/owengrv/running-the-numbers/pkg/constants"
)

// HomeResult holds the home affordability rollup.
type HomeResult struct {
	PurchasePrice     float64
	DownAmount        float64
	LoanAmount        float64
	PrincipalInterest float64
	TaxMonthly        float64
	InsuranceMonthly  float64
	PMIMonthly        float64
	HOAMonthly        float64
	TotalMonthly      float64
	TotalInterest     float64
	TotalCost         float64
	TermMonths        int

	// Schedule is the amortization preview, truncated for display.
	Schedule []amortize.Period
}

// ComputeHome derives the monthly housing payment and lifetime cost figures
// from the home inputs.
func ComputeHome(inputs scenario.Inputs) HomeResult {
	downAmount := inputs.HomePrice * inputs.DownPct / constants.PercentageMultiplier
	loanAmount := inputs.HomePrice - downAmount
	termMonths := inputs.TermYears * constants.MonthsPerYear

	pi := amortize.MonthlyPayment(loanAmount, inputs.RatePct, termMonths)

	taxableValue := inputs.HomePrice
	if inputs.Homestead {
		taxableValue = inputs.HomePrice * constants.HomesteadTaxableShare
	}
	taxMonthly := taxableValue * inputs.TaxPct / constants.PercentageMultiplier / constants.MonthsPerYear
	insuranceMonthly := inputs.InsuranceYear / constants.MonthsPerYear

	// PMI applies only below the cutoff; exactly 20% down excludes it.
	pmiMonthly := 0.0
	if inputs.DownPct < constants.PMIDownPaymentCutoffPct {
		pmiMonthly = loanAmount * inputs.PMIRatePct / constants.PercentageMultiplier / constants.MonthsPerYear
	}

	totalMonthly := pi + taxMonthly + insuranceMonthly + pmiMonthly + inputs.HOAMonthly
	totalInterest := pi*float64(termMonths) - loanAmount
	totalCost := inputs.HomePrice + totalInterest +
		taxMonthly*float64(termMonths) + insuranceMonthly*float64(termMonths)

	return HomeResult{
		PurchasePrice:     inputs.HomePrice,
		DownAmount:        downAmount,
		LoanAmount:        loanAmount,
		PrincipalInterest: pi,
		TaxMonthly:        taxMonthly,
		InsuranceMonthly:  insuranceMonthly,
		PMIMonthly:        pmiMonthly,
		HOAMonthly:        inputs.HOAMonthly,
		TotalMonthly:      totalMonthly,
		TotalInterest:     totalInterest,
		TotalCost:         totalCost,
		TermMonths:        termMonths,
		Schedule:          amortize.Schedule(loanAmount, inputs.RatePct, termMonths, constants.AmortizationPreviewMonths),
	}
}
