package engine

import (
	"github.com/owengrv/running-the-numbers/internal/scenario"
	"github.com/owengrv/running-the-numbers/pkg/constants"
)

// ClosingResult holds the closing cost rollup and cash to close.
type ClosingResult struct {
	OriginationFee  float64
	Appraisal       float64
	Title           float64
	Escrow          float64
	Inspection      float64
	Recording       float64
	PrepaidInterest float64
	Other           float64
	Total           float64
	CashToClose     float64
}

// ComputeClosing derives the fee rollup from the closing inputs and the
// loan sizing published by the home calculator.
func ComputeClosing(inputs scenario.Inputs, home HomeResult) ClosingResult {
	monthlyRate := inputs.RatePct / constants.PercentageMultiplier / constants.MonthsPerYear

	originationFee := home.LoanAmount * inputs.OriginationPct / constants.PercentageMultiplier
	prepaidInterest := home.LoanAmount * monthlyRate * (inputs.PrepaidDays / constants.PrepaidInterestDayBasis)

	total := originationFee + inputs.Appraisal + inputs.Title + inputs.Escrow +
		inputs.Inspection + inputs.Recording + prepaidInterest + inputs.OtherClosing

	return ClosingResult{
		OriginationFee:  originationFee,
		Appraisal:       inputs.Appraisal,
		Title:           inputs.Title,
		Escrow:          inputs.Escrow,
		Inspection:      inputs.Inspection,
		Recording:       inputs.Recording,
		PrepaidInterest: prepaidInterest,
		Other:           inputs.OtherClosing,
		Total:           total,
		CashToClose:     home.DownAmount + total,
	}
}
