package engine

import (
	"math"
	"testing"

	"github.com/owengrv/running-the-numbers/internal/scenario"
)

func TestComputeClosing(t *testing.T) {
	inputs := scenario.Inputs{
		HomePrice:      400000,
		DownPct:        20,
		RatePct:        6.0,
		TermYears:      30,
		OriginationPct: 1,
		Appraisal:      600,
		Title:          1200,
		Escrow:         800,
		Inspection:     450,
		Recording:      150,
		PrepaidDays:    15,
		OtherClosing:   300,
	}
	home := ComputeHome(inputs)
	closing := ComputeClosing(inputs, home)

	if math.Abs(closing.OriginationFee-3200) > 1e-9 {
		t.Errorf("OriginationFee = %.2f, expected 3200", closing.OriginationFee)
	}

	// 320000 * 0.005 * (15/30) = 800
	if math.Abs(closing.PrepaidInterest-800) > 1e-9 {
		t.Errorf("PrepaidInterest = %.2f, expected 800", closing.PrepaidInterest)
	}

	expectedTotal := 3200 + 600 + 1200 + 800 + 450 + 150 + 800.0 + 300
	if math.Abs(closing.Total-expectedTotal) > 1e-9 {
		t.Errorf("Total = %.2f, expected %.2f", closing.Total, expectedTotal)
	}
	if math.Abs(closing.CashToClose-(80000+expectedTotal)) > 1e-9 {
		t.Errorf("CashToClose = %.2f, expected %.2f", closing.CashToClose, 80000+expectedTotal)
	}
}

func TestComputeClosingZeroLoan(t *testing.T) {
	inputs := scenario.Inputs{TermYears: 30, Appraisal: 600}
	closing := ComputeClosing(inputs, ComputeHome(inputs))

	if closing.OriginationFee != 0 || closing.PrepaidInterest != 0 {
		t.Errorf("fees on zero loan = %+v, expected zero origination/prepaid", closing)
	}
	if closing.Total != 600 {
		t.Errorf("Total = %.2f, expected flat fees only (600)", closing.Total)
	}
}
