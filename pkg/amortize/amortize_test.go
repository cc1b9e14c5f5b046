package amortize

import (
	"math"
	"testing"

	"github.com/owengrv/running-the-numbers/pkg/constants"
	"github.com/owengrv/running-the-numbers/pkg/mathutil"
)

func TestMonthlyPayment(t *testing.T) {
	tests := []struct {
		name          string
		principal     float64
		annualRatePct float64
		termMonths    int
		expected      float64
		tolerance     float64
	}{
		{
			name:          "Standard 30-year mortgage",
			principal:     320000,
			annualRatePct: 6.5,
			termMonths:    360,
			expected:      2022.62, // reference value from the standard formula
			tolerance:     0.05,
		},
		{
			name:          "5-year loan",
			principal:     20000,
			annualRatePct: 4.0,
			termMonths:    60,
			expected:      368.33,
			tolerance:     0.05,
		},
		{
			name:          "Zero interest divides principal evenly",
			principal:     12000,
			annualRatePct: 0,
			termMonths:    60,
			expected:      200.00,
			tolerance:     0,
		},
		{
			name:          "Zero principal",
			principal:     0,
			annualRatePct: 5.0,
			termMonths:    60,
			expected:      0,
			tolerance:     0,
		},
		{
			name:          "Non-positive term yields zero",
			principal:     10000,
			annualRatePct: 8.0,
			termMonths:    0,
			expected:      0,
			tolerance:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MonthlyPayment(tt.principal, tt.annualRatePct, tt.termMonths)
			if !mathutil.WithinTolerance(result, tt.expected, tt.tolerance) {
				t.Errorf("MonthlyPayment() = %.4f, expected %.4f", result, tt.expected)
			}
		})
	}
}

func TestSchedulePrincipalSumsToLoanAmount(t *testing.T) {
	tests := []struct {
		name          string
		principal     float64
		annualRatePct float64
		termMonths    int
	}{
		{name: "30-year mortgage", principal: 320000, annualRatePct: 6.5, termMonths: 360},
		{name: "Short high-rate loan", principal: 10000, annualRatePct: 18.0, termMonths: 36},
		{name: "Zero-rate loan", principal: 12000, annualRatePct: 0, termMonths: 48},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule := Schedule(tt.principal, tt.annualRatePct, tt.termMonths, 0)
			if len(schedule) != tt.termMonths {
				t.Fatalf("Schedule() returned %d periods, expected %d", len(schedule), tt.termMonths)
			}

			sum := 0.0
			for _, p := range schedule {
				sum += p.Principal
			}
			if math.Abs(sum-tt.principal) > 1e-6*tt.principal {
				t.Errorf("sum of principal components = %.6f, expected %.6f", sum, tt.principal)
			}

			last := schedule[len(schedule)-1]
			if last.Balance > 0.01 {
				t.Errorf("final balance = %.6f, expected ~0", last.Balance)
			}
		})
	}
}

func TestScheduleTruncation(t *testing.T) {
	schedule := Schedule(320000, 6.5, 360, 24)
	if len(schedule) != 24 {
		t.Fatalf("Schedule() returned %d periods, expected 24", len(schedule))
	}
	if schedule[0].Number != 1 || schedule[23].Number != 24 {
		t.Errorf("period numbering = [%d..%d], expected [1..24]", schedule[0].Number, schedule[23].Number)
	}
	// Truncation is display-only: the payment still amortizes the full term.
	full := MonthlyPayment(320000, 6.5, 360)
	if math.Abs(schedule[0].Payment-full) > 1e-9 {
		t.Errorf("truncated schedule payment = %.6f, expected %.6f", schedule[0].Payment, full)
	}
}

func TestTotalInterest(t *testing.T) {
	payment := MonthlyPayment(320000, 6.5, 360)
	expected := payment*360 - 320000
	if got := TotalInterest(320000, 6.5, 360); !mathutil.WithinTolerance(got, expected, constants.CurrencyTolerance) {
		t.Errorf("TotalInterest() = %.2f, expected %.2f", got, expected)
	}
	if got := TotalInterest(12000, 0, 60); got != 0 {
		t.Errorf("TotalInterest() for zero-rate loan = %.2f, expected 0", got)
	}
}

func TestBalanceAt(t *testing.T) {
	tests := []struct {
		name          string
		principal     float64
		annualRatePct float64
		termMonths    int
		afterMonths   int
		check         func(t *testing.T, got float64)
	}{
		{
			name:      "Zero months equals full principal",
			principal: 320000, annualRatePct: 6.5, termMonths: 360, afterMonths: 0,
			check: func(t *testing.T, got float64) {
				if math.Abs(got-320000) > 1e-6 {
					t.Errorf("BalanceAt(0) = %.6f, expected 320000", got)
				}
			},
		},
		{
			name:      "Full term pays down to zero",
			principal: 320000, annualRatePct: 6.5, termMonths: 360, afterMonths: 360,
			check: func(t *testing.T, got float64) {
				if math.Abs(got) > 1e-6 {
					t.Errorf("BalanceAt(term) = %.6f, expected 0", got)
				}
			},
		},
		{
			name:      "Beyond term clamps to term",
			principal: 320000, annualRatePct: 6.5, termMonths: 360, afterMonths: 480,
			check: func(t *testing.T, got float64) {
				if math.Abs(got) > 1e-6 {
					t.Errorf("BalanceAt(beyond term) = %.6f, expected 0", got)
				}
			},
		},
		{
			name:      "Zero rate degenerates to principal",
			principal: 50000, annualRatePct: 0, termMonths: 120, afterMonths: 60,
			check: func(t *testing.T, got float64) {
				if got != 50000 {
					t.Errorf("BalanceAt() with zero rate = %.6f, expected 50000", got)
				}
			},
		},
		{
			name:      "Zero principal stays zero",
			principal: 0, annualRatePct: 6.5, termMonths: 360, afterMonths: 60,
			check: func(t *testing.T, got float64) {
				if got != 0 {
					t.Errorf("BalanceAt() with zero principal = %.6f, expected 0", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, BalanceAt(tt.principal, tt.annualRatePct, tt.termMonths, tt.afterMonths))
		})
	}
}

func TestBalanceAtMatchesSchedule(t *testing.T) {
	// The closed-form balance should agree with iterating the schedule.
	schedule := Schedule(250000, 5.75, 360, 120)
	closedForm := BalanceAt(250000, 5.75, 360, 120)
	iterated := schedule[119].Balance
	if !mathutil.WithinTolerance(closedForm, iterated, constants.CurrencyTolerance) {
		t.Errorf("closed-form balance %.4f disagrees with schedule balance %.4f", closedForm, iterated)
	}
}
