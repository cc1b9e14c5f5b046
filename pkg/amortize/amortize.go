// Package amortize provides fixed-rate, fixed-term loan amortization math.
package amortize

import (
	"math"

	"github.com/owengrv/running-the-numbers/pkg/constants"
)

// Period holds the payment breakdown for a single amortization period.
type Period struct {
	Number             int
	Payment            float64
	Principal          float64
	Interest           float64
	CumulativeInterest float64
	Balance            float64
}

// MonthlyPayment calculates the constant monthly payment that fully amortizes
// principal over termMonths using the standard amortization formula. A zero
// rate degenerates to straight principal division. A non-positive term yields
// a zero payment rather than a division by zero.
func MonthlyPayment(principal, annualRatePct float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	if annualRatePct == 0 {
		return principal / float64(termMonths)
	}

	r := annualRatePct / (constants.PercentageMultiplier * constants.MonthsPerYear)
	power := math.Pow(1.00+r, float64(termMonths))
	return principal * r * power / (power - 1.00)
}

// InterestPayment calculates the interest portion of a payment against the
// remaining balance.
func InterestPayment(balance, annualRatePct float64) float64 {
	return balance * annualRatePct / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// TotalInterest returns the interest paid over the full term.
func TotalInterest(principal, annualRatePct float64, termMonths int) float64 {
	return MonthlyPayment(principal, annualRatePct, termMonths)*float64(termMonths) - principal
}

// Schedule produces the per-period payment breakdown for the first
// maxPeriods periods (the full term when maxPeriods is zero or exceeds it).
// Balances are floored at zero for display.
func Schedule(principal, annualRatePct float64, termMonths, maxPeriods int) []Period {
	if termMonths <= 0 {
		return nil
	}
	periods := termMonths
	if maxPeriods > 0 && maxPeriods < periods {
		periods = maxPeriods
	}

	payment := MonthlyPayment(principal, annualRatePct, termMonths)
	schedule := make([]Period, 0, periods)
	balance := principal
	cumulativeInterest := 0.0
	for i := 1; i <= periods; i++ {
		interest := InterestPayment(balance, annualRatePct)
		principalPart := payment - interest
		cumulativeInterest += interest
		balance -= principalPart
		schedule = append(schedule, Period{
			Number:             i,
			Payment:            payment,
			Principal:          principalPart,
			Interest:           interest,
			CumulativeInterest: cumulativeInterest,
			Balance:            math.Max(0, balance),
		})
	}
	return schedule
}

// BalanceAt returns the remaining principal after afterMonths payments using
// the closed-form amortized-balance formula. Zero-rate or zero-principal
// loans degenerate to the full principal, matching the projection contract.
func BalanceAt(principal, annualRatePct float64, termMonths, afterMonths int) float64 {
	if principal == 0 || annualRatePct == 0 || termMonths <= 0 {
		return principal
	}

	m := afterMonths
	if m > termMonths {
		m = termMonths
	}

	r := annualRatePct / (constants.PercentageMultiplier * constants.MonthsPerYear)
	powN := math.Pow(1.00+r, float64(termMonths))
	powM := math.Pow(1.00+r, float64(m))
	return principal * (powN - powM) / (powN - 1.00)
}
