package scenario

import (
	"github.com/owengrv/running-the-numbers/pkg/amortize"
	"github.com/owengrv/running-the-numbers/pkg/constants"
)

// Payment types for collateral loans.
const (
	PaymentInterestOnly      = "interest_only"
	PaymentPrincipalInterest = "principal_interest"
)

// Expense frequencies.
const (
	FrequencyMonthly   = "monthly"
	FrequencyQuarterly = "quarterly"
	FrequencyAnnually  = "annually"
)

// CollateralLoan models a collateralized loan position (investor variant).
// JSON keys follow the persisted snapshot shape.
type CollateralLoan struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Principal     float64 `json:"loanAmt"`
	TermMonths    int     `json:"term"`
	AnnualRatePct float64 `json:"rate"`
	PaymentType   string  `json:"paymentType"`
	MakePayments  bool    `json:"makePayments"`
}

// MonthlyPayment returns the loan's monthly servicing cost: zero when
// payments are deferred, the bare interest charge for interest-only loans,
// and the fully amortized payment otherwise.
func (l CollateralLoan) MonthlyPayment() float64 {
	if !l.MakePayments {
		return 0
	}
	if l.PaymentType == PaymentInterestOnly {
		return amortize.InterestPayment(l.Principal, l.AnnualRatePct)
	}
	return amortize.MonthlyPayment(l.Principal, l.AnnualRatePct, l.TermMonths)
}

// TotalInterestCost returns the interest paid over the loan's term at the
// current monthly payment. Deferred loans report zero.
func (l CollateralLoan) TotalInterestCost() float64 {
	return l.MonthlyPayment() * float64(l.TermMonths)
}

// InvestmentPosition models a held investment (investor variant).
type InvestmentPosition struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	CurrentValue  float64 `json:"value"`
	GrowthRatePct float64 `json:"cagr"`
}

// ExpenseItem models a recurring budget line item (budget variant).
type ExpenseItem struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	Frequency string  `json:"frequency"`
	Category  string  `json:"category"`
}

// MonthlyEquivalent converts the expense amount to a monthly figure using
// the frequency divisor. Unknown frequencies are treated as monthly.
func (e ExpenseItem) MonthlyEquivalent() float64 {
	switch e.Frequency {
	case FrequencyQuarterly:
		return e.Amount / constants.QuarterlyDivisor
	case FrequencyAnnually:
		return e.Amount / constants.AnnualDivisor
	default:
		return e.Amount / constants.MonthlyDivisor
	}
}

// RenovationItem models a one-time renovation budget line (budget variant).
type RenovationItem struct {
	ID     int     `json:"id"`
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// LoanSummary aggregates the collateral loan ledger.
type LoanSummary struct {
	Count          int
	TotalDebt      float64
	TotalMonthly   float64
	AverageRatePct float64
}

// InvestmentSummary aggregates the investment ledger.
type InvestmentSummary struct {
	TotalValue float64
	// BlendedCAGRPct is the value-weighted average growth rate, zero when
	// the ledger holds no value.
	BlendedCAGRPct float64
}

// RenovationSummary aggregates the renovation ledger including the
// contingency buffer.
type RenovationSummary struct {
	Subtotal    float64
	Contingency float64
	Total       float64
}

// State owns every mutable piece of a scenario: the raw field values, the
// four position ledgers, and their id counters. It is the single-writer
// context object passed to the calculation engine.
type State struct {
	Variant Variant

	// Fields holds the raw string value of every scalar input; the typed
	// view is derived through the ParseInputs boundary.
	Fields map[string]string

	Loans       []CollateralLoan
	Investments []InvestmentPosition
	Expenses    []ExpenseItem
	Renovations []RenovationItem

	LoanIDCounter       int
	InvestmentIDCounter int
	ExpenseIDCounter    int
	RenovationIDCounter int
}

// NewState builds a State for the given variant with the provided default
// field values (missing fields stay empty and parse to zero).
func NewState(variant Variant, defaults map[string]string) *State {
	fields := make(map[string]string, len(FieldIDs))
	for _, id := range FieldIDs {
		if v, ok := defaults[id]; ok {
			fields[id] = v
		}
	}
	return &State{Variant: variant, Fields: fields}
}

// SetField stores the raw value of one scalar input.
func (s *State) SetField(id, value string) {
	if s.Fields == nil {
		s.Fields = make(map[string]string)
	}
	s.Fields[id] = value
}

// Inputs returns the typed view of the scalar inputs.
func (s *State) Inputs() Inputs {
	return ParseInputs(s.Fields)
}

// AddLoan appends a default-valued loan position and returns its id.
func (s *State) AddLoan() int {
	s.LoanIDCounter++
	s.Loans = append(s.Loans, CollateralLoan{
		ID:            s.LoanIDCounter,
		Name:          "New Loan",
		Principal:     20000,
		TermMonths:    12,
		AnnualRatePct: 8,
		PaymentType:   PaymentInterestOnly,
		MakePayments:  true,
	})
	return s.LoanIDCounter
}

// RemoveLoan deletes the loan with the given id; unknown ids are a no-op.
func (s *State) RemoveLoan(id int) {
	for i, l := range s.Loans {
		if l.ID == id {
			s.Loans = append(s.Loans[:i], s.Loans[i+1:]...)
			return
		}
	}
}

// UpdateLoan mutates one field of the loan with the given id. Numeric fields
// parse leniently, makePayments uses the yes/no encoding, and the name is
// stored verbatim. Unknown ids and unknown fields are no-ops.
func (s *State) UpdateLoan(id int, field, value string) {
	for i := range s.Loans {
		if s.Loans[i].ID != id {
			continue
		}
		switch field {
		case "name":
			s.Loans[i].Name = value
		case "loanAmt":
			s.Loans[i].Principal = ParseAmount(value)
		case "term":
			s.Loans[i].TermMonths = int(ParseAmount(value))
		case "rate":
			s.Loans[i].AnnualRatePct = ParseAmount(value)
		case "paymentType":
			s.Loans[i].PaymentType = value
		case "makePayments":
			s.Loans[i].MakePayments = ParseFlag(value)
		}
		return
	}
}

// LoanTotals aggregates the loan ledger: position count, total outstanding
// debt, total monthly servicing, and the simple average rate.
func (s *State) LoanTotals() LoanSummary {
	summary := LoanSummary{Count: len(s.Loans)}
	rateSum := 0.0
	for _, l := range s.Loans {
		summary.TotalDebt += l.Principal
		summary.TotalMonthly += l.MonthlyPayment()
		rateSum += l.AnnualRatePct
	}
	if summary.Count > 0 {
		summary.AverageRatePct = rateSum / float64(summary.Count)
	}
	return summary
}

// AddInvestment appends a default-valued investment position and returns its id.
func (s *State) AddInvestment() int {
	s.InvestmentIDCounter++
	s.Investments = append(s.Investments, InvestmentPosition{
		ID:            s.InvestmentIDCounter,
		Name:          "New Position",
		CurrentValue:  10000,
		GrowthRatePct: 15,
	})
	return s.InvestmentIDCounter
}

// RemoveInvestment deletes the position with the given id; unknown ids are a no-op.
func (s *State) RemoveInvestment(id int) {
	for i, p := range s.Investments {
		if p.ID == id {
			s.Investments = append(s.Investments[:i], s.Investments[i+1:]...)
			return
		}
	}
}

// UpdateInvestment mutates one field of the position with the given id.
func (s *State) UpdateInvestment(id int, field, value string) {
	for i := range s.Investments {
		if s.Investments[i].ID != id {
			continue
		}
		switch field {
		case "name":
			s.Investments[i].Name = value
		case "value":
			s.Investments[i].CurrentValue = ParseAmount(value)
		case "cagr":
			s.Investments[i].GrowthRatePct = ParseAmount(value)
		}
		return
	}
}

// InvestmentTotals aggregates the investment ledger. The blended growth rate
// is value-weighted, not a simple average, and is zero for an empty or
// zero-value portfolio.
func (s *State) InvestmentTotals() InvestmentSummary {
	summary := InvestmentSummary{}
	for _, p := range s.Investments {
		summary.TotalValue += p.CurrentValue
	}
	if summary.TotalValue > 0 {
		for _, p := range s.Investments {
			summary.BlendedCAGRPct += p.GrowthRatePct * (p.CurrentValue / summary.TotalValue)
		}
	}
	return summary
}

// AddExpense appends a default-valued expense item and returns its id.
func (s *State) AddExpense() int {
	s.ExpenseIDCounter++
	s.Expenses = append(s.Expenses, ExpenseItem{
		ID:        s.ExpenseIDCounter,
		Name:      "New Expense",
		Amount:    100,
		Frequency: FrequencyMonthly,
	})
	return s.ExpenseIDCounter
}

// RemoveExpense deletes the item with the given id; unknown ids are a no-op.
func (s *State) RemoveExpense(id int) {
	for i, e := range s.Expenses {
		if e.ID == id {
			s.Expenses = append(s.Expenses[:i], s.Expenses[i+1:]...)
			return
		}
	}
}

// UpdateExpense mutates one field of the item with the given id.
func (s *State) UpdateExpense(id int, field, value string) {
	for i := range s.Expenses {
		if s.Expenses[i].ID != id {
			continue
		}
		switch field {
		case "name":
			s.Expenses[i].Name = value
		case "amount":
			s.Expenses[i].Amount = ParseAmount(value)
		case "frequency":
			s.Expenses[i].Frequency = value
		case "category":
			s.Expenses[i].Category = value
		}
		return
	}
}

// ExpenseMonthlyTotal sums the monthly equivalents of the expense ledger.
func (s *State) ExpenseMonthlyTotal() float64 {
	total := 0.0
	for _, e := range s.Expenses {
		total += e.MonthlyEquivalent()
	}
	return total
}

// AddRenovation appends a default-valued renovation item and returns its id.
func (s *State) AddRenovation() int {
	s.RenovationIDCounter++
	s.Renovations = append(s.Renovations, RenovationItem{
		ID:     s.RenovationIDCounter,
		Label:  "New Item",
		Amount: 1000,
	})
	return s.RenovationIDCounter
}

// RemoveRenovation deletes the item with the given id; unknown ids are a no-op.
func (s *State) RemoveRenovation(id int) {
	for i, r := range s.Renovations {
		if r.ID == id {
			s.Renovations = append(s.Renovations[:i], s.Renovations[i+1:]...)
			return
		}
	}
}

// UpdateRenovation mutates one field of the item with the given id.
func (s *State) UpdateRenovation(id int, field, value string) {
	for i := range s.Renovations {
		if s.Renovations[i].ID != id {
			continue
		}
		switch field {
		case "label":
			s.Renovations[i].Label = value
		case "amount":
			s.Renovations[i].Amount = ParseAmount(value)
		}
		return
	}
}

// RenovationTotals aggregates the renovation ledger, applying the contingency
// percentage buffer to the subtotal.
func (s *State) RenovationTotals(contingencyPct float64) RenovationSummary {
	summary := RenovationSummary{}
	for _, r := range s.Renovations {
		summary.Subtotal += r.Amount
	}
	summary.Contingency = summary.Subtotal * contingencyPct / constants.PercentageMultiplier
	summary.Total = summary.Subtotal + summary.Contingency
	return summary
}
