package scenario

// Snapshot is the serializable aggregate of all input values, position
// ledgers, and id counters. It is the unit of save, export, import, and
// share-link encoding. Pointer fields distinguish "absent" from "empty":
// restoring a partial snapshot only touches the pieces it carries.
type Snapshot struct {
	Inputs       map[string]string     `json:"inputs,omitempty"`
	Loans        *[]CollateralLoan     `json:"loans,omitempty"`
	Investments  *[]InvestmentPosition `json:"investments,omitempty"`
	Expenses     *[]ExpenseItem        `json:"expenses,omitempty"`
	Renovations  *[]RenovationItem     `json:"renovations,omitempty"`
	LoanCounter  *int                  `json:"loanIdCounter,omitempty"`
	InvCounter   *int                  `json:"invIdCounter,omitempty"`
	ExpCounter   *int                  `json:"expenseIdCounter,omitempty"`
	RenoCounter  *int                  `json:"renovationIdCounter,omitempty"`
}

// Snapshot captures the full current state. Every field of the result is
// populated, so a round trip through Restore reproduces the state exactly.
func (s *State) Snapshot() Snapshot {
	inputs := make(map[string]string, len(s.Fields))
	for _, id := range FieldIDs {
		if v, ok := s.Fields[id]; ok {
			inputs[id] = v
		}
	}

	loans := append([]CollateralLoan(nil), s.Loans...)
	investments := append([]InvestmentPosition(nil), s.Investments...)
	expenses := append([]ExpenseItem(nil), s.Expenses...)
	renovations := append([]RenovationItem(nil), s.Renovations...)
	loanCounter := s.LoanIDCounter
	invCounter := s.InvestmentIDCounter
	expCounter := s.ExpenseIDCounter
	renoCounter := s.RenovationIDCounter

	return Snapshot{
		Inputs:      inputs,
		Loans:       &loans,
		Investments: &investments,
		Expenses:    &expenses,
		Renovations: &renovations,
		LoanCounter: &loanCounter,
		InvCounter:  &invCounter,
		ExpCounter:  &expCounter,
		RenoCounter: &renoCounter,
	}
}

// legacyFieldIDs maps input keys written by older saved files and share
// links to their current ids.
var legacyFieldIDs = map[string]string{
	"cf_owen":   FieldIncomePrimary,
	"cf_brenna": FieldIncomeSecondary,
}

// Restore merges a snapshot into the state. Inputs merge per field (missing
// fields keep their current value); ledgers and counters are replaced only
// when present in the snapshot. Legacy income keys are accepted under their
// current ids; other unknown input keys are dropped.
func (s *State) Restore(snap Snapshot) {
	if s.Fields == nil {
		s.Fields = make(map[string]string)
	}
	if snap.Inputs != nil {
		for legacy, id := range legacyFieldIDs {
			if v, ok := snap.Inputs[legacy]; ok {
				s.Fields[id] = v
			}
		}
		// Current ids win over their legacy spellings.
		for _, id := range FieldIDs {
			if v, ok := snap.Inputs[id]; ok {
				s.Fields[id] = v
			}
		}
	}

	if snap.Loans != nil {
		s.Loans = append([]CollateralLoan(nil), (*snap.Loans)...)
	}
	if snap.Investments != nil {
		s.Investments = append([]InvestmentPosition(nil), (*snap.Investments)...)
	}
	if snap.Expenses != nil {
		s.Expenses = append([]ExpenseItem(nil), (*snap.Expenses)...)
	}
	if snap.Renovations != nil {
		s.Renovations = append([]RenovationItem(nil), (*snap.Renovations)...)
	}
	if snap.LoanCounter != nil {
		s.LoanIDCounter = *snap.LoanCounter
	}
	if snap.InvCounter != nil {
		s.InvestmentIDCounter = *snap.InvCounter
	}
	if snap.ExpCounter != nil {
		s.ExpenseIDCounter = *snap.ExpCounter
	}
	if snap.RenoCounter != nil {
		s.RenovationIDCounter = *snap.RenoCounter
	}
}
