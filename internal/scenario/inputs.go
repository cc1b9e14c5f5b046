// Package scenario defines the data model for a what-if scenario: the typed
// input fields, the dynamic position ledgers, and the serializable snapshot.
package scenario

import (
	"strconv"
	"strings"
)

// Variant selects which feature modules are active. The shared home, closing
// cost, and cash flow logic is identical across variants.
type Variant string

const (
	// VariantInvestor models collateral loans and investment positions.
	VariantInvestor Variant = "investor"

	// VariantBudget models itemized expenses and a renovation budget.
	VariantBudget Variant = "budget"
)

// Field identifiers for all scalar inputs. These double as the keys of the
// persisted snapshot's inputs map, so renaming one is a breaking change to
// stored and shared scenarios.
const (
	FieldHomePrice       = "h_price"
	FieldHomeDownPct     = "h_down"
	FieldHomeRate        = "h_rate"
	FieldHomeTermYears   = "h_term"
	FieldHomeTaxPct      = "h_tax"
	FieldHomeInsurance   = "h_insurance"
	FieldHomeHOA         = "h_hoa"
	FieldHomePMIRate     = "h_pmi"
	FieldHomeCAGR        = "h_cagr"
	FieldHomeHomestead   = "h_homestead"
	FieldCloseOrigPct    = "cc_origination"
	FieldCloseAppraisal  = "cc_appraisal"
	FieldCloseTitle      = "cc_title"
	FieldCloseEscrow     = "cc_escrow"
	FieldCloseInspection = "cc_inspection"
	FieldCloseRecording  = "cc_recording"
	FieldClosePrepaid    = "cc_prepaid_days"
	FieldCloseOther      = "cc_other"
	FieldIncomePrimary   = "cf_income_primary"
	FieldIncomeSecondary = "cf_income_secondary"
	FieldIncomeOther     = "cf_other"
	FieldIncomeGross     = "cf_gross_annual"
	FieldTaxBracket      = "cf_tax"
	FieldOtherExpenses   = "cf_expenses_input"
	FieldInvContribution = "inv_monthly"
	FieldContingencyPct  = "rn_contingency"
)

// FieldIDs lists every persisted scalar field in snapshot order.
var FieldIDs = []string{
	FieldHomePrice, FieldHomeDownPct, FieldHomeRate, FieldHomeTermYears,
	FieldHomeTaxPct, FieldHomeInsurance, FieldHomeHOA, FieldHomePMIRate,
	FieldHomeCAGR, FieldHomeHomestead,
	FieldCloseOrigPct, FieldCloseAppraisal, FieldCloseTitle, FieldCloseEscrow,
	FieldCloseInspection, FieldCloseRecording, FieldClosePrepaid, FieldCloseOther,
	FieldIncomePrimary, FieldIncomeSecondary, FieldIncomeOther, FieldIncomeGross,
	FieldTaxBracket, FieldOtherExpenses, FieldInvContribution, FieldContingencyPct,
}

// Inputs is the typed view of the scalar input fields. Values originate as
// free text; the ParseAmount/ParseFlag boundary is the only place leniency
// lives, so every calculator downstream sees plain numbers.
type Inputs struct {
	HomePrice     float64
	DownPct       float64
	RatePct       float64
	TermYears     int
	TaxPct        float64
	InsuranceYear float64
	HOAMonthly    float64
	PMIRatePct    float64
	HomeCAGRPct   float64
	Homestead     bool

	OriginationPct float64
	Appraisal      float64
	Title          float64
	Escrow         float64
	Inspection     float64
	Recording      float64
	PrepaidDays    float64
	OtherClosing   float64

	IncomePrimaryAnnual   float64
	IncomeSecondaryAnnual float64
	IncomeOtherAnnual     float64
	GrossAnnualIncome     float64
	TaxBracketPct         float64
	OtherExpensesMonthly  float64

	MonthlyContribution float64
	ContingencyPct      float64
}

// ParseAmount leniently parses a numeric field; anything that is not a number
// is treated as zero. Negative and nonsensical values propagate arithmetically
// rather than being rejected.
func ParseAmount(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseFlag parses the two-valued yes/no string encoding used by flag-style
// fields. Anything other than "yes" is false.
func ParseFlag(raw string) bool {
	return strings.TrimSpace(raw) == "yes"
}

// FormatFlag is the inverse of ParseFlag.
func FormatFlag(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// ParseInputs converts the raw field map into typed Inputs. Missing fields
// parse as zero; the home term falls back to 30 years when absent or
// unparseable, matching the form's default.
func ParseInputs(raw map[string]string) Inputs {
	term := int(ParseAmount(raw[FieldHomeTermYears]))
	if term == 0 {
		term = 30
	}

	return Inputs{
		HomePrice:     ParseAmount(raw[FieldHomePrice]),
		DownPct:       ParseAmount(raw[FieldHomeDownPct]),
		RatePct:       ParseAmount(raw[FieldHomeRate]),
		TermYears:     term,
		TaxPct:        ParseAmount(raw[FieldHomeTaxPct]),
		InsuranceYear: ParseAmount(raw[FieldHomeInsurance]),
		HOAMonthly:    ParseAmount(raw[FieldHomeHOA]),
		PMIRatePct:    ParseAmount(raw[FieldHomePMIRate]),
		HomeCAGRPct:   ParseAmount(raw[FieldHomeCAGR]),
		Homestead:     ParseFlag(raw[FieldHomeHomestead]),

		OriginationPct: ParseAmount(raw[FieldCloseOrigPct]),
		Appraisal:      ParseAmount(raw[FieldCloseAppraisal]),
		Title:          ParseAmount(raw[FieldCloseTitle]),
		Escrow:         ParseAmount(raw[FieldCloseEscrow]),
		Inspection:     ParseAmount(raw[FieldCloseInspection]),
		Recording:      ParseAmount(raw[FieldCloseRecording]),
		PrepaidDays:    ParseAmount(raw[FieldClosePrepaid]),
		OtherClosing:   ParseAmount(raw[FieldCloseOther]),

		IncomePrimaryAnnual:   ParseAmount(raw[FieldIncomePrimary]),
		IncomeSecondaryAnnual: ParseAmount(raw[FieldIncomeSecondary]),
		IncomeOtherAnnual:     ParseAmount(raw[FieldIncomeOther]),
		GrossAnnualIncome:     ParseAmount(raw[FieldIncomeGross]),
		TaxBracketPct:         ParseAmount(raw[FieldTaxBracket]),
		OtherExpensesMonthly:  ParseAmount(raw[FieldOtherExpenses]),

		MonthlyContribution: ParseAmount(raw[FieldInvContribution]),
		ContingencyPct:      ParseAmount(raw[FieldContingencyPct]),
	}
}
