// Package constants provides shared constants for the running-the-numbers application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// HomesteadTaxableShare is the share of the purchase price that remains
	// taxable when the homestead exemption applies (flat 20% exemption).
	HomesteadTaxableShare = 0.80

	// PMIDownPaymentCutoffPct is the down-payment percentage at or above
	// which private mortgage insurance no longer applies.
	PMIDownPaymentCutoffPct = 20.0

	// PrepaidInterestDayBasis is the day count used to prorate prepaid
	// interest at closing.
	PrepaidInterestDayBasis = 30.0

	// AmortizationPreviewMonths is the number of periods shown in the
	// amortization preview table. Display truncation only.
	AmortizationPreviewMonths = 24
)

// Expense frequency divisors for converting an expense amount to a monthly
// equivalent.
const (
	MonthlyDivisor   = 1.0
	QuarterlyDivisor = 3.0
	AnnualDivisor    = 12.0
)

// Expense-to-income ratio bands for the budget health indicator.
const (
	// RatioBandComfortablePct is the upper bound of the green band.
	RatioBandComfortablePct = 70.0

	// RatioBandTightPct is the upper bound of the yellow band; at or above
	// this the indicator is red.
	RatioBandTightPct = 90.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultStateFile is the default snapshot persistence file name
	DefaultStateFile = "rtn_state.json"

	// ExportFilePrefix is the prefix of date-stamped export files
	ExportFilePrefix = "running-the-numbers"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for
	// imported scenario files (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)

// Share-link constants
const (
	// StateFragmentPrefix marks a URL fragment as an encoded scenario
	// snapshot rather than a view name.
	StateFragmentPrefix = "state="
)
