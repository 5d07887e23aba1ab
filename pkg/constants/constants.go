// Package constants provides shared constants for the crane-valuation engine.
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
)

// Utilization constants
const (
	// ExpectedHoursPerYear is the assumed annual operating hours for a crane
	// under normal single-shift utilization.
	ExpectedHoursPerYear = 800.0

	// DefaultCapacityTons substitutes for a missing or non-positive capacity.
	DefaultCapacityTons = 100.0
)

// Value ratios applied against fair market value.
const (
	ForcedLiquidationRatio    = 0.45
	OrderlyLiquidationRatio   = 0.65
	WholesaleRatio            = 0.75
	RetailRatio               = 1.15
	InsuranceReplacementRatio = 1.25
)

// Financing defaults used when the application config leaves terms unset.
const (
	// DefaultFinancingTermMonths is the term for the illustrative financed
	// purchase scenario.
	DefaultFinancingTermMonths = 60

	// DefaultFinancingAPR is the nominal annual interest rate (percent) for
	// the financed scenario.
	DefaultFinancingAPR = 7.5

	// DefaultDownPaymentFraction is the fraction of the purchase price paid
	// up front in the financed scenario.
	DefaultDownPaymentFraction = 0.20

	// DefaultRentalUtilization is the fraction of the year a rented crane is
	// assumed to be on hire when projecting rental income.
	DefaultRentalUtilization = 0.65
)

// Market data constants
const (
	// DefaultMarketFetchTimeoutSeconds bounds the optional live market data
	// fetch; the valuation proceeds without live data once it elapses.
	DefaultMarketFetchTimeoutSeconds = 3

	// MarketAdjustmentClamp caps the live market intelligence adjustment in
	// either direction.
	MarketAdjustmentClamp = 0.10
)

// Scoring constants
const (
	// DefaultDealScore is returned when no asking price is supplied.
	DefaultDealScore = 85

	// UnknownHoursFactor is the wear-score hours factor applied when
	// operating hours are unknown.
	UnknownHoursFactor = 80.0
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

	// DefaultSpecFile is the default crane specification file name
	DefaultSpecFile = "spec.yaml"
)
