// Package crane defines the data structures shared across the valuation
// pipeline: the input specification, reference data records, and the
// assembled valuation result.
package crane

// CraneSpecification describes the subject crane being valued. It is
// constructed by the caller, passed by value, and never mutated by the
// pipeline. Zero values on optional fields mean "unknown", not "zero".
type CraneSpecification struct {
	Manufacturer     string
	Model            string
	Year             int
	CapacityTons     float64
	Hours            int
	ConditionScore   *float64 // 0..1, nil when no inspection data exists
	Region           string
	AskingPrice      float64 // 0 means no asking price supplied
	BoomLengthFt     float64
	JibLengthFt      float64
	CounterweightLbs float64
	Features         []string
}

// ComparableRecord is a historical sale or listing used as a similarity
// reference point. Records without a positive price are dropped at load time.
type ComparableRecord struct {
	Manufacturer string
	ModelTitle   string
	Year         int
	Hours        int
	CapacityTons float64
	Price        float64
	Location     string
	SourceTag    string
}

// Match pairs a comparable record with its similarity to the subject crane.
type Match struct {
	Record     ComparableRecord
	Similarity float64
}

// RentalRate is a regional monthly rental rate for cranes of a given type at
// or above a minimum capacity.
type RentalRate struct {
	Region          string
	CraneType       CraneType
	MinCapacityTons float64
	MonthlyRate     float64
}

// AgeBandRate maps an age band (ages up to and including MaxAgeYears) to an
// annual depreciation rate. A MaxAgeYears of 0 marks the open-ended band.
type AgeBandRate struct {
	MaxAgeYears int
	AnnualRate  float64
}

// AdjustmentTables holds the static multiplier tables applied during
// valuation. Lookup keys are lower-cased manufacturer names and region
// bucket names.
type AdjustmentTables struct {
	ManufacturerPremium map[string]float64
	RegionalMultiplier  map[string]float64
	DepreciationCurve   map[CraneType][]AgeBandRate
	CostPerTon          map[CraneType]float64
}

// MarketSummary is the result of an optional live market data fetch.
type MarketSummary struct {
	AveragePrice   float64
	PriceRangeLow  float64
	PriceRangeHigh float64
	ListingCount   int
}

// FinancingScenario is one illustrative purchase scenario derived from the
// final valuation. Rental fields are populated only on the rental-based
// scenario.
type FinancingScenario struct {
	Label              string
	DownPayment        float64
	MonthlyPayment     float64
	TotalCost          float64
	AnnualRatePercent  float64
	TermMonths         int
	AnnualRentalIncome float64
	PaybackYears       float64
	ROIPercent         float64
}

// Market position labels relating an asking price to fair market value.
const (
	MarketPositionBelow   = "below-market"
	MarketPositionAt      = "at-market"
	MarketPositionAbove   = "above-market"
	MarketPositionUnknown = "unknown"
)

// ValuationResult is the fully-populated output of a single valuation call.
// It is constructed once and never mutated afterward.
type ValuationResult struct {
	ID string

	FairMarketValue           float64
	WholesaleValue            float64
	RetailValue               float64
	OrderlyLiquidationValue   float64
	ForcedLiquidationValue    float64
	InsuranceReplacementValue float64

	DealScore       int
	WearScore       float64
	ConfidenceScore float64

	ComparableSales    []Match
	FinancingScenarios []FinancingScenario

	RiskFactors     []string
	Recommendations []string
	MarketPosition  string

	// MarketDataUsed records whether a live market summary contributed to
	// the adjusted value.
	MarketDataUsed bool
}
