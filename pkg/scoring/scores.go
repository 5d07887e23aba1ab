// Package scoring derives the deal, wear, and confidence scores from a
// valuation. All three are pure functions of already-computed values and are
// bit-for-bit reproducible for identical inputs.
package scoring

import (
	"math"

	"github.com/craneworks/crane-valuation/pkg/constants"
	"github.com/craneworks/crane-valuation/pkg/crane"
	"github.com/craneworks/crane-valuation/pkg/mathutil"
)

// DataAvailability reports which reference data sources held usable data for
// this valuation; it feeds the confidence score.
type DataAvailability struct {
	Comparables bool
	RentalRates bool
	TrendData   bool
}

// DealScore compares the fair market value to the asking price on a 0-100
// scale; higher means a better bargain for a buyer. Without an asking price
// there is nothing to judge against and the fixed default of 85 applies.
func DealScore(fairMarketValue, askingPrice float64) int {
	if askingPrice <= 0 {
		return constants.DefaultDealScore
	}
	ratio := mathutil.SafeRatio(fairMarketValue, askingPrice)
	switch {
	case ratio >= 1.3:
		return 100
	case ratio >= 1.2:
		return 95
	case ratio >= 1.1:
		return 85
	case ratio >= 1.0:
		return 75
	case ratio >= 0.9:
		return 60
	case ratio >= 0.8:
		return 40
	default:
		return 20
	}
}

// WearScore is a 0-100 condition proxy built from age and operating hours.
// Unknown hours take a flat factor of 80; larger units earn a small bonus
// because they are typically better maintained.
func WearScore(spec crane.CraneSpecification, refYear int) float64 {
	age := spec.Age(refYear)
	ageFactor := math.Max(0, 100.0-3.0*float64(age))

	hoursFactor := constants.UnknownHoursFactor
	if spec.HoursKnown() && age > 0 {
		expected := float64(age) * constants.ExpectedHoursPerYear
		hoursFactor = math.Max(0, 100.0-50.0*(float64(spec.Hours)/expected-1.0))
	}

	var capacityFactor float64
	switch capacity := spec.EffectiveCapacity(); {
	case capacity >= 300:
		capacityFactor = 5
	case capacity >= 150:
		capacityFactor = 3
	}

	return mathutil.Clamp(ageFactor*0.6+hoursFactor*0.4+capacityFactor, 0, 100)
}

// ConfidenceScore is a 0-1 data-completeness proxy, not a statistical
// confidence interval. It starts from a 50-point base on an internal 0-100
// scale, credits each available reference data source, and credits each
// populated input field.
func ConfidenceScore(spec crane.CraneSpecification, available DataAvailability) float64 {
	score := 50.0

	if available.Comparables {
		score += 15
	}
	if available.RentalRates {
		score += 10
	}
	if available.TrendData {
		score += 10
	}

	if spec.Year > 0 {
		score += 5
	}
	if spec.HoursKnown() {
		score += 5
	}
	if spec.CapacityTons > 0 {
		score += 5
	}
	if spec.Manufacturer != "" {
		score += 5
	}

	return math.Min(score, 100) / 100
}

// MarketPosition labels the asking price relative to fair market value.
func MarketPosition(fairMarketValue, askingPrice float64) string {
	if askingPrice <= 0 || fairMarketValue <= 0 {
		return crane.MarketPositionUnknown
	}
	switch ratio := askingPrice / fairMarketValue; {
	case ratio < 0.95:
		return crane.MarketPositionBelow
	case ratio <= 1.05:
		return crane.MarketPositionAt
	default:
		return crane.MarketPositionAbove
	}
}
