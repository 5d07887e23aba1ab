// Package adjustments layers the multiplicative market adjustments over a
// depreciated base value. Every factor is independent, defaults to neutral
// when its input is missing, and never fails the valuation.
package adjustments

import (
	"fmt"

	"github.com/craneworks/crane-valuation/pkg/constants"
	"github.com/craneworks/crane-valuation/pkg/crane"
	"github.com/craneworks/crane-valuation/pkg/mathutil"
	"go.uber.org/zap"
)

// Applied records one adjustment factor and its signed contribution, e.g.
// +0.05 for a 5% premium. The orchestrator folds these into logging and
// recommendations.
type Applied struct {
	Name       string
	Adjustment float64
}

// Calculator applies condition, regional, manufacturer, and optional live
// market adjustments to a base value.
type Calculator struct {
	logger *zap.Logger
	tables crane.AdjustmentTables
}

// NewCalculator creates a Calculator over the given adjustment tables.
func NewCalculator(logger *zap.Logger, tables crane.AdjustmentTables) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{logger: logger, tables: tables}
}

// HoursUtilization returns the discrete adjustment for actual operating
// hours against the expected hours for the crane's age (800 per year).
// Unknown hours or a zero-age unit yield no adjustment. The depreciation
// model applies this factor when forming the base value, so the Calculator
// does not apply it a second time.
func HoursUtilization(spec crane.CraneSpecification, refYear int) float64 {
	if !spec.HoursKnown() {
		return 0
	}
	expected := float64(spec.Age(refYear)) * constants.ExpectedHoursPerYear
	if expected <= 0 {
		return 0
	}
	ratio := float64(spec.Hours) / expected
	switch {
	case ratio < 0.5:
		return 0.15
	case ratio < 0.8:
		return 0.05
	case ratio < 1.2:
		return 0
	case ratio < 1.5:
		return -0.05
	default:
		return -0.15
	}
}

// ConditionMultiplier maps an inspection condition score to its value
// multiplier. A missing score resolves to the average-condition tier.
func ConditionMultiplier(conditionScore *float64) float64 {
	if conditionScore == nil {
		return 1.00
	}
	switch c := *conditionScore; {
	case c >= 0.9:
		return 1.15
	case c >= 0.8:
		return 1.08
	case c >= 0.7:
		return 1.00
	case c >= 0.6:
		return 0.92
	case c >= 0.5:
		return 0.85
	default:
		return 0.75
	}
}

// AdjustedValue applies the offline factors (condition, regional,
// manufacturer) and, when a live market summary is supplied, a market
// intelligence term clamped to ±10% of the running estimate. The factors are
// purely multiplicative: base × Π(1+adjustment).
func (c *Calculator) AdjustedValue(spec crane.CraneSpecification, baseValue float64, market *crane.MarketSummary) (float64, []Applied) {
	applied := []Applied{
		{Name: "condition", Adjustment: ConditionMultiplier(spec.ConditionScore) - 1.0},
		{Name: "regional", Adjustment: c.tables.RegionalMultiplierFor(spec.Region) - 1.0},
		{Name: "manufacturer", Adjustment: c.tables.ManufacturerPremiumFor(spec.Manufacturer) - 1.0},
	}

	value := baseValue
	for _, a := range applied {
		value *= 1.0 + a.Adjustment
	}

	if market != nil && market.AveragePrice > 0 && value > 0 {
		marketAdjustment := mathutil.Clamp(
			(market.AveragePrice-value)/value,
			-constants.MarketAdjustmentClamp,
			constants.MarketAdjustmentClamp,
		)
		applied = append(applied, Applied{Name: "market", Adjustment: marketAdjustment})
		value *= 1.0 + marketAdjustment
	}

	for _, a := range applied {
		if a.Adjustment != 0 {
			c.logger.Debug(fmt.Sprintf("applied %s adjustment of %+.1f%%", a.Name, a.Adjustment*constants.PercentageMultiplier),
				zap.String("op", "adjustments.AdjustedValue"),
			)
		}
	}

	return value, applied
}
