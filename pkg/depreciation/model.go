// Package depreciation converts a crane specification into a base value
// using an estimated replacement cost and a type-specific depreciation
// curve.
package depreciation

import (
	"fmt"
	"math"

	"github.com/craneworks/crane-valuation/pkg/adjustments"
	"github.com/craneworks/crane-valuation/pkg/crane"
	"go.uber.org/zap"
)

// Model computes depreciated base values from the adjustment tables loaded
// at startup.
type Model struct {
	logger *zap.Logger
	tables crane.AdjustmentTables
}

// NewModel creates a depreciation model over the given adjustment tables.
func NewModel(logger *zap.Logger, tables crane.AdjustmentTables) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Model{logger: logger, tables: tables}
}

// ReplacementCost estimates what a new unit of this specification would cost:
// capacity times the type-specific cost per ton times the manufacturer
// premium, with a scale adjustment for very large and very small units.
func (m *Model) ReplacementCost(spec crane.CraneSpecification) float64 {
	capacity := spec.EffectiveCapacity()
	craneType := spec.Type()

	cost := capacity * m.tables.CostPerTonFor(craneType) * m.tables.ManufacturerPremiumFor(spec.Manufacturer)

	switch {
	case capacity > 500:
		cost *= 1.20
	case capacity > 300:
		cost *= 1.10
	case capacity < 50:
		cost *= 0.90
	}

	return cost
}

// BaseValue computes the depreciated base value for the subject crane
// relative to the reference year: compound depreciation over the age using
// the type-specific curve, then the hours-utilization multiplier.
func (m *Model) BaseValue(spec crane.CraneSpecification, refYear int) float64 {
	replacement := m.ReplacementCost(spec)
	age := spec.Age(refYear)
	craneType := spec.Type()

	rate := crane.RateForAge(m.tables.CurveFor(craneType), age)
	depreciated := replacement * math.Pow(1.0-rate, float64(age))

	hoursAdjustment := adjustments.HoursUtilization(spec, refYear)
	value := depreciated * (1.0 + hoursAdjustment)

	m.logger.Debug(fmt.Sprintf("base value %.2f for %s %s (type %s, age %d)",
		value, spec.Manufacturer, spec.Model, craneType, age),
		zap.String("op", "depreciation.BaseValue"),
		zap.Float64("replacementCost", replacement),
		zap.Float64("annualRate", rate),
		zap.Float64("hoursAdjustment", hoursAdjustment),
	)

	return value
}
