package crane

import (
	"math"
	"strings"

	"github.com/craneworks/crane-valuation/pkg/constants"
)

// Validate checks a specification for conditions the pipeline cannot recover
// from. Unknown manufacturers, regions, hours, and asking prices are all
// acceptable and degrade to neutral values; only structurally invalid input
// is rejected.
func (spec CraneSpecification) Validate() error {
	if spec.CapacityTons < 0 || math.IsNaN(spec.CapacityTons) || math.IsInf(spec.CapacityTons, 0) {
		return NewInputError("capacityTons", "must be zero (unknown) or positive")
	}
	if spec.Hours < 0 {
		return NewInputError("hours", "must not be negative")
	}
	if spec.AskingPrice < 0 || math.IsNaN(spec.AskingPrice) {
		return NewInputError("askingPrice", "must be zero (absent) or positive")
	}
	if spec.ConditionScore != nil {
		if c := *spec.ConditionScore; c < 0 || c > 1 || math.IsNaN(c) {
			return NewInputError("conditionScore", "must be within [0, 1]")
		}
	}
	if strings.TrimSpace(spec.Manufacturer) == "" && strings.TrimSpace(spec.Model) == "" {
		return NewInputError("manufacturer", "manufacturer or model must be provided")
	}
	return nil
}

// EffectiveCapacity resolves the capacity default in one place: a missing or
// non-positive capacity is treated as 100 tons.
func (spec CraneSpecification) EffectiveCapacity() float64 {
	if spec.CapacityTons <= 0 {
		return constants.DefaultCapacityTons
	}
	return spec.CapacityTons
}

// Age returns the crane age in years relative to the reference year, clamped
// to zero. A missing or implausible manufacturing year yields age zero.
func (spec CraneSpecification) Age(refYear int) int {
	if spec.Year <= 1900 || spec.Year > refYear {
		return 0
	}
	return refYear - spec.Year
}

// HoursKnown reports whether operating hours were supplied; zero hours means
// unknown, not new.
func (spec CraneSpecification) HoursKnown() bool {
	return spec.Hours > 0
}

// HasAskingPrice reports whether an asking price was supplied.
func (spec CraneSpecification) HasAskingPrice() bool {
	return spec.AskingPrice > 0
}

// Type returns the inferred crane type for the subject.
func (spec CraneSpecification) Type() CraneType {
	return InferType(spec.Model, spec.EffectiveCapacity())
}
