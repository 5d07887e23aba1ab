package scoring

import (
	"fmt"

	"github.com/craneworks/crane-valuation/pkg/constants"
	"github.com/craneworks/crane-valuation/pkg/crane"
)

// RiskFactors lists the conditions a buyer should look into before acting on
// the valuation. Rules fire off the same inputs the scores use, so the list
// is deterministic.
func RiskFactors(spec crane.CraneSpecification, wearScore float64, refYear int) []string {
	var risks []string

	age := spec.Age(refYear)
	if age > 20 {
		risks = append(risks, fmt.Sprintf("Unit is %d years old; major component overhauls are likely due", age))
	}

	if spec.HoursKnown() && age > 0 {
		expected := float64(age) * constants.ExpectedHoursPerYear
		if float64(spec.Hours) > 1.5*expected {
			risks = append(risks, "Operating hours are well above expected for the unit's age")
		}
	} else if !spec.HoursKnown() {
		risks = append(risks, "Operating hours unknown; utilization history cannot be verified")
	}

	if spec.ConditionScore == nil {
		risks = append(risks, "No inspection condition data provided")
	}

	if wearScore < 40 {
		risks = append(risks, "Wear score indicates heavy use; budget for near-term maintenance")
	}

	return risks
}

// Recommendations derives advisory strings for the buyer from the computed
// scores and comparable coverage.
func Recommendations(dealScore int, wearScore float64, comparableCount int, askingPrice, fairMarketValue float64) []string {
	var recs []string

	switch {
	case askingPrice <= 0:
		recs = append(recs, "Obtain an asking price to assess deal quality against fair market value")
	case dealScore >= 85:
		recs = append(recs, "Asking price is attractive relative to fair market value")
	case dealScore <= 40:
		recs = append(recs, fmt.Sprintf("Negotiate toward fair market value of %.0f; asking price is above market", fairMarketValue))
	}

	if comparableCount == 0 {
		recs = append(recs, "No comparable sales were found; consider an independent appraisal before purchase")
	} else if comparableCount < 3 {
		recs = append(recs, "Few comparable sales were found; treat the valuation range with caution")
	}

	if wearScore < 50 {
		recs = append(recs, "Commission a physical inspection before purchase given the indicated wear")
	}

	return recs
}
