// Package financing produces illustrative purchase and rental scenarios from
// a final valuation.
package financing

import (
	"fmt"
	"math"

	"github.com/craneworks/crane-valuation/pkg/constants"
	"github.com/craneworks/crane-valuation/pkg/crane"
	"github.com/craneworks/crane-valuation/pkg/mathutil"
	"go.uber.org/zap"
)

// Scenario labels.
const (
	LabelCashPurchase = "cash-purchase"
	LabelFinanced     = "financed-purchase"
	LabelRentalROI    = "rental-income"
)

// Terms parameterizes the financed and rental scenarios. Zero values resolve
// to the package defaults.
type Terms struct {
	TermMonths          int
	AnnualRatePercent   float64
	DownPaymentFraction float64
	RentalUtilization   float64
}

// DefaultTerms returns the standard illustrative terms: 60 months at the
// default nominal APR with 20% down.
func DefaultTerms() Terms {
	return Terms{
		TermMonths:          constants.DefaultFinancingTermMonths,
		AnnualRatePercent:   constants.DefaultFinancingAPR,
		DownPaymentFraction: constants.DefaultDownPaymentFraction,
		RentalUtilization:   constants.DefaultRentalUtilization,
	}
}

// Generator builds financing scenarios for a valued crane.
type Generator struct {
	logger *zap.Logger
	terms  Terms
}

// NewGenerator creates a Generator, filling any unset terms with defaults.
func NewGenerator(logger *zap.Logger, terms Terms) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	defaults := DefaultTerms()
	if terms.TermMonths <= 0 {
		terms.TermMonths = defaults.TermMonths
	}
	if terms.AnnualRatePercent <= 0 {
		terms.AnnualRatePercent = defaults.AnnualRatePercent
	}
	if terms.DownPaymentFraction <= 0 || terms.DownPaymentFraction >= 1 {
		terms.DownPaymentFraction = defaults.DownPaymentFraction
	}
	if terms.RentalUtilization <= 0 || terms.RentalUtilization > 1 {
		terms.RentalUtilization = defaults.RentalUtilization
	}
	return &Generator{logger: logger, terms: terms}
}

// CalculateMonthlyPayment calculates the monthly payment for a financed
// principal using the standard amortization formula. A zero interest rate
// degrades to a straight division of principal over the term.
func CalculateMonthlyPayment(principal, annualRatePercent float64, termMonths int) float64 {
	if termMonths <= 0 || principal <= 0 {
		return 0
	}
	if annualRatePercent == 0 {
		return principal / float64(termMonths)
	}

	periodicInterestRate := annualRatePercent / (constants.PercentageMultiplier * constants.MonthsPerYear)
	power := math.Pow(1.00+periodicInterestRate, float64(termMonths))
	discountFactor := (power - 1.00) / power
	return principal * periodicInterestRate / discountFactor
}

// Scenarios returns the illustrative scenarios for the given fair market
// value: an all-cash purchase, an amortized financed purchase, and (when a
// regional rental rate matches the crane type and capacity) a rental-income
// projection with payback and ROI figures.
func (g *Generator) Scenarios(spec crane.CraneSpecification, fairMarketValue float64, rates []crane.RentalRate) []crane.FinancingScenario {
	if fairMarketValue <= 0 {
		return nil
	}

	scenarios := []crane.FinancingScenario{
		{
			Label:       LabelCashPurchase,
			DownPayment: fairMarketValue,
			TotalCost:   fairMarketValue,
		},
	}

	downPayment := fairMarketValue * g.terms.DownPaymentFraction
	principal := fairMarketValue - downPayment
	monthly := CalculateMonthlyPayment(principal, g.terms.AnnualRatePercent, g.terms.TermMonths)
	scenarios = append(scenarios, crane.FinancingScenario{
		Label:             LabelFinanced,
		DownPayment:       downPayment,
		MonthlyPayment:    monthly,
		TotalCost:         downPayment + monthly*float64(g.terms.TermMonths),
		AnnualRatePercent: g.terms.AnnualRatePercent,
		TermMonths:        g.terms.TermMonths,
	})

	if rate, ok := g.matchRentalRate(spec, rates); ok {
		annualIncome := rate.MonthlyRate * constants.MonthsPerYear * g.terms.RentalUtilization
		scenarios = append(scenarios, crane.FinancingScenario{
			Label:              LabelRentalROI,
			DownPayment:        fairMarketValue,
			TotalCost:          fairMarketValue,
			AnnualRentalIncome: annualIncome,
			PaybackYears:       mathutil.SafeRatio(fairMarketValue, annualIncome),
			ROIPercent:         mathutil.SafeRatio(annualIncome, fairMarketValue) * constants.PercentageMultiplier,
		})
		g.logger.Debug(fmt.Sprintf("rental scenario from %s rate %.2f/month", rate.Region, rate.MonthlyRate),
			zap.String("op", "financing.Scenarios"),
		)
	}

	return scenarios
}

// matchRentalRate selects the most specific rental rate for the subject: an
// exact region-bucket match is preferred, then any region; within a pass the
// rate with the highest qualifying capacity floor wins. Iteration order is
// fixed so the selection is reproducible.
func (g *Generator) matchRentalRate(spec crane.CraneSpecification, rates []crane.RentalRate) (crane.RentalRate, bool) {
	craneType := spec.Type()
	capacity := spec.EffectiveCapacity()
	bucket := crane.RegionBucket(spec.Region)

	for _, matchRegion := range []bool{true, false} {
		var best crane.RentalRate
		found := false
		for _, rate := range rates {
			if rate.CraneType != craneType || rate.MonthlyRate <= 0 {
				continue
			}
			if rate.MinCapacityTons > capacity {
				continue
			}
			if matchRegion && crane.RegionBucket(rate.Region) != bucket {
				continue
			}
			if !found || rate.MinCapacityTons > best.MinCapacityTons {
				best = rate
				found = true
			}
		}
		if found {
			return best, true
		}
	}
	return crane.RentalRate{}, false
}
