// Package valuation sequences the valuation pipeline: depreciation, market
// adjustment, comparable matching, scoring, and financing scenarios, and
// assembles the final result object.
package valuation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/craneworks/crane-valuation/internal/refdata"
	"github.com/craneworks/crane-valuation/pkg/adjustments"
	"github.com/craneworks/crane-valuation/pkg/comparables"
	"github.com/craneworks/crane-valuation/pkg/constants"
	"github.com/craneworks/crane-valuation/pkg/crane"
	"github.com/craneworks/crane-valuation/pkg/depreciation"
	"github.com/craneworks/crane-valuation/pkg/financing"
	"github.com/craneworks/crane-valuation/pkg/marketdata"
	"github.com/craneworks/crane-valuation/pkg/mathutil"
	"github.com/craneworks/crane-valuation/pkg/scoring"
)

// Options tunes an Engine beyond its reference data.
type Options struct {
	// Provider is the optional live market data source. Nil disables the
	// live fetch entirely.
	Provider marketdata.Provider

	// MarketTimeout bounds the live fetch; zero uses the default.
	MarketTimeout time.Duration

	// ReferenceYear anchors age computations. Zero resolves to the current
	// year; tests pin it for reproducibility.
	ReferenceYear int

	// FinancingTerms parameterize the financing scenarios.
	FinancingTerms financing.Terms
}

// Engine is the single entry point for valuations. It is safe for
// concurrent use: every valuation is a stateless single pass over the
// read-only reference data snapshot.
type Engine struct {
	logger        *zap.Logger
	store         *refdata.Store
	provider      marketdata.Provider
	marketTimeout time.Duration
	refYear       int

	matcher   *comparables.Matcher
	generator *financing.Generator
}

// NewEngine constructs an Engine over an explicitly loaded reference data
// store.
func NewEngine(logger *zap.Logger, store *refdata.Store, opts Options) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	refYear := opts.ReferenceYear
	if refYear <= 0 {
		refYear = time.Now().Year()
	}
	marketTimeout := opts.MarketTimeout
	if marketTimeout <= 0 {
		marketTimeout = marketdata.DefaultTimeout
	}

	return &Engine{
		logger:        logger,
		store:         store,
		provider:      opts.Provider,
		marketTimeout: marketTimeout,
		refYear:       refYear,
		matcher:       comparables.NewMatcher(logger),
		generator:     financing.NewGenerator(logger, opts.FinancingTerms),
	}
}

// Valuate runs one complete valuation pass. The only caller-visible failure
// is an invalid specification; every degraded data condition is logged and
// reflected in the confidence score instead.
func (e *Engine) Valuate(ctx context.Context, spec crane.CraneSpecification) (*crane.ValuationResult, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	// One coherent reference data snapshot per valuation so a concurrent
	// Reload takes effect on the next call, never partway through one.
	refData := e.store.Snapshot()
	model := depreciation.NewModel(e.logger, refData.Tables)
	calculator := adjustments.NewCalculator(e.logger, refData.Tables)

	baseValue := model.BaseValue(spec, e.refYear)

	// The live fetch is the pipeline's only suspension point; a timeout or
	// provider error degrades to offline adjustments.
	var market *crane.MarketSummary
	if e.provider != nil {
		market = marketdata.FetchBestEffort(ctx, e.logger, e.provider, spec.Manufacturer, spec.Model, e.marketTimeout)
	}

	adjustedValue, applied := calculator.AdjustedValue(spec, baseValue, market)
	fairMarketValue := mathutil.Round(adjustedValue)

	matches := e.matcher.Find(spec, refData.Comparables, comparables.DefaultLimit)

	availability := refData.Availability()
	wearScore := scoring.WearScore(spec, e.refYear)
	dealScore := scoring.DealScore(fairMarketValue, spec.AskingPrice)
	confidence := scoring.ConfidenceScore(spec, scoring.DataAvailability{
		Comparables: availability.Comparables,
		RentalRates: availability.RentalRates,
		TrendData:   market != nil,
	})

	scenarios := e.generator.Scenarios(spec, fairMarketValue, refData.RentalRates)

	result := &crane.ValuationResult{
		ID: uuid.NewString(),

		FairMarketValue:           fairMarketValue,
		WholesaleValue:            mathutil.Round(fairMarketValue * constants.WholesaleRatio),
		RetailValue:               mathutil.Round(fairMarketValue * constants.RetailRatio),
		OrderlyLiquidationValue:   mathutil.Round(fairMarketValue * constants.OrderlyLiquidationRatio),
		ForcedLiquidationValue:    mathutil.Round(fairMarketValue * constants.ForcedLiquidationRatio),
		InsuranceReplacementValue: mathutil.Round(fairMarketValue * constants.InsuranceReplacementRatio),

		DealScore:       dealScore,
		WearScore:       wearScore,
		ConfidenceScore: confidence,

		ComparableSales:    matches,
		FinancingScenarios: scenarios,

		RiskFactors:     scoring.RiskFactors(spec, wearScore, e.refYear),
		Recommendations: scoring.Recommendations(dealScore, wearScore, len(matches), spec.AskingPrice, fairMarketValue),
		MarketPosition:  scoring.MarketPosition(fairMarketValue, spec.AskingPrice),

		MarketDataUsed: market != nil,
	}

	e.logger.Info(fmt.Sprintf("valued %s %s at %.2f (deal %d, wear %.1f, confidence %.2f)",
		spec.Manufacturer, spec.Model, result.FairMarketValue, result.DealScore, result.WearScore, result.ConfidenceScore),
		zap.String("op", "valuation.Valuate"),
		zap.String("valuationID", result.ID),
		zap.Float64("baseValue", baseValue),
		zap.Int("comparables", len(matches)),
		zap.Int("adjustmentsApplied", countNonNeutral(applied)),
	)

	return result, nil
}

// ReferenceYear exposes the engine's age anchor, mainly for callers
// rendering "N years old" alongside the result.
func (e *Engine) ReferenceYear() int {
	return e.refYear
}

func countNonNeutral(applied []adjustments.Applied) int {
	n := 0
	for _, a := range applied {
		if a.Adjustment != 0 {
			n++
		}
	}
	return n
}
