package valuation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/craneworks/crane-valuation/internal/refdata"
	"github.com/craneworks/crane-valuation/pkg/crane"
	"github.com/craneworks/crane-valuation/pkg/financing"
	"github.com/craneworks/crane-valuation/pkg/marketdata"
	"github.com/craneworks/crane-valuation/pkg/mathutil"
	"github.com/craneworks/crane-valuation/pkg/testutil"
)

const refYear = 2026

// fakeProvider returns a canned summary or error without any network.
type fakeProvider struct {
	summary *crane.MarketSummary
	err     error
	calls   int
}

func (p *fakeProvider) FetchMarketSummary(ctx context.Context, manufacturer, model string) (*crane.MarketSummary, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.summary, nil
}

var _ marketdata.Provider = (*fakeProvider)(nil)

func testSpec() crane.CraneSpecification {
	return crane.CraneSpecification{
		Manufacturer:   "Liebherr",
		Model:          "LTM 1100-5.2",
		Year:           refYear - 8,
		Hours:          4200,
		CapacityTons:   110,
		ConditionScore: testutil.FloatPtr(0.85),
		Region:         "Houston, TX",
		AskingPrice:    900000,
	}
}

func newTestEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	if opts.ReferenceYear == 0 {
		opts.ReferenceYear = refYear
	}
	store := refdata.NewStatic(nil, testutil.SampleComparables(), testutil.SampleRentalRates(), crane.AdjustmentTables{})
	return NewEngine(nil, store, opts)
}

func TestValuateValueOrdering(t *testing.T) {
	engine := newTestEngine(t, Options{})

	result, err := engine.Valuate(context.Background(), testSpec())
	if err != nil {
		t.Fatalf("Valuate() returned error: %v", err)
	}

	ordered := []struct {
		label string
		value float64
	}{
		{"forced liquidation", result.ForcedLiquidationValue},
		{"orderly liquidation", result.OrderlyLiquidationValue},
		{"wholesale", result.WholesaleValue},
		{"fair market", result.FairMarketValue},
		{"retail", result.RetailValue},
		{"insurance replacement", result.InsuranceReplacementValue},
	}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].value >= ordered[i].value {
			t.Errorf("%s value %.2f is not below %s value %.2f",
				ordered[i-1].label, ordered[i-1].value, ordered[i].label, ordered[i].value)
		}
	}
	if result.ForcedLiquidationValue <= 0 {
		t.Errorf("forced liquidation value = %.2f, expected positive", result.ForcedLiquidationValue)
	}
}

func TestValuateScoreBounds(t *testing.T) {
	engine := newTestEngine(t, Options{})

	specs := []crane.CraneSpecification{
		testSpec(),
		{Manufacturer: "Terex", Model: "RT 780", Year: refYear - 30, Hours: 60000, CapacityTons: 80, AskingPrice: 2000000},
		{Model: "MLC300 crawler", Year: refYear, CapacityTons: 400},
	}

	for _, spec := range specs {
		result, err := engine.Valuate(context.Background(), spec)
		if err != nil {
			t.Fatalf("Valuate(%+v) returned error: %v", spec, err)
		}
		if result.DealScore < 0 || result.DealScore > 100 {
			t.Errorf("DealScore = %d, out of [0, 100]", result.DealScore)
		}
		if result.WearScore < 0 || result.WearScore > 100 {
			t.Errorf("WearScore = %.1f, out of [0, 100]", result.WearScore)
		}
		if result.ConfidenceScore < 0 || result.ConfidenceScore > 1 {
			t.Errorf("ConfidenceScore = %.2f, out of [0, 1]", result.ConfidenceScore)
		}
	}
}

func TestValuateDeterministicExceptID(t *testing.T) {
	engine := newTestEngine(t, Options{})

	first, err := engine.Valuate(context.Background(), testSpec())
	if err != nil {
		t.Fatalf("first Valuate() returned error: %v", err)
	}
	second, err := engine.Valuate(context.Background(), testSpec())
	if err != nil {
		t.Fatalf("second Valuate() returned error: %v", err)
	}

	if first.ID == second.ID {
		t.Errorf("both valuations share ID %s, expected unique identifiers", first.ID)
	}

	a, b := *first, *second
	a.ID, b.ID = "", ""
	if !reflect.DeepEqual(a, b) {
		t.Errorf("identical inputs produced different results:\n%+v\n%+v", a, b)
	}
}

func TestValuateEmptyReferenceData(t *testing.T) {
	store := refdata.NewStatic(nil, nil, nil, crane.AdjustmentTables{})
	engine := NewEngine(nil, store, Options{ReferenceYear: refYear})

	full := newTestEngine(t, Options{})
	baseline, err := full.Valuate(context.Background(), testSpec())
	if err != nil {
		t.Fatalf("baseline Valuate() returned error: %v", err)
	}

	result, err := engine.Valuate(context.Background(), testSpec())
	if err != nil {
		t.Fatalf("Valuate() with empty reference data returned error: %v", err)
	}

	if result.FairMarketValue <= 0 {
		t.Errorf("FairMarketValue = %.2f, expected positive without reference data", result.FairMarketValue)
	}
	if len(result.ComparableSales) != 0 {
		t.Errorf("ComparableSales = %d entries, expected none", len(result.ComparableSales))
	}
	if testutil.FindScenario(result.FinancingScenarios, financing.LabelRentalROI) != nil {
		t.Errorf("rental scenario produced without rental rates")
	}
	if result.ConfidenceScore >= baseline.ConfidenceScore {
		t.Errorf("ConfidenceScore = %.2f, expected below the full-data baseline %.2f",
			result.ConfidenceScore, baseline.ConfidenceScore)
	}
}

func TestValuateUnknownManufacturerAndRegion(t *testing.T) {
	engine := newTestEngine(t, Options{})

	spec := crane.CraneSpecification{
		Manufacturer: "Acme",
		Model:        "Skyhook 9000",
		Year:         refYear - 5,
		CapacityTons: 120,
		Region:       "Mars",
	}

	result, err := engine.Valuate(context.Background(), spec)
	if err != nil {
		t.Fatalf("Valuate() with unknown manufacturer and region returned error: %v", err)
	}
	if result.FairMarketValue <= 0 {
		t.Errorf("FairMarketValue = %.2f, expected positive with neutral multipliers", result.FairMarketValue)
	}
	if result.DealScore != 85 {
		t.Errorf("DealScore without asking price = %d, expected the default 85", result.DealScore)
	}
	if result.MarketPosition != crane.MarketPositionUnknown {
		t.Errorf("MarketPosition = %s, expected %s", result.MarketPosition, crane.MarketPositionUnknown)
	}
}

func TestValuateMarketProviderSuccess(t *testing.T) {
	offline, err := newTestEngine(t, Options{}).Valuate(context.Background(), testSpec())
	if err != nil {
		t.Fatalf("offline Valuate() returned error: %v", err)
	}

	provider := &fakeProvider{summary: &crane.MarketSummary{
		AveragePrice:   10e6, // far above any estimate, exercising the clamp
		PriceRangeLow:  9e6,
		PriceRangeHigh: 11e6,
		ListingCount:   14,
	}}
	engine := newTestEngine(t, Options{Provider: provider, MarketTimeout: time.Second})

	result, err := engine.Valuate(context.Background(), testSpec())
	if err != nil {
		t.Fatalf("Valuate() with market provider returned error: %v", err)
	}
	if provider.calls != 1 {
		t.Errorf("provider called %d times, expected once", provider.calls)
	}
	if !result.MarketDataUsed {
		t.Errorf("MarketDataUsed = false, expected true after a successful fetch")
	}
	if !mathutil.WithinTolerance(result.FairMarketValue, offline.FairMarketValue*1.10, 0.05) {
		t.Errorf("FairMarketValue = %.2f, expected offline value %.2f lifted by the clamped 10%%",
			result.FairMarketValue, offline.FairMarketValue)
	}
}

func TestValuateMarketProviderFailureDegrades(t *testing.T) {
	offline, err := newTestEngine(t, Options{}).Valuate(context.Background(), testSpec())
	if err != nil {
		t.Fatalf("offline Valuate() returned error: %v", err)
	}

	provider := &fakeProvider{err: errors.New("upstream unreachable")}
	engine := newTestEngine(t, Options{Provider: provider, MarketTimeout: time.Second})

	result, err := engine.Valuate(context.Background(), testSpec())
	if err != nil {
		t.Fatalf("Valuate() with failing provider returned error: %v", err)
	}
	if result.MarketDataUsed {
		t.Errorf("MarketDataUsed = true after a failed fetch, expected false")
	}
	if result.FairMarketValue != offline.FairMarketValue {
		t.Errorf("FairMarketValue = %.2f after a failed fetch, expected the offline value %.2f",
			result.FairMarketValue, offline.FairMarketValue)
	}
}

func TestValuateUsesReloadedTables(t *testing.T) {
	dir := t.TempDir()
	adjustmentsPath := filepath.Join(dir, "adjustments.yaml")

	writeAdjustments := func(premium string) {
		t.Helper()
		content := "manufacturerPremium:\n  liebherr: " + premium + "\n"
		if err := os.WriteFile(adjustmentsPath, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write adjustments file: %v", err)
		}
	}

	writeAdjustments("1.15")
	store, err := refdata.Load(nil, refdata.Sources{AdjustmentsFile: adjustmentsPath})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	engine := NewEngine(nil, store, Options{ReferenceYear: refYear})

	before, err := engine.Valuate(context.Background(), testSpec())
	if err != nil {
		t.Fatalf("Valuate() before reload returned error: %v", err)
	}

	writeAdjustments("2.00")
	if err := store.Reload(); err != nil {
		t.Fatalf("Reload() returned error: %v", err)
	}

	after, err := engine.Valuate(context.Background(), testSpec())
	if err != nil {
		t.Fatalf("Valuate() after reload returned error: %v", err)
	}
	if after.FairMarketValue <= before.FairMarketValue {
		t.Errorf("FairMarketValue = %.2f after the premium rose from 1.15 to 2.00, expected above the pre-reload %.2f",
			after.FairMarketValue, before.FairMarketValue)
	}
}

func TestValuateInvalidSpecification(t *testing.T) {
	engine := newTestEngine(t, Options{})

	spec := testSpec()
	spec.CapacityTons = -10

	_, err := engine.Valuate(context.Background(), spec)
	if err == nil {
		t.Fatalf("Valuate() with negative capacity returned no error")
	}
	var inputErr *crane.InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("Valuate() error = %v, expected an input validation error", err)
	}
	if inputErr.Field != "capacityTons" {
		t.Errorf("validation error field = %q, expected capacityTons", inputErr.Field)
	}
}

func TestValuateIncludesScenariosAndInsights(t *testing.T) {
	engine := newTestEngine(t, Options{})

	result, err := engine.Valuate(context.Background(), testSpec())
	if err != nil {
		t.Fatalf("Valuate() returned error: %v", err)
	}

	if testutil.FindScenario(result.FinancingScenarios, financing.LabelCashPurchase) == nil {
		t.Errorf("no cash purchase scenario in %v", result.FinancingScenarios)
	}
	if testutil.FindScenario(result.FinancingScenarios, financing.LabelFinanced) == nil {
		t.Errorf("no financed purchase scenario in %v", result.FinancingScenarios)
	}
	if testutil.FindScenario(result.FinancingScenarios, financing.LabelRentalROI) == nil {
		t.Errorf("no rental income scenario for a gulf coast all-terrain unit")
	}

	if len(result.ComparableSales) == 0 {
		t.Errorf("no comparable sales matched the fixture listing set")
	}
	if result.ID == "" {
		t.Errorf("result has no identifier")
	}
	if engine.ReferenceYear() != refYear {
		t.Errorf("ReferenceYear() = %d, expected %d", engine.ReferenceYear(), refYear)
	}
}
