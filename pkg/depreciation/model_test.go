package depreciation

import (
	"math"
	"testing"

	"github.com/craneworks/crane-valuation/pkg/crane"
	"github.com/craneworks/crane-valuation/pkg/mathutil"
)

const refYear = 2026

func newTestModel() *Model {
	return NewModel(nil, crane.DefaultAdjustmentTables())
}

func TestReplacementCost(t *testing.T) {
	model := newTestModel()

	tests := []struct {
		name     string
		spec     crane.CraneSpecification
		expected float64
	}{
		{
			name: "all-terrain with manufacturer premium",
			spec: crane.CraneSpecification{
				Manufacturer: "Liebherr",
				Model:        "LTM 1100-5.2",
				CapacityTons: 110,
			},
			// 110t x 8500/t x 1.15 premium, no scale adjustment
			expected: 110 * 8500 * 1.15,
		},
		{
			name: "unknown manufacturer is neutral",
			spec: crane.CraneSpecification{
				Manufacturer: "Acme",
				Model:        "LTM 9000",
				CapacityTons: 110,
			},
			expected: 110 * 8500 * 1.00,
		},
		{
			name: "small unit discounted 10%",
			spec: crane.CraneSpecification{
				Manufacturer: "Terex",
				Model:        "RT 230",
				CapacityTons: 30,
			},
			expected: 30 * 6000 * 0.95 * 0.90,
		},
		{
			name: "very large unit premium 20%",
			spec: crane.CraneSpecification{
				Manufacturer: "Liebherr",
				Model:        "LR 11000 crawler",
				CapacityTons: 1000,
			},
			expected: 1000 * 7000 * 1.15 * 1.20,
		},
		{
			name: "zero capacity defaults to 100 tons",
			spec: crane.CraneSpecification{
				Manufacturer: "Acme",
				Model:        "LTM",
			},
			expected: 100 * 8500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.ReplacementCost(tt.spec)
			if !mathutil.WithinTolerance(got, tt.expected, 0.01) {
				t.Errorf("ReplacementCost() = %.2f, expected %.2f", got, tt.expected)
			}
		})
	}
}

func TestBaseValueNewEquipment(t *testing.T) {
	model := newTestModel()
	spec := crane.CraneSpecification{
		Manufacturer: "Liebherr",
		Model:        "LTM 1100-5.2",
		Year:         refYear,
		CapacityTons: 100,
	}

	// Age zero: depreciation factor is (1-rate)^0 = 1 and hours are unknown,
	// so the base value equals the replacement cost.
	replacement := model.ReplacementCost(spec)
	got := model.BaseValue(spec, refYear)
	if !mathutil.WithinTolerance(got, replacement, 0.01) {
		t.Errorf("BaseValue(new unit) = %.2f, expected replacement cost %.2f", got, replacement)
	}
}

func TestBaseValueCompoundDepreciation(t *testing.T) {
	model := newTestModel()
	spec := crane.CraneSpecification{
		Manufacturer: "Liebherr",
		Model:        "LTM 1100-5.2",
		Year:         refYear - 10,
		CapacityTons: 110,
	}

	// Age 10 falls in the 8-15y all-terrain band at 4% per year.
	replacement := model.ReplacementCost(spec)
	expected := replacement * math.Pow(0.96, 10)
	got := model.BaseValue(spec, refYear)
	if !mathutil.WithinTolerance(got, expected, 0.01) {
		t.Errorf("BaseValue(10y) = %.2f, expected %.2f", got, expected)
	}
}

func TestBaseValueAppliesHoursMultiplier(t *testing.T) {
	model := newTestModel()
	lowHours := crane.CraneSpecification{
		Manufacturer: "Liebherr",
		Model:        "LTM 1100-5.2",
		Year:         refYear - 10,
		CapacityTons: 110,
		Hours:        2000, // far below 10y x 800h expected
	}
	unknownHours := lowHours
	unknownHours.Hours = 0

	lowValue := model.BaseValue(lowHours, refYear)
	neutralValue := model.BaseValue(unknownHours, refYear)

	expected := neutralValue * 1.15
	if !mathutil.WithinTolerance(lowValue, expected, 0.01) {
		t.Errorf("BaseValue(low hours) = %.2f, expected +15%% over %.2f", lowValue, neutralValue)
	}
}

func TestBaseValueCrawlerDepreciatesSlower(t *testing.T) {
	model := newTestModel()
	crawler := crane.CraneSpecification{
		Manufacturer: "Manitowoc",
		Model:        "MLC300 crawler",
		Year:         refYear - 10,
		CapacityTons: 300,
	}
	tower := crane.CraneSpecification{
		Manufacturer: "Manitowoc",
		Model:        "MDT tower",
		Year:         refYear - 10,
		CapacityTons: 300,
	}

	crawlerRatio := model.BaseValue(crawler, refYear) / model.ReplacementCost(crawler)
	towerRatio := model.BaseValue(tower, refYear) / model.ReplacementCost(tower)

	if crawlerRatio <= towerRatio {
		t.Errorf("crawler retained %.3f of value, tower %.3f; crawler should depreciate slower", crawlerRatio, towerRatio)
	}
}
