// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/craneworks/crane-valuation/pkg/crane"
)

// FloatPtr returns a pointer to the given float, for optional fields such as
// the condition score.
func FloatPtr(v float64) *float64 {
	return &v
}

// FindScenario finds a financing scenario by label in the results slice.
// Returns a pointer to the scenario if found, nil otherwise.
func FindScenario(scenarios []crane.FinancingScenario, label string) *crane.FinancingScenario {
	for i := range scenarios {
		if scenarios[i].Label == label {
			return &scenarios[i]
		}
	}
	return nil
}

// SampleComparables returns a fixed comparable listing fixture covering the
// common manufacturers and a spread of years, capacities, and prices.
func SampleComparables() []crane.ComparableRecord {
	return []crane.ComparableRecord{
		{Manufacturer: "Liebherr", ModelTitle: "LTM 1100-5.2", Year: 2018, Hours: 4200, CapacityTons: 110, Price: 950000, Location: "Houston, TX", SourceTag: "auction"},
		{Manufacturer: "Liebherr", ModelTitle: "LTM 1090-4.2", Year: 2016, Hours: 6100, CapacityTons: 100, Price: 780000, Location: "Chicago, IL", SourceTag: "dealer"},
		{Manufacturer: "Grove", ModelTitle: "GMK5150L", Year: 2019, Hours: 3500, CapacityTons: 150, Price: 1150000, Location: "Atlanta, GA", SourceTag: "listing"},
		{Manufacturer: "Tadano", ModelTitle: "ATF 100G-4", Year: 2015, Hours: 8200, CapacityTons: 100, Price: 620000, Location: "Seattle, WA", SourceTag: "auction"},
		{Manufacturer: "Manitowoc", ModelTitle: "MLC300 Crawler", Year: 2017, Hours: 5000, CapacityTons: 300, Price: 2100000, Location: "New Orleans, LA", SourceTag: "dealer"},
		{Manufacturer: "Terex", ModelTitle: "RT 780", Year: 2014, Hours: 7100, CapacityTons: 80, Price: 340000, Location: "Phoenix, AZ", SourceTag: "listing"},
	}
}

// SampleRentalRates returns a fixed regional rental rate fixture.
func SampleRentalRates() []crane.RentalRate {
	return []crane.RentalRate{
		{Region: "gulf-coast", CraneType: crane.AllTerrain, MinCapacityTons: 100, MonthlyRate: 28000},
		{Region: "gulf-coast", CraneType: crane.AllTerrain, MinCapacityTons: 50, MonthlyRate: 18000},
		{Region: "west-coast", CraneType: crane.AllTerrain, MinCapacityTons: 100, MonthlyRate: 32000},
		{Region: "midwest", CraneType: crane.Crawler, MinCapacityTons: 250, MonthlyRate: 55000},
		{Region: "northeast", CraneType: crane.RoughTerrain, MinCapacityTons: 50, MonthlyRate: 12000},
	}
}
