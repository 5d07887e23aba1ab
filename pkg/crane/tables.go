package crane

import "strings"

// DefaultAdjustmentTables returns the built-in multiplier tables. The
// reference data loader merges any externally supplied tables over these, so
// a deployment with no adjustment file still values consistently.
func DefaultAdjustmentTables() AdjustmentTables {
	return AdjustmentTables{
		ManufacturerPremium: map[string]float64{
			"liebherr":  1.15,
			"manitowoc": 1.10,
			"grove":     1.08,
			"tadano":    1.05,
			"demag":     1.03,
			"potain":    1.03,
			"link-belt": 1.00,
			"kobelco":   0.98,
			"terex":     0.95,
			"kato":      0.95,
			"xcmg":      0.90,
			"sany":      0.90,
			"zoomlion":  0.90,
		},
		RegionalMultiplier: map[string]float64{
			RegionNortheast: 1.05,
			RegionSoutheast: 1.02,
			RegionGulfCoast: 1.08,
			RegionWestCoast: 1.10,
			RegionMidwest:   1.00,
			RegionCanada:    0.97,
		},
		// Annual depreciation rates by age band: 0-3y, 4-7y, 8-15y, 15y+.
		// Crawlers hold value longest; tower cranes depreciate fastest.
		DepreciationCurve: map[CraneType][]AgeBandRate{
			AllTerrain: {
				{MaxAgeYears: 3, AnnualRate: 0.06},
				{MaxAgeYears: 7, AnnualRate: 0.05},
				{MaxAgeYears: 15, AnnualRate: 0.04},
				{MaxAgeYears: 0, AnnualRate: 0.03},
			},
			Crawler: {
				{MaxAgeYears: 3, AnnualRate: 0.05},
				{MaxAgeYears: 7, AnnualRate: 0.04},
				{MaxAgeYears: 15, AnnualRate: 0.03},
				{MaxAgeYears: 0, AnnualRate: 0.025},
			},
			RoughTerrain: {
				{MaxAgeYears: 3, AnnualRate: 0.07},
				{MaxAgeYears: 7, AnnualRate: 0.06},
				{MaxAgeYears: 15, AnnualRate: 0.05},
				{MaxAgeYears: 0, AnnualRate: 0.04},
			},
			Tower: {
				{MaxAgeYears: 3, AnnualRate: 0.08},
				{MaxAgeYears: 7, AnnualRate: 0.07},
				{MaxAgeYears: 15, AnnualRate: 0.06},
				{MaxAgeYears: 0, AnnualRate: 0.05},
			},
		},
		CostPerTon: map[CraneType]float64{
			AllTerrain:   8500,
			Crawler:      7000,
			Tower:        12000,
			RoughTerrain: 6000,
		},
	}
}

// RateForAge selects the annual depreciation rate for an age from a curve.
// The open-ended band (MaxAgeYears == 0) matches any remaining age; an empty
// curve yields zero, i.e. no depreciation.
func RateForAge(curve []AgeBandRate, age int) float64 {
	var open *AgeBandRate
	for i := range curve {
		band := curve[i]
		if band.MaxAgeYears == 0 {
			open = &curve[i]
			continue
		}
		if age <= band.MaxAgeYears {
			return band.AnnualRate
		}
	}
	if open != nil {
		return open.AnnualRate
	}
	return 0
}

// ManufacturerPremiumFor performs the case-insensitive manufacturer lookup
// with the neutral 1.00 default.
func (t AdjustmentTables) ManufacturerPremiumFor(manufacturer string) float64 {
	if m, ok := t.ManufacturerPremium[normalizeKey(manufacturer)]; ok {
		return m
	}
	return 1.00
}

// RegionalMultiplierFor resolves a free-text region to its bucket multiplier
// with the neutral 1.00 default.
func (t AdjustmentTables) RegionalMultiplierFor(region string) float64 {
	if m, ok := t.RegionalMultiplier[RegionBucket(region)]; ok {
		return m
	}
	return 1.00
}

// CostPerTonFor returns the replacement cost per ton for a crane type. An
// unknown type falls back to the all-terrain figure, and a fully empty table
// falls back to the built-in defaults so a valuation always has a cost basis.
func (t AdjustmentTables) CostPerTonFor(craneType CraneType) float64 {
	if c, ok := t.CostPerTon[craneType]; ok && c > 0 {
		return c
	}
	if c, ok := t.CostPerTon[AllTerrain]; ok && c > 0 {
		return c
	}
	return DefaultAdjustmentTables().CostPerTon[craneType]
}

// CurveFor returns the depreciation curve for a crane type, falling back to
// the all-terrain curve and then to the built-in defaults.
func (t AdjustmentTables) CurveFor(craneType CraneType) []AgeBandRate {
	if c, ok := t.DepreciationCurve[craneType]; ok && len(c) > 0 {
		return c
	}
	if c, ok := t.DepreciationCurve[AllTerrain]; ok && len(c) > 0 {
		return c
	}
	return DefaultAdjustmentTables().DepreciationCurve[craneType]
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
