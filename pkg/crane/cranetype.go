package crane

import "strings"

// CraneType is the coarse category driving depreciation curves and
// replacement-cost tables.
type CraneType string

const (
	AllTerrain   CraneType = "all-terrain"
	Crawler      CraneType = "crawler"
	Tower        CraneType = "tower"
	RoughTerrain CraneType = "rough-terrain"
)

// typeIndicators maps model-name substrings to crane types. Order matters:
// the more specific indicators are checked before the generic ones, so "LR"
// (Liebherr crawler) wins over a model that also happens to contain "at".
var typeIndicators = []struct {
	substring string
	craneType CraneType
}{
	{"crawler", Crawler},
	{"cc", Crawler},
	{"lr", Crawler},
	{"scx", Crawler},
	{"tower", Tower},
	{"mdt", Tower},
	{"flat-top", Tower},
	{"rough", RoughTerrain},
	{"rt", RoughTerrain},
	{"grt", RoughTerrain},
	{"ltm", AllTerrain},
	{"gmk", AllTerrain},
	{"ac", AllTerrain},
	{"atf", AllTerrain},
	{"all terrain", AllTerrain},
	{"all-terrain", AllTerrain},
}

// InferType derives the crane type from model-name keywords, falling back to
// a capacity-based default when no indicator matches: very large units are
// overwhelmingly crawlers, everything else defaults to all-terrain.
func InferType(model string, capacityTons float64) CraneType {
	m := strings.ToLower(model)
	for _, ind := range typeIndicators {
		if strings.Contains(m, ind.substring) {
			return ind.craneType
		}
	}
	if capacityTons >= 350 {
		return Crawler
	}
	return AllTerrain
}
