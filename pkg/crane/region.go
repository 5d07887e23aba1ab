package crane

import "strings"

// Region bucket names used as keys into the regional multiplier and rental
// rate tables.
const (
	RegionNortheast = "northeast"
	RegionSoutheast = "southeast"
	RegionGulfCoast = "gulf-coast"
	RegionWestCoast = "west-coast"
	RegionMidwest   = "midwest"
	RegionCanada    = "canada"
	RegionUnknown   = ""
)

// regionKeywords matches longer free-text fragments in a fixed order so the
// bucket resolution is deterministic; regionStates matches exact two-letter
// state/province tokens.
var regionKeywords = []struct {
	keyword string
	bucket  string
}{
	{"northeast", RegionNortheast},
	{"new york", RegionNortheast},
	{"new jersey", RegionNortheast},
	{"boston", RegionNortheast},
	{"pennsylvania", RegionNortheast},
	{"southeast", RegionSoutheast},
	{"florida", RegionSoutheast},
	{"georgia", RegionSoutheast},
	{"carolina", RegionSoutheast},
	{"atlanta", RegionSoutheast},
	{"gulf", RegionGulfCoast},
	{"texas", RegionGulfCoast},
	{"houston", RegionGulfCoast},
	{"louisiana", RegionGulfCoast},
	{"west coast", RegionWestCoast},
	{"west-coast", RegionWestCoast},
	{"california", RegionWestCoast},
	{"washington", RegionWestCoast},
	{"oregon", RegionWestCoast},
	{"los angeles", RegionWestCoast},
	{"seattle", RegionWestCoast},
	{"midwest", RegionMidwest},
	{"chicago", RegionMidwest},
	{"illinois", RegionMidwest},
	{"ohio", RegionMidwest},
	{"michigan", RegionMidwest},
	{"canada", RegionCanada},
	{"ontario", RegionCanada},
	{"alberta", RegionCanada},
	{"british columbia", RegionCanada},
	{"toronto", RegionCanada},
}

var regionStates = map[string]string{
	"ny": RegionNortheast, "nj": RegionNortheast, "ma": RegionNortheast,
	"pa": RegionNortheast, "ct": RegionNortheast, "me": RegionNortheast,
	"nh": RegionNortheast, "vt": RegionNortheast, "ri": RegionNortheast,
	"fl": RegionSoutheast, "ga": RegionSoutheast, "nc": RegionSoutheast,
	"sc": RegionSoutheast, "tn": RegionSoutheast, "al": RegionSoutheast,
	"va": RegionSoutheast,
	"tx": RegionGulfCoast, "la": RegionGulfCoast, "ms": RegionGulfCoast,
	"ok": RegionGulfCoast,
	"ca": RegionWestCoast, "wa": RegionWestCoast, "or": RegionWestCoast,
	"nv": RegionWestCoast, "az": RegionWestCoast,
	"il": RegionMidwest, "oh": RegionMidwest, "mi": RegionMidwest,
	"in": RegionMidwest, "wi": RegionMidwest, "mn": RegionMidwest,
	"mo": RegionMidwest, "ia": RegionMidwest, "ks": RegionMidwest,
	"ne": RegionMidwest,
	"on": RegionCanada, "bc": RegionCanada, "ab": RegionCanada,
	"qc": RegionCanada,
}

// RegionBucket maps a free-text region or location string to a coarse region
// bucket. Unrecognized regions return RegionUnknown, which resolves to the
// neutral multiplier downstream.
func RegionBucket(region string) string {
	r := strings.ToLower(strings.TrimSpace(region))
	if r == "" {
		return RegionUnknown
	}
	for _, entry := range regionKeywords {
		if strings.Contains(r, entry.keyword) {
			return entry.bucket
		}
	}
	// Fall back to exact state/province token matches so "Dallas, TX" still
	// resolves while "Mars" does not.
	for _, token := range strings.FieldsFunc(r, func(c rune) bool {
		return c < 'a' || c > 'z'
	}) {
		if bucket, ok := regionStates[token]; ok {
			return bucket
		}
	}
	return RegionUnknown
}
