// Package comparables finds and ranks prior sales and listings similar to a
// subject crane.
package comparables

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/craneworks/crane-valuation/pkg/crane"
	"go.uber.org/zap"
)

// DefaultLimit caps the number of comparables returned when the caller does
// not specify one.
const DefaultLimit = 10

// Similarity weights; they sum to 1.0.
const (
	manufacturerWeight = 0.30
	modelWeight        = 0.20
	capacityWeight     = 0.30
	yearWeight         = 0.20
)

// Matcher ranks comparable records by weighted similarity to a subject
// specification.
type Matcher struct {
	logger *zap.Logger
}

// NewMatcher creates a Matcher.
func NewMatcher(logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{logger: logger}
}

// Find returns up to limit comparables ordered most-similar first. Three
// filters are tried in turn and the first non-empty candidate set wins:
// manufacturer/model match, capacity within ±50%, then year within ±3. Ties
// keep the stable input order so results are reproducible.
func (m *Matcher) Find(spec crane.CraneSpecification, records []crane.ComparableRecord, limit int) []crane.Match {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(records) == 0 {
		return nil
	}

	candidates := filterRecords(records, func(r crane.ComparableRecord) bool {
		return manufacturerMatches(spec, r) || modelMatches(spec, r)
	})
	if len(candidates) == 0 {
		capacity := spec.EffectiveCapacity()
		candidates = filterRecords(records, func(r crane.ComparableRecord) bool {
			return math.Abs(r.CapacityTons-capacity) <= 0.5*capacity
		})
	}
	if len(candidates) == 0 && spec.Year > 0 {
		candidates = filterRecords(records, func(r crane.ComparableRecord) bool {
			return r.Year > 0 && abs(r.Year-spec.Year) <= 3
		})
	}
	if len(candidates) == 0 {
		m.logger.Debug(fmt.Sprintf("no comparables matched %s %s", spec.Manufacturer, spec.Model),
			zap.String("op", "comparables.Find"),
		)
		return nil
	}

	matches := make([]crane.Match, 0, len(candidates))
	for _, r := range candidates {
		matches = append(matches, crane.Match{
			Record:     r,
			Similarity: Similarity(spec, r),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// Similarity scores one record against the subject on a 0..1 scale:
// manufacturer 0.30, model substring 0.20, capacity proximity 0.30 within a
// 20% band, year proximity 0.20 within five years.
func Similarity(spec crane.CraneSpecification, r crane.ComparableRecord) float64 {
	var score float64

	if manufacturerMatches(spec, r) {
		score += manufacturerWeight
	}
	if modelMatches(spec, r) {
		score += modelWeight
	}

	capacity := spec.EffectiveCapacity()
	capacityDiff := math.Abs(r.CapacityTons - capacity)
	if capacityDiff <= 0.2*capacity {
		score += capacityWeight * math.Max(0, 1.0-capacityDiff/capacity)
	}

	if spec.Year > 0 && r.Year > 0 {
		yearDiff := abs(r.Year - spec.Year)
		if yearDiff <= 5 {
			score += yearWeight * math.Max(0, 1.0-float64(yearDiff)/5.0)
		}
	}

	return score
}

func filterRecords(records []crane.ComparableRecord, keep func(crane.ComparableRecord) bool) []crane.ComparableRecord {
	var out []crane.ComparableRecord
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func manufacturerMatches(spec crane.CraneSpecification, r crane.ComparableRecord) bool {
	if strings.TrimSpace(spec.Manufacturer) == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(spec.Manufacturer), strings.TrimSpace(r.Manufacturer))
}

func modelMatches(spec crane.CraneSpecification, r crane.ComparableRecord) bool {
	model := strings.ToLower(strings.TrimSpace(spec.Model))
	if model == "" {
		return false
	}
	return strings.Contains(strings.ToLower(r.ModelTitle), model)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
