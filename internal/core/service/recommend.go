package service

import (
	"math"
	"sort"

	"github.com/greencart/storefront/internal/core/domain"
)

const (
	DefaultRecommendLimit = 4

	// maxScoreDistance is the widest sustainability-score gap at which a
	// cross-category product still qualifies as related.
	maxScoreDistance = 1.0
)

// Recommend ranks up to limit products related to ref.
//
// A candidate qualifies when it shares ref's category or its
// sustainability score is within maxScoreDistance of ref's (inclusive).
// The reference itself is excluded by id. Qualifying candidates are
// ordered by sustainability score descending; ties keep catalog order.
// An empty result is valid. Pure.
func Recommend(
	ref domain.Product, catalog []domain.Product, limit int,
) []domain.Product {
	if limit <= 0 {
		limit = DefaultRecommendLimit
	}

	var candidates []domain.Product
	for _, p := range catalog {
		if p.ID == ref.ID {
			continue
		}
		scoreDistance := math.Abs(p.SustainabilityScore - ref.SustainabilityScore)
		if p.Category == ref.Category || scoreDistance <= maxScoreDistance {
			candidates = append(candidates, p)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].SustainabilityScore > candidates[j].SustainabilityScore
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}
