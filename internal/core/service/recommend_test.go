package service

import (
	"testing"

	"github.com/greencart/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommend(t *testing.T) {
	t.Run("CategoryOrScoreBand", func(t *testing.T) {
		ref := domain.Product{ID: 1, Category: "Clothing", SustainabilityScore: 9.0}
		catalog := []domain.Product{
			ref,
			{ID: 2, Category: "Clothing", SustainabilityScore: 6.0},
			{ID: 3, Category: "Electronics", SustainabilityScore: 8.5},
			{ID: 4, Category: "Electronics", SustainabilityScore: 7.0},
		}

		got := Recommend(ref, catalog, DefaultRecommendLimit)

		// same category qualifies regardless of score, cross category
		// only within the score band, ranked score descending
		assert.Equal(t, []int{3, 2}, ids(got))
	})

	t.Run("ExcludesReference", func(t *testing.T) {
		ref := domain.Product{ID: 1, Category: "Clothing", SustainabilityScore: 9.0}
		got := Recommend(ref, []domain.Product{ref}, DefaultRecommendLimit)
		assert.Empty(t, got)
	})

	t.Run("ScoreBandIsInclusive", func(t *testing.T) {
		ref := domain.Product{ID: 1, Category: "Clothing", SustainabilityScore: 9.0}
		catalog := []domain.Product{
			ref,
			{ID: 2, Category: "Electronics", SustainabilityScore: 8.0},
			{ID: 3, Category: "Electronics", SustainabilityScore: 10.0},
			{ID: 4, Category: "Electronics", SustainabilityScore: 7.99},
		}

		got := Recommend(ref, catalog, DefaultRecommendLimit)
		assert.Equal(t, []int{3, 2}, ids(got))
	})

	t.Run("LimitBoundsResult", func(t *testing.T) {
		ref := domain.Product{ID: 1, Category: "Clothing", SustainabilityScore: 9.0}
		catalog := []domain.Product{ref}
		for id := 2; id <= 8; id++ {
			catalog = append(catalog, domain.Product{
				ID: id, Category: "Clothing",
				SustainabilityScore: float64(id),
			})
		}

		got := Recommend(ref, catalog, DefaultRecommendLimit)
		require.Len(t, got, DefaultRecommendLimit)
		assert.Equal(t, []int{8, 7, 6, 5}, ids(got))
	})

	t.Run("NonPositiveLimitUsesDefault", func(t *testing.T) {
		ref := domain.Product{ID: 1, Category: "Clothing", SustainabilityScore: 9.0}
		catalog := []domain.Product{ref}
		for id := 2; id <= 8; id++ {
			catalog = append(catalog, domain.Product{
				ID: id, Category: "Clothing",
				SustainabilityScore: float64(id),
			})
		}

		got := Recommend(ref, catalog, 0)
		assert.Len(t, got, DefaultRecommendLimit)
	})

	t.Run("TiesKeepCatalogOrder", func(t *testing.T) {
		ref := domain.Product{ID: 1, Category: "Soaps", SustainabilityScore: 9.0}
		catalog := []domain.Product{
			ref,
			{ID: 5, Category: "Soaps", SustainabilityScore: 8.8},
			{ID: 2, Category: "Soaps", SustainabilityScore: 8.8},
			{ID: 9, Category: "Soaps", SustainabilityScore: 8.8},
		}

		got := Recommend(ref, catalog, DefaultRecommendLimit)
		assert.Equal(t, []int{5, 2, 9}, ids(got))
	})

	t.Run("EmptyCatalog", func(t *testing.T) {
		ref := domain.Product{ID: 1, Category: "Clothing", SustainabilityScore: 9.0}
		got := Recommend(ref, nil, DefaultRecommendLimit)
		assert.Empty(t, got)
	})
}
