package service

import (
	"strings"

	"github.com/greencart/storefront/internal/core/domain"
)

// FilterProducts narrows the catalog by category and free-text search.
//
// The category filter is an exact, case-sensitive match unless the
// criteria selects [domain.CategoryAll]. The search term is trimmed and
// matched case-insensitively as a substring of name, description,
// category, or any certification label. Both filters compose with AND.
// Result order equals catalog order. Pure.
func FilterProducts(
	catalog []domain.Product, c domain.FilterCriteria,
) []domain.Product {
	term := normalizedTerm(c.SearchTerm)
	anyCategory := c.Category == domain.CategoryAll || c.Category == ""

	filtered := make([]domain.Product, 0, len(catalog))
	for _, p := range catalog {
		if !anyCategory && p.Category != c.Category {
			continue
		}
		if term != "" && !matchesTerm(p, term) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func normalizedTerm(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

func matchesTerm(p domain.Product, term string) bool {
	if strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term) ||
		strings.Contains(strings.ToLower(p.Category), term) {
		return true
	}
	for _, cert := range p.Certifications {
		if strings.Contains(strings.ToLower(cert), term) {
			return true
		}
	}
	return false
}
