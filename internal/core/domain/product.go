package domain

// CategoryAll is the sentinel category label matching every product.
const CategoryAll = "All"

type (
	Product struct {
		ID                  int
		Name                string
		Description         string
		Category            string
		Price               float64
		SustainabilityScore float64
		CarbonFootprint     float64
		Certifications      []string
		Images              []ProductImage
	}

	ProductImage struct {
		URL string
		Alt string
	}
)

// A FilterCriteria holds the current browse state.
//
// An empty Category is equivalent to [CategoryAll].
type FilterCriteria struct {
	Category   string
	SearchTerm string
}
