package httphandler

type (
	Product struct {
		ID                  int            `json:"id"`
		Name                string         `json:"name"`
		Description         string         `json:"description"`
		Category            string         `json:"category"`
		Price               float64        `json:"price"`
		SustainabilityScore float64        `json:"sustainability_score"`
		CarbonFootprint     float64        `json:"carbon_footprint"`
		Certifications      []string       `json:"certifications"`
		Images              []ProductImage `json:"images"`
	}

	ProductImage struct {
		URL string `json:"url"`
		Alt string `json:"alt"`
	}
)

type (
	CartItem struct {
		Product  Product `json:"product"`
		Quantity int     `json:"quantity"`
	}

	CartMetrics struct {
		TotalPrice                 float64 `json:"total_price"`
		TotalCarbonFootprint       float64 `json:"total_carbon_footprint"`
		CarbonSaved                float64 `json:"carbon_saved"`
		AverageSustainabilityScore float64 `json:"average_sustainability_score"`
		TotalItems                 int     `json:"total_items"`
	}

	Cart struct {
		Items   []CartItem  `json:"items"`
		Metrics CartMetrics `json:"metrics"`
		Change  string      `json:"change,omitempty"`
	}
)

type AddItemRequest struct {
	ProductID int `json:"product_id"`
}

type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

type TrendingCount struct {
	ProductID string `json:"product_id"`
	AddCount  int64  `json:"add_count"`
}
