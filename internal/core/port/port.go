package port

import (
	"context"

	"github.com/greencart/storefront/internal/core/domain"
)

type CatalogBrowser interface {
	Categories() []string
	SetCategory(ctx context.Context, label string) []domain.Product
	SetSearchTerm(ctx context.Context, text string) []domain.Product
	BrowseProducts() []domain.Product
}

type CartOperator interface {
	AddToCart(ctx context.Context, productID int) (domain.CartSnapshot, error)
	RemoveFromCart(ctx context.Context, productID int) domain.CartSnapshot
	UpdateQuantity(ctx context.Context, productID, quantity int) domain.CartSnapshot
	CartSnapshot() domain.CartSnapshot
}

type Recommender interface {
	SelectReference(productID int) []domain.Product
	Recommendations() []domain.Product
}

type ShoppingEventsProducer interface {
	ProduceEvent(context.Context, domain.ShoppingEvent) error
}

type ShoppingEventsSaver interface {
	SaveEvents(context.Context, []domain.ShoppingEvent) error
}

type TrendingReader interface {
	AddToCartCount(productID string) (int64, error)
}
