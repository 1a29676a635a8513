package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/greencart/storefront/internal/core/domain"
	"github.com/greencart/storefront/internal/core/port"
)

// DefaultCarbonBaseline is the assumed per-unit footprint of a
// conventional equivalent product, in kg CO2.
const DefaultCarbonBaseline = 5.0

var ErrUnknownProduct = errors.New("unknown product")

var _ port.CatalogBrowser = (*Storefront)(nil)
var _ port.CartOperator = (*Storefront)(nil)
var _ port.Recommender = (*Storefront)(nil)

type StorefrontOpt func(*Storefront)

func CarbonBaselineOpt(baseline float64) StorefrontOpt {
	return func(s *Storefront) {
		if baseline > 0 {
			s.baseline = baseline
		}
	}
}

func RecommendLimitOpt(limit int) StorefrontOpt {
	return func(s *Storefront) {
		if limit > 0 {
			s.limit = limit
		}
	}
}

func EventsProducerOpt(p port.ShoppingEventsProducer) StorefrontOpt {
	return func(s *Storefront) {
		s.events = p
	}
}

// A Storefront owns the immutable catalog and the mutable cart,
// filter criteria and recommendation reference.
//
// All mutation goes through its methods behind one mutex, so every
// returned view is derived from a single consistent state.
type Storefront struct {
	mu         sync.Mutex
	catalog    []domain.Product
	byID       map[int]domain.Product
	categories []string
	cart       *domain.Cart
	criteria   domain.FilterCriteria
	reference  int
	hasRef     bool
	baseline   float64
	limit      int
	events     port.ShoppingEventsProducer
}

func New(catalog []domain.Product, opts ...StorefrontOpt) *Storefront {
	s := &Storefront{
		catalog:  catalog,
		byID:     make(map[int]domain.Product, len(catalog)),
		cart:     domain.NewCart(),
		criteria: domain.FilterCriteria{Category: domain.CategoryAll},
		baseline: DefaultCarbonBaseline,
		limit:    DefaultRecommendLimit,
	}
	for _, p := range catalog {
		s.byID[p.ID] = p
	}
	s.categories = distinctCategories(catalog)

	for _, opt := range opts {
		opt(s)
	}
	return s
}

func distinctCategories(catalog []domain.Product) []string {
	seen := make(map[string]struct{}, len(catalog))
	categories := []string{domain.CategoryAll}
	for _, p := range catalog {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	return categories
}

// Categories returns [domain.CategoryAll] followed by the distinct
// catalog categories in catalog order.
func (s *Storefront) Categories() []string {
	return s.categories
}

func (s *Storefront) SetCategory(
	ctx context.Context, label string,
) []domain.Product {
	s.mu.Lock()
	s.criteria.Category = label
	filtered := FilterProducts(s.catalog, s.criteria)
	s.mu.Unlock()
	return filtered
}

func (s *Storefront) SetSearchTerm(
	ctx context.Context, text string,
) []domain.Product {
	s.mu.Lock()
	s.criteria.SearchTerm = text
	criteria := s.criteria
	filtered := FilterProducts(s.catalog, criteria)
	s.mu.Unlock()

	if term := normalizedTerm(text); term != "" {
		s.emit(ctx, domain.ShoppingEvent{
			Action:     domain.EventProductSearched,
			Category:   criteria.Category,
			SearchTerm: term,
		})
	}
	return filtered
}

// BrowseProducts returns the catalog filtered by the current criteria.
func (s *Storefront) BrowseProducts() []domain.Product {
	s.mu.Lock()
	filtered := FilterProducts(s.catalog, s.criteria)
	s.mu.Unlock()
	return filtered
}

// AddToCart inserts or increments the cart item for productID and makes
// the product the recommendation reference. Ids missing from the
// catalog yield [ErrUnknownProduct].
func (s *Storefront) AddToCart(
	ctx context.Context, productID int,
) (domain.CartSnapshot, error) {
	const op = "Storefront.AddToCart"

	s.mu.Lock()
	p, ok := s.byID[productID]
	if !ok {
		s.mu.Unlock()
		return domain.CartSnapshot{}, opErr(op, ErrUnknownProduct)
	}
	change := s.cart.Add(p)
	s.reference = productID
	s.hasRef = true
	snap := s.snapshotLocked(change)
	s.mu.Unlock()

	s.emit(ctx, domain.ShoppingEvent{
		Action:    domain.EventCartItemAdded,
		ProductID: productID,
		Quantity:  1,
		Category:  p.Category,
	})
	return snap, nil
}

// RemoveFromCart deletes the cart item for productID.
// Unknown ids are a silent no-op.
func (s *Storefront) RemoveFromCart(
	ctx context.Context, productID int,
) domain.CartSnapshot {
	s.mu.Lock()
	change := s.cart.Remove(productID)
	snap := s.snapshotLocked(change)
	s.mu.Unlock()

	if change == domain.CartItemRemoved {
		s.emit(ctx, domain.ShoppingEvent{
			Action:    domain.EventCartItemRemoved,
			ProductID: productID,
		})
	}
	return snap
}

// UpdateQuantity replaces the quantity of the cart item for productID.
// A quantity <= 0 behaves exactly as RemoveFromCart.
// Unknown ids are a silent no-op.
func (s *Storefront) UpdateQuantity(
	ctx context.Context, productID, quantity int,
) domain.CartSnapshot {
	s.mu.Lock()
	change := s.cart.SetQuantity(productID, quantity)
	snap := s.snapshotLocked(change)
	s.mu.Unlock()

	switch change {
	case domain.CartItemUpdated:
		s.emit(ctx, domain.ShoppingEvent{
			Action:    domain.EventCartItemUpdated,
			ProductID: productID,
			Quantity:  quantity,
		})
	case domain.CartItemRemoved:
		s.emit(ctx, domain.ShoppingEvent{
			Action:    domain.EventCartItemRemoved,
			ProductID: productID,
		})
	}
	return snap
}

// CartSnapshot returns the current items and metrics from one atomic
// read of the cart.
func (s *Storefront) CartSnapshot() domain.CartSnapshot {
	s.mu.Lock()
	snap := s.snapshotLocked(domain.CartUnchanged)
	s.mu.Unlock()
	return snap
}

// SelectReference makes productID the recommendation reference and
// returns the fresh ranking. Unknown ids keep the previous reference.
func (s *Storefront) SelectReference(productID int) []domain.Product {
	s.mu.Lock()
	if _, ok := s.byID[productID]; ok {
		s.reference = productID
		s.hasRef = true
	}
	recs := s.recommendationsLocked()
	s.mu.Unlock()
	return recs
}

// Recommendations ranks products related to the current reference,
// typically the most recently added cart item. Without a reference the
// result is empty.
func (s *Storefront) Recommendations() []domain.Product {
	s.mu.Lock()
	recs := s.recommendationsLocked()
	s.mu.Unlock()
	return recs
}

func (s *Storefront) snapshotLocked(change domain.CartChange) domain.CartSnapshot {
	return domain.CartSnapshot{
		Items:   s.cart.Items(),
		Metrics: s.cart.Metrics(s.baseline),
		Change:  change,
	}
}

func (s *Storefront) recommendationsLocked() []domain.Product {
	if !s.hasRef {
		return nil
	}
	return Recommend(s.byID[s.reference], s.catalog, s.limit)
}

// emit produces a shopping event best-effort: the storefront operation
// already succeeded, so producer failures are logged, never propagated.
func (s *Storefront) emit(ctx context.Context, evt domain.ShoppingEvent) {
	const op = "Storefront.emit"

	if s.events == nil {
		return
	}
	evt.EventID = uuid.NewString()
	evt.OccurredAt = time.Now().UTC()

	if err := s.events.ProduceEvent(ctx, evt); err != nil {
		slog.With("op", op).Warn(
			"failed to produce shopping event",
			"action", evt.Action, "err", err,
		)
	}
}

func opErr(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
