package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/greencart/storefront/internal/core/domain"
	"github.com/greencart/storefront/internal/core/port"
	"github.com/greencart/storefront/internal/core/service"
)

// GET  /v1/products?category=&q=               filtered catalog
// GET  /v1/categories                          "All" + distinct categories
// GET  /v1/cart                                items + metrics snapshot
// POST /v1/cart/items                          add item (404 unknown product)
// PUT  /v1/cart/items/{productID}              replace quantity (<= 0 removes)
// DELETE /v1/cart/items/{productID}            remove item
// GET  /v1/products/{productID}/recommendations  select reference, rank
// GET  /v1/recommendations                     rank for current reference

type StorefrontHandler struct {
	browser     port.CatalogBrowser
	cart        port.CartOperator
	recommender port.Recommender
}

func NewRouter(
	browser port.CatalogBrowser,
	cart port.CartOperator,
	recommender port.Recommender,
) *chi.Mux {
	h := StorefrontHandler{browser, cart, recommender}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(RequireJSON)

	r.Get("/health", Health)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/products", h.GetProducts)
		r.Get("/products/{productID}/recommendations", h.GetProductRecommendations)
		r.Get("/categories", h.GetCategories)
		r.Get("/cart", h.GetCart)
		r.Post("/cart/items", h.PostCartItem)
		r.Put("/cart/items/{productID}", h.PutCartItem)
		r.Delete("/cart/items/{productID}", h.DeleteCartItem)
		r.Get("/recommendations", h.GetRecommendations)
	})
	return r
}

func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h StorefrontHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var ps []domain.Product
	if query.Has("category") {
		ps = h.browser.SetCategory(r.Context(), query.Get("category"))
	}
	if query.Has("q") {
		ps = h.browser.SetSearchTerm(r.Context(), query.Get("q"))
	}
	if !query.Has("category") && !query.Has("q") {
		ps = h.browser.BrowseProducts()
	}

	writeJSON(w, http.StatusOK, toProducts(ps))
}

func (h StorefrontHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.browser.Categories())
}

func (h StorefrontHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toCart(h.cart.CartSnapshot()))
}

func (h StorefrontHandler) PostCartItem(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.PostCartItem"
	log := slog.With("op", op)

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	snap, err := h.cart.AddToCart(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, service.ErrUnknownProduct) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to add item", http.StatusInternalServerError)
		log.Error("failed to add item", "err", err)
		return
	}

	writeJSON(w, http.StatusCreated, toCart(snap))
}

func (h StorefrontHandler) PutCartItem(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.PutCartItem"
	log := slog.With("op", op)

	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	snap := h.cart.UpdateQuantity(r.Context(), productID, req.Quantity)
	writeJSON(w, http.StatusOK, toCart(snap))
}

func (h StorefrontHandler) DeleteCartItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	snap := h.cart.RemoveFromCart(r.Context(), productID)
	writeJSON(w, http.StatusOK, toCart(snap))
}

func (h StorefrontHandler) GetProductRecommendations(
	w http.ResponseWriter, r *http.Request,
) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	recs := h.recommender.SelectReference(productID)
	if len(recs) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, toProducts(recs))
}

func (h StorefrontHandler) GetRecommendations(
	w http.ResponseWriter, r *http.Request,
) {
	recs := h.recommender.Recommendations()
	if len(recs) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, toProducts(recs))
}

// TrendingHandler serves the goka view of per-product add counts.
type TrendingHandler struct {
	reader port.TrendingReader
}

func NewTrendingRouter(reader port.TrendingReader) *chi.Mux {
	h := TrendingHandler{reader}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Get("/health", Health)
	r.Get("/v1/trending/{productID}", h.GetTrending)
	return r
}

func (h TrendingHandler) GetTrending(w http.ResponseWriter, r *http.Request) {
	const op = "TrendingHandler.GetTrending"
	log := slog.With("op", op)

	productID := chi.URLParam(r, "productID")
	count, err := h.reader.AddToCartCount(productID)
	if err != nil {
		http.Error(w, "trending data unavailable", http.StatusServiceUnavailable)
		log.Error("failed to read view", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, TrendingCount{ProductID: productID, AddCount: count})
}

func productIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	productID, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return 0, false
	}
	return productID, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	const op = "httphandler.writeJSON"

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.With("op", op).Error("failed to write response body", "err", err)
	}
}

func toProducts(ps []domain.Product) []Product {
	out := make([]Product, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProduct(p))
	}
	return out
}

func toProduct(p domain.Product) Product {
	v := Product{
		ID:                  p.ID,
		Name:                p.Name,
		Description:         p.Description,
		Category:            p.Category,
		Price:               p.Price,
		SustainabilityScore: p.SustainabilityScore,
		CarbonFootprint:     p.CarbonFootprint,
		Certifications:      p.Certifications,
	}
	v.Images = make([]ProductImage, len(p.Images))
	for i := range p.Images {
		v.Images[i].URL = p.Images[i].URL
		v.Images[i].Alt = p.Images[i].Alt
	}
	return v
}

func toCart(snap domain.CartSnapshot) Cart {
	items := make([]CartItem, 0, len(snap.Items))
	for _, item := range snap.Items {
		items = append(items, CartItem{
			Product:  toProduct(item.Product),
			Quantity: item.Quantity,
		})
	}
	c := Cart{
		Items: items,
		Metrics: CartMetrics{
			TotalPrice:                 snap.Metrics.TotalPrice,
			TotalCarbonFootprint:       snap.Metrics.TotalCarbonFootprint,
			CarbonSaved:                snap.Metrics.CarbonSaved,
			AverageSustainabilityScore: snap.Metrics.AverageSustainabilityScore,
			TotalItems:                 snap.Metrics.TotalItems,
		},
	}
	if snap.Change != domain.CartUnchanged {
		c.Change = snap.Change.String()
	}
	return c
}
