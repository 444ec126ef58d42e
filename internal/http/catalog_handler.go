package http

import (
	"context"
	"net/http"
	"time"

	"github.com/fjod/maison/internal/catalog"
	"github.com/fjod/maison/internal/domain"
	"github.com/go-chi/chi/v5"
)

// Catalog is the read side of the product catalog.
type Catalog interface {
	List(ctx context.Context, category, sortBy string) ([]domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, error)
}

type ProductHandler struct {
	catalog Catalog
	timeout time.Duration
}

func NewProductHandler(c Catalog, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		catalog: c,
		timeout: timeout,
	}
}

type ProductsResponse struct {
	Category string           `json:"category"`
	Title    string           `json:"title"`
	Sort     string           `json:"sort"`
	Products []domain.Product `json:"products"`
}

type ProductResponse struct {
	domain.Product
	Sizes []string `json:"sizes"`
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	category := r.URL.Query().Get("category")
	if category == "" {
		category = catalog.CategoryAll
	}
	if category != catalog.CategoryAll && !domain.IsCategory(category) {
		respondError(w, http.StatusBadRequest, "invalid_category", "unknown category "+category)
		return
	}

	sortBy := r.URL.Query().Get("sort")
	switch sortBy {
	case "":
		sortBy = catalog.SortNewest
	case catalog.SortNewest, catalog.SortPriceAsc, catalog.SortPriceDesc:
	default:
		respondError(w, http.StatusBadRequest, "invalid_sort", "sort must be newest, price-asc or price-desc")
		return
	}

	products, err := h.catalog.List(ctx, category, sortBy)
	if err != nil {
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, &ProductsResponse{
		Category: category,
		Title:    catalog.Title(category),
		Sort:     sortBy,
		Products: products,
	})
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	p, err := h.catalog.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, &ProductResponse{Product: p, Sizes: catalog.Sizes})
}
