package http

import (
	"context"
	"net/http"
	"time"

	"github.com/fjod/maison/internal/catalog"
	"github.com/fjod/maison/internal/domain"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	catalog Catalog
	timeout time.Duration
}

func NewCartHandler(c Catalog, timeout time.Duration) *CartHandler {
	return &CartHandler{
		catalog: c,
		timeout: timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size,omitempty"`
}

type UpdateQuantityRequestDTO struct {
	Quantity *int `json:"quantity"`
}

type CheckoutResponse struct {
	Receipt domain.Receipt  `json:"receipt"`
	Cart    domain.Snapshot `json:"cart"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	s := sessionFromContext(r.Context())
	respondJSON(w, http.StatusOK, s.Cart.Snapshot())
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	s := sessionFromContext(r.Context())

	var req AddItemRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	if req.Size != "" && !catalog.ValidSize(req.Size) {
		respondError(w, http.StatusBadRequest, "invalid_size", "size must be one of XS, S, M, L, XL")
		return
	}

	product, err := h.catalog.Get(ctx, req.ProductID)
	if err != nil {
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, s.Cart.AddItem(product, req.Size))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	s := sessionFromContext(r.Context())

	var req UpdateQuantityRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity == nil {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity is required")
		return
	}

	// zero or negative removes the line; unknown ids are ignored
	respondJSON(w, http.StatusOK, s.Cart.UpdateQuantity(chi.URLParam(r, "id"), *req.Quantity))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	s := sessionFromContext(r.Context())
	respondJSON(w, http.StatusOK, s.Cart.RemoveItem(chi.URLParam(r, "id")))
}

func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	s := sessionFromContext(r.Context())
	snap, receipt := s.Cart.Checkout()
	respondJSON(w, http.StatusOK, &CheckoutResponse{Receipt: receipt, Cart: snap})
}
