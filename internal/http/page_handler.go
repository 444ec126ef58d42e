package http

import (
	"context"
	"net/http"
	"time"

	"github.com/fjod/maison/internal/navigation"
)

type PageHandler struct {
	catalog Catalog
	timeout time.Duration
}

func NewPageHandler(c Catalog, timeout time.Duration) *PageHandler {
	return &PageHandler{
		catalog: c,
		timeout: timeout,
	}
}

type SelectPageRequestDTO struct {
	Page string `json:"page"`
}

type SelectProductRequestDTO struct {
	ProductID string `json:"product_id"`
}

// PageResponse is what the storefront frame renders: the main view plus the cart chrome.
type PageResponse struct {
	View   navigation.View   `json:"view"`
	Chrome navigation.Chrome `json:"chrome"`
}

func (h *PageHandler) Get(w http.ResponseWriter, r *http.Request) {
	s := sessionFromContext(r.Context())
	h.respondPage(w, r, s.Nav.View())
}

func (h *PageHandler) Select(w http.ResponseWriter, r *http.Request) {
	s := sessionFromContext(r.Context())

	var req SelectPageRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Page == "" {
		respondError(w, http.StatusBadRequest, "invalid_page", "page is required")
		return
	}

	h.respondPage(w, r, s.Nav.SelectCategory(req.Page))
}

func (h *PageHandler) SelectProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	s := sessionFromContext(r.Context())

	var req SelectProductRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	p, err := h.catalog.Get(ctx, req.ProductID)
	if err != nil {
		handleError(w, err)
		return
	}

	h.respondPage(w, r, s.Nav.SelectProduct(p))
}

func (h *PageHandler) Back(w http.ResponseWriter, r *http.Request) {
	s := sessionFromContext(r.Context())
	h.respondPage(w, r, s.Nav.Back())
}

func (h *PageHandler) respondPage(w http.ResponseWriter, r *http.Request, v navigation.View) {
	s := sessionFromContext(r.Context())
	respondJSON(w, http.StatusOK, &PageResponse{
		View:   v,
		Chrome: navigation.ChromeFor(s.Cart.Snapshot()),
	})
}
