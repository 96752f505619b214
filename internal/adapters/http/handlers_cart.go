package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/merkato/storefront/internal/domain"
)

type addCartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, h.cart.Snapshot())
}

// addCartItem checks the stock policy before touching the cart: adding an
// out-of-stock product, or more units than the catalog has, is rejected
// outright. The cart store itself still clamps, so a race between the check
// and the mutation degrades to a clamp, never an oversell.
func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req addCartItemRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "add_cart_item", err)
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	product, err := h.catalog.GetByID(r.Context(), req.ProductID)
	if err != nil {
		writeMappedError(r.Context(), w, "add_cart_item", err)
		return
	}

	inCart := 0
	cart := h.cart.Snapshot()
	if idx, ok := cart.Find(product.ID); ok {
		inCart = cart.Items[idx].Quantity
	}
	if !domain.IsQuantityAvailable(&product, inCart+req.Quantity) {
		writeMappedError(r.Context(), w, "add_cart_item", domain.ErrStockExceeded)
		return
	}

	h.cart.AddItem(r.Context(), product.LineItemFor(), req.Quantity)
	writeSuccess(w, http.StatusOK, h.cart.Snapshot())
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	var req updateCartItemRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "update_cart_item", err)
		return
	}
	h.cart.UpdateQuantity(r.Context(), chi.URLParam(r, "product_id"), req.Quantity)
	writeSuccess(w, http.StatusOK, h.cart.Snapshot())
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	h.cart.RemoveItem(r.Context(), chi.URLParam(r, "product_id"))
	writeSuccess(w, http.StatusOK, h.cart.Snapshot())
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	h.cart.Clear(r.Context())
	writeSuccess(w, http.StatusOK, h.cart.Snapshot())
}
