package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/merkato/storefront/internal/domain"
)

type orderNotesRequest struct {
	OrderNotes string `json:"order_notes"`
}

func (h *Handler) getCheckout(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, h.checkout.View())
}

func (h *Handler) updateShipping(w http.ResponseWriter, r *http.Request) {
	var patch domain.ShippingPatch
	if err := decodeBody(r, &patch); err != nil {
		writeValidationError(r.Context(), w, "update_shipping", err)
		return
	}
	h.checkout.UpdateShipping(r.Context(), patch)
	writeSuccess(w, http.StatusOK, h.checkout.View())
}

func (h *Handler) updatePayment(w http.ResponseWriter, r *http.Request) {
	var patch domain.PaymentPatch
	if err := decodeBody(r, &patch); err != nil {
		writeValidationError(r.Context(), w, "update_payment", err)
		return
	}
	h.checkout.UpdatePayment(r.Context(), patch)
	writeSuccess(w, http.StatusOK, h.checkout.View())
}

func (h *Handler) updateBilling(w http.ResponseWriter, r *http.Request) {
	var patch domain.BillingPatch
	if err := decodeBody(r, &patch); err != nil {
		writeValidationError(r.Context(), w, "update_billing", err)
		return
	}
	h.checkout.UpdateBilling(r.Context(), patch)
	writeSuccess(w, http.StatusOK, h.checkout.View())
}

func (h *Handler) setOrderNotes(w http.ResponseWriter, r *http.Request) {
	var req orderNotesRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "set_order_notes", err)
		return
	}
	h.checkout.SetOrderNotes(r.Context(), req.OrderNotes)
	writeSuccess(w, http.StatusOK, h.checkout.View())
}

func (h *Handler) advanceCheckout(w http.ResponseWriter, r *http.Request) {
	if err := h.checkout.Advance(r.Context()); err != nil {
		writeMappedError(r.Context(), w, "advance_checkout", err)
		return
	}
	writeSuccess(w, http.StatusOK, h.checkout.View())
}

func (h *Handler) regressCheckout(w http.ResponseWriter, r *http.Request) {
	h.checkout.Regress(r.Context())
	writeSuccess(w, http.StatusOK, h.checkout.View())
}

// placeOrder submits the order and, on success, empties the cart. The order
// confirmation carries everything the receipt page renders, so clearing the
// cart here cannot lose information.
func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.checkout.SubmitOrder(r.Context())
	if err != nil {
		writeMappedError(r.Context(), w, "place_order", err)
		return
	}

	h.cart.Clear(r.Context())
	writeSuccess(w, http.StatusCreated, order)
}

func (h *Handler) resetCheckout(w http.ResponseWriter, r *http.Request) {
	h.checkout.Reset(r.Context())
	writeSuccess(w, http.StatusOK, h.checkout.View())
}

func (h *Handler) listToasts(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, map[string]any{"toasts": h.toasts.List()})
}

func (h *Handler) dismissToast(w http.ResponseWriter, r *http.Request) {
	h.toasts.Dismiss(chi.URLParam(r, "toast_id"))
	writeMessage(w, http.StatusOK, "dismissed")
}

func (h *Handler) clearToasts(w http.ResponseWriter, r *http.Request) {
	h.toasts.Clear()
	writeMessage(w, http.StatusOK, "cleared")
}
