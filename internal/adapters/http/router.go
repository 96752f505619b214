package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/merkato/storefront/internal/application"
	"github.com/merkato/storefront/internal/ports"
)

// Handler is the HTTP adapter entrypoint for the storefront stores.
// Only application and port dependencies live here, keeping the adapter
// boundary clean.
type Handler struct {
	cart     *application.CartStore
	auth     *application.AuthStore
	checkout *application.CheckoutStore
	toasts   *application.ToastCenter
	catalog  ports.ProductCatalog
}

// NewHandler binds the HTTP handler to the application stores.
func NewHandler(
	cart *application.CartStore,
	auth *application.AuthStore,
	checkout *application.CheckoutStore,
	toasts *application.ToastCenter,
	catalog ports.ProductCatalog,
) *Handler {
	return &Handler{
		cart:     cart,
		auth:     auth,
		checkout: checkout,
		toasts:   toasts,
		catalog:  catalog,
	}
}

// NewRouter registers the storefront routes and middleware stack.
func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.healthz)
	r.Get("/readyz", handler.readyz)

	r.Route("/store/v1", func(r chi.Router) {
		r.Get("/products", handler.listProducts)
		r.Get("/products/{product_id}", handler.getProduct)
		r.Get("/categories", handler.listCategories)

		r.Get("/cart", handler.getCart)
		r.Post("/cart/items", handler.addCartItem)
		r.Put("/cart/items/{product_id}", handler.updateCartItem)
		r.Delete("/cart/items/{product_id}", handler.removeCartItem)
		r.Delete("/cart", handler.clearCart)

		r.Post("/auth/login", handler.login)
		r.Post("/auth/register", handler.register)
		r.Post("/auth/logout", handler.logout)
		r.Get("/auth/session", handler.session)
		r.Patch("/auth/profile", handler.updateProfile)
		r.Post("/auth/sync-notice/dismiss", handler.dismissSyncNotice)

		r.Get("/checkout", handler.getCheckout)
		r.Patch("/checkout/shipping", handler.updateShipping)
		r.Patch("/checkout/payment", handler.updatePayment)
		r.Patch("/checkout/billing", handler.updateBilling)
		r.Put("/checkout/notes", handler.setOrderNotes)
		r.Post("/checkout/advance", handler.advanceCheckout)
		r.Post("/checkout/back", handler.regressCheckout)
		r.Post("/checkout/order", handler.placeOrder)
		r.Post("/checkout/reset", handler.resetCheckout)

		r.Get("/toasts", handler.listToasts)
		r.Delete("/toasts/{toast_id}", handler.dismissToast)
		r.Delete("/toasts", handler.clearToasts)
	})

	return r
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusOK, "ok")
}

func (h *Handler) readyz(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusOK, "ready")
}
