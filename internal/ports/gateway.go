package ports

import (
	"context"
	"time"

	"github.com/merkato/storefront/internal/domain"
)

// AccountIdentity is the gateway's answer to a successful login or
// registration: the account user plus whatever cart the account has saved
// server-side (empty for fresh registrations).
type AccountIdentity struct {
	User      domain.User
	SavedCart domain.Cart
}

// RegisterParams carries the pre-validated registration fields.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

// PlaceOrderParams is the order submission payload. Totals are computed by
// the checkout workflow; the gateway only assigns identity and timing.
type PlaceOrderParams struct {
	Items       []domain.LineItem
	Shipping    domain.ShippingInfo
	OrderNotes  string
	Subtotal    float64
	ShippingFee float64
	Tax         float64
	Total       float64
	PlacedAt    time.Time
}

// AccountGateway is the mock-backend boundary. Every method is shaped as
// request -> result so each can be replaced by a real HTTP call without
// changing any store contract.
type AccountGateway interface {
	Login(ctx context.Context, email, password string) (AccountIdentity, error)
	Register(ctx context.Context, params RegisterParams) (AccountIdentity, error)
	FetchSavedCart(ctx context.Context, userID string) (domain.Cart, error)
	SaveCart(ctx context.Context, userID string, cart domain.Cart) error
	PlaceOrder(ctx context.Context, params PlaceOrderParams) (domain.Order, error)
}
