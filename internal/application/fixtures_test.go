package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/merkato/storefront/internal/adapters/storage"
	"github.com/merkato/storefront/internal/domain"
	"github.com/merkato/storefront/internal/ports"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeGateway is a scriptable account backend. Closing gate releases calls
// held by block, which lets tests pin an operation in its pending phase.
type fakeGateway struct {
	mu sync.Mutex

	identity ports.AccountIdentity
	loginErr error

	savedCarts map[string]domain.Cart
	saveCalls  int

	placeErr error

	blockLogin bool
	blockPlace bool
	entered    chan struct{}
	gate       chan struct{}
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		savedCarts: map[string]domain.Cart{},
		entered:    make(chan struct{}, 8),
		gate:       make(chan struct{}),
	}
}

func (g *fakeGateway) hold(blocked bool) {
	if blocked {
		g.entered <- struct{}{}
		<-g.gate
	}
}

func (g *fakeGateway) Login(_ context.Context, email, password string) (ports.AccountIdentity, error) {
	g.hold(g.blockLogin)
	if g.loginErr != nil {
		return ports.AccountIdentity{}, g.loginErr
	}
	return g.identity, nil
}

func (g *fakeGateway) Register(_ context.Context, params ports.RegisterParams) (ports.AccountIdentity, error) {
	return ports.AccountIdentity{
		User: domain.User{
			ID:    "usr_new",
			Name:  params.Name,
			Email: params.Email,
			Role:  domain.RoleCustomer,
		},
	}, nil
}

func (g *fakeGateway) FetchSavedCart(_ context.Context, userID string) (domain.Cart, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.savedCarts[userID].Clone(), nil
}

func (g *fakeGateway) SaveCart(_ context.Context, userID string, cart domain.Cart) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.savedCarts[userID] = cart.Clone()
	g.saveCalls++
	return nil
}

func (g *fakeGateway) PlaceOrder(_ context.Context, params ports.PlaceOrderParams) (domain.Order, error) {
	g.hold(g.blockPlace)
	if g.placeErr != nil {
		return domain.Order{}, g.placeErr
	}
	return domain.Order{
		OrderID:           fmt.Sprintf("ORD-%d", params.PlacedAt.UnixMilli()),
		Items:             params.Items,
		Shipping:          params.Shipping,
		OrderNotes:        params.OrderNotes,
		Subtotal:          params.Subtotal,
		ShippingFee:       params.ShippingFee,
		Tax:               params.Tax,
		Total:             params.Total,
		PlacedAt:          params.PlacedAt,
		EstimatedDelivery: params.PlacedAt.Add(domain.EstimatedDeliveryDays * 24 * time.Hour),
	}, nil
}

// fakeSigner issues transparent tokens so tests control validity directly.
type fakeSigner struct {
	parseErr error
}

func (s *fakeSigner) Sign(claims ports.AuthClaims) (string, error) {
	return "token-" + claims.UserID, nil
}

func (s *fakeSigner) ParseAndValidate(raw string) (ports.AuthClaims, error) {
	if s.parseErr != nil {
		return ports.AuthClaims{}, s.parseErr
	}
	return ports.AuthClaims{UserID: raw}, nil
}

type storeFixture struct {
	snapshots *storage.MemoryStore
	toasts    *ToastCenter
	cart      *CartStore
	gateway   *fakeGateway
	signer    *fakeSigner
	auth      *AuthStore
	checkout  *CheckoutStore
}

func newStoreFixture(ctx context.Context) *storeFixture {
	f := &storeFixture{
		snapshots: storage.NewMemoryStore(),
		toasts:    NewToastCenter(),
		gateway:   newFakeGateway(),
		signer:    &fakeSigner{},
	}
	f.cart = NewCartStore(ctx, f.snapshots, f.toasts, testLogger())
	f.auth = NewAuthStore(AuthDependencies{
		Config: AuthConfig{
			TokenTTL:      time.Hour,
			SyncNoticeTTL: 25 * time.Millisecond,
		},
		Cart:      f.cart,
		Gateway:   f.gateway,
		Signer:    f.signer,
		Snapshots: f.snapshots,
		Notifier:  f.toasts,
		Logger:    testLogger(),
	})
	f.checkout = NewCheckoutStore(ctx, CheckoutDependencies{
		Cart:      f.cart,
		Gateway:   f.gateway,
		Snapshots: f.snapshots,
		Notifier:  f.toasts,
		Logger:    testLogger(),
	})
	return f
}

func testItem(id string, price float64, ceiling int) domain.LineItem {
	return domain.LineItem{
		ProductID:    id,
		Name:         "product " + id,
		UnitPrice:    price,
		StockCeiling: ceiling,
	}
}

func validShipping() domain.ShippingInfo {
	return domain.ShippingInfo{
		FirstName: "Jane", LastName: "Doe",
		Email: "jane@example.com", Phone: "5551234567",
		Address: "1 Main St", City: "Springfield", State: "IL", ZipCode: "62704",
		Country: "United States", ShippingMethod: domain.ShippingStandard,
	}
}

func validPayment() domain.PaymentInfo {
	return domain.PaymentInfo{
		Method:     domain.PaymentCreditCard,
		CardNumber: "4111 1111 1111 1111",
		CardName:   "Jane Doe",
		ExpiryDate: "12/99",
		CVV:        "123",
	}
}
