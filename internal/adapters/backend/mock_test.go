package backend

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/merkato/storefront/internal/adapters/security"
	"github.com/merkato/storefront/internal/domain"
	"github.com/merkato/storefront/internal/ports"
)

func newTestGateway(t *testing.T) *MockGateway {
	t.Helper()
	g, err := NewMockGateway(MockGatewayDependencies{
		Latency: Latency{},
		Hasher:  security.NewBcryptHasher(4),
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("init gateway: %v", err)
	}
	return g
}

func TestDemoLogin(t *testing.T) {
	t.Parallel()
	g := newTestGateway(t)

	identity, err := g.Login(context.Background(), DemoEmail, "password123")
	if err != nil {
		t.Fatalf("demo login failed: %v", err)
	}
	if identity.User.ID != "usr_123" || identity.User.Name != "Demo User" {
		t.Fatalf("unexpected demo identity %+v", identity.User)
	}
	if identity.SavedCart.IsEmpty() {
		t.Fatalf("demo account should carry a saved cart")
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	t.Parallel()
	g := newTestGateway(t)

	if _, err := g.Login(context.Background(), DemoEmail, "nope"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected credentials error, got %v", err)
	}
	if _, err := g.Login(context.Background(), "nobody@merkato.com", "password123"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email must fail identically, got %v", err)
	}
}

func TestRegisterMintsAccount(t *testing.T) {
	t.Parallel()
	g := newTestGateway(t)
	ctx := context.Background()

	identity, err := g.Register(ctx, ports.RegisterParams{
		Name: "Jane Doe", Email: "Jane@Example.com", Password: "123456",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if !strings.HasPrefix(identity.User.ID, "usr_") {
		t.Fatalf("expected usr_ id prefix, got %q", identity.User.ID)
	}
	if identity.User.Email != "jane@example.com" {
		t.Fatalf("expected normalized email, got %q", identity.User.Email)
	}
	if !identity.SavedCart.IsEmpty() {
		t.Fatalf("fresh account must have no saved cart")
	}

	if _, err := g.Login(ctx, "jane@example.com", "123456"); err != nil {
		t.Fatalf("login after register failed: %v", err)
	}
	if _, err := g.Register(ctx, ports.RegisterParams{Name: "Dup", Email: "jane@example.com", Password: "123456"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("duplicate email must be rejected, got %v", err)
	}
}

func TestSaveAndFetchCartRoundTrip(t *testing.T) {
	t.Parallel()
	g := newTestGateway(t)
	ctx := context.Background()

	cart := domain.Cart{Items: []domain.LineItem{{ProductID: "p1", UnitPrice: 10, Quantity: 2, StockCeiling: 5}}}
	cart.Recompute()
	if err := g.SaveCart(ctx, "usr_123", cart); err != nil {
		t.Fatalf("save cart failed: %v", err)
	}

	fetched, err := g.FetchSavedCart(ctx, "usr_123")
	if err != nil {
		t.Fatalf("fetch cart failed: %v", err)
	}
	if fetched.TotalQuantity != 2 {
		t.Fatalf("expected saved cart back, got %+v", fetched)
	}

	if _, err := g.FetchSavedCart(ctx, "usr_unknown"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown account must not have a cart, got %v", err)
	}
}

func TestPlaceOrderAssignsIDAndDelivery(t *testing.T) {
	t.Parallel()
	g := newTestGateway(t)

	placedAt := time.Date(2026, time.August, 30, 10, 0, 0, 0, time.UTC)
	order, err := g.PlaceOrder(context.Background(), ports.PlaceOrderParams{
		Items:    []domain.LineItem{{ProductID: "p1", UnitPrice: 10, Quantity: 1, StockCeiling: 5}},
		Subtotal: 10, ShippingFee: 5.99, Tax: 0.8, Total: 16.79,
		PlacedAt: placedAt,
	})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if !strings.HasPrefix(order.OrderID, "ORD-") {
		t.Fatalf("expected ORD- prefix, got %q", order.OrderID)
	}
	if !order.EstimatedDelivery.Equal(placedAt.AddDate(0, 0, 5)) {
		t.Fatalf("expected +5 day delivery, got %v", order.EstimatedDelivery)
	}
}

func TestPlaceOrderRejectsEmptyItemList(t *testing.T) {
	t.Parallel()
	g := newTestGateway(t)

	if _, err := g.PlaceOrder(context.Background(), ports.PlaceOrderParams{}); !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected empty cart rejection, got %v", err)
	}
}

func TestLatencyHonorsContextCancellation(t *testing.T) {
	t.Parallel()

	g, err := NewMockGateway(MockGatewayDependencies{
		Latency: Latency{Auth: time.Minute},
		Hasher:  security.NewBcryptHasher(4),
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("init gateway: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := g.Login(ctx, DemoEmail, "password123"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
