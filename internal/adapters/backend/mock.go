// Package backend implements the account gateway against an in-process mock
// server. Every call is request/response shaped and pays a configurable
// artificial latency, so swapping in a real HTTP backend changes nothing
// above the port.
package backend

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/merkato/storefront/internal/domain"
	"github.com/merkato/storefront/internal/ports"
)

// Demo credentials accepted by the mock login endpoint.
const (
	DemoEmail    = "demo@merkato.com"
	demoPassword = "password123"
	demoUserID   = "usr_123"
)

// Latency simulates network round-trips per operation class.
type Latency struct {
	Auth  time.Duration
	Cart  time.Duration
	Order time.Duration
}

// DefaultLatency mirrors the delays the storefront has always simulated.
func DefaultLatency() Latency {
	return Latency{
		Auth:  time.Second,
		Cart:  500 * time.Millisecond,
		Order: 1500 * time.Millisecond,
	}
}

type account struct {
	user         domain.User
	passwordHash string
	savedCart    domain.Cart
}

// MockGateway is the in-memory account backend. Accounts registered at
// runtime live until the process exits; the demo account is always present.
type MockGateway struct {
	mu       sync.Mutex
	accounts map[string]*account // keyed by lowercase email
	byID     map[string]*account

	latency Latency
	hasher  ports.PasswordHasher
	logger  *slog.Logger
	nowFn   func() time.Time
}

// MockGatewayDependencies wires the mock gateway.
type MockGatewayDependencies struct {
	Latency Latency
	Hasher  ports.PasswordHasher
	Logger  *slog.Logger
}

// NewMockGateway seeds the demo account, including its server-saved cart.
func NewMockGateway(deps MockGatewayDependencies) (*MockGateway, error) {
	g := &MockGateway{
		accounts: map[string]*account{},
		byID:     map[string]*account{},
		latency:  deps.Latency,
		hasher:   deps.Hasher,
		logger:   deps.Logger.With("module", "backend", "layer", "adapter"),
		nowFn:    func() time.Time { return time.Now().UTC() },
	}

	hash, err := deps.Hasher.Hash(demoPassword)
	if err != nil {
		return nil, fmt.Errorf("seed demo account: %w", err)
	}
	demo := &account{
		user: domain.User{
			ID:        demoUserID,
			Name:      "Demo User",
			Email:     DemoEmail,
			Role:      domain.RoleCustomer,
			CreatedAt: g.nowFn(),
		},
		passwordHash: hash,
		savedCart:    demoSavedCart(),
	}
	g.accounts[DemoEmail] = demo
	g.byID[demo.user.ID] = demo
	return g, nil
}

// demoSavedCart is what the demo account has "previously saved" server-side,
// so logging in exercises the guest/account merge.
func demoSavedCart() domain.Cart {
	cart := domain.Cart{Items: []domain.LineItem{
		{
			ProductID:    "1",
			Name:         "Wireless Bluetooth Headphones",
			UnitPrice:    99.99,
			Image:        "https://images.unsplash.com/photo-1518441902113-fdf07c19c9e0?w=800&q=80",
			Quantity:     1,
			StockCeiling: 50,
		},
		{
			ProductID:    "5",
			Name:         "JavaScript: The Definitive Guide",
			UnitPrice:    49.99,
			Image:        "https://images.unsplash.com/photo-1512820790803-83ca734da794?w=800&q=80",
			Quantity:     1,
			StockCeiling: 40,
		},
	}}
	cart.Recompute()
	return cart
}

func (g *MockGateway) Login(ctx context.Context, email, password string) (ports.AccountIdentity, error) {
	if err := g.simulate(ctx, g.latency.Auth); err != nil {
		return ports.AccountIdentity{}, err
	}

	g.mu.Lock()
	acct, ok := g.accounts[strings.ToLower(strings.TrimSpace(email))]
	g.mu.Unlock()
	if !ok {
		return ports.AccountIdentity{}, fmt.Errorf("%w: invalid email or password", domain.ErrInvalidCredentials)
	}
	if err := g.hasher.Compare(acct.passwordHash, password); err != nil {
		return ports.AccountIdentity{}, fmt.Errorf("%w: invalid email or password", domain.ErrInvalidCredentials)
	}

	g.mu.Lock()
	identity := ports.AccountIdentity{User: acct.user, SavedCart: acct.savedCart.Clone()}
	g.mu.Unlock()

	g.logger.InfoContext(ctx, "login accepted", "operation", "login", "outcome", "success", "user_id", identity.User.ID)
	return identity, nil
}

func (g *MockGateway) Register(ctx context.Context, params ports.RegisterParams) (ports.AccountIdentity, error) {
	if err := g.simulate(ctx, g.latency.Auth); err != nil {
		return ports.AccountIdentity{}, err
	}

	email := strings.ToLower(strings.TrimSpace(params.Email))

	hash, err := g.hasher.Hash(params.Password)
	if err != nil {
		return ports.AccountIdentity{}, fmt.Errorf("hash password: %w", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.accounts[email]; exists {
		return ports.AccountIdentity{}, fmt.Errorf("%w: an account with this email already exists", domain.ErrInvalidInput)
	}

	acct := &account{
		user: domain.User{
			ID:        "usr_" + uuid.NewString(),
			Name:      params.Name,
			Email:     email,
			Role:      domain.RoleCustomer,
			CreatedAt: g.nowFn(),
		},
		passwordHash: hash,
	}
	g.accounts[email] = acct
	g.byID[acct.user.ID] = acct

	g.logger.InfoContext(ctx, "account registered", "operation", "register", "outcome", "success", "user_id", acct.user.ID)
	return ports.AccountIdentity{User: acct.user}, nil
}

func (g *MockGateway) FetchSavedCart(ctx context.Context, userID string) (domain.Cart, error) {
	if err := g.simulate(ctx, g.latency.Cart); err != nil {
		return domain.Cart{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	acct, ok := g.byID[userID]
	if !ok {
		return domain.Cart{}, fmt.Errorf("%w: unknown account", domain.ErrNotFound)
	}
	return acct.savedCart.Clone(), nil
}

func (g *MockGateway) SaveCart(ctx context.Context, userID string, cart domain.Cart) error {
	if err := g.simulate(ctx, g.latency.Cart); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	acct, ok := g.byID[userID]
	if !ok {
		return fmt.Errorf("%w: unknown account", domain.ErrNotFound)
	}
	acct.savedCart = cart.Clone()
	return nil
}

func (g *MockGateway) PlaceOrder(ctx context.Context, params ports.PlaceOrderParams) (domain.Order, error) {
	if err := g.simulate(ctx, g.latency.Order); err != nil {
		return domain.Order{}, err
	}
	if len(params.Items) == 0 {
		return domain.Order{}, domain.ErrEmptyCart
	}

	placedAt := params.PlacedAt
	if placedAt.IsZero() {
		placedAt = g.nowFn()
	}

	order := domain.Order{
		OrderID:           fmt.Sprintf("ORD-%d", placedAt.UnixMilli()),
		Items:             params.Items,
		Shipping:          params.Shipping,
		OrderNotes:        params.OrderNotes,
		Subtotal:          params.Subtotal,
		ShippingFee:       params.ShippingFee,
		Tax:               params.Tax,
		Total:             params.Total,
		PlacedAt:          placedAt,
		EstimatedDelivery: placedAt.Add(domain.EstimatedDeliveryDays * 24 * time.Hour),
	}

	g.logger.InfoContext(ctx, "order accepted", "operation", "place_order", "outcome", "success", "order_id", order.OrderID)
	return order, nil
}

// simulate sleeps for the configured latency, honoring context cancellation.
func (g *MockGateway) simulate(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
