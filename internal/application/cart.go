package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/merkato/storefront/internal/domain"
	"github.com/merkato/storefront/internal/ports"
)

// CartStore owns the device cart: one cart per device profile, surviving the
// session via snapshot persistence, mutated only through the operations
// below. All mutations are copy-modify-replace under the lock, so readers
// always observe a consistent cart with totals matching the item list.
type CartStore struct {
	mu        sync.Mutex
	cart      domain.Cart
	snapshots ports.SnapshotStore
	notifier  ports.Notifier
	logger    *slog.Logger

	// syncHook pushes the cart to the account backend after each mutation
	// while a user is authenticated. Set once at wiring time.
	syncHook func(ctx context.Context, cart domain.Cart)
}

// NewCartStore restores the cart from its device snapshot, treating the
// snapshot as untrusted input: parse or shape failures fall back to an
// empty cart rather than propagating.
func NewCartStore(ctx context.Context, snapshots ports.SnapshotStore, notifier ports.Notifier, logger *slog.Logger) *CartStore {
	s := &CartStore{
		snapshots: snapshots,
		notifier:  notifier,
		logger:    logger.With("module", "cart", "layer", "application"),
	}

	raw, ok, err := snapshots.Load(ctx, ports.SnapshotKeyCart)
	if err != nil {
		s.logger.WarnContext(ctx, "cart snapshot load failed", "operation", "restore", "outcome", "failure", "error", err.Error())
		return s
	}
	if !ok {
		return s
	}
	var saved domain.Cart
	if err := json.Unmarshal(raw, &saved); err != nil {
		s.logger.WarnContext(ctx, "cart snapshot unreadable, starting empty", "operation", "restore", "outcome", "failure", "error", err.Error())
		return s
	}
	s.cart = domain.SanitizeCart(saved)
	return s
}

// SetSyncHook installs the authenticated save-to-server callback. The hook
// runs outside the store lock and must tolerate being fire-and-forget.
func (s *CartStore) SetSyncHook(hook func(ctx context.Context, cart domain.Cart)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncHook = hook
}

// AddItem merges qty units of item into the cart, clamped to the item's
// stock ceiling. Misuse never errors; the store degrades to clamp-or-noop.
func (s *CartStore) AddItem(ctx context.Context, item domain.LineItem, qty int) {
	s.mu.Lock()
	next := s.cart.Clone()
	next.AddItem(item, qty)
	s.cart = next
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.notifier.Toast(ports.ToastSuccess, fmt.Sprintf("%s added to cart", item.Name))
	s.afterChange(ctx, next)
}

// RemoveItem deletes the line item; removing an absent id is a silent no-op.
func (s *CartStore) RemoveItem(ctx context.Context, productID string) {
	s.mu.Lock()
	next := s.cart.Clone()
	removed := next.RemoveItem(productID)
	if removed {
		s.cart = next
		s.persistLocked(ctx)
	}
	s.mu.Unlock()

	if removed {
		s.notifier.Toast(ports.ToastInfo, "Item removed from cart")
		s.afterChange(ctx, next)
	}
}

// UpdateQuantity sets the quantity clamped to [1, stock ceiling]; absent ids
// are a no-op.
func (s *CartStore) UpdateQuantity(ctx context.Context, productID string, qty int) {
	s.mu.Lock()
	next := s.cart.Clone()
	updated := next.UpdateQuantity(productID, qty)
	if updated {
		s.cart = next
		s.persistLocked(ctx)
	}
	s.mu.Unlock()

	if updated {
		s.afterChange(ctx, next)
	}
}

// Clear empties the cart and deletes the persisted snapshot key entirely so
// a later restore cannot resurrect stale data.
func (s *CartStore) Clear(ctx context.Context) {
	s.mu.Lock()
	s.cart = domain.Cart{}
	if err := s.snapshots.Delete(ctx, ports.SnapshotKeyCart); err != nil {
		s.logger.WarnContext(ctx, "cart snapshot delete failed", "operation", "clear", "outcome", "failure", "error", err.Error())
	}
	s.mu.Unlock()

	s.notifier.Toast(ports.ToastInfo, "Cart cleared")
	s.afterChange(ctx, domain.Cart{})
}

// SetCart replaces the cart wholesale; used to install a merged cart after
// login or saved-cart arrival.
func (s *CartStore) SetCart(ctx context.Context, cart domain.Cart) {
	sanitized := domain.SanitizeCart(cart)
	s.mu.Lock()
	s.cart = sanitized
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.afterChange(ctx, sanitized)
}

// Snapshot returns a copy of the current cart.
func (s *CartStore) Snapshot() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

func (s *CartStore) TotalQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.TotalQuantity
}

func (s *CartStore) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Subtotal
}

func (s *CartStore) Contains(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Contains(productID)
}

func (s *CartStore) persistLocked(ctx context.Context) {
	raw, err := json.Marshal(s.cart)
	if err != nil {
		s.logger.ErrorContext(ctx, "cart snapshot marshal failed", "operation", "persist", "outcome", "failure", "error", err.Error())
		return
	}
	if err := s.snapshots.Save(ctx, ports.SnapshotKeyCart, raw); err != nil {
		s.logger.WarnContext(ctx, "cart snapshot save failed", "operation", "persist", "outcome", "failure", "error", err.Error())
	}
}

func (s *CartStore) afterChange(ctx context.Context, cart domain.Cart) {
	s.mu.Lock()
	hook := s.syncHook
	s.mu.Unlock()
	if hook != nil {
		hook(ctx, cart)
	}
}
