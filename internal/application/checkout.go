package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/merkato/storefront/internal/domain"
	"github.com/merkato/storefront/internal/ports"
)

// CartReader is the slice of the cart store the checkout workflow consumes.
// The cart is read at call time, never cached, so the empty-cart guard and
// order totals always reflect the live cart.
type CartReader interface {
	Snapshot() domain.Cart
}

// checkoutSnapshot is the persisted shape of merkato_checkout. Field errors,
// the submit phase and the placed order id are transient and never persist.
type checkoutSnapshot struct {
	Shipping    domain.ShippingInfo   `json:"shippingInfo"`
	Payment     domain.PaymentInfo    `json:"paymentInfo"`
	Billing     domain.BillingAddress `json:"billingAddress"`
	OrderNotes  string                `json:"orderNotes"`
	CurrentStep int                   `json:"currentStep"`
}

// CheckoutView is the read-only checkout state for the UI.
type CheckoutView struct {
	Shipping        domain.ShippingInfo   `json:"shipping_info"`
	Payment         domain.PaymentInfo    `json:"payment_info"`
	Billing         domain.BillingAddress `json:"billing_address"`
	OrderNotes      string                `json:"order_notes,omitempty"`
	CurrentStep     int                   `json:"current_step"`
	FieldErrors     domain.FieldErrors    `json:"field_errors,omitempty"`
	IsSubmitting    bool                  `json:"is_submitting"`
	PlacedOrderID   string                `json:"placed_order_id,omitempty"`
	Subtotal        float64               `json:"subtotal"`
	ShippingFee     float64               `json:"shipping_fee"`
	Tax             float64               `json:"tax"`
	Total           float64               `json:"total"`
	IsShippingValid bool                  `json:"is_shipping_valid"`
	IsPaymentValid  bool                  `json:"is_payment_valid"`
}

// CheckoutStore drives the three-step checkout state machine:
// shipping -> payment -> review, with per-step validation gating on advance
// and unconditional regression.
type CheckoutStore struct {
	mu          sync.Mutex
	shipping    domain.ShippingInfo
	payment     domain.PaymentInfo
	billing     domain.BillingAddress
	orderNotes  string
	currentStep int
	fieldErrors domain.FieldErrors
	phase       domain.Phase
	placedID    string

	cart      CartReader
	gateway   ports.AccountGateway
	snapshots ports.SnapshotStore
	notifier  ports.Notifier
	logger    *slog.Logger
	nowFn     func() time.Time
}

// CheckoutDependencies wires the checkout store.
type CheckoutDependencies struct {
	Cart      CartReader
	Gateway   ports.AccountGateway
	Snapshots ports.SnapshotStore
	Notifier  ports.Notifier
	Logger    *slog.Logger
}

// NewCheckoutStore restores checkout progress from its device snapshot,
// minus the transient fields. Unreadable snapshots fall back to the
// documented initial state.
func NewCheckoutStore(ctx context.Context, deps CheckoutDependencies) *CheckoutStore {
	s := &CheckoutStore{
		cart:      deps.Cart,
		gateway:   deps.Gateway,
		snapshots: deps.Snapshots,
		notifier:  deps.Notifier,
		logger:    deps.Logger.With("module", "checkout", "layer", "application"),
		nowFn:     func() time.Time { return time.Now().UTC() },
	}
	s.resetLocked()

	raw, ok, err := deps.Snapshots.Load(ctx, ports.SnapshotKeyCheckout)
	if err != nil || !ok {
		return s
	}
	var saved checkoutSnapshot
	if err := json.Unmarshal(raw, &saved); err != nil {
		s.logger.WarnContext(ctx, "checkout snapshot unreadable, starting fresh", "operation", "restore", "outcome", "failure", "error", err.Error())
		return s
	}
	s.shipping = saved.Shipping
	s.payment = saved.Payment
	s.billing = saved.Billing
	s.orderNotes = saved.OrderNotes
	if saved.CurrentStep >= domain.StepShipping && saved.CurrentStep <= domain.StepReview {
		s.currentStep = saved.CurrentStep
	}
	if s.shipping.ShippingMethod == "" {
		s.shipping.ShippingMethod = domain.ShippingStandard
	}
	if s.payment.Method == "" {
		s.payment.Method = domain.PaymentCreditCard
	}
	return s
}

// View returns the current checkout state plus derived pricing, computed
// from the live cart and shipping selection.
func (s *CheckoutStore) View() CheckoutView {
	cart := s.cart.Snapshot()

	s.mu.Lock()
	defer s.mu.Unlock()
	view := CheckoutView{
		Shipping:      s.shipping,
		Payment:       s.payment,
		Billing:       s.billing,
		OrderNotes:    s.orderNotes,
		CurrentStep:   s.currentStep,
		IsSubmitting:  s.phase.IsLoading(),
		PlacedOrderID: s.placedID,
		Subtotal:      cart.Subtotal,
		ShippingFee:   domain.ShippingFee(s.shipping.ShippingMethod),
		Tax:           domain.Tax(cart.Subtotal),
		Total:         domain.OrderTotal(cart.Subtotal, s.shipping.ShippingMethod),
	}
	view.IsShippingValid = len(domain.ValidateShipping(s.shipping)) == 0
	view.IsPaymentValid = len(domain.ValidatePayment(s.payment, s.billing, s.nowFn())) == 0
	if len(s.fieldErrors) > 0 {
		view.FieldErrors = domain.FieldErrors{}
		view.FieldErrors.Merge(s.fieldErrors)
	}
	return view
}

// UpdateShipping shallow-merges the patch and clears the touched fields'
// errors, so a message disappears as soon as the user edits that field.
func (s *CheckoutStore) UpdateShipping(ctx context.Context, patch domain.ShippingPatch) {
	s.mu.Lock()
	var touched []string
	s.shipping, touched = patch.Apply(s.shipping)
	s.clearFieldErrorsLocked(touched)
	s.persistLocked(ctx)
	s.mu.Unlock()
}

func (s *CheckoutStore) UpdatePayment(ctx context.Context, patch domain.PaymentPatch) {
	s.mu.Lock()
	var touched []string
	s.payment, touched = patch.Apply(s.payment)
	s.clearFieldErrorsLocked(touched)
	s.persistLocked(ctx)
	s.mu.Unlock()
}

func (s *CheckoutStore) UpdateBilling(ctx context.Context, patch domain.BillingPatch) {
	s.mu.Lock()
	var touched []string
	s.billing, touched = patch.Apply(s.billing)
	s.clearFieldErrorsLocked(touched)
	s.persistLocked(ctx)
	s.mu.Unlock()
}

func (s *CheckoutStore) SetOrderNotes(ctx context.Context, notes string) {
	s.mu.Lock()
	s.orderNotes = notes
	s.persistLocked(ctx)
	s.mu.Unlock()
}

// Advance moves to the next step only when the current step's validator
// passes. On failure the field-error map is populated, the step does not
// change, and the errors are returned for inline display.
func (s *CheckoutStore) Advance(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.currentStep {
	case domain.StepShipping:
		if errs := domain.ValidateShipping(s.shipping); len(errs) > 0 {
			s.fieldErrors = errs
			return errs
		}
	case domain.StepPayment:
		if errs := domain.ValidatePayment(s.payment, s.billing, s.nowFn()); len(errs) > 0 {
			s.fieldErrors = errs
			return errs
		}
	default:
		return fmt.Errorf("%w: already at review step", domain.ErrInvalidInput)
	}

	s.currentStep++
	s.fieldErrors = domain.FieldErrors{}
	s.persistLocked(ctx)
	return nil
}

// Regress steps backward unconditionally, flooring at the shipping step.
func (s *CheckoutStore) Regress(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentStep > domain.StepShipping {
		s.currentStep--
		s.persistLocked(ctx)
	}
}

// SubmitOrder places the order from the review step. The empty-cart guard
// reads the live cart at call time. On success the caller owns clearing the
// cart, so a receipt can be shown before the cart empties.
func (s *CheckoutStore) SubmitOrder(ctx context.Context) (domain.Order, error) {
	s.mu.Lock()
	if s.phase.IsLoading() {
		s.mu.Unlock()
		return domain.Order{}, domain.ErrOperationInFlight
	}
	if s.currentStep != domain.StepReview {
		s.mu.Unlock()
		return domain.Order{}, fmt.Errorf("%w: order can only be placed from the review step", domain.ErrInvalidInput)
	}
	s.phase = domain.PhasePending
	s.fieldErrors = domain.FieldErrors{}
	shipping := s.shipping
	notes := s.orderNotes
	s.mu.Unlock()

	cart := s.cart.Snapshot()
	if cart.IsEmpty() {
		s.mu.Lock()
		s.phase = domain.PhaseFailed
		s.fieldErrors = domain.FieldErrors{"submit": "Cart is empty"}
		s.mu.Unlock()
		s.notifier.Toast(ports.ToastError, "Your cart is empty")
		return domain.Order{}, domain.ErrEmptyCart
	}

	now := s.nowFn()
	order, err := s.gateway.PlaceOrder(ctx, ports.PlaceOrderParams{
		Items:       cart.Items,
		Shipping:    shipping,
		OrderNotes:  notes,
		Subtotal:    cart.Subtotal,
		ShippingFee: domain.ShippingFee(shipping.ShippingMethod),
		Tax:         domain.Tax(cart.Subtotal),
		Total:       domain.OrderTotal(cart.Subtotal, shipping.ShippingMethod),
		PlacedAt:    now,
	})
	if err != nil {
		s.mu.Lock()
		s.phase = domain.PhaseFailed
		s.fieldErrors = domain.FieldErrors{"submit": "Failed to place order"}
		s.mu.Unlock()
		s.notifier.Toast(ports.ToastError, "Failed to place order")
		s.logger.WarnContext(ctx, "order submission failed", "operation", "submit_order", "outcome", "failure", "error", err.Error())
		return domain.Order{}, err
	}

	s.mu.Lock()
	s.phase = domain.PhaseSucceeded
	s.placedID = order.OrderID
	s.mu.Unlock()

	s.notifier.Toast(ports.ToastSuccess, "Order "+order.OrderID+" placed successfully!")
	s.logger.InfoContext(ctx, "order placed", "operation", "submit_order", "outcome", "success", "order_id", order.OrderID, "total", order.Total)
	return order, nil
}

// Reset restores the initial checkout state after a completed or abandoned
// checkout, and persists that initial snapshot.
func (s *CheckoutStore) Reset(ctx context.Context) {
	s.mu.Lock()
	s.resetLocked()
	s.persistLocked(ctx)
	s.mu.Unlock()
}

func (s *CheckoutStore) resetLocked() {
	s.shipping = domain.InitialShippingInfo()
	s.payment = domain.InitialPaymentInfo()
	s.billing = domain.InitialBillingAddress()
	s.orderNotes = ""
	s.currentStep = domain.StepShipping
	s.fieldErrors = domain.FieldErrors{}
	s.phase = domain.PhaseIdle
	s.placedID = ""
}

func (s *CheckoutStore) clearFieldErrorsLocked(fields []string) {
	for _, f := range fields {
		delete(s.fieldErrors, f)
	}
}

func (s *CheckoutStore) persistLocked(ctx context.Context) {
	raw, err := json.Marshal(checkoutSnapshot{
		Shipping:    s.shipping,
		Payment:     s.payment,
		Billing:     s.billing,
		OrderNotes:  s.orderNotes,
		CurrentStep: s.currentStep,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "checkout snapshot marshal failed", "operation", "persist", "outcome", "failure", "error", err.Error())
		return
	}
	if err := s.snapshots.Save(ctx, ports.SnapshotKeyCheckout, raw); err != nil {
		s.logger.WarnContext(ctx, "checkout snapshot save failed", "operation", "persist", "outcome", "failure", "error", err.Error())
	}
}
