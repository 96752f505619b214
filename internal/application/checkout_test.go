package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/merkato/storefront/internal/domain"
	"github.com/merkato/storefront/internal/ports"
)

func fillShipping(ctx context.Context, f *storeFixture) {
	info := validShipping()
	f.checkout.UpdateShipping(ctx, domain.ShippingPatch{
		FirstName: &info.FirstName, LastName: &info.LastName,
		Email: &info.Email, Phone: &info.Phone,
		Address: &info.Address, City: &info.City,
		State: &info.State, ZipCode: &info.ZipCode,
	})
}

func fillPayment(ctx context.Context, f *storeFixture) {
	pay := validPayment()
	f.checkout.UpdatePayment(ctx, domain.PaymentPatch{
		Method: &pay.Method, CardNumber: &pay.CardNumber,
		CardName: &pay.CardName, ExpiryDate: &pay.ExpiryDate, CVV: &pay.CVV,
	})
}

func advanceToReview(ctx context.Context, t *testing.T, f *storeFixture) {
	t.Helper()
	fillShipping(ctx, f)
	if err := f.checkout.Advance(ctx); err != nil {
		t.Fatalf("advance to payment failed: %v", err)
	}
	fillPayment(ctx, f)
	if err := f.checkout.Advance(ctx); err != nil {
		t.Fatalf("advance to review failed: %v", err)
	}
}

func TestAdvanceBlockedByShippingValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newStoreFixture(ctx)
	err := f.checkout.Advance(ctx)

	var fe domain.FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("expected field errors, got %v", err)
	}
	if _, ok := fe["firstName"]; !ok {
		t.Fatalf("expected firstName error, got %v", fe)
	}
	if got := f.checkout.View().CurrentStep; got != domain.StepShipping {
		t.Fatalf("step must not change on failed advance, got %d", got)
	}
}

func TestAdvanceRejectsShortCardNumber(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newStoreFixture(ctx)
	fillShipping(ctx, f)
	if err := f.checkout.Advance(ctx); err != nil {
		t.Fatalf("advance to payment failed: %v", err)
	}

	short := "4111 1111 1111"
	name := "Jane Doe"
	expiry := "12/99"
	cvv := "123"
	f.checkout.UpdatePayment(ctx, domain.PaymentPatch{
		CardNumber: &short, CardName: &name, ExpiryDate: &expiry, CVV: &cvv,
	})

	err := f.checkout.Advance(ctx)
	var fe domain.FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("expected field errors, got %v", err)
	}
	if _, ok := fe["cardNumber"]; !ok {
		t.Fatalf("expected cardNumber error, got %v", fe)
	}
	if got := f.checkout.View().CurrentStep; got != domain.StepPayment {
		t.Fatalf("step must stay at payment, got %d", got)
	}
}

func TestAdvanceAndRegressBounds(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newStoreFixture(ctx)
	advanceToReview(ctx, t, f)

	if got := f.checkout.View().CurrentStep; got != domain.StepReview {
		t.Fatalf("expected review step, got %d", got)
	}
	if err := f.checkout.Advance(ctx); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("advancing past review should fail, got %v", err)
	}

	f.checkout.Regress(ctx)
	f.checkout.Regress(ctx)
	f.checkout.Regress(ctx)
	if got := f.checkout.View().CurrentStep; got != domain.StepShipping {
		t.Fatalf("regress must floor at shipping, got %d", got)
	}
}

func TestPatchClearsOnlyTouchedFieldErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newStoreFixture(ctx)
	_ = f.checkout.Advance(ctx)

	first := "Jane"
	f.checkout.UpdateShipping(ctx, domain.ShippingPatch{FirstName: &first})

	fe := f.checkout.View().FieldErrors
	if _, ok := fe["firstName"]; ok {
		t.Fatalf("editing firstName must clear its error")
	}
	if _, ok := fe["lastName"]; !ok {
		t.Fatalf("untouched field errors must survive, got %v", fe)
	}
}

func TestSubmitOrderRequiresReviewStep(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newStoreFixture(ctx)
	if _, err := f.checkout.SubmitOrder(ctx); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected rejection outside review step, got %v", err)
	}
}

func TestSubmitOrderEmptyCart(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newStoreFixture(ctx)
	advanceToReview(ctx, t, f)

	_, err := f.checkout.SubmitOrder(ctx)
	if !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected empty cart error, got %v", err)
	}
	view := f.checkout.View()
	if view.CurrentStep != domain.StepReview {
		t.Fatalf("step must not change on empty-cart failure, got %d", view.CurrentStep)
	}
	if view.PlacedOrderID != "" {
		t.Fatalf("no order id may be produced, got %q", view.PlacedOrderID)
	}
}

func TestSubmitOrderSuccess(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newStoreFixture(ctx)
	f.cart.AddItem(ctx, testItem("p1", 100, 10), 1)
	advanceToReview(ctx, t, f)

	order, err := f.checkout.SubmitOrder(ctx)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !strings.HasPrefix(order.OrderID, "ORD-") {
		t.Fatalf("expected ORD- order id, got %q", order.OrderID)
	}
	if order.Subtotal != 100 {
		t.Fatalf("expected subtotal 100, got %v", order.Subtotal)
	}
	if order.ShippingFee != domain.ShippingFee(domain.ShippingStandard) {
		t.Fatalf("unexpected shipping fee %v", order.ShippingFee)
	}
	if order.EstimatedDelivery.Sub(order.PlacedAt).Hours() != 24*domain.EstimatedDeliveryDays {
		t.Fatalf("expected +%d day delivery estimate", domain.EstimatedDeliveryDays)
	}

	view := f.checkout.View()
	if view.PlacedOrderID != order.OrderID {
		t.Fatalf("expected placed order id recorded, got %q", view.PlacedOrderID)
	}
	if view.IsSubmitting {
		t.Fatalf("phase must settle after success")
	}
}

func TestSubmitOrderRejectedWhileInFlight(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newStoreFixture(ctx)
	f.cart.AddItem(ctx, testItem("p1", 10, 10), 1)
	advanceToReview(ctx, t, f)
	f.gateway.blockPlace = true

	done := make(chan error, 1)
	go func() {
		_, err := f.checkout.SubmitOrder(ctx)
		done <- err
	}()
	<-f.gateway.entered

	if _, err := f.checkout.SubmitOrder(ctx); !errors.Is(err, domain.ErrOperationInFlight) {
		t.Fatalf("expected in-flight rejection, got %v", err)
	}

	close(f.gateway.gate)
	if err := <-done; err != nil {
		t.Fatalf("first submission should complete, got %v", err)
	}
}

func TestSubmitOrderGatewayFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newStoreFixture(ctx)
	f.cart.AddItem(ctx, testItem("p1", 10, 10), 1)
	advanceToReview(ctx, t, f)
	f.gateway.placeErr = errors.New("backend down")

	if _, err := f.checkout.SubmitOrder(ctx); err == nil {
		t.Fatalf("expected gateway failure to propagate")
	}
	view := f.checkout.View()
	if view.PlacedOrderID != "" || view.IsSubmitting {
		t.Fatalf("failed submission must settle without an order id, got %+v", view)
	}
	if _, ok := view.FieldErrors["submit"]; !ok {
		t.Fatalf("expected submit error recorded, got %v", view.FieldErrors)
	}
}

func TestCheckoutRehydrationKeepsProgress(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newStoreFixture(ctx)
	fillShipping(ctx, f)
	if err := f.checkout.Advance(ctx); err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	f.checkout.SetOrderNotes(ctx, "leave at the door")

	reloaded := NewCheckoutStore(ctx, CheckoutDependencies{
		Cart:      f.cart,
		Gateway:   f.gateway,
		Snapshots: f.snapshots,
		Notifier:  ports.NopNotifier{},
		Logger:    testLogger(),
	})
	view := reloaded.View()
	if view.CurrentStep != domain.StepPayment {
		t.Fatalf("expected restored step 2, got %d", view.CurrentStep)
	}
	if view.Shipping.FirstName != "Jane" {
		t.Fatalf("expected restored shipping info, got %+v", view.Shipping)
	}
	if view.OrderNotes != "leave at the door" {
		t.Fatalf("expected restored notes, got %q", view.OrderNotes)
	}
	if len(view.FieldErrors) != 0 || view.IsSubmitting || view.PlacedOrderID != "" {
		t.Fatalf("transient state must not persist, got %+v", view)
	}
}

func TestCheckoutRehydrationClampsStep(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newStoreFixture(ctx)
	raw, _ := json.Marshal(map[string]any{"currentStep": 9})
	if err := f.snapshots.Save(ctx, ports.SnapshotKeyCheckout, raw); err != nil {
		t.Fatalf("seed snapshot: %v", err)
	}

	reloaded := NewCheckoutStore(ctx, CheckoutDependencies{
		Cart:      f.cart,
		Gateway:   f.gateway,
		Snapshots: f.snapshots,
		Notifier:  ports.NopNotifier{},
		Logger:    testLogger(),
	})
	if got := reloaded.View().CurrentStep; got != domain.StepShipping {
		t.Fatalf("out-of-range step must reset to shipping, got %d", got)
	}
}

func TestResetRestoresInitialState(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newStoreFixture(ctx)
	advanceToReview(ctx, t, f)
	f.checkout.SetOrderNotes(ctx, "notes")

	f.checkout.Reset(ctx)

	view := f.checkout.View()
	if view.CurrentStep != domain.StepShipping || view.OrderNotes != "" {
		t.Fatalf("expected initial state after reset, got %+v", view)
	}
	if view.Shipping.Country != "United States" || view.Shipping.ShippingMethod != domain.ShippingStandard {
		t.Fatalf("expected initial shipping defaults, got %+v", view.Shipping)
	}
	if !view.Billing.SameAsShipping {
		t.Fatalf("expected billing same-as-shipping default")
	}
}

func TestDerivedPricingFollowsShippingMethod(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newStoreFixture(ctx)
	f.cart.AddItem(ctx, testItem("p1", 100, 10), 1)

	method := domain.ShippingOvernight
	f.checkout.UpdateShipping(ctx, domain.ShippingPatch{ShippingMethod: &method})

	view := f.checkout.View()
	if view.ShippingFee != 24.99 {
		t.Fatalf("expected overnight fee 24.99, got %v", view.ShippingFee)
	}
	if view.Total != domain.OrderTotal(100, domain.ShippingOvernight) {
		t.Fatalf("expected derived total, got %v", view.Total)
	}
}
