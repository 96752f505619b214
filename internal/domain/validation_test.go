package domain

import (
	"testing"
	"time"
)

var validationNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func TestFieldValidators(t *testing.T) {
	t.Parallel()

	if !ValidEmail("jane@example.com") || ValidEmail("not-an-email") || ValidEmail("a b@x.com") {
		t.Fatalf("email validator mismatch")
	}
	if !ValidPhone("(555) 123-4567") || ValidPhone("12345") {
		t.Fatalf("phone validator mismatch")
	}
	if !ValidZipCode("12345") || !ValidZipCode("12345-6789") || ValidZipCode("1234") || ValidZipCode("123456") {
		t.Fatalf("zip validator mismatch")
	}
	if !ValidCardNumber("4111 1111 1111 1111") || ValidCardNumber("4111 1111 1111") || ValidCardNumber("4111x1111y1111z111") {
		t.Fatalf("card validator mismatch")
	}
	if !ValidCVV("123") || ValidCVV("12") || ValidCVV("12a") {
		t.Fatalf("cvv validator mismatch")
	}
}

func TestValidExpiryDate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		expiry string
		want   bool
	}{
		{"03/26", true},
		{"12/26", true},
		{"01/27", true},
		{"02/26", false},
		{"12/25", false},
		{"13/26", false},
		{"3/26", false},
		{"03-26", false},
	}
	for _, tc := range cases {
		if got := ValidExpiryDate(tc.expiry, validationNow); got != tc.want {
			t.Fatalf("expiry %q: expected %v, got %v", tc.expiry, tc.want, got)
		}
	}
}

func TestValidateShippingRequiredFields(t *testing.T) {
	t.Parallel()

	errs := ValidateShipping(InitialShippingInfo())
	for _, field := range []string{"firstName", "lastName", "email", "phone", "address", "city", "state", "zipCode"} {
		if _, ok := errs[field]; !ok {
			t.Fatalf("expected error for %s, got %v", field, errs)
		}
	}
	if errs["firstName"] != "First name is required" {
		t.Fatalf("unexpected message: %q", errs["firstName"])
	}
}

func TestValidateShippingFormatChecks(t *testing.T) {
	t.Parallel()

	info := ShippingInfo{
		FirstName: "Jane", LastName: "Doe",
		Email: "bad-email", Phone: "123",
		Address: "1 Main St", City: "Springfield", State: "IL", ZipCode: "abc",
	}
	errs := ValidateShipping(info)
	if errs["email"] != "Please enter a valid email address" {
		t.Fatalf("unexpected email message: %q", errs["email"])
	}
	if _, ok := errs["phone"]; !ok {
		t.Fatalf("expected phone format error")
	}
	if _, ok := errs["zipCode"]; !ok {
		t.Fatalf("expected zip format error")
	}
}

func TestValidateShippingPasses(t *testing.T) {
	t.Parallel()

	info := ShippingInfo{
		FirstName: "Jane", LastName: "Doe",
		Email: "jane@example.com", Phone: "5551234567",
		Address: "1 Main St", City: "Springfield", State: "IL", ZipCode: "62704",
		Country: "United States", ShippingMethod: ShippingStandard,
	}
	if errs := ValidateShipping(info); len(errs) != 0 {
		t.Fatalf("expected clean validation, got %v", errs)
	}
}

func TestValidatePaymentCreditCardFields(t *testing.T) {
	t.Parallel()

	payment := PaymentInfo{
		Method:     PaymentCreditCard,
		CardNumber: "4111 1111 1111",
		CardName:   "",
		ExpiryDate: "13/20",
		CVV:        "12",
	}
	errs := ValidatePayment(payment, InitialBillingAddress(), validationNow)
	for _, field := range []string{"cardNumber", "cardName", "expiryDate", "cvv"} {
		if _, ok := errs[field]; !ok {
			t.Fatalf("expected error for %s, got %v", field, errs)
		}
	}
}

func TestValidatePaymentNonCardMethodSkipsCardFields(t *testing.T) {
	t.Parallel()

	payment := PaymentInfo{Method: PaymentPaypal}
	if errs := ValidatePayment(payment, InitialBillingAddress(), validationNow); len(errs) != 0 {
		t.Fatalf("paypal with billing same-as-shipping should validate clean, got %v", errs)
	}
}

func TestValidatePaymentSeparateBillingAddress(t *testing.T) {
	t.Parallel()

	billing := BillingAddress{SameAsShipping: false}
	errs := ValidatePayment(PaymentInfo{Method: PaymentPaypal}, billing, validationNow)
	for _, field := range []string{"billingFirstName", "billingLastName", "billingAddress", "billingCity", "billingState", "billingZipCode"} {
		if _, ok := errs[field]; !ok {
			t.Fatalf("expected error for %s, got %v", field, errs)
		}
	}
}
