package domain

// Checkout steps. Step numbers are part of the persisted snapshot shape, so
// they stay plain ints rather than an opaque enum.
const (
	StepShipping = 1
	StepPayment  = 2
	StepReview   = 3
)

// Shipping method identifiers accepted by the fee table.
const (
	ShippingStandard  = "standard"
	ShippingExpress   = "express"
	ShippingOvernight = "overnight"
)

// Payment method identifiers. Only credit_card triggers card-field validation.
const (
	PaymentCreditCard = "credit_card"
	PaymentPaypal     = "paypal"
)

type ShippingInfo struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	City           string `json:"city"`
	State          string `json:"state"`
	ZipCode        string `json:"zipCode"`
	Country        string `json:"country"`
	ShippingMethod string `json:"shippingMethod"`
}

type PaymentInfo struct {
	Method     string `json:"method"`
	CardNumber string `json:"cardNumber"`
	CardName   string `json:"cardName"`
	ExpiryDate string `json:"expiryDate"`
	CVV        string `json:"cvv"`
	SaveCard   bool   `json:"saveCard"`
}

type BillingAddress struct {
	SameAsShipping bool   `json:"sameAsShipping"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Address        string `json:"address"`
	City           string `json:"city"`
	State          string `json:"state"`
	ZipCode        string `json:"zipCode"`
	Country        string `json:"country"`
}

// InitialShippingInfo returns the documented initial shipping record.
func InitialShippingInfo() ShippingInfo {
	return ShippingInfo{
		Country:        "United States",
		ShippingMethod: ShippingStandard,
	}
}

// InitialPaymentInfo returns the documented initial payment record.
func InitialPaymentInfo() PaymentInfo {
	return PaymentInfo{Method: PaymentCreditCard}
}

// InitialBillingAddress returns the documented initial billing record.
func InitialBillingAddress() BillingAddress {
	return BillingAddress{
		SameAsShipping: true,
		Country:        "United States",
	}
}

// ShippingPatch is a partial update of ShippingInfo. Pointer fields
// distinguish "leave unchanged" from "set to empty".
type ShippingPatch struct {
	FirstName      *string `json:"firstName,omitempty"`
	LastName       *string `json:"lastName,omitempty"`
	Email          *string `json:"email,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Address        *string `json:"address,omitempty"`
	City           *string `json:"city,omitempty"`
	State          *string `json:"state,omitempty"`
	ZipCode        *string `json:"zipCode,omitempty"`
	Country        *string `json:"country,omitempty"`
	ShippingMethod *string `json:"shippingMethod,omitempty"`
}

// Apply shallow-merges the patch and returns the field names it touched so
// the caller can clear their stale validation errors.
func (p ShippingPatch) Apply(info ShippingInfo) (ShippingInfo, []string) {
	var touched []string
	set := func(dst *string, src *string, field string) {
		if src != nil {
			*dst = *src
			touched = append(touched, field)
		}
	}
	set(&info.FirstName, p.FirstName, "firstName")
	set(&info.LastName, p.LastName, "lastName")
	set(&info.Email, p.Email, "email")
	set(&info.Phone, p.Phone, "phone")
	set(&info.Address, p.Address, "address")
	set(&info.City, p.City, "city")
	set(&info.State, p.State, "state")
	set(&info.ZipCode, p.ZipCode, "zipCode")
	set(&info.Country, p.Country, "country")
	set(&info.ShippingMethod, p.ShippingMethod, "shippingMethod")
	return info, touched
}

type PaymentPatch struct {
	Method     *string `json:"method,omitempty"`
	CardNumber *string `json:"cardNumber,omitempty"`
	CardName   *string `json:"cardName,omitempty"`
	ExpiryDate *string `json:"expiryDate,omitempty"`
	CVV        *string `json:"cvv,omitempty"`
	SaveCard   *bool   `json:"saveCard,omitempty"`
}

func (p PaymentPatch) Apply(info PaymentInfo) (PaymentInfo, []string) {
	var touched []string
	set := func(dst *string, src *string, field string) {
		if src != nil {
			*dst = *src
			touched = append(touched, field)
		}
	}
	set(&info.Method, p.Method, "method")
	set(&info.CardNumber, p.CardNumber, "cardNumber")
	set(&info.CardName, p.CardName, "cardName")
	set(&info.ExpiryDate, p.ExpiryDate, "expiryDate")
	set(&info.CVV, p.CVV, "cvv")
	if p.SaveCard != nil {
		info.SaveCard = *p.SaveCard
		touched = append(touched, "saveCard")
	}
	return info, touched
}

// BillingPatch touches error-map keys under their billing-prefixed names
// (billingFirstName, ...) to match the payment validator's output.
type BillingPatch struct {
	SameAsShipping *bool   `json:"sameAsShipping,omitempty"`
	FirstName      *string `json:"firstName,omitempty"`
	LastName       *string `json:"lastName,omitempty"`
	Address        *string `json:"address,omitempty"`
	City           *string `json:"city,omitempty"`
	State          *string `json:"state,omitempty"`
	ZipCode        *string `json:"zipCode,omitempty"`
	Country        *string `json:"country,omitempty"`
}

func (p BillingPatch) Apply(addr BillingAddress) (BillingAddress, []string) {
	var touched []string
	set := func(dst *string, src *string, field string) {
		if src != nil {
			*dst = *src
			touched = append(touched, field)
		}
	}
	if p.SameAsShipping != nil {
		addr.SameAsShipping = *p.SameAsShipping
		touched = append(touched, "billingSameAsShipping")
	}
	set(&addr.FirstName, p.FirstName, "billingFirstName")
	set(&addr.LastName, p.LastName, "billingLastName")
	set(&addr.Address, p.Address, "billingAddress")
	set(&addr.City, p.City, "billingCity")
	set(&addr.State, p.State, "billingState")
	set(&addr.ZipCode, p.ZipCode, "billingZipCode")
	set(&addr.Country, p.Country, "billingCountry")
	return addr, touched
}
