package domain

// TaxRate is the flat sales-tax rate applied to the cart subtotal.
const TaxRate = 0.08

// EstimatedDeliveryDays offsets the order's delivery estimate from placement.
const EstimatedDeliveryDays = 5

// ShippingFee looks up the flat fee for a shipping method. Unknown methods
// fall back to the standard fee so a stale snapshot cannot break pricing.
func ShippingFee(method string) float64 {
	switch method {
	case ShippingExpress:
		return 12.99
	case ShippingOvernight:
		return 24.99
	default:
		return 5.99
	}
}

// Tax computes the tax amount for a subtotal.
func Tax(subtotal float64) float64 {
	return subtotal * TaxRate
}

// OrderTotal derives the grand total from current cart subtotal and shipping
// selection. Totals are never stored, only derived, to avoid drift.
func OrderTotal(subtotal float64, shippingMethod string) float64 {
	return subtotal + ShippingFee(shippingMethod) + Tax(subtotal)
}
