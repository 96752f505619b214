package domain

// IsOrderable reports whether a product can be ordered at all.
// A nil product is treated as not orderable rather than an error.
func IsOrderable(p *Product) bool {
	return p != nil && p.InStock && p.Stock > 0
}

// AvailableQuantity returns the purchasable stock count, zero when the
// product is not orderable.
func AvailableQuantity(p *Product) int {
	if !IsOrderable(p) {
		return 0
	}
	return p.Stock
}

// IsQuantityAvailable reports whether the requested quantity can be served
// from current stock.
func IsQuantityAvailable(p *Product, requested int) bool {
	if !IsOrderable(p) {
		return false
	}
	return requested <= p.Stock
}
