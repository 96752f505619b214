package domain

// DefaultStockCeiling bounds line-item quantity when no catalog stock figure
// was captured at the time the item entered the cart.
const DefaultStockCeiling = 99

// LineItem is one product entry in a cart. StockCeiling is the maximum
// purchasable quantity, derived from catalog stock when the item was added.
type LineItem struct {
	ProductID    string  `json:"product_id"`
	Name         string  `json:"name"`
	UnitPrice    float64 `json:"unit_price"`
	Image        string  `json:"image,omitempty"`
	Quantity     int     `json:"quantity"`
	StockCeiling int     `json:"stock_ceiling"`
}

// EffectiveCeiling resolves the quantity bound, falling back to the default
// when the item carries no usable ceiling.
func (it LineItem) EffectiveCeiling() int {
	if it.StockCeiling >= 1 {
		return it.StockCeiling
	}
	return DefaultStockCeiling
}

// Cart holds line items in insertion order. TotalQuantity and Subtotal are
// always recomputed from Items, never mutated independently.
type Cart struct {
	Items         []LineItem `json:"items"`
	TotalQuantity int        `json:"total_quantity"`
	Subtotal      float64    `json:"subtotal"`
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Clone returns a deep copy so readers never observe in-place mutation.
func (c Cart) Clone() Cart {
	out := Cart{
		TotalQuantity: c.TotalQuantity,
		Subtotal:      c.Subtotal,
	}
	if len(c.Items) > 0 {
		out.Items = make([]LineItem, len(c.Items))
		copy(out.Items, c.Items)
	}
	return out
}

// Find returns the index of the item with the given product id.
func (c Cart) Find(productID string) (int, bool) {
	for i, it := range c.Items {
		if it.ProductID == productID {
			return i, true
		}
	}
	return 0, false
}

func (c Cart) Contains(productID string) bool {
	_, ok := c.Find(productID)
	return ok
}

// Recompute rederives the cart totals from the item list.
func (c *Cart) Recompute() {
	totalQty := 0
	subtotal := 0.0
	for _, it := range c.Items {
		totalQty += it.Quantity
		subtotal += it.UnitPrice * float64(it.Quantity)
	}
	c.TotalQuantity = totalQty
	c.Subtotal = subtotal
}

func clampQuantity(qty, ceiling int) int {
	if qty < 1 {
		return 1
	}
	if qty > ceiling {
		return ceiling
	}
	return qty
}

// AddItem merges qty units of item into the cart. An existing entry for the
// same product has its quantity incremented; the result is clamped to the
// item's stock ceiling with any excess silently dropped. Totals are recomputed.
func (c *Cart) AddItem(item LineItem, qty int) {
	if qty < 1 {
		qty = 1
	}
	if idx, ok := c.Find(item.ProductID); ok {
		existing := &c.Items[idx]
		existing.Quantity = clampQuantity(existing.Quantity+qty, existing.EffectiveCeiling())
	} else {
		item.Quantity = clampQuantity(qty, item.EffectiveCeiling())
		c.Items = append(c.Items, item)
	}
	c.Recompute()
}

// RemoveItem deletes the matching item. Removing an absent product id is a
// no-op, so the operation is idempotent.
func (c *Cart) RemoveItem(productID string) bool {
	idx, ok := c.Find(productID)
	if !ok {
		return false
	}
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	c.Recompute()
	return true
}

// UpdateQuantity sets the item quantity clamped to [1, ceiling]. Absent
// product ids are a no-op rather than an error.
func (c *Cart) UpdateQuantity(productID string, qty int) bool {
	idx, ok := c.Find(productID)
	if !ok {
		return false
	}
	item := &c.Items[idx]
	item.Quantity = clampQuantity(qty, item.EffectiveCeiling())
	c.Recompute()
	return true
}

// SanitizeCart normalizes a cart rehydrated from device storage. Snapshots are
// untrusted input: items without a product id or with a negative price are
// dropped, quantities are clamped back into range, and totals are rederived.
func SanitizeCart(c Cart) Cart {
	out := Cart{}
	for _, it := range c.Items {
		if it.ProductID == "" || it.UnitPrice < 0 {
			continue
		}
		if it.StockCeiling < 1 {
			it.StockCeiling = DefaultStockCeiling
		}
		it.Quantity = clampQuantity(it.Quantity, it.EffectiveCeiling())
		out.Items = append(out.Items, it)
	}
	out.Recompute()
	return out
}
