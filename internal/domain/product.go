package domain

// Product is a read-only catalog entry. The stores only ever consume the
// id/price/stock fields; the rest exists for catalog browsing.
type Product struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"original_price,omitempty"`
	Category      string  `json:"category"`
	Image         string  `json:"image,omitempty"`
	Stock         int     `json:"stock"`
	InStock       bool    `json:"in_stock"`
	Rating        float64 `json:"rating"`
	Reviews       int     `json:"reviews"`
}

// LineItemFor shapes a catalog product into a cart line item, capturing the
// current stock count as the item's quantity ceiling.
func (p Product) LineItemFor() LineItem {
	ceiling := p.Stock
	if ceiling < 1 {
		ceiling = 1
	}
	return LineItem{
		ProductID:    p.ID,
		Name:         p.Name,
		UnitPrice:    p.Price,
		Image:        p.Image,
		StockCeiling: ceiling,
	}
}
