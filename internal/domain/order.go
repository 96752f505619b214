package domain

import "time"

// Order is the result of a successful checkout submission. The line items and
// shipping record are snapshots taken at placement time.
type Order struct {
	OrderID           string       `json:"order_id"`
	Items             []LineItem   `json:"items"`
	Shipping          ShippingInfo `json:"shipping"`
	OrderNotes        string       `json:"order_notes,omitempty"`
	Subtotal          float64      `json:"subtotal"`
	ShippingFee       float64      `json:"shipping_fee"`
	Tax               float64      `json:"tax"`
	Total             float64      `json:"total"`
	PlacedAt          time.Time    `json:"placed_at"`
	EstimatedDelivery time.Time    `json:"estimated_delivery"`
}
