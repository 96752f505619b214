package domain

// MergeCarts reconciles a guest cart into an account-saved cart. It is called
// once per login/registration success and once more when a saved server cart
// arrives after session restore; both triggers share this function so the
// reconciliation semantics cannot drift apart.
//
// Quantities combine additively: N added as a guest plus M saved on the
// account means the user intended N+M. The combined quantity is clamped to
// the effective stock ceiling (the account item's ceiling, else the guest
// item's, else the default). The higher unit price is preserved and a missing
// image reference is backfilled from the guest item.
func MergeCarts(guest, account Cart) Cart {
	if guest.IsEmpty() {
		return account.Clone()
	}
	if account.IsEmpty() {
		return guest.Clone()
	}

	merged := account.Clone()
	for _, guestItem := range guest.Items {
		idx, ok := merged.Find(guestItem.ProductID)
		if !ok {
			merged.Items = append(merged.Items, guestItem)
			continue
		}

		existing := &merged.Items[idx]
		ceiling := DefaultStockCeiling
		switch {
		case existing.StockCeiling >= 1:
			ceiling = existing.StockCeiling
		case guestItem.StockCeiling >= 1:
			ceiling = guestItem.StockCeiling
		}
		existing.Quantity = clampQuantity(existing.Quantity+guestItem.Quantity, ceiling)
		if guestItem.UnitPrice > existing.UnitPrice {
			existing.UnitPrice = guestItem.UnitPrice
		}
		if existing.Image == "" {
			existing.Image = guestItem.Image
		}
	}
	merged.Recompute()
	return merged
}
