package domain

import "testing"

func TestMergeCombinesQuantitiesAdditively(t *testing.T) {
	t.Parallel()

	guest := Cart{Items: []LineItem{{ProductID: "p1", UnitPrice: 10, Quantity: 2, StockCeiling: 10}}}
	guest.Recompute()
	account := Cart{Items: []LineItem{{ProductID: "p1", UnitPrice: 12, Quantity: 1, StockCeiling: 10}}}
	account.Recompute()

	merged := MergeCarts(guest, account)
	if len(merged.Items) != 1 {
		t.Fatalf("expected single merged item, got %d", len(merged.Items))
	}
	if merged.Items[0].Quantity != 3 {
		t.Fatalf("expected additive quantity 3, got %d", merged.Items[0].Quantity)
	}
	if merged.Items[0].UnitPrice != 12 {
		t.Fatalf("expected higher price 12 preserved, got %v", merged.Items[0].UnitPrice)
	}
}

func TestMergeClampsToAccountCeiling(t *testing.T) {
	t.Parallel()

	guest := Cart{Items: []LineItem{{ProductID: "p1", UnitPrice: 10, Quantity: 4, StockCeiling: 5}}}
	account := Cart{Items: []LineItem{{ProductID: "p1", UnitPrice: 10, Quantity: 3, StockCeiling: 5}}}

	merged := MergeCarts(guest, account)
	if merged.Items[0].Quantity != 5 {
		t.Fatalf("expected clamp to ceiling 5, got %d", merged.Items[0].Quantity)
	}
}

func TestMergeAppendsUnmatchedGuestItems(t *testing.T) {
	t.Parallel()

	guest := Cart{Items: []LineItem{
		{ProductID: "p1", UnitPrice: 10, Quantity: 1, StockCeiling: 5},
		{ProductID: "p2", UnitPrice: 20, Quantity: 2, StockCeiling: 5},
	}}
	account := Cart{Items: []LineItem{{ProductID: "p1", UnitPrice: 10, Quantity: 1, StockCeiling: 5}}}

	merged := MergeCarts(guest, account)
	if len(merged.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(merged.Items))
	}
	if merged.Items[1].ProductID != "p2" || merged.Items[1].Quantity != 2 {
		t.Fatalf("expected guest-only item appended unchanged, got %+v", merged.Items[1])
	}
	if merged.TotalQuantity != 4 {
		t.Fatalf("expected recomputed total 4, got %d", merged.TotalQuantity)
	}
}

func TestMergeEmptySidesAreIdentity(t *testing.T) {
	t.Parallel()

	account := Cart{Items: []LineItem{{ProductID: "p1", UnitPrice: 10, Quantity: 2, StockCeiling: 5}}}
	account.Recompute()

	fromEmptyGuest := MergeCarts(Cart{}, account)
	if len(fromEmptyGuest.Items) != 1 || fromEmptyGuest.Items[0].Quantity != 2 {
		t.Fatalf("empty guest should yield account cart, got %+v", fromEmptyGuest)
	}

	fromEmptyAccount := MergeCarts(account, Cart{})
	if len(fromEmptyAccount.Items) != 1 || fromEmptyAccount.Items[0].Quantity != 2 {
		t.Fatalf("empty account should yield guest cart, got %+v", fromEmptyAccount)
	}
}

func TestMergeBackfillsMissingImage(t *testing.T) {
	t.Parallel()

	guest := Cart{Items: []LineItem{{ProductID: "p1", UnitPrice: 10, Quantity: 1, StockCeiling: 5, Image: "img.jpg"}}}
	account := Cart{Items: []LineItem{{ProductID: "p1", UnitPrice: 10, Quantity: 1, StockCeiling: 5}}}

	merged := MergeCarts(guest, account)
	if merged.Items[0].Image != "img.jpg" {
		t.Fatalf("expected image backfilled from guest item, got %q", merged.Items[0].Image)
	}
}
