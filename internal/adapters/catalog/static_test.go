package catalog

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/merkato/storefront/internal/domain"
	"github.com/merkato/storefront/internal/ports"
)

func TestGetByID(t *testing.T) {
	t.Parallel()
	c := NewStaticCatalog()

	p, err := c.GetByID(context.Background(), "1")
	if err != nil {
		t.Fatalf("get product failed: %v", err)
	}
	if p.Name != "Wireless Bluetooth Headphones" || p.Stock != 50 {
		t.Fatalf("unexpected product %+v", p)
	}

	if _, err := c.GetByID(context.Background(), "999"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListFiltersByCategory(t *testing.T) {
	t.Parallel()
	c := NewStaticCatalog()

	products, err := c.List(context.Background(), ports.ListOptions{Category: "Sports"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(products) == 0 {
		t.Fatalf("expected sports products")
	}
	for _, p := range products {
		if p.Category != "Sports" {
			t.Fatalf("unexpected category %q", p.Category)
		}
	}

	all, _ := c.List(context.Background(), ports.ListOptions{Category: "All"})
	everything, _ := c.List(context.Background(), ports.ListOptions{})
	if len(all) != len(everything) {
		t.Fatalf("category All must match the unfiltered listing")
	}
}

func TestListSortOrders(t *testing.T) {
	t.Parallel()
	c := NewStaticCatalog()
	ctx := context.Background()

	asc, _ := c.List(ctx, ports.ListOptions{Sort: "price-asc"})
	if !sort.SliceIsSorted(asc, func(i, j int) bool { return asc[i].Price < asc[j].Price }) {
		t.Fatalf("expected ascending price order")
	}

	desc, _ := c.List(ctx, ports.ListOptions{Sort: "price-desc"})
	if !sort.SliceIsSorted(desc, func(i, j int) bool { return desc[i].Price > desc[j].Price }) {
		t.Fatalf("expected descending price order")
	}

	byName, _ := c.List(ctx, ports.ListOptions{Sort: "name"})
	if !sort.SliceIsSorted(byName, func(i, j int) bool { return byName[i].Name < byName[j].Name }) {
		t.Fatalf("expected name order")
	}

	byRating, _ := c.List(ctx, ports.ListOptions{Sort: "rating"})
	if !sort.SliceIsSorted(byRating, func(i, j int) bool { return byRating[i].Rating > byRating[j].Rating }) {
		t.Fatalf("expected rating order")
	}
}

func TestCategoriesListing(t *testing.T) {
	t.Parallel()
	c := NewStaticCatalog()

	categories, err := c.Categories(context.Background())
	if err != nil {
		t.Fatalf("categories failed: %v", err)
	}
	if len(categories) == 0 || categories[0] != "All" {
		t.Fatalf("expected All first, got %v", categories)
	}
}
