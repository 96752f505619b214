// Package catalog serves the storefront's product collection from a static
// in-memory fixture, stand-in for a real catalog service.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/merkato/storefront/internal/domain"
	"github.com/merkato/storefront/internal/ports"
)

// StaticCatalog is a read-only product list with filter and sort helpers.
type StaticCatalog struct {
	products []domain.Product
}

// NewStaticCatalog returns the stock storefront catalog.
func NewStaticCatalog() *StaticCatalog {
	return &StaticCatalog{products: defaultProducts()}
}

// NewStaticCatalogWith serves a caller-supplied product list; used by tests.
func NewStaticCatalogWith(products []domain.Product) *StaticCatalog {
	return &StaticCatalog{products: products}
}

func (c *StaticCatalog) GetByID(_ context.Context, id string) (domain.Product, error) {
	for _, p := range c.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, fmt.Errorf("%w: product %s", domain.ErrNotFound, id)
}

func (c *StaticCatalog) List(_ context.Context, opts ports.ListOptions) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		if opts.Category != "" && !strings.EqualFold(opts.Category, "All") && !strings.EqualFold(p.Category, opts.Category) {
			continue
		}
		out = append(out, p)
	}

	switch opts.Sort {
	case "price-asc":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case "price-desc":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case "name":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	case "rating":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	}
	return out, nil
}

func (c *StaticCatalog) Categories(_ context.Context) ([]string, error) {
	return []string{"All", "Electronics", "Clothing", "Home & Kitchen", "Books", "Sports"}, nil
}

func defaultProducts() []domain.Product {
	return []domain.Product{
		{
			ID:            "1",
			Name:          "Wireless Bluetooth Headphones",
			Description:   "High-quality wireless headphones with noise cancellation and 30-hour battery life.",
			Price:         99.99,
			OriginalPrice: 129.99,
			Category:      "Electronics",
			Image:         "https://images.unsplash.com/photo-1518441902113-fdf07c19c9e0?w=800&q=80",
			Stock:         50,
			InStock:       true,
			Rating:        4.5,
			Reviews:       128,
		},
		{
			ID:            "2",
			Name:          "Classic Cotton T-Shirt",
			Description:   "Comfortable 100% cotton t-shirt available in multiple colors.",
			Price:         19.99,
			OriginalPrice: 24.99,
			Category:      "Clothing",
			Image:         "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=800&q=80",
			Stock:         100,
			InStock:       true,
			Rating:        4.2,
			Reviews:       56,
		},
		{
			ID:            "3",
			Name:          "Smart Watch Series 5",
			Description:   "Advanced smartwatch with fitness tracking and heart rate monitor.",
			Price:         249.99,
			OriginalPrice: 299.99,
			Category:      "Electronics",
			Image:         "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=800&q=80",
			Stock:         30,
			InStock:       true,
			Rating:        4.7,
			Reviews:       89,
		},
		{
			ID:            "4",
			Name:          "Ceramic Coffee Mug Set",
			Description:   "Set of 4 ceramic mugs with elegant design, microwave safe.",
			Price:         34.99,
			OriginalPrice: 39.99,
			Category:      "Home & Kitchen",
			Image:         "https://images.unsplash.com/photo-1517686469429-8bdb88b9f907?w=800&q=80",
			Stock:         75,
			InStock:       true,
			Rating:        4.3,
			Reviews:       42,
		},
		{
			ID:            "5",
			Name:          "JavaScript: The Definitive Guide",
			Description:   "Comprehensive guide to JavaScript programming, 7th edition.",
			Price:         49.99,
			OriginalPrice: 59.99,
			Category:      "Books",
			Image:         "https://images.unsplash.com/photo-1512820790803-83ca734da794?w=800&q=80",
			Stock:         40,
			InStock:       true,
			Rating:        4.8,
			Reviews:       203,
		},
		{
			ID:            "6",
			Name:          "Yoga Mat Premium",
			Description:   "Non-slip yoga mat with carrying strap, 6mm thickness.",
			Price:         29.99,
			OriginalPrice: 34.99,
			Category:      "Sports",
			Image:         "https://images.unsplash.com/photo-1603988363607-e1e4a66962c6?w=800&q=80",
			Stock:         60,
			InStock:       true,
			Rating:        4.4,
			Reviews:       67,
		},
		{
			ID:            "7",
			Name:          "Laptop Backpack",
			Description:   "Water-resistant backpack with laptop compartment and USB port.",
			Price:         59.99,
			OriginalPrice: 69.99,
			Category:      "Electronics",
			Image:         "https://images.unsplash.com/photo-1518544801976-3e159e50e5bb?w=800&q=80",
			Stock:         45,
			InStock:       true,
			Rating:        4.6,
			Reviews:       94,
		},
		{
			ID:            "8",
			Name:          "Stainless Steel Water Bottle",
			Description:   "1L insulated water bottle, keeps drinks cold for 24 hours.",
			Price:         24.99,
			OriginalPrice: 29.99,
			Category:      "Sports",
			Image:         "https://images.unsplash.com/photo-1523362628745-0c100150b504?w=800&q=80",
			Stock:         80,
			InStock:       true,
			Rating:        4.5,
			Reviews:       121,
		},
	}
}
