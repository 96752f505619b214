package ports

import (
	"context"

	"github.com/merkato/storefront/internal/domain"
)

// ProductCatalog is the read-only product collaborator. The stores consume
// only id/price/stock; listing options exist for the browse surface.
type ProductCatalog interface {
	GetByID(ctx context.Context, id string) (domain.Product, error)
	List(ctx context.Context, opts ListOptions) ([]domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
}

// ListOptions filters and orders a catalog listing. Zero value lists
// everything in catalog order.
type ListOptions struct {
	Category string
	Sort     string // price-asc | price-desc | name | rating
}
