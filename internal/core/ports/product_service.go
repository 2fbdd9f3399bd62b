package ports

import (
	"context"

	"github.com/docushop/storefront/internal/core/domain"
)

// CatalogService defines use-case operations for products.
type CatalogService interface {
	List(ctx context.Context, category string) ([]*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
