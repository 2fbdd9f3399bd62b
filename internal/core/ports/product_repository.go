package ports

import (
	"context"
	"time"

	"github.com/docushop/storefront/internal/core/domain"
)

// ProductRepository defines persistence operations for the catalog.
type ProductRepository interface {
	// List returns products ordered by name. An empty category matches all.
	List(ctx context.Context, category string) ([]*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	// Update applies the set fields of patch in one write and returns the
	// updated product.
	Update(ctx context.Context, id string, patch domain.ProductPatch, updatedAt time.Time) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
