package catalog

import (
	"context"

	"github.com/mveges/grocery/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id string) (*Product, error)

	// FindAll finds products matching the filter, in insertion order
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// Create appends a new product. It returns shared.ErrAlreadyExists when the ID is taken.
	Create(ctx context.Context, product *Product) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
