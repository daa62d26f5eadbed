package partner

import (
	"context"

	"github.com/mveges/grocery/internal/domain/shared"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer by its ID
	FindByID(ctx context.Context, id string) (*Customer, error)

	// FindAll finds customers matching the filter, in registration order
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)

	// Create appends a new customer. It returns shared.ErrAlreadyExists when the ID is taken.
	Create(ctx context.Context, customer *Customer) error

	// Count counts customers matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
