package catalog

import (
	"strings"
	"time"

	"github.com/mveges/grocery/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ErrInvalidProduct is returned when any product field fails validation.
// Product input is checked as a single combined condition.
var ErrInvalidProduct = shared.NewDomainError("INVALID_PRODUCT", "Please fill all product fields correctly")

// ErrProductNotFound is returned when no product has the requested ID
var ErrProductNotFound = shared.NewDomainError("NOT_FOUND", "Product not found")

// Product represents an item in the store inventory
type Product struct {
	shared.BaseAggregateRoot
	Name     string
	Price    decimal.Decimal
	Quantity int
	Category string
	AddedAt  time.Time
	Sales    int
}

// ProductInput carries the already-parsed product fields.
// A nil Price or Quantity means the raw value was not a number.
type ProductInput struct {
	Name     string
	Price    *decimal.Decimal
	Quantity *int
	Category string
}

// NewProduct validates the input and builds a product.
// The name is trimmed; price must be positive and quantity non-negative.
func NewProduct(id string, in ProductInput, now time.Time) (*Product, error) {
	if err := ValidateProduct(in); err != nil {
		return nil, err
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(id, now),
		Name:              strings.TrimSpace(in.Name),
		Price:             *in.Price,
		Quantity:          *in.Quantity,
		Category:          in.Category,
		AddedAt:           now,
		Sales:             0,
	}

	product.AddDomainEvent(NewProductAddedEvent(product))

	return product, nil
}

// ValidateProduct checks the input without building a product
func ValidateProduct(in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" ||
		in.Price == nil || !in.Price.IsPositive() ||
		in.Quantity == nil || *in.Quantity < 0 ||
		in.Category == "" {
		return ErrInvalidProduct
	}
	return nil
}

// StockValue returns price multiplied by quantity on hand
func (p *Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// InStock reports whether any units are available
func (p *Product) InStock() bool {
	return p.Quantity > 0
}
