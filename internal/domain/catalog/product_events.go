package catalog

import (
	"github.com/mveges/grocery/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeProduct = "Product"

// Event type constants
const (
	EventTypeProductAdded = "ProductAdded"
)

// ProductAddedEvent is published when a product is added to the inventory
type ProductAddedEvent struct {
	shared.BaseDomainEvent
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Category  string          `json:"category"`
}

// NewProductAddedEvent creates a new ProductAddedEvent
func NewProductAddedEvent(product *Product) *ProductAddedEvent {
	return &ProductAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductAdded, AggregateTypeProduct, product.ID, product.AddedAt),
		ProductID:       product.ID,
		Name:            product.Name,
		Price:           product.Price,
		Quantity:        product.Quantity,
		Category:        product.Category,
	}
}
