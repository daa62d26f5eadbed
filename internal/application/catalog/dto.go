package catalog

import (
	"time"

	"github.com/mveges/grocery/internal/domain/catalog"
	"github.com/mveges/grocery/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// AddProductRequest carries the raw values of the product form.
// Price and quantity are read with form-number semantics.
type AddProductRequest struct {
	Name     string `json:"name" form:"name"`
	Price    string `json:"price" form:"price"`
	Quantity string `json:"quantity" form:"quantity"`
	Category string `json:"category" form:"category"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	Category     string          `json:"category"`
	AddedAt      time.Time       `json:"date_added"`
	Sales        int             `json:"sales"`
	DisplayPrice string          `json:"display_price"`
	InStock      bool            `json:"in_stock"`
}

// ProductListFilter represents filter options for product list
type ProductListFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToProductResponse converts a domain Product to ProductResponse.
// The display price is formatted in the store currency, e.g. "KES 120.50".
func ToProductResponse(p *catalog.Product, currency valueobject.Currency) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		Quantity:     p.Quantity,
		Category:     p.Category,
		AddedAt:      p.AddedAt,
		Sales:        p.Sales,
		DisplayPrice: displayPrice(p.Price, currency),
		InStock:      p.InStock(),
	}
}

// ToProductResponses converts a slice of domain Products to ProductResponses
func ToProductResponses(products []catalog.Product, currency valueobject.Currency) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i], currency)
	}
	return responses
}

func displayPrice(price decimal.Decimal, currency valueobject.Currency) string {
	money, err := valueobject.NewMoney(price, currency)
	if err != nil {
		return valueobject.NewMoneyKES(price).String()
	}
	return money.String()
}
