package catalog

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func intPtr(v int) *int {
	return &v
}

func validInput() ProductInput {
	return ProductInput{
		Name:     "Sukuma Wiki",
		Price:    decPtr("120.50"),
		Quantity: intPtr(40),
		Category: "vegetables",
	}
}

func TestNewProduct(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("creates product with valid inputs", func(t *testing.T) {
		product, err := NewProduct("PRD-0001", validInput(), now)
		require.NoError(t, err)
		require.NotNil(t, product)

		assert.Equal(t, "PRD-0001", product.ID)
		assert.Equal(t, "Sukuma Wiki", product.Name)
		assert.True(t, product.Price.Equal(decimal.RequireFromString("120.5")))
		assert.Equal(t, 40, product.Quantity)
		assert.Equal(t, "vegetables", product.Category)
		assert.Equal(t, now, product.AddedAt)
		assert.Zero(t, product.Sales)
	})

	t.Run("publishes ProductAdded event", func(t *testing.T) {
		product, err := NewProduct("PRD-0002", validInput(), now)
		require.NoError(t, err)

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductAdded, events[0].EventType())

		event, ok := events[0].(*ProductAddedEvent)
		require.True(t, ok)
		assert.Equal(t, product.ID, event.ProductID)
		assert.Equal(t, product.Name, event.Name)
		assert.Equal(t, AggregateTypeProduct, event.AggregateType())
	})

	t.Run("trims name", func(t *testing.T) {
		in := validInput()
		in.Name = "  Tomatoes "
		product, err := NewProduct("PRD-0003", in, now)
		require.NoError(t, err)
		assert.Equal(t, "Tomatoes", product.Name)
	})

	t.Run("zero quantity is allowed", func(t *testing.T) {
		in := validInput()
		in.Quantity = intPtr(0)
		product, err := NewProduct("PRD-0004", in, now)
		require.NoError(t, err)
		assert.False(t, product.InStock())
	})
}

func TestNewProductValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ProductInput)
	}{
		{"empty name", func(in *ProductInput) { in.Name = "" }},
		{"blank name", func(in *ProductInput) { in.Name = "   " }},
		{"zero price", func(in *ProductInput) { in.Price = decPtr("0") }},
		{"negative price", func(in *ProductInput) { in.Price = decPtr("-3") }},
		{"missing price", func(in *ProductInput) { in.Price = nil }},
		{"negative quantity", func(in *ProductInput) { in.Quantity = intPtr(-1) }},
		{"missing quantity", func(in *ProductInput) { in.Quantity = nil }},
		{"empty category", func(in *ProductInput) { in.Category = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			product, err := NewProduct("PRD-0001", in, time.Now())

			assert.Nil(t, product)
			assert.Same(t, ErrInvalidProduct, err)
		})
	}
}

func TestProductStockValue(t *testing.T) {
	in := validInput()
	in.Price = decPtr("12.50")
	in.Quantity = intPtr(4)
	product, err := NewProduct("PRD-0001", in, time.Now())
	require.NoError(t, err)

	assert.Equal(t, "50", product.StockValue().String())
	assert.True(t, product.InStock())
}

func TestValidateProduct(t *testing.T) {
	assert.NoError(t, ValidateProduct(validInput()))

	in := validInput()
	in.Quantity = nil
	assert.Same(t, ErrInvalidProduct, ValidateProduct(in))
}
