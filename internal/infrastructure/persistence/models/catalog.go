package models

import (
	"time"

	"github.com/mveges/grocery/internal/domain/catalog"
	"github.com/mveges/grocery/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	BaseModel
	Name     string          `gorm:"type:varchar(200);not null"`
	Price    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Quantity int             `gorm:"not null"`
	Category string          `gorm:"type:varchar(100);not null;index"`
	AddedAt  time.Time       `gorm:"not null"`
	Sales    int             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: m.BaseModel.ToDomain(),
		},
		Name:     m.Name,
		Price:    m.Price,
		Quantity: m.Quantity,
		Category: m.Category,
		AddedAt:  m.AddedAt,
		Sales:    m.Sales,
	}
}

// ProductModelFromDomain creates a persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{
		Name:     p.Name,
		Price:    p.Price,
		Quantity: p.Quantity,
		Category: p.Category,
		AddedAt:  p.AddedAt,
		Sales:    p.Sales,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// AllModels returns every model that AutoMigrate should create
func AllModels() []any {
	return []any{
		&CustomerModel{},
		&ProductModel{},
	}
}
