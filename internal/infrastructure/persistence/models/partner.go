package models

import (
	"time"

	"github.com/mveges/grocery/internal/domain/partner"
	"github.com/mveges/grocery/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CustomerModel is the persistence model for the Customer domain entity.
type CustomerModel struct {
	BaseModel
	Name           string                 `gorm:"type:varchar(200);not null"`
	Email          string                 `gorm:"type:varchar(200);not null;index"`
	Age            int                    `gorm:"not null"`
	Membership     partner.MembershipTier `gorm:"type:varchar(20);not null;index"`
	RegisteredAt   time.Time              `gorm:"not null"`
	TotalPurchases decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	LoyaltyPoints  int                    `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: m.BaseModel.ToDomain(),
		},
		Name:           m.Name,
		Email:          m.Email,
		Age:            m.Age,
		Membership:     m.Membership,
		RegisteredAt:   m.RegisteredAt,
		TotalPurchases: m.TotalPurchases,
		LoyaltyPoints:  m.LoyaltyPoints,
	}
}

// CustomerModelFromDomain creates a persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{
		Name:           c.Name,
		Email:          c.Email,
		Age:            c.Age,
		Membership:     c.Membership,
		RegisteredAt:   c.RegisteredAt,
		TotalPurchases: c.TotalPurchases,
		LoyaltyPoints:  c.LoyaltyPoints,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}
