package store

import (
	"context"
	"fmt"

	"github.com/mveges/grocery/internal/domain/partner"
	"github.com/mveges/grocery/internal/domain/shared"
	"github.com/mveges/grocery/internal/domain/store"
)

// Counter reports how many records a collection holds
type Counter interface {
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// Service exposes the read-only store overview
type Service struct {
	settings  store.Settings
	discounts partner.MembershipDiscounts
	customers Counter
	products  Counter
}

// NewService creates a new store Service
func NewService(settings store.Settings, discounts partner.MembershipDiscounts, customers, products Counter) *Service {
	return &Service{
		settings:  settings,
		discounts: discounts,
		customers: customers,
		products:  products,
	}
}

// Settings returns the store settings
func (s *Service) Settings() SettingsResponse {
	return ToSettingsResponse(s.settings)
}

// Stats returns the current customer and product counts
func (s *Service) Stats(ctx context.Context) (*StatsResponse, error) {
	customers, err := s.customers.Count(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, fmt.Errorf("count customers: %w", err)
	}
	products, err := s.products.Count(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	return &StatsResponse{
		TotalCustomers: customers,
		TotalProducts:  products,
	}, nil
}

// Info returns settings, stats and the membership discount table
func (s *Service) Info(ctx context.Context) (*InfoResponse, error) {
	stats, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &InfoResponse{
		Settings:  s.Settings(),
		Stats:     *stats,
		Discounts: ToDiscountResponses(s.discounts),
	}, nil
}
