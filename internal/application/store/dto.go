package store

import (
	"github.com/mveges/grocery/internal/domain/partner"
	"github.com/mveges/grocery/internal/domain/store"
)

// SettingsResponse represents the store settings in API responses
type SettingsResponse struct {
	Name     string `json:"store_name"`
	Location string `json:"location"`
	Currency string `json:"currency"`
	IsOpen   bool   `json:"is_open"`
	Status   string `json:"status"`
}

// StatsResponse holds the store counters
type StatsResponse struct {
	TotalCustomers int64 `json:"total_customers"`
	TotalProducts  int64 `json:"total_products"`
}

// DiscountResponse describes one membership tier
type DiscountResponse struct {
	Membership string `json:"membership"`
	Label      string `json:"label"`
	Rate       string `json:"rate"`
	Percent    int64  `json:"percent"`
}

// InfoResponse is the store overview: settings, counters and the discount table
type InfoResponse struct {
	Settings  SettingsResponse   `json:"settings"`
	Stats     StatsResponse      `json:"stats"`
	Discounts []DiscountResponse `json:"membership_discounts"`
}

// ToSettingsResponse converts domain settings to SettingsResponse
func ToSettingsResponse(s store.Settings) SettingsResponse {
	return SettingsResponse{
		Name:     s.Name,
		Location: s.Location,
		Currency: string(s.Currency),
		IsOpen:   s.IsOpen,
		Status:   s.Status(),
	}
}

// ToDiscountResponses lists the discount table in tier order
func ToDiscountResponses(discounts partner.MembershipDiscounts) []DiscountResponse {
	tiers := discounts.Tiers()
	responses := make([]DiscountResponse, 0, len(tiers))
	for _, tier := range tiers {
		rate, _ := discounts.Discount(tier)
		responses = append(responses, DiscountResponse{
			Membership: tier.String(),
			Label:      tier.Label(),
			Rate:       rate.String(),
			Percent:    discounts.DiscountPercent(tier),
		})
	}
	return responses
}
