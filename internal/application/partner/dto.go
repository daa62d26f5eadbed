package partner

import (
	"time"

	"github.com/mveges/grocery/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// RegisterCustomerRequest carries the raw values of the registration form.
// Age is kept as text and read with form-number semantics ("34 years" is 34).
type RegisterCustomerRequest struct {
	Name       string `json:"name" form:"name"`
	Email      string `json:"email" form:"email"`
	Age        string `json:"age" form:"age"`
	Membership string `json:"membership" form:"membership"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Age            int             `json:"age"`
	Membership     string          `json:"membership"`
	RegisteredAt   time.Time       `json:"registration_date"`
	TotalPurchases decimal.Decimal `json:"total_purchases"`
	LoyaltyPoints  int             `json:"loyalty_points"`
	AgeBracket     string          `json:"age_bracket"`
}

// CustomerRegistrationResponse is the result of a successful registration.
// It extends the stored record with the display values shown to the customer.
type CustomerRegistrationResponse struct {
	CustomerResponse
	WelcomeMessage  string `json:"welcome_message"`
	MembershipLabel string `json:"membership_label"`
	DiscountPercent int64  `json:"discount_percent"`
}

// CustomerListFilter represents filter options for customer list
type CustomerListFilter struct {
	Search     string `form:"search"`
	Membership string `form:"membership" binding:"omitempty,oneof=basic premium gold"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToCustomerResponse converts a domain Customer to CustomerResponse
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:             c.ID,
		Name:           c.Name,
		Email:          c.Email,
		Age:            c.Age,
		Membership:     string(c.Membership),
		RegisteredAt:   c.RegisteredAt,
		TotalPurchases: c.TotalPurchases,
		LoyaltyPoints:  c.LoyaltyPoints,
		AgeBracket:     string(c.AgeBracket()),
	}
}

// ToCustomerResponses converts a slice of domain Customers to CustomerResponses
func ToCustomerResponses(customers []partner.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses
}
