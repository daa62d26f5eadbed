package partner

import (
	"github.com/mveges/grocery/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeCustomer = "Customer"

// Event type constants
const (
	EventTypeCustomerRegistered = "CustomerRegistered"
)

// CustomerRegisteredEvent is published when a new customer is registered
type CustomerRegisteredEvent struct {
	shared.BaseDomainEvent
	CustomerID string         `json:"customer_id"`
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Membership MembershipTier `json:"membership"`
}

// NewCustomerRegisteredEvent creates a new CustomerRegisteredEvent
func NewCustomerRegisteredEvent(customer *Customer) *CustomerRegisteredEvent {
	return &CustomerRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerRegistered, AggregateTypeCustomer, customer.ID, customer.RegisteredAt),
		CustomerID:      customer.ID,
		Name:            customer.Name,
		Email:           customer.Email,
		Membership:      customer.Membership,
	}
}
