package partner

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mveges/grocery/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	MinNameLength = 2
	MinAge        = 1
	MaxAge        = 120
)

// emailPattern rejects white space including \v, NBSP, the BOM and Unicode separators
var emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)

// Validation errors, checked in this order
var (
	ErrInvalidName       = shared.NewDomainError("INVALID_NAME", "Please enter a valid name (at least 2 characters)")
	ErrInvalidEmail      = shared.NewDomainError("INVALID_EMAIL", "Please enter a valid email address")
	ErrInvalidAge        = shared.NewDomainError("INVALID_AGE", "Please enter a valid age (1-120)")
	ErrMissingMembership = shared.NewDomainError("INVALID_MEMBERSHIP", "Please select a membership type")
	ErrUnknownMembership = shared.NewDomainError("INVALID_MEMBERSHIP", "Please select a valid membership type")
)

// ErrCustomerNotFound is returned when no customer has the requested ID
var ErrCustomerNotFound = shared.NewDomainError("NOT_FOUND", "Customer not found")

// Customer represents a registered store customer
// It is the aggregate root for customer-related operations
type Customer struct {
	shared.BaseAggregateRoot
	Name           string
	Email          string
	Age            int
	Membership     MembershipTier
	RegisteredAt   time.Time
	TotalPurchases decimal.Decimal
	LoyaltyPoints  int
}

// RegistrationInput carries the already-parsed registration fields.
// A nil Age means the raw value was not a number.
type RegistrationInput struct {
	Name       string
	Email      string
	Age        *int
	Membership string
}

// NewCustomer validates the input and builds a customer
func NewCustomer(id string, in RegistrationInput, discounts MembershipDiscounts, now time.Time) (*Customer, error) {
	if err := ValidateRegistration(in, discounts); err != nil {
		return nil, err
	}

	customer := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(id, now),
		Name:              strings.TrimSpace(in.Name),
		Email:             strings.TrimSpace(in.Email),
		Age:               *in.Age,
		Membership:        MembershipTier(in.Membership),
		RegisteredAt:      now,
		TotalPurchases:    decimal.Zero,
		LoyaltyPoints:     0,
	}

	customer.AddDomainEvent(NewCustomerRegisteredEvent(customer))

	return customer, nil
}

// ValidateRegistration checks the input without building a customer.
// Rules are checked in order (name, email, age, membership) and the first failure is returned.
func ValidateRegistration(in RegistrationInput, discounts MembershipDiscounts) error {
	if err := validateCustomerName(strings.TrimSpace(in.Name)); err != nil {
		return err
	}
	if err := validateEmail(strings.TrimSpace(in.Email)); err != nil {
		return err
	}
	if err := validateAge(in.Age); err != nil {
		return err
	}
	return validateMembership(in.Membership, discounts)
}

// AgeBracket returns the display bracket for the customer's age
func (c *Customer) AgeBracket() AgeBracket {
	return ClassifyAge(c.Age)
}

func validateCustomerName(name string) error {
	if name == "" || utf8.RuneCountInString(name) < MinNameLength {
		return ErrInvalidName
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" || !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

func validateAge(age *int) error {
	if age == nil || *age < MinAge || *age > MaxAge {
		return ErrInvalidAge
	}
	return nil
}

func validateMembership(raw string, discounts MembershipDiscounts) error {
	if raw == "" {
		return ErrMissingMembership
	}
	if !discounts.IsKnown(MembershipTier(raw)) {
		return ErrUnknownMembership
	}
	return nil
}
