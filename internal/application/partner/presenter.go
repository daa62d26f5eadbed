package partner

import "github.com/mveges/grocery/internal/domain/partner"

var welcomeMessages = map[partner.AgeBracket]string{
	partner.AgeBracketYouth:      "Welcome young shopper! Enjoy fresh vegetables for healthy growth!",
	partner.AgeBracketYoungAdult: "Perfect age for building healthy eating habits!",
	partner.AgeBracketAdult:      "Great to serve another health-conscious adult!",
	partner.AgeBracketSenior:     "Honored to serve our respected senior customer!",
}

// WelcomeMessage returns the greeting shown for an age bracket
func WelcomeMessage(bracket partner.AgeBracket) string {
	return welcomeMessages[bracket]
}

// ToCustomerRegistrationResponse builds the registration result for a new customer
func ToCustomerRegistrationResponse(c *partner.Customer, discounts partner.MembershipDiscounts) CustomerRegistrationResponse {
	return CustomerRegistrationResponse{
		CustomerResponse: ToCustomerResponse(c),
		WelcomeMessage:   WelcomeMessage(c.AgeBracket()),
		MembershipLabel:  c.Membership.Label(),
		DiscountPercent:  discounts.DiscountPercent(c.Membership),
	}
}
