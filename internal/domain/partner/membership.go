package partner

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MembershipTier represents the customer's membership category
type MembershipTier string

const (
	MembershipBasic   MembershipTier = "basic"
	MembershipPremium MembershipTier = "premium"
	MembershipGold    MembershipTier = "gold"
)

// String returns the tier key
func (t MembershipTier) String() string {
	return string(t)
}

// Label returns the tier in display form, e.g. "PREMIUM"
func (t MembershipTier) Label() string {
	return strings.ToUpper(string(t))
}

// MembershipDiscounts maps each tier to the discount fraction it grants.
// It is reference data and is never mutated after construction.
type MembershipDiscounts struct {
	rates map[MembershipTier]decimal.Decimal
	order []MembershipTier
}

// DefaultMembershipDiscounts returns the store's discount table:
// basic 5%, premium 10%, gold 15%
func DefaultMembershipDiscounts() MembershipDiscounts {
	return MembershipDiscounts{
		rates: map[MembershipTier]decimal.Decimal{
			MembershipBasic:   decimal.RequireFromString("0.05"),
			MembershipPremium: decimal.RequireFromString("0.10"),
			MembershipGold:    decimal.RequireFromString("0.15"),
		},
		order: []MembershipTier{MembershipBasic, MembershipPremium, MembershipGold},
	}
}

// Discount returns the discount fraction for a tier
func (d MembershipDiscounts) Discount(tier MembershipTier) (decimal.Decimal, bool) {
	rate, ok := d.rates[tier]
	return rate, ok
}

// DiscountPercent returns the discount as a whole percentage (premium -> 10).
// Unknown tiers yield 0.
func (d MembershipDiscounts) DiscountPercent(tier MembershipTier) int64 {
	rate, ok := d.rates[tier]
	if !ok {
		return 0
	}
	return rate.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// IsKnown reports whether the tier is a key of the table
func (d MembershipDiscounts) IsKnown(tier MembershipTier) bool {
	_, ok := d.rates[tier]
	return ok
}

// Tiers returns the known tiers in ascending discount order
func (d MembershipDiscounts) Tiers() []MembershipTier {
	tiers := make([]MembershipTier, len(d.order))
	copy(tiers, d.order)
	return tiers
}
