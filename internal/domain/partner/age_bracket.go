package partner

// AgeBracket is a display classification derived from a customer's age
type AgeBracket string

const (
	AgeBracketYouth      AgeBracket = "Youth"
	AgeBracketYoungAdult AgeBracket = "Young Adult"
	AgeBracketAdult      AgeBracket = "Adult"
	AgeBracketSenior     AgeBracket = "Senior"
)

// ClassifyAge places an age in exactly one bracket:
// under 18 Youth, 18-29 Young Adult, 30-59 Adult, 60 and over Senior
func ClassifyAge(age int) AgeBracket {
	switch {
	case age < 18:
		return AgeBracketYouth
	case age < 30:
		return AgeBracketYoungAdult
	case age < 60:
		return AgeBracketAdult
	default:
		return AgeBracketSenior
	}
}
