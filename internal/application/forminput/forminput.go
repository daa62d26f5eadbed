// Package forminput converts raw form values into numbers the way a browser form
// script would: leading whitespace is skipped and the longest numeric prefix wins,
// so "42 years" reads as 42 while "abc" reads as no number at all.
package forminput

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var (
	intPrefix     = regexp.MustCompile(`^[+-]?[0-9]+`)
	hexPrefix     = regexp.MustCompile(`^([+-]?)0[xX]([0-9a-fA-F]+)`)
	decimalPrefix = regexp.MustCompile(`^([+-]?)([0-9]*)(?:\.([0-9]*))?(?:[eE][+-]?[0-9]+)?`)
)

// ParseInt reads the leading integer of raw. It returns nil when raw does not start
// with a number or the value does not fit in an int.
func ParseInt(raw string) *int {
	s := trimLeadingSpace(raw)

	if m := hexPrefix.FindStringSubmatch(s); m != nil {
		v, err := strconv.ParseInt(m[2], 16, 64)
		if err != nil || v > math.MaxInt {
			return nil
		}
		n := int(v)
		if m[1] == "-" {
			n = -n
		}
		return &n
	}

	digits := intPrefix.FindString(s)
	if digits == "" {
		return nil
	}
	v, err := strconv.Atoi(digits)
	if err != nil {
		return nil
	}
	return &v
}

// ParseDecimal reads the leading decimal number of raw, including an optional
// fraction and exponent. The value is rounded to a float64 the way a browser
// reads it. It returns nil when no digits are found or the value is not finite
// ("NaN", "Infinity", "1e400").
func ParseDecimal(raw string) *decimal.Decimal {
	s := trimLeadingSpace(raw)

	m := decimalPrefix.FindStringSubmatch(s)
	if m == nil || (m[2] == "" && m[3] == "") {
		return nil
	}

	v, err := strconv.ParseFloat(m[0], 64)
	if err != nil || math.IsInf(v, 0) {
		return nil
	}
	d := decimal.NewFromFloat(v)
	return &d
}

// trimLeadingSpace drops the white space a browser skips before a number:
// ASCII and Unicode spaces, line separators and the byte order mark.
func trimLeadingSpace(raw string) string {
	return strings.TrimLeftFunc(raw, func(r rune) bool {
		return r == '\uFEFF' || (r != '\u0085' && unicode.IsSpace(r))
	})
}
