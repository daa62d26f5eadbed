package dto

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FlexString is a form value that accepts either a JSON string or a bare JSON
// number, so {"age": 34} and {"age": "34"} bind the same way. The raw text is
// kept and parsed later with form-number semantics.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*f = FlexString(numberText(n.String()))
		return nil
	}
}

// numberText renders a JSON number in exponent notation the way a browser
// prints the parsed value, so 1e2 reads as "100" and 1e400 as "Infinity".
// Plain tokens are kept as written.
func numberText(raw string) string {
	if !strings.ContainsAny(raw, "eE") {
		return raw
	}
	v, err := strconv.ParseFloat(raw, 64)
	switch {
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case err != nil:
		return raw
	}
	if abs := math.Abs(v); v == 0 || (abs >= 1e-7 && abs < 1e21) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// String returns the raw value
func (f FlexString) String() string {
	return string(f)
}
