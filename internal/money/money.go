package money

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

var ErrInvalidAmount = errors.New("invalid monetary amount")

// Cents is a monetary amount in cents. JSON carries decimal dollars; decoding
// is lenient: missing, null, or non-numeric input becomes 0 instead of failing,
// so a half-filled form never produces a decoding error.
type Cents int64

func (c *Cents) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*c = 0
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	v, err := ParseDecimal(s)
	if err != nil {
		*c = 0
		return nil
	}
	*c = v
	return nil
}

func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(c.String()), nil
}

// String renders the amount as decimal dollars, e.g. 1234 -> "12.34".
func (c Cents) String() string {
	v := int64(c)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return sign + strconv.FormatInt(v/100, 10) + "." + pad2(v%100)
}

func pad2(v int64) string {
	s := strconv.FormatInt(v, 10)
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// ParseDecimal converts a decimal string to cents. Both dot and comma decimal
// separators are accepted. Anything beyond two fractional digits is rounded
// half-up on the third digit.
func ParseDecimal(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", ".")

	negative := false
	if strings.HasPrefix(s, "+") {
		s = s[1:]
	} else if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}
	if s == "" {
		return 0, ErrInvalidAmount
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	frac := int64(0)
	switch {
	case len(fracPart) == 0:
	case len(fracPart) == 1:
		frac = int64(fracPart[0]-'0') * 10
	default:
		frac = int64(fracPart[0]-'0')*10 + int64(fracPart[1]-'0')
		if len(fracPart) > 2 && fracPart[2] >= '5' {
			frac++
		}
	}

	if iv > (math.MaxInt64-frac)/100 {
		return 0, ErrInvalidAmount
	}
	cents := iv*100 + frac
	if negative {
		cents = -cents
	}
	return Cents(cents), nil
}
