// Package parsing converts the free-form amount and date strings found in
// bank exports into decimals and dates.
package parsing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

// Tokens some exports emit for missing values. They must never parse as zero.
var nonNumericTokens = map[string]struct{}{
	"nan":       {},
	"none":      {},
	"null":      {},
	"inf":       {},
	"-inf":      {},
	"+inf":      {},
	"infinity":  {},
	"-infinity": {},
}

var amountReplacer = strings.NewReplacer(
	"$", "", "€", "", "£", "", "¥", "", "₹", "",
	",", "", " ", "", " ", "",
)

// ParseAmount parses a currency-formatted amount. "(75.00)" is negative;
// currency symbols and thousands separators are ignored.
func ParseAmount(text string) (decimal.Decimal, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty value", ErrInvalidAmount)
	}
	if _, ok := nonNumericTokens[strings.ToLower(s)]; ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, text)
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = amountReplacer.Replace(s)
	s = strings.TrimPrefix(s, "+")
	if strings.HasSuffix(s, "-") {
		// Trailing minus, as in "45.67-".
		negative = !negative
		s = strings.TrimSuffix(s, "-")
	}
	if strings.HasPrefix(s, "-") && negative {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, text)
	}
	if s == "" || s == "-" || s == "." {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, text)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, text)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

// IsBlankAmount reports whether text carries no amount at all, which split
// debit/credit columns use for "nothing on this side".
func IsBlankAmount(text string) bool {
	s := strings.TrimSpace(text)
	return s == "" || s == "-"
}
