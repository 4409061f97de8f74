package market

import (
	"fmt"
	"strings"
)

// Currency is an ISO 4217 code, or XAU for spot gold.
type Currency string

const (
	USD Currency = "USD"
	JPY Currency = "JPY"
	XAU Currency = "XAU"
)

// ParseCurrency normalizes s and checks it looks like a currency code.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("invalid currency code %q", s)
	}
	return c, nil
}

// Valid reports whether c is three upper-case ASCII letters.
func (c Currency) Valid() bool {
	if len(c) != 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		if c[i] < 'A' || c[i] > 'Z' {
			return false
		}
	}
	return true
}

func (c Currency) String() string {
	return string(c)
}
