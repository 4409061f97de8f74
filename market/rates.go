package market

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// RateTable maps a currency to how many units of it buy 1 USD.
//
// XAU is the one exception: its entry is the gold price in USD per troy
// ounce. Read it through CrossRate or GoldPrice, never through the raw map.
// A RateTable is immutable once built; refresh by building a new one.
type RateTable struct {
	asOf  time.Time
	rates map[Currency]float64
}

// NewRateTable copies rates into a new table stamped with asOf.
func NewRateTable(rates map[Currency]float64, asOf time.Time) RateTable {
	cp := make(map[Currency]float64, len(rates))
	for c, r := range rates {
		cp[c] = r
	}
	return RateTable{asOf: asOf, rates: cp}
}

// Base is the implicit base of every entry.
func (t RateTable) Base() Currency {
	return USD
}

func (t RateTable) AsOf() time.Time {
	return t.asOf
}

func (t RateTable) Len() int {
	return len(t.rates)
}

// Rate returns the raw table entry for c. USD is always 1. Entries that
// are not positive and finite fail with ErrInvalidRate.
func (t RateTable) Rate(c Currency) (float64, error) {
	r, ok := t.rates[c]
	if !ok {
		if c == USD {
			return 1, nil
		}
		return 0, fmt.Errorf("%w: %s", ErrMissingRate, c)
	}
	if !ValidRate(r) {
		return 0, fmt.Errorf("%w: %s is %v", ErrInvalidRate, c, r)
	}
	return r, nil
}

// ValidRate reports whether r can be used as a table entry.
func ValidRate(r float64) bool {
	return r > 0 && !math.IsInf(r, 1)
}

// Has reports whether the table holds a usable entry for c.
func (t RateTable) Has(c Currency) bool {
	_, err := t.Rate(c)
	return err == nil
}

// Require fails on the first code the table lacks or holds an unusable
// entry for.
func (t RateTable) Require(codes ...Currency) error {
	for _, c := range codes {
		if _, err := t.Rate(c); err != nil {
			return err
		}
	}
	return nil
}

// GoldPrice returns the XAU entry, USD per ounce.
func (t RateTable) GoldPrice() (float64, error) {
	return t.Rate(XAU)
}

// Codes returns the table's currencies sorted alphabetically.
func (t RateTable) Codes() []Currency {
	out := make([]Currency, 0, len(t.rates))
	for c := range t.rates {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// perUSD returns units of c per 1 USD, inverting the gold price.
func (t RateTable) perUSD(c Currency) (float64, error) {
	r, err := t.Rate(c)
	if err != nil {
		return 0, err
	}
	if c == XAU {
		return divide(1, r, "USD/XAU")
	}
	return r, nil
}
