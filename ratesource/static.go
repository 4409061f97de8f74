package ratesource

import (
	"context"
	"fmt"
	"time"

	"github.com/rustyeddy/lotsize/market"
)

// Static serves a fixed table, for offline use.
type Static struct {
	table market.RateTable
}

// NewStatic builds a table from code -> units per USD. goldPrice, USD per
// ounce, fills XAU when rates has no entry for it.
func NewStatic(rates map[string]float64, goldPrice float64, asOf time.Time) (*Static, error) {
	m := make(map[market.Currency]float64, len(rates)+1)
	for code, r := range rates {
		c, err := market.ParseCurrency(code)
		if err != nil {
			return nil, err
		}
		if !market.ValidRate(r) {
			return nil, fmt.Errorf("rate for %s must be positive and finite, got %v", c, r)
		}
		m[c] = r
	}
	if _, ok := m[market.XAU]; !ok && market.ValidRate(goldPrice) {
		m[market.XAU] = goldPrice
	}
	return &Static{table: market.NewRateTable(m, asOf)}, nil
}

func (s *Static) GetRates(ctx context.Context, base market.Currency) (market.RateTable, error) {
	if err := checkBase(base); err != nil {
		return market.RateTable{}, err
	}
	return s.table, nil
}
