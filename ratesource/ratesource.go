// Package ratesource fetches USD based rate tables for the position sizer.
package ratesource

import (
	"context"
	"fmt"
	"time"

	"github.com/rustyeddy/lotsize/config"
	"github.com/rustyeddy/lotsize/market"
	"go.uber.org/zap"
)

// Source supplies a complete rate table for one calculation session.
type Source interface {
	GetRates(ctx context.Context, base market.Currency) (market.RateTable, error)
}

// New returns the source selected by cfg.Rates.Provider.
func New(cfg *config.Config, log *zap.Logger) (Source, error) {
	switch cfg.Rates.Provider {
	case config.ProviderStatic:
		return NewStatic(cfg.Rates.Static, cfg.Gold.Price, time.Now())

	case config.ProviderExchangeRateAPI:
		timeout, err := cfg.Rates.ParseTimeout()
		if err != nil {
			return nil, fmt.Errorf("rates timeout: %w", err)
		}
		opts := []Option{
			WithGoldPrice(cfg.Gold.Price),
			WithRetries(cfg.Rates.Retries, defaultRetryWait),
			WithLogger(log),
		}
		if timeout > 0 {
			opts = append(opts, WithTimeout(timeout))
		}
		return NewClient(cfg.Rates.BaseURL, cfg.Rates.APIKey, opts...), nil
	}
	return nil, fmt.Errorf("unknown rates provider %q", cfg.Rates.Provider)
}

func checkBase(base market.Currency) error {
	if base != market.USD {
		return fmt.Errorf("unsupported base currency %s: rate tables are USD based", base)
	}
	return nil
}
