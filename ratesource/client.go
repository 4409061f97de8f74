package ratesource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rustyeddy/lotsize/market"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the exchangerate-api.com v6 endpoint.
	DefaultBaseURL = "https://v6.exchangerate-api.com/v6"

	defaultTimeout   = 30 * time.Second
	defaultRetryWait = 500 * time.Millisecond
)

// Client fetches the latest rates from exchangerate-api.com.
type Client struct {
	http      *resty.Client
	apiKey    string
	goldPrice float64
	log       *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithGoldPrice sets the USD per ounce price used when the provider does
// not quote XAU.
func WithGoldPrice(price float64) Option {
	return func(c *Client) {
		c.goldPrice = price
	}
}

// WithTimeout sets the per request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// WithRetries retries transport errors and 5xx responses n times.
func WithRetries(n int, wait time.Duration) Option {
	return func(c *Client) {
		c.http.SetRetryCount(n).
			SetRetryWaitTime(wait).
			SetRetryMaxWaitTime(10 * wait)
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// NewClient creates a new exchange rate client
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(defaultTimeout).
			AddRetryCondition(func(r *resty.Response, err error) bool {
				return err != nil || (r != nil && r.StatusCode() >= 500)
			}),
		apiKey: apiKey,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// latestResponse is the body of GET /{key}/latest/{base}.
type latestResponse struct {
	Result             string             `json:"result"`
	ErrorType          string             `json:"error-type"`
	BaseCode           string             `json:"base_code"`
	TimeLastUpdateUnix int64              `json:"time_last_update_unix"`
	ConversionRates    map[string]float64 `json:"conversion_rates"`
}

// GetRates fetches the latest table for base, which must be USD.
func (c *Client) GetRates(ctx context.Context, base market.Currency) (market.RateTable, error) {
	if err := checkBase(base); err != nil {
		return market.RateTable{}, err
	}
	if c.apiKey == "" {
		return market.RateTable{}, errors.New("exchange rate API key not configured")
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"key":  c.apiKey,
			"base": string(base),
		}).
		Get("/{key}/latest/{base}")
	if err != nil {
		return market.RateTable{}, fmt.Errorf("fetch rates: %w", err)
	}

	var body latestResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		if resp.IsError() {
			return market.RateTable{}, fmt.Errorf("API error (status %d): %s", resp.StatusCode(), resp.String())
		}
		return market.RateTable{}, fmt.Errorf("decode response: %w", err)
	}
	if body.Result == "error" || resp.IsError() {
		return market.RateTable{}, fmt.Errorf("API error (status %d): %s", resp.StatusCode(), body.ErrorType)
	}
	if body.BaseCode != "" && body.BaseCode != string(base) {
		return market.RateTable{}, fmt.Errorf("asked for %s rates, got %s", base, body.BaseCode)
	}
	if len(body.ConversionRates) == 0 {
		return market.RateTable{}, errors.New("response has no conversion rates")
	}

	rates := make(map[market.Currency]float64, len(body.ConversionRates)+1)
	for code, r := range body.ConversionRates {
		cur, err := market.ParseCurrency(code)
		if err != nil {
			c.log.Warn("skipping rate", zap.String("code", code), zap.Error(err))
			continue
		}
		if !market.ValidRate(r) {
			c.log.Warn("skipping rate", zap.String("code", code), zap.Float64("rate", r))
			continue
		}
		rates[cur] = r
	}

	// Providers quote XAU per USD; the table keeps gold as USD per ounce.
	if r, ok := rates[market.XAU]; ok && market.ValidRate(1/r) {
		rates[market.XAU] = 1 / r
		c.log.Debug("gold from provider", zap.Float64("price", rates[market.XAU]))
	} else if market.ValidRate(c.goldPrice) {
		rates[market.XAU] = c.goldPrice
		c.log.Debug("gold from config", zap.Float64("price", c.goldPrice))
	} else {
		delete(rates, market.XAU)
	}

	asOf := time.Now().UTC()
	if body.TimeLastUpdateUnix > 0 {
		asOf = time.Unix(body.TimeLastUpdateUnix, 0).UTC()
	}

	c.log.Info("fetched rates",
		zap.String("base", string(base)),
		zap.Int("count", len(rates)),
		zap.Time("as_of", asOf))

	return market.NewRateTable(rates, asOf), nil
}
