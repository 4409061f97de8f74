package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rustyeddy/lotsize/market"
	"github.com/rustyeddy/lotsize/risk"
	"gopkg.in/yaml.v3"
)

// Provider names for RatesConfig.Provider.
const (
	ProviderExchangeRateAPI = "exchangerate-api"
	ProviderStatic          = "static"
)

// Environment overrides, read from the process or a .env file.
const (
	EnvAPIKey    = "LOTSIZE_API_KEY"
	EnvGoldPrice = "LOTSIZE_GOLD_PRICE"
	EnvProvider  = "LOTSIZE_RATES_PROVIDER"
)

// Config represents the complete calculator configuration
type Config struct {
	Account AccountConfig `json:"account" yaml:"account"`
	Risk    RiskConfig    `json:"risk" yaml:"risk"`
	Gold    GoldConfig    `json:"gold" yaml:"gold"`
	Rates   RatesConfig   `json:"rates" yaml:"rates"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Prefs   PrefsConfig   `json:"prefs" yaml:"prefs"`
}

// AccountConfig describes the trading account
type AccountConfig struct {
	Currency string  `json:"currency" yaml:"currency"`
	Capital  float64 `json:"capital" yaml:"capital"`
}

// RiskConfig holds the defaults offered by the calculator form
type RiskConfig struct {
	Percent   float64 `json:"percent" yaml:"percent"`     // 1 means 1%
	StopPips  float64 `json:"stop_pips" yaml:"stop_pips"` // default stop distance
	Direction string  `json:"direction" yaml:"direction"` // "buy" or "sell"
}

// GoldConfig fixes the gold price fallback and pip convention
type GoldConfig struct {
	Price          float64 `json:"price" yaml:"price"`                     // USD per ounce, used when the provider has none
	PipSize        float64 `json:"pip_size" yaml:"pip_size"`               // USD per ounce per pip
	ContractOunces float64 `json:"contract_ounces" yaml:"contract_ounces"` // ounces per standard lot
}

// RatesConfig selects and tunes the exchange rate source
type RatesConfig struct {
	Provider string             `json:"provider" yaml:"provider"`
	BaseURL  string             `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	APIKey   string             `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	Timeout  string             `json:"timeout,omitempty" yaml:"timeout,omitempty"` // e.g. "10s"
	Retries  int                `json:"retries" yaml:"retries"`
	Static   map[string]float64 `json:"static,omitempty" yaml:"static,omitempty"` // code -> units per USD
}

// ParseTimeout converts the timeout string to time.Duration
func (r RatesConfig) ParseTimeout() (time.Duration, error) {
	if r.Timeout == "" {
		return 0, nil
	}
	return time.ParseDuration(r.Timeout)
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type string `json:"type" yaml:"type"` // "csv", "sqlite" or "none"
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// PrefsConfig locates the store of last-used form values
type PrefsConfig struct {
	Path string `json:"path,omitempty" yaml:"path,omitempty"` // empty keeps them in memory
}

// LoadFromFile loads configuration from a file (JSON or YAML)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides secrets and switches from the environment. Values in
// the process environment win over those in the .env files; with no files
// given an absent ./.env is not an error.
func (c *Config) ApplyEnv(files ...string) error {
	env, err := godotenv.Read(files...)
	if err != nil {
		if len(files) > 0 || !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read env: %w", err)
		}
		env = map[string]string{}
	}

	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return env[key]
	}

	if v := lookup(EnvAPIKey); v != "" {
		c.Rates.APIKey = v
	}
	if v := lookup(EnvProvider); v != "" {
		c.Rates.Provider = v
	}
	if v := lookup(EnvGoldPrice); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvGoldPrice, err)
		}
		c.Gold.Price = price
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Account.Currency != string(market.USD) {
		return fmt.Errorf("account.currency must be USD")
	}
	if c.Account.Capital < 0 {
		return fmt.Errorf("account.capital must not be negative")
	}
	if c.Risk.Percent <= 0 || c.Risk.Percent > 100 {
		return fmt.Errorf("risk.percent must be between 0 and 100")
	}
	if c.Risk.StopPips <= 0 {
		return fmt.Errorf("risk.stop_pips must be positive")
	}
	if _, err := risk.ParseDirection(c.Risk.Direction); err != nil {
		return fmt.Errorf("risk.direction: %w", err)
	}
	if !market.ValidRate(c.Gold.Price) {
		return fmt.Errorf("gold.price must be positive")
	}
	if _, err := c.Calculator(); err != nil {
		return fmt.Errorf("gold: %w", err)
	}

	switch c.Rates.Provider {
	case ProviderExchangeRateAPI:
		if c.Rates.BaseURL == "" {
			return fmt.Errorf("rates.base_url is required for %s", ProviderExchangeRateAPI)
		}
	case ProviderStatic:
		if len(c.Rates.Static) == 0 {
			return fmt.Errorf("rates.static must list at least one rate")
		}
	default:
		return fmt.Errorf("rates.provider must be '%s' or '%s'", ProviderExchangeRateAPI, ProviderStatic)
	}
	if _, err := c.Rates.ParseTimeout(); err != nil {
		return fmt.Errorf("rates.timeout: %w", err)
	}
	if c.Rates.Retries < 0 {
		return fmt.Errorf("rates.retries must not be negative")
	}
	for code, rate := range c.Rates.Static {
		if _, err := market.ParseCurrency(code); err != nil {
			return fmt.Errorf("rates.static: %w", err)
		}
		if !market.ValidRate(rate) {
			return fmt.Errorf("rates.static.%s must be positive and finite", code)
		}
	}

	switch c.Journal.Type {
	case "none":
	case "csv", "sqlite":
		if c.Journal.Path == "" {
			return fmt.Errorf("journal.path required for %s type", c.Journal.Type)
		}
	default:
		return fmt.Errorf("journal.type must be 'csv', 'sqlite' or 'none'")
	}
	return nil
}

// GoldSpec returns the gold pip convention
func (c *Config) GoldSpec() risk.GoldSpec {
	return risk.GoldSpec{PipSize: c.Gold.PipSize, ContractOunces: c.Gold.ContractOunces}
}

// Calculator builds the position sizer for this configuration
func (c *Config) Calculator() (risk.Calculator, error) {
	return risk.NewCalculator(c.GoldSpec())
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			Currency: "USD",
			Capital:  1000,
		},
		Risk: RiskConfig{
			Percent:   1,
			StopPips:  20,
			Direction: "buy",
		},
		Gold: GoldConfig{
			Price:          1950.25,
			PipSize:        risk.DefaultGold.PipSize,
			ContractOunces: risk.DefaultGold.ContractOunces,
		},
		Rates: RatesConfig{
			Provider: ProviderExchangeRateAPI,
			BaseURL:  "https://v6.exchangerate-api.com/v6",
			Timeout:  "10s",
			Retries:  2,
			Static: map[string]float64{
				"EUR": 0.92,
				"GBP": 0.79,
				"JPY": 150,
				"CAD": 1.36,
				"CHF": 0.88,
				"AUD": 1.52,
			},
		},
		Journal: JournalConfig{
			Type: "sqlite",
			Path: "./journal.db",
		},
		Prefs: PrefsConfig{
			Path: "./prefs.db",
		},
	}
}
