package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/rustyeddy/lotsize/config"
	"github.com/rustyeddy/lotsize/internal/logging"
	"github.com/rustyeddy/lotsize/market"
	"github.com/rustyeddy/lotsize/ratesource"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "lotsize",
	Short: "Risk-based FX and gold position sizing",
	Long: `Lotsize turns an account size, a risk percentage and an entry/stop pair
into a position size in standard lots.

It provides tools for:
  - Sizing majors, yen pairs, crosses and XAU/USD from live or static rates
  - Showing the USD conversion rates behind every pip value
  - Journaling calculations to CSV or SQLite
  - Remembering the last form values between sessions

Rates come from exchangerate-api.com; set LOTSIZE_API_KEY or use --offline.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	cfgFile string
	envFile string
	verbose bool
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON; defaults are used when empty)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "dotenv file with LOTSIZE_* overrides (default ./.env if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")
}

// loadConfig reads the config file, if any, then applies the environment.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if cfgFile != "" {
		var err error
		cfg, err = config.LoadFromFile(cfgFile)
		if err != nil {
			return nil, err
		}
	}

	var files []string
	if envFile != "" {
		files = append(files, envFile)
	}
	if err := cfg.ApplyEnv(files...); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newLogger() (*zap.Logger, error) {
	return logging.New(verbose)
}

// openSource picks the rate source; offline forces the static table.
func openSource(cfg *config.Config, offline bool, log *zap.Logger) (ratesource.Source, error) {
	if offline {
		c := *cfg
		c.Rates.Provider = config.ProviderStatic
		return ratesource.New(&c, log)
	}
	return ratesource.New(cfg, log)
}

// fetchRates loads one USD based table, bounded by the configured timeout.
func fetchRates(ctx context.Context, src ratesource.Source, cfg *config.Config) (market.RateTable, error) {
	timeout, err := cfg.Rates.ParseTimeout()
	if err != nil {
		return market.RateTable{}, err
	}
	if timeout > 0 {
		// every retry shares the one deadline
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.Rates.Retries+1)*timeout)
		defer cancel()
	}

	t, err := src.GetRates(ctx, market.USD)
	if err != nil {
		return market.RateTable{}, fmt.Errorf("load rates: %w", err)
	}
	return t, nil
}
