package cmd

import (
	"fmt"

	"github.com/rustyeddy/lotsize/internal/display"
	"github.com/rustyeddy/lotsize/market"
	"github.com/spf13/cobra"
)

var pairsCmd = &cobra.Command{
	Use:   "pairs",
	Short: "List the built-in instruments",
	Long: `List the instruments offered by the calculator with their pip size and
quoting precision. With --quote each pair is priced from the rate table.

Any valid pair can be sized, listed or not.`,
	Args: cobra.NoArgs,
	RunE: runPairs,
}

var (
	pairsQuote   bool
	pairsOffline bool
)

func init() {
	rootCmd.AddCommand(pairsCmd)

	pairsCmd.Flags().BoolVarP(&pairsQuote, "quote", "q", false, "show a price for each pair")
	pairsCmd.Flags().BoolVar(&pairsOffline, "offline", false, "quote from the static rate table")
}

func runPairs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	calc, err := cfg.Calculator()
	if err != nil {
		return err
	}

	var table *market.RateTable
	if pairsQuote {
		log, err := newLogger()
		if err != nil {
			return err
		}
		defer log.Sync()

		src, err := openSource(cfg, pairsOffline, log)
		if err != nil {
			return err
		}
		t, err := fetchRates(cmd.Context(), src, cfg)
		if err != nil {
			return err
		}
		table = &t
	}

	fmt.Fprintln(cmd.OutOrStdout(), display.Pairs(market.Instruments, calc, table))
	return nil
}
