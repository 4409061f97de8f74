package cmd

import (
	"fmt"

	"github.com/rustyeddy/lotsize/internal/display"
	"github.com/rustyeddy/lotsize/market"
	"github.com/spf13/cobra"
)

var ratesCmd = &cobra.Command{
	Use:   "rates [CODE...]",
	Short: "Show the USD rate table",
	Long: `Fetch the current rate table and print it. With --from and --to print a
single cross rate instead.

Examples:
  lotsize rates
  lotsize rates EUR JPY XAU
  lotsize rates --from EUR --to JPY --offline`,
	RunE: runRates,
}

var (
	ratesFrom    string
	ratesTo      string
	ratesOffline bool
)

func init() {
	rootCmd.AddCommand(ratesCmd)

	ratesCmd.Flags().StringVar(&ratesFrom, "from", "", "convert from this currency")
	ratesCmd.Flags().StringVar(&ratesTo, "to", "", "convert to this currency")
	ratesCmd.Flags().BoolVar(&ratesOffline, "offline", false, "use the static rate table from config")
}

func runRates(cmd *cobra.Command, args []string) error {
	if (ratesFrom == "") != (ratesTo == "") {
		return fmt.Errorf("--from and --to go together")
	}

	var codes []market.Currency
	for _, a := range args {
		c, err := market.ParseCurrency(a)
		if err != nil {
			return err
		}
		codes = append(codes, c)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	src, err := openSource(cfg, ratesOffline, log)
	if err != nil {
		return err
	}
	t, err := fetchRates(cmd.Context(), src, cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if ratesFrom != "" {
		line, err := crossLine(t, ratesFrom, ratesTo)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, line)
		return nil
	}

	fmt.Fprintln(out, display.Rates(t, codes))
	return nil
}

func crossLine(t market.RateTable, from, to string) (string, error) {
	f, err := market.ParseCurrency(from)
	if err != nil {
		return "", err
	}
	c, err := market.ParseCurrency(to)
	if err != nil {
		return "", err
	}
	r, err := market.CrossRate(t, f, c)
	if err != nil {
		return "", err
	}
	return display.Cross(f, c, r), nil
}
