package cmd

import (
	"fmt"

	"github.com/rustyeddy/lotsize/internal/display"
	"github.com/rustyeddy/lotsize/journal"
	"github.com/rustyeddy/lotsize/risk"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history [id]",
	Short: "Show journaled calculations",
	Long: `List the most recent calculations from the SQLite journal, newest first,
or show a single calculation by ID.

Examples:
  lotsize history
  lotsize history --limit 50
  lotsize history --org >> ~/notes/trading.org
  lotsize history 01HQ3Z9X8K2J4M6N8P0R2T4V6W`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

var (
	historyLimit int
	historyOrg   bool
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of calculations to list")
	historyCmd.Flags().BoolVar(&historyOrg, "org", false, "print Org-mode entries instead of a table")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Journal.Type != "sqlite" {
		return fmt.Errorf("history needs the sqlite journal (journal.type is %q)", cfg.Journal.Type)
	}

	j, err := journal.NewSQLite(cfg.Journal.Path)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		rec, err := j.GetCalculation(ctx, args[0])
		if err != nil {
			return fmt.Errorf("get calculation: %w", err)
		}
		if historyOrg {
			fmt.Fprintln(out, journal.FormatCalculationOrg(rec))
			return nil
		}
		fmt.Fprintln(out, display.History([]journal.CalculationRecord{rec}))
		if rec.Success {
			fmt.Fprintln(out, display.Result(recordResult(rec)))
		}
		return nil
	}

	recs, err := j.ListCalculations(ctx, historyLimit)
	if err != nil {
		return fmt.Errorf("query calculations: %w", err)
	}
	if historyOrg {
		fmt.Fprintln(out, journal.FormatCalculationsOrg(recs))
		return nil
	}
	fmt.Fprintln(out, display.History(recs))
	return nil
}

func recordResult(rec journal.CalculationRecord) risk.Result {
	return risk.Result{
		Success:     rec.Success,
		Instrument:  rec.Instrument,
		RiskAmount:  rec.RiskAmount,
		PipDistance: rec.PipDistance,
		PipValue:    rec.PipValue,
		LotSize:     rec.LotSize,
		Conversions: rec.Conversions,
		Error:       rec.Error,
	}
}
