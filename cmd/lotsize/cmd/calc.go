package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rustyeddy/lotsize/config"
	"github.com/rustyeddy/lotsize/internal/display"
	"github.com/rustyeddy/lotsize/journal"
	"github.com/rustyeddy/lotsize/market"
	"github.com/rustyeddy/lotsize/prefs"
	"github.com/rustyeddy/lotsize/risk"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Calculate a position size",
	Long: `Calculate the lot size that risks a fixed share of capital between the
entry price and the stop loss.

Values not given on the command line come from the last session, then from
the config file. Without --stop the stop is placed --stop-pips away from the
entry on the losing side.

Examples:
  lotsize calc --pair EUR/USD --entry 1.1000 --stop 1.0990
  lotsize calc --pair USD/JPY --entry 150 --stop-pips 15 --risk 0.5
  lotsize calc --pair XAU/USD --entry 1950.25 --stop 1945 --offline
  lotsize calc -i`,
	Args: cobra.NoArgs,
	RunE: runCalc,
}

var (
	calcPair        string
	calcEntry       float64
	calcStop        float64
	calcStopPips    float64
	calcCapital     float64
	calcRisk        float64
	calcSide        string
	calcInteractive bool
	calcOffline     bool
)

func init() {
	rootCmd.AddCommand(calcCmd)

	calcCmd.Flags().StringVarP(&calcPair, "pair", "p", "", "instrument, e.g. EUR/USD or GBP_JPY")
	calcCmd.Flags().Float64VarP(&calcEntry, "entry", "e", 0, "entry price")
	calcCmd.Flags().Float64VarP(&calcStop, "stop", "s", 0, "stop-loss price")
	calcCmd.Flags().Float64Var(&calcStopPips, "stop-pips", 0, "derive the stop this many pips from entry (default from config)")
	calcCmd.Flags().Float64Var(&calcCapital, "capital", 0, "account capital in USD")
	calcCmd.Flags().Float64VarP(&calcRisk, "risk", "r", 0, "risk percent of capital (1 = 1%)")
	calcCmd.Flags().StringVar(&calcSide, "side", "", "buy or sell")
	calcCmd.Flags().BoolVarP(&calcInteractive, "interactive", "i", false, "fill in the values with a form")
	calcCmd.Flags().BoolVar(&calcOffline, "offline", false, "use the static rate table from config")
}

func runCalc(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	store, err := openPrefs(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	form, err := store.Load(ctx, defaultForm(cfg))
	if err != nil {
		log.Warn("prefs unreadable, using defaults", zap.Error(err))
		form = defaultForm(cfg)
	}
	stopPips := cfg.Risk.StopPips

	flags := cmd.Flags()
	if flags.Changed("pair") {
		form.Pair = calcPair
	}
	if flags.Changed("entry") {
		form.Entry = calcEntry
	}
	if flags.Changed("capital") {
		form.Capital = calcCapital
	}
	if flags.Changed("risk") {
		form.RiskPercent = calcRisk
	}
	if flags.Changed("side") {
		form.Side = calcSide
	}
	if flags.Changed("stop-pips") {
		stopPips = calcStopPips
	}

	calc, err := cfg.Calculator()
	if err != nil {
		return err
	}
	if flags.Changed("stop") {
		form.Stop = calcStop
	} else {
		form.Stop = suggestStop(calc, form, stopPips)
	}

	if calcInteractive {
		if err := promptForm(&form, calc, stopPips); err != nil {
			return err
		}
	}

	p, err := paramsFromForm(form)
	if err != nil {
		return err
	}

	src, err := openSource(cfg, calcOffline, log)
	if err != nil {
		return err
	}
	rates, err := fetchRates(ctx, src, cfg)
	if err != nil {
		return err
	}

	j, err := journal.Open(cfg.Journal.Type, cfg.Journal.Path)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	res := session{calc: calc, journal: j, prefs: store, log: log}.run(ctx, cmd.OutOrStdout(), form, p, rates)
	if !res.Success {
		return res.Err
	}
	return nil
}

// session runs one calculation and its bookkeeping.
type session struct {
	calc    risk.Calculator
	journal journal.Journal
	prefs   prefs.Store
	log     *zap.Logger
	now     func() time.Time
}

// run sizes p against rates, prints the result, journals it and remembers
// the form. Bookkeeping failures are logged, never returned.
func (s session) run(ctx context.Context, w io.Writer, form prefs.Form, p risk.Params, rates market.RateTable) risk.Result {
	now := time.Now
	if s.now != nil {
		now = s.now
	}

	res := s.calc.Calculate(p, rates)
	s.log.Debug("calculated",
		zap.String("pair", p.Instrument),
		zap.Bool("success", res.Success),
		zap.Float64("lots", res.LotSize),
		zap.Strings("conversions", res.Conversions))

	if res.Success {
		fmt.Fprintln(w, display.Result(res))
	}

	if err := s.journal.RecordCalculation(journal.NewRecord(now(), p, res)); err != nil {
		s.log.Warn("journal write failed", zap.Error(err))
	}
	if err := s.prefs.Save(ctx, form); err != nil {
		s.log.Warn("prefs save failed", zap.Error(err))
	}
	return res
}

func openPrefs(cfg *config.Config) (prefs.Store, error) {
	if cfg.Prefs.Path == "" {
		return prefs.NewMemoryStore(), nil
	}
	s, err := prefs.NewSQLiteStore(cfg.Prefs.Path)
	if err != nil {
		return nil, fmt.Errorf("open prefs: %w", err)
	}
	return s, nil
}

// defaultForm is the form shown for fields the user never saved.
func defaultForm(cfg *config.Config) prefs.Form {
	f := prefs.DefaultForm()
	f.Capital = cfg.Account.Capital
	f.RiskPercent = cfg.Risk.Percent
	if cfg.Risk.Direction != "" {
		f.Side = cfg.Risk.Direction
	}
	return f
}

// suggestStop places the stop pips away from the entry, or keeps the form's
// stop when there is nothing to derive from.
func suggestStop(calc risk.Calculator, f prefs.Form, pips float64) float64 {
	inst, err := market.ParseInstrument(f.Pair)
	if err != nil || f.Entry <= 0 || pips <= 0 {
		return f.Stop
	}
	dir, err := risk.ParseDirection(f.Side)
	if err != nil {
		return f.Stop
	}
	return calc.DefaultStop(f.Entry, inst, dir, pips)
}

func paramsFromForm(f prefs.Form) (risk.Params, error) {
	if strings.TrimSpace(f.Pair) == "" {
		return risk.Params{}, fmt.Errorf("pair required (--pair)")
	}
	if f.Entry == 0 {
		return risk.Params{}, fmt.Errorf("entry price required (--entry)")
	}
	if f.Stop == 0 {
		return risk.Params{}, fmt.Errorf("stop price required (--stop or --stop-pips)")
	}
	dir, err := risk.ParseDirection(f.Side)
	if err != nil {
		return risk.Params{}, err
	}
	return risk.Params{
		Instrument:  f.Pair,
		Entry:       f.Entry,
		Stop:        f.Stop,
		Capital:     f.Capital,
		RiskPercent: f.RiskPercent,
		Direction:   dir,
	}, nil
}
