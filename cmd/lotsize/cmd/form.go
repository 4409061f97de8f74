package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rustyeddy/lotsize/market"
	"github.com/rustyeddy/lotsize/prefs"
	"github.com/rustyeddy/lotsize/risk"
)

// promptForm lets the user edit f in the terminal. A blank stop is derived
// from stopPips once the entry is known.
func promptForm(f *prefs.Form, calc risk.Calculator, stopPips float64) error {
	var (
		pair    = f.Pair
		side    = f.Side
		entry   = fmtField(f.Entry)
		stop    = fmtField(f.Stop)
		capital = fmtField(f.Capital)
		riskPct = fmtField(f.RiskPercent)
	)

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Currency pair").
				Options(pairOptions(pair)...).
				Value(&pair),
			huh.NewSelect[string]().
				Title("Direction").
				Options(
					huh.NewOption("Buy", string(risk.Buy)),
					huh.NewOption("Sell", string(risk.Sell)),
				).
				Value(&side),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Entry price").
				Value(&entry).
				Validate(positive("entry")),
			huh.NewInput().
				Title("Stop loss").
				Description(fmt.Sprintf("Leave blank for %g pips from entry", stopPips)).
				Value(&stop).
				Validate(optional(positive("stop"))),
			huh.NewInput().
				Title("Capital (USD)").
				Value(&capital).
				Validate(nonNegative("capital")),
			huh.NewInput().
				Title("Risk %").
				Value(&riskPct).
				Validate(percent),
		),
	).Run()
	if err != nil {
		return err
	}

	f.Pair = pair
	f.Side = side
	f.Entry, _ = strconv.ParseFloat(strings.TrimSpace(entry), 64)
	f.Capital, _ = strconv.ParseFloat(strings.TrimSpace(capital), 64)
	f.RiskPercent, _ = strconv.ParseFloat(strings.TrimSpace(riskPct), 64)
	if strings.TrimSpace(stop) == "" {
		f.Stop = 0
		f.Stop = suggestStop(calc, *f, stopPips)
	} else {
		f.Stop, _ = strconv.ParseFloat(strings.TrimSpace(stop), 64)
	}
	return nil
}

// pairOptions lists the registry, plus current when it is not listed.
func pairOptions(current string) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(market.Instruments)+1)
	found := false
	for _, inst := range market.Instruments {
		opts = append(opts, huh.NewOption(inst.Symbol(), inst.Symbol()))
		if inst.Symbol() == current {
			found = true
		}
	}
	if !found && current != "" {
		if inst, err := market.ParseInstrument(current); err == nil {
			opts = append(opts, huh.NewOption(inst.Symbol(), current))
		}
	}
	return opts
}

func fmtField(x float64) string {
	if x == 0 {
		return ""
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}

func parseField(name, s string) (float64, error) {
	x, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	return x, nil
}

func positive(name string) func(string) error {
	return func(s string) error {
		x, err := parseField(name, s)
		if err != nil {
			return err
		}
		if x <= 0 {
			return fmt.Errorf("%s must be greater than zero", name)
		}
		return nil
	}
}

func nonNegative(name string) func(string) error {
	return func(s string) error {
		x, err := parseField(name, s)
		if err != nil {
			return err
		}
		if x < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
		return nil
	}
}

func percent(s string) error {
	x, err := parseField("risk", s)
	if err != nil {
		return err
	}
	if x < 0 || x > 100 {
		return fmt.Errorf("risk must be between 0 and 100")
	}
	return nil
}

func optional(fn func(string) error) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		return fn(s)
	}
}
