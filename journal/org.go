package journal

import (
	"fmt"
	"strings"
	"time"
)

// FormatCalculationOrg renders a record as an Org-mode entry for a trading
// notebook. The sizing facts live in a PROPERTIES drawer so they stay
// searchable; the Plan and Review headings are left for the trader.
func FormatCalculationOrg(c CalculationRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** Sizing: %s %s (%s)\n", c.Instrument, c.Direction, shortID(c.ID))
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":ID: %s\n", c.ID)
	fmt.Fprintf(&b, ":TIME: %s\n", c.Time.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, ":INSTRUMENT: %s\n", c.Instrument)
	fmt.Fprintf(&b, ":DIRECTION: %s\n", c.Direction)
	fmt.Fprintf(&b, ":ENTRY: %g\n", c.Entry)
	fmt.Fprintf(&b, ":STOP: %g\n", c.Stop)
	fmt.Fprintf(&b, ":CAPITAL: %.2f\n", c.Capital)
	fmt.Fprintf(&b, ":RISK_PERCENT: %g\n", c.RiskPercent)
	if c.Success {
		fmt.Fprintf(&b, ":RISK_AMOUNT: %.2f\n", c.RiskAmount)
		fmt.Fprintf(&b, ":PIPS: %.1f\n", c.PipDistance)
		fmt.Fprintf(&b, ":PIP_VALUE: %.4f\n", c.PipValue)
		fmt.Fprintf(&b, ":LOTS: %.2f\n", c.LotSize)
		if len(c.Conversions) > 0 {
			fmt.Fprintf(&b, ":CONVERSIONS: %s\n", strings.Join(c.Conversions, conversionSep))
		}
	} else {
		fmt.Fprintf(&b, ":ERROR: %s\n", c.Error)
	}
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Plan\n- \n\n")
	b.WriteString("*** Review\n- \n")

	return b.String()
}

// FormatCalculationsOrg renders multiple records separated by blank lines.
func FormatCalculationsOrg(recs []CalculationRecord) string {
	var b strings.Builder
	for i, c := range recs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatCalculationOrg(c))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
