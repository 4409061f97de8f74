// Package display renders calculator output for the terminal.
package display

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rustyeddy/lotsize/journal"
	"github.com/rustyeddy/lotsize/market"
	"github.com/rustyeddy/lotsize/risk"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(highlight).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	valueStyle = lipgloss.NewStyle().
			Bold(true)

	lotStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(special)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(highlight).
			Padding(0, 2)

	noteStyle = lipgloss.NewStyle().
			Foreground(subtle).
			Italic(true)
)

// Result renders one calculation: the three headline figures, the pip
// value, and the conversion rates used.
func Result(res risk.Result) string {
	if !res.Success {
		return Error(res.Error)
	}

	figure := func(label, value string, style lipgloss.Style) string {
		return lipgloss.JoinVertical(lipgloss.Left,
			labelStyle.Render(label),
			style.Render(value))
	}

	gap := "    "
	row := lipgloss.JoinHorizontal(lipgloss.Top,
		figure("Risk Amount", fmt.Sprintf("$%.2f", res.RiskAmount), valueStyle), gap,
		figure("Position Size", fmt.Sprintf("%.2f Lots", res.LotSize), lotStyle), gap,
		figure("Pips", fmt.Sprintf("%.1f", res.PipDistance), valueStyle), gap,
		figure("Pip Value", fmt.Sprintf("$%.4f/lot", res.PipValue), valueStyle),
	)

	var b strings.Builder
	b.WriteString(titleStyle.Render(res.Instrument))
	b.WriteString("\n\n")
	b.WriteString(row)
	if len(res.Conversions) > 0 {
		b.WriteString("\n\n")
		b.WriteString(labelStyle.Render("Conversion Rates Used:"))
		for _, c := range res.Conversions {
			b.WriteString("\n  ")
			b.WriteString(c)
		}
	}
	return boxStyle.Render(b.String())
}

// Error renders a failure message.
func Error(msg string) string {
	return errorStyle.Render("Error: " + msg)
}

// Rates renders a rate table. Gold is shown as its USD price per ounce.
func Rates(t market.RateTable, codes []market.Currency) string {
	if len(codes) == 0 {
		codes = t.Codes()
	}

	tbl := newTable("Code", "Per USD", "USD Value")
	for _, c := range codes {
		r, err := t.Rate(c)
		if errors.Is(err, market.ErrInvalidRate) {
			tbl.Row(string(c), "invalid", "")
			continue
		}
		if err != nil {
			tbl.Row(string(c), "missing", "")
			continue
		}
		if c == market.XAU {
			tbl.Row(string(c), fmt.Sprintf("%.6f", 1/r), fmt.Sprintf("%.2f", r))
			continue
		}
		tbl.Row(string(c), fmt.Sprintf("%.4f", r), fmt.Sprintf("%.6f", 1/r))
	}

	return tbl.String() + "\n" + noteStyle.Render("as of "+t.AsOf().Format("2006-01-02 15:04 MST"))
}

// Cross renders a single conversion.
func Cross(from, to market.Currency, rate float64) string {
	return fmt.Sprintf("%s %s",
		labelStyle.Render(fmt.Sprintf("1 %s =", from)),
		valueStyle.Render(fmt.Sprintf("%.6f %s", rate, to)))
}

// Pairs renders the instrument registry with pip sizes. When t is non-nil
// each pair is quoted from it.
func Pairs(insts []market.Instrument, calc risk.Calculator, t *market.RateTable) string {
	headers := []string{"Pair", "Pip Size", "Precision"}
	if t != nil {
		headers = append(headers, "Quote")
	}

	tbl := newTable(headers...)
	for _, inst := range insts {
		row := []string{
			inst.Symbol(),
			fmt.Sprintf("%g", calc.PipSize(inst)),
			fmt.Sprintf("%d", inst.Precision()),
		}
		if t != nil {
			q, err := market.Quote(*t, inst)
			if err != nil {
				row = append(row, "n/a")
			} else {
				row = append(row, inst.FormatPrice(q))
			}
		}
		tbl.Row(row...)
	}
	return tbl.String()
}

// History renders journal records, newest first as given.
func History(recs []journal.CalculationRecord) string {
	if len(recs) == 0 {
		return noteStyle.Render("No calculations recorded yet.")
	}

	tbl := newTable("Time", "Pair", "Side", "Entry", "Stop", "Risk $", "Pips", "Lots", "")
	for _, r := range recs {
		status := "ok"
		if !r.Success {
			status = r.Error
		}
		tbl.Row(
			r.Time.Local().Format("2006-01-02 15:04:05"),
			r.Instrument,
			r.Direction,
			fmt.Sprintf("%g", r.Entry),
			fmt.Sprintf("%g", r.Stop),
			fmt.Sprintf("%.2f", r.RiskAmount),
			fmt.Sprintf("%.1f", r.PipDistance),
			fmt.Sprintf("%.2f", r.LotSize),
			status,
		)
	}
	return tbl.String()
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(highlight)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...)
}
