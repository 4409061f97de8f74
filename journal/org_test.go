package journal

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatCalculationOrg(t *testing.T) {
	rec := CalculationRecord{
		ID:          "01HQ3Z9X8K2J4M6N8P0R2T4V6W",
		Time:        time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Instrument:  "USD/JPY",
		Direction:   "buy",
		Entry:       150,
		Stop:        149.9,
		Capital:     1000,
		RiskPercent: 1,
		Success:     true,
		RiskAmount:  10,
		PipDistance: 10,
		PipValue:    6.666667,
		LotSize:     0.15,
		Conversions: []string{"USD/JPY: 150.000"},
	}

	out := FormatCalculationOrg(rec)
	assert.True(t, strings.HasPrefix(out, "** Sizing: USD/JPY buy (01HQ3Z9X)\n"))
	assert.Contains(t, out, ":ID: 01HQ3Z9X8K2J4M6N8P0R2T4V6W\n")
	assert.Contains(t, out, ":TIME: 2024-03-01T12:00:00Z\n")
	assert.Contains(t, out, ":STOP: 149.9\n")
	assert.Contains(t, out, ":LOTS: 0.15\n")
	assert.Contains(t, out, ":CONVERSIONS: USD/JPY: 150.000\n")
	assert.NotContains(t, out, ":ERROR:")
	assert.Contains(t, out, "*** Review")
}

func TestFormatCalculationOrg_ConversionsMatchStorage(t *testing.T) {
	rec := CalculationRecord{
		ID: "01HQ3Z9X8K2J4M6N8P0R2T4V6W", Instrument: "GBP/CAD", Direction: "sell",
		Success:     true,
		Conversions: []string{"USD/CAD: 1.3500", "GBP/USD: 1.2658"},
	}

	out := FormatCalculationOrg(rec)
	assert.Contains(t, out, ":CONVERSIONS: "+strings.Join(rec.Conversions, conversionSep)+"\n")
	assert.Equal(t, rec.Conversions, splitConversions(strings.Join(rec.Conversions, conversionSep)))
}

func TestFormatCalculationOrg_Failure(t *testing.T) {
	out := FormatCalculationOrg(CalculationRecord{
		ID: "short", Instrument: "GBP/JPY", Direction: "sell",
		Error: "missing exchange rate: GBP",
	})
	assert.Contains(t, out, "(short)")
	assert.Contains(t, out, ":ERROR: missing exchange rate: GBP\n")
	assert.NotContains(t, out, ":LOTS:")
}

func TestFormatCalculationsOrg(t *testing.T) {
	assert.Equal(t, "", FormatCalculationsOrg(nil))

	out := FormatCalculationsOrg([]CalculationRecord{{ID: "a"}, {ID: "b"}})
	assert.Equal(t, 2, strings.Count(out, "** Sizing:"))
	assert.Contains(t, out, "- \n\n\n** Sizing:")
}
