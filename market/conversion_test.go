package market

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable() RateTable {
	return NewRateTable(map[Currency]float64{
		"EUR": 0.92,
		"GBP": 0.79,
		"JPY": 150,
		"CAD": 1.36,
		"CHF": 0.88,
		"XAU": 1950.25,
	}, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
}

func TestCrossRate_FromUSD(t *testing.T) {
	t.Parallel()

	tbl := testTable()
	for _, c := range []Currency{"EUR", "GBP", "JPY", "CAD", "CHF"} {
		want, err := tbl.Rate(c)
		require.NoError(t, err)

		got, err := CrossRate(tbl, USD, c)
		require.NoError(t, err)
		assert.Equal(t, want, got, c)
	}
}

func TestCrossRate_ToUSD(t *testing.T) {
	t.Parallel()

	tbl := testTable()
	for _, c := range []Currency{"EUR", "GBP", "JPY", "CAD", "CHF"} {
		r, err := tbl.Rate(c)
		require.NoError(t, err)

		got, err := CrossRate(tbl, c, USD)
		require.NoError(t, err)
		assert.Equal(t, 1/r, got, c)
	}
}

func TestCrossRate_CrossPairsAreReciprocal(t *testing.T) {
	t.Parallel()

	tbl := testTable()
	codes := []Currency{"EUR", "GBP", "JPY", "CAD", "CHF"}
	for _, a := range codes {
		for _, b := range codes {
			if a == b {
				continue
			}
			ra, _ := tbl.Rate(a)
			rb, _ := tbl.Rate(b)

			ab, err := CrossRate(tbl, a, b)
			require.NoError(t, err)
			ba, err := CrossRate(tbl, b, a)
			require.NoError(t, err)

			assert.Equal(t, rb/ra, ab)
			assert.Equal(t, ra/rb, ba)
			assert.InDelta(t, 1.0, ab*ba, 1e-12)
		}
	}
}

func TestCrossRate_Gold(t *testing.T) {
	t.Parallel()

	tbl := testTable()

	got, err := CrossRate(tbl, XAU, USD)
	require.NoError(t, err)
	assert.Equal(t, 1950.25, got, "gold/USD is the stored price, not its inverse")

	got, err = CrossRate(tbl, USD, XAU)
	require.NoError(t, err)
	assert.InDelta(t, 1/1950.25, got, 1e-15)

	got, err = CrossRate(tbl, XAU, "EUR")
	require.NoError(t, err)
	assert.InDelta(t, 1950.25*0.92, got, 1e-9)
}

func TestCrossRate_SameCurrency(t *testing.T) {
	t.Parallel()

	got, err := CrossRate(RateTable{}, "EUR", "EUR")
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)
}

func TestCrossRate_MissingRate(t *testing.T) {
	t.Parallel()

	tbl := testTable()
	tests := []struct {
		name     string
		from, to Currency
	}{
		{"from usd", USD, "NZD"},
		{"to usd", "NZD", USD},
		{"cross from", "NZD", "EUR"},
		{"cross to", "EUR", "NZD"},
		{"gold", XAU, USD},
	}

	empty := NewRateTable(nil, time.Time{})
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			src := tbl
			if tt.from == XAU {
				src = empty
			}
			_, err := CrossRate(src, tt.from, tt.to)
			assert.ErrorIs(t, err, ErrMissingRate)
		})
	}
}

func TestCrossRate_UnusableRate(t *testing.T) {
	t.Parallel()

	bad := []struct {
		name string
		rate float64
	}{
		{"zero", 0},
		{"negative", -150},
		{"nan", math.NaN()},
		{"positive inf", math.Inf(1)},
		{"negative inf", math.Inf(-1)},
	}

	for _, b := range bad {
		b := b
		t.Run(b.name, func(t *testing.T) {
			t.Parallel()

			tbl := NewRateTable(map[Currency]float64{"EUR": 0.92, "CAD": b.rate, "XAU": b.rate}, time.Time{})
			pairs := []struct{ from, to Currency }{
				{USD, "CAD"},
				{"CAD", USD},
				{"EUR", "CAD"},
				{"CAD", "EUR"},
				{XAU, USD},
				{USD, XAU},
				{"EUR", XAU},
			}
			for _, p := range pairs {
				r, err := CrossRate(tbl, p.from, p.to)
				assert.ErrorIs(t, err, ErrInvalidRate, "%s/%s", p.from, p.to)
				assert.Zero(t, r, "%s/%s", p.from, p.to)
			}

			_, err := Quote(tbl, MustParseInstrument("USD/CAD"))
			assert.ErrorIs(t, err, ErrInvalidRate)
		})
	}
}

func TestQuote(t *testing.T) {
	t.Parallel()

	tbl := testTable()

	px, err := Quote(tbl, MustParseInstrument("GBP/JPY"))
	require.NoError(t, err)
	assert.InDelta(t, 150/0.79, px, 1e-9)

	px, err = Quote(tbl, Gold)
	require.NoError(t, err)
	assert.Equal(t, 1950.25, px)
}
