// market/instruments.go
package market

import (
	"errors"
	"fmt"
	"strings"
)

// Instrument is a currency pair BASE/QUOTE, or spot gold (XAU/USD).
type Instrument struct {
	Base  Currency
	Quote Currency
}

// Instruments lists the pairs offered by default, in display order.
var Instruments = []Instrument{
	{Base: "GBP", Quote: JPY},
	{Base: XAU, Quote: USD},
	{Base: USD, Quote: JPY},
	{Base: "EUR", Quote: USD},
	{Base: "GBP", Quote: USD},
	{Base: USD, Quote: "CAD"},
	{Base: "CAD", Quote: "CHF"},
	{Base: "EUR", Quote: JPY},
	{Base: "AUD", Quote: USD},
	{Base: USD, Quote: "CHF"},
	{Base: "EUR", Quote: "GBP"},
}

// Gold is the spot gold instrument.
var Gold = Instrument{Base: XAU, Quote: USD}

// ParseInstrument accepts "EUR/USD", "EUR_USD", "EURUSD" and "XAUUSD" in any case.
func ParseInstrument(s string) (Instrument, error) {
	sym := strings.ToUpper(strings.TrimSpace(s))
	if sym == "" {
		return Instrument{}, errors.New("empty instrument symbol")
	}
	sym = strings.NewReplacer("/", "", "_", "", "-", "", " ", "").Replace(sym)
	if len(sym) != 6 {
		return Instrument{}, fmt.Errorf("invalid instrument symbol %q", s)
	}

	inst := Instrument{Base: Currency(sym[:3]), Quote: Currency(sym[3:])}
	if err := inst.Validate(); err != nil {
		return Instrument{}, fmt.Errorf("invalid instrument symbol %q: %w", s, err)
	}
	return inst, nil
}

// MustParseInstrument is ParseInstrument for literals known to be valid.
func MustParseInstrument(s string) Instrument {
	inst, err := ParseInstrument(s)
	if err != nil {
		panic(err)
	}
	return inst
}

// Validate checks both codes and that the pair is tradeable.
func (i Instrument) Validate() error {
	if !i.Base.Valid() {
		return fmt.Errorf("bad base currency %q", i.Base)
	}
	if !i.Quote.Valid() {
		return fmt.Errorf("bad quote currency %q", i.Quote)
	}
	if i.Base == i.Quote {
		return fmt.Errorf("base and quote are both %s", i.Base)
	}
	if i.Quote == XAU || (i.Base == XAU && i.Quote != USD) {
		return errors.New("gold is only quoted against USD")
	}
	return nil
}

// Symbol returns the slash form, e.g. "EUR/USD".
func (i Instrument) Symbol() string {
	return string(i.Base) + "/" + string(i.Quote)
}

func (i Instrument) String() string {
	return i.Symbol()
}

func (i Instrument) IsGold() bool {
	return i.Base == XAU
}

func (i Instrument) IsYenQuoted() bool {
	return i.Quote == JPY
}

// IsCross reports whether neither leg is USD.
func (i Instrument) IsCross() bool {
	return i.Base != USD && i.Quote != USD
}

// Precision is the number of decimals prices are quoted with.
func (i Instrument) Precision() int {
	switch {
	case i.IsGold():
		return 2
	case i.IsYenQuoted():
		return 3
	default:
		return 5
	}
}

// FormatPrice renders p at the instrument's quoting precision.
func (i Instrument) FormatPrice(p float64) string {
	return fmt.Sprintf("%.*f", i.Precision(), p)
}

// Currencies returns the non-USD codes a rate table must hold to price i.
func (i Instrument) Currencies() []Currency {
	var out []Currency
	for _, c := range []Currency{i.Base, i.Quote} {
		if c != USD {
			out = append(out, c)
		}
	}
	return out
}
