package risk

import (
	"fmt"
	"math"

	"github.com/rustyeddy/lotsize/market"
)

const (
	// USD value of one pip on a standard lot when USD is the quote.
	usdPipValue = 10.0

	// JPY value of one pip (0.01) on a standard lot of 100,000.
	yenPipValue = 1000.0
)

// GoldSpec fixes the gold pip unit and the lot it is valued on. The two
// must move together: their product is the USD value of one pip per lot.
type GoldSpec struct {
	PipSize        float64 // USD per ounce
	ContractOunces float64 // ounces in one standard lot
}

// DefaultGold is 0.1 USD pips on 100 oz lots, i.e. 10 USD per pip.
var DefaultGold = GoldSpec{PipSize: 0.1, ContractOunces: 100}

// PipValue is the USD value of one pip on one standard lot.
func (g GoldSpec) PipValue() float64 {
	return g.PipSize * g.ContractOunces
}

func (g GoldSpec) Validate() error {
	if !(g.PipSize > 0) || math.IsInf(g.PipSize, 0) {
		return fmt.Errorf("gold pip size must be positive, got %v", g.PipSize)
	}
	if !(g.ContractOunces > 0) || math.IsInf(g.ContractOunces, 0) {
		return fmt.Errorf("gold contract size must be positive, got %v", g.ContractOunces)
	}
	return nil
}

// Calculator sizes positions. The zero value is not usable; use
// DefaultCalculator or NewCalculator. A Calculator holds no state
// between calls and is safe for concurrent use.
type Calculator struct {
	Gold GoldSpec
}

// DefaultCalculator uses DefaultGold.
var DefaultCalculator = Calculator{Gold: DefaultGold}

// NewCalculator returns a Calculator for the given gold convention.
func NewCalculator(gold GoldSpec) (Calculator, error) {
	if err := gold.Validate(); err != nil {
		return Calculator{}, err
	}
	return Calculator{Gold: gold}, nil
}

// PerLotPipValue returns the USD value of a one pip move on one standard
// lot of inst.
func (c Calculator) PerLotPipValue(t market.RateTable, inst market.Instrument) (float64, error) {
	v, _, err := c.pipValue(t, inst)
	return v, err
}

// pipValue also returns the rates it consulted, formatted for display.
//
//	USD/JPY -> 1000 / USDJPY
//	GBP/JPY -> 1000 / USDJPY, scaled by GBP per USD inverted
//	EUR/GBP -> 10 / (EUR per USD)
func (c Calculator) pipValue(t market.RateTable, inst market.Instrument) (float64, []string, error) {
	switch {
	case inst.IsGold():
		return c.Gold.PipValue(), nil, nil

	case inst.Quote == market.USD:
		return usdPipValue, nil, nil

	case inst.Base == market.USD:
		quote, err := market.CrossRate(t, market.USD, inst.Quote)
		if err != nil {
			return 0, nil, err
		}
		trace := []string{traceRate(inst.Quote, quote)}
		if !inst.IsYenQuoted() {
			return usdPipValue, trace, nil
		}
		v, err := quotient(yenPipValue, quote, "USD/JPY")
		return v, trace, err
	}

	base, err := market.CrossRate(t, market.USD, inst.Base)
	if err != nil {
		return 0, nil, err
	}
	quote, err := market.CrossRate(t, market.USD, inst.Quote)
	if err != nil {
		return 0, nil, err
	}
	trace := []string{traceRate(inst.Base, base), traceRate(inst.Quote, quote)}

	if inst.IsYenQuoted() {
		yen, err := quotient(yenPipValue, quote, "USD/JPY")
		if err != nil {
			return 0, nil, err
		}
		inv, err := quotient(1, base, "USD/"+string(inst.Base))
		if err != nil {
			return 0, nil, err
		}
		return yen * inv, trace, nil
	}
	v, err := quotient(usdPipValue, base, "USD/"+string(inst.Base))
	return v, trace, err
}

// Size returns the lot size that loses riskAmount over pips at
// pipValue per pip per lot.
func Size(riskAmount, pips, pipValue float64) (float64, error) {
	return quotient(riskAmount, pips*pipValue, "pip distance times pip value")
}

func traceRate(c market.Currency, rate float64) string {
	return fmt.Sprintf("USD/%s: %.3f", c, rate)
}
