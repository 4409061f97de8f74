package risk

import (
	"fmt"
	"math"
	"strings"

	"github.com/rustyeddy/lotsize/market"
)

// Pip locations as powers of ten, the way brokers publish them.
const (
	pipLocationDefault = -4
	pipLocationYen     = -2
)

// Direction is the side of the trade.
type Direction string

const (
	Buy  Direction = "buy"
	Sell Direction = "sell"
)

// ParseDirection accepts buy/sell (and long/short) in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy", "long":
		return Buy, nil
	case "sell", "short":
		return Sell, nil
	}
	return "", fmt.Errorf("unknown trade direction %q", s)
}

func pipSize(loc int) float64 {
	return math.Pow(10, float64(loc))
}

// PipLocation returns the pip exponent of a currency pair.
// Gold has no fixed location; see GoldSpec.
func PipLocation(inst market.Instrument) int {
	if inst.IsYenQuoted() {
		return pipLocationYen
	}
	return pipLocationDefault
}

// PipSize returns the price increment of one pip for inst.
func (c Calculator) PipSize(inst market.Instrument) float64 {
	if inst.IsGold() {
		return c.Gold.PipSize
	}
	return pipSize(PipLocation(inst))
}

// PipDistance is |entry - stop| expressed in pips. It is symmetric in
// entry and stop, so a stop on the wrong side still yields a distance.
func (c Calculator) PipDistance(entry, stop float64, inst market.Instrument) float64 {
	return math.Abs(entry-stop) / c.PipSize(inst)
}

// DefaultStop suggests a stop pips away from entry on the losing side.
func (c Calculator) DefaultStop(entry float64, inst market.Instrument, dir Direction, pips float64) float64 {
	dist := pips * c.PipSize(inst)
	if dir == Sell {
		return entry + dist
	}
	return entry - dist
}

// PipSize uses DefaultCalculator.
func PipSize(inst market.Instrument) float64 {
	return DefaultCalculator.PipSize(inst)
}

// PipDistance uses DefaultCalculator.
func PipDistance(entry, stop float64, inst market.Instrument) float64 {
	return DefaultCalculator.PipDistance(entry, stop, inst)
}
