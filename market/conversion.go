package market

import (
	"fmt"
	"math"
)

// CrossRate returns how many units of to one unit of from buys, so the
// result can be read directly as the FROM/TO price.
//
// Every table entry is a USD->X multiplier, so a cross rate is the ratio of
// the two legs and the implicit USD leg cancels out. Gold is stored as a USD
// price and is inverted on the way in.
func CrossRate(t RateTable, from, to Currency) (float64, error) {
	if from == to {
		return 1, nil
	}

	// Gold against USD is the stored price itself.
	if from == XAU && to == USD {
		return t.GoldPrice()
	}

	if from == USD {
		return t.perUSD(to)
	}

	if to == USD {
		r, err := t.perUSD(from)
		if err != nil {
			return 0, err
		}
		return divide(1, r, string(from)+"/USD")
	}

	fr, err := t.perUSD(from)
	if err != nil {
		return 0, err
	}
	tr, err := t.perUSD(to)
	if err != nil {
		return 0, err
	}
	return divide(tr, fr, string(from)+"/"+string(to))
}

// Quote returns the mid price of inst implied by the table.
func Quote(t RateTable, inst Instrument) (float64, error) {
	return CrossRate(t, inst.Base, inst.Quote)
}

func divide(num, den float64, what string) (float64, error) {
	if den == 0 || math.IsNaN(den) || math.IsInf(den, 0) {
		return 0, fmt.Errorf("%w: %s rate is %v", ErrDivideByZero, what, den)
	}
	q := num / den
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return 0, fmt.Errorf("%w: %s is not finite", ErrDivideByZero, what)
	}
	return q, nil
}
