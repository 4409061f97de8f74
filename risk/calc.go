package risk

import (
	"errors"
	"fmt"

	"github.com/rustyeddy/lotsize/market"
)

// Params are the trade inputs of one calculation. Prices are in the
// instrument's quote units, Capital in USD, RiskPercent in [0, 100].
//
// Direction is informational: a stop on the wrong side of entry is not
// rejected, it simply yields the absolute distance.
type Params struct {
	Instrument  string
	Entry       float64
	Stop        float64
	Capital     float64
	RiskPercent float64
	Direction   Direction
}

// Result is either a success carrying the sizing, or a failure carrying
// an error message. There is no partial result.
type Result struct {
	Success    bool
	Instrument string

	RiskAmount  float64 // USD, 2 decimals
	PipDistance float64 // pips, 1 decimal
	PipValue    float64 // USD per pip per lot, unrounded
	LotSize     float64 // standard lots, 2 decimals

	// Conversions lists the USD rates used, e.g. "USD/JPY: 150.000".
	Conversions []string

	Error string
	Err   error `json:"-"`
}

func failure(err error) Result {
	return Result{Error: err.Error(), Err: err}
}

// Calculate sizes a position with DefaultCalculator.
func Calculate(p Params, t market.RateTable) Result {
	return DefaultCalculator.Calculate(p, t)
}

// Calculate turns p and the rate table t into a Result. It never panics
// and never returns NaN or Inf in a successful result.
func (c Calculator) Calculate(p Params, t market.RateTable) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = failure(fmt.Errorf("calculate %s: %v", p.Instrument, r))
		}
	}()

	res, err := c.calculate(p, t)
	if err != nil {
		return failure(fmt.Errorf("calculate %s: %w", p.Instrument, err))
	}
	return res
}

func (c Calculator) calculate(p Params, t market.RateTable) (Result, error) {
	inst, err := validate(p)
	if err != nil {
		return Result{}, err
	}
	if err := c.Gold.Validate(); err != nil {
		return Result{}, invalid("%v", err)
	}
	if err := t.Require(inst.Currencies()...); err != nil {
		if errors.Is(err, market.ErrInvalidRate) {
			return Result{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return Result{}, err
	}

	riskAmt := p.Capital * p.RiskPercent / 100
	pips := c.PipDistance(p.Entry, p.Stop, inst)

	pipValue, trace, err := c.pipValue(t, inst)
	if err != nil {
		return Result{}, err
	}

	lots, err := Size(riskAmt, pips, pipValue)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Success:     true,
		Instrument:  inst.Symbol(),
		RiskAmount:  round(riskAmt, 2),
		PipDistance: round(pips, 1),
		PipValue:    pipValue,
		LotSize:     round(lots, 2),
		Conversions: trace,
	}, nil
}

func validate(p Params) (market.Instrument, error) {
	inst, err := market.ParseInstrument(p.Instrument)
	if err != nil {
		return market.Instrument{}, invalid("%v", err)
	}
	if !finite(p.Entry) || p.Entry <= 0 {
		return market.Instrument{}, invalid("entry price must be positive, got %v", p.Entry)
	}
	if !finite(p.Stop) || p.Stop <= 0 {
		return market.Instrument{}, invalid("stop loss must be positive, got %v", p.Stop)
	}
	if !finite(p.Capital) || p.Capital < 0 {
		return market.Instrument{}, invalid("account capital must not be negative, got %v", p.Capital)
	}
	if !finite(p.RiskPercent) || p.RiskPercent < 0 || p.RiskPercent > 100 {
		return market.Instrument{}, invalid("risk percentage must be within [0, 100], got %v", p.RiskPercent)
	}
	if p.Direction != "" && p.Direction != Buy && p.Direction != Sell {
		return market.Instrument{}, invalid("unknown trade direction %q", p.Direction)
	}
	return inst, nil
}
