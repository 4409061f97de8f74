// journal/journal.go
package journal

import (
	"fmt"
	"time"

	"github.com/rustyeddy/lotsize/pkg/id"
	"github.com/rustyeddy/lotsize/risk"
)

// CalculationRecord is one position-size calculation, inputs and outcome.
type CalculationRecord struct {
	ID   string
	Time time.Time

	Instrument  string
	Direction   string
	Entry       float64
	Stop        float64
	Capital     float64
	RiskPercent float64

	Success     bool
	RiskAmount  float64
	PipDistance float64
	PipValue    float64
	LotSize     float64
	Conversions []string
	Error       string
}

// NewRecord stamps a calculation with a fresh ID.
func NewRecord(at time.Time, p risk.Params, res risk.Result) CalculationRecord {
	return CalculationRecord{
		ID:          id.NewAt(at),
		Time:        at.UTC(),
		Instrument:  p.Instrument,
		Direction:   string(p.Direction),
		Entry:       p.Entry,
		Stop:        p.Stop,
		Capital:     p.Capital,
		RiskPercent: p.RiskPercent,
		Success:     res.Success,
		RiskAmount:  res.RiskAmount,
		PipDistance: res.PipDistance,
		PipValue:    res.PipValue,
		LotSize:     res.LotSize,
		Conversions: res.Conversions,
		Error:       res.Error,
	}
}

type Journal interface {
	RecordCalculation(CalculationRecord) error
	Close() error
}

// Open returns the journal for kind: "csv", "sqlite" or "none".
func Open(kind, path string) (Journal, error) {
	switch kind {
	case "", "none":
		return Nop{}, nil
	case "csv":
		return NewCSV(path)
	case "sqlite":
		return NewSQLite(path)
	}
	return nil, fmt.Errorf("unknown journal type %q", kind)
}

// Nop discards records.
type Nop struct{}

func (Nop) RecordCalculation(CalculationRecord) error { return nil }
func (Nop) Close() error                              { return nil }
