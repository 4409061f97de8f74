// journal/csv.go
package journal

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

var csvHeader = []string{
	"id", "time", "instrument", "direction", "entry_price", "stop_price", "capital", "risk_percent",
	"success", "risk_amount", "pip_distance", "pip_value", "lot_size", "conversions", "error",
}

// CSV appends calculations to a single file, writing the header only when
// the file is new.
type CSV struct {
	w  *csv.Writer
	fh *os.File
}

func NewCSV(path string) (*CSV, error) {
	fh, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open journal %s: %w", path, err)
	}
	st, err := fh.Stat()
	if err != nil {
		fh.Close()
		return nil, err
	}

	w := csv.NewWriter(fh)
	if st.Size() == 0 {
		if err := w.Write(csvHeader); err != nil {
			fh.Close()
			return nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			fh.Close()
			return nil, err
		}
	}

	return &CSV{w: w, fh: fh}, nil
}

func (j *CSV) RecordCalculation(c CalculationRecord) error {
	err := j.w.Write([]string{
		c.ID,
		c.Time.Format(time.RFC3339),
		c.Instrument,
		c.Direction,
		f(c.Entry),
		f(c.Stop),
		f(c.Capital),
		f(c.RiskPercent),
		strconv.FormatBool(c.Success),
		f(c.RiskAmount),
		f(c.PipDistance),
		f(c.PipValue),
		f(c.LotSize),
		strings.Join(c.Conversions, conversionSep),
		c.Error,
	})
	if err != nil {
		return err
	}

	j.w.Flush()
	return j.w.Error()
}

func (j *CSV) Close() error {
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		j.fh.Close()
		return err
	}
	return j.fh.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
