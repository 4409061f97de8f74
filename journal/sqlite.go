package journal

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

const conversionSep = "; "

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open journal %s: %w", path, err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create journal schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordCalculation(c CalculationRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO calculations
		(id, time, instrument, direction, entry_price, stop_price, capital, risk_percent,
		 success, risk_amount, pip_distance, pip_value, lot_size, conversions, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Time, c.Instrument, c.Direction, c.Entry, c.Stop, c.Capital, c.RiskPercent,
		c.Success, c.RiskAmount, c.PipDistance, c.PipValue, c.LotSize,
		strings.Join(c.Conversions, conversionSep), c.Error,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

func splitConversions(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, conversionSep)
}
