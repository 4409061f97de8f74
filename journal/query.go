package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const selectCalculation = `
	SELECT id, time, instrument, direction, entry_price, stop_price, capital, risk_percent,
	       success, risk_amount, pip_distance, pip_value, lot_size, conversions, error
	FROM calculations`

type scanner interface {
	Scan(dest ...any) error
}

func scanCalculation(s scanner) (CalculationRecord, error) {
	var (
		rec  CalculationRecord
		conv string
	)
	err := s.Scan(
		&rec.ID, &rec.Time, &rec.Instrument, &rec.Direction,
		&rec.Entry, &rec.Stop, &rec.Capital, &rec.RiskPercent,
		&rec.Success, &rec.RiskAmount, &rec.PipDistance, &rec.PipValue, &rec.LotSize,
		&conv, &rec.Error,
	)
	if err != nil {
		return CalculationRecord{}, err
	}
	rec.Conversions = splitConversions(conv)
	return rec, nil
}

// GetCalculation returns a single record by ID.
func (j *SQLite) GetCalculation(ctx context.Context, id string) (CalculationRecord, error) {
	row := j.db.QueryRowContext(ctx, selectCalculation+` WHERE id = ?`, id)
	rec, err := scanCalculation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CalculationRecord{}, fmt.Errorf("calculation %q not found", id)
		}
		return CalculationRecord{}, err
	}
	return rec, nil
}

// ListCalculations returns up to limit records, newest first.
func (j *SQLite) ListCalculations(ctx context.Context, limit int) ([]CalculationRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := j.db.QueryContext(ctx, selectCalculation+` ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CalculationRecord
	for rows.Next() {
		rec, err := scanCalculation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
