package prefs

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

const (
	keyPair    = "pair"
	keyEntry   = "entry"
	keyStop    = "stop"
	keyCapital = "capital"
	keyRisk    = "risk_percent"
	keySide    = "side"
)

// SQLiteStore keeps each form field as a row in a settings table.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open prefs %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create prefs schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Load returns the saved form. Fields never saved keep their defaults.
func (s *SQLiteStore) Load(ctx context.Context, defaults Form) (Form, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return Form{}, err
	}
	defer rows.Close()

	f := defaults
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return Form{}, err
		}
		if err := f.set(k, v); err != nil {
			return Form{}, fmt.Errorf("prefs key %s: %w", k, err)
		}
	}
	if err := rows.Err(); err != nil {
		return Form{}, err
	}
	return f, nil
}

// Save replaces every stored field in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, f Form) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for k, v := range f.values() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO settings (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, k, v); err != nil {
			return fmt.Errorf("save prefs %s: %w", k, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (f Form) values() map[string]string {
	return map[string]string{
		keyPair:    f.Pair,
		keyEntry:   ff(f.Entry),
		keyStop:    ff(f.Stop),
		keyCapital: ff(f.Capital),
		keyRisk:    ff(f.RiskPercent),
		keySide:    f.Side,
	}
}

func (f *Form) set(k, v string) error {
	var err error
	switch k {
	case keyPair:
		f.Pair = v
	case keySide:
		f.Side = v
	case keyEntry:
		f.Entry, err = strconv.ParseFloat(v, 64)
	case keyStop:
		f.Stop, err = strconv.ParseFloat(v, 64)
	case keyCapital:
		f.Capital, err = strconv.ParseFloat(v, 64)
	case keyRisk:
		f.RiskPercent, err = strconv.ParseFloat(v, 64)
	}
	return err
}

func ff(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
