// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS calculations (
	id TEXT PRIMARY KEY,
	time DATETIME NOT NULL,
	instrument TEXT NOT NULL,
	direction TEXT NOT NULL,
	entry_price REAL NOT NULL,
	stop_price REAL NOT NULL,
	capital REAL NOT NULL,
	risk_percent REAL NOT NULL,
	success INTEGER NOT NULL,
	risk_amount REAL NOT NULL,
	pip_distance REAL NOT NULL,
	pip_value REAL NOT NULL,
	lot_size REAL NOT NULL,
	conversions TEXT NOT NULL,
	error TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_calculations_time ON calculations(time);
`
