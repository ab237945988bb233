// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	id TEXT PRIMARY KEY,
	instrument TEXT NOT NULL,
	side TEXT NOT NULL,
	volume REAL NOT NULL,
	price REAL NOT NULL,
	strategy TEXT NOT NULL,
	reason TEXT NOT NULL,
	fee REAL NOT NULL,
	dry_run INTEGER NOT NULL,
	time DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS strategy_switches (
	id TEXT PRIMARY KEY,
	instrument TEXT NOT NULL,
	from_strategy TEXT NOT NULL,
	to_strategy TEXT NOT NULL,
	market_state TEXT NOT NULL,
	confidence REAL NOT NULL,
	time DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS classifications (
	id TEXT PRIMARY KEY,
	instrument TEXT NOT NULL,
	market_state TEXT NOT NULL,
	confidence REAL NOT NULL,
	adx REAL NOT NULL,
	choppiness REAL NOT NULL,
	range_pct REAL NOT NULL,
	time DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_instrument_time ON trades(instrument, time);
CREATE INDEX IF NOT EXISTS idx_switches_instrument_time ON strategy_switches(instrument, time);
CREATE INDEX IF NOT EXISTS idx_classifications_instrument_time ON classifications(instrument, time);
`
