package journal

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(id, instrument, side, volume, price, strategy, reason, fee, dry_run, time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Instrument, t.Side, t.Volume, t.Price,
		t.Strategy, t.Reason, t.Fee, t.DryRun, t.Time,
	)
	return err
}

func (j *SQLiteJournal) RecordSwitch(s SwitchRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO strategy_switches
		(id, instrument, from_strategy, to_strategy, market_state, confidence, time)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Instrument, s.From, s.To, s.State, s.Confidence, s.Time,
	)
	return err
}

func (j *SQLiteJournal) RecordClassification(c ClassificationRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO classifications
		(id, instrument, market_state, confidence, adx, choppiness, range_pct, time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Instrument, c.State, c.Confidence, c.ADX, c.Choppiness, c.RangePct, c.Time,
	)
	return err
}

// SwitchesOn lists committed switches for the instrument on the calendar
// day containing the given time.
func (j *SQLiteJournal) SwitchesOn(instrument string, day time.Time) ([]SwitchRecord, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	rows, err := j.db.Query(`
		SELECT id, instrument, from_strategy, to_strategy, market_state, confidence, time
		FROM strategy_switches
		WHERE instrument = ? AND time >= ? AND time < ?
		ORDER BY id`,
		instrument, start, end,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SwitchRecord
	for rows.Next() {
		var s SwitchRecord
		if err := rows.Scan(&s.ID, &s.Instrument, &s.From, &s.To, &s.State, &s.Confidence, &s.Time); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
