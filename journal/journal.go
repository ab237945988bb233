// Package journal persists what the bot did and why: trades, strategy
// switches, and classification events. Records carry ULID primary keys so
// they sort by creation time.
package journal

import "time"

type TradeRecord struct {
	ID         string
	Instrument string
	Side       string
	Volume     float64
	Price      float64
	Strategy   string
	Reason     string
	Fee        float64
	DryRun     bool
	Time       time.Time
}

type SwitchRecord struct {
	ID         string
	Instrument string
	From       string
	To         string
	State      string
	Confidence float64
	Time       time.Time
}

type ClassificationRecord struct {
	ID         string
	Instrument string
	State      string
	Confidence float64
	ADX        float64
	Choppiness float64
	RangePct   float64
	Time       time.Time
}

type Journal interface {
	RecordTrade(TradeRecord) error
	RecordSwitch(SwitchRecord) error
	RecordClassification(ClassificationRecord) error
	SwitchesOn(instrument string, day time.Time) ([]SwitchRecord, error)
	Close() error
}
