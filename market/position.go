package market

import "time"

// Position is an open holding in one instrument.
type Position struct {
	Instrument string
	Volume     float64 // base currency
	EntryPrice float64
	OpenedAt   time.Time
}

// Notional returns the position's current value in quote currency at the
// given mark price.
func (p Position) Notional(markPrice float64) float64 {
	return p.Volume * markPrice
}

// PnLPct returns the unrealized percent gain relative to entry.
func (p Position) PnLPct(markPrice float64) float64 {
	if p.EntryPrice == 0 {
		return 0
	}
	return (markPrice - p.EntryPrice) / p.EntryPrice * 100
}
