package strategies

import (
	"time"

	"adaptivetrader/market"
)

// Strategy analyzes a committed candle series and emits a signal. Analyze
// must be deterministic given the series and the strategy's position state.
type Strategy interface {
	Name() string
	Analyze(s *market.Series) Signal
}

// PositionAware strategies are told about the instrument's open position
// before each analysis so exits can be gated on entry price and hold time.
type PositionAware interface {
	SetPosition(pos *market.Position)
}

// positionState is embedded by strategies that gate exits on the open
// position. A nil update clears it.
type positionState struct {
	pos *market.Position
}

func (p *positionState) SetPosition(pos *market.Position) { p.pos = pos }

func (p *positionState) inPosition() bool { return p.pos != nil && p.pos.Volume > 0 }

// profitPct returns the unrealized percent gain at price, or 0 when flat.
func (p *positionState) profitPct(price float64) float64 {
	if !p.inPosition() {
		return 0
	}
	return p.pos.PnLPct(price)
}

// heldFor reports whether the position has been open at least d by now.
func (p *positionState) heldFor(d time.Duration, now time.Time) bool {
	if !p.inPosition() {
		return false
	}
	return now.Sub(p.pos.OpenedAt) >= d
}
