// Package portfolio gates and sizes orders: exposure caps against the live
// account, exchange-rule order normalization, allocation math, and fee
// accounting.
package portfolio

import (
	"context"
	"errors"
	"fmt"

	"adaptivetrader/config"
	"adaptivetrader/exchange"
)

// ErrExposureExceeded marks a rejection caused by an exposure cap.
var ErrExposureExceeded = errors.New("portfolio: exposure cap exceeded")

// Rejection reasons, stable for logs and metrics.
const (
	ReasonPerInstrumentCap = "per_instrument_cap"
	ReasonTotalCap         = "total_cap"
)

// Decision is the outcome of an exposure check, carrying the numbers that
// produced it.
type Decision struct {
	Accepted bool
	Reason   string

	InstrumentPct float64
	TotalPct      float64
	ProposedPct   float64
}

// ExposureManager authorizes proposed orders against per-instrument and
// total exposure caps. Exposure is recomputed from the authoritative open
// position set on every call, never tracked incrementally, so a missed
// fill cannot cause drift.
type ExposureManager struct {
	cfg       *config.Config
	positions exchange.PositionSource
	account   exchange.AccountSource
}

func NewExposureManager(cfg *config.Config, positions exchange.PositionSource, account exchange.AccountSource) *ExposureManager {
	return &ExposureManager{cfg: cfg, positions: positions, account: account}
}

// Authorize decides whether a proposed notional (quote currency) may be
// opened on the instrument. marks supplies current prices for valuing open
// positions; a position without a mark is valued at its entry price. A
// non-nil error means the sources failed and the cycle should be skipped,
// not that the order was rejected.
func (m *ExposureManager) Authorize(ctx context.Context, instrument string, proposedNotional float64, marks map[string]float64) (Decision, error) {
	balance, err := m.account.AccountBalance(ctx)
	if err != nil {
		return Decision{}, fmt.Errorf("fetch account balance: %w", err)
	}
	if balance <= 0 {
		return Decision{Reason: ReasonTotalCap}, fmt.Errorf("non-positive account balance %.2f", balance)
	}

	open, err := m.positions.OpenPositions(ctx)
	if err != nil {
		return Decision{}, fmt.Errorf("list open positions: %w", err)
	}

	instrumentNotional := 0.0
	totalNotional := 0.0
	for _, p := range open {
		mark, ok := marks[p.Instrument]
		if !ok {
			mark = p.EntryPrice
		}
		n := p.Notional(mark)
		totalNotional += n
		if p.Instrument == instrument {
			instrumentNotional += n
		}
	}

	d := Decision{
		InstrumentPct: instrumentNotional / balance * 100,
		TotalPct:      totalNotional / balance * 100,
		ProposedPct:   proposedNotional / balance * 100,
	}

	if d.InstrumentPct+d.ProposedPct > m.cfg.MaxPerCoin {
		d.Reason = ReasonPerInstrumentCap
		return d, nil
	}
	if d.TotalPct+d.ProposedPct > m.cfg.MaxTotalExposure {
		d.Reason = ReasonTotalCap
		return d, nil
	}

	d.Accepted = true
	return d, nil
}
