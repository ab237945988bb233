package exchange

import (
	"context"
	"fmt"
	"sync"
	"time"

	"adaptivetrader/market"
)

// Paper is an in-memory exchange used for dry runs and tests. Candles are
// loaded up front or appended by the caller; orders fill instantly at their
// limit price against a simulated balance.
type Paper struct {
	mu        sync.Mutex
	balance   float64
	candles   map[string][]market.Candle
	tickers   map[string]float64
	positions map[string]market.Position
	meta      map[string]market.InstrumentMeta
	orderSeq  int
}

func NewPaper(balance float64) *Paper {
	return &Paper{
		balance:   balance,
		candles:   make(map[string][]market.Candle),
		tickers:   make(map[string]float64),
		positions: make(map[string]market.Position),
		meta:      make(map[string]market.InstrumentMeta),
	}
}

// SetCandles replaces the raw candle feed for an instrument. The last
// candle plays the still-forming interval, exactly as a live feed would.
func (p *Paper) SetCandles(instrument string, candles []market.Candle) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.candles[instrument] = append([]market.Candle(nil), candles...)
	if len(candles) > 0 {
		p.tickers[instrument] = candles[len(candles)-1].Close
	}
}

// SetTicker sets the spot price served by FetchTicker.
func (p *Paper) SetTicker(instrument string, price float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tickers[instrument] = price
}

// SetMeta overrides the trading rules for an instrument.
func (p *Paper) SetMeta(meta market.InstrumentMeta) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.meta[meta.Name] = meta
}

func (p *Paper) FetchCandles(_ context.Context, instrument string, _ time.Duration) ([]market.Candle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	cs, ok := p.candles[instrument]
	if !ok {
		return nil, fmt.Errorf("no candle data for %s", instrument)
	}
	return append([]market.Candle(nil), cs...), nil
}

func (p *Paper) FetchTicker(_ context.Context, instrument string) (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	price, ok := p.tickers[instrument]
	if !ok {
		return 0, fmt.Errorf("no ticker for %s", instrument)
	}
	return price, nil
}

func (p *Paper) InstrumentMetadata(_ context.Context, instrument string) (market.InstrumentMeta, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if m, ok := p.meta[instrument]; ok {
		return m, nil
	}
	if m, ok := market.DefaultInstruments[instrument]; ok {
		return m, nil
	}
	return market.InstrumentMeta{}, fmt.Errorf("unknown instrument %s", instrument)
}

func (p *Paper) AccountBalance(_ context.Context) (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.balance, nil
}

func (p *Paper) OpenPositions(_ context.Context) ([]market.Position, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]market.Position, 0, len(p.positions))
	for _, pos := range p.positions {
		out = append(out, pos)
	}
	return out, nil
}

func (p *Paper) PlaceOrder(_ context.Context, req OrderRequest) (OrderResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.orderSeq++
	id := fmt.Sprintf("paper-%d", p.orderSeq)

	switch req.Side {
	case SideBuy:
		cost := req.Volume * req.Price
		if cost > p.balance {
			return OrderResult{ID: id, Reason: "insufficient funds"}, nil
		}
		p.balance -= cost
		pos := p.positions[req.Instrument]
		if pos.Volume == 0 {
			pos = market.Position{
				Instrument: req.Instrument,
				Volume:     req.Volume,
				EntryPrice: req.Price,
				OpenedAt:   time.Now(),
			}
		} else {
			total := pos.Volume + req.Volume
			pos.EntryPrice = (pos.EntryPrice*pos.Volume + req.Price*req.Volume) / total
			pos.Volume = total
		}
		p.positions[req.Instrument] = pos

	case SideSell:
		pos, ok := p.positions[req.Instrument]
		if !ok || pos.Volume < req.Volume {
			return OrderResult{ID: id, Reason: "no position to sell"}, nil
		}
		p.balance += req.Volume * req.Price
		pos.Volume -= req.Volume
		if pos.Volume <= 0 {
			delete(p.positions, req.Instrument)
		} else {
			p.positions[req.Instrument] = pos
		}

	default:
		return OrderResult{}, fmt.Errorf("unknown side %q", req.Side)
	}

	return OrderResult{ID: id, Accepted: true}, nil
}
