// Package exchange defines the narrow interfaces the engine needs from an
// exchange client. The concrete transport lives outside this module; the
// engine, portfolio, and tests depend only on these contracts.
package exchange

import (
	"context"
	"time"

	"adaptivetrader/market"
)

// CandleSource fetches raw OHLC data. The returned slice includes the
// still-forming trailing candle; the cache drops it.
type CandleSource interface {
	FetchCandles(ctx context.Context, instrument string, interval time.Duration) ([]market.Candle, error)
}

// TickerSource fetches a spot price, used as a candle fallback.
type TickerSource interface {
	FetchTicker(ctx context.Context, instrument string) (float64, error)
}

// MetadataSource fetches an instrument's trading rules.
type MetadataSource interface {
	InstrumentMetadata(ctx context.Context, instrument string) (market.InstrumentMeta, error)
}

// AccountSource reports the account balance in quote currency.
type AccountSource interface {
	AccountBalance(ctx context.Context) (float64, error)
}

// PositionSource lists the authoritative set of open positions. Exposure is
// always recomputed from this, never tracked incrementally.
type PositionSource interface {
	OpenPositions(ctx context.Context) ([]market.Position, error)
}

// Side of an order.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// OrderRequest is a fully normalized order ready for submission.
type OrderRequest struct {
	Instrument string
	Side       Side
	Volume     float64
	Price      float64
}

// OrderResult reports the exchange's response to a placed order.
type OrderResult struct {
	ID       string
	Accepted bool
	Reason   string
}

// OrderPlacer submits orders.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, req OrderRequest) (OrderResult, error)
}

// Client aggregates everything the engine needs from an exchange.
type Client interface {
	CandleSource
	TickerSource
	MetadataSource
	AccountSource
	PositionSource
	OrderPlacer
}
