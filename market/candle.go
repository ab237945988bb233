package market

import "time"

// Candle is one committed OHLC interval for an instrument. Synthetic marks
// candles fabricated from a ticker price when the OHLC endpoint failed.
type Candle struct {
	Time time.Time

	Open  float64
	High  float64
	Low   float64
	Close float64

	VWAP   float64
	Volume float64
	Count  int

	Synthetic bool
}
