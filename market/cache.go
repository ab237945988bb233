package market

import (
	"errors"
	"time"
)

// ErrEmptyFetch is returned when an OHLC fetch yields no candles. The
// cached series is left untouched so stale data can still be used.
var ErrEmptyFetch = errors.New("market: empty candle fetch")

// Cache holds a bounded committed-candle series per instrument. The trailing
// candle of every raw fetch is the still-forming interval and is dropped
// unconditionally; only committed candles enter a series.
type Cache struct {
	MaxCandles int
	Interval   time.Duration

	series map[string]*Series
}

func NewCache(maxCandles int, interval time.Duration) *Cache {
	return &Cache{
		MaxCandles: maxCandles,
		Interval:   interval,
		series:     make(map[string]*Series),
	}
}

// Series returns the cached series for an instrument, or nil if no data has
// been seen yet.
func (c *Cache) Series(instrument string) *Series {
	return c.series[instrument]
}

// Update merges a raw OHLC fetch into the instrument's series and returns
// it. The last raw candle is dropped before merging. Feeding the same fetch
// twice leaves the series unchanged the second time.
func (c *Cache) Update(instrument string, raw []Candle) (*Series, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyFetch
	}

	committed := raw[:len(raw)-1]

	s := c.series[instrument]
	if s == nil {
		s = NewSeries(instrument, c.MaxCandles)
		c.series[instrument] = s
	}
	for _, cd := range committed {
		s.merge(cd)
	}
	return s, nil
}

// AppendTicker records a synthetic candle built from a spot price, used
// when the OHLC endpoint is down but the ticker still answers. The
// timestamp is truncated to the candle interval so repeated polls within
// one interval replace rather than accumulate.
func (c *Cache) AppendTicker(instrument string, price float64, now time.Time) *Series {
	s := c.series[instrument]
	if s == nil {
		s = NewSeries(instrument, c.MaxCandles)
		c.series[instrument] = s
	}
	s.merge(Candle{
		Time:      now.Truncate(c.Interval),
		Open:      price,
		High:      price,
		Low:       price,
		Close:     price,
		VWAP:      price,
		Synthetic: true,
	})
	return s
}
