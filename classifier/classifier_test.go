package classifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adaptivetrader/config"
	"adaptivetrader/market"
)

func seriesFrom(t *testing.T, candles []market.Candle) *market.Series {
	t.Helper()
	cache := market.NewCache(200, time.Minute)
	// append a throwaway forming candle so the raw fetch looks realistic
	raw := append(append([]market.Candle(nil), candles...), market.Candle{
		Time: candles[len(candles)-1].Time.Add(time.Minute),
	})
	s, err := cache.Update("TEST", raw)
	require.NoError(t, err)
	return s
}

func candleRun(n int, price func(i int) (open, high, low, close, volume float64)) []market.Candle {
	start := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	out := make([]market.Candle, n)
	for i := range out {
		o, h, l, c, v := price(i)
		out[i] = market.Candle{
			Time: start.Add(time.Duration(i) * time.Minute),
			Open: o, High: h, Low: l, Close: c, Volume: v,
		}
	}
	return out
}

func trendingUp(n int) []market.Candle {
	return candleRun(n, func(i int) (float64, float64, float64, float64, float64) {
		c := 100 + float64(i)
		return c - 1, c + 0.5, c - 1.5, c, 10
	})
}

func flat(n int) []market.Candle {
	return candleRun(n, func(i int) (float64, float64, float64, float64, float64) {
		return 100, 100.05, 99.95, 100, 10
	})
}

func TestClassifyCollectingDataBelowMinimum(t *testing.T) {
	cfg := config.Default()
	c := New(cfg)

	cond := c.Classify(seriesFrom(t, trendingUp(cfg.MinDataPoints-1)))
	assert.Equal(t, CollectingData, cond.State)
	assert.Equal(t, 0.0, cond.Confidence)
	// no indicators were computed
	assert.Equal(t, 0.0, cond.ADX)
}

func TestClassifyNilSeries(t *testing.T) {
	c := New(config.Default())
	cond := c.Classify(nil)
	assert.Equal(t, CollectingData, cond.State)
	assert.Equal(t, 0.0, cond.Confidence)
}

func TestClassifyStrongUptrend(t *testing.T) {
	cfg := config.Default()
	c := New(cfg)

	cond := c.Classify(seriesFrom(t, trendingUp(120)))
	assert.Equal(t, StrongUptrend, cond.State)
	assert.Greater(t, cond.ADX, cfg.ADXStrongTrend)
	assert.Greater(t, cond.Slope, 0.0)
	assert.GreaterOrEqual(t, cond.Confidence, 50.0)
	assert.LessOrEqual(t, cond.Confidence, 100.0)
}

func TestClassifyStrongDowntrend(t *testing.T) {
	cfg := config.Default()
	c := New(cfg)

	down := candleRun(120, func(i int) (float64, float64, float64, float64, float64) {
		cl := 500 - float64(i)
		return cl + 1, cl + 1.5, cl - 0.5, cl, 10
	})
	cond := c.Classify(seriesFrom(t, down))
	assert.Equal(t, StrongDowntrend, cond.State)
	assert.Less(t, cond.Slope, 0.0)
}

// moderateTrend drifts upward in an up-1.6 down-1.0 alternation. The mix
// of directional movement lands ADX around 23, inside the moderate band.
func moderateTrend(n int) []market.Candle {
	return candleRun(n, func(i int) (float64, float64, float64, float64, float64) {
		up := float64((i + 1) / 2)
		down := float64(i / 2)
		c := 100 + 1.6*up - 1.0*down
		return c, c + 0.5, c - 0.5, c, 10
	})
}

// triangle oscillates between 100 and 100+8*step with a 16-candle period,
// short enough that the smoothed directional movement stays mixed.
func triangle(n int, step float64) []market.Candle {
	return candleRun(n, func(i int) (float64, float64, float64, float64, float64) {
		p := i % 16
		c := 100 + step*float64(p)
		if p > 8 {
			c = 100 + step*float64(16-p)
		}
		return c, c + 0.5, c - 0.5, c, 10
	})
}

func TestClassifyModerateTrend(t *testing.T) {
	cfg := config.Default()
	c := New(cfg)

	cond := c.Classify(seriesFrom(t, moderateTrend(120)))
	assert.Equal(t, ModerateTrend, cond.State)
	assert.GreaterOrEqual(t, cond.ADX, cfg.ADXWeakTrend)
	assert.LessOrEqual(t, cond.ADX, cfg.ADXStrongTrend)
	assert.GreaterOrEqual(t, cond.Confidence, 50.0)
	assert.LessOrEqual(t, cond.Confidence, 100.0)
}

func TestClassifyChoppy(t *testing.T) {
	cfg := config.Default()
	c := New(cfg)

	// full-range whipsaw every candle: trendless but far from quiet
	zigzag := candleRun(120, func(i int) (float64, float64, float64, float64, float64) {
		cl := 100.0
		if i%2 == 1 {
			cl = 105
		}
		return cl, cl + 0.5, cl - 0.5, cl, 10
	})
	cond := c.Classify(seriesFrom(t, zigzag))
	assert.Equal(t, Choppy, cond.State)
	assert.Greater(t, cond.Choppiness, cfg.ChoppinessChoppy)
	assert.Less(t, cond.ADX, cfg.ADXWeakTrend)
	assert.GreaterOrEqual(t, cond.RangePct, cfg.RangeTight)
}

func TestClassifyRangeBound(t *testing.T) {
	cfg := config.Default()
	c := New(cfg)

	cond := c.Classify(seriesFrom(t, triangle(120, 1.0)))
	assert.Equal(t, RangeBound, cond.State)
	assert.Less(t, cond.ADX, cfg.ADXWeakTrend)
	assert.GreaterOrEqual(t, cond.RangePct, cfg.RangeTight)
	assert.LessOrEqual(t, cond.RangePct, cfg.RangeModerate)
	assert.LessOrEqual(t, cond.Choppiness, cfg.ChoppinessChoppy)
	// a matched rule, not the low-confidence fallback
	assert.GreaterOrEqual(t, cond.Confidence, 50.0)
}

func TestClassifyDefaultsToRangeBound(t *testing.T) {
	cfg := config.Default()
	c := New(cfg)

	// same shape as the range-bound series but swung wide enough to leave
	// the moderate band, with no volume surge to qualify as a breakout
	cond := c.Classify(seriesFrom(t, triangle(120, 2.0)))
	assert.Equal(t, RangeBound, cond.State)
	assert.Equal(t, 30.0, cond.Confidence)
	assert.Greater(t, cond.RangePct, cfg.RangeModerate)
}

func TestClassifyVolatileBreakout(t *testing.T) {
	cfg := config.Default()
	c := New(cfg)

	// a quiet corridor, then one violent high-volume candle escaping it
	quiet := candleRun(59, func(i int) (float64, float64, float64, float64, float64) {
		cl := 99.7
		if i%2 == 1 {
			cl = 100.3
		}
		return cl, cl + 0.4, cl - 0.4, cl, 10
	})
	candles := append(quiet, market.Candle{
		Time:   quiet[len(quiet)-1].Time.Add(time.Minute),
		Open:   100,
		High:   200,
		Low:    99.3,
		Close:  195,
		Volume: 40,
	})

	cond := c.Classify(seriesFrom(t, candles))
	assert.Equal(t, VolatileBreakout, cond.State)
	assert.Equal(t, 100.0, cond.Confidence)
	assert.Less(t, cond.ADX, cfg.ADXWeakTrend)
}

func TestClassifyNoBreakoutWithoutVolumeSurge(t *testing.T) {
	cfg := config.Default()
	c := New(cfg)

	// same violent escape candle on ordinary volume
	quiet := candleRun(59, func(i int) (float64, float64, float64, float64, float64) {
		cl := 99.7
		if i%2 == 1 {
			cl = 100.3
		}
		return cl, cl + 0.4, cl - 0.4, cl, 10
	})
	candles := append(quiet, market.Candle{
		Time:   quiet[len(quiet)-1].Time.Add(time.Minute),
		Open:   100,
		High:   200,
		Low:    99.3,
		Close:  195,
		Volume: 10,
	})

	cond := c.Classify(seriesFrom(t, candles))
	assert.NotEqual(t, VolatileBreakout, cond.State)
	assert.Equal(t, RangeBound, cond.State)
	assert.Equal(t, 30.0, cond.Confidence)
}

func TestClassifyLowVolatility(t *testing.T) {
	cfg := config.Default()
	c := New(cfg)

	cond := c.Classify(seriesFrom(t, flat(120)))
	assert.Equal(t, LowVolatility, cond.State)
	assert.Less(t, cond.RangePct, cfg.RangeTight)
}

func TestClassifyIsDeterministic(t *testing.T) {
	c := New(config.Default())
	s := seriesFrom(t, trendingUp(120))

	first := c.Classify(s)
	second := c.Classify(s)
	assert.Equal(t, first, second)
}

func TestStrongTrendOutranksRangeRules(t *testing.T) {
	// A strong uptrend whose range also fits the range-bound rule must
	// still classify as a trend: the trend rules are checked first.
	cfg := config.Default()
	c := New(cfg)

	cond := c.Classify(seriesFrom(t, trendingUp(120)))
	require.Equal(t, StrongUptrend, cond.State)
	assert.GreaterOrEqual(t, cond.RangePct, cfg.RangeTight)
}
