package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func risingCloses(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 100 + float64(i)
	}
	return out
}

func TestSMA(t *testing.T) {
	closes := []float64{102, 105, 106, 108, 110, 111, 113, 114, 116, 118}

	sma, err := SMA(closes, 5)
	assert.NoError(t, err)
	// Last 5 closes: 111,113,114,116,118 => 572/5 = 114.4
	assert.InDelta(t, 114.4, sma, 0.001)
}

func TestSMAInsufficientData(t *testing.T) {
	_, err := SMA([]float64{1, 2, 3}, 5)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestEMA(t *testing.T) {
	closes := risingCloses(20)

	ema, err := EMA(closes, 5)
	assert.NoError(t, err)
	// EMA of a rising series lags the last close but stays above the SMA seed.
	assert.Greater(t, ema, 110.0)
	assert.Less(t, ema, closes[len(closes)-1])
}

func TestRSIAllGains(t *testing.T) {
	rsi, err := RSI(risingCloses(15), 14)
	assert.NoError(t, err)
	assert.Equal(t, 100.0, rsi)
}

func TestRSIAllLosses(t *testing.T) {
	closes := make([]float64, 15)
	for i := range closes {
		closes[i] = 100 - float64(i)
	}
	rsi, err := RSI(closes, 14)
	assert.NoError(t, err)
	assert.InDelta(t, 0.0, rsi, 0.001)
}

func TestRSIBalanced(t *testing.T) {
	// Alternating +1/-1 changes: equal average gain and loss => RSI 50.
	closes := make([]float64, 15)
	for i := range closes {
		closes[i] = 100 + float64(i%2)
	}
	rsi, err := RSI(closes, 14)
	assert.NoError(t, err)
	assert.InDelta(t, 50.0, rsi, 0.001)
}

func TestMACDRisingSeries(t *testing.T) {
	res, err := MACD(risingCloses(60), 12, 26, 9)
	assert.NoError(t, err)
	// Fast EMA sits above slow EMA in a steady uptrend.
	assert.Greater(t, res.Line, 0.0)
}

func TestMACDInsufficientData(t *testing.T) {
	_, err := MACD(risingCloses(30), 12, 26, 9)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestBollingerFlatSeries(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100
	}
	bands, err := Bollinger(closes, 20, 2)
	assert.NoError(t, err)
	assert.Equal(t, 100.0, bands.Upper)
	assert.Equal(t, 100.0, bands.Middle)
	assert.Equal(t, 100.0, bands.Lower)
}

func TestBollingerBandsOrdered(t *testing.T) {
	closes := []float64{100, 102, 98, 103, 97, 104, 96, 105, 95, 106,
		100, 102, 98, 103, 97, 104, 96, 105, 95, 106}
	bands, err := Bollinger(closes, 20, 2)
	assert.NoError(t, err)
	assert.Greater(t, bands.Upper, bands.Middle)
	assert.Less(t, bands.Lower, bands.Middle)
}

func TestATR(t *testing.T) {
	highs := []float64{10, 11, 12, 11, 12, 13}
	lows := []float64{8, 9, 10, 9, 10, 11}
	closes := []float64{9, 10, 11, 10, 11, 12}

	atr, err := ATR(highs, lows, closes, 3)
	assert.NoError(t, err)
	assert.InDelta(t, 2.0, atr, 0.001)
}

func TestATRInsufficientData(t *testing.T) {
	_, err := ATR([]float64{1, 2}, []float64{1, 2}, []float64{1, 2}, 14)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestChoppinessFlatWindow(t *testing.T) {
	highs := make([]float64, 20)
	lows := make([]float64, 20)
	closes := make([]float64, 20)
	for i := range highs {
		highs[i], lows[i], closes[i] = 100, 100, 100
	}
	ci, err := Choppiness(highs, lows, closes, 14)
	assert.NoError(t, err)
	assert.Equal(t, 100.0, ci)
}

func TestChoppinessDirectionalMove(t *testing.T) {
	// A clean staircase: each candle's range covers its own step only, so
	// the TR sum roughly equals the window span and CI stays low.
	n := 20
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)
	for i := 0; i < n; i++ {
		lows[i] = 100 + float64(i)
		highs[i] = lows[i] + 1
		closes[i] = lows[i] + 1
	}
	ci, err := Choppiness(highs, lows, closes, 14)
	assert.NoError(t, err)
	assert.Less(t, ci, 38.2)
}

func TestSlopeSign(t *testing.T) {
	up, err := Slope(risingCloses(20), 14)
	assert.NoError(t, err)
	assert.Greater(t, up, 0.0)

	falling := make([]float64, 20)
	for i := range falling {
		falling[i] = 200 - float64(i)
	}
	down, err := Slope(falling, 14)
	assert.NoError(t, err)
	assert.Less(t, down, 0.0)

	flat := make([]float64, 20)
	for i := range flat {
		flat[i] = 100
	}
	zero, err := Slope(flat, 14)
	assert.NoError(t, err)
	assert.InDelta(t, 0.0, zero, 0.0001)
}

func TestRangePct(t *testing.T) {
	highs := []float64{105, 110, 108}
	lows := []float64{100, 104, 103}

	pct, err := RangePct(highs, lows, 3)
	assert.NoError(t, err)
	// (110 - 100) / 100 * 100 = 10%
	assert.InDelta(t, 10.0, pct, 0.001)
}

func TestVolumeSurge(t *testing.T) {
	volumes := []float64{10, 10, 10, 10, 10, 25}
	surge, err := VolumeSurge(volumes, 5, 1.5)
	assert.NoError(t, err)
	assert.True(t, surge)

	volumes[len(volumes)-1] = 12
	surge, err = VolumeSurge(volumes, 5, 1.5)
	assert.NoError(t, err)
	assert.False(t, surge)
}

func TestVolumeSurgeZeroBaseline(t *testing.T) {
	volumes := []float64{0, 0, 0, 0, 0, 100}
	surge, err := VolumeSurge(volumes, 5, 1.5)
	assert.NoError(t, err)
	assert.False(t, surge)
}

func TestBreakoutUp(t *testing.T) {
	n := 25
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)
	volumes := make([]float64, n)
	for i := 0; i < n; i++ {
		highs[i], lows[i], closes[i] = 105, 95, 100
		volumes[i] = 10
	}
	// Last candle escapes the range on triple volume.
	highs[n-1], lows[n-1], closes[n-1] = 112, 104, 110
	volumes[n-1] = 30

	dir, err := Breakout(highs, lows, closes, volumes, BreakoutConfig{
		Lookback: 20, VolumePeriod: 20, VolumeThreshold: 1.5,
	})
	assert.NoError(t, err)
	assert.Equal(t, DirectionUp, dir)
}

func TestBreakoutNoVolume(t *testing.T) {
	n := 25
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)
	volumes := make([]float64, n)
	for i := 0; i < n; i++ {
		highs[i], lows[i], closes[i] = 105, 95, 100
		volumes[i] = 10
	}
	highs[n-1], lows[n-1], closes[n-1] = 112, 104, 110

	dir, err := Breakout(highs, lows, closes, volumes, BreakoutConfig{
		Lookback: 20, VolumePeriod: 20, VolumeThreshold: 1.5,
	})
	assert.NoError(t, err)
	assert.Equal(t, DirectionNone, dir)
}

func TestBreakoutDown(t *testing.T) {
	n := 25
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)
	volumes := make([]float64, n)
	for i := 0; i < n; i++ {
		highs[i], lows[i], closes[i] = 105, 95, 100
		volumes[i] = 10
	}
	highs[n-1], lows[n-1], closes[n-1] = 96, 88, 90
	volumes[n-1] = 30

	dir, err := Breakout(highs, lows, closes, volumes, BreakoutConfig{
		Lookback: 20, VolumePeriod: 20, VolumeThreshold: 1.5,
	})
	assert.NoError(t, err)
	assert.Equal(t, DirectionDown, dir)
}

func TestFibonacciLevels(t *testing.T) {
	highs := []float64{100, 110, 120, 115, 118}
	lows := []float64{90, 95, 100, 98, 102}

	fib, err := Fibonacci(highs, lows, 5)
	assert.NoError(t, err)
	assert.Equal(t, 120.0, fib.SwingHigh)
	assert.Equal(t, 90.0, fib.SwingLow)
	// 61.8% retracement: 120 - 30*0.618 = 101.46
	assert.InDelta(t, 101.46, fib.Retracements[3], 0.001)
	assert.True(t, fib.NearRetracement(101.5, 1.0))
	assert.False(t, fib.NearRetracement(140, 1.0))
}

func TestLevelsClustering(t *testing.T) {
	// Two visits to ~100 resistance and two to ~90 support.
	highs := []float64{95, 96, 100, 96, 95, 96, 100.3, 96, 95, 95}
	lows := []float64{92, 91, 93, 91, 90, 91, 92, 91, 90.2, 92}

	support, resistance, err := Levels(highs, lows, 10, 1.0)
	assert.NoError(t, err)
	assert.NotEmpty(t, resistance)
	assert.NotEmpty(t, support)
	assert.True(t, NearLevel(100.1, resistance, 1.0))
	assert.True(t, NearLevel(90.1, support, 1.0))
}
