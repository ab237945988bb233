package indicators

import (
	"fmt"
	"math"
)

// ATR returns the Average True Range: the mean of the last period true
// ranges. Needs period+1 candles because the true range uses the previous
// close.
func ATR(highs, lows, closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("period must be positive, got %d", period)
	}
	if len(closes) < period+1 {
		return 0, insufficient(period+1, len(closes))
	}
	if len(highs) != len(closes) || len(lows) != len(closes) {
		return 0, fmt.Errorf("mismatched series lengths: %d/%d/%d", len(highs), len(lows), len(closes))
	}

	trs := trueRanges(highs, lows, closes)
	return mean(trs[len(trs)-period:]), nil
}

// trueRanges returns one TR per candle starting at index 1.
func trueRanges(highs, lows, closes []float64) []float64 {
	out := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		out = append(out, trueRange(highs[i], lows[i], closes[i-1]))
	}
	return out
}

func trueRange(high, low, prevClose float64) float64 {
	hl := high - low
	hc := math.Abs(high - prevClose)
	lc := math.Abs(low - prevClose)
	return math.Max(hl, math.Max(hc, lc))
}
