package indicators

import (
	"fmt"
	"math"
)

// Choppiness returns the Choppiness Index over the last period candles:
// 100 toward pure sideways noise, 0 toward a clean directional move. A flat
// window (zero high-low range) counts as maximally choppy.
func Choppiness(highs, lows, closes []float64, period int) (float64, error) {
	if period <= 1 {
		return 0, fmt.Errorf("period must be greater than 1, got %d", period)
	}
	if len(closes) < period+1 {
		return 0, insufficient(period+1, len(closes))
	}
	if len(highs) != len(closes) || len(lows) != len(closes) {
		return 0, fmt.Errorf("mismatched series lengths: %d/%d/%d", len(highs), len(lows), len(closes))
	}

	trs := trueRanges(highs, lows, closes)
	window := trs[len(trs)-period:]
	trSum := 0.0
	for _, tr := range window {
		trSum += tr
	}

	hiWindow := highs[len(highs)-period:]
	loWindow := lows[len(lows)-period:]
	maxHigh := hiWindow[0]
	minLow := loWindow[0]
	for i := 1; i < period; i++ {
		if hiWindow[i] > maxHigh {
			maxHigh = hiWindow[i]
		}
		if loWindow[i] < minLow {
			minLow = loWindow[i]
		}
	}

	span := maxHigh - minLow
	if span <= 0 || trSum <= 0 {
		return 100, nil
	}

	ci := 100 * math.Log10(trSum/span) / math.Log10(float64(period))
	return clamp(ci, 0, 100), nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
