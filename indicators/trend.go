package indicators

import "fmt"

// Slope fits a least-squares line through the last period closes and
// returns its slope as a percentage of the window mean per candle, so
// values are comparable across instruments at different price levels.
func Slope(closes []float64, period int) (float64, error) {
	if period <= 1 {
		return 0, fmt.Errorf("period must be greater than 1, got %d", period)
	}
	if len(closes) < period {
		return 0, insufficient(period, len(closes))
	}

	window := closes[len(closes)-period:]
	n := float64(period)

	// x values are 0..period-1
	sumX := n * (n - 1) / 2
	sumXX := n * (n - 1) * (2*n - 1) / 6
	sumY := 0.0
	sumXY := 0.0
	for i, y := range window {
		sumY += y
		sumXY += float64(i) * y
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, nil
	}
	slope := (n*sumXY - sumX*sumY) / denom

	m := sumY / n
	if m == 0 {
		return 0, nil
	}
	return slope / m * 100, nil
}

// RangePct returns the high-low spread of the last period candles as a
// percentage of the window low.
func RangePct(highs, lows []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("period must be positive, got %d", period)
	}
	if len(highs) < period || len(lows) < period {
		return 0, insufficient(period, min(len(highs), len(lows)))
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

	if minLow <= 0 {
		return 0, fmt.Errorf("non-positive window low %f", minLow)
	}
	return (maxHigh - minLow) / minLow * 100, nil
}
