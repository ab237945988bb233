package indicators

import (
	"fmt"
	"sort"
)

// swing pivot width: a bar is a swing point when it is the extreme of the
// two bars on each side.
const swingWidth = 2

// SwingHighs returns the prices of local maxima in the window.
func SwingHighs(highs []float64) []float64 {
	return swings(highs, func(a, b float64) bool { return a > b })
}

// SwingLows returns the prices of local minima in the window.
func SwingLows(lows []float64) []float64 {
	return swings(lows, func(a, b float64) bool { return a < b })
}

func swings(vals []float64, beats func(a, b float64) bool) []float64 {
	var out []float64
	for i := swingWidth; i < len(vals)-swingWidth; i++ {
		pivot := true
		for j := i - swingWidth; j <= i+swingWidth; j++ {
			if j != i && !beats(vals[i], vals[j]) {
				pivot = false
				break
			}
		}
		if pivot {
			out = append(out, vals[i])
		}
	}
	return out
}

// Levels groups nearby swing points into support and resistance levels.
// Points within tolerancePct of each other merge into one level at their
// average price. Levels are sorted ascending.
func Levels(highs, lows []float64, lookback int, tolerancePct float64) (support, resistance []float64, err error) {
	if lookback <= 2*swingWidth {
		return nil, nil, fmt.Errorf("lookback must exceed %d, got %d", 2*swingWidth, lookback)
	}
	if len(highs) < lookback || len(lows) < lookback {
		return nil, nil, insufficient(lookback, min(len(highs), len(lows)))
	}

	support = clusterLevels(SwingLows(lows[len(lows)-lookback:]), tolerancePct)
	resistance = clusterLevels(SwingHighs(highs[len(highs)-lookback:]), tolerancePct)
	return support, resistance, nil
}

func clusterLevels(points []float64, tolerancePct float64) []float64 {
	if len(points) == 0 {
		return nil
	}
	sorted := append([]float64(nil), points...)
	sort.Float64s(sorted)

	var levels []float64
	clusterSum := sorted[0]
	clusterN := 1
	for _, p := range sorted[1:] {
		center := clusterSum / float64(clusterN)
		if center > 0 && (p-center)/center*100 <= tolerancePct {
			clusterSum += p
			clusterN++
			continue
		}
		levels = append(levels, center)
		clusterSum = p
		clusterN = 1
	}
	levels = append(levels, clusterSum/float64(clusterN))
	return levels
}

// NearLevel reports whether price is within tolerancePct of any level.
func NearLevel(price float64, levels []float64, tolerancePct float64) bool {
	if price <= 0 {
		return false
	}
	for _, lvl := range levels {
		if abs(price-lvl)/price*100 <= tolerancePct {
			return true
		}
	}
	return false
}
