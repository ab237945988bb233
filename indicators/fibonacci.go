package indicators

import "fmt"

// Standard Fibonacci ratios.
var (
	fibRetracements = []float64{0.236, 0.382, 0.5, 0.618, 0.786}
	fibExtensions   = []float64{1.272, 1.618}
)

// FibLevels holds retracement and extension prices computed from the most
// recent swing high and low of a lookback window.
type FibLevels struct {
	SwingHigh    float64
	SwingLow     float64
	Retracements []float64
	Extensions   []float64
}

// Fibonacci derives retracement and extension levels from the extremes of
// the last lookback candles.
func Fibonacci(highs, lows []float64, lookback int) (FibLevels, error) {
	if lookback <= 1 {
		return FibLevels{}, fmt.Errorf("lookback must be greater than 1, got %d", lookback)
	}
	if len(highs) < lookback || len(lows) < lookback {
		return FibLevels{}, insufficient(lookback, min(len(highs), len(lows)))
	}

	hiWindow := highs[len(highs)-lookback:]
	loWindow := lows[len(lows)-lookback:]
	high := hiWindow[0]
	low := loWindow[0]
	for i := 1; i < lookback; i++ {
		if hiWindow[i] > high {
			high = hiWindow[i]
		}
		if loWindow[i] < low {
			low = loWindow[i]
		}
	}

	span := high - low
	fl := FibLevels{SwingHigh: high, SwingLow: low}
	for _, r := range fibRetracements {
		fl.Retracements = append(fl.Retracements, high-span*r)
	}
	for _, e := range fibExtensions {
		fl.Extensions = append(fl.Extensions, high+span*(e-1))
	}
	return fl, nil
}

// NearRetracement reports whether price sits within tolerancePct of any
// retracement level, which mean-reversion entries use as confirmation.
func (f FibLevels) NearRetracement(price, tolerancePct float64) bool {
	return NearLevel(price, f.Retracements, tolerancePct)
}
