package indicators

import "fmt"

// MACDResult holds the MACD line, its signal line, and the histogram
// (line minus signal) at the most recent close.
type MACDResult struct {
	Line      float64
	Signal    float64
	Histogram float64
}

// MACD computes the Moving Average Convergence Divergence. The signal line
// is an EMA of the MACD line, so the input must cover the slow period plus
// the signal period.
func MACD(closes []float64, fast, slow, signal int) (MACDResult, error) {
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return MACDResult{}, fmt.Errorf("periods must be positive, got %d/%d/%d", fast, slow, signal)
	}
	if fast >= slow {
		return MACDResult{}, fmt.Errorf("fast period %d must be below slow period %d", fast, slow)
	}
	need := slow + signal
	if len(closes) < need {
		return MACDResult{}, insufficient(need, len(closes))
	}

	fastSeries, err := emaSeries(closes, fast)
	if err != nil {
		return MACDResult{}, err
	}
	slowSeries, err := emaSeries(closes, slow)
	if err != nil {
		return MACDResult{}, err
	}

	// Align: slowSeries[i] corresponds to fastSeries[i + slow - fast].
	offset := slow - fast
	macdLine := make([]float64, len(slowSeries))
	for i := range slowSeries {
		macdLine[i] = fastSeries[i+offset] - slowSeries[i]
	}

	signalSeries, err := emaSeries(macdLine, signal)
	if err != nil {
		return MACDResult{}, err
	}

	line := macdLine[len(macdLine)-1]
	sig := signalSeries[len(signalSeries)-1]
	return MACDResult{
		Line:      line,
		Signal:    sig,
		Histogram: line - sig,
	}, nil
}
