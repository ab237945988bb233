package indicators

import "fmt"

// Bands holds Bollinger band levels at the most recent close.
type Bands struct {
	Upper  float64
	Middle float64
	Lower  float64
}

// Bollinger computes Bollinger Bands: an SMA middle band with upper and
// lower bands numStdDev standard deviations away.
func Bollinger(closes []float64, period int, numStdDev float64) (Bands, error) {
	if period <= 0 {
		return Bands{}, fmt.Errorf("period must be positive, got %d", period)
	}
	if len(closes) < period {
		return Bands{}, insufficient(period, len(closes))
	}

	window := closes[len(closes)-period:]
	m := mean(window)
	sd := stdDev(window, m)

	return Bands{
		Upper:  m + numStdDev*sd,
		Middle: m,
		Lower:  m - numStdDev*sd,
	}, nil
}
