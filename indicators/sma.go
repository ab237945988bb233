package indicators

import "fmt"

// SMA returns the simple moving average of the last period closes.
func SMA(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("period must be positive, got %d", period)
	}
	if len(closes) < period {
		return 0, insufficient(period, len(closes))
	}
	return mean(closes[len(closes)-period:]), nil
}

// EMA returns the exponential moving average of the closes with the given
// period, seeded with the SMA of the first period values.
func EMA(closes []float64, period int) (float64, error) {
	series, err := emaSeries(closes, period)
	if err != nil {
		return 0, err
	}
	return series[len(series)-1], nil
}

// emaSeries returns the EMA at every index from period-1 onward. Index i of
// the result corresponds to closes[period-1+i].
func emaSeries(closes []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("period must be positive, got %d", period)
	}
	if len(closes) < period {
		return nil, insufficient(period, len(closes))
	}

	k := 2.0 / (float64(period) + 1.0)
	out := make([]float64, 0, len(closes)-period+1)

	ema := mean(closes[:period])
	out = append(out, ema)
	for i := period; i < len(closes); i++ {
		ema = closes[i]*k + ema*(1-k)
		out = append(out, ema)
	}
	return out, nil
}
