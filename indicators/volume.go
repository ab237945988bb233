package indicators

import "fmt"

// VolumeSurge reports whether the latest volume is at least threshold times
// the average of the preceding period volumes. A zero-volume baseline never
// surges (synthetic candle runs have no volume).
func VolumeSurge(volumes []float64, period int, threshold float64) (bool, error) {
	if period <= 0 {
		return false, fmt.Errorf("period must be positive, got %d", period)
	}
	if len(volumes) < period+1 {
		return false, insufficient(period+1, len(volumes))
	}

	current := volumes[len(volumes)-1]
	baseline := mean(volumes[len(volumes)-period-1 : len(volumes)-1])
	if baseline <= 0 {
		return false, nil
	}
	return current >= threshold*baseline, nil
}
