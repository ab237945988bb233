// Package indicators provides pure technical analysis functions over price
// and volume slices. Every function is deterministic: the same input always
// yields the same output, and short inputs return ErrInsufficientData
// rather than a partial value.
package indicators

import (
	"errors"
	"fmt"
	"math"
)

// ErrInsufficientData is returned when the input window is shorter than the
// indicator requires. Callers treat it as "not warmed up yet", not a fault.
var ErrInsufficientData = errors.New("insufficient data")

func insufficient(need, got int) error {
	return fmt.Errorf("%w: need %d values, got %d", ErrInsufficientData, need, got)
}

func mean(vals []float64) float64 {
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func stdDev(vals []float64, m float64) float64 {
	sum := 0.0
	for _, v := range vals {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(vals)))
}
