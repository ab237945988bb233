package indicators

import "fmt"

// Direction of a detected breakout.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
)

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	default:
		return "none"
	}
}

// BreakoutConfig tunes the shared breakout detector.
type BreakoutConfig struct {
	// Lookback is the window whose extreme must be broken.
	Lookback int
	// VolumePeriod and VolumeThreshold gate the break on a volume surge.
	VolumePeriod    int
	VolumeThreshold float64
}

// Breakout reports whether the latest close escapes the prior lookback
// range on surging volume. The latest candle is excluded from the range it
// must break. Both the market classifier and the breakout trading logic
// call this single detector so they can never disagree about whether a
// breakout is in progress.
func Breakout(highs, lows, closes, volumes []float64, cfg BreakoutConfig) (Direction, error) {
	if cfg.Lookback <= 0 {
		return DirectionNone, fmt.Errorf("lookback must be positive, got %d", cfg.Lookback)
	}
	need := cfg.Lookback + 1
	if len(closes) < need {
		return DirectionNone, insufficient(need, len(closes))
	}
	if len(highs) < need || len(lows) < need {
		return DirectionNone, insufficient(need, min(len(highs), len(lows)))
	}

	surge, err := VolumeSurge(volumes, cfg.VolumePeriod, cfg.VolumeThreshold)
	if err != nil {
		return DirectionNone, err
	}
	if !surge {
		return DirectionNone, nil
	}

	last := closes[len(closes)-1]
	prevHighs := highs[len(highs)-need : len(highs)-1]
	prevLows := lows[len(lows)-need : len(lows)-1]

	maxHigh := prevHighs[0]
	minLow := prevLows[0]
	for i := 1; i < cfg.Lookback; i++ {
		if prevHighs[i] > maxHigh {
			maxHigh = prevHighs[i]
		}
		if prevLows[i] < minLow {
			minLow = prevLows[i]
		}
	}

	switch {
	case last > maxHigh:
		return DirectionUp, nil
	case last < minLow:
		return DirectionDown, nil
	default:
		return DirectionNone, nil
	}
}
