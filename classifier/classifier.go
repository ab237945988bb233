package classifier

import (
	"fmt"

	"adaptivetrader/config"
	"adaptivetrader/indicators"
	"adaptivetrader/market"
)

// Classifier applies a fixed-priority rule list to indicator readings.
// Classification is pure: the same series always yields the same Condition.
type Classifier struct {
	cfg *config.Config
}

func New(cfg *config.Config) *Classifier {
	return &Classifier{cfg: cfg}
}

// Classify evaluates the series against the rule list. Below MinDataPoints
// no indicator runs at all and the result is CollectingData at confidence
// zero. Rules are ordered by priority and the first match wins; reordering
// them changes behavior.
func (c *Classifier) Classify(s *market.Series) Condition {
	if s == nil || s.Len() < c.cfg.MinDataPoints {
		got := 0
		if s != nil {
			got = s.Len()
		}
		return Condition{
			State:       CollectingData,
			Confidence:  0,
			Description: fmt.Sprintf("warming up: %d/%d candles", got, c.cfg.MinDataPoints),
		}
	}

	highs := s.Highs()
	lows := s.Lows()
	closes := s.Closes()
	volumes := s.Volumes()

	adx, errADX := indicators.ADX(highs, lows, closes, c.cfg.ADXPeriod)
	atr, errATR := indicators.ATR(highs, lows, closes, c.cfg.ATRPeriod)
	chop, errChop := indicators.Choppiness(highs, lows, closes, c.cfg.ChopPeriod)
	slope, errSlope := indicators.Slope(closes, c.cfg.SlopePeriod)
	rangePct, errRange := indicators.RangePct(highs, lows, rangeWindow(c.cfg.RangePeriod, s.Len()))
	if errADX != nil || errATR != nil || errChop != nil || errSlope != nil || errRange != nil {
		return Condition{
			State:       CollectingData,
			Confidence:  0,
			Description: "indicator windows not yet filled",
		}
	}

	cond := Condition{
		ADX:        adx,
		ATR:        atr,
		RangePct:   rangePct,
		Choppiness: chop,
		Slope:      slope,
	}
	boRatio := c.breakoutRatio(highs, lows, closes, volumes, atr)

	switch {
	case adx > c.cfg.ADXStrongTrend && slope > 0:
		cond.State = StrongUptrend
		cond.Confidence = marginConfidence((adx - c.cfg.ADXStrongTrend) * 2)
		cond.Description = fmt.Sprintf("ADX %.1f above %.1f with rising slope", adx, c.cfg.ADXStrongTrend)

	case adx > c.cfg.ADXStrongTrend && slope < 0:
		cond.State = StrongDowntrend
		cond.Confidence = marginConfidence((adx - c.cfg.ADXStrongTrend) * 2)
		cond.Description = fmt.Sprintf("ADX %.1f above %.1f with falling slope", adx, c.cfg.ADXStrongTrend)

	case adx >= c.cfg.ADXWeakTrend && adx <= c.cfg.ADXStrongTrend:
		margin := adx - c.cfg.ADXWeakTrend
		if upper := c.cfg.ADXStrongTrend - adx; upper < margin {
			margin = upper
		}
		cond.State = ModerateTrend
		cond.Confidence = marginConfidence(margin * 5)
		cond.Description = fmt.Sprintf("ADX %.1f between %.1f and %.1f", adx, c.cfg.ADXWeakTrend, c.cfg.ADXStrongTrend)

	case rangePct < c.cfg.RangeTight:
		cond.State = LowVolatility
		cond.Confidence = marginConfidence((c.cfg.RangeTight - rangePct) / c.cfg.RangeTight * 50)
		cond.Description = fmt.Sprintf("range %.1f%% below %.1f%%", rangePct, c.cfg.RangeTight)

	case chop > c.cfg.ChoppinessChoppy:
		cond.State = Choppy
		cond.Confidence = marginConfidence((chop - c.cfg.ChoppinessChoppy) * 2.5)
		cond.Description = fmt.Sprintf("choppiness %.1f above %.1f", chop, c.cfg.ChoppinessChoppy)

	case adx < c.cfg.ADXWeakTrend && rangePct >= c.cfg.RangeTight && rangePct <= c.cfg.RangeModerate:
		cond.State = RangeBound
		cond.Confidence = marginConfidence((c.cfg.ADXWeakTrend - adx) * 2.5)
		cond.Description = fmt.Sprintf("ADX %.1f below %.1f in a %.1f%% range", adx, c.cfg.ADXWeakTrend, rangePct)

	case boRatio >= c.cfg.ATRMultiplier:
		cond.State = VolatileBreakout
		cond.Confidence = marginConfidence((boRatio - c.cfg.ATRMultiplier) * 50)
		cond.Description = fmt.Sprintf("range break with ATR %.2fx its baseline", boRatio)

	default:
		cond.State = RangeBound
		cond.Confidence = 30
		cond.Description = "no rule matched, defaulting to range-bound"
	}
	return cond
}

// breakoutRatio returns current ATR over its baseline ATR when the shared
// breakout detector fires, and 0 when it does not. The baseline excludes
// the most recent ATR window so the elevation is measured against calmer
// history.
func (c *Classifier) breakoutRatio(highs, lows, closes, volumes []float64, atr float64) float64 {
	dir, err := indicators.Breakout(highs, lows, closes, volumes, indicators.BreakoutConfig{
		Lookback:        c.cfg.BreakoutLookback,
		VolumePeriod:    c.cfg.VolumePeriod,
		VolumeThreshold: c.cfg.VolumeThreshold,
	})
	if err != nil || dir == indicators.DirectionNone {
		return 0
	}

	cut := len(closes) - c.cfg.ATRPeriod
	baseline, err := indicators.ATR(highs[:cut], lows[:cut], closes[:cut], c.cfg.ATRPeriod)
	if err != nil || baseline <= 0 {
		return 0
	}
	return atr / baseline
}

// rangeWindow shrinks the range lookback to the available history; the
// series is already past MinDataPoints when this runs.
func rangeWindow(period, available int) int {
	if period > available {
		return available
	}
	return period
}

// marginConfidence maps a rule margin to [0,100]. Larger margins mean a
// clearer match; 50 is the floor for any matched rule.
func marginConfidence(scaledMargin float64) float64 {
	conf := 50 + scaledMargin
	if conf < 50 {
		conf = 50
	}
	if conf > 100 {
		conf = 100
	}
	return conf
}
