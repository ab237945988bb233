package strategies

import (
	"adaptivetrader/config"
	"adaptivetrader/indicators"
	"adaptivetrader/market"
)

// BreakoutStrategy enters when price escapes the recent range on surging
// volume, using the same detector the market classifier uses. Optionally it
// waits for a retest: the close must have pulled back to within tolerance
// of the broken level before the entry fires.
type BreakoutStrategy struct {
	positionState
	cfg *config.Config
}

func NewBreakout(cfg *config.Config) *BreakoutStrategy {
	return &BreakoutStrategy{cfg: cfg}
}

func (b *BreakoutStrategy) Name() string { return NameBreakout }

func (b *BreakoutStrategy) Analyze(s *market.Series) Signal {
	highs := s.Highs()
	lows := s.Lows()
	closes := s.Closes()
	volumes := s.Volumes()

	dir, err := indicators.Breakout(highs, lows, closes, volumes, indicators.BreakoutConfig{
		Lookback:        b.cfg.BreakoutLookback,
		VolumePeriod:    b.cfg.VolumePeriod,
		VolumeThreshold: b.cfg.VolumeThreshold,
	})
	if err != nil {
		return noneFromErr(err)
	}

	last, _ := s.Last()
	price := last.Close

	if b.inPosition() {
		if dir == indicators.DirectionDown {
			return Sell(price, "downside break of the recent range")
		}
		net := b.profitPct(price) / 100
		if net >= b.cfg.MinProfitTarget {
			_, resistance, lerr := indicators.Levels(highs, lows, b.cfg.FibLookbackPeriod, b.cfg.FibTolerancePct)
			if lerr == nil && indicators.NearLevel(price, resistance, b.cfg.FibTolerancePct) {
				return Sell(price, "profit %.2f%% at resistance", net*100)
			}
		}
		return None("holding breakout position, unrealized %.2f%%", net*100)
	}

	if dir != indicators.DirectionUp {
		return None("no upside breakout detected")
	}

	if b.cfg.RequireRetest {
		brokenLevel := maxOf(highs[len(highs)-b.cfg.BreakoutLookback-1 : len(highs)-1])
		if !indicators.NearLevel(price, []float64{brokenLevel}, b.cfg.FibTolerancePct) {
			return None("breakout at %.2f awaiting retest of %.2f", price, brokenLevel)
		}
	}

	return Buy(price, "upside break of %d-candle range on volume", b.cfg.BreakoutLookback)
}

func maxOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
