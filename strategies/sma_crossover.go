package strategies

import (
	"adaptivetrader/config"
	"adaptivetrader/indicators"
	"adaptivetrader/market"
)

// SMACrossover trades fast/slow SMA crosses. Entries can be filtered to
// trend direction; exits are gated on a minimum hold time and profit so a
// single whipsaw candle cannot round-trip a position at a loss.
type SMACrossover struct {
	positionState
	cfg *config.Config
}

func NewSMACrossover(cfg *config.Config) *SMACrossover {
	return &SMACrossover{cfg: cfg}
}

func (s *SMACrossover) Name() string { return NameSMACrossover }

func (s *SMACrossover) Analyze(series *market.Series) Signal {
	closes := series.Closes()
	if len(closes) < s.cfg.SlowSMAPeriod+1 {
		return None("collecting data: need %d candles, have %d", s.cfg.SlowSMAPeriod+1, len(closes))
	}

	fastNow, err := indicators.SMA(closes, s.cfg.FastSMAPeriod)
	if err != nil {
		return noneFromErr(err)
	}
	slowNow, err := indicators.SMA(closes, s.cfg.SlowSMAPeriod)
	if err != nil {
		return noneFromErr(err)
	}
	prev := closes[:len(closes)-1]
	fastPrev, err := indicators.SMA(prev, s.cfg.FastSMAPeriod)
	if err != nil {
		return noneFromErr(err)
	}
	slowPrev, err := indicators.SMA(prev, s.cfg.SlowSMAPeriod)
	if err != nil {
		return noneFromErr(err)
	}

	last, _ := series.Last()
	price := last.Close
	crossedUp := fastPrev <= slowPrev && fastNow > slowNow
	crossedDown := fastPrev >= slowPrev && fastNow < slowNow

	if s.inPosition() {
		if crossedDown {
			net := s.profitPct(price) / 100
			if !s.heldFor(s.cfg.MinHoldTime, last.Time) {
				return None("cross down but position held under %s", s.cfg.MinHoldTime)
			}
			if net < s.cfg.MinProfitTarget {
				return None("cross down but only %.2f%% unrealized, below target", net*100)
			}
			return Sell(price, "fast SMA crossed below slow at %.2f", slowNow)
		}
		return None("holding through fast %.2f over slow %.2f", fastNow, slowNow)
	}

	if crossedUp {
		if s.cfg.TrendFilter && price < slowNow {
			return None("cross up rejected by trend filter: price %.2f below slow SMA %.2f", price, slowNow)
		}
		return Buy(price, "fast SMA crossed above slow at %.2f", slowNow)
	}

	return None("no cross: fast %.2f, slow %.2f", fastNow, slowNow)
}
