package strategies

import (
	"errors"

	"adaptivetrader/config"
	"adaptivetrader/indicators"
	"adaptivetrader/market"
)

// MeanReversion buys oversold touches of the lower Bollinger band near a
// support zone and sells overbought touches of the upper band, with an
// optional Fibonacci retracement confirmation on entries and a fee-aware
// profit target on exits.
type MeanReversion struct {
	positionState
	cfg *config.Config
}

func NewMeanReversion(cfg *config.Config) *MeanReversion {
	return &MeanReversion{cfg: cfg}
}

func (m *MeanReversion) Name() string { return NameMeanReversion }

func (m *MeanReversion) Analyze(s *market.Series) Signal {
	closes := s.Closes()
	highs := s.Highs()
	lows := s.Lows()

	rsi, err := indicators.RSI(closes, m.cfg.RSIPeriod)
	if err != nil {
		return noneFromErr(err)
	}
	bands, err := indicators.Bollinger(closes, m.cfg.BBPeriod, m.cfg.BBStdDev)
	if err != nil {
		return noneFromErr(err)
	}

	last, _ := s.Last()
	price := last.Close

	if m.inPosition() {
		net := m.profitPct(price) / 100
		if rsi > m.cfg.RSIOverbought && price >= bands.Upper {
			return Sell(price, "RSI %.1f overbought at upper band", rsi)
		}
		if net >= m.cfg.MinProfitTarget && rsi > m.cfg.RSIOverbought {
			return Sell(price, "profit target %.2f%% reached with RSI %.1f", net*100, rsi)
		}
		return None("holding: RSI %.1f, unrealized %.2f%%", rsi, net*100)
	}

	if rsi < m.cfg.RSIOversold && price <= bands.Lower {
		if m.cfg.UseFibonacci {
			fib, err := indicators.Fibonacci(highs, lows, m.cfg.FibLookbackPeriod)
			if err == nil && !fib.NearRetracement(price, m.cfg.FibTolerancePct) {
				return None("oversold but not at a retracement level")
			}
		}
		support, _, err := indicators.Levels(highs, lows, m.cfg.FibLookbackPeriod, m.cfg.FibTolerancePct)
		if err == nil && len(support) > 0 && !indicators.NearLevel(price, support, m.cfg.FibTolerancePct*2) {
			return None("oversold but no support nearby")
		}
		return Buy(price, "RSI %.1f oversold at lower band", rsi)
	}

	return None("RSI %.1f inside %.1f-%.1f, no edge", rsi, m.cfg.RSIOversold, m.cfg.RSIOverbought)
}

func noneFromErr(err error) Signal {
	if errors.Is(err, indicators.ErrInsufficientData) {
		return None("collecting data: %v", err)
	}
	return None("indicator unavailable: %v", err)
}
