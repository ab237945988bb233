package strategies

import (
	"adaptivetrader/config"
	"adaptivetrader/indicators"
	"adaptivetrader/market"
)

// MACDStrategy trades MACD line/signal crosses, optionally requiring the
// histogram to agree with the cross direction before acting.
type MACDStrategy struct {
	positionState
	cfg *config.Config
}

func NewMACD(cfg *config.Config) *MACDStrategy {
	return &MACDStrategy{cfg: cfg}
}

func (m *MACDStrategy) Name() string { return NameMACD }

func (m *MACDStrategy) Analyze(s *market.Series) Signal {
	closes := s.Closes()

	now, err := indicators.MACD(closes, m.cfg.MACDFast, m.cfg.MACDSlow, m.cfg.MACDSignal)
	if err != nil {
		return noneFromErr(err)
	}
	prev, err := indicators.MACD(closes[:len(closes)-1], m.cfg.MACDFast, m.cfg.MACDSlow, m.cfg.MACDSignal)
	if err != nil {
		return noneFromErr(err)
	}

	last, _ := s.Last()
	price := last.Close
	crossedUp := prev.Line <= prev.Signal && now.Line > now.Signal
	crossedDown := prev.Line >= prev.Signal && now.Line < now.Signal

	if m.inPosition() {
		if crossedDown {
			if m.cfg.MACDHistogramConfirm && now.Histogram >= 0 {
				return None("cross down without histogram confirmation (%.4f)", now.Histogram)
			}
			return Sell(price, "MACD crossed below signal (%.4f < %.4f)", now.Line, now.Signal)
		}
		return None("holding: MACD %.4f over signal %.4f", now.Line, now.Signal)
	}

	if crossedUp {
		if m.cfg.MACDHistogramConfirm && now.Histogram <= 0 {
			return None("cross up without histogram confirmation (%.4f)", now.Histogram)
		}
		return Buy(price, "MACD crossed above signal (%.4f > %.4f)", now.Line, now.Signal)
	}

	return None("no cross: MACD %.4f, signal %.4f", now.Line, now.Signal)
}
