package strategies

import (
	"fmt"

	"adaptivetrader/classifier"
	"adaptivetrader/config"
)

// Strategy identifiers used by the registry, the selector, and the journal.
const (
	NameMeanReversion = "mean_reversion"
	NameSMACrossover  = "sma_crossover"
	NameMACD          = "macd"
	NameBreakout      = "breakout"
	NameGrid          = "grid"
)

// stateStrategy is the static mapping from market state to the strategy
// recommended for it.
var stateStrategy = map[classifier.MarketState]string{
	classifier.StrongUptrend:    NameSMACrossover,
	classifier.StrongDowntrend:  NameSMACrossover,
	classifier.ModerateTrend:    NameMACD,
	classifier.RangeBound:       NameMeanReversion,
	classifier.VolatileBreakout: NameBreakout,
	classifier.Choppy:           NameMeanReversion,
	classifier.LowVolatility:    NameGrid,
	classifier.CollectingData:   NameMeanReversion,
}

// ForState returns the strategy identifier recommended for a market state.
func ForState(state classifier.MarketState) string {
	if id, ok := stateStrategy[state]; ok {
		return id
	}
	return NameMeanReversion
}

// New constructs a strategy by identifier.
func New(id string, cfg *config.Config) (Strategy, error) {
	switch id {
	case NameMeanReversion:
		return NewMeanReversion(cfg), nil
	case NameSMACrossover:
		return NewSMACrossover(cfg), nil
	case NameMACD:
		return NewMACD(cfg), nil
	case NameBreakout:
		return NewBreakout(cfg), nil
	case NameGrid:
		return NewGrid(cfg), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", id)
	}
}
