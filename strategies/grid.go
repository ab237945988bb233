package strategies

import (
	"math"

	"adaptivetrader/config"
	"adaptivetrader/market"
)

// GridStrategy lays percent-spaced levels around a center price and trades
// the oscillation: buy when price drops a level, sell when it rises one.
// When price escapes the grid entirely the grid re-centers on the current
// price instead of chasing fills outside its band.
type GridStrategy struct {
	positionState
	cfg *config.Config

	center    float64
	lastLevel int
}

func NewGrid(cfg *config.Config) *GridStrategy {
	return &GridStrategy{cfg: cfg}
}

func (g *GridStrategy) Name() string { return NameGrid }

func (g *GridStrategy) Analyze(s *market.Series) Signal {
	last, ok := s.Last()
	if !ok {
		return None("no candles yet")
	}
	price := last.Close

	if g.center == 0 {
		g.center = price
		g.lastLevel = 0
		return None("grid centered at %.2f", g.center)
	}

	spacing := g.cfg.GridSpacingPct / 100
	half := g.cfg.GridSize / 2

	// level 0 is the center; positive levels are above it
	level := int(math.Floor(math.Log(price/g.center)/math.Log(1+spacing) + 1e-9))

	if level > half || level < -half {
		g.center = price
		g.lastLevel = 0
		return None("price escaped grid, re-centered at %.2f", price)
	}

	defer func() { g.lastLevel = level }()

	switch {
	case level < g.lastLevel:
		return Buy(price, "price fell to grid level %d of %d", level, half)
	case level > g.lastLevel && g.inPosition():
		return Sell(price, "price rose to grid level %d of %d", level, half)
	case level > g.lastLevel:
		return None("rose to level %d with nothing to sell", level)
	default:
		return None("price %.2f inside level %d", price, level)
	}
}
