// Package classifier maps indicator readings over a candle series to a
// discrete market state with a confidence score.
package classifier

// MarketState is the discrete regime a candle series is classified into.
// The string values are stable identifiers used in logs and the journal.
type MarketState string

const (
	StrongUptrend    MarketState = "strong_uptrend"
	StrongDowntrend  MarketState = "strong_downtrend"
	ModerateTrend    MarketState = "moderate_trend"
	RangeBound       MarketState = "range_bound"
	VolatileBreakout MarketState = "volatile_breakout"
	Choppy           MarketState = "choppy"
	LowVolatility    MarketState = "low_volatility"
	CollectingData   MarketState = "collecting_data"
)

// Condition is a full classification result: the state, how clearly it was
// matched, and the indicator readings behind the decision.
type Condition struct {
	State      MarketState
	Confidence float64 // 0-100

	ADX        float64
	ATR        float64
	RangePct   float64
	Choppiness float64
	Slope      float64

	Description string
}
