// Package strategies defines the trading signal model, the pluggable
// strategy interface, five concrete strategies, and the registry mapping
// market states to the strategy suited to them.
package strategies

import "fmt"

// Action is the trading decision a strategy emits.
type Action int

const (
	ActionNone Action = iota
	ActionBuy
	ActionSell
)

func (a Action) String() string {
	switch a {
	case ActionBuy:
		return "buy"
	case ActionSell:
		return "sell"
	default:
		return "none"
	}
}

// Signal is the outcome of one strategy analysis. ActionNone always carries
// a human-readable reason; "no signal" is a value, never an error.
type Signal struct {
	Action Action
	Reason string
	Price  float64
}

// None builds a no-action signal with a formatted reason.
func None(format string, args ...any) Signal {
	return Signal{Action: ActionNone, Reason: fmt.Sprintf(format, args...)}
}

// Buy builds a buy signal at the given price.
func Buy(price float64, format string, args ...any) Signal {
	return Signal{Action: ActionBuy, Price: price, Reason: fmt.Sprintf(format, args...)}
}

// Sell builds a sell signal at the given price.
func Sell(price float64, format string, args ...any) Signal {
	return Signal{Action: ActionSell, Price: price, Reason: fmt.Sprintf(format, args...)}
}
