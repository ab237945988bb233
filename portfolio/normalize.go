package portfolio

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"adaptivetrader/market"
)

// ErrOrderTooSmall marks an order that rounds to zero or falls below the
// instrument's minimum volume or cost after normalization. Callers report
// it; it is never silently dropped.
var ErrOrderTooSmall = errors.New("portfolio: order below instrument minimum")

// NormalizeOrder fits an order to the instrument's trading rules: volume
// rounds down to the allowed lot decimals, price rounds down to the tick
// size. Rounding down means a normalized order can never exceed what the
// exposure check authorized.
func NormalizeOrder(meta market.InstrumentMeta, volume, price float64) (normVolume, normPrice float64, err error) {
	if volume <= 0 || price <= 0 {
		return 0, 0, fmt.Errorf("%w: volume %.8f at price %.8f", ErrOrderTooSmall, volume, price)
	}

	v := decimal.NewFromFloat(volume).RoundFloor(int32(meta.LotDecimals))

	p := decimal.NewFromFloat(price)
	if meta.TickSize > 0 {
		tick := decimal.NewFromFloat(meta.TickSize)
		p = p.Div(tick).Floor().Mul(tick)
	}

	normVolume, _ = v.Float64()
	normPrice, _ = p.Float64()

	if normVolume <= 0 {
		return 0, 0, fmt.Errorf("%w: volume rounds to zero at %d lot decimals", ErrOrderTooSmall, meta.LotDecimals)
	}
	if normVolume < meta.OrderMin {
		return 0, 0, fmt.Errorf("%w: volume %.8f under ordermin %.8f", ErrOrderTooSmall, normVolume, meta.OrderMin)
	}
	if cost, _ := v.Mul(p).Float64(); cost < meta.CostMin {
		return 0, 0, fmt.Errorf("%w: cost %.2f under costmin %.2f", ErrOrderTooSmall, cost, meta.CostMin)
	}

	return normVolume, normPrice, nil
}
