package portfolio

import "fmt"

// EqualSplitAllocation divides the tradable share of the balance evenly
// across n instruments, holding back a fee buffer so fills plus fees never
// overdraw the account.
func EqualSplitAllocation(balance float64, n int, feeBufferPct, exposurePct float64) (float64, error) {
	if n <= 0 {
		return 0, fmt.Errorf("instrument count must be positive, got %d", n)
	}
	if balance <= 0 {
		return 0, fmt.Errorf("balance must be positive, got %.2f", balance)
	}

	tradable := balance * exposurePct / 100 * (1 - feeBufferPct/100)
	if tradable <= 0 {
		return 0, nil
	}
	return tradable / float64(n), nil
}

// PositionSize converts a quote-currency allocation into base-currency
// volume at the given price.
func PositionSize(allocation, price float64) float64 {
	if price <= 0 || allocation <= 0 {
		return 0
	}
	return allocation / price
}
