package portfolio

// FeeModel computes trading fees for profit-gated exits. Rates are
// fractions, e.g. 0.0026 for 26 bps taker.
type FeeModel struct {
	MakerRate float64
	TakerRate float64
}

// RoundTripRate is the fee fraction for an entry plus an exit, both taker.
func (f FeeModel) RoundTripRate() float64 {
	return 2 * f.TakerRate
}

// BreakevenPct returns the percent move needed to cover a round trip.
func (f FeeModel) BreakevenPct() float64 {
	return f.RoundTripRate() * 100
}

// OrderFee returns the fee for a single fill of the given notional.
func (f FeeModel) OrderFee(notional float64, maker bool) float64 {
	if maker {
		return notional * f.MakerRate
	}
	return notional * f.TakerRate
}

// NetPnL returns profit after round-trip taker fees for a long closed at
// exit price.
func (f FeeModel) NetPnL(entry, exit, volume float64) float64 {
	gross := (exit - entry) * volume
	fees := f.OrderFee(entry*volume, false) + f.OrderFee(exit*volume, false)
	return gross - fees
}
