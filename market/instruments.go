package market

// InstrumentMeta carries the exchange trading rules an order must satisfy
// before submission.
type InstrumentMeta struct {
	Name          string
	BaseCurrency  string
	QuoteCurrency string

	// TickSize is the price increment; prices are rounded down to it.
	TickSize float64
	// LotDecimals is the number of decimal places allowed on volume.
	LotDecimals int
	// OrderMin is the minimum order volume in base currency.
	OrderMin float64
	// CostMin is the minimum order cost (volume * price) in quote currency.
	CostMin float64
}

// DefaultInstruments covers the pairs the bot trades out of the box.
// Live metadata fetched from the exchange takes precedence when available.
var DefaultInstruments = map[string]InstrumentMeta{
	"XBTUSD": {
		Name:          "XBTUSD",
		BaseCurrency:  "XBT",
		QuoteCurrency: "USD",
		TickSize:      0.1,
		LotDecimals:   8,
		OrderMin:      0.0001,
		CostMin:       0.5,
	},
	"ETHUSD": {
		Name:          "ETHUSD",
		BaseCurrency:  "ETH",
		QuoteCurrency: "USD",
		TickSize:      0.01,
		LotDecimals:   8,
		OrderMin:      0.002,
		CostMin:       0.5,
	},
	"SOLUSD": {
		Name:          "SOLUSD",
		BaseCurrency:  "SOL",
		QuoteCurrency: "USD",
		TickSize:      0.01,
		LotDecimals:   8,
		OrderMin:      0.02,
		CostMin:       0.5,
	},
	"XRPUSD": {
		Name:          "XRPUSD",
		BaseCurrency:  "XRP",
		QuoteCurrency: "USD",
		TickSize:      0.00001,
		LotDecimals:   8,
		OrderMin:      2,
		CostMin:       0.5,
	},
}
