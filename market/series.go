package market

// Series is an ordered, length-bounded run of committed candles for a
// single instrument. Oldest first.
type Series struct {
	Instrument string
	Candles    []Candle
	max        int
}

func NewSeries(instrument string, max int) *Series {
	return &Series{
		Instrument: instrument,
		Candles:    make([]Candle, 0, max),
		max:        max,
	}
}

func (s *Series) Len() int { return len(s.Candles) }

// Last returns the most recent committed candle.
func (s *Series) Last() (Candle, bool) {
	if len(s.Candles) == 0 {
		return Candle{}, false
	}
	return s.Candles[len(s.Candles)-1], true
}

// Closes returns close prices oldest first.
func (s *Series) Closes() []float64 {
	out := make([]float64, len(s.Candles))
	for i, c := range s.Candles {
		out[i] = c.Close
	}
	return out
}

// Highs returns high prices oldest first.
func (s *Series) Highs() []float64 {
	out := make([]float64, len(s.Candles))
	for i, c := range s.Candles {
		out[i] = c.High
	}
	return out
}

// Lows returns low prices oldest first.
func (s *Series) Lows() []float64 {
	out := make([]float64, len(s.Candles))
	for i, c := range s.Candles {
		out[i] = c.Low
	}
	return out
}

// Volumes returns traded volume oldest first.
func (s *Series) Volumes() []float64 {
	out := make([]float64, len(s.Candles))
	for i, c := range s.Candles {
		out[i] = c.Volume
	}
	return out
}

// SyntheticCount reports how many candles in the series are ticker
// fallbacks rather than real OHLC intervals.
func (s *Series) SyntheticCount() int {
	n := 0
	for _, c := range s.Candles {
		if c.Synthetic {
			n++
		}
	}
	return n
}

// merge inserts a committed candle by timestamp: replace an existing candle
// with the same timestamp, append if newer than the tail, otherwise drop it
// (stale data is never reordered in).
func (s *Series) merge(c Candle) {
	n := len(s.Candles)
	if n == 0 || c.Time.After(s.Candles[n-1].Time) {
		s.Candles = append(s.Candles, c)
		s.trim()
		return
	}
	for i := n - 1; i >= 0; i-- {
		if s.Candles[i].Time.Equal(c.Time) {
			s.Candles[i] = c
			return
		}
		if s.Candles[i].Time.Before(c.Time) {
			break
		}
	}
}

func (s *Series) trim() {
	if over := len(s.Candles) - s.max; over > 0 {
		s.Candles = append(s.Candles[:0], s.Candles[over:]...)
	}
}
