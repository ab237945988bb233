package exchange

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"adaptivetrader/market"
)

// LoadCandlesCSV reads candles from a CSV file with columns
// time,open,high,low,close,vwap,volume,count. Time is RFC3339 or a unix
// epoch in seconds. A header row is skipped when present.
func LoadCandlesCSV(path string) ([]market.Candle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open candle file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read candle file: %w", err)
	}

	var out []market.Candle
	for i, row := range rows {
		if len(row) < 5 {
			return nil, fmt.Errorf("row %d: expected at least 5 columns, got %d", i+1, len(row))
		}
		ts, err := parseTime(row[0])
		if err != nil {
			if i == 0 {
				continue // header
			}
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		c := market.Candle{Time: ts}
		fields := []*float64{&c.Open, &c.High, &c.Low, &c.Close, &c.VWAP, &c.Volume}
		for j := 1; j < len(row) && j <= len(fields); j++ {
			v, err := strconv.ParseFloat(row[j], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", i+1, j+1, err)
			}
			*fields[j-1] = v
		}
		if len(row) > 7 {
			if n, err := strconv.Atoi(row[7]); err == nil {
				c.Count = n
			}
		}
		out = append(out, c)
	}
	return out, nil
}

func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if epoch, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(epoch, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unparseable time %q", s)
}
