package exchange

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaperOrderLifecycle(t *testing.T) {
	ctx := context.Background()
	p := NewPaper(10000)

	res, err := p.PlaceOrder(ctx, OrderRequest{
		Instrument: "XBTUSD", Side: SideBuy, Volume: 0.1, Price: 50000,
	})
	require.NoError(t, err)
	assert.True(t, res.Accepted)

	balance, err := p.AccountBalance(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 5000.0, balance, 1e-9)

	open, err := p.OpenPositions(ctx)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, 0.1, open[0].Volume)
	assert.Equal(t, 50000.0, open[0].EntryPrice)

	res, err = p.PlaceOrder(ctx, OrderRequest{
		Instrument: "XBTUSD", Side: SideSell, Volume: 0.1, Price: 55000,
	})
	require.NoError(t, err)
	assert.True(t, res.Accepted)

	open, err = p.OpenPositions(ctx)
	require.NoError(t, err)
	assert.Empty(t, open)

	balance, err = p.AccountBalance(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 10500.0, balance, 1e-9)
}

func TestPaperRejectsOverdraftAndNakedSell(t *testing.T) {
	ctx := context.Background()
	p := NewPaper(100)

	res, err := p.PlaceOrder(ctx, OrderRequest{
		Instrument: "XBTUSD", Side: SideBuy, Volume: 1, Price: 50000,
	})
	require.NoError(t, err)
	assert.False(t, res.Accepted)

	res, err = p.PlaceOrder(ctx, OrderRequest{
		Instrument: "XBTUSD", Side: SideSell, Volume: 1, Price: 50000,
	})
	require.NoError(t, err)
	assert.False(t, res.Accepted)
}

func TestPaperAveragesEntryOnAdd(t *testing.T) {
	ctx := context.Background()
	p := NewPaper(100000)

	_, err := p.PlaceOrder(ctx, OrderRequest{Instrument: "ETHUSD", Side: SideBuy, Volume: 1, Price: 2000})
	require.NoError(t, err)
	_, err = p.PlaceOrder(ctx, OrderRequest{Instrument: "ETHUSD", Side: SideBuy, Volume: 1, Price: 3000})
	require.NoError(t, err)

	open, err := p.OpenPositions(ctx)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, 2.0, open[0].Volume)
	assert.InDelta(t, 2500.0, open[0].EntryPrice, 1e-9)
}

func TestPaperMetadataFallsBackToDefaults(t *testing.T) {
	p := NewPaper(0)

	meta, err := p.InstrumentMetadata(context.Background(), "XBTUSD")
	require.NoError(t, err)
	assert.Equal(t, "XBTUSD", meta.Name)

	_, err = p.InstrumentMetadata(context.Background(), "DOGEUSD")
	assert.Error(t, err)
}

func TestLoadCandlesCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candles.csv")
	content := "time,open,high,low,close,vwap,volume,count\n" +
		"2026-01-02T00:00:00Z,100,101,99,100.5,100.2,12.5,42\n" +
		"1767312060,100.5,102,100,101,100.8,8,17\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	candles, err := LoadCandlesCSV(path)
	require.NoError(t, err)
	require.Len(t, candles, 2)

	assert.Equal(t, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), candles[0].Time)
	assert.Equal(t, 100.5, candles[0].Close)
	assert.Equal(t, 12.5, candles[0].Volume)
	assert.Equal(t, 101.0, candles[1].Close)
}
