package engine

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adaptivetrader/classifier"
	"adaptivetrader/config"
	"adaptivetrader/exchange"
	"adaptivetrader/journal"
	"adaptivetrader/market"
	"adaptivetrader/metrics"
	"adaptivetrader/strategies"
)

type memJournal struct {
	trades          []journal.TradeRecord
	switches        []journal.SwitchRecord
	classifications []journal.ClassificationRecord
}

func (m *memJournal) RecordTrade(t journal.TradeRecord) error {
	m.trades = append(m.trades, t)
	return nil
}
func (m *memJournal) RecordSwitch(s journal.SwitchRecord) error {
	m.switches = append(m.switches, s)
	return nil
}
func (m *memJournal) RecordClassification(c journal.ClassificationRecord) error {
	m.classifications = append(m.classifications, c)
	return nil
}
func (m *memJournal) SwitchesOn(string, time.Time) ([]journal.SwitchRecord, error) {
	return m.switches, nil
}
func (m *memJournal) Close() error { return nil }

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.TradingPairs = "XBTUSD"
	cfg.APICallDelay = 0
	cfg.CycleDelay = 0
	require.NoError(t, cfg.Validate())
	return cfg
}

func trendCandles(n int) []market.Candle {
	start := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	out := make([]market.Candle, n)
	for i := range out {
		c := 100 + float64(i)
		out[i] = market.Candle{
			Time: start.Add(time.Duration(i) * time.Minute),
			Open: c - 1, High: c + 0.5, Low: c - 1.5, Close: c, Volume: 10,
		}
	}
	return out
}

func newTestEngine(t *testing.T, cfg *config.Config, client exchange.Client) (*Engine, *memJournal) {
	t.Helper()
	jrnl := &memJournal{}
	m := metrics.New(prometheus.NewRegistry())
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	now := func() time.Time { return time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC) }
	return New(cfg, client, jrnl, m, log, now), jrnl
}

func TestEvaluateWarmupDoesNotTrade(t *testing.T) {
	cfg := testConfig(t)
	client := exchange.NewPaper(10000)
	client.SetCandles("XBTUSD", trendCandles(20)) // 19 committed, below 50

	eng, jrnl := newTestEngine(t, cfg, client)
	eng.evaluate(context.Background(), "XBTUSD")

	require.Len(t, jrnl.classifications, 1)
	assert.Equal(t, string(classifier.CollectingData), jrnl.classifications[0].State)
	assert.Equal(t, 0.0, jrnl.classifications[0].Confidence)
	assert.Empty(t, jrnl.switches)
	assert.Empty(t, jrnl.trades)
	assert.Equal(t, "", eng.sel.Assignment("XBTUSD").ActiveID)
}

func TestEvaluateAssignsStrategyOnceWarm(t *testing.T) {
	cfg := testConfig(t)
	client := exchange.NewPaper(10000)
	client.SetCandles("XBTUSD", trendCandles(120))

	eng, jrnl := newTestEngine(t, cfg, client)
	eng.evaluate(context.Background(), "XBTUSD")

	require.Len(t, jrnl.classifications, 1)
	assert.Equal(t, string(classifier.StrongUptrend), jrnl.classifications[0].State)

	// first warm cycle adopts the recommended strategy directly
	require.Len(t, jrnl.switches, 1)
	assert.Equal(t, strategies.NameSMACrossover, jrnl.switches[0].To)
	assert.Equal(t, strategies.NameSMACrossover, eng.sel.Assignment("XBTUSD").ActiveID)
}

func TestEvaluateSkipsCycleWhenSourcesFail(t *testing.T) {
	cfg := testConfig(t)
	client := exchange.NewPaper(10000) // no candles, no ticker

	eng, jrnl := newTestEngine(t, cfg, client)
	eng.evaluate(context.Background(), "XBTUSD")

	assert.Empty(t, jrnl.classifications)
	assert.Empty(t, jrnl.trades)
}

func TestEvaluateTickerFallback(t *testing.T) {
	cfg := testConfig(t)
	client := exchange.NewPaper(10000)
	client.SetTicker("XBTUSD", 42000) // ticker answers, OHLC does not

	eng, jrnl := newTestEngine(t, cfg, client)
	eng.evaluate(context.Background(), "XBTUSD")

	// one synthetic candle cached, classified as still collecting data
	s := eng.cache.Series("XBTUSD")
	require.NotNil(t, s)
	assert.Equal(t, 1, s.SyntheticCount())
	require.Len(t, jrnl.classifications, 1)
	assert.Equal(t, string(classifier.CollectingData), jrnl.classifications[0].State)
}

func TestEvaluateReanalysisThrottle(t *testing.T) {
	cfg := testConfig(t)
	client := exchange.NewPaper(10000)
	client.SetCandles("XBTUSD", trendCandles(120))

	eng, jrnl := newTestEngine(t, cfg, client)
	eng.evaluate(context.Background(), "XBTUSD")
	eng.evaluate(context.Background(), "XBTUSD")

	// classification runs every cycle, the selector only once per interval
	assert.Len(t, jrnl.classifications, 2)
	assert.Len(t, jrnl.switches, 1)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	cfg := testConfig(t)
	cfg.CycleDelay = 10 * time.Millisecond
	client := exchange.NewPaper(10000)
	client.SetCandles("XBTUSD", trendCandles(120))

	eng, _ := newTestEngine(t, cfg, client)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := eng.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
