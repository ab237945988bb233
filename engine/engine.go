// Package engine runs the trading loop: fetch candles, classify the
// market, pick a strategy, analyze, and gate any resulting order through
// exposure and normalization checks. Instruments are evaluated one at a
// time; the inter-call delay is the exchange rate limit.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"adaptivetrader/classifier"
	"adaptivetrader/config"
	"adaptivetrader/exchange"
	"adaptivetrader/journal"
	"adaptivetrader/market"
	"adaptivetrader/metrics"
	"adaptivetrader/portfolio"
	"adaptivetrader/selector"
	"adaptivetrader/strategies"
)

type Engine struct {
	cfg      *config.Config
	client   exchange.Client
	cache    *market.Cache
	class    *classifier.Classifier
	sel      *selector.Selector
	exposure *portfolio.ExposureManager
	fees     portfolio.FeeModel
	jrnl     journal.Journal
	m        *metrics.Metrics
	log      *slog.Logger
	now      func() time.Time

	active       map[string]strategies.Strategy
	lastAnalysis map[string]time.Time
	marks        map[string]float64
}

// New wires the engine. The clock is injected; pass time.Now in
// production.
func New(cfg *config.Config, client exchange.Client, jrnl journal.Journal, m *metrics.Metrics, log *slog.Logger, now func() time.Time) *Engine {
	return &Engine{
		cfg:      cfg,
		client:   client,
		cache:    market.NewCache(cfg.HistorySize, cfg.OHLCInterval),
		class:    classifier.New(cfg),
		sel:      selector.New(cfg, now),
		exposure: portfolio.NewExposureManager(cfg, client, client),
		fees:     portfolio.FeeModel{MakerRate: cfg.MakerFee, TakerRate: cfg.TakerFee},
		jrnl:     jrnl,
		m:        m,
		log:      log,
		now:      now,

		active:       make(map[string]strategies.Strategy),
		lastAnalysis: make(map[string]time.Time),
		marks:        make(map[string]float64),
	}
}

// Run executes cycles until the context is canceled. A failure in one
// instrument never aborts the cycle; the loop always proceeds to the next
// instrument and the next cycle.
func (e *Engine) Run(ctx context.Context) error {
	pairs := e.cfg.Pairs()
	e.log.Info("engine starting",
		slog.Any("pairs", pairs),
		slog.Bool("dry_run", e.cfg.DryRun))

	for {
		for _, instrument := range pairs {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			e.evaluate(ctx, instrument)
			if err := wait(ctx, e.cfg.APICallDelay); err != nil {
				return err
			}
		}
		if err := wait(ctx, e.cfg.CycleDelay); err != nil {
			return err
		}
	}
}

// evaluate runs one instrument through the full pipeline. Every failure
// below fatal is logged and absorbed here.
func (e *Engine) evaluate(ctx context.Context, instrument string) {
	series, err := e.updateCandles(ctx, instrument)
	if err != nil {
		e.log.Warn("cycle skipped: market data unavailable",
			slog.String("instrument", instrument),
			slog.String("error", err.Error()))
		e.m.CycleErrors.WithLabelValues(instrument).Inc()
		return
	}
	if last, ok := series.Last(); ok {
		e.marks[instrument] = last.Close
	}

	cond := e.class.Classify(series)
	e.m.Classifications.WithLabelValues(instrument, string(cond.State)).Inc()
	e.log.Info("market classified",
		slog.String("instrument", instrument),
		slog.String("state", string(cond.State)),
		slog.Float64("confidence", cond.Confidence),
		slog.String("detail", cond.Description))
	if err := e.jrnl.RecordClassification(journal.ClassificationRecord{
		ID:         journal.NewID(),
		Instrument: instrument,
		State:      string(cond.State),
		Confidence: cond.Confidence,
		ADX:        cond.ADX,
		Choppiness: cond.Choppiness,
		RangePct:   cond.RangePct,
		Time:       e.now(),
	}); err != nil {
		e.log.Warn("journal write failed", slog.String("error", err.Error()))
	}

	// Still warming up: no strategy switch, no trading.
	if cond.State == classifier.CollectingData {
		return
	}

	e.observeStrategy(instrument, cond)

	strat := e.activeStrategy(instrument)
	if strat == nil {
		return
	}

	pos, err := e.openPosition(ctx, instrument)
	if err != nil {
		e.log.Warn("cycle skipped: positions unavailable",
			slog.String("instrument", instrument),
			slog.String("error", err.Error()))
		e.m.CycleErrors.WithLabelValues(instrument).Inc()
		return
	}
	if pa, ok := strat.(strategies.PositionAware); ok {
		pa.SetPosition(pos)
	}

	sig := strat.Analyze(series)
	switch sig.Action {
	case strategies.ActionNone:
		e.log.Debug("no signal",
			slog.String("instrument", instrument),
			slog.String("strategy", strat.Name()),
			slog.String("reason", sig.Reason))
	case strategies.ActionBuy:
		e.executeBuy(ctx, instrument, strat.Name(), sig)
	case strategies.ActionSell:
		e.executeSell(ctx, instrument, strat.Name(), sig, pos)
	}
}

// updateCandles refreshes the cache from the OHLC endpoint, falling back
// to a synthetic ticker candle when the endpoint fails but the ticker
// still answers.
func (e *Engine) updateCandles(ctx context.Context, instrument string) (*market.Series, error) {
	raw, err := e.client.FetchCandles(ctx, instrument, e.cfg.OHLCInterval)
	if err == nil {
		s, uerr := e.cache.Update(instrument, raw)
		if uerr == nil {
			return s, nil
		}
		err = uerr
	}

	price, terr := e.client.FetchTicker(ctx, instrument)
	if terr != nil {
		return nil, errors.Join(err, terr)
	}
	e.log.Debug("using ticker fallback candle",
		slog.String("instrument", instrument),
		slog.Float64("price", price))
	return e.cache.AppendTicker(instrument, price, e.now()), nil
}

// observeStrategy feeds the classification into the selector, throttled to
// the reanalysis interval per instrument.
func (e *Engine) observeStrategy(instrument string, cond classifier.Condition) {
	now := e.now()
	if last, ok := e.lastAnalysis[instrument]; ok && now.Sub(last) < e.cfg.ReanalysisInterval {
		return
	}
	e.lastAnalysis[instrument] = now

	prev := e.sel.Assignment(instrument).ActiveID
	recommended := strategies.ForState(cond.State)
	dec := e.sel.Observe(instrument, recommended)
	e.m.StrategySwitches.WithLabelValues(instrument, string(dec.Result)).Inc()

	switch dec.Result {
	case selector.ResultInitialized, selector.ResultCommitted:
		delete(e.active, instrument)
		e.log.Info("strategy assigned",
			slog.String("instrument", instrument),
			slog.String("from", prev),
			slog.String("to", dec.Active),
			slog.String("result", string(dec.Result)))
		if err := e.jrnl.RecordSwitch(journal.SwitchRecord{
			ID:         journal.NewID(),
			Instrument: instrument,
			From:       prev,
			To:         dec.Active,
			State:      string(cond.State),
			Confidence: cond.Confidence,
			Time:       now,
		}); err != nil {
			e.log.Warn("journal write failed", slog.String("error", err.Error()))
		}
	case selector.ResultConfirming, selector.ResultDeferred:
		e.log.Info("strategy switch pending",
			slog.String("instrument", instrument),
			slog.String("pending", dec.Pending),
			slog.Int("confirmations", dec.Confirmations),
			slog.String("reason", dec.Reason))
	}
}

// activeStrategy returns the instrument's strategy instance, constructing
// it on first use or after a switch.
func (e *Engine) activeStrategy(instrument string) strategies.Strategy {
	if s := e.active[instrument]; s != nil {
		return s
	}
	id := e.sel.Assignment(instrument).ActiveID
	if id == "" {
		return nil
	}
	s, err := strategies.New(id, e.cfg)
	if err != nil {
		e.log.Error("strategy construction failed",
			slog.String("instrument", instrument),
			slog.String("strategy", id),
			slog.String("error", err.Error()))
		return nil
	}
	e.active[instrument] = s
	return s
}

func (e *Engine) openPosition(ctx context.Context, instrument string) (*market.Position, error) {
	open, err := e.client.OpenPositions(ctx)
	if err != nil {
		return nil, err
	}
	for i := range open {
		if open[i].Instrument == instrument {
			return &open[i], nil
		}
	}
	return nil, nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
