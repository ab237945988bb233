package engine

import (
	"context"
	"log/slog"

	"adaptivetrader/exchange"
	"adaptivetrader/journal"
	"adaptivetrader/market"
	"adaptivetrader/portfolio"
	"adaptivetrader/strategies"
)

// executeBuy sizes, authorizes, normalizes, and places a buy order.
func (e *Engine) executeBuy(ctx context.Context, instrument, strategy string, sig strategies.Signal) {
	balance, err := e.client.AccountBalance(ctx)
	if err != nil {
		e.log.Warn("buy skipped: balance unavailable",
			slog.String("instrument", instrument),
			slog.String("error", err.Error()))
		e.m.CycleErrors.WithLabelValues(instrument).Inc()
		return
	}

	allocation, err := portfolio.EqualSplitAllocation(
		balance, len(e.cfg.Pairs()), e.cfg.FeeBufferPct, e.cfg.MaxTotalExposure)
	if perCoinMax := balance * e.cfg.MaxPerCoin / 100; err == nil && allocation > perCoinMax {
		allocation = perCoinMax
	}
	if err != nil || allocation <= 0 {
		e.log.Warn("buy skipped: no tradable allocation",
			slog.String("instrument", instrument),
			slog.Float64("balance", balance))
		return
	}

	decision, err := e.exposure.Authorize(ctx, instrument, allocation, e.marks)
	if err != nil {
		e.log.Warn("buy skipped: exposure check unavailable",
			slog.String("instrument", instrument),
			slog.String("error", err.Error()))
		e.m.CycleErrors.WithLabelValues(instrument).Inc()
		return
	}
	e.m.TotalExposurePct.Set(decision.TotalPct)
	e.m.InstrumentExposurePct.WithLabelValues(instrument).Set(decision.InstrumentPct)
	if !decision.Accepted {
		e.m.ExposureRejections.WithLabelValues(decision.Reason).Inc()
		e.log.Info("buy rejected by exposure cap",
			slog.String("instrument", instrument),
			slog.String("reason", decision.Reason),
			slog.Float64("instrument_pct", decision.InstrumentPct),
			slog.Float64("total_pct", decision.TotalPct),
			slog.Float64("proposed_pct", decision.ProposedPct))
		return
	}

	volume := portfolio.PositionSize(allocation, sig.Price)
	e.placeOrder(ctx, instrument, exchange.SideBuy, strategy, sig, volume)
}

// executeSell closes the open position.
func (e *Engine) executeSell(ctx context.Context, instrument, strategy string, sig strategies.Signal, pos *market.Position) {
	if pos == nil || pos.Volume <= 0 {
		e.log.Info("sell signal with no open position",
			slog.String("instrument", instrument),
			slog.String("reason", sig.Reason))
		return
	}
	e.placeOrder(ctx, instrument, exchange.SideSell, strategy, sig, pos.Volume)
}

func (e *Engine) placeOrder(ctx context.Context, instrument string, side exchange.Side, strategy string, sig strategies.Signal, volume float64) {
	meta, err := e.client.InstrumentMetadata(ctx, instrument)
	if err != nil {
		if fallback, ok := market.DefaultInstruments[instrument]; ok {
			meta = fallback
		} else {
			e.log.Warn("order skipped: metadata unavailable",
				slog.String("instrument", instrument),
				slog.String("error", err.Error()))
			e.m.CycleErrors.WithLabelValues(instrument).Inc()
			return
		}
	}

	normVolume, normPrice, err := portfolio.NormalizeOrder(meta, volume, sig.Price)
	if err != nil {
		e.m.OrderRejections.WithLabelValues(instrument).Inc()
		e.log.Info("order rejected during normalization",
			slog.String("instrument", instrument),
			slog.String("side", string(side)),
			slog.String("error", err.Error()))
		return
	}

	fee := e.fees.OrderFee(normVolume*normPrice, false)
	if !e.cfg.TrackFees {
		fee = 0
	}

	if e.cfg.DryRun {
		e.log.Info("dry run order",
			slog.String("instrument", instrument),
			slog.String("side", string(side)),
			slog.Float64("volume", normVolume),
			slog.Float64("price", normPrice),
			slog.String("reason", sig.Reason))
		e.recordTrade(instrument, side, strategy, sig.Reason, normVolume, normPrice, fee, true)
		return
	}

	result, err := e.client.PlaceOrder(ctx, exchange.OrderRequest{
		Instrument: instrument,
		Side:       side,
		Volume:     normVolume,
		Price:      normPrice,
	})
	if err != nil {
		e.log.Warn("order placement failed",
			slog.String("instrument", instrument),
			slog.String("side", string(side)),
			slog.String("error", err.Error()))
		e.m.CycleErrors.WithLabelValues(instrument).Inc()
		return
	}
	if !result.Accepted {
		e.log.Info("order rejected by exchange",
			slog.String("instrument", instrument),
			slog.String("side", string(side)),
			slog.String("reason", result.Reason))
		return
	}

	e.m.OrdersPlaced.WithLabelValues(instrument, string(side)).Inc()
	e.log.Info("order placed",
		slog.String("instrument", instrument),
		slog.String("side", string(side)),
		slog.String("order_id", result.ID),
		slog.Float64("volume", normVolume),
		slog.Float64("price", normPrice),
		slog.String("reason", sig.Reason))
	e.recordTrade(instrument, side, strategy, sig.Reason, normVolume, normPrice, fee, false)
}

func (e *Engine) recordTrade(instrument string, side exchange.Side, strategy, reason string, volume, price, fee float64, dryRun bool) {
	if err := e.jrnl.RecordTrade(journal.TradeRecord{
		ID:         journal.NewID(),
		Instrument: instrument,
		Side:       string(side),
		Volume:     volume,
		Price:      price,
		Strategy:   strategy,
		Reason:     reason,
		Fee:        fee,
		DryRun:     dryRun,
		Time:       e.now(),
	}); err != nil {
		e.log.Warn("journal write failed", slog.String("error", err.Error()))
	}
}
