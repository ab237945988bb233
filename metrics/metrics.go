// Package metrics exposes Prometheus collectors for the trading loop.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles every collector the engine updates.
type Metrics struct {
	Classifications    *prometheus.CounterVec
	StrategySwitches   *prometheus.CounterVec
	ExposureRejections *prometheus.CounterVec
	OrderRejections    *prometheus.CounterVec
	CycleErrors        *prometheus.CounterVec
	OrdersPlaced       *prometheus.CounterVec

	TotalExposurePct      prometheus.Gauge
	InstrumentExposurePct *prometheus.GaugeVec
}

// New registers all collectors on the given registry.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adaptivetrader_classifications_total",
			Help: "Market classifications by instrument and resulting state.",
		}, []string{"instrument", "state"}),
		StrategySwitches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adaptivetrader_strategy_switches_total",
			Help: "Strategy selector outcomes by instrument and result.",
		}, []string{"instrument", "result"}),
		ExposureRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adaptivetrader_exposure_rejections_total",
			Help: "Orders rejected by exposure caps, by reason.",
		}, []string{"reason"}),
		OrderRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adaptivetrader_order_rejections_total",
			Help: "Orders rejected during normalization, by instrument.",
		}, []string{"instrument"}),
		CycleErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adaptivetrader_cycle_errors_total",
			Help: "Transient per-instrument cycle failures.",
		}, []string{"instrument"}),
		OrdersPlaced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adaptivetrader_orders_placed_total",
			Help: "Orders submitted to the exchange, by instrument and side.",
		}, []string{"instrument", "side"}),
		TotalExposurePct: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "adaptivetrader_total_exposure_pct",
			Help: "Total open notional as a percent of account balance.",
		}),
		InstrumentExposurePct: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "adaptivetrader_instrument_exposure_pct",
			Help: "Per-instrument open notional as a percent of account balance.",
		}, []string{"instrument"}),
	}

	reg.MustRegister(
		m.Classifications,
		m.StrategySwitches,
		m.ExposureRejections,
		m.OrderRejections,
		m.CycleErrors,
		m.OrdersPlaced,
		m.TotalExposurePct,
		m.InstrumentExposurePct,
	)
	return m
}

// Handler serves the registry over HTTP for scraping.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
