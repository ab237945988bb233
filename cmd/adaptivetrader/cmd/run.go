package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"adaptivetrader/config"
	"adaptivetrader/engine"
	"adaptivetrader/exchange"
	"adaptivetrader/journal"
	"adaptivetrader/logger"
	"adaptivetrader/metrics"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the trading loop",
	Long: `Run the adaptive trading loop against the configured pairs.

Configuration is read from the environment (and .env) by default, or from a
YAML/JSON file with --config. The built-in paper exchange fills orders
against a simulated balance; feed it historical candles with --candles.

Example:
  adaptivetrader run --candles XBTUSD=data/xbtusd.csv --balance 10000`,
	RunE: runRun,
}

var (
	runConfigPath string
	runLogLevel   string
	runBalance    float64
	runCandles    []string
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON); defaults to environment")
	runCmd.Flags().StringVar(&runLogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	runCmd.Flags().Float64Var(&runBalance, "balance", 10000, "paper exchange starting balance")
	runCmd.Flags().StringArrayVar(&runCandles, "candles", nil, "instrument=path CSV candle feed for the paper exchange (repeatable)")
}

func runRun(cmd *cobra.Command, args []string) error {
	var cfg *config.Config
	var err error
	if runConfigPath != "" {
		cfg, err = config.LoadFromFile(runConfigPath)
	} else {
		cfg, err = config.FromEnv()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.Init("adaptivetrader", logger.ParseLevel(runLogLevel))

	client := exchange.NewPaper(runBalance)
	for _, feed := range runCandles {
		instrument, path, ok := strings.Cut(feed, "=")
		if !ok {
			return fmt.Errorf("invalid --candles value %q, want instrument=path", feed)
		}
		candles, err := exchange.LoadCandlesCSV(path)
		if err != nil {
			return fmt.Errorf("load candles for %s: %w", instrument, err)
		}
		client.SetCandles(instrument, candles)
	}

	jrnl, err := journal.NewSQLite(cfg.JournalPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer jrnl.Close()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler(reg))
		srv := &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("metrics server failed", slog.String("error", err.Error()))
			}
		}()
		defer srv.Close()
		log.Info("metrics listening", slog.String("addr", cfg.MetricsAddr))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eng := engine.New(cfg, client, jrnl, m, log, time.Now)
	if err := eng.Run(ctx); err != nil && err != context.Canceled {
		return err
	}
	log.Info("engine stopped")
	return nil
}
