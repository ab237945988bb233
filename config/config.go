// Package config collects every tunable the engine recognizes into one
// validated structure. The bot is env-driven (set options in .env or the
// process environment), with an optional YAML/JSON file as the base layer.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config is the complete engine configuration.
type Config struct {
	// Trading loop
	TradingPairs string        `json:"trading_pairs" yaml:"trading_pairs" envconfig:"TRADING_PAIRS"`
	DryRun       bool          `json:"dry_run" yaml:"dry_run" envconfig:"DRY_RUN"`
	APICallDelay time.Duration `json:"api_call_delay" yaml:"api_call_delay" envconfig:"API_CALL_DELAY"`
	CycleDelay   time.Duration `json:"cycle_delay" yaml:"cycle_delay" envconfig:"CYCLE_DELAY"`
	OHLCInterval time.Duration `json:"ohlc_interval" yaml:"ohlc_interval" envconfig:"OHLC_INTERVAL"`
	HistorySize  int           `json:"history_size" yaml:"history_size" envconfig:"HISTORY_SIZE"`

	// Classifier thresholds
	ADXStrongTrend     float64 `json:"adx_strong_trend" yaml:"adx_strong_trend" envconfig:"ADX_STRONG_TREND"`
	ADXWeakTrend       float64 `json:"adx_weak_trend" yaml:"adx_weak_trend" envconfig:"ADX_WEAK_TREND"`
	ChoppinessChoppy   float64 `json:"choppiness_choppy" yaml:"choppiness_choppy" envconfig:"CHOPPINESS_CHOPPY"`
	ChoppinessTrending float64 `json:"choppiness_trending" yaml:"choppiness_trending" envconfig:"CHOPPINESS_TRENDING"`
	RangeTight         float64 `json:"range_tight" yaml:"range_tight" envconfig:"RANGE_TIGHT"`
	RangeModerate      float64 `json:"range_moderate" yaml:"range_moderate" envconfig:"RANGE_MODERATE"`
	MinDataPoints      int     `json:"min_data_points" yaml:"min_data_points" envconfig:"MIN_DATA_POINTS"`

	// Classifier indicator periods
	ADXPeriod   int `json:"adx_period" yaml:"adx_period" envconfig:"ADX_PERIOD"`
	ATRPeriod   int `json:"atr_period" yaml:"atr_period" envconfig:"ATR_PERIOD"`
	ChopPeriod  int `json:"chop_period" yaml:"chop_period" envconfig:"CHOP_PERIOD"`
	SlopePeriod int `json:"slope_period" yaml:"slope_period" envconfig:"SLOPE_PERIOD"`
	RangePeriod int `json:"range_period" yaml:"range_period" envconfig:"RANGE_PERIOD"`

	// Strategy selector
	ReanalysisInterval    time.Duration `json:"reanalysis_interval" yaml:"reanalysis_interval" envconfig:"REANALYSIS_INTERVAL"`
	SwitchCooldown        time.Duration `json:"switch_cooldown" yaml:"switch_cooldown" envconfig:"SWITCH_COOLDOWN"`
	ConfirmationsRequired int           `json:"confirmations_required" yaml:"confirmations_required" envconfig:"CONFIRMATIONS_REQUIRED"`
	MaxSwitchesPerDay     int           `json:"max_switches_per_day" yaml:"max_switches_per_day" envconfig:"MAX_SWITCHES_PER_DAY"`

	// Portfolio exposure caps (percent of account balance)
	MaxTotalExposure float64 `json:"max_total_exposure" yaml:"max_total_exposure" envconfig:"MAX_TOTAL_EXPOSURE"`
	MaxPerCoin       float64 `json:"max_per_coin" yaml:"max_per_coin" envconfig:"MAX_PER_COIN"`
	FeeBufferPct     float64 `json:"fee_buffer_pct" yaml:"fee_buffer_pct" envconfig:"FEE_BUFFER_PCT"`

	// Mean reversion strategy
	RSIPeriod     int     `json:"rsi_period" yaml:"rsi_period" envconfig:"RSI_PERIOD"`
	RSIOversold   float64 `json:"rsi_oversold" yaml:"rsi_oversold" envconfig:"RSI_OVERSOLD"`
	RSIOverbought float64 `json:"rsi_overbought" yaml:"rsi_overbought" envconfig:"RSI_OVERBOUGHT"`
	BBPeriod      int     `json:"bb_period" yaml:"bb_period" envconfig:"BB_PERIOD"`
	BBStdDev      float64 `json:"bb_std_dev" yaml:"bb_std_dev" envconfig:"BB_STD_DEV"`

	// SMA crossover strategy
	FastSMAPeriod int  `json:"fast_sma_period" yaml:"fast_sma_period" envconfig:"FAST_SMA_PERIOD"`
	SlowSMAPeriod int  `json:"slow_sma_period" yaml:"slow_sma_period" envconfig:"SLOW_SMA_PERIOD"`
	TrendFilter   bool `json:"trend_filter" yaml:"trend_filter" envconfig:"ENABLE_TREND_FILTER"`

	// MACD strategy
	MACDFast             int  `json:"macd_fast" yaml:"macd_fast" envconfig:"MACD_FAST"`
	MACDSlow             int  `json:"macd_slow" yaml:"macd_slow" envconfig:"MACD_SLOW"`
	MACDSignal           int  `json:"macd_signal" yaml:"macd_signal" envconfig:"MACD_SIGNAL"`
	MACDHistogramConfirm bool `json:"macd_histogram_confirm" yaml:"macd_histogram_confirm" envconfig:"MACD_HISTOGRAM_CONFIRM"`

	// Breakout detection, shared by classifier rule 7 and the breakout strategy
	ATRMultiplier    float64 `json:"atr_multiplier" yaml:"atr_multiplier" envconfig:"ATR_MULTIPLIER"`
	VolumePeriod     int     `json:"volume_period" yaml:"volume_period" envconfig:"VOLUME_PERIOD"`
	VolumeThreshold  float64 `json:"volume_threshold" yaml:"volume_threshold" envconfig:"VOLUME_THRESHOLD"`
	BreakoutLookback int     `json:"breakout_lookback" yaml:"breakout_lookback" envconfig:"BREAKOUT_LOOKBACK"`
	RequireRetest    bool    `json:"require_retest" yaml:"require_retest" envconfig:"REQUIRE_RETEST"`

	// Grid strategy
	GridSize       int     `json:"grid_size" yaml:"grid_size" envconfig:"GRID_SIZE"`
	GridSpacingPct float64 `json:"grid_spacing_pct" yaml:"grid_spacing_pct" envconfig:"GRID_SPACING_PCT"`

	// Exit gating shared by strategies
	MinProfitTarget float64       `json:"min_profit_target" yaml:"min_profit_target" envconfig:"MIN_PROFIT_TARGET"`
	MinHoldTime     time.Duration `json:"min_hold_time" yaml:"min_hold_time" envconfig:"MIN_HOLD_TIME"`

	// Fibonacci confirmation (mean reversion entries, breakout targets)
	UseFibonacci      bool    `json:"use_fibonacci" yaml:"use_fibonacci" envconfig:"USE_FIBONACCI"`
	FibLookbackPeriod int     `json:"fib_lookback_period" yaml:"fib_lookback_period" envconfig:"FIB_LOOKBACK_PERIOD"`
	FibTolerancePct   float64 `json:"fib_tolerance_pct" yaml:"fib_tolerance_pct" envconfig:"FIB_TOLERANCE"`

	// Fee accounting
	MakerFee  float64 `json:"maker_fee" yaml:"maker_fee" envconfig:"MAKER_FEE"`
	TakerFee  float64 `json:"taker_fee" yaml:"taker_fee" envconfig:"TAKER_FEE"`
	TrackFees bool    `json:"track_fees" yaml:"track_fees" envconfig:"TRACK_FEES"`

	// Journal
	JournalPath string `json:"journal_path" yaml:"journal_path" envconfig:"JOURNAL_DB_PATH"`

	// Metrics listen address; empty disables the HTTP endpoint.
	MetricsAddr string `json:"metrics_addr" yaml:"metrics_addr" envconfig:"METRICS_ADDR"`
}

// Pairs returns the configured trading pairs, trimmed and in order.
func (c *Config) Pairs() []string {
	parts := strings.Split(c.TradingPairs, ",")
	pairs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			pairs = append(pairs, p)
		}
	}
	return pairs
}

// Default returns the documented defaults. It never reads the
// environment, so it cannot fail on a malformed variable; only FromEnv
// applies the process environment.
func Default() *Config {
	return &Config{
		TradingPairs: "XBTUSD,ETHUSD,SOLUSD,XRPUSD",
		DryRun:       true,
		APICallDelay: 3 * time.Second,
		CycleDelay:   30 * time.Second,
		OHLCInterval: time.Minute,
		HistorySize:  200,

		ADXStrongTrend:     25,
		ADXWeakTrend:       20,
		ChoppinessChoppy:   61.8,
		ChoppinessTrending: 38.2,
		RangeTight:         5,
		RangeModerate:      15,
		MinDataPoints:      50,

		ADXPeriod:   14,
		ATRPeriod:   14,
		ChopPeriod:  14,
		SlopePeriod: 14,
		RangePeriod: 50,

		ReanalysisInterval:    30 * time.Minute,
		SwitchCooldown:        time.Hour,
		ConfirmationsRequired: 3,
		MaxSwitchesPerDay:     4,

		MaxTotalExposure: 75,
		MaxPerCoin:       25,
		FeeBufferPct:     1.0,

		RSIPeriod:     14,
		RSIOversold:   40,
		RSIOverbought: 60,
		BBPeriod:      20,
		BBStdDev:      2.0,

		FastSMAPeriod: 10,
		SlowSMAPeriod: 30,
		TrendFilter:   true,

		MACDFast:             12,
		MACDSlow:             26,
		MACDSignal:           9,
		MACDHistogramConfirm: true,

		ATRMultiplier:    1.5,
		VolumePeriod:     20,
		VolumeThreshold:  1.5,
		BreakoutLookback: 20,

		GridSize:       10,
		GridSpacingPct: 0.5,

		MinProfitTarget: 0.010,
		MinHoldTime:     15 * time.Minute,

		UseFibonacci:      true,
		FibLookbackPeriod: 50,
		FibTolerancePct:   1.0,

		MakerFee:  0.0016,
		TakerFee:  0.0026,
		TrackFees: true,

		JournalPath: "./adaptivetrader.db",
	}
}

// FromEnv loads configuration from the environment, layered over the
// defaults. A .env file is read first when present; its absence is not
// an error. A variable that fails to parse is a configuration error,
// not a crash.
func FromEnv() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a file (YAML or JSON), starting
// from defaults so unset keys keep their documented values. The
// environment is not consulted.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks option ranges and threshold ordering. Failures here are
// fatal: the engine refuses to enter the trading loop on a bad config.
func (c *Config) Validate() error {
	if len(c.Pairs()) == 0 {
		return fmt.Errorf("trading_pairs is required")
	}
	if c.HistorySize <= 0 {
		return fmt.Errorf("history_size must be positive")
	}
	if c.OHLCInterval <= 0 {
		return fmt.Errorf("ohlc_interval must be positive")
	}
	if c.APICallDelay < 0 || c.CycleDelay < 0 {
		return fmt.Errorf("delays must not be negative")
	}

	if c.ADXWeakTrend >= c.ADXStrongTrend {
		return fmt.Errorf("adx_weak_trend (%.1f) must be below adx_strong_trend (%.1f)",
			c.ADXWeakTrend, c.ADXStrongTrend)
	}
	if c.ChoppinessTrending >= c.ChoppinessChoppy {
		return fmt.Errorf("choppiness_trending (%.1f) must be below choppiness_choppy (%.1f)",
			c.ChoppinessTrending, c.ChoppinessChoppy)
	}
	if c.RangeTight >= c.RangeModerate {
		return fmt.Errorf("range_tight (%.1f) must be below range_moderate (%.1f)",
			c.RangeTight, c.RangeModerate)
	}
	if c.MinDataPoints <= 0 {
		return fmt.Errorf("min_data_points must be positive")
	}
	for name, p := range map[string]int{
		"adx_period":   c.ADXPeriod,
		"atr_period":   c.ATRPeriod,
		"chop_period":  c.ChopPeriod,
		"slope_period": c.SlopePeriod,
		"range_period": c.RangePeriod,
	} {
		if p <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	if c.MinDataPoints > c.HistorySize {
		return fmt.Errorf("min_data_points (%d) cannot exceed history_size (%d)",
			c.MinDataPoints, c.HistorySize)
	}

	if c.ConfirmationsRequired < 1 {
		return fmt.Errorf("confirmations_required must be at least 1")
	}
	if c.MaxSwitchesPerDay < 1 {
		return fmt.Errorf("max_switches_per_day must be at least 1")
	}
	if c.SwitchCooldown < 0 || c.ReanalysisInterval <= 0 {
		return fmt.Errorf("selector intervals must be positive")
	}

	if c.MaxTotalExposure <= 0 || c.MaxTotalExposure > 100 {
		return fmt.Errorf("max_total_exposure must be in (0, 100], got %.1f", c.MaxTotalExposure)
	}
	if c.MaxPerCoin <= 0 || c.MaxPerCoin > 100 {
		return fmt.Errorf("max_per_coin must be in (0, 100], got %.1f", c.MaxPerCoin)
	}
	if c.MaxPerCoin > c.MaxTotalExposure {
		return fmt.Errorf("max_per_coin (%.1f) cannot exceed max_total_exposure (%.1f)",
			c.MaxPerCoin, c.MaxTotalExposure)
	}

	if c.FastSMAPeriod >= c.SlowSMAPeriod {
		return fmt.Errorf("fast_sma_period must be below slow_sma_period")
	}
	if c.MACDFast >= c.MACDSlow {
		return fmt.Errorf("macd_fast must be below macd_slow")
	}
	if c.GridSize < 2 {
		return fmt.Errorf("grid_size must be at least 2")
	}
	if c.GridSpacingPct <= 0 {
		return fmt.Errorf("grid_spacing_pct must be positive")
	}
	if c.MakerFee < 0 || c.TakerFee < 0 {
		return fmt.Errorf("fees must not be negative")
	}
	return nil
}
