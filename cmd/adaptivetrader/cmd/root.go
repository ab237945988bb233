package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "adaptivetrader",
	Short: "An adaptive multi-strategy crypto trading bot",
	Long: `Adaptivetrader classifies the market regime of each configured pair and
switches between trading strategies to match it.

It provides:
  - Market classification from ADX, choppiness, range and slope readings
  - Five strategies: mean reversion, SMA crossover, MACD, breakout, grid
  - Confirmation, cooldown and daily-cap gating on strategy switches
  - Exposure caps and exchange-rule order normalization
  - A SQLite journal of trades, switches and classifications`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
