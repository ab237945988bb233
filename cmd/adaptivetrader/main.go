package main

import (
	"fmt"
	"os"

	"adaptivetrader/cmd/adaptivetrader/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
