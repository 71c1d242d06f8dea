package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/susumOyaji/quotelens/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "quotelens",
	Short: "Resilient quote extraction from finance pages",
	Long:  "Extracts normalized quote records (code, name, price, change, rate, time) from finance pages via a cascade of schema lookup, generic tree search, and heuristic DOM scanning with self-healing selectors.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
