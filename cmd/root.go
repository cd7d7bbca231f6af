package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/uzstat/clickstream-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "clickstream-cli",
	Short: "Clickstream taxonomy toolkit",
	Long:  "Reconciles district names against the national reference table, computes dataset statistics, migrates daily traffic into ClickHouse, and serves reach reports.",
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
