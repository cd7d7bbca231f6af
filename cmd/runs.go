package main

import (
	"github.com/spf13/cobra"

	"github.com/uzstat/clickstream-cli/internal/report"
	"github.com/uzstat/clickstream-cli/internal/store"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded reconciliation runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.NewSQLite(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer s.Close()
		if err := s.Migrate(cmd.Context()); err != nil {
			return err
		}

		runs, err := s.ListRuns(cmd.Context(), runsLimit)
		if err != nil {
			return err
		}

		report.New(false).Runs(runs)
		return nil
	},
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "maximum runs to list")
	rootCmd.AddCommand(runsCmd)
}
