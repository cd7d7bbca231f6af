package main

import (
	"github.com/spf13/cobra"

	"github.com/uzstat/clickstream-cli/internal/appstats"
	"github.com/uzstat/clickstream-cli/internal/report"
	"github.com/uzstat/clickstream-cli/internal/tabular"
)

var (
	appstatsInput string
	appstatsQuiet bool
)

var appstatsCmd = &cobra.Command{
	Use:   "appstats",
	Short: "Descriptive statistics for the app/website dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := tabular.ReadFile(appstatsInput)
		if err != nil {
			return err
		}

		records, dropped, err := appstats.Clean(t)
		if err != nil {
			return err
		}

		console := report.New(appstatsQuiet)
		console.AppSummary(
			appstats.Summarize(records, dropped),
			appstats.Categories(records),
			appstats.Geographic(records),
			appstats.Duplicates(records),
		)
		return nil
	},
}

func init() {
	appstatsCmd.Flags().StringVar(&appstatsInput, "input", "", "app dataset (CSV or XLSX)")
	appstatsCmd.Flags().BoolVar(&appstatsQuiet, "quiet", false, "suppress console report")
	appstatsCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(appstatsCmd)
}
