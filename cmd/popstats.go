package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uzstat/clickstream-cli/internal/popstats"
	"github.com/uzstat/clickstream-cli/internal/report"
	"github.com/uzstat/clickstream-cli/internal/tabular"
)

var (
	popstatsMerged    string
	popstatsReference string
	popstatsYear      string
	popstatsOut       string
)

var popstatsCmd = &cobra.Command{
	Use:   "popstats",
	Short: "Unpivot merged population data into gender/age rows",
	Long: `Takes the merged dataset produced by match and the district reference
table and writes one row per district, gender, and age bucket for the
target year.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		merged, err := tabular.ReadFile(popstatsMerged)
		if err != nil {
			return err
		}
		ref, err := tabular.ReadFile(popstatsReference)
		if err != nil {
			return err
		}

		regions, err := popstats.BuildRegionMap(ref)
		if err != nil {
			return err
		}
		rows, err := popstats.Unpivot(merged, regions, popstatsYear)
		if err != nil {
			return err
		}
		if err := popstats.WriteCSV(popstatsOut, rows); err != nil {
			return err
		}

		report.New(false).Success(fmt.Sprintf("wrote %d population rows to %s", len(rows), popstatsOut))
		return nil
	},
}

func init() {
	popstatsCmd.Flags().StringVar(&popstatsMerged, "merged", "", "merged dataset from match (CSV)")
	popstatsCmd.Flags().StringVar(&popstatsReference, "reference", "", "district reference table (CSV or XLSX)")
	popstatsCmd.Flags().StringVar(&popstatsYear, "year", "2025", "target population year")
	popstatsCmd.Flags().StringVar(&popstatsOut, "out", "population_by_gender_age.csv", "output path")
	popstatsCmd.MarkFlagRequired("merged")
	popstatsCmd.MarkFlagRequired("reference")
	rootCmd.AddCommand(popstatsCmd)
}
