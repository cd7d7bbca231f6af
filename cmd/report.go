package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/uzstat/clickstream-cli/internal/report"
	"github.com/uzstat/clickstream-cli/internal/store"
)

var (
	reportName    string
	reportRegions []int
	reportGenders []int
	reportAges    []int
	reportStart   string
	reportEnd     string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Manage saved reach report definitions",
}

var reportSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save a reach report definition for the serve API",
	Long: `Stores a named set of audience filters. The saved report's ID is the
{id} the serve API resolves in GET /reports/{id}/cumulative-reach.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(reportRegions) == 0 || len(reportGenders) == 0 || len(reportAges) == 0 {
			return eris.New("report: --region, --gender and --age are all required at least once")
		}
		if reportStart == "" || reportEnd == "" {
			return eris.New("report: --start and --end are required")
		}

		s, err := store.NewSQLite(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer s.Close()
		if err := s.Migrate(cmd.Context()); err != nil {
			return err
		}

		saved, err := s.SaveReport(cmd.Context(), store.Report{
			Name: reportName,
			Filters: store.ReportFilters{
				Regions:   reportRegions,
				Genders:   reportGenders,
				Ages:      reportAges,
				StartDate: reportStart,
				EndDate:   reportEnd,
			},
		})
		if err != nil {
			return err
		}

		report.New(false).Success("saved report " + saved.ID)
		return nil
	},
}

var reportListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved reach report definitions",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.NewSQLite(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer s.Close()
		if err := s.Migrate(cmd.Context()); err != nil {
			return err
		}

		reports, err := s.ListReports(cmd.Context())
		if err != nil {
			return err
		}

		report.New(false).Reports(reports)
		return nil
	},
}

func init() {
	reportSaveCmd.Flags().StringVar(&reportName, "name", "", "report name")
	reportSaveCmd.Flags().IntSliceVar(&reportRegions, "region", nil, "region ID (repeatable)")
	reportSaveCmd.Flags().IntSliceVar(&reportGenders, "gender", nil, "gender ID (repeatable)")
	reportSaveCmd.Flags().IntSliceVar(&reportAges, "age", nil, "age group ID (repeatable)")
	reportSaveCmd.Flags().StringVar(&reportStart, "start", "", "period start YYYY-MM-DD")
	reportSaveCmd.Flags().StringVar(&reportEnd, "end", "", "period end YYYY-MM-DD")
	reportSaveCmd.MarkFlagRequired("name")
	reportCmd.AddCommand(reportSaveCmd)
	reportCmd.AddCommand(reportListCmd)
	rootCmd.AddCommand(reportCmd)
}
