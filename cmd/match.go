package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/uzstat/clickstream-cli/internal/reconcile"
	"github.com/uzstat/clickstream-cli/internal/report"
	"github.com/uzstat/clickstream-cli/internal/store"
	"github.com/uzstat/clickstream-cli/internal/tabular"
)

var (
	matchPrimary    string
	matchReference  string
	matchNameColumn string
	matchThreshold  float64
	matchWorkers    int
	matchMatchesOut string
	matchMergedOut  string
	matchTop        int
	matchQuiet      bool
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Reconcile district names against the reference table",
	Long: `Reads the primary extract (CSV or XLSX) and the authoritative district
reference table, resolves each distinct district name to its best reference
entry by Gestalt similarity, and writes the match report plus the primary
dataset enriched with the reference columns.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("match"); err != nil {
			return err
		}

		threshold := matchThreshold
		if threshold == 0 {
			threshold = cfg.Reconcile.Threshold
		}
		nameColumn := matchNameColumn
		if nameColumn == "" {
			nameColumn = cfg.Reconcile.NameColumn
		}
		workers := matchWorkers
		if workers == 0 {
			workers = cfg.Reconcile.Workers
		}

		primary, err := tabular.ReadFile(matchPrimary)
		if err != nil {
			return err
		}
		ref, err := tabular.ReadFile(matchReference)
		if err != nil {
			return err
		}

		sources, err := primary.Unique(nameColumn)
		if err != nil {
			return err
		}
		candidates, err := ref.Unique(reconcile.ColNameUZ)
		if err != nil {
			return err
		}

		norm := reconcile.NewNormalizer(cfg.Reconcile.SuffixTokens, cfg.Reconcile.CountryTokens)
		selector := reconcile.NewGreedySelector(reconcile.NewScorer(norm), threshold, workers)

		assignments, err := selector.Select(cmd.Context(), sources, candidates)
		if err != nil {
			return err
		}

		matches := reconcile.Matches(assignments)
		unmatched := reconcile.Unmatched(sources, assignments)

		console := report.New(matchQuiet)
		console.MatchSummary(len(sources), len(candidates), matches, unmatched, threshold)
		console.TopMatches(matches, matchTop)
		console.Unmatched(unmatched)

		if matchMatchesOut != "" {
			if err := reconcile.WriteMatchesCSV(matchMatchesOut, matches); err != nil {
				return err
			}
			console.Success("wrote match report to " + matchMatchesOut)
		}

		index, err := reconcile.BuildIndex(ref)
		if err != nil {
			return err
		}
		merged, err := reconcile.Merge(primary, nameColumn, assignments, index)
		switch {
		case eris.Is(err, reconcile.ErrNoMatches):
			console.Warning("no district matched the reference table; skipping merged output")
		case err != nil:
			return err
		case matchMergedOut != "":
			if err := tabular.WriteCSV(matchMergedOut, merged); err != nil {
				return err
			}
			console.Success("wrote merged dataset to " + matchMergedOut)
		}

		recordMatchRun(cmd, store.MatchRun{
			PrimaryPath:   matchPrimary,
			ReferencePath: matchReference,
			Threshold:     threshold,
			Sources:       len(sources),
			Matched:       len(matches),
			Unmatched:     len(unmatched),
			MeanScore:     reconcile.Stats(matches).Mean,
		})

		return nil
	},
}

// recordMatchRun persists the run for later `runs` listing. Failures are
// logged, not fatal: the reports on disk are the primary output.
func recordMatchRun(cmd *cobra.Command, run store.MatchRun) {
	s, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		zap.L().Warn("open run store", zap.Error(err))
		return
	}
	defer s.Close()

	if err := s.Migrate(cmd.Context()); err != nil {
		zap.L().Warn("migrate run store", zap.Error(err))
		return
	}
	if _, err := s.RecordRun(cmd.Context(), run); err != nil {
		zap.L().Warn("record run", zap.Error(err))
	}
}

func init() {
	matchCmd.Flags().StringVar(&matchPrimary, "primary", "", "primary dataset (CSV or XLSX)")
	matchCmd.Flags().StringVar(&matchReference, "reference", "", "district reference table (CSV or XLSX)")
	matchCmd.Flags().StringVar(&matchNameColumn, "name-column", "", "district name column in the primary dataset (default from config)")
	matchCmd.Flags().Float64Var(&matchThreshold, "threshold", 0, "minimum similarity to accept a match (default from config)")
	matchCmd.Flags().IntVar(&matchWorkers, "workers", 0, "parallel matching workers (default from config)")
	matchCmd.Flags().StringVar(&matchMatchesOut, "matches-out", "district_matches.csv", "match report output path")
	matchCmd.Flags().StringVar(&matchMergedOut, "merged-out", "merged_districts.csv", "merged dataset output path")
	matchCmd.Flags().IntVar(&matchTop, "top", 10, "number of top matches to print")
	matchCmd.Flags().BoolVar(&matchQuiet, "quiet", false, "suppress console report")
	matchCmd.MarkFlagRequired("primary")
	matchCmd.MarkFlagRequired("reference")
	rootCmd.AddCommand(matchCmd)
}
