package main

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/uzstat/clickstream-cli/internal/migrate"
)

var migrateDates []string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy daily traffic partitions from Postgres to ClickHouse",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("migrate"); err != nil {
			return err
		}
		if len(migrateDates) == 0 {
			return eris.New("migrate: at least one --date is required")
		}

		ctx := cmd.Context()

		pool, err := pgxpool.New(ctx, cfg.Postgres.URL)
		if err != nil {
			return eris.Wrap(err, "migrate: connect postgres")
		}
		defer pool.Close()

		sink, err := migrate.DialSink(ctx, cfg.ClickHouse.Addr, cfg.ClickHouse.Database, cfg.ClickHouse.Username, cfg.ClickHouse.Password)
		if err != nil {
			return err
		}
		defer sink.Close()

		runner := migrate.NewRunner(migrate.NewPostgresSource(pool), sink, migrate.RunnerOptions{
			BatchSize:        cfg.Migrate.BatchSize,
			Workers:          cfg.Migrate.Workers,
			BatchesPerSecond: cfg.Migrate.BatchesPerSecond,
		})

		totals, err := runner.Run(ctx, migrateDates)
		if err != nil {
			return err
		}

		zap.L().Info("done",
			zap.Int("partitions", len(migrateDates)),
			zap.Int64("rows", totals.Sum()),
		)
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringSliceVar(&migrateDates, "date", nil, "partition date YYYY-MM-DD (repeatable)")
	rootCmd.AddCommand(migrateCmd)
}
