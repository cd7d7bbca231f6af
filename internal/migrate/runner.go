package migrate

import (
	"context"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Fetcher reads one partition of each traffic kind.
type Fetcher interface {
	FetchWeb(ctx context.Context, pdate time.Time) ([]TrafficRow, error)
	FetchApp(ctx context.Context, pdate time.Time) ([]TrafficRow, error)
}

// RunnerOptions tune the migration run.
type RunnerOptions struct {
	BatchSize int
	Workers   int
	// BatchesPerSecond throttles sink inserts. Zero means unlimited.
	BatchesPerSecond float64
}

const (
	defaultBatchSize = 100000
	defaultWorkers   = 4
)

// Runner copies date partitions from the fetcher to the sink.
type Runner struct {
	source  Fetcher
	sink    Sink
	opts    RunnerOptions
	limiter *rate.Limiter
}

func NewRunner(source Fetcher, sink Sink, opts RunnerOptions) *Runner {
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.BatchesPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.BatchesPerSecond), 1)
	}
	return &Runner{source: source, sink: sink, opts: opts, limiter: limiter}
}

// Run migrates the given date partitions (YYYY-MM-DD). Partitions run
// concurrently up to the worker limit; the first failure cancels the rest.
func (r *Runner) Run(ctx context.Context, dates []string) (Totals, error) {
	var (
		mu     sync.Mutex
		totals Totals
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)

	for _, date := range dates {
		pdate, err := time.Parse("2006-01-02", date)
		if err != nil {
			return Totals{}, eris.Wrapf(err, "migrate: parse partition date %q", date)
		}

		g.Go(func() error {
			zap.L().Info("processing partition", zap.String("pdate", date))

			webCount, err := r.migrateKind(gctx, pdate, r.source.FetchWeb)
			if err != nil {
				return eris.Wrapf(err, "migrate: partition %s web", date)
			}
			appCount, err := r.migrateKind(gctx, pdate, r.source.FetchApp)
			if err != nil {
				return eris.Wrapf(err, "migrate: partition %s app", date)
			}

			zap.L().Info("partition migrated",
				zap.String("pdate", date),
				zap.Int64("web_rows", webCount),
				zap.Int64("app_rows", appCount),
			)

			mu.Lock()
			totals.Web += webCount
			totals.App += appCount
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Totals{}, err
	}

	zap.L().Info("migration complete",
		zap.Int64("web_rows", totals.Web),
		zap.Int64("app_rows", totals.App),
		zap.Int64("total_rows", totals.Sum()),
	)
	return totals, nil
}

func (r *Runner) migrateKind(ctx context.Context, pdate time.Time, fetch func(context.Context, time.Time) ([]TrafficRow, error)) (int64, error) {
	rows, err := fetch(ctx, pdate)
	if err != nil {
		return 0, err
	}

	for start := 0; start < len(rows); start += r.opts.BatchSize {
		end := start + r.opts.BatchSize
		if end > len(rows) {
			end = len(rows)
		}
		if err := r.limiter.Wait(ctx); err != nil {
			return 0, eris.Wrap(err, "rate limit wait")
		}
		if err := r.sink.Insert(ctx, rows[start:end]); err != nil {
			return 0, err
		}
	}
	return int64(len(rows)), nil
}
