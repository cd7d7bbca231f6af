package migrate

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"
)

// Querier is the slice of pgxpool.Pool the source needs. pgxmock satisfies
// it in tests.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresSource reads daily traffic partitions from the clickstream schema.
type PostgresSource struct {
	db Querier
}

func NewPostgresSource(db Querier) *PostgresSource {
	return &PostgresSource{db: db}
}

const webTrafficSQL = `
SELECT msisdn, domain, count, gender_ind, age_ind, region_id
FROM clickstream.web_traffic_daily
WHERE pdate = $1 AND msisdn IS NOT NULL AND msisdn <> ''`

const appTrafficSQL = `
SELECT msisdn, app_name, count, gender_ind, age_ind, region_id
FROM clickstream.app_traffic_daily
WHERE pdate = $1 AND msisdn IS NOT NULL AND msisdn <> ''`

// FetchWeb reads the web traffic partition for one date.
func (s *PostgresSource) FetchWeb(ctx context.Context, pdate time.Time) ([]TrafficRow, error) {
	rows, err := s.fetch(ctx, webTrafficSQL, SourceTypeWeb, pdate)
	return rows, eris.Wrap(err, "migrate: fetch web traffic")
}

// FetchApp reads the app traffic partition for one date.
func (s *PostgresSource) FetchApp(ctx context.Context, pdate time.Time) ([]TrafficRow, error) {
	rows, err := s.fetch(ctx, appTrafficSQL, SourceTypeApp, pdate)
	return rows, eris.Wrap(err, "migrate: fetch app traffic")
}

func (s *PostgresSource) fetch(ctx context.Context, sql string, sourceType uint8, pdate time.Time) ([]TrafficRow, error) {
	rows, err := s.db.Query(ctx, sql, pdate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TrafficRow
	for rows.Next() {
		r := TrafficRow{SourceType: sourceType, DistrictID: 0, PDate: pdate}
		if err := rows.Scan(&r.MSISDN, &r.SourceName, &r.UsageCount, &r.GenderID, &r.AgeGroupID, &r.RegionID); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
