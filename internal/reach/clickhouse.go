package reach

import (
	"context"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/rotisserie/eris"

	"github.com/uzstat/clickstream-cli/internal/store"
)

// Querier runs reach queries against a backend.
type Querier interface {
	PlatformReach(ctx context.Context, filters store.ReportFilters, opts QueryOptions) ([]PlatformReach, error)
}

// ClickHouseQuerier runs reach queries over a native ClickHouse connection.
type ClickHouseQuerier struct {
	conn driver.Conn
}

// Dial opens a native-protocol connection and verifies it with a ping.
func Dial(ctx context.Context, addr, database, username, password string) (*ClickHouseQuerier, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: database,
			Username: username,
			Password: password,
		},
	})
	if err != nil {
		return nil, eris.Wrap(err, "reach: open clickhouse")
	}
	if err := conn.Ping(ctx); err != nil {
		return nil, eris.Wrap(err, "reach: ping clickhouse")
	}
	return &ClickHouseQuerier{conn: conn}, nil
}

// NewClickHouseQuerier wraps an existing connection.
func NewClickHouseQuerier(conn driver.Conn) *ClickHouseQuerier {
	return &ClickHouseQuerier{conn: conn}
}

func (q *ClickHouseQuerier) PlatformReach(ctx context.Context, filters store.ReportFilters, opts QueryOptions) ([]PlatformReach, error) {
	query, args, err := BuildQuery(filters, opts)
	if err != nil {
		return nil, err
	}

	rows, err := q.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "reach: query platform reach")
	}
	defer rows.Close()

	var out []PlatformReach
	for rows.Next() {
		var p PlatformReach
		if err := rows.Scan(&p.Platform, &p.Count, &p.Percent); err != nil {
			return nil, eris.Wrap(err, "reach: scan platform row")
		}
		out = append(out, p)
	}
	return out, eris.Wrap(rows.Err(), "reach: iterate platform rows")
}

func (q *ClickHouseQuerier) Close() error {
	return q.conn.Close()
}
