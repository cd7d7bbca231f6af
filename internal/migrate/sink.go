package migrate

import (
	"context"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/rotisserie/eris"
)

// Sink receives batches of unified traffic rows.
type Sink interface {
	Insert(ctx context.Context, rows []TrafficRow) error
}

const insertTrafficSQL = `INSERT INTO taxonomy_clicstream.traffic_daily
(msisdn, source_type, source_name, usage_count, gender_id, age_group_id, region_id, district_id, pdate)`

// ClickHouseSink appends rows with the native batch interface.
type ClickHouseSink struct {
	conn driver.Conn
}

func NewClickHouseSink(conn driver.Conn) *ClickHouseSink {
	return &ClickHouseSink{conn: conn}
}

// DialSink opens a native-protocol connection and verifies it with a ping.
func DialSink(ctx context.Context, addr, database, username, password string) (*ClickHouseSink, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: database,
			Username: username,
			Password: password,
		},
	})
	if err != nil {
		return nil, eris.Wrap(err, "migrate: open clickhouse")
	}
	if err := conn.Ping(ctx); err != nil {
		return nil, eris.Wrap(err, "migrate: ping clickhouse")
	}
	return &ClickHouseSink{conn: conn}, nil
}

func (s *ClickHouseSink) Close() error {
	return s.conn.Close()
}

func (s *ClickHouseSink) Insert(ctx context.Context, rows []TrafficRow) error {
	if len(rows) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, insertTrafficSQL)
	if err != nil {
		return eris.Wrap(err, "migrate: prepare batch")
	}
	for _, r := range rows {
		if err := batch.Append(
			r.MSISDN, r.SourceType, r.SourceName, r.UsageCount,
			r.GenderID, r.AgeGroupID, r.RegionID, r.DistrictID, r.PDate,
		); err != nil {
			return eris.Wrap(err, "migrate: append row")
		}
	}
	return eris.Wrap(batch.Send(), "migrate: send batch")
}
