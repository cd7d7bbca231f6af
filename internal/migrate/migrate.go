// Package migrate copies daily traffic partitions from the Postgres
// clickstream schema into the ClickHouse taxonomy_clicstream.traffic_daily
// table.
package migrate

import "time"

// Source types in the ClickHouse schema.
const (
	SourceTypeWeb uint8 = 0
	SourceTypeApp uint8 = 1
)

// TrafficRow is one row of the unified traffic_daily table.
type TrafficRow struct {
	MSISDN     string
	SourceType uint8
	SourceName string
	UsageCount int32
	GenderID   uint8
	AgeGroupID uint8
	RegionID   int32
	DistrictID int32
	PDate      time.Time
}

// Totals accumulates migrated row counts per traffic kind.
type Totals struct {
	Web int64
	App int64
}

func (t Totals) Sum() int64 {
	return t.Web + t.App
}
