package migrate

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDate(t *testing.T) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", "2024-01-01")
	require.NoError(t, err)
	return d
}

func TestPostgresSource_FetchWeb(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	pdate := testDate(t)
	mock.ExpectQuery(`FROM clickstream\.web_traffic_daily`).
		WithArgs(pdate).
		WillReturnRows(pgxmock.NewRows([]string{"msisdn", "domain", "count", "gender_ind", "age_ind", "region_id"}).
			AddRow("998901234567", "telegram.org", int32(14), uint8(0), uint8(3), int32(11)).
			AddRow("998907654321", "youtube.com", int32(2), uint8(1), uint8(5), int32(14)))

	rows, err := NewPostgresSource(mock).FetchWeb(context.Background(), pdate)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, "998901234567", first.MSISDN)
	assert.Equal(t, SourceTypeWeb, first.SourceType)
	assert.Equal(t, "telegram.org", first.SourceName)
	assert.Equal(t, int32(14), first.UsageCount)
	assert.Equal(t, int32(0), first.DistrictID)
	assert.Equal(t, pdate, first.PDate)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_FetchApp(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	pdate := testDate(t)
	mock.ExpectQuery(`FROM clickstream\.app_traffic_daily`).
		WithArgs(pdate).
		WillReturnRows(pgxmock.NewRows([]string{"msisdn", "app_name", "count", "gender_ind", "age_ind", "region_id"}).
			AddRow("998901234567", "Telegram", int32(30), uint8(0), uint8(2), int32(11)))

	rows, err := NewPostgresSource(mock).FetchApp(context.Background(), pdate)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, SourceTypeApp, rows[0].SourceType)
	assert.Equal(t, "Telegram", rows[0].SourceName)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_QueryError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	pdate := testDate(t)
	mock.ExpectQuery(`FROM clickstream\.web_traffic_daily`).
		WithArgs(pdate).
		WillReturnError(assert.AnError)

	_, err = NewPostgresSource(mock).FetchWeb(context.Background(), pdate)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch web traffic")
}
