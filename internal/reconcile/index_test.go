package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uzstat/clickstream-cli/internal/tabular"
)

func refTable(rows [][]string) *tabular.Table {
	return tabular.New([]string{"id", "name_uz", "name_en", "name_ru", "code", "region_id"}, rows)
}

func TestBuildIndex(t *testing.T) {
	ref := refTable([][]string{
		{"1", "Andijon shahri", "Andijan City", "город Андижан", "1703", "2"},
		{"2", "Buxoro tumani", "Bukhara District", "Бухарский район", "1706", "3"},
	})

	index, err := BuildIndex(ref)
	require.NoError(t, err)
	require.Len(t, index, 2)

	ent := index["Andijon shahri"]
	assert.Equal(t, "Andijan City", ent.NameEN)
	assert.Equal(t, "город Андижан", ent.NameRU)
	assert.Equal(t, "1703", ent.Code)
	assert.Equal(t, "2", ent.RegionID)
}

func TestBuildIndex_DuplicateRawNameLastWins(t *testing.T) {
	ref := refTable([][]string{
		{"1", "X", "Xen", "Xru", "10", "1"},
		{"2", "X", "Xen2", "Xru2", "11", "2"},
	})

	index, err := BuildIndex(ref)
	require.NoError(t, err)
	require.Len(t, index, 1)

	ent := index["X"]
	assert.Equal(t, "Xen2", ent.NameEN)
	assert.Equal(t, "Xru2", ent.NameRU)
	assert.Equal(t, "11", ent.Code)
	assert.Equal(t, "2", ent.RegionID)
}

func TestBuildIndex_MissingColumnFatal(t *testing.T) {
	ref := tabular.New([]string{"name_uz", "name_en"}, nil)

	_, err := BuildIndex(ref)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name_ru")
}
