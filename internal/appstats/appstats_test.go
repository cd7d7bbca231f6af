package appstats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uzstat/clickstream-cli/internal/tabular"
)

func appTable() *tabular.Table {
	return tabular.New(
		[]string{"app_id", "app_name", "url", "category"},
		[][]string{
			{"1", "Telegram", "web.telegram.org", "messaging"},
			{"", "", "kun.uz", "news"},
			{"", "", "daryo.uz", "news"},
			{"2", "VK", "vk.ru", "social"},
			{"", "", "", "news"}, // empty URL, dropped
			{"1", "Telegram", "web.telegram.org", "messaging"},
		},
	)
}

func TestClean(t *testing.T) {
	records, dropped, err := Clean(appTable())
	require.NoError(t, err)

	assert.Equal(t, 1, dropped)
	require.Len(t, records, 5)
	assert.Equal(t, "Unknown", records[1].AppName)
	assert.Equal(t, "kun.uz", records[1].Domain)
	assert.Equal(t, "telegram.org", records[0].Domain)
}

func TestClean_MissingColumnFatal(t *testing.T) {
	tbl := tabular.New([]string{"url"}, nil)

	_, _, err := Clean(tbl)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category")
}

func TestCategories(t *testing.T) {
	records, _, err := Clean(appTable())
	require.NoError(t, err)

	cats := Categories(records)
	require.NotEmpty(t, cats)
	assert.Equal(t, "messaging", cats[0].Label)
	assert.Equal(t, 2, cats[0].N)
	assert.InDelta(t, 40.0, cats[0].Percent, 1e-9)
}

func TestTLDs(t *testing.T) {
	records, _, err := Clean(appTable())
	require.NoError(t, err)

	tlds := TLDs(records)
	require.NotEmpty(t, tlds)

	byLabel := make(map[string]int)
	for _, c := range tlds {
		byLabel[c.Label] = c.N
	}
	assert.Equal(t, 2, byLabel["uz"])
	assert.Equal(t, 2, byLabel["org"])
	assert.Equal(t, 1, byLabel["ru"])
}

func TestGeographic(t *testing.T) {
	records, _, err := Clean(appTable())
	require.NoError(t, err)

	geo := Geographic(records)
	require.NotEmpty(t, geo)

	byLabel := make(map[string]int)
	for _, g := range geo {
		byLabel[g.Label] = g.N
	}
	assert.Equal(t, 2, byLabel["Uzbekistan"])
	assert.Equal(t, 1, byLabel["Russia"])
	assert.Equal(t, 2, byLabel["International"]) // .org x2
}

func TestDuplicates(t *testing.T) {
	records, _, err := Clean(appTable())
	require.NoError(t, err)

	dups := Duplicates(records)
	require.Len(t, dups, 1)
	assert.Equal(t, "web.telegram.org", dups[0].URL)
	assert.Equal(t, 2, dups[0].N)
	assert.Equal(t, []string{"Telegram"}, dups[0].AppNames)
}

func TestSummarize(t *testing.T) {
	records, dropped, err := Clean(appTable())
	require.NoError(t, err)

	s := Summarize(records, dropped)
	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 1, s.Dropped)
	assert.Equal(t, 3, s.NamedApps)
	assert.Equal(t, 2, s.UzbekDomains)
	assert.Equal(t, "messaging", s.TopCategory)
}
