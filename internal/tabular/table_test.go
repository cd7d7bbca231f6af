package tabular

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireColumn(t *testing.T) {
	tbl := New([]string{"Year", "Klassifikator", "Value"}, nil)

	idx, err := tbl.RequireColumn("Klassifikator")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	_, err = tbl.RequireColumn("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"missing"`)
}

func TestValue_ShortRow(t *testing.T) {
	tbl := New([]string{"a", "b", "c"}, nil)

	assert.Equal(t, "2", tbl.Value([]string{"1", "2", "3"}, "b"))
	assert.Equal(t, "", tbl.Value([]string{"1"}, "c"))
	assert.Equal(t, "", tbl.Value([]string{"1", "2", "3"}, "nope"))
}

func TestUnique_FirstAppearanceOrder(t *testing.T) {
	tbl := New([]string{"name"}, [][]string{
		{"Fergana"}, {"Andijon"}, {"Fergana"}, {"Buxoro"}, {"Andijon"},
	})

	got, err := tbl.Unique("name")
	require.NoError(t, err)
	assert.Equal(t, []string{"Fergana", "Andijon", "Buxoro"}, got)
}

func TestParseCSV(t *testing.T) {
	in := "Year,Klassifikator,Value\n2025,Andijon tumani,12\n2025,\"Quoted, name\",3\n"

	tbl, err := ParseCSV(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"Year", "Klassifikator", "Value"}, tbl.Header)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "Quoted, name", tbl.Rows[1][1])
}

func TestParseCSV_Empty(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	require.Error(t, err)
}

func TestCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	tbl := New([]string{"a", "b"}, [][]string{{"1", "x"}, {"2", "y"}})

	require.NoError(t, WriteCSV(path, tbl))

	got, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, tbl.Header, got.Header)
	assert.Equal(t, tbl.Rows, got.Rows)
}

func TestReadFile_UnknownExtensionIsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")
	tbl := New([]string{"a"}, [][]string{{"1"}})
	require.NoError(t, WriteCSV(path, tbl))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1"}}, got.Rows)
}
