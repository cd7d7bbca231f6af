package tabular

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/rotisserie/eris"
)

// ReadCSV reads a CSV file into a Table. The first record is the header.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "tabular: open %s", path)
	}
	defer f.Close()

	t, err := ParseCSV(f)
	if err != nil {
		return nil, eris.Wrapf(err, "tabular: parse %s", path)
	}
	return t, nil
}

// ParseCSV reads CSV data from r into a Table.
func ParseCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, eris.New("tabular: empty input, no header row")
	}
	if err != nil {
		return nil, eris.Wrap(err, "tabular: read header")
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}
		rows = append(rows, record)
	}

	return New(header, rows), nil
}

// WriteCSV writes a Table to a CSV file, header first.
func WriteCSV(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "tabular: create %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Header); err != nil {
		return eris.Wrap(err, "tabular: write header")
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return eris.Wrap(err, "tabular: write rows")
	}
	w.Flush()
	return eris.Wrap(w.Error(), "tabular: flush")
}
