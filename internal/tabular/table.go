// Package tabular provides a backend-agnostic in-memory table of named
// columns. The reconciliation engine and the reporting transforms operate
// on Table values regardless of whether the rows came from CSV or XLSX.
package tabular

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Table holds a fully materialized tabular dataset: a header row and the
// data rows, addressable by column name.
type Table struct {
	Header []string
	Rows   [][]string

	colIdx map[string]int
}

// New builds a Table from a header and rows.
func New(header []string, rows [][]string) *Table {
	t := &Table{Header: header, Rows: rows}
	t.colIdx = make(map[string]int, len(header))
	for i, col := range header {
		t.colIdx[strings.TrimSpace(col)] = i
	}
	return t
}

// Column returns the index of the named column.
func (t *Table) Column(name string) (int, bool) {
	idx, ok := t.colIdx[name]
	return idx, ok
}

// RequireColumn returns the index of the named column or a fatal error.
// Downstream steps have no defined behavior without their key columns, so
// callers should abort the run on this error.
func (t *Table) RequireColumn(name string) (int, error) {
	idx, ok := t.colIdx[name]
	if !ok {
		return 0, eris.Errorf("tabular: required column %q not found (have: %s)", name, strings.Join(t.Header, ", "))
	}
	return idx, nil
}

// Value returns the value of the named column in the given row, or empty
// string if the column is unknown or the row is short.
func (t *Table) Value(row []string, name string) string {
	idx, ok := t.colIdx[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// Unique returns the distinct values of the named column in order of first
// appearance.
func (t *Table) Unique(name string) ([]string, error) {
	idx, err := t.RequireColumn(name)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var values []string
	for _, row := range t.Rows {
		if idx >= len(row) {
			continue
		}
		v := row[idx]
		if !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	return values, nil
}
