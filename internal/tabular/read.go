package tabular

import (
	"path/filepath"
	"strings"
)

// ReadFile reads a table from path, picking the backend by file extension.
// ".xlsx" goes through the XLSX reader (first sheet); everything else is
// treated as CSV.
func ReadFile(path string) (*Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ReadXLSX(path, XLSXOptions{})
	}
	return ReadCSV(path)
}
