package reconcile

import (
	"github.com/rotisserie/eris"

	"github.com/uzstat/clickstream-cli/internal/tabular"
)

// ErrNoMatches is returned when zero source names matched any reference
// entity. Producing an all-empty merged dataset would hide the failure, so
// the merge refuses to run instead.
var ErrNoMatches = eris.New("reconcile: no source names matched any reference entity")

// MergedColumns are appended to the primary schema, in this order.
var MergedColumns = []string{"ref_name_uz", "ref_name_en", "ref_name_ru", "ref_code", "ref_region_id"}

// Merge joins every primary row to the canonical attributes of its matched
// entity. Rows whose source name has no assignment, or whose assigned
// candidate is missing from the index, get five empty placeholder fields.
// Row order and count are preserved exactly.
func Merge(primary *tabular.Table, nameCol string, assignments map[string]Assignment, index map[string]CanonicalEntity) (*tabular.Table, error) {
	nameIdx, err := primary.RequireColumn(nameCol)
	if err != nil {
		return nil, err
	}
	if len(assignments) == 0 {
		return nil, ErrNoMatches
	}

	header := make([]string, 0, len(primary.Header)+len(MergedColumns))
	header = append(header, primary.Header...)
	header = append(header, MergedColumns...)

	rows := make([][]string, 0, len(primary.Rows))
	for _, row := range primary.Rows {
		out := make([]string, 0, len(header))
		out = append(out, row...)

		var src string
		if nameIdx < len(row) {
			src = row[nameIdx]
		}

		if asg, ok := assignments[src]; ok {
			if ent, ok := index[asg.Candidate]; ok {
				out = append(out, ent.NameUZ, ent.NameEN, ent.NameRU, ent.Code, ent.RegionID)
				rows = append(rows, out)
				continue
			}
		}
		out = append(out, "", "", "", "", "")
		rows = append(rows, out)
	}

	return tabular.New(header, rows), nil
}
