package reconcile

import (
	"github.com/uzstat/clickstream-cli/internal/tabular"
)

// Reference dataset column names the index depends on.
const (
	ColNameUZ   = "name_uz"
	ColNameEN   = "name_en"
	ColNameRU   = "name_ru"
	ColCode     = "code"
	ColRegionID = "region_id"
)

// CanonicalEntity is one authoritative reference record for an
// administrative unit.
type CanonicalEntity struct {
	NameUZ   string
	NameEN   string
	NameRU   string
	Code     string
	RegionID string
}

// BuildIndex builds a lookup from the reference table's raw name column to
// its canonical attributes. When the same raw name occurs on multiple
// rows, the later row overwrites the earlier one. That mirrors the source
// reference table's observed behavior; duplicate raw names are a
// data-quality question for the table's owners, not resolved here.
func BuildIndex(ref *tabular.Table) (map[string]CanonicalEntity, error) {
	for _, col := range []string{ColNameUZ, ColNameEN, ColNameRU, ColCode, ColRegionID} {
		if _, err := ref.RequireColumn(col); err != nil {
			return nil, err
		}
	}

	index := make(map[string]CanonicalEntity, len(ref.Rows))
	for _, row := range ref.Rows {
		index[ref.Value(row, ColNameUZ)] = CanonicalEntity{
			NameUZ:   ref.Value(row, ColNameUZ),
			NameEN:   ref.Value(row, ColNameEN),
			NameRU:   ref.Value(row, ColNameRU),
			Code:     ref.Value(row, ColCode),
			RegionID: ref.Value(row, ColRegionID),
		}
	}
	return index, nil
}
