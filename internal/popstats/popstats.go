// Package popstats unpivots the merged district dataset into one row per
// district, gender category, and age category, suitable for loading into
// the population reference table.
package popstats

import (
	"os"
	"strconv"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/uzstat/clickstream-cli/internal/tabular"
)

// AgeCategory maps a source column to its gender and age-group codes.
type AgeCategory struct {
	Column string
	Gender int // 0 = women, 1 = men
	Age    int // 1 = under 18 ... 6 = 56+
}

// AgeCategories lists the twelve population columns of the merged dataset.
var AgeCategories = []AgeCategory{
	{"Women under 18", 0, 1},
	{"Women 18-25", 0, 2},
	{"Women 26-35", 0, 3},
	{"Women 36-45", 0, 4},
	{"Women 46-55", 0, 5},
	{"Women 56+", 0, 6},
	{"Men under 18", 1, 1},
	{"Men 18-25", 1, 2},
	{"Men 26-35", 1, 3},
	{"Men 36-45", 1, 4},
	{"Men 46-55", 1, 5},
	{"Men 56+", 1, 6},
}

// Row is one output record of the unpivot.
type Row struct {
	ID             int    `csv:"id"`
	DistrictID     string `csv:"district_id"`
	RegionID       string `csv:"region_id"`
	DistrictNameEN string `csv:"district_name(en)"`
	RegionNameEN   string `csv:"region_name(en)"`
	GenderCategory int    `csv:"gender_category"`
	AgeCategory    int    `csv:"age_category"`
	Population     int    `csv:"population_count"`
}

// BuildRegionMap maps region_id to a short English region name derived
// from the reference table (first word of name_en). The first row seen for
// a region id wins.
func BuildRegionMap(ref *tabular.Table) (map[string]string, error) {
	for _, col := range []string{"region_id", "name_en"} {
		if _, err := ref.RequireColumn(col); err != nil {
			return nil, err
		}
	}

	regions := make(map[string]string)
	for _, row := range ref.Rows {
		id := ref.Value(row, "region_id")
		if _, ok := regions[id]; ok {
			continue
		}
		if fields := strings.Fields(ref.Value(row, "name_en")); len(fields) > 0 {
			regions[id] = fields[0]
		}
	}
	return regions, nil
}

// Unpivot expands merged rows for the given year into per-gender-per-age
// population rows. A population cell that fails to parse skips that cell
// only; the run never aborts on malformed values.
func Unpivot(merged *tabular.Table, regions map[string]string, year string) ([]Row, error) {
	if _, err := merged.RequireColumn("Year"); err != nil {
		return nil, err
	}

	var out []Row
	nextID := 1
	for _, row := range merged.Rows {
		if merged.Value(row, "Year") != year {
			continue
		}

		districtID := merged.Value(row, "district_id")
		regionID := merged.Value(row, "ref_region_id")
		districtName := merged.Value(row, "ref_name_en")
		regionName := regions[regionID]

		for _, cat := range AgeCategories {
			count, ok := parsePopulation(merged.Value(row, cat.Column))
			if !ok {
				continue
			}
			out = append(out, Row{
				ID:             nextID,
				DistrictID:     districtID,
				RegionID:       regionID,
				DistrictNameEN: districtName,
				RegionNameEN:   regionName,
				GenderCategory: cat.Gender,
				AgeCategory:    cat.Age,
				Population:     count,
			})
			nextID++
		}
	}
	return out, nil
}

// parsePopulation parses a population cell, tolerating float formatting
// ("12345.0").
func parsePopulation(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int(v), true
}

// WriteCSV writes the unpivoted rows to a CSV file.
func WriteCSV(path string, rows []Row) error {
	data, err := csvutil.Marshal(rows)
	if err != nil {
		return eris.Wrap(err, "popstats: marshal rows")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "popstats: write %s", path)
	}
	return nil
}
