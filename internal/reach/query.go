package reach

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/uzstat/clickstream-cli/internal/store"
)

// QueryOptions are per-request knobs on top of the stored report filters.
type QueryOptions struct {
	TopN      int
	Platforms []string
}

const defaultTopN = 4

// BuildQuery renders the per-platform reach query with positional parameters.
// Every filter value travels as a bound argument; only placeholder lists are
// interpolated into the SQL text.
func BuildQuery(filters store.ReportFilters, opts QueryOptions) (string, []any, error) {
	if len(filters.Regions) == 0 || len(filters.Genders) == 0 || len(filters.Ages) == 0 {
		return "", nil, eris.New("reach: report filters must include regions, genders and ages")
	}
	if filters.StartDate == "" || filters.EndDate == "" {
		return "", nil, eris.New("reach: report filters must include a date range")
	}

	topN := opts.TopN
	if topN <= 0 {
		topN = defaultTopN
	}

	var args []any
	demographic := func(alias string) string {
		var b strings.Builder
		fmt.Fprintf(&b, "%sregion_id IN (%s)\n", alias, placeholders(len(filters.Regions)))
		fmt.Fprintf(&b, "  AND %sgender_id IN (%s)\n", alias, placeholders(len(filters.Genders)))
		fmt.Fprintf(&b, "  AND %sage_group_id IN (%s)\n", alias, placeholders(len(filters.Ages)))
		fmt.Fprintf(&b, "  AND %spdate BETWEEN ? AND ?", alias)
		for _, id := range filters.Regions {
			args = append(args, id)
		}
		for _, id := range filters.Genders {
			args = append(args, id)
		}
		for _, id := range filters.Ages {
			args = append(args, id)
		}
		args = append(args, filters.StartDate, filters.EndDate)
		return b.String()
	}

	var b strings.Builder
	b.WriteString(`SELECT
  td.source_name AS platform,
  COUNT(DISTINCT td.msisdn) AS user_count,
  ROUND(COUNT(DISTINCT td.msisdn) * 100.0 / population.total_pop, 2) AS reach_percent
FROM traffic_daily td
CROSS JOIN (
  SELECT COUNT(DISTINCT msisdn) AS total_pop
  FROM traffic_daily
  WHERE `)
	b.WriteString(demographic(""))
	b.WriteString("\n) population\nWHERE ")
	b.WriteString(demographic("td."))
	if len(opts.Platforms) > 0 {
		fmt.Fprintf(&b, "\n  AND td.source_name IN (%s)", placeholders(len(opts.Platforms)))
		for _, p := range opts.Platforms {
			args = append(args, p)
		}
	}
	b.WriteString(`
GROUP BY td.source_name, population.total_pop
ORDER BY user_count DESC
LIMIT ?`)
	args = append(args, topN)

	return b.String(), args, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
