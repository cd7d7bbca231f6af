// Package reach computes per-platform and cumulative audience reach from
// the ClickHouse traffic table.
package reach

import "math"

// PlatformReach is one platform's audience within the filtered population.
type PlatformReach struct {
	Platform string  `json:"platform"`
	Count    uint64  `json:"count"`
	Percent  float64 `json:"percent"`
}

// Cumulative appends a synthetic "Cumulative" row covering the union of all
// platforms, assuming independent audiences: the chance a person was reached
// by none of them is the product of (1 - r_i) over the per-platform reach
// fractions.
func Cumulative(platforms []PlatformReach) []PlatformReach {
	if len(platforms) == 0 {
		return platforms
	}

	notReached := 1.0
	for _, p := range platforms {
		notReached *= 1 - p.Percent/100.0
	}
	cumPercent := (1 - notReached) * 100.0

	// The query reports each platform's percent against the same total
	// population, so the first row is enough to recover it.
	var cumCount uint64
	if first := platforms[0]; first.Percent > 0 {
		totalPop := float64(first.Count) / (first.Percent / 100.0)
		cumCount = uint64(cumPercent * totalPop / 100.0)
	}

	return append(platforms, PlatformReach{
		Platform: "Cumulative",
		Count:    cumCount,
		Percent:  math.Round(cumPercent*100) / 100,
	})
}
