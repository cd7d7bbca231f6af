package reconcile

import (
	"math"
	"os"
	"sort"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
)

// Match is one row of the match report: a source name, the reference name
// it resolved to, and the accepted score rounded for reporting.
type Match struct {
	Source    string  `csv:"main_district"`
	Reference string  `csv:"reference_district"`
	Score     float64 `csv:"match_score"`
}

// Matches converts an assignment map into report rows, sorted by score
// descending then source name for a stable report. Scores are rounded to
// three decimal places.
func Matches(assignments map[string]Assignment) []Match {
	matches := make([]Match, 0, len(assignments))
	for src, asg := range assignments {
		matches = append(matches, Match{
			Source:    src,
			Reference: asg.Candidate,
			Score:     math.Round(asg.Score*1000) / 1000,
		})
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Source < matches[j].Source
	})
	return matches
}

// Unmatched returns the source names with no assignment, in input order.
func Unmatched(sources []string, assignments map[string]Assignment) []string {
	var out []string
	for _, src := range sources {
		if _, ok := assignments[src]; !ok {
			out = append(out, src)
		}
	}
	return out
}

// UnclaimedCandidates returns the candidate names no source resolved to,
// in candidate order.
func UnclaimedCandidates(candidates []string, assignments map[string]Assignment) []string {
	claimed := make(map[string]bool, len(assignments))
	for _, asg := range assignments {
		claimed[asg.Candidate] = true
	}
	var out []string
	for _, c := range candidates {
		if !claimed[c] {
			out = append(out, c)
		}
	}
	return out
}

// ScoreStats summarizes the accepted match scores.
type ScoreStats struct {
	Mean float64
	Min  float64
	Max  float64
}

// Stats computes mean, min, and max over the matches. Zero matches yield
// zero stats.
func Stats(matches []Match) ScoreStats {
	if len(matches) == 0 {
		return ScoreStats{}
	}
	st := ScoreStats{Min: matches[0].Score, Max: matches[0].Score}
	var sum float64
	for _, m := range matches {
		sum += m.Score
		if m.Score < st.Min {
			st.Min = m.Score
		}
		if m.Score > st.Max {
			st.Max = m.Score
		}
	}
	st.Mean = sum / float64(len(matches))
	return st
}

// WriteMatchesCSV writes the match report to a CSV file.
func WriteMatchesCSV(path string, matches []Match) error {
	data, err := csvutil.Marshal(matches)
	if err != nil {
		return eris.Wrap(err, "reconcile: marshal matches")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "reconcile: write %s", path)
	}
	return nil
}
