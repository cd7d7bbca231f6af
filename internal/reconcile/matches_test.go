package reconcile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatches_SortedAndRounded(t *testing.T) {
	assignments := map[string]Assignment{
		"B": {Candidate: "B ref", Score: 0.81234},
		"A": {Candidate: "A ref", Score: 1.0},
		"C": {Candidate: "C ref", Score: 0.81234},
	}

	matches := Matches(assignments)
	require.Len(t, matches, 3)

	assert.Equal(t, "A", matches[0].Source)
	assert.Equal(t, 1.0, matches[0].Score)
	// Equal scores fall back to source-name order.
	assert.Equal(t, "B", matches[1].Source)
	assert.Equal(t, "C", matches[2].Source)
	assert.Equal(t, 0.812, matches[1].Score)
}

func TestUnmatched(t *testing.T) {
	sources := []string{"A", "B", "C"}
	assignments := map[string]Assignment{"B": {Candidate: "B ref", Score: 0.9}}

	assert.Equal(t, []string{"A", "C"}, Unmatched(sources, assignments))
}

func TestUnclaimedCandidates(t *testing.T) {
	candidates := []string{"X", "Y", "Z"}
	assignments := map[string]Assignment{
		"a": {Candidate: "Y", Score: 0.8},
		"b": {Candidate: "Y", Score: 0.75},
	}

	assert.Equal(t, []string{"X", "Z"}, UnclaimedCandidates(candidates, assignments))
}

func TestStats(t *testing.T) {
	matches := []Match{{Score: 1.0}, {Score: 0.8}, {Score: 0.9}}

	st := Stats(matches)
	assert.InDelta(t, 0.9, st.Mean, 1e-9)
	assert.Equal(t, 0.8, st.Min)
	assert.Equal(t, 1.0, st.Max)

	assert.Equal(t, ScoreStats{}, Stats(nil))
}

func TestWriteMatchesCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matches.csv")
	matches := []Match{
		{Source: "Andijon tumani", Reference: "Andijon shahri", Score: 1.0},
	}

	require.NoError(t, WriteMatchesCSV(path, matches))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "main_district,reference_district,match_score")
	assert.Contains(t, string(data), "Andijon tumani,Andijon shahri,1")
}
