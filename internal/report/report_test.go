package report

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uzstat/clickstream-cli/internal/appstats"
	"github.com/uzstat/clickstream-cli/internal/reconcile"
	"github.com/uzstat/clickstream-cli/internal/store"
)

// captureStdout runs fn with os.Stdout redirected and returns what it wrote.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	orig := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestQuietSuppressesAllOutput(t *testing.T) {
	matches := []reconcile.Match{{Source: "Samarqand shahri", Reference: "Samarqand", Score: 1.0}}
	summary := appstats.Summary{Total: 3, TopCategory: "messaging", TopCategoryN: 2}
	counts := []appstats.Count{{Label: "messaging", N: 2, Percent: 66.7}}
	dups := []appstats.Duplicate{{URL: "t.me/x", N: 2, AppNames: []string{"Telegram"}}}

	out := captureStdout(t, func() {
		console := New(true)
		console.MatchSummary(2, 2, matches, []string{"Qoraqalpog'iston"}, 0.7)
		console.TopMatches(matches, 5)
		console.Unmatched([]string{"Qoraqalpog'iston"})
		console.AppSummary(summary, counts, counts, dups)
		console.Runs([]store.MatchRun{{ID: "abc", PrimaryPath: "p.csv"}})
		console.Reports([]store.Report{{ID: "r1", Name: "fergana"}})
		console.Success("done")
		console.Warning("careful")
	})

	assert.Empty(t, out, "quiet console must not write anything, including section spacers")
}
