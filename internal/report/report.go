// Package report renders console reports with pterm.
package report

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/uzstat/clickstream-cli/internal/appstats"
	"github.com/uzstat/clickstream-cli/internal/reconcile"
	"github.com/uzstat/clickstream-cli/internal/store"
)

// Console wraps pterm rendering. Quiet mode suppresses all output.
type Console struct {
	quiet bool
}

func New(quiet bool) *Console {
	if quiet {
		pterm.DisableOutput()
	}
	return &Console{quiet: quiet}
}

// spacer prints the blank line between sections. DisableOutput only covers
// pterm printers, so quiet mode has to gate this explicitly.
func (c *Console) spacer() {
	if !c.quiet {
		fmt.Println()
	}
}

// MatchSummary prints the headline numbers of a reconciliation run.
func (c *Console) MatchSummary(sources, candidates int, matches []reconcile.Match, unmatched []string, threshold float64) {
	pterm.DefaultSection.Println("District Matching")

	stats := reconcile.Stats(matches)
	data := [][]string{
		{"Source districts", fmt.Sprintf("%d", sources)},
		{"Reference districts", fmt.Sprintf("%d", candidates)},
		{"Matched", pterm.FgGreen.Sprintf("%d", len(matches))},
		{"Unmatched", pterm.FgYellow.Sprintf("%d", len(unmatched))},
		{"Threshold", fmt.Sprintf("%.2f", threshold)},
		{"Mean score", fmt.Sprintf("%.3f", stats.Mean)},
		{"Score range", fmt.Sprintf("%.3f - %.3f", stats.Min, stats.Max)},
	}
	pterm.DefaultTable.WithData(data).Render()
	c.spacer()
}

// TopMatches prints the n best matches as a table.
func (c *Console) TopMatches(matches []reconcile.Match, n int) {
	if len(matches) == 0 {
		return
	}
	if n > len(matches) {
		n = len(matches)
	}

	pterm.DefaultSection.WithLevel(2).Println(fmt.Sprintf("Top %d matches", n))

	data := pterm.TableData{{"Source", "Reference", "Score"}}
	for _, m := range matches[:n] {
		data = append(data, []string{m.Source, m.Reference, fmt.Sprintf("%.3f", m.Score)})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	c.spacer()
}

// Unmatched lists source names that found no reference entry.
func (c *Console) Unmatched(names []string) {
	if len(names) == 0 {
		return
	}
	pterm.DefaultSection.WithLevel(2).Println("Unmatched districts")
	for _, name := range names {
		pterm.Warning.Println(name)
	}
	c.spacer()
}

// AppSummary prints the descriptive statistics of the app dataset.
func (c *Console) AppSummary(s appstats.Summary, categories, geo []appstats.Count, dups []appstats.Duplicate) {
	pterm.DefaultSection.Println("App Dataset")

	data := [][]string{
		{"Rows", fmt.Sprintf("%d", s.Total)},
		{"Dropped (empty URL)", fmt.Sprintf("%d", s.Dropped)},
		{"Named apps", fmt.Sprintf("%d", s.NamedApps)},
		{".uz domains", fmt.Sprintf("%d", s.UzbekDomains)},
		{"Top category", fmt.Sprintf("%s (%d)", s.TopCategory, s.TopCategoryN)},
	}
	pterm.DefaultTable.WithData(data).Render()
	c.spacer()

	c.counts("Categories", categories)
	c.counts("Geography", geo)

	if len(dups) > 0 {
		pterm.DefaultSection.WithLevel(2).Println("Duplicate URLs")
		for _, d := range dups {
			pterm.Warning.Println(fmt.Sprintf("%s ×%d (%s)", d.URL, d.N, strings.Join(d.AppNames, ", ")))
		}
		c.spacer()
	}
}

func (c *Console) counts(title string, counts []appstats.Count) {
	if len(counts) == 0 {
		return
	}
	pterm.DefaultSection.WithLevel(2).Println(title)

	data := pterm.TableData{{"Label", "Count", "Share"}}
	for _, cnt := range counts {
		data = append(data, []string{cnt.Label, fmt.Sprintf("%d", cnt.N), fmt.Sprintf("%.1f%%", cnt.Percent)})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	c.spacer()
}

// Runs prints recorded reconciliation runs, newest first.
func (c *Console) Runs(runs []store.MatchRun) {
	if len(runs) == 0 {
		pterm.Info.Println("No recorded runs")
		return
	}

	data := pterm.TableData{{"ID", "Primary", "Threshold", "Matched", "Unmatched", "Mean", "When"}}
	for _, r := range runs {
		data = append(data, []string{
			shortID(r.ID),
			r.PrimaryPath,
			fmt.Sprintf("%.2f", r.Threshold),
			fmt.Sprintf("%d", r.Matched),
			fmt.Sprintf("%d", r.Unmatched),
			fmt.Sprintf("%.3f", r.MeanScore),
			r.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// Reports prints saved reach report definitions.
func (c *Console) Reports(reports []store.Report) {
	if len(reports) == 0 {
		pterm.Info.Println("No saved reports")
		return
	}

	data := pterm.TableData{{"ID", "Name", "Regions", "Genders", "Ages", "Period"}}
	for _, r := range reports {
		data = append(data, []string{
			shortID(r.ID),
			r.Name,
			intList(r.Filters.Regions),
			intList(r.Filters.Genders),
			intList(r.Filters.Ages),
			r.Filters.StartDate + " .. " + r.Filters.EndDate,
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func intList(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ",")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Success prints a success message.
func (c *Console) Success(message string) {
	pterm.Success.Println(message)
}

// Warning prints a warning message.
func (c *Console) Warning(message string) {
	pterm.Warning.Println(message)
}
