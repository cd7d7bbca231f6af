// Package appstats computes descriptive statistics over the app/website
// dataset: category distribution, domain and TLD breakdowns, geographic
// bucketing, and duplicate detection.
package appstats

import (
	"regexp"
	"sort"
	"strings"

	"github.com/uzstat/clickstream-cli/internal/tabular"
)

// Record is one cleaned entry of the app dataset.
type Record struct {
	AppID    string
	AppName  string
	URL      string
	Domain   string
	Category string
}

var domainRe = regexp.MustCompile(`([^./]+\.[^./]+)/?$`)

// Clean converts raw table rows into Records. Rows with an empty URL are
// dropped; empty app fields become "Unknown" and empty categories become
// "uncategorized". Returns the cleaned records and the number of rows
// dropped.
func Clean(t *tabular.Table) ([]Record, int, error) {
	for _, col := range []string{"url", "category"} {
		if _, err := t.RequireColumn(col); err != nil {
			return nil, 0, err
		}
	}

	var (
		records []Record
		dropped int
	)
	for _, row := range t.Rows {
		url := strings.TrimSpace(t.Value(row, "url"))
		if url == "" {
			dropped++
			continue
		}

		rec := Record{
			AppID:    strings.TrimSpace(t.Value(row, "app_id")),
			AppName:  strings.TrimSpace(t.Value(row, "app_name")),
			URL:      url,
			Domain:   extractDomain(url),
			Category: strings.TrimSpace(t.Value(row, "category")),
		}
		if rec.AppID == "" {
			rec.AppID = "Unknown"
		}
		if rec.AppName == "" {
			rec.AppName = "Unknown"
		}
		if rec.Category == "" {
			rec.Category = "uncategorized"
		}
		records = append(records, rec)
	}
	return records, dropped, nil
}

func extractDomain(url string) string {
	if m := domainRe.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	return url
}

// Count is a labeled count with its share of the total.
type Count struct {
	Label   string
	N       int
	Percent float64
}

func toCounts(m map[string]int, total int) []Count {
	counts := make([]Count, 0, len(m))
	for label, n := range m {
		counts = append(counts, Count{Label: label, N: n, Percent: float64(n) / float64(total) * 100})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].N != counts[j].N {
			return counts[i].N > counts[j].N
		}
		return counts[i].Label < counts[j].Label
	})
	return counts
}

// Categories returns the category distribution, most common first.
func Categories(records []Record) []Count {
	if len(records) == 0 {
		return nil
	}
	m := make(map[string]int)
	for _, r := range records {
		m[r.Category]++
	}
	return toCounts(m, len(records))
}

// Domains returns the distribution of extracted domains.
func Domains(records []Record) []Count {
	if len(records) == 0 {
		return nil
	}
	m := make(map[string]int)
	for _, r := range records {
		m[r.Domain]++
	}
	return toCounts(m, len(records))
}

// TLDs returns the top-level-domain distribution.
func TLDs(records []Record) []Count {
	if len(records) == 0 {
		return nil
	}
	m := make(map[string]int)
	for _, r := range records {
		if i := strings.LastIndex(r.Domain, "."); i >= 0 {
			m[r.Domain[i+1:]]++
		}
	}
	return toCounts(m, len(records))
}

// countryTLDs maps known country-code TLDs to a geographic bucket.
var countryTLDs = map[string]string{
	"uz":  "Uzbekistan",
	"ru":  "Russia",
	"cn":  "China",
	"com": "International",
	"org": "International",
	"net": "International",
	"io":  "International",
}

// Geographic buckets records by the country implied by their TLD.
func Geographic(records []Record) []Count {
	m := make(map[string]int)
	total := 0
	for _, r := range records {
		i := strings.LastIndex(r.Domain, ".")
		if i < 0 {
			continue
		}
		tld := r.Domain[i+1:]
		bucket, ok := countryTLDs[tld]
		if !ok {
			bucket = "Other (." + tld + ")"
		}
		m[bucket]++
		total++
	}
	if total == 0 {
		return nil
	}
	return toCounts(m, total)
}

// Duplicate is a URL that appears more than once, with the distinct app
// names attached to it.
type Duplicate struct {
	URL      string
	N        int
	AppNames []string
}

// Duplicates finds URLs appearing on multiple rows.
func Duplicates(records []Record) []Duplicate {
	counts := make(map[string]int)
	names := make(map[string]map[string]bool)
	for _, r := range records {
		counts[r.URL]++
		if names[r.URL] == nil {
			names[r.URL] = make(map[string]bool)
		}
		names[r.URL][r.AppName] = true
	}

	var dups []Duplicate
	for url, n := range counts {
		if n < 2 {
			continue
		}
		var appNames []string
		for name := range names[url] {
			appNames = append(appNames, name)
		}
		sort.Strings(appNames)
		dups = append(dups, Duplicate{URL: url, N: n, AppNames: appNames})
	}
	sort.Slice(dups, func(i, j int) bool { return dups[i].URL < dups[j].URL })
	return dups
}

// Summary holds the headline numbers of the dataset.
type Summary struct {
	Total        int
	Dropped      int
	NamedApps    int
	UzbekDomains int
	TopCategory  string
	TopCategoryN int
}

// Summarize computes the Summary over cleaned records.
func Summarize(records []Record, dropped int) Summary {
	s := Summary{Total: len(records), Dropped: dropped}
	for _, r := range records {
		if r.AppName != "Unknown" {
			s.NamedApps++
		}
		if strings.HasSuffix(r.Domain, ".uz") {
			s.UzbekDomains++
		}
	}
	if cats := Categories(records); len(cats) > 0 {
		s.TopCategory = cats[0].Label
		s.TopCategoryN = cats[0].N
	}
	return s
}
