// Package store persists reconciliation run records and report filter
// definitions.
package store

import (
	"context"
	"time"
)

// MatchRun records the outcome of one reconciliation run.
type MatchRun struct {
	ID            string    `json:"id"`
	PrimaryPath   string    `json:"primary_path"`
	ReferencePath string    `json:"reference_path"`
	Threshold     float64   `json:"threshold"`
	Sources       int       `json:"sources"`
	Matched       int       `json:"matched"`
	Unmatched     int       `json:"unmatched"`
	MeanScore     float64   `json:"mean_score"`
	CreatedAt     time.Time `json:"created_at"`
}

// ReportFilters are the saved audience filters a reach report runs with.
type ReportFilters struct {
	Regions   []int  `json:"region"`
	Genders   []int  `json:"gender"`
	Ages      []int  `json:"age"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Report is a saved reach report definition.
type Report struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Filters ReportFilters `json:"filters"`
}

// Store defines the persistence interface for run history and reports.
type Store interface {
	RecordRun(ctx context.Context, run MatchRun) (*MatchRun, error)
	ListRuns(ctx context.Context, limit int) ([]MatchRun, error)

	SaveReport(ctx context.Context, report Report) (*Report, error)
	GetReport(ctx context.Context, id string) (*Report, error)
	ListReports(ctx context.Context) ([]Report, error)

	Migrate(ctx context.Context) error
	Close() error
}
