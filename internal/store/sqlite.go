package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS match_runs (
	id             TEXT PRIMARY KEY,
	primary_path   TEXT NOT NULL,
	reference_path TEXT NOT NULL,
	threshold      REAL NOT NULL,
	sources        INTEGER NOT NULL,
	matched        INTEGER NOT NULL,
	unmatched      INTEGER NOT NULL,
	mean_score     REAL NOT NULL,
	created_at     DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS reports (
	id      TEXT PRIMARY KEY,
	name    TEXT NOT NULL,
	filters TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_match_runs_created_at ON match_runs(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) RecordRun(ctx context.Context, run MatchRun) (*MatchRun, error) {
	run.ID = uuid.New().String()
	run.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO match_runs (id, primary_path, reference_path, threshold, sources, matched, unmatched, mean_score, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.PrimaryPath, run.ReferencePath, run.Threshold,
		run.Sources, run.Matched, run.Unmatched, run.MeanScore, run.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert match run")
	}
	return &run, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]MatchRun, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, primary_path, reference_path, threshold, sources, matched, unmatched, mean_score, created_at
		 FROM match_runs ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close()

	var runs []MatchRun
	for rows.Next() {
		var r MatchRun
		if err := rows.Scan(&r.ID, &r.PrimaryPath, &r.ReferencePath, &r.Threshold,
			&r.Sources, &r.Matched, &r.Unmatched, &r.MeanScore, &r.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		runs = append(runs, r)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: list runs iterate")
}

func (s *SQLiteStore) SaveReport(ctx context.Context, report Report) (*Report, error) {
	if report.ID == "" {
		report.ID = uuid.New().String()
	}

	filtersJSON, err := json.Marshal(report.Filters)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal filters")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO reports (id, name, filters) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name, filters = excluded.filters`,
		report.ID, report.Name, string(filtersJSON),
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: save report")
	}
	return &report, nil
}

func (s *SQLiteStore) ListReports(ctx context.Context) ([]Report, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, filters FROM reports ORDER BY name`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list reports")
	}
	defer rows.Close()

	var reports []Report
	for rows.Next() {
		var (
			r           Report
			filtersJSON string
		)
		if err := rows.Scan(&r.ID, &r.Name, &filtersJSON); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan report")
		}
		if err := json.Unmarshal([]byte(filtersJSON), &r.Filters); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal filters")
		}
		reports = append(reports, r)
	}
	return reports, eris.Wrap(rows.Err(), "sqlite: list reports iterate")
}

func (s *SQLiteStore) GetReport(ctx context.Context, id string) (*Report, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, filters FROM reports WHERE id = ?`, id,
	)

	var (
		r           Report
		filtersJSON string
	)
	err := row.Scan(&r.ID, &r.Name, &filtersJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get report")
	}
	if err := json.Unmarshal([]byte(filtersJSON), &r.Filters); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal filters")
	}
	return &r, nil
}
