package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"subcompare/internal/config"
)

// ErrRunNotFound indicates the requested run does not exist.
var ErrRunNotFound = errors.New("run not found")

// Store manages the comparison run catalog backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the catalog database in the log directory.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.LogDir, "runs.db")
	return OpenPath(dbPath)
}

// OpenPath opens the catalog at an explicit database path.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Insert persists a completed comparison run.
func (s *Store) Insert(ctx context.Context, run *Run) error {
	if strings.TrimSpace(run.ID) == "" {
		return errors.New("run id required")
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (
            id, movie, reference_cues, candidate_files, mean_coverage,
            coverage_json, csv_path, json_path, started_at, finished_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Movie,
		run.ReferenceCues,
		run.CandidateFiles,
		run.MeanCoverage,
		defaultJSON(run.CoverageJSON),
		run.CSVPath,
		run.JSONPath,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// GetByID fetches a run by identifier. Short prefixes are accepted as long
// as they are unambiguous.
func (s *Store) GetByID(ctx context.Context, id string) (*Run, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrRunNotFound
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, movie, reference_cues, candidate_files, mean_coverage,
            coverage_json, csv_path, json_path, started_at, finished_at
        FROM runs WHERE id = ? OR id LIKE ? LIMIT 2`,
		id, id+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}
	defer rows.Close()

	runs, err := scanRuns(rows)
	if err != nil {
		return nil, err
	}
	switch len(runs) {
	case 0:
		return nil, ErrRunNotFound
	case 1:
		return runs[0], nil
	default:
		return nil, fmt.Errorf("run id %q is ambiguous", id)
	}
}

// List returns the most recent runs, newest first. A non-positive limit
// returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]*Run, error) {
	query := `SELECT id, movie, reference_cues, candidate_files, mean_coverage,
            coverage_json, csv_path, json_path, started_at, finished_at
        FROM runs ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

// ListByMovie returns runs for one movie, newest first.
func (s *Store) ListByMovie(ctx context.Context, movie string) ([]*Run, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, movie, reference_cues, candidate_files, mean_coverage,
            coverage_json, csv_path, json_path, started_at, finished_at
        FROM runs WHERE movie = ? ORDER BY started_at DESC`,
		movie,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs for movie: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]*Run, error) {
	var runs []*Run
	for rows.Next() {
		var run Run
		var started, finished string
		if err := rows.Scan(
			&run.ID,
			&run.Movie,
			&run.ReferenceCues,
			&run.CandidateFiles,
			&run.MeanCoverage,
			&run.CoverageJSON,
			&run.CSVPath,
			&run.JSONPath,
			&started,
			&finished,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		var err error
		if run.StartedAt, err = parseTime(started); err != nil {
			return nil, err
		}
		if run.FinishedAt, err = parseTime(finished); err != nil {
			return nil, err
		}
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", value, err)
	}
	return parsed, nil
}

func defaultJSON(value string) string {
	if strings.TrimSpace(value) == "" {
		return "{}"
	}
	return value
}
