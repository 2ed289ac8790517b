// Package results persists evaluation run summaries to a local SQLite file.
package results

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/its-adityagoyal/JobSummarizer/internal/evaluation"
)

const schema = `CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	file TEXT NOT NULL,
	baseline TEXT,
	similarity REAL,
	passed INTEGER NOT NULL,
	failed INTEGER NOT NULL,
	skipped INTEGER NOT NULL,
	created_at TEXT NOT NULL
)`

// Store is a history of evaluation runs.
type Store struct {
	db *sql.DB
}

// Run is one recorded evaluation.
type Run struct {
	ID         string
	File       string
	Baseline   string
	Similarity *float64
	Passed     int
	Failed     int
	Skipped    int
	CreatedAt  time.Time
}

// Open opens or creates the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create runs table: %w", err)
	}

	return &Store{db: db}, nil
}

// Record stores a run summary and returns its id. similarity is nil when no
// baseline comparison was made.
func (s *Store) Record(report *evaluation.Report, baseline string, similarity *float64) (string, error) {
	id := uuid.NewString()

	var sim any
	if similarity != nil {
		sim = *similarity
	}
	var base any
	if baseline != "" {
		base = baseline
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (id, file, baseline, similarity, passed, failed, skipped, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, report.File, base, sim,
		report.Passed(), report.Failed(), report.Skipped(),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	return id, nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, file, baseline, similarity, passed, failed, skipped, created_at
		 FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var baseline sql.NullString
		var similarity sql.NullFloat64
		var createdAt string

		if err := rows.Scan(&run.ID, &run.File, &baseline, &similarity,
			&run.Passed, &run.Failed, &run.Skipped, &createdAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}

		run.Baseline = baseline.String
		if similarity.Valid {
			value := similarity.Float64
			run.Similarity = &value
		}
		if parsed, err := time.Parse(time.RFC3339, createdAt); err == nil {
			run.CreatedAt = parsed
		}

		runs = append(runs, run)
	}

	return runs, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
