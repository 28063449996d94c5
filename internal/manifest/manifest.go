// internal/manifest/manifest.go
package manifest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"af3pairs/pkg/api"
)

// ErrNotFound is returned by Lookup when no job has the given name.
var ErrNotFound = errors.New("manifest: job not found")

// RunInfo describes one preparation run.
type RunInfo struct {
	Tag       string
	Fasta1    string
	Fasta2    string
	Count1    int
	Count2    int
	BatchSize int
}

// JobRef locates a job written by some run.
type JobRef struct {
	RunID      string
	BatchIndex int
	BatchPath  string
	Position   int // 0-based position inside the batch file
	Name       string
	IDA        string
	IDB        string
}

// Store is a SQLite-backed record of runs, batch files and job names.
// Names are indexed case-insensitively because AlphaFold3 lower-cases job
// names in its outputs.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	tag TEXT,
	fasta1 TEXT,
	fasta2 TEXT,
	count1 INTEGER,
	count2 INTEGER,
	batch_size INTEGER,
	created_at DATETIME
);
CREATE TABLE IF NOT EXISTS jobs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT,
	batch_index INTEGER,
	path TEXT,
	position INTEGER,
	name TEXT,
	lname TEXT,
	id_a TEXT,
	id_b TEXT
);
CREATE INDEX IF NOT EXISTS jobs_lname ON jobs(lname);
`

// Open creates or opens the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("manifest %s: schema: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error { return s.db.Close() }

// BeginRun stores a run row and returns its generated id.
func (s *Store) BeginRun(ctx context.Context, ri RunInfo) (string, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, tag, fasta1, fasta2, count1, count2, batch_size, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, ri.Tag, ri.Fasta1, ri.Fasta2, ri.Count1, ri.Count2, ri.BatchSize, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("manifest: begin run: %w", err)
	}
	return id, nil
}

// RecordBatch stores one row per job of a written batch file, in a single
// transaction.
func (s *Store) RecordBatch(ctx context.Context, runID string, index int, path string, jobs []api.JobV1) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("manifest: batch %d: %w", index, err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO jobs (run_id, batch_index, path, position, name, lname, id_a, id_b) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("manifest: batch %d: %w", index, err)
	}
	defer stmt.Close()

	for pos, j := range jobs {
		a, b, _ := strings.Cut(j.Name, api.NameSep)
		if _, err := stmt.ExecContext(ctx, runID, index, path, pos, j.Name, strings.ToLower(j.Name), a, b); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("manifest: batch %d job %q: %w", index, j.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("manifest: batch %d: %w", index, err)
	}
	return nil
}

// Lookup finds the most recently recorded job whose name matches name,
// ignoring case.
func (s *Store) Lookup(ctx context.Context, name string) (JobRef, error) {
	var ref JobRef
	err := s.db.QueryRowContext(ctx,
		`SELECT run_id, batch_index, path, position, name, id_a, id_b FROM jobs WHERE lname = ? ORDER BY id DESC LIMIT 1`,
		strings.ToLower(name)).
		Scan(&ref.RunID, &ref.BatchIndex, &ref.BatchPath, &ref.Position, &ref.Name, &ref.IDA, &ref.IDB)
	if errors.Is(err, sql.ErrNoRows) {
		return ref, ErrNotFound
	}
	if err != nil {
		return ref, fmt.Errorf("manifest: lookup %q: %w", name, err)
	}
	return ref, nil
}

// JobCount returns the number of jobs recorded for runID.
func (s *Store) JobCount(ctx context.Context, runID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs WHERE run_id = ?`, runID).Scan(&n)
	return n, err
}
