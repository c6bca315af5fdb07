package store

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"wordlearn/internal/experiment"

	_ "modernc.org/sqlite"
)

// timeLayout is fixed width so started_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SqlStore implements Store with SQLite.
type SqlStore struct {
	db *sql.DB
}

// Open opens or creates a SQLite DB at path and installs the schema.
// Creates the parent directory if it does not exist.
func Open(path string) (*SqlStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	s := &SqlStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// OpenExisting opens the DB at path like Open, but never creates it. A
// missing file is reported as ErrNotFound.
func OpenExisting(path string) (*SqlStore, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("stat store: %w", err)
	}
	return Open(path)
}

func (s *SqlStore) migrate() error {
	var tableCount int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableCount)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}
	if tableCount == 0 {
		return s.freshInstall()
	}

	var v int
	err = s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("schema_version is empty")
	}
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if v != schemaVersion {
		return fmt.Errorf("unknown schema version %d", v)
	}
	return nil
}

func (s *SqlStore) freshInstall() error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := s.db.Exec("INSERT INTO schema_version(version) VALUES(?)", schemaVersion); err != nil {
		return fmt.Errorf("set schema version: %w", err)
	}
	return nil
}

func (s *SqlStore) Close() error { return s.db.Close() }

func (s *SqlStore) SaveRun(run *Run, trials []Trial) (string, error) {
	id := run.ID
	if id == "" {
		id = uuid.NewString()
	}
	spec, err := encodeSpec(run.Spec)
	if err != nil {
		return "", err
	}
	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	sm := run.Summary
	_, err = tx.Exec(`INSERT INTO runs (id, name, learner, spec, seed, shuffled, split, trials,
		precision_mean, precision_std, recall_mean, recall_std, f1_mean, f1_std,
		started_at, elapsed_ms) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		id, run.Name, string(run.Spec.Kind), spec, int64(run.Seed), run.Shuffled, run.Split, run.Trials,
		sm.Precision.Mean, sm.Precision.Std, sm.Recall.Mean, sm.Recall.Std, sm.F1.Mean, sm.F1.Std,
		run.StartedAt.UTC().Format(timeLayout), run.Elapsed.Milliseconds())
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	for _, t := range trials {
		_, err := tx.Exec(`INSERT INTO trials (run_id, idx, precision, recall, f1, words)
			VALUES (?,?,?,?,?,?)`,
			id, t.Index, t.Metrics.Precision, t.Metrics.Recall, t.Metrics.F1, t.Words)
		if err != nil {
			return "", fmt.Errorf("insert trial %d: %w", t.Index, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit run: %w", err)
	}
	return id, nil
}

const runColumns = `id, name, spec, seed, shuffled, split, trials,
	precision_mean, precision_std, recall_mean, recall_std, f1_mean, f1_std,
	started_at, elapsed_ms`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var (
		r         Run
		spec      string
		seed      int64
		startedAt string
		elapsedMS int64
		sm        experiment.Summary
	)
	err := row.Scan(&r.ID, &r.Name, &spec, &seed, &r.Shuffled, &r.Split, &r.Trials,
		&sm.Precision.Mean, &sm.Precision.Std, &sm.Recall.Mean, &sm.Recall.Std,
		&sm.F1.Mean, &sm.F1.Std, &startedAt, &elapsedMS)
	if err != nil {
		return nil, err
	}
	if r.Spec, err = decodeSpec(spec); err != nil {
		return nil, fmt.Errorf("run %s: %w", r.ID, err)
	}
	if r.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
		return nil, fmt.Errorf("run %s: parse started_at: %w", r.ID, err)
	}
	r.Seed = uint64(seed)
	r.Summary = sm
	r.Elapsed = time.Duration(elapsedMS) * time.Millisecond
	return &r, nil
}

func (s *SqlStore) GetRun(id string) (*Run, error) {
	r, err := scanRun(s.db.QueryRow("SELECT "+runColumns+" FROM runs WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return r, nil
}

func (s *SqlStore) ListRuns() ([]*Run, error) {
	rows, err := s.db.Query("SELECT " + runColumns + " FROM runs ORDER BY started_at DESC, rowid DESC")
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()
	var out []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SqlStore) ListTrials(runID string) ([]Trial, error) {
	if _, err := s.GetRun(runID); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(
		"SELECT idx, precision, recall, f1, words FROM trials WHERE run_id = ? ORDER BY idx", runID)
	if err != nil {
		return nil, fmt.Errorf("list trials: %w", err)
	}
	defer rows.Close()
	var out []Trial
	for rows.Next() {
		t := Trial{RunID: runID}
		if err := rows.Scan(&t.Index, &t.Metrics.Precision, &t.Metrics.Recall, &t.Metrics.F1, &t.Words); err != nil {
			return nil, fmt.Errorf("scan trial: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
