// Package store persists inference runs in a local SQLite database so that
// past runs can be listed and compared from the CLI.
package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/funvibe/funprob/internal/config"
	"github.com/funvibe/funprob/internal/infer"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id           TEXT PRIMARY KEY,
	model        TEXT NOT NULL,
	seed         INTEGER NOT NULL,
	samples      INTEGER NOT NULL,
	mean         REAL NOT NULL,
	variance     REAL NOT NULL,
	log_evidence REAL NOT NULL,
	created_at   TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS samples (
	run_id     TEXT NOT NULL REFERENCES runs(id),
	idx        INTEGER NOT NULL,
	value      REAL NOT NULL,
	log_weight REAL NOT NULL,
	PRIMARY KEY (run_id, idx)
);`

// Run is one persisted inference run.
type Run struct {
	ID          string
	Model       string
	Seed        uint64
	Samples     int
	Mean        float64
	Variance    float64
	LogEvidence float64
	CreatedAt   time.Time
}

// Store wraps the SQLite database holding runs and their samples.
type Store struct {
	db *sql.DB
}

// Open opens (creating when absent) the store at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open(config.SQLDriverName, path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// SaveRun persists a run summary together with its weighted samples and
// returns the stored record, keyed by a fresh UUID.
func (s *Store) SaveRun(model string, seed uint64, res infer.Result) (Run, error) {
	mean, err := res.Mean()
	if err != nil {
		return Run{}, err
	}
	variance, err := res.Variance()
	if err != nil {
		return Run{}, err
	}
	run := Run{
		ID:          uuid.NewString(),
		Model:       model,
		Seed:        seed,
		Samples:     len(res.Samples),
		Mean:        mean,
		Variance:    variance,
		LogEvidence: res.LogEvidence(),
		CreatedAt:   time.Now().UTC(),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return Run{}, err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (id, model, seed, samples, mean, variance, log_evidence, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Model, int64(run.Seed), run.Samples,
		run.Mean, run.Variance, run.LogEvidence, run.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Run{}, err
	}

	insert, err := tx.Prepare(`INSERT INTO samples (run_id, idx, value, log_weight) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return Run{}, err
	}
	defer insert.Close()
	for i, sm := range res.Samples {
		if _, err := insert.Exec(run.ID, i, sm.Value, sm.Weight.Log()); err != nil {
			return Run{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, err
	}
	return run, nil
}

// Runs lists persisted runs, most recent first.
func (s *Store) Runs() ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT id, model, seed, samples, mean, variance, log_evidence, created_at
		 FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var seed int64
		var created string
		if err := rows.Scan(&r.ID, &r.Model, &seed, &r.Samples, &r.Mean, &r.Variance, &r.LogEvidence, &created); err != nil {
			return nil, err
		}
		r.Seed = uint64(seed)
		r.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// SampleCount reports how many samples are stored for a run.
func (s *Store) SampleCount(runID string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM samples WHERE run_id = ?`, runID).Scan(&n)
	return n, err
}
