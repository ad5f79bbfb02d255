// Package checkpoint persists scan *position*, not results, so a
// later run with the same request hash can see how far an earlier
// run got. Nothing resumes a scan from a stored row. It never stores
// matched seeds: spec.md's Non-goal is storage of results, not
// storage of where a scan left off.
package checkpoint

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"
)

// Row is the durable state of one in-progress or completed run.
type Row struct {
	RunID           string
	RequestHash     string
	LastCheckedSeed int32
	CheckedCount    int64
	UpdatedAt       time.Time
}

// Store is a single-writer SQLite-backed checkpoint log. Writes are
// serialized through an internal goroutine; Save blocks until its own
// write has completed.
type Store struct {
	db     *sql.DB
	logger *log.Logger

	ch   chan saveReq
	wg   sync.WaitGroup
	once sync.Once

	closed atomic.Bool
}

type saveReq struct {
	row Row
	err chan error
}

// Open creates (or reuses) a checkpoint database at path. logger
// receives write failures that a caller ignoring Save's return value
// would otherwise lose silently; pass nil to disable logging.
func Open(path string, logger *log.Logger) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("checkpoint: empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS checkpoints (
			run_id            TEXT PRIMARY KEY,
			request_hash      TEXT NOT NULL,
			last_checked_seed INTEGER NOT NULL,
			checked_count     INTEGER NOT NULL,
			updated_at        TEXT NOT NULL
		)
	`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("checkpoint: create table: %w", err)
	}

	s := &Store{
		db:     db,
		logger: logger,
		ch:     make(chan saveReq, 64),
	}
	s.wg.Add(1)
	go s.writeLoop()
	return s, nil
}

func (s *Store) writeLoop() {
	defer s.wg.Done()
	for req := range s.ch {
		err := s.saveSync(req.row)
		if err != nil && s.logger != nil {
			s.logger.Printf("checkpoint: save run=%s: %v", req.row.RunID, err)
		}
		req.err <- err
	}
}

func (s *Store) saveSync(row Row) error {
	_, err := s.db.Exec(`
		INSERT INTO checkpoints (run_id, request_hash, last_checked_seed, checked_count, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(run_id) DO UPDATE SET
			last_checked_seed = excluded.last_checked_seed,
			checked_count = excluded.checked_count,
			updated_at = excluded.updated_at
	`, row.RunID, row.RequestHash, row.LastCheckedSeed, row.CheckedCount, row.UpdatedAt.UTC().Format(time.RFC3339Nano))
	return err
}

// Save enqueues a checkpoint write and waits for it to land. UpdatedAt
// is set to the current time by the caller before enqueuing.
func (s *Store) Save(row Row) error {
	if s.closed.Load() {
		return fmt.Errorf("checkpoint: store closed")
	}
	req := saveReq{row: row, err: make(chan error, 1)}
	s.ch <- req
	return <-req.err
}

// Load returns the most recent checkpoint for runID, if any.
func (s *Store) Load(runID string) (Row, bool, error) {
	var row Row
	var updatedAt string
	err := s.db.QueryRow(`
		SELECT run_id, request_hash, last_checked_seed, checked_count, updated_at
		FROM checkpoints WHERE run_id = ?
	`, runID).Scan(&row.RunID, &row.RequestHash, &row.LastCheckedSeed, &row.CheckedCount, &updatedAt)
	if err == sql.ErrNoRows {
		return Row{}, false, nil
	}
	if err != nil {
		return Row{}, false, err
	}
	row.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return row, true, nil
}

// LoadByHash returns the most recently updated checkpoint whose
// RequestHash matches hash, if any. Unlike Load, which looks a run up
// by its own ID, this is how a new run (which always gets a fresh
// run ID) can discover that an earlier run with identical parameters
// left off partway through.
func (s *Store) LoadByHash(hash string) (Row, bool, error) {
	var row Row
	var updatedAt string
	err := s.db.QueryRow(`
		SELECT run_id, request_hash, last_checked_seed, checked_count, updated_at
		FROM checkpoints WHERE request_hash = ?
		ORDER BY updated_at DESC LIMIT 1
	`, hash).Scan(&row.RunID, &row.RequestHash, &row.LastCheckedSeed, &row.CheckedCount, &updatedAt)
	if err == sql.ErrNoRows {
		return Row{}, false, nil
	}
	if err != nil {
		return Row{}, false, err
	}
	row.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return row, true, nil
}

// Delete removes a run's checkpoint, typically once the run completes.
func (s *Store) Delete(runID string) error {
	_, err := s.db.Exec(`DELETE FROM checkpoints WHERE run_id = ?`, runID)
	return err
}

// Close drains pending writes and closes the database.
func (s *Store) Close() error {
	var err error
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.ch)
		s.wg.Wait()
		err = s.db.Close()
	})
	return err
}
