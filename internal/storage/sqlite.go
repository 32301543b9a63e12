package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/ducminhle1904/bitstring-ga/pkg/optimization"
)

const timeLayout = time.RFC3339Nano

type SQLiteStore struct {
	path string
	now  func() time.Time

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path, now: time.Now}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}
	// one connection: sqlite allows a single writer
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) CreateRun(ctx context.Context, run RunRecord) (RunRecord, error) {
	db, err := s.getDB()
	if err != nil {
		return RunRecord{}, err
	}

	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = s.now().UTC()
	}
	if run.State == "" {
		run.State = optimization.StateInitialized.String()
	}

	config, err := json.Marshal(run.Config)
	if err != nil {
		return RunRecord{}, fmt.Errorf("encode config: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO runs (id, name, fitness, config, state, best_score, best_genome, generations, created_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Name, run.Fitness, string(config), run.State, run.BestScore, run.BestGenome,
		run.Generations, run.CreatedAt.Format(timeLayout), formatTime(run.FinishedAt))
	if err != nil {
		return RunRecord{}, err
	}
	return run, nil
}

func (s *SQLiteStore) AppendGeneration(ctx context.Context, runID string, stats optimization.GenerationStats) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE runs SET state = ? WHERE id = ?`, optimization.StateRunning.String(), runID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return ErrRunNotFound
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO generations (run_id, generation, best_score, mean_score, median_score, min_score, distinct_count, best_genome)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, generation) DO UPDATE SET
			best_score = excluded.best_score,
			mean_score = excluded.mean_score,
			median_score = excluded.median_score,
			min_score = excluded.min_score,
			distinct_count = excluded.distinct_count,
			best_genome = excluded.best_genome
	`, runID, stats.Generation, stats.BestScore, stats.MeanScore, stats.MedianScore, stats.MinScore,
		stats.Distinct, stats.BestGenome.String())
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE runs SET generations = (SELECT COUNT(*) FROM generations WHERE run_id = ?) WHERE id = ?
	`, runID, runID); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) FinishRun(ctx context.Context, runID string, state optimization.State, best optimization.ScoredGenome) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	res, err := db.ExecContext(ctx, `
		UPDATE runs SET
			state = ?,
			best_score = ?,
			best_genome = ?,
			generations = (SELECT COUNT(*) FROM generations WHERE run_id = ?),
			finished_at = ?
		WHERE id = ?
	`, state.String(), best.Score, best.Genome.String(), runID, s.now().UTC().Format(timeLayout), runID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRunNotFound
	}
	return nil
}

func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (RunRecord, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return RunRecord{}, false, err
	}

	run, err := scanRun(db.QueryRowContext(ctx, selectRuns+` WHERE id = ?`, runID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RunRecord{}, false, nil
		}
		return RunRecord{}, false, err
	}
	return run, true, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context) ([]RunRecord, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, selectRuns+` ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (s *SQLiteStore) ListGenerations(ctx context.Context, runID string) ([]optimization.GenerationStats, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	var exists int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE id = ?`, runID).Scan(&exists); err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, ErrRunNotFound
	}

	rows, err := db.QueryContext(ctx, `
		SELECT generation, best_score, mean_score, median_score, min_score, distinct_count, best_genome
		FROM generations WHERE run_id = ? ORDER BY generation
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]optimization.GenerationStats, 0)
	for rows.Next() {
		var (
			stats optimization.GenerationStats
			bits  string
		)
		if err := rows.Scan(&stats.Generation, &stats.BestScore, &stats.MeanScore, &stats.MedianScore,
			&stats.MinScore, &stats.Distinct, &bits); err != nil {
			return nil, err
		}
		if stats.BestGenome, err = decodeGenome(bits); err != nil {
			return nil, fmt.Errorf("decode genome of generation %d: %w", stats.Generation, err)
		}
		history = append(history, stats)
	}
	return history, rows.Err()
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	return s.db, nil
}

const selectRuns = `
	SELECT id, name, fitness, config, state, best_score, best_genome, generations, created_at, finished_at
	FROM runs`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (RunRecord, error) {
	var (
		run                 RunRecord
		config              string
		createdAt, finished string
	)
	if err := row.Scan(&run.ID, &run.Name, &run.Fitness, &config, &run.State, &run.BestScore,
		&run.BestGenome, &run.Generations, &createdAt, &finished); err != nil {
		return RunRecord{}, err
	}
	if err := json.Unmarshal([]byte(config), &run.Config); err != nil {
		return RunRecord{}, fmt.Errorf("decode config of run %s: %w", run.ID, err)
	}

	var err error
	if run.CreatedAt, err = parseTime(createdAt); err != nil {
		return RunRecord{}, err
	}
	if run.FinishedAt, err = parseTime(finished); err != nil {
		return RunRecord{}, err
	}
	return run, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(timeLayout, value)
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			fitness TEXT NOT NULL,
			config TEXT NOT NULL,
			state TEXT NOT NULL,
			best_score REAL NOT NULL DEFAULT 0,
			best_genome TEXT NOT NULL DEFAULT '',
			generations INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			finished_at TEXT NOT NULL DEFAULT ''
		);
		CREATE TABLE IF NOT EXISTS generations (
			run_id TEXT NOT NULL REFERENCES runs(id),
			generation INTEGER NOT NULL,
			best_score REAL NOT NULL,
			mean_score REAL NOT NULL,
			median_score REAL NOT NULL,
			min_score REAL NOT NULL,
			distinct_count INTEGER NOT NULL,
			best_genome TEXT NOT NULL,
			PRIMARY KEY (run_id, generation)
		);
	`)
	return err
}
