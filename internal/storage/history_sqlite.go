package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"intervalfit/internal/core/model"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const historyFileName = "history.db"

// WorkoutRun is one finished or abandoned timer run.
type WorkoutRun struct {
	ID             string
	Mode           model.Mode
	StartedAt      time.Time
	EndedAt        time.Time
	PlannedSeconds int
	ElapsedSeconds int
	Rounds         int
	Cycles         int
	RoundReached   int
	CycleReached   int
	Completed      bool
}

// HistoryStats aggregates all recorded runs.
type HistoryStats struct {
	Runs         int
	Completed    int
	TotalSeconds int
}

// HistoryStore persists workout runs in SQLite.
type HistoryStore struct {
	db *sql.DB
}

// HistoryPath returns the history database location inside dir.
func HistoryPath(dir string) string {
	return filepath.Join(dir, historyFileName)
}

// OpenHistory opens (or creates) the history database and its schema.
func OpenHistory(ctx context.Context, path string) (*HistoryStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &HistoryStore{db: db}
	if err := store.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history db: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (store *HistoryStore) Close() error { return store.db.Close() }

func (store *HistoryStore) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS workout_runs (
		id              TEXT PRIMARY KEY,
		mode            TEXT NOT NULL,
		started_at      TEXT NOT NULL,
		ended_at        TEXT NOT NULL,
		planned_seconds INTEGER NOT NULL,
		elapsed_seconds INTEGER NOT NULL,
		rounds          INTEGER NOT NULL,
		cycles          INTEGER NOT NULL,
		round_reached   INTEGER NOT NULL,
		cycle_reached   INTEGER NOT NULL,
		completed       INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_workout_runs_started ON workout_runs(started_at);
	`
	_, err := store.db.ExecContext(ctx, schema)
	return err
}

// Record stores a run, assigning an ID when it has none.
func (store *HistoryStore) Record(ctx context.Context, run WorkoutRun) (WorkoutRun, error) {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.EndedAt.Before(run.StartedAt) {
		return run, errors.New("record workout run: ended before it started")
	}

	err := retryOnContention(func() error {
		_, err := store.db.ExecContext(ctx,
			`INSERT INTO workout_runs (id, mode, started_at, ended_at, planned_seconds, elapsed_seconds,
				rounds, cycles, round_reached, cycle_reached, completed)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, string(run.Mode),
			run.StartedAt.UTC().Format(time.RFC3339Nano), run.EndedAt.UTC().Format(time.RFC3339Nano),
			run.PlannedSeconds, run.ElapsedSeconds, run.Rounds, run.Cycles,
			run.RoundReached, run.CycleReached, boolToInt(run.Completed),
		)
		return err
	})
	if err != nil {
		return run, fmt.Errorf("record workout run: %w", err)
	}
	return run, nil
}

// Recent returns up to limit runs, newest first.
func (store *HistoryStore) Recent(ctx context.Context, limit int) ([]WorkoutRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := store.db.QueryContext(ctx,
		`SELECT id, mode, started_at, ended_at, planned_seconds, elapsed_seconds,
			rounds, cycles, round_reached, cycle_reached, completed
		 FROM workout_runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query workout runs: %w", err)
	}
	defer rows.Close()

	var runs []WorkoutRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workout runs: %w", err)
	}
	return runs, nil
}

// Stats aggregates every recorded run.
func (store *HistoryStore) Stats(ctx context.Context) (HistoryStats, error) {
	var stats HistoryStats
	row := store.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(completed), 0), COALESCE(SUM(elapsed_seconds), 0) FROM workout_runs`)
	if err := row.Scan(&stats.Runs, &stats.Completed, &stats.TotalSeconds); err != nil {
		return stats, fmt.Errorf("query workout stats: %w", err)
	}
	return stats, nil
}

func scanRun(rows *sql.Rows) (WorkoutRun, error) {
	var (
		run       WorkoutRun
		mode      string
		started   string
		ended     string
		completed int
	)
	err := rows.Scan(&run.ID, &mode, &started, &ended, &run.PlannedSeconds, &run.ElapsedSeconds,
		&run.Rounds, &run.Cycles, &run.RoundReached, &run.CycleReached, &completed)
	if err != nil {
		return run, fmt.Errorf("scan workout run: %w", err)
	}

	run.Mode = model.Mode(mode)
	run.Completed = completed != 0
	if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return run, fmt.Errorf("parse started_at: %w", err)
	}
	if run.EndedAt, err = time.Parse(time.RFC3339Nano, ended); err != nil {
		return run, fmt.Errorf("parse ended_at: %w", err)
	}
	return run, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
