package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"intervalfit/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHistory(t *testing.T) *HistoryStore {
	t.Helper()
	store, err := OpenHistory(context.Background(), HistoryPath(filepath.Join(t.TempDir(), "data")))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRun(started time.Time, completed bool) WorkoutRun {
	return WorkoutRun{
		Mode:           model.ModeTabata,
		StartedAt:      started,
		EndedAt:        started.Add(245 * time.Second),
		PlannedSeconds: 245,
		ElapsedSeconds: 245,
		Rounds:         8,
		Cycles:         1,
		RoundReached:   8,
		CycleReached:   1,
		Completed:      completed,
	}
}

func TestHistoryStore_RecordAssignsID(t *testing.T) {
	store := newTestHistory(t)
	started := time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC)

	run, err := store.Record(context.Background(), sampleRun(started, true))
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)

	runs, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID, runs[0].ID)
	assert.True(t, runs[0].StartedAt.Equal(started))
	assert.Equal(t, model.ModeTabata, runs[0].Mode)
	assert.True(t, runs[0].Completed)
}

func TestHistoryStore_RecentNewestFirst(t *testing.T) {
	store := newTestHistory(t)
	base := time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := store.Record(context.Background(), sampleRun(base.Add(time.Duration(i)*time.Hour), i%2 == 0))
		require.NoError(t, err)
	}

	runs, err := store.Recent(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.True(t, runs[0].StartedAt.After(runs[1].StartedAt))
	assert.True(t, runs[1].StartedAt.After(runs[2].StartedAt))
}

func TestHistoryStore_Stats(t *testing.T) {
	store := newTestHistory(t)
	stats, err := store.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, HistoryStats{}, stats)

	base := time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC)
	aborted := sampleRun(base, false)
	aborted.ElapsedSeconds = 40
	_, err = store.Record(context.Background(), aborted)
	require.NoError(t, err)
	_, err = store.Record(context.Background(), sampleRun(base.Add(time.Hour), true))
	require.NoError(t, err)

	stats, err = store.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, HistoryStats{Runs: 2, Completed: 1, TotalSeconds: 285}, stats)
}

func TestHistoryStore_RejectsBackwardsRun(t *testing.T) {
	store := newTestHistory(t)
	run := sampleRun(time.Now(), true)
	run.EndedAt = run.StartedAt.Add(-time.Second)

	_, err := store.Record(context.Background(), run)
	assert.Error(t, err)
}

func TestHistoryStore_DuplicateID(t *testing.T) {
	store := newTestHistory(t)
	run, err := store.Record(context.Background(), sampleRun(time.Now(), true))
	require.NoError(t, err)

	_, err = store.Record(context.Background(), run)
	assert.Error(t, err)
}

func TestRetryOp(t *testing.T) {
	cfg := retryConfig{maxRetries: 2, baseDelay: time.Millisecond, maxDelay: 2 * time.Millisecond}

	calls := 0
	err := retryOp(cfg, func() error {
		calls++
		if calls < 3 {
			return errors.New("database is locked")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)

	calls = 0
	err = retryOp(cfg, func() error {
		calls++
		return errors.New("constraint failed")
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}
