// Package history turns timer engine events into persisted workout runs.
package history

import (
	"context"
	"sync"
	"time"

	"intervalfit/internal/core/timer"
	"intervalfit/internal/storage"

	"github.com/sirupsen/logrus"
)

// Store persists finished runs.
type Store interface {
	Record(ctx context.Context, run storage.WorkoutRun) (storage.WorkoutRun, error)
}

// Recorder follows one engine's event stream and stores a run each time it
// completes or is reset after making progress.
type Recorder struct {
	mu      sync.Mutex
	store   Store
	enabled bool
	started time.Time

	onRecorded func(storage.WorkoutRun)
}

// NewRecorder creates a Recorder writing to store.
func NewRecorder(store Store, enabled bool) *Recorder {
	return &Recorder{store: store, enabled: enabled}
}

// SetEnabled toggles persistence without dropping the in-flight run start.
func (recorder *Recorder) SetEnabled(enabled bool) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.enabled = enabled
}

// OnRecorded sets a handler called after each successful write.
func (recorder *Recorder) OnRecorded(handler func(storage.WorkoutRun)) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.onRecorded = handler
}

// Run consumes events until ctx is done or the channel closes.
func (recorder *Recorder) Run(ctx context.Context, events <-chan timer.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			recorder.Handle(ctx, event)
		}
	}
}

// Handle processes a single event.
func (recorder *Recorder) Handle(ctx context.Context, event timer.Event) {
	run, ok := recorder.observe(event)
	if !ok {
		return
	}

	stored, err := recorder.store.Record(ctx, run)
	if err != nil {
		logrus.WithError(err).Warn("failed to record workout run")
		return
	}
	logrus.WithFields(logrus.Fields{
		"id":        stored.ID,
		"mode":      stored.Mode,
		"elapsed":   stored.ElapsedSeconds,
		"completed": stored.Completed,
	}).Info("workout run recorded")

	recorder.mu.Lock()
	handler := recorder.onRecorded
	recorder.mu.Unlock()
	if handler != nil {
		handler(stored)
	}
}

func (recorder *Recorder) observe(event timer.Event) (storage.WorkoutRun, bool) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()

	snapshot := event.Snapshot
	switch event.Type {
	case timer.EventComplete:
		return recorder.finishLocked(event, true)
	case timer.EventReset:
		// A completed run was already stored on EventComplete.
		if snapshot.ElapsedTotal == 0 || snapshot.Phase == timer.PhaseComplete {
			recorder.started = time.Time{}
			return storage.WorkoutRun{}, false
		}
		return recorder.finishLocked(event, false)
	default:
		if snapshot.Running && recorder.started.IsZero() {
			recorder.started = event.At.Add(-time.Duration(snapshot.ElapsedTotal) * time.Second)
		}
		return storage.WorkoutRun{}, false
	}
}

func (recorder *Recorder) finishLocked(event timer.Event, completed bool) (storage.WorkoutRun, bool) {
	snapshot := event.Snapshot
	started := recorder.started
	recorder.started = time.Time{}
	if !recorder.enabled {
		return storage.WorkoutRun{}, false
	}
	if started.IsZero() || started.After(event.At) {
		started = event.At.Add(-time.Duration(snapshot.ElapsedTotal) * time.Second)
	}

	return storage.WorkoutRun{
		Mode:           snapshot.Mode,
		StartedAt:      started,
		EndedAt:        event.At,
		PlannedSeconds: snapshot.TotalSeconds,
		ElapsedSeconds: snapshot.ElapsedTotal,
		Rounds:         snapshot.Rounds,
		Cycles:         snapshot.Cycles,
		RoundReached:   snapshot.Round,
		CycleReached:   snapshot.Cycle,
		Completed:      completed,
	}, true
}
