package timer

import (
	"time"

	"intervalfit/internal/core/model"
)

// Phase is the current step of an interval run.
type Phase string

const (
	PhasePreparation Phase = "preparation"
	PhaseWork        Phase = "work"
	PhaseRest        Phase = "rest"
	PhaseComplete    Phase = "complete"
)

// CueKind classifies an audio or vibration signal.
type CueKind string

const (
	CueNormal    CueKind = "normal"
	CueCountdown CueKind = "countdown"
	CueFinish    CueKind = "finish"
)

// EventType defines the type of Engine event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventProgress    EventType = "progress"
	EventCue         EventType = "cue"
	EventComplete    EventType = "complete"
	EventReset       EventType = "reset"
	EventConfig      EventType = "config"
)

// RunState is the mutable progress of a run.
type RunState struct {
	Running        bool
	Paused         bool
	ElapsedInPhase int
	ElapsedTotal   int
	Phase          Phase
	Round          int
	Cycle          int
}

func initialRunState() RunState {
	return RunState{
		Phase: PhasePreparation,
		Round: 1,
		Cycle: 1,
	}
}

// Snapshot is a read-only view of the engine for rendering.
type Snapshot struct {
	RunState

	Mode          model.Mode
	Rounds        int
	Cycles        int
	PhaseDuration int
	Remaining     int
	TotalSeconds  int
	// ConfigPending is set while a timing change waits for the next phase boundary.
	ConfigPending bool
}

// Event represents an Engine update for observers.
// For EventReset the snapshot holds the state just before the reset.
type Event struct {
	Type     EventType
	Snapshot Snapshot
	Cue      CueKind
	At       time.Time
}
