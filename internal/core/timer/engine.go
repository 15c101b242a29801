package timer

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"intervalfit/internal/core/model"

	"github.com/sirupsen/logrus"
)

// ErrClosed is returned by operations on a closed Engine.
var ErrClosed = errors.New("timer engine closed")

// countdownSeconds are the remaining-second marks that get a countdown cue.
var countdownSeconds = []int{3, 2, 1}

// SoundPlayer emits an audible cue. Implementations must not block and must
// absorb their own failures.
type SoundPlayer interface {
	Play(kind CueKind)
}

// Vibrator emits a haptic cue with the same contract as SoundPlayer.
type Vibrator interface {
	Vibrate(kind CueKind)
}

// Options contains runtime options for Engine.
type Options struct {
	TickInterval time.Duration
	Clock        Clock
}

// Engine is a state machine that sequences preparation, work and rest phases
// across rounds and cycles.
type Engine struct {
	mu       sync.Mutex
	config   model.TimerConfig
	pending  *model.TimerConfig
	options  Options
	state    RunState
	sound    SoundPlayer
	vibrator Vibrator
	events   []chan Event

	// loop identifies the active tick goroutine; ticks from older loops are ignored.
	loop   uint64
	stopCh chan struct{}

	// generation invalidates countdown callbacks scheduled for an earlier phase.
	generation uint64
	countdowns []Timer

	closed bool
}

// New creates an Engine for the provided configuration.
func New(config model.TimerConfig, options Options) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("new timer engine: %w", err)
	}
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Clock == nil {
		options.Clock = SystemClock
	}

	return &Engine{
		config:  config,
		options: options,
		state:   initialRunState(),
	}, nil
}

// SetSoundPlayer injects the audio cue emitter.
func (engine *Engine) SetSoundPlayer(player SoundPlayer) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.sound = player
}

// SetVibrator injects the vibration cue emitter.
func (engine *Engine) SetVibrator(vibrator Vibrator) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.vibrator = vibrator
}

// Subscribe registers a new observer channel.
func (engine *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		close(ch)
		return ch
	}
	engine.events = append(engine.events, ch)
	return ch
}

// Config returns the configuration currently driving the run.
func (engine *Engine) Config() model.TimerConfig {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.config
}

// Snapshot returns the current run state for rendering.
func (engine *Engine) Snapshot() Snapshot {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.snapshotLocked()
}

// Start begins ticking. A completed run has to be reset before it can start again.
func (engine *Engine) Start() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed || engine.state.Running || engine.state.Phase == PhaseComplete {
		return
	}
	engine.state.Running = true
	engine.state.Paused = false
	engine.startLoopLocked()
	engine.scheduleCountdownsLocked()

	logrus.WithField("mode", engine.config.Mode).Debug("interval timer started")
	engine.emitLocked(EventStateChange, "")
}

// Pause freezes the run without touching its counters.
func (engine *Engine) Pause() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if !engine.state.Running || engine.state.Paused {
		return
	}
	engine.state.Paused = true
	engine.stopLoopLocked()
	engine.cancelCountdownsLocked()
	engine.emitLocked(EventStateChange, "")
}

// Resume continues a paused run from where it stopped.
func (engine *Engine) Resume() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed || !engine.state.Running || !engine.state.Paused {
		return
	}
	engine.state.Paused = false
	engine.startLoopLocked()
	engine.scheduleCountdownsLocked()
	engine.emitLocked(EventStateChange, "")
}

// Reset stops the run and returns it to the first preparation phase.
func (engine *Engine) Reset() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		return
	}
	engine.stopLoopLocked()
	engine.cancelCountdownsLocked()

	previous := engine.snapshotLocked()
	engine.applyPendingLocked()
	engine.state = initialRunState()

	engine.emitSnapshotLocked(Event{
		Type:     EventReset,
		Snapshot: previous,
		At:       engine.options.Clock.Now(),
	})
}

// Skip ends the current phase immediately, as if its time had run out.
func (engine *Engine) Skip() {
	engine.mu.Lock()
	if !engine.state.Running || engine.state.Paused {
		engine.mu.Unlock()
		return
	}
	cue := engine.finishPhaseLocked()
	config, sound, vibrator := engine.config, engine.sound, engine.vibrator
	engine.mu.Unlock()

	playCue(cue, config, sound, vibrator)
}

// UpdateConfig merges a partial configuration. Cue toggles apply at once;
// timing changes made during a run wait for the next phase boundary.
func (engine *Engine) UpdateConfig(patch model.TimerConfigPatch) error {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		return ErrClosed
	}

	base := engine.config
	if engine.pending != nil {
		base = *engine.pending
	}
	merged := base.Apply(patch)
	if err := merged.Validate(); err != nil {
		return fmt.Errorf("update timer config: %w", err)
	}

	if !engine.state.Running || merged.TimingEquals(engine.config) {
		engine.config = merged
		engine.pending = nil
	} else {
		engine.config.SoundEnabled = merged.SoundEnabled
		engine.config.VibrationEnabled = merged.VibrationEnabled
		engine.pending = &merged
	}

	engine.emitLocked(EventConfig, "")
	return nil
}

// Close stops the engine and closes observer channels.
func (engine *Engine) Close() {
	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}
	engine.closed = true
	engine.stopLoopLocked()
	engine.cancelCountdownsLocked()
	engine.state.Running = false
	engine.state.Paused = false
	events := engine.events
	engine.events = nil
	engine.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (engine *Engine) startLoopLocked() {
	engine.stopLoopLocked()
	engine.loop++
	stopCh := make(chan struct{})
	engine.stopCh = stopCh
	go engine.run(engine.loop, engine.options.Clock.NewTicker(engine.options.TickInterval), stopCh)
}

func (engine *Engine) stopLoopLocked() {
	if engine.stopCh != nil {
		close(engine.stopCh)
		engine.stopCh = nil
	}
}

func (engine *Engine) run(loop uint64, ticker Ticker, stopCh <-chan struct{}) {
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C():
			engine.tick(loop)
		}
	}
}

func (engine *Engine) tick(loop uint64) {
	engine.mu.Lock()
	if engine.loop != loop || !engine.state.Running || engine.state.Paused {
		engine.mu.Unlock()
		return
	}

	engine.state.ElapsedInPhase++
	engine.state.ElapsedTotal++

	var cue CueKind
	if engine.state.ElapsedInPhase >= engine.phaseDurationLocked(engine.state.Phase) {
		cue = engine.finishPhaseLocked()
	}
	if engine.state.Running {
		engine.emitLocked(EventProgress, "")
	}
	config, sound, vibrator := engine.config, engine.sound, engine.vibrator
	engine.mu.Unlock()

	playCue(cue, config, sound, vibrator)
}

// finishPhaseLocked moves to the next phase and returns the end-of-phase cue.
func (engine *Engine) finishPhaseLocked() CueKind {
	from := engine.state.Phase
	cue := CueFinish
	if from == PhasePreparation {
		cue = CueNormal
	}

	engine.cancelCountdownsLocked()
	engine.applyPendingLocked()
	engine.emitLocked(EventCue, cue)

	next := engine.nextPhaseLocked()
	logrus.WithFields(logrus.Fields{
		"from":  from,
		"to":    next,
		"round": engine.state.Round,
		"cycle": engine.state.Cycle,
	}).Debug("interval timer phase change")

	engine.state.Phase = next
	if next == PhaseComplete {
		engine.state.Running = false
		engine.state.Paused = false
		engine.stopLoopLocked()
		engine.emitLocked(EventComplete, "")
		return cue
	}

	engine.state.ElapsedInPhase = 0
	engine.scheduleCountdownsLocked()
	engine.emitLocked(EventStateChange, "")
	return cue
}

func (engine *Engine) nextPhaseLocked() Phase {
	switch engine.state.Phase {
	case PhasePreparation:
		return PhaseWork
	case PhaseWork:
		if engine.config.Mode == model.ModeSingle {
			return PhaseComplete
		}
		return PhaseRest
	case PhaseRest:
		engine.state.Round++
		if engine.state.Round <= engine.config.Rounds {
			return PhaseWork
		}
		engine.state.Round = 1
		engine.state.Cycle++
		if engine.state.Cycle > engine.config.Cycles {
			// Counters stay in range on the terminal state.
			engine.state.Cycle = engine.config.Cycles
			engine.state.Round = engine.config.Rounds
			return PhaseComplete
		}
		return PhasePreparation
	default:
		return PhaseComplete
	}
}

func (engine *Engine) phaseDurationLocked(phase Phase) int {
	switch phase {
	case PhasePreparation:
		return engine.config.PreparationSeconds
	case PhaseWork:
		return engine.config.WorkSeconds
	case PhaseRest:
		return engine.config.RestSeconds
	default:
		return 0
	}
}

func (engine *Engine) applyPendingLocked() {
	if engine.pending == nil {
		return
	}
	engine.config = *engine.pending
	engine.pending = nil
}

// scheduleCountdownsLocked arms one callback per countdown mark still ahead in
// the current work or rest phase.
func (engine *Engine) scheduleCountdownsLocked() {
	phase := engine.state.Phase
	if phase != PhaseWork && phase != PhaseRest {
		return
	}

	duration := engine.phaseDurationLocked(phase)
	generation := engine.generation
	for _, remaining := range countdownSeconds {
		mark := duration - remaining
		if mark <= 0 || mark <= engine.state.ElapsedInPhase {
			continue
		}
		delay := time.Duration(mark-engine.state.ElapsedInPhase) * engine.options.TickInterval
		engine.countdowns = append(engine.countdowns, engine.options.Clock.AfterFunc(delay, func() {
			engine.fireCountdown(generation)
		}))
	}
}

func (engine *Engine) cancelCountdownsLocked() {
	engine.generation++
	for _, pending := range engine.countdowns {
		pending.Stop()
	}
	engine.countdowns = nil
}

func (engine *Engine) fireCountdown(generation uint64) {
	engine.mu.Lock()
	if engine.generation != generation || !engine.state.Running || engine.state.Paused {
		engine.mu.Unlock()
		return
	}
	engine.emitLocked(EventCue, CueCountdown)
	config, sound, vibrator := engine.config, engine.sound, engine.vibrator
	engine.mu.Unlock()

	playCue(CueCountdown, config, sound, vibrator)
}

func playCue(kind CueKind, config model.TimerConfig, sound SoundPlayer, vibrator Vibrator) {
	if kind == "" {
		return
	}
	if config.SoundEnabled && sound != nil {
		sound.Play(kind)
	}
	if config.VibrationEnabled && vibrator != nil {
		vibrator.Vibrate(kind)
	}
}

func (engine *Engine) snapshotLocked() Snapshot {
	duration := engine.phaseDurationLocked(engine.state.Phase)
	remaining := duration - engine.state.ElapsedInPhase
	if remaining < 0 {
		remaining = 0
	}
	return Snapshot{
		RunState:      engine.state,
		Mode:          engine.config.Mode,
		Rounds:        engine.config.Rounds,
		Cycles:        engine.config.Cycles,
		PhaseDuration: duration,
		Remaining:     remaining,
		TotalSeconds:  engine.config.TotalSeconds(),
		ConfigPending: engine.pending != nil,
	}
}

func (engine *Engine) emitLocked(eventType EventType, cue CueKind) {
	engine.emitSnapshotLocked(Event{
		Type:     eventType,
		Snapshot: engine.snapshotLocked(),
		Cue:      cue,
		At:       engine.options.Clock.Now(),
	})
}

func (engine *Engine) emitSnapshotLocked(event Event) {
	for _, ch := range engine.events {
		select {
		case ch <- event:
		default:
		}
	}
}
