package animation

import (
	"context"
	"sync"
	"time"
)

// Engine drives on/off highlight sequences on a single target. Only one
// sequence runs at a time; starting a new one cancels the previous.
type Engine struct {
	mu        sync.Mutex
	config    Config
	highlight func(bool)
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// New creates a new animation engine. highlight receives true when the target
// should be emphasized and false when it returns to normal.
func New(config Config, highlight func(bool)) *Engine {
	return &Engine{
		config:    config,
		highlight: highlight,
	}
}

// Supported reports whether the engine has a target to flash.
func (engine *Engine) Supported() bool {
	return engine.highlight != nil
}

// Pulse plays pattern as alternating on/off durations, starting with on.
func (engine *Engine) Pulse(pattern []time.Duration) {
	if len(pattern) == 0 || engine.highlight == nil {
		return
	}
	steps := append([]time.Duration(nil), pattern...)
	engine.start(context.Background(), func(runCtx context.Context) {
		defer engine.highlight(false)
		for i, duration := range steps {
			engine.highlight(i%2 == 0)
			if !sleepWithContext(runCtx, duration) {
				return
			}
		}
	})
}

// StartBlink toggles the highlight until ctx is done or Stop is called.
func (engine *Engine) StartBlink(ctx context.Context) {
	if engine.highlight == nil {
		return
	}
	engine.start(ctx, func(runCtx context.Context) {
		defer engine.highlight(false)
		for {
			engine.highlight(true)
			if !sleepWithContext(runCtx, engine.config.BlinkOn) {
				return
			}
			engine.highlight(false)
			if !sleepWithContext(runCtx, engine.config.BlinkOff) {
				return
			}
		}
	})
}

// Stop terminates any active sequence.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
}

// Close stops the active sequence and waits for it to unwind.
func (engine *Engine) Close() {
	engine.Stop()
	engine.wg.Wait()
}

func (engine *Engine) start(parent context.Context, run func(context.Context)) {
	engine.mu.Lock()
	if engine.cancel != nil {
		engine.cancel()
	}
	runCtx, cancel := context.WithCancel(parent)
	engine.cancel = cancel
	engine.wg.Add(1)
	engine.mu.Unlock()

	go func() {
		defer engine.wg.Done()
		run(runCtx)
	}()
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
