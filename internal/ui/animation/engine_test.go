package animation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type highlightRecorder struct {
	mu     sync.Mutex
	states []bool
}

func (recorder *highlightRecorder) set(on bool) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.states = append(recorder.states, on)
}

func (recorder *highlightRecorder) snapshot() []bool {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	return append([]bool(nil), recorder.states...)
}

func TestEngine_PulseAlternatesAndEndsOff(t *testing.T) {
	recorder := &highlightRecorder{}
	engine := New(DefaultConfig(), recorder.set)
	require.True(t, engine.Supported())

	engine.Pulse([]time.Duration{time.Millisecond, time.Millisecond, time.Millisecond})
	engine.wg.Wait()

	assert.Equal(t, []bool{true, false, true, false}, recorder.snapshot())
}

func TestEngine_PulseWithoutTarget(t *testing.T) {
	engine := New(DefaultConfig(), nil)
	assert.False(t, engine.Supported())
	engine.Pulse([]time.Duration{time.Millisecond})
	engine.Close()
}

func TestEngine_NewPulseCancelsPrevious(t *testing.T) {
	recorder := &highlightRecorder{}
	engine := New(DefaultConfig(), recorder.set)

	engine.Pulse([]time.Duration{time.Hour})
	engine.Pulse([]time.Duration{time.Millisecond})
	engine.Close()

	states := recorder.snapshot()
	require.NotEmpty(t, states)
	assert.False(t, states[len(states)-1])
}

func TestEngine_BlinkUntilStopped(t *testing.T) {
	recorder := &highlightRecorder{}
	engine := New(Config{BlinkOn: time.Millisecond, BlinkOff: time.Millisecond}, recorder.set)

	engine.StartBlink(context.Background())
	assert.Eventually(t, func() bool { return len(recorder.snapshot()) >= 4 }, time.Second, time.Millisecond)
	engine.Close()

	states := recorder.snapshot()
	assert.False(t, states[len(states)-1])
}

func TestEngine_BlinkStopsWithContext(t *testing.T) {
	recorder := &highlightRecorder{}
	engine := New(Config{BlinkOn: time.Hour, BlinkOff: time.Hour}, recorder.set)

	ctx, cancel := context.WithCancel(context.Background())
	engine.StartBlink(ctx)
	cancel()
	engine.wg.Wait()

	assert.Equal(t, []bool{true, false}, recorder.snapshot())
}
