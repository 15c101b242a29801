package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerConfig_Validate(t *testing.T) {
	valid := Preset(ModeTabata)

	tests := []struct {
		name    string
		mutate  func(*TimerConfig)
		wantErr bool
	}{
		{"preset is valid", func(*TimerConfig) {}, false},
		{"unknown mode", func(c *TimerConfig) { c.Mode = "yoga" }, true},
		{"empty mode", func(c *TimerConfig) { c.Mode = "" }, true},
		{"zero work", func(c *TimerConfig) { c.WorkSeconds = 0 }, true},
		{"negative rest", func(c *TimerConfig) { c.RestSeconds = -1 }, true},
		{"zero preparation", func(c *TimerConfig) { c.PreparationSeconds = 0 }, true},
		{"zero rounds", func(c *TimerConfig) { c.Rounds = 0 }, true},
		{"zero cycles", func(c *TimerConfig) { c.Cycles = 0 }, true},
		{"cue toggles off", func(c *TimerConfig) { c.SoundEnabled, c.VibrationEnabled = false, false }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid
			tt.mutate(&config)
			err := config.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPreset_AllModesValid(t *testing.T) {
	for _, mode := range Modes {
		config := Preset(mode)
		assert.Equal(t, mode, config.Mode)
		assert.NoError(t, config.Validate(), "preset %s", mode)
	}
	assert.Equal(t, ModeTabata, Preset("unknown").Mode)
}

func TestTimerConfig_Apply(t *testing.T) {
	base := Preset(ModeTabata)
	work := 45
	sound := false

	updated := base.Apply(TimerConfigPatch{WorkSeconds: &work, SoundEnabled: &sound})

	assert.Equal(t, 45, updated.WorkSeconds)
	assert.False(t, updated.SoundEnabled)
	assert.Equal(t, base.RestSeconds, updated.RestSeconds)
	assert.Equal(t, base.Rounds, updated.Rounds)
	assert.Equal(t, 20, base.WorkSeconds, "receiver must not change")
}

func TestTimerConfigPatch_HasTiming(t *testing.T) {
	sound := true
	rounds := 3
	assert.False(t, TimerConfigPatch{}.HasTiming())
	assert.False(t, TimerConfigPatch{SoundEnabled: &sound}.HasTiming())
	assert.True(t, TimerConfigPatch{Rounds: &rounds}.HasTiming())
}

func TestTimerConfig_TimingEquals(t *testing.T) {
	base := Preset(ModeHIIT)
	cosmetic := base
	cosmetic.SoundEnabled = !base.SoundEnabled
	assert.True(t, base.TimingEquals(cosmetic))

	timing := base
	timing.Cycles++
	assert.False(t, base.TimingEquals(timing))
}

func TestTimerConfig_TotalSeconds(t *testing.T) {
	tabata := TimerConfig{Mode: ModeTabata, WorkSeconds: 20, RestSeconds: 10, PreparationSeconds: 5, Rounds: 8, Cycles: 1}
	require.NoError(t, tabata.Validate())
	assert.Equal(t, 245, tabata.TotalSeconds())

	single := TimerConfig{Mode: ModeSingle, WorkSeconds: 30, RestSeconds: 60, PreparationSeconds: 5, Rounds: 1, Cycles: 1}
	assert.Equal(t, 35, single.TotalSeconds())

	twoCycles := TimerConfig{Mode: ModeCircuit, WorkSeconds: 10, RestSeconds: 5, PreparationSeconds: 3, Rounds: 2, Cycles: 2}
	assert.Equal(t, 2*3+2*2*15, twoCycles.TotalSeconds())
}
