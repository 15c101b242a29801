package model

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig marks a timer configuration that cannot be run.
var ErrInvalidConfig = errors.New("invalid timer config")

// Mode labels a timer configuration. Only ModeSingle changes the phase flow.
type Mode string

const (
	ModeSingle   Mode = "single"
	ModeSequence Mode = "sequence"
	ModeTabata   Mode = "tabata"
	ModeHIIT     Mode = "hiit"
	ModeCircuit  Mode = "circuit"
)

// Modes lists every known mode in display order.
var Modes = []Mode{ModeTabata, ModeHIIT, ModeCircuit, ModeSequence, ModeSingle}

// IsValid reports whether the mode is known.
func (mode Mode) IsValid() bool {
	switch mode {
	case ModeSingle, ModeSequence, ModeTabata, ModeHIIT, ModeCircuit:
		return true
	default:
		return false
	}
}

// TimerConfig contains the settings for one interval timer run.
type TimerConfig struct {
	Mode               Mode
	WorkSeconds        int
	RestSeconds        int
	PreparationSeconds int
	Rounds             int
	Cycles             int

	SoundEnabled     bool
	VibrationEnabled bool
}

// TimerConfigPatch is a partial TimerConfig. Nil fields are left unchanged.
type TimerConfigPatch struct {
	Mode               *Mode
	WorkSeconds        *int
	RestSeconds        *int
	PreparationSeconds *int
	Rounds             *int
	Cycles             *int
	SoundEnabled       *bool
	VibrationEnabled   *bool
}

// HasTiming reports whether the patch touches fields that affect phase timing.
func (patch TimerConfigPatch) HasTiming() bool {
	return patch.Mode != nil || patch.WorkSeconds != nil || patch.RestSeconds != nil ||
		patch.PreparationSeconds != nil || patch.Rounds != nil || patch.Cycles != nil
}

// Validate checks that the configuration can be run.
func (config TimerConfig) Validate() error {
	if !config.Mode.IsValid() {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, config.Mode)
	}
	if config.PreparationSeconds < 1 {
		return fmt.Errorf("%w: preparation must be at least 1 second", ErrInvalidConfig)
	}
	if config.WorkSeconds < 1 {
		return fmt.Errorf("%w: work must be at least 1 second", ErrInvalidConfig)
	}
	if config.RestSeconds < 1 {
		return fmt.Errorf("%w: rest must be at least 1 second", ErrInvalidConfig)
	}
	if config.Rounds < 1 {
		return fmt.Errorf("%w: rounds must be at least 1", ErrInvalidConfig)
	}
	if config.Cycles < 1 {
		return fmt.Errorf("%w: cycles must be at least 1", ErrInvalidConfig)
	}
	return nil
}

// Apply returns a copy of the configuration with the patch merged in.
func (config TimerConfig) Apply(patch TimerConfigPatch) TimerConfig {
	if patch.Mode != nil {
		config.Mode = *patch.Mode
	}
	if patch.WorkSeconds != nil {
		config.WorkSeconds = *patch.WorkSeconds
	}
	if patch.RestSeconds != nil {
		config.RestSeconds = *patch.RestSeconds
	}
	if patch.PreparationSeconds != nil {
		config.PreparationSeconds = *patch.PreparationSeconds
	}
	if patch.Rounds != nil {
		config.Rounds = *patch.Rounds
	}
	if patch.Cycles != nil {
		config.Cycles = *patch.Cycles
	}
	if patch.SoundEnabled != nil {
		config.SoundEnabled = *patch.SoundEnabled
	}
	if patch.VibrationEnabled != nil {
		config.VibrationEnabled = *patch.VibrationEnabled
	}
	return config
}

// TimingEquals compares the fields that drive phase timing and ignores cue toggles.
func (config TimerConfig) TimingEquals(other TimerConfig) bool {
	return config.Mode == other.Mode &&
		config.WorkSeconds == other.WorkSeconds &&
		config.RestSeconds == other.RestSeconds &&
		config.PreparationSeconds == other.PreparationSeconds &&
		config.Rounds == other.Rounds &&
		config.Cycles == other.Cycles
}

// TotalSeconds returns the length of a full run.
func (config TimerConfig) TotalSeconds() int {
	if config.Mode == ModeSingle {
		return config.PreparationSeconds + config.WorkSeconds
	}
	// One preparation phase per cycle.
	perCycle := config.Rounds * (config.WorkSeconds + config.RestSeconds)
	return config.Cycles*config.PreparationSeconds + config.Cycles*perCycle
}
