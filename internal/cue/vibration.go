package cue

import (
	"sync"
	"time"

	"intervalfit/internal/core/timer"

	"github.com/sirupsen/logrus"
)

// Haptic is a device that can play an on/off pulse pattern.
type Haptic interface {
	Supported() bool
	Pulse(pattern []time.Duration)
}

// Vibration checks device capability before triggering a pattern per cue.
type Vibration struct {
	device      Haptic
	unsupported sync.Once
}

// NewVibration creates a vibration emitter for the device.
func NewVibration(device Haptic) *Vibration {
	return &Vibration{device: device}
}

// Vibrate triggers the pattern for kind when the device supports it.
func (vibration *Vibration) Vibrate(kind timer.CueKind) {
	if vibration.device == nil || !vibration.device.Supported() {
		vibration.unsupported.Do(func() {
			logrus.Info("vibration cues unsupported on this device")
		})
		return
	}
	vibration.device.Pulse(PatternFor(kind))
}

// PatternFor returns alternating on/off durations, starting with on.
func PatternFor(kind timer.CueKind) []time.Duration {
	switch kind {
	case timer.CueCountdown:
		return []time.Duration{80 * time.Millisecond}
	case timer.CueFinish:
		return []time.Duration{300 * time.Millisecond, 100 * time.Millisecond, 300 * time.Millisecond}
	default:
		return []time.Duration{150 * time.Millisecond}
	}
}
