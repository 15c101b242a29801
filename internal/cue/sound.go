package cue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"intervalfit/internal/core/timer"
	"intervalfit/internal/platform"

	"github.com/sirupsen/logrus"
)

const defaultPlayTimeout = 3 * time.Second

// AssetSource loads pre-recorded WAV data by cue name.
type AssetSource func(name string) ([]byte, error)

// Sound plays a recorded asset per cue and falls back to a synthesized tone.
// Failures are logged and dropped.
type Sound struct {
	player      platform.AudioPlayer
	assets      AssetSource
	sampleRate  int
	timeout     time.Duration
	wg          sync.WaitGroup
	unsupported sync.Once
}

// NewSound creates a sound emitter. assets may be nil to always synthesize.
func NewSound(player platform.AudioPlayer, assets AssetSource) *Sound {
	return &Sound{
		player:     player,
		assets:     assets,
		sampleRate: DefaultSampleRate,
		timeout:    defaultPlayTimeout,
	}
}

// Play emits the cue in the background.
func (sound *Sound) Play(kind timer.CueKind) {
	sound.wg.Add(1)
	go func() {
		defer sound.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), sound.timeout)
		defer cancel()
		sound.emit(ctx, kind)
	}()
}

// Wait blocks until in-flight cues have finished.
func (sound *Sound) Wait() {
	sound.wg.Wait()
}

// emit reports whether either path produced sound.
func (sound *Sound) emit(ctx context.Context, kind timer.CueKind) bool {
	if sound.player == nil {
		return false
	}

	err := sound.playAsset(ctx, kind)
	if err == nil {
		return true
	}
	if errors.Is(err, platform.ErrAudioUnsupported) {
		sound.warnUnsupported(err)
		return false
	}
	logrus.WithError(err).WithField("cue", kind).Debug("cue asset failed, synthesizing tone")

	err = sound.player.PlayWAV(ctx, Synthesize(ToneFor(kind), sound.sampleRate))
	switch {
	case err == nil:
		return true
	case errors.Is(err, platform.ErrAudioUnsupported):
		sound.warnUnsupported(err)
	default:
		logrus.WithError(err).WithField("cue", kind).Warn("cue sound failed")
	}
	return false
}

func (sound *Sound) playAsset(ctx context.Context, kind timer.CueKind) error {
	if sound.assets == nil {
		return fmt.Errorf("no cue assets")
	}
	data, err := sound.assets(string(kind))
	if err != nil {
		return fmt.Errorf("load cue asset: %w", err)
	}
	return sound.player.PlayWAV(ctx, data)
}

func (sound *Sound) warnUnsupported(err error) {
	sound.unsupported.Do(func() {
		logrus.WithError(err).Warn("sound cues disabled")
	})
}
