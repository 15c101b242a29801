package platform

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrAudioUnsupported indicates no audio player is available on this system.
var ErrAudioUnsupported = errors.New("audio playback unsupported")

// AudioPlayer plays WAV encoded sound.
type AudioPlayer interface {
	PlayWAV(ctx context.Context, data []byte) error
}

// NewAudioPlayer returns a platform-specific audio player.
func NewAudioPlayer() AudioPlayer {
	return newAudioPlayer()
}

// commandPlayer hands a temporary WAV file to an external player binary.
type commandPlayer struct {
	path string
	args func(fileName string) []string
}

type unsupportedAudioPlayer struct{}

func (player *commandPlayer) PlayWAV(ctx context.Context, data []byte) error {
	file, err := os.CreateTemp("", "intervalfit-cue-*.wav")
	if err != nil {
		return fmt.Errorf("create cue file: %w", err)
	}
	defer func() {
		_ = os.Remove(file.Name())
	}()

	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		return fmt.Errorf("write cue file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close cue file: %w", err)
	}

	command := exec.CommandContext(ctx, player.path, player.args(file.Name())...)
	output, err := command.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", filepath.Base(player.path), err, strings.TrimSpace(string(output)))
	}
	return nil
}

func (unsupportedAudioPlayer) PlayWAV(context.Context, []byte) error {
	return ErrAudioUnsupported
}
