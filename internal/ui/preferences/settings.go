package preferences

import (
	"intervalfit/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	Timer model.TimerConfig

	Fullscreen    bool
	RecordHistory bool
}

// DefaultSettings returns default settings for IntervalFit.
func DefaultSettings() Settings {
	return Settings{
		Timer:         model.DefaultConfig(),
		Fullscreen:    false,
		RecordHistory: true,
	}
}

// TimerPatch converts settings to a full timer config patch.
func (settings Settings) TimerPatch() model.TimerConfigPatch {
	config := settings.Timer
	return model.TimerConfigPatch{
		Mode:               &config.Mode,
		WorkSeconds:        &config.WorkSeconds,
		RestSeconds:        &config.RestSeconds,
		PreparationSeconds: &config.PreparationSeconds,
		Rounds:             &config.Rounds,
		Cycles:             &config.Cycles,
		SoundEnabled:       &config.SoundEnabled,
		VibrationEnabled:   &config.VibrationEnabled,
	}
}
