package preferences

import (
	"testing"

	"intervalfit/internal/core/model"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()
	assert.NoError(t, settings.Timer.Validate())
	assert.True(t, settings.RecordHistory)
}

func TestSettings_TimerPatchRoundTrip(t *testing.T) {
	settings := DefaultSettings()
	settings.Timer = model.Preset(model.ModeCircuit)
	settings.Timer.SoundEnabled = false

	applied := model.Preset(model.ModeSingle).Apply(settings.TimerPatch())
	assert.Equal(t, settings.Timer, applied)
}
