package preferences

import (
	"testing"

	"intervalfit/internal/core/model"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindow_SaveCollectsFields(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	var saved *Settings
	prefs := New(app, DefaultSettings(), func(settings Settings) { saved = &settings })

	prefs.work.SetText("30")
	prefs.rounds.SetText("4")
	prefs.sound.SetChecked(false)
	prefs.recordHistory.SetChecked(false)
	prefs.handleSave()

	require.NotNil(t, saved)
	assert.Equal(t, 30, saved.Timer.WorkSeconds)
	assert.Equal(t, 4, saved.Timer.Rounds)
	assert.False(t, saved.Timer.SoundEnabled)
	assert.False(t, saved.RecordHistory)
	assert.Equal(t, model.ModeTabata, saved.Timer.Mode)
}

func TestWindow_ModeChangeLoadsPreset(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	prefs := New(app, DefaultSettings(), nil)
	prefs.mode.SetSelected(string(model.ModeCircuit))

	circuit := model.Preset(model.ModeCircuit)
	settings, err := prefs.collect()
	require.NoError(t, err)
	assert.Equal(t, circuit.Mode, settings.Timer.Mode)
	assert.Equal(t, circuit.WorkSeconds, settings.Timer.WorkSeconds)
	assert.Equal(t, circuit.Cycles, settings.Timer.Cycles)
}

func TestWindow_InvalidInputIsNotSaved(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	called := false
	prefs := New(app, DefaultSettings(), func(Settings) { called = true })

	prefs.rest.SetText("0")
	prefs.handleSave()
	assert.False(t, called)
	assert.Contains(t, prefs.errorLabel.Text, "rest")

	prefs.rest.SetText("ten")
	prefs.handleSave()
	assert.False(t, called)
}

func TestParsePositiveInt(t *testing.T) {
	value, ok := parsePositiveInt("12")
	assert.True(t, ok)
	assert.Equal(t, 12, value)

	_, ok = parsePositiveInt("0")
	assert.False(t, ok)
	_, ok = parsePositiveInt("")
	assert.False(t, ok)
}
