package preferences

import (
	"fmt"
	"strconv"

	"intervalfit/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	settings      Settings
	onSave        func(Settings)
	mode          *widget.Select
	work          *widget.Entry
	rest          *widget.Entry
	preparation   *widget.Entry
	rounds        *widget.Entry
	cycles        *widget.Entry
	sound         *widget.Check
	vibration     *widget.Check
	fullscreen    *widget.Check
	recordHistory *widget.Check
	errorLabel    *widget.Label
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("IntervalFit Settings")

	modes := make([]string, 0, len(model.Modes))
	for _, mode := range model.Modes {
		modes = append(modes, string(mode))
	}

	prefs := &Window{
		window:        window,
		onSave:        onSave,
		work:          widget.NewEntry(),
		rest:          widget.NewEntry(),
		preparation:   widget.NewEntry(),
		rounds:        widget.NewEntry(),
		cycles:        widget.NewEntry(),
		sound:         widget.NewCheck("Sound cues", nil),
		vibration:     widget.NewCheck("Vibration cues (flash on desktop)", nil),
		fullscreen:    widget.NewCheck("Fullscreen workout window", nil),
		recordHistory: widget.NewCheck("Record workout history", nil),
		errorLabel:    widget.NewLabel(""),
	}
	prefs.mode = widget.NewSelect(modes, prefs.handleModeChange)
	prefs.errorLabel.Importance = widget.DangerImportance

	form := container.NewVBox(
		widget.NewLabelWithStyle("Workout", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Mode"), prefs.mode),
		container.NewHBox(widget.NewLabel("Work"), prefs.work, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Rest"), prefs.rest, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Preparation"), prefs.preparation, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Rounds"), prefs.rounds),
		container.NewHBox(widget.NewLabel("Cycles"), prefs.cycles),
		widget.NewLabelWithStyle("Cues", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.sound,
		prefs.vibration,
		widget.NewLabelWithStyle("General", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.fullscreen,
		prefs.recordHistory,
		prefs.errorLabel,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	content := container.NewBorder(nil, buttons, nil, nil, form)
	window.SetContent(content)
	window.Resize(fyne.NewSize(420, 520))
	window.SetCloseIntercept(window.Hide)

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.setTimerFields(settings.Timer)
	prefs.mode.SetSelected(string(settings.Timer.Mode))
	prefs.sound.SetChecked(settings.Timer.SoundEnabled)
	prefs.vibration.SetChecked(settings.Timer.VibrationEnabled)
	prefs.fullscreen.SetChecked(settings.Fullscreen)
	prefs.recordHistory.SetChecked(settings.RecordHistory)
	prefs.errorLabel.SetText("")
}

func (prefs *Window) setTimerFields(config model.TimerConfig) {
	prefs.work.SetText(strconv.Itoa(config.WorkSeconds))
	prefs.rest.SetText(strconv.Itoa(config.RestSeconds))
	prefs.preparation.SetText(strconv.Itoa(config.PreparationSeconds))
	prefs.rounds.SetText(strconv.Itoa(config.Rounds))
	prefs.cycles.SetText(strconv.Itoa(config.Cycles))
}

// handleModeChange loads the preset timings when the user picks another mode.
func (prefs *Window) handleModeChange(value string) {
	mode := model.Mode(value)
	if mode == prefs.settings.Timer.Mode {
		prefs.setTimerFields(prefs.settings.Timer)
		return
	}
	prefs.setTimerFields(model.Preset(mode))
}

func (prefs *Window) handleSave() {
	settings, err := prefs.collect()
	if err != nil {
		prefs.errorLabel.SetText(err.Error())
		return
	}

	prefs.settings = settings
	prefs.errorLabel.SetText("")
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func (prefs *Window) collect() (Settings, error) {
	settings := prefs.settings
	config := settings.Timer
	config.Mode = model.Mode(prefs.mode.Selected)

	fields := []struct {
		name   string
		entry  *widget.Entry
		target *int
	}{
		{"work", prefs.work, &config.WorkSeconds},
		{"rest", prefs.rest, &config.RestSeconds},
		{"preparation", prefs.preparation, &config.PreparationSeconds},
		{"rounds", prefs.rounds, &config.Rounds},
		{"cycles", prefs.cycles, &config.Cycles},
	}
	for _, field := range fields {
		value, ok := parsePositiveInt(field.entry.Text)
		if !ok {
			return settings, fmt.Errorf("%s must be a positive whole number", field.name)
		}
		*field.target = value
	}

	config.SoundEnabled = prefs.sound.Checked
	config.VibrationEnabled = prefs.vibration.Checked
	if err := config.Validate(); err != nil {
		return settings, err
	}

	settings.Timer = config
	settings.Fullscreen = prefs.fullscreen.Checked
	settings.RecordHistory = prefs.recordHistory.Checked
	return settings, nil
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
