package workout

import (
	"fmt"
	"image/color"

	"intervalfit/internal/core/timer"
	"intervalfit/internal/storage"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Controls is the subset of the timer engine driven by the window buttons.
type Controls interface {
	Start()
	Pause()
	Resume()
	Reset()
	Skip()
}

// Config defines window visuals.
type Config struct {
	Fullscreen bool
}

// Window shows the running workout: phase, countdown, round and cycle.
type Window struct {
	window     fyne.Window
	config     Config
	controls   Controls
	snapshot   timer.Snapshot
	background *canvas.Rectangle
	phaseLabel *canvas.Text
	timerLabel *canvas.Text
	roundLabel *canvas.Text
	totalLabel *canvas.Text
	statsLabel *widget.Label
	progress   *widget.ProgressBar
	primary    *widget.Button
	resetBtn   *widget.Button
	skipBtn    *widget.Button
	onClose    func()
}

const (
	windowWidthFraction  = float32(0.30)
	windowHeightFraction = float32(0.45)
	defaultScreenWidth   = float32(1920)
	defaultScreenHeight  = float32(1080)
)

var (
	textColor      = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	highlightColor = color.NRGBA{R: 232, G: 190, B: 66, A: 255}
)

// New creates the workout window. It stays hidden until Show.
func New(app fyne.App, config Config, controls Controls) *Window {
	window := app.NewWindow("IntervalFit")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(phaseColor(timer.PhasePreparation))

	phaseLabel := canvas.NewText("", textColor)
	phaseLabel.Alignment = fyne.TextAlignCenter
	phaseLabel.TextStyle = fyne.TextStyle{Bold: true}
	phaseLabel.TextSize = 28

	timerLabel := canvas.NewText("00:00", textColor)
	timerLabel.Alignment = fyne.TextAlignCenter
	timerLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timerLabel.TextSize = 96

	roundLabel := canvas.NewText("", textColor)
	roundLabel.Alignment = fyne.TextAlignCenter
	roundLabel.TextSize = 20

	totalLabel := canvas.NewText("", textColor)
	totalLabel.Alignment = fyne.TextAlignCenter
	totalLabel.TextSize = 14

	progress := widget.NewProgressBar()
	statsLabel := widget.NewLabel("")
	statsLabel.Alignment = fyne.TextAlignCenter

	primary := widget.NewButton("Start", nil)
	primary.Importance = widget.HighImportance
	resetBtn := widget.NewButton("Reset", nil)
	skipBtn := widget.NewButton("Skip", nil)

	display := container.New(&displayLayout{}, phaseLabel, timerLabel, roundLabel, totalLabel)
	buttons := container.NewGridWithColumns(3, primary, skipBtn, resetBtn)
	footer := container.NewVBox(progress, buttons, statsLabel)
	content := container.NewBorder(nil, container.NewPadded(footer), nil, nil, display)
	window.SetContent(container.NewStack(background, content))

	workout := &Window{
		window:     window,
		config:     config,
		controls:   controls,
		background: background,
		phaseLabel: phaseLabel,
		timerLabel: timerLabel,
		roundLabel: roundLabel,
		totalLabel: totalLabel,
		statsLabel: statsLabel,
		progress:   progress,
		primary:    primary,
		resetBtn:   resetBtn,
		skipBtn:    skipBtn,
	}

	primary.OnTapped = workout.handlePrimary
	resetBtn.OnTapped = func() {
		if workout.controls != nil {
			workout.controls.Reset()
		}
	}
	skipBtn.OnTapped = func() {
		if workout.controls != nil {
			workout.controls.Skip()
		}
	}
	window.SetCloseIntercept(func() {
		workout.Hide()
		if workout.onClose != nil {
			workout.onClose()
		}
	})

	return workout
}

// Show displays the window and brings it to front.
func (workout *Window) Show() {
	workout.applyWindowMode()
	workout.window.Show()
	workout.window.RequestFocus()
}

// Hide hides the window without stopping the run.
func (workout *Window) Hide() {
	if workout.config.Fullscreen {
		workout.window.SetFullScreen(false)
	}
	workout.window.Hide()
}

// SetOnClose sets the handler called after the close button hides the window.
func (workout *Window) SetOnClose(handler func()) {
	workout.onClose = handler
}

// UpdateConfig updates window visuals.
func (workout *Window) UpdateConfig(config Config) {
	workout.config = config
	workout.applyWindowMode()
}

// Render redraws the window from a snapshot. Call it on the UI goroutine.
func (workout *Window) Render(snapshot timer.Snapshot) {
	workout.snapshot = snapshot

	workout.background.FillColor = phaseColor(snapshot.Phase)
	workout.background.Refresh()

	workout.phaseLabel.Text = phaseTitle(snapshot)
	workout.phaseLabel.Refresh()
	workout.timerLabel.Text = formatSeconds(snapshot.Remaining)
	workout.timerLabel.Refresh()
	workout.roundLabel.Text = roundText(snapshot)
	workout.roundLabel.Refresh()
	workout.totalLabel.Text = totalText(snapshot)
	workout.totalLabel.Refresh()
	workout.progress.SetValue(progressFraction(snapshot))

	workout.primary.SetText(primaryAction(snapshot))
	if snapshot.Phase == timer.PhaseComplete {
		workout.primary.Disable()
	} else {
		workout.primary.Enable()
	}
	if snapshot.Running {
		workout.skipBtn.Enable()
	} else {
		workout.skipBtn.Disable()
	}
}

// SetHistory shows recorded run totals under the controls.
func (workout *Window) SetHistory(stats storage.HistoryStats) {
	workout.statsLabel.SetText(historyText(stats))
}

// SetHighlighted emphasizes the countdown digits. Safe to call from any goroutine.
func (workout *Window) SetHighlighted(on bool) {
	fyne.Do(func() {
		if on {
			workout.timerLabel.Color = highlightColor
			workout.timerLabel.TextSize = 112
		} else {
			workout.timerLabel.Color = textColor
			workout.timerLabel.TextSize = 96
		}
		workout.timerLabel.Refresh()
	})
}

func (workout *Window) handlePrimary() {
	if workout.controls == nil {
		return
	}
	switch primaryAction(workout.snapshot) {
	case "Pause":
		workout.controls.Pause()
	case "Resume":
		workout.controls.Resume()
	default:
		workout.controls.Start()
	}
}

func (workout *Window) applyWindowMode() {
	if workout.config.Fullscreen {
		workout.window.SetFullScreen(true)
		return
	}
	workout.window.SetFullScreen(false)
	workout.resizeToScreenFraction()
}

func (workout *Window) resizeToScreenFraction() {
	screenSize := fyne.NewSize(defaultScreenWidth, defaultScreenHeight)
	canvasSize := workout.window.Canvas().Size()
	// Canvas size can be reused as a proxy for monitor size when it is clearly screen-like.
	if canvasSize.Width >= 1024 && canvasSize.Height >= 720 {
		screenSize = canvasSize
	}

	width := screenSize.Width * windowWidthFraction
	height := screenSize.Height * windowHeightFraction
	minSize := workout.window.Content().MinSize()
	if width < minSize.Width {
		width = minSize.Width
	}
	if height < minSize.Height {
		height = minSize.Height
	}

	workout.window.Resize(fyne.NewSize(width, height))
	workout.window.CenterOnScreen()
}

func formatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func phaseTitle(snapshot timer.Snapshot) string {
	var title string
	switch snapshot.Phase {
	case timer.PhasePreparation:
		title = "Get ready"
	case timer.PhaseWork:
		title = "Work"
	case timer.PhaseRest:
		title = "Rest"
	case timer.PhaseComplete:
		return "Complete"
	}
	if snapshot.Paused {
		title += " (paused)"
	}
	return title
}

func roundText(snapshot timer.Snapshot) string {
	text := fmt.Sprintf("Round %d/%d", snapshot.Round, snapshot.Rounds)
	if snapshot.Cycles > 1 {
		text += fmt.Sprintf("  Cycle %d/%d", snapshot.Cycle, snapshot.Cycles)
	}
	return text
}

func totalText(snapshot timer.Snapshot) string {
	text := fmt.Sprintf("%s / %s", formatSeconds(snapshot.ElapsedTotal), formatSeconds(snapshot.TotalSeconds))
	if snapshot.ConfigPending {
		text += "  new settings apply next phase"
	}
	return text
}

func progressFraction(snapshot timer.Snapshot) float64 {
	if snapshot.Phase == timer.PhaseComplete {
		return 1
	}
	if snapshot.TotalSeconds <= 0 {
		return 0
	}
	fraction := float64(snapshot.ElapsedTotal) / float64(snapshot.TotalSeconds)
	if fraction > 1 {
		return 1
	}
	return fraction
}

func primaryAction(snapshot timer.Snapshot) string {
	switch {
	case snapshot.Paused:
		return "Resume"
	case snapshot.Running:
		return "Pause"
	default:
		return "Start"
	}
}

func historyText(stats storage.HistoryStats) string {
	if stats.Runs == 0 {
		return "No workouts recorded yet"
	}
	return fmt.Sprintf("%d workouts, %d completed, %s total",
		stats.Runs, stats.Completed, formatSeconds(stats.TotalSeconds))
}

func phaseColor(phase timer.Phase) color.NRGBA {
	switch phase {
	case timer.PhaseWork:
		return color.NRGBA{R: 198, G: 40, B: 40, A: 255}
	case timer.PhaseRest:
		return color.NRGBA{R: 46, G: 125, B: 50, A: 255}
	case timer.PhaseComplete:
		return color.NRGBA{R: 21, G: 101, B: 192, A: 255}
	default:
		return color.NRGBA{R: 239, G: 108, B: 0, A: 255}
	}
}

type displayLayout struct{}

func (layout *displayLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 4 {
		return
	}
	phase := objects[0]
	clock := objects[1]
	round := objects[2]
	total := objects[3]

	pad := size.Height * 0.05
	width := size.Width - pad*2
	if width < 0 {
		width = 0
	}

	phaseSize := phase.MinSize()
	phase.Move(fyne.NewPos(pad, pad))
	phase.Resize(fyne.NewSize(width, phaseSize.Height))

	clockSize := clock.MinSize()
	clockY := (size.Height - clockSize.Height) / 2
	if clockY < pad+phaseSize.Height {
		clockY = pad + phaseSize.Height
	}
	clock.Move(fyne.NewPos(pad, clockY))
	clock.Resize(fyne.NewSize(width, clockSize.Height))

	totalSize := total.MinSize()
	totalY := size.Height - pad - totalSize.Height
	roundSize := round.MinSize()
	roundY := totalY - roundSize.Height - 6
	if roundY < clockY+clockSize.Height {
		roundY = clockY + clockSize.Height
		totalY = roundY + roundSize.Height + 6
	}
	round.Move(fyne.NewPos(pad, roundY))
	round.Resize(fyne.NewSize(width, roundSize.Height))
	total.Move(fyne.NewPos(pad, totalY))
	total.Resize(fyne.NewSize(width, totalSize.Height))
}

func (layout *displayLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 4 {
		return fyne.NewSize(0, 0)
	}
	var width, height float32
	for _, object := range objects[:4] {
		size := object.MinSize()
		if size.Width > width {
			width = size.Width
		}
		height += size.Height
	}
	return fyne.NewSize(width+20, height+40)
}
