package tray

import (
	"fmt"

	"intervalfit/internal/core/timer"

	"fyne.io/fyne/v2"
)

// MenuHost is the part of desktop.App the tray needs.
type MenuHost interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnToggleRun   func()
	OnSkip        func()
	OnReset       func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app        MenuHost
	statusItem *fyne.MenuItem
	runItem    *fyne.MenuItem
	skipItem   *fyne.MenuItem
	resetItem  *fyne.MenuItem
	callbacks  Callbacks
}

// New creates a tray manager with the provided callbacks.
func New(app MenuHost, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: ready", nil)
	manager.statusItem.Disabled = true

	manager.runItem = fyne.NewMenuItem("Start", invoke(&manager.callbacks.OnToggleRun))
	manager.skipItem = fyne.NewMenuItem("Skip phase", invoke(&manager.callbacks.OnSkip))
	manager.skipItem.Disabled = true
	manager.resetItem = fyne.NewMenuItem("Reset", invoke(&manager.callbacks.OnReset))

	manager.refreshMenu()
	return manager
}

// Update reflects the engine snapshot in the menu.
func (manager *Manager) Update(snapshot timer.Snapshot) {
	manager.statusItem.Label = "Status: " + statusText(snapshot)

	switch {
	case snapshot.Phase == timer.PhaseComplete:
		manager.runItem.Label = "Start"
		manager.runItem.Disabled = true
	case snapshot.Paused:
		manager.runItem.Label = "Resume"
		manager.runItem.Disabled = false
	case snapshot.Running:
		manager.runItem.Label = "Pause"
		manager.runItem.Disabled = false
	default:
		manager.runItem.Label = "Start"
		manager.runItem.Disabled = false
	}
	manager.skipItem.Disabled = !snapshot.Running
	manager.refreshMenu()
}

func statusText(snapshot timer.Snapshot) string {
	if snapshot.Phase == timer.PhaseComplete {
		return "workout complete"
	}
	status := fmt.Sprintf("%s %02d:%02d, round %d/%d",
		snapshot.Phase, snapshot.Remaining/60, snapshot.Remaining%60, snapshot.Round, snapshot.Rounds)
	switch {
	case snapshot.Paused:
		status += " (paused)"
	case !snapshot.Running:
		status = "ready"
	}
	return status
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("IntervalFit",
		manager.statusItem,
		fyne.NewMenuItem("Show timer", invoke(&manager.callbacks.OnShow)),
		manager.runItem,
		manager.skipItem,
		manager.resetItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", invoke(&manager.callbacks.OnPreferences)),
		fyne.NewMenuItem("Quit", invoke(&manager.callbacks.OnQuit)),
	))
}

func invoke(handler *func()) func() {
	return func() {
		if *handler != nil {
			(*handler)()
		}
	}
}
