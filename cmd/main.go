package main

import (
	"context"
	"errors"
	"flag"
	"path/filepath"
	"time"

	"intervalfit/internal/core/timer"
	"intervalfit/internal/cue"
	"intervalfit/internal/history"
	"intervalfit/internal/logging"
	"intervalfit/internal/platform"
	"intervalfit/internal/storage"
	"intervalfit/internal/ui/animation"
	"intervalfit/internal/ui/preferences"
	"intervalfit/internal/ui/tray"
	"intervalfit/internal/ui/workout"
	"intervalfit/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"github.com/sirupsen/logrus"
)

const appName = "IntervalFit"

func main() {
	logLevel := flag.String("log-level", "info", "log level [trace | debug | info | warn | error]")
	logToStdout := flag.Bool("log-to-stdout", true, "log to stdout")
	logFile := flag.String("log-file", "", "path of the log file (default: <config dir>/IntervalFit/intervalfit.log, \"-\" disables file logging)")
	flag.Parse()

	configDir, configDirErr := resolveConfigDir()
	logFileName := *logFile
	switch {
	case logFileName == "-":
		logFileName = ""
	case logFileName == "":
		logFileName = filepath.Join(configDir, "intervalfit.log")
	}
	logCloser := logging.Setup(logging.LoggerSetupParams{
		LogFileName: logFileName,
		LogToStdout: *logToStdout,
		LogLevel:    *logLevel,
	})
	defer logCloser.Close()
	if configDirErr != nil {
		logrus.WithError(configDirErr).Warn("config dir unavailable, using working directory")
	}

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logrus.Info("IntervalFit is already running, asked it to show its window")
		} else {
			logrus.WithError(err).Error("single instance check failed")
		}
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	settingsPath := storage.SettingsPath(configDir)
	settings, err := storage.LoadSettings(settingsPath)
	if err != nil {
		logrus.WithError(err).Warn("failed to load settings, using defaults")
	}

	engine, err := timer.New(settings.Timer, timer.Options{TickInterval: time.Second})
	if err != nil {
		logrus.WithError(err).Warn("stored timer settings invalid, using defaults")
		settings = preferences.DefaultSettings()
		engine, err = timer.New(settings.Timer, timer.Options{TickInterval: time.Second})
		if err != nil {
			logrus.WithError(err).Fatal("create timer engine")
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	historyStore, err := storage.OpenHistory(ctx, storage.HistoryPath(configDir))
	if err != nil {
		logrus.WithError(err).Warn("workout history unavailable")
	}

	fyneApp := app.NewWithID("com.intervalfit.app")
	fyneApp.SetIcon(theme.MediaPlayIcon())

	workoutWindow := workout.New(fyneApp, workout.Config{Fullscreen: settings.Fullscreen}, engine)
	pulser := animation.New(animation.DefaultConfig(), workoutWindow.SetHighlighted)

	sound := cue.NewSound(platform.NewAudioPlayer(), resources.Sound)
	engine.SetSoundPlayer(sound)
	engine.SetVibrator(cue.NewVibration(pulser))

	var recorder *history.Recorder
	if historyStore != nil {
		defer historyStore.Close()
		recorder = history.NewRecorder(historyStore, settings.RecordHistory)
		recorder.OnRecorded(func(storage.WorkoutRun) {
			refreshHistory(ctx, historyStore, workoutWindow)
		})
		if stats, err := historyStore.Stats(ctx); err == nil {
			workoutWindow.SetHistory(stats)
		}
	}

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		if err := storage.SaveSettings(settingsPath, updated); err != nil {
			logrus.WithError(err).Error("failed to save settings")
		}
		if err := engine.UpdateConfig(updated.TimerPatch()); err != nil {
			logrus.WithError(err).Error("failed to apply timer settings")
		}
		workoutWindow.UpdateConfig(workout.Config{Fullscreen: updated.Fullscreen})
		if recorder != nil {
			recorder.SetEnabled(updated.RecordHistory)
		}
	})

	quit := func() {
		cancel()
		engine.Close()
		pulser.Close()
		sound.Wait()
		fyneApp.Quit()
	}

	var trayManager *tray.Manager
	desktopApp, hasTray := fyneApp.(desktop.App)
	if hasTray {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:      workoutWindow.Show,
			OnToggleRun: func() { toggleRun(engine) },
			OnSkip:      engine.Skip,
			OnReset:     engine.Reset,
			OnPreferences: func() {
				prefsWindow.Show()
			},
			OnQuit: quit,
		})
		desktopApp.SetSystemTrayIcon(theme.MediaPlayIcon())
	} else {
		logrus.Info("system tray unsupported, closing the timer window quits")
		workoutWindow.SetOnClose(quit)
	}

	guard.OnActivate(func() {
		fyne.Do(workoutWindow.Show)
	})

	if recorder != nil {
		go recorder.Run(ctx, engine.Subscribe(64))
	}

	events := engine.Subscribe(16)
	go func() {
		wasPaused := false
		for event := range events {
			snapshot := event.Snapshot
			if event.Type == timer.EventReset {
				snapshot = engine.Snapshot()
			}

			if snapshot.Paused != wasPaused {
				if snapshot.Paused {
					pulser.StartBlink(ctx)
				} else {
					pulser.Stop()
				}
				wasPaused = snapshot.Paused
			}

			fyne.Do(func() {
				workoutWindow.Render(snapshot)
				if trayManager != nil {
					trayManager.Update(snapshot)
					desktopApp.SetSystemTrayIcon(trayIcon(snapshot))
				}
			})
		}
	}()

	workoutWindow.Render(engine.Snapshot())
	workoutWindow.Show()
	fyneApp.Run()
}

// resolveConfigDir runs before logging is configured, so it reports the
// error instead of logging it.
func resolveConfigDir() (string, error) {
	dir, err := platform.NewService().AppDir(appName)
	if err != nil {
		return appName, err
	}
	return dir, nil
}

func toggleRun(engine *timer.Engine) {
	snapshot := engine.Snapshot()
	switch {
	case snapshot.Paused:
		engine.Resume()
	case snapshot.Running:
		engine.Pause()
	default:
		engine.Start()
	}
}

func refreshHistory(ctx context.Context, store *storage.HistoryStore, window *workout.Window) {
	stats, err := store.Stats(ctx)
	if err != nil {
		logrus.WithError(err).Warn("failed to read workout stats")
		return
	}
	fyne.Do(func() {
		window.SetHistory(stats)
	})
}

func trayIcon(snapshot timer.Snapshot) fyne.Resource {
	switch {
	case snapshot.Phase == timer.PhaseComplete:
		return theme.ConfirmIcon()
	case snapshot.Paused:
		return theme.MediaPauseIcon()
	default:
		return theme.MediaPlayIcon()
	}
}
