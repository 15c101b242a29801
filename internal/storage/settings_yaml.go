package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"intervalfit/internal/core/model"
	"intervalfit/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	Mode               string `yaml:"mode"`
	WorkSeconds        int    `yaml:"work_seconds"`
	RestSeconds        int    `yaml:"rest_seconds"`
	PreparationSeconds int    `yaml:"preparation_seconds"`
	Rounds             int    `yaml:"rounds"`
	Cycles             int    `yaml:"cycles"`
	SoundEnabled       *bool  `yaml:"sound_enabled"`
	VibrationEnabled   *bool  `yaml:"vibration_enabled"`
	Fullscreen         bool   `yaml:"fullscreen"`
	RecordHistory      *bool  `yaml:"record_history"`
}

// SettingsPath returns the settings file location inside dir.
func SettingsPath(dir string) string {
	return filepath.Join(dir, settingsFileName)
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func LoadSettings(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	timer := settings.Timer
	fileData := yamlSettings{
		Mode:               string(timer.Mode),
		WorkSeconds:        timer.WorkSeconds,
		RestSeconds:        timer.RestSeconds,
		PreparationSeconds: timer.PreparationSeconds,
		Rounds:             timer.Rounds,
		Cycles:             timer.Cycles,
		SoundEnabled:       &timer.SoundEnabled,
		VibrationEnabled:   &timer.VibrationEnabled,
		Fullscreen:         settings.Fullscreen,
		RecordHistory:      &settings.RecordHistory,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

// applyYamlSettings copies valid file values over the defaults, field by field.
func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	timer := &settings.Timer
	if mode := model.Mode(fileData.Mode); mode.IsValid() {
		timer.Mode = mode
	}
	if fileData.WorkSeconds > 0 {
		timer.WorkSeconds = fileData.WorkSeconds
	}
	if fileData.RestSeconds > 0 {
		timer.RestSeconds = fileData.RestSeconds
	}
	if fileData.PreparationSeconds > 0 {
		timer.PreparationSeconds = fileData.PreparationSeconds
	}
	if fileData.Rounds > 0 {
		timer.Rounds = fileData.Rounds
	}
	if fileData.Cycles > 0 {
		timer.Cycles = fileData.Cycles
	}
	if fileData.SoundEnabled != nil {
		timer.SoundEnabled = *fileData.SoundEnabled
	}
	if fileData.VibrationEnabled != nil {
		timer.VibrationEnabled = *fileData.VibrationEnabled
	}
	if fileData.RecordHistory != nil {
		settings.RecordHistory = *fileData.RecordHistory
	}
	settings.Fullscreen = fileData.Fullscreen
}
