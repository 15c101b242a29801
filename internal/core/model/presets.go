package model

// DefaultConfig returns the configuration used on first launch.
func DefaultConfig() TimerConfig {
	return Preset(ModeTabata)
}

// Preset returns the stock timings for a mode. Unknown modes get the tabata preset.
func Preset(mode Mode) TimerConfig {
	config := TimerConfig{
		SoundEnabled:     true,
		VibrationEnabled: true,
	}

	switch mode {
	case ModeSingle:
		config.Mode = ModeSingle
		config.WorkSeconds = 60
		// Never entered in single mode, kept valid so the config can switch modes.
		config.RestSeconds = 1
		config.PreparationSeconds = 5
		config.Rounds = 1
		config.Cycles = 1
	case ModeSequence:
		config.Mode = ModeSequence
		config.WorkSeconds = 30
		config.RestSeconds = 15
		config.PreparationSeconds = 5
		config.Rounds = 4
		config.Cycles = 1
	case ModeHIIT:
		config.Mode = ModeHIIT
		config.WorkSeconds = 40
		config.RestSeconds = 20
		config.PreparationSeconds = 10
		config.Rounds = 6
		config.Cycles = 2
	case ModeCircuit:
		config.Mode = ModeCircuit
		config.WorkSeconds = 45
		config.RestSeconds = 15
		config.PreparationSeconds = 10
		config.Rounds = 5
		config.Cycles = 3
	default:
		config.Mode = ModeTabata
		config.WorkSeconds = 20
		config.RestSeconds = 10
		config.PreparationSeconds = 10
		config.Rounds = 8
		config.Cycles = 1
	}

	return config
}
