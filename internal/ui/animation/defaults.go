package animation

import "time"

// Config contains animation timing values.
type Config struct {
	// BlinkOn and BlinkOff pace the paused indicator.
	BlinkOn  time.Duration
	BlinkOff time.Duration
}

// DefaultConfig returns the timings used by the workout window.
func DefaultConfig() Config {
	return Config{
		BlinkOn:  600 * time.Millisecond,
		BlinkOff: 400 * time.Millisecond,
	}
}
