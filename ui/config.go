package ui

import "time"

// Config contains TUI-specific configuration.
type Config struct {
	HomeDir string `env:"HOME"`

	// Engine selects the speech backend: "azure", "openai" or empty
	// for silent mode.
	Engine string

	// NoAudio suppresses playback even when an engine is configured;
	// synthesis and caching still run.
	NoAudio bool `env:"THAIDRILL_NO_AUDIO"`

	// Delays holds the fixed UI pauses. Values come from viper
	// defaults and may be overridden in the config file.
	Delays Delays
}

// Delays are the timing constants the views animate with.
type Delays struct {
	// Feedback is how long a graded numbers entry stays on screen
	// before the game advances.
	Feedback time.Duration

	// PreReset is the longer pause after a wrong entry, before the
	// ladder resets.
	PreReset time.Duration

	// Autoplay is the lag between a card appearing and its audio.
	Autoplay time.Duration

	// Slide is the card transition time during which grading input is
	// ignored.
	Slide time.Duration
}

// DefaultDelays mirrors the viper defaults registered at startup.
func DefaultDelays() Delays {
	return Delays{
		Feedback: time.Second,
		PreReset: 2 * time.Second,
		Autoplay: 300 * time.Millisecond,
		Slide:    400 * time.Millisecond,
	}
}
