// Package speech provides text-to-speech engines for the drill app.
// Engines turn Thai text into raw PCM audio; callers go through the
// audio cache rather than hitting an engine directly.
package speech

import "context"

// Engine is the contract for speech synthesis providers.
type Engine interface {
	// Synthesize converts text to audio at the given speed multiplier
	// (1.0 = normal). Returns audio as 16-bit little-endian mono PCM at
	// the sample rate reported by GetInfo.
	Synthesize(ctx context.Context, text string, speed float64) ([]byte, error)

	// GetInfo returns engine capabilities and audio format.
	GetInfo() EngineInfo

	// Validate checks that the engine is configured and usable, e.g.
	// that an API key is present.
	Validate() error

	// Close releases any resources held by the engine.
	Close() error
}

// EngineInfo describes engine capabilities and output format.
type EngineInfo struct {
	Name        string // engine name, e.g. "azure"
	SampleRate  int    // audio sample rate in Hz
	Channels    int    // 1 = mono
	BitDepth    int    // bits per sample
	MaxTextSize int    // maximum text length per request
	IsOnline    bool   // whether the engine needs network access
}

// Speed presets used by the drill modes. Cards are spoken slightly
// slowed; dictated numbers a touch slower still.
const (
	CardSpeed   = 0.9
	NumberSpeed = 0.85
)
