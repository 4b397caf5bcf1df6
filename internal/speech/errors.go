package speech

import "errors"

// Common errors for speech synthesis.
var (
	// ErrAudioUnavailable is the recoverable condition for a failed
	// synthesis: playback silently no-ops and a later request retries.
	ErrAudioUnavailable = errors.New("audio unavailable")

	// ErrEngineNotConfigured is returned by Validate when required
	// credentials or settings are missing.
	ErrEngineNotConfigured = errors.New("speech engine is not configured")

	// ErrEmptyText is returned when there is nothing to synthesize.
	ErrEmptyText = errors.New("text cannot be empty")

	// ErrTextTooLong is returned when text exceeds the engine's limit.
	ErrTextTooLong = errors.New("text exceeds engine limit")
)
