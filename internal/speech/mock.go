package speech

import (
	"context"
	"sync"
	"time"
)

// MockEngine implements Engine for testing. It produces deterministic
// silence sized to the requested text and can be configured to fail or
// to delay, which the cache tests use to exercise in-flight dedup.
type MockEngine struct {
	// Delay is the simulated synthesis time.
	Delay time.Duration

	// FailWith, when non-nil, is returned by every Synthesize call.
	FailWith error

	mu    sync.Mutex
	calls int
}

// NewMockEngine creates a mock engine with no delay.
func NewMockEngine() *MockEngine {
	return &MockEngine{}
}

// Synthesize returns silence proportional to the text length.
func (e *MockEngine) Synthesize(ctx context.Context, text string, speed float64) ([]byte, error) {
	e.mu.Lock()
	e.calls++
	e.mu.Unlock()

	if text == "" {
		return nil, ErrEmptyText
	}

	if e.Delay > 0 {
		select {
		case <-time.After(e.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	e.mu.Lock()
	fail := e.FailWith
	e.mu.Unlock()
	if fail != nil {
		return nil, fail
	}

	// Two bytes of 16-bit silence per rune keeps output deterministic.
	return make([]byte, 2*len([]rune(text))), nil
}

// Calls returns how many Synthesize calls have been made.
func (e *MockEngine) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

// SetFailure configures the error returned by subsequent calls; nil
// restores success.
func (e *MockEngine) SetFailure(err error) {
	e.mu.Lock()
	e.FailWith = err
	e.mu.Unlock()
}

// GetInfo returns mock capabilities.
func (e *MockEngine) GetInfo() EngineInfo {
	return EngineInfo{
		Name:        "mock",
		SampleRate:  48000,
		Channels:    1,
		BitDepth:    16,
		MaxTextSize: 4096,
		IsOnline:    false,
	}
}

// Validate always succeeds.
func (e *MockEngine) Validate() error { return nil }

// Close releases nothing.
func (e *MockEngine) Close() error { return nil }
