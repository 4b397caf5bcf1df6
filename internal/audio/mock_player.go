package audio

import (
	"errors"
	"sync"
)

// MockPlayer records playback calls for tests and for running with
// audio disabled.
type MockPlayer struct {
	mu      sync.Mutex
	playing bool
	closed  bool
	clips   [][]byte

	// FailWith, when set, is returned by Play.
	FailWith error
}

// NewMockPlayer creates a mock player.
func NewMockPlayer() *MockPlayer {
	return &MockPlayer{}
}

func (m *MockPlayer) Play(pcm []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return errors.New("player is closed")
	}
	if m.FailWith != nil {
		return m.FailWith
	}
	if len(pcm) == 0 {
		return errors.New("empty audio data")
	}
	m.clips = append(m.clips, pcm)
	m.playing = true
	return nil
}

func (m *MockPlayer) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playing = false
	return nil
}

func (m *MockPlayer) IsPlaying() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing
}

func (m *MockPlayer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playing = false
	m.closed = true
	return nil
}

// PlayCount returns how many clips have been played.
func (m *MockPlayer) PlayCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.clips)
}

// LastClip returns the most recently played clip, or nil.
func (m *MockPlayer) LastClip() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.clips) == 0 {
		return nil
	}
	return m.clips[len(m.clips)-1]
}
