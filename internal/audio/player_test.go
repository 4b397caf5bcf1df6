package audio

import (
	"errors"
	"testing"
	"time"
)

func TestFormatValidate(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		wantErr bool
	}{
		{"azure", AzureFormat, false},
		{"openai", OpenAIFormat, false},
		{"stereo", Format{SampleRate: 44100, Channels: 2}, false},
		{"zero rate", Format{SampleRate: 0, Channels: 1}, true},
		{"bad channels", Format{SampleRate: 48000, Channels: 3}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.format.validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Expected wantErr=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestOtoPlayerDuration(t *testing.T) {
	// One second of 48kHz mono 16-bit PCM is 96000 bytes.
	p := &OtoPlayer{format: AzureFormat}
	if got := p.Duration(make([]byte, 96000)); got != time.Second {
		t.Errorf("Expected 1s, got %v", got)
	}

	p = &OtoPlayer{format: OpenAIFormat}
	if got := p.Duration(make([]byte, 24000)); got != 500*time.Millisecond {
		t.Errorf("Expected 500ms, got %v", got)
	}
}

func TestMockPlayerRecordsClips(t *testing.T) {
	m := NewMockPlayer()

	if err := m.Play([]byte{1, 2, 3}); err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if !m.IsPlaying() {
		t.Error("Expected playing after Play")
	}
	if err := m.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if m.IsPlaying() {
		t.Error("Expected stopped after Stop")
	}

	if err := m.Play([]byte{4}); err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if m.PlayCount() != 2 {
		t.Errorf("Expected 2 clips, got %d", m.PlayCount())
	}
	if last := m.LastClip(); len(last) != 1 || last[0] != 4 {
		t.Errorf("Expected last clip [4], got %v", last)
	}
}

func TestMockPlayerErrors(t *testing.T) {
	m := NewMockPlayer()
	if err := m.Play(nil); err == nil {
		t.Error("Expected error for empty clip")
	}

	sentinel := errors.New("device gone")
	m.FailWith = sentinel
	if err := m.Play([]byte{1}); !errors.Is(err, sentinel) {
		t.Errorf("Expected configured failure, got %v", err)
	}

	m.FailWith = nil
	m.Close()
	if err := m.Play([]byte{1}); err == nil {
		t.Error("Expected error after Close")
	}
}
