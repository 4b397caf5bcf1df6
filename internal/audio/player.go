// Package audio plays raw PCM through the system audio device.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Player plays one clip at a time. Starting a clip interrupts the one
// currently playing.
type Player interface {
	Play(pcm []byte) error
	Stop() error
	IsPlaying() bool
	Close() error
}

// Format describes the PCM the player expects: signed 16-bit little
// endian at the given rate.
type Format struct {
	SampleRate int
	Channels   int
}

// AzureFormat matches the raw-48khz-16bit-mono-pcm output format.
var AzureFormat = Format{SampleRate: 48000, Channels: 1}

// OpenAIFormat matches the pcm speech response format.
var OpenAIFormat = Format{SampleRate: 24000, Channels: 1}

func (f Format) validate() error {
	if f.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", f.SampleRate)
	}
	if f.Channels != 1 && f.Channels != 2 {
		return fmt.Errorf("channels must be 1 or 2, got %d", f.Channels)
	}
	return nil
}

// OtoPlayer plays PCM through oto. The active clip's bytes are held on
// the struct until playback ends; releasing them early causes static.
type OtoPlayer struct {
	context *oto.Context
	format  Format

	mu     sync.Mutex
	player *oto.Player
	active []byte
	closed bool
}

// NewOtoPlayer opens the audio device for the given format and blocks
// until it is ready.
func NewOtoPlayer(format Format) (*OtoPlayer, error) {
	if err := format.validate(); err != nil {
		return nil, fmt.Errorf("invalid format: %w", err)
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   format.SampleRate,
		ChannelCount: format.Channels,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open audio device: %w", err)
	}
	<-ready

	return &OtoPlayer{context: ctx, format: format}, nil
}

// Play starts the clip, stopping whatever was playing.
func (p *OtoPlayer) Play(pcm []byte) error {
	if len(pcm) == 0 {
		return errors.New("empty audio data")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return errors.New("player is closed")
	}
	p.stopLocked()

	// Copy so the caller's buffer can be reused while we play.
	data := make([]byte, len(pcm))
	copy(data, pcm)

	player := p.context.NewPlayer(bytes.NewReader(data))
	player.Play()

	p.player = player
	p.active = data
	return nil
}

// Stop halts playback and releases the active clip.
func (p *OtoPlayer) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	return nil
}

func (p *OtoPlayer) stopLocked() {
	if p.player != nil {
		p.player.Pause()
		p.player.Close()
		p.player = nil
	}
	p.active = nil
}

// IsPlaying reports whether a clip is still sounding.
func (p *OtoPlayer) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.player != nil && p.player.IsPlaying()
}

// Duration returns how long the clip would sound in this player's
// format.
func (p *OtoPlayer) Duration(pcm []byte) time.Duration {
	samples := len(pcm) / (p.format.Channels * 2)
	return time.Duration(samples) * time.Second / time.Duration(p.format.SampleRate)
}

// Close stops playback and drops the device context. The context has
// no close in oto v3; it is collected once unreferenced.
func (p *OtoPlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	p.context = nil
	p.closed = true
	return nil
}
