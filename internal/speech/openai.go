package speech

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

const (
	// openaiSampleRate is the fixed rate of the PCM response format.
	openaiSampleRate  = 24000
	openaiMaxTextSize = 4096
)

// OpenAIConfig holds configuration for the OpenAI engine.
type OpenAIConfig struct {
	// APIKey is the OpenAI API key.
	APIKey string

	// Voice selects the synthesis voice (defaults to "alloy").
	Voice string

	// RequestsPerMinute bounds outbound synthesis calls (defaults to 50).
	RequestsPerMinute int
}

// OpenAIEngine synthesizes speech through the OpenAI audio API. It is
// the alternative to Azure for users who already carry an OpenAI key;
// pronunciation of Thai is serviceable but the Azure Thai voice is
// preferred.
type OpenAIEngine struct {
	client  *openai.Client
	voice   openai.SpeechVoice
	limiter *rate.Limiter
}

// NewOpenAIEngine creates an OpenAI TTS engine.
func NewOpenAIEngine(cfg OpenAIConfig) *OpenAIEngine {
	voice := openai.SpeechVoice(cfg.Voice)
	if voice == "" {
		voice = openai.VoiceAlloy
	}
	if cfg.RequestsPerMinute == 0 {
		cfg.RequestsPerMinute = 50
	}

	var client *openai.Client
	if cfg.APIKey != "" {
		client = openai.NewClient(cfg.APIKey)
	}

	return &OpenAIEngine{
		client:  client,
		voice:   voice,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1),
	}
}

// Synthesize converts text to PCM audio via the OpenAI speech endpoint.
func (e *OpenAIEngine) Synthesize(ctx context.Context, text string, speed float64) ([]byte, error) {
	if text == "" {
		return nil, ErrEmptyText
	}
	if len(text) > openaiMaxTextSize {
		return nil, fmt.Errorf("%w: %d characters (max %d)", ErrTextTooLong, len(text), openaiMaxTextSize)
	}
	if e.client == nil {
		return nil, ErrEngineNotConfigured
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait cancelled: %w", err)
	}

	resp, err := e.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.TTSModel1,
		Input:          text,
		Voice:          e.voice,
		ResponseFormat: openai.SpeechResponseFormatPcm,
		Speed:          speed,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAudioUnavailable, err)
	}
	defer resp.Close() //nolint:errcheck

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: reading audio: %v", ErrAudioUnavailable, err)
	}

	log.Debug("OpenAI synthesis complete", "chars", len(text), "bytes", len(audio), "speed", speed)
	return audio, nil
}

// GetInfo returns engine capabilities.
func (e *OpenAIEngine) GetInfo() EngineInfo {
	return EngineInfo{
		Name:        "openai",
		SampleRate:  openaiSampleRate,
		Channels:    1,
		BitDepth:    16,
		MaxTextSize: openaiMaxTextSize,
		IsOnline:    true,
	}
}

// Validate checks that an API key is configured.
func (e *OpenAIEngine) Validate() error {
	if e.client == nil {
		return fmt.Errorf("%w: OPENAI_API_KEY is not set", ErrEngineNotConfigured)
	}
	return nil
}

// Close releases engine resources.
func (e *OpenAIEngine) Close() error {
	return nil
}
