package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

const (
	// azureVoice is the Thai neural voice used for all synthesis.
	azureVoice = "th-TH-PremwadeeNeural"

	// azureOutputFormat requests raw PCM so no transcoding is needed
	// before playback.
	azureOutputFormat = "raw-48khz-16bit-mono-pcm"

	azureSampleRate  = 48000
	azureMaxTextSize = 2000

	// azureTokenTTL is how long an issued access token is reused.
	// Azure tokens are valid for ten minutes; refresh early.
	azureTokenTTL = 8 * time.Minute
)

// AzureConfig holds configuration for the Azure engine.
type AzureConfig struct {
	// Key is the Cognitive Services subscription key.
	Key string

	// Region is the Azure region, e.g. "southeastasia".
	Region string

	// RequestsPerMinute bounds outbound synthesis calls (defaults to 60).
	RequestsPerMinute int
}

// AzureEngine synthesizes Thai speech through the Azure Cognitive
// Services REST API. Access tokens are fetched lazily and reused until
// they near expiry.
type AzureEngine struct {
	key     string
	region  string
	client  *http.Client
	limiter *rate.Limiter

	mu          sync.Mutex
	token       string
	tokenIssued time.Time
}

// NewAzureEngine creates an Azure TTS engine.
func NewAzureEngine(cfg AzureConfig) *AzureEngine {
	if cfg.Region == "" {
		cfg.Region = "southeastasia"
	}
	if cfg.RequestsPerMinute == 0 {
		cfg.RequestsPerMinute = 60
	}

	return &AzureEngine{
		key:     cfg.Key,
		region:  cfg.Region,
		client:  &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1),
	}
}

// Synthesize converts text to PCM audio via the Azure REST API.
func (e *AzureEngine) Synthesize(ctx context.Context, text string, speed float64) ([]byte, error) {
	if text == "" {
		return nil, ErrEmptyText
	}
	if len(text) > azureMaxTextSize {
		return nil, fmt.Errorf("%w: %d characters (max %d)", ErrTextTooLong, len(text), azureMaxTextSize)
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait cancelled: %w", err)
	}

	token, err := e.accessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: token request failed: %v", ErrAudioUnavailable, err)
	}

	ssml := fmt.Sprintf(
		`<speak version="1.0" xmlns="http://www.w3.org/2001/10/synthesis" xml:lang="th-TH"><voice name="%s"><prosody rate="%.2f">%s</prosody></voice></speak>`,
		azureVoice, speed, escapeSSML(text),
	)

	url := fmt.Sprintf("https://%s.tts.speech.microsoft.com/cognitiveservices/v1", e.region)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(ssml))
	if err != nil {
		return nil, fmt.Errorf("building synthesis request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/ssml+xml")
	req.Header.Set("X-Microsoft-OutputFormat", azureOutputFormat)
	req.Header.Set("User-Agent", "thaidrill")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAudioUnavailable, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: synthesis returned HTTP %d", ErrAudioUnavailable, resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading audio: %v", ErrAudioUnavailable, err)
	}

	log.Debug("Azure synthesis complete", "chars", len(text), "bytes", len(audio), "speed", speed)
	return audio, nil
}

// accessToken returns a cached token or fetches a fresh one.
func (e *AzureEngine) accessToken(ctx context.Context) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.token != "" && time.Since(e.tokenIssued) < azureTokenTTL {
		return e.token, nil
	}

	url := fmt.Sprintf("https://%s.api.cognitive.microsoft.com/sts/v1.0/issueToken", e.region)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", e.key)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	e.token = string(body)
	e.tokenIssued = time.Now()
	return e.token, nil
}

// GetInfo returns engine capabilities.
func (e *AzureEngine) GetInfo() EngineInfo {
	return EngineInfo{
		Name:        "azure",
		SampleRate:  azureSampleRate,
		Channels:    1,
		BitDepth:    16,
		MaxTextSize: azureMaxTextSize,
		IsOnline:    true,
	}
}

// Validate checks that a subscription key is configured.
func (e *AzureEngine) Validate() error {
	if e.key == "" {
		return fmt.Errorf("%w: AZURE_KEY is not set", ErrEngineNotConfigured)
	}
	return nil
}

// Close releases engine resources.
func (e *AzureEngine) Close() error {
	e.client.CloseIdleConnections()
	return nil
}

// escapeSSML escapes characters that would break the SSML document.
func escapeSSML(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
	return r.Replace(s)
}
