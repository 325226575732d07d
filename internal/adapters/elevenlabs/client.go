// Package elevenlabs synthesizes vocal previews through the ElevenLabs
// text-to-speech API.
package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/calliope-labs/songforge/internal/core/ports"
)

const (
	defaultBaseURL = "https://api.elevenlabs.io"
	defaultModelID = "eleven_turbo_v2_5"
)

// Client implements ports.VocalSynthesizer.
type Client struct {
	baseURL      string
	apiKey       string
	defaultModel string
	httpClient   *http.Client
}

// NewClient validates the config and builds a Client. baseURL and
// defaultModel may be empty to use the public API defaults.
func NewClient(apiKey, baseURL, defaultModel string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("elevenlabs adapter: API key is not configured")
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if defaultModel == "" {
		defaultModel = defaultModelID
	}
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		apiKey:       apiKey,
		defaultModel: defaultModel,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

type synthesizeRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id"`
}

// Synthesize converts text to speech with the given voice and returns the
// MP3 bytes. An empty modelID uses the configured default.
func (c *Client) Synthesize(ctx context.Context, text, voiceID, modelID string) ([]byte, error) {
	if text == "" {
		return nil, ports.VocalSynthesisError{Provider: "elevenlabs", Reason: "text is empty"}
	}
	if voiceID == "" {
		return nil, ports.VocalSynthesisError{Provider: "elevenlabs", Reason: "voice id is empty"}
	}
	if modelID == "" {
		modelID = c.defaultModel
	}

	body, err := json.Marshal(synthesizeRequest{Text: text, ModelID: modelID})
	if err != nil {
		return nil, fmt.Errorf("elevenlabs adapter: marshal request: %w", err)
	}

	endpoint := c.baseURL + "/v1/text-to-speech/" + url.PathEscape(voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("elevenlabs adapter: build request: %w", err)
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, ports.VocalSynthesisError{Provider: "elevenlabs", Reason: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, ports.VocalSynthesisError{
			Provider: "elevenlabs",
			Reason:   fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail))),
		}
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs adapter: read audio: %w", err)
	}
	if len(audio) == 0 {
		return nil, ports.VocalSynthesisError{Provider: "elevenlabs", Reason: "empty audio response"}
	}
	return audio, nil
}
