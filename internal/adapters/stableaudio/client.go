// Package stableaudio renders instrumentals through a Stable Audio style
// hosted HTTP API.
package stableaudio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/calliope-labs/songforge/internal/core/domain"
	"github.com/calliope-labs/songforge/internal/core/ports"
)

const defaultModel = "stable-audio-1.0"

// Config carries the connection settings for the hosted API.
type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	MaxRetries  int
	BaseBackoff time.Duration
}

// Client implements ports.InstrumentalEngine against the hosted API.
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	maxRetries  int
	baseBackoff time.Duration
	httpClient  *http.Client
}

// NewClient validates the config and builds a Client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("stableaudio adapter: base URL is not configured")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("stableaudio adapter: API key is not configured")
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		model:       model,
		maxRetries:  cfg.MaxRetries,
		baseBackoff: cfg.BaseBackoff,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}, nil
}

type generateRequest struct {
	Model        string `json:"model"`
	Prompt       string `json:"prompt"`
	SecondsTotal int    `json:"seconds_total"`
}

type generateResponse struct {
	Status   string `json:"status"`
	AudioURL string `json:"audio_url"`
}

// RenderBlueprint renders an instrumental for a generated blueprint.
func (c *Client) RenderBlueprint(ctx context.Context, bp domain.Blueprint, opts ports.RenderOptions) (string, int, error) {
	totalBars := 0
	for _, s := range bp.Sections {
		totalBars += s.Bars
	}
	duration := renderDuration(totalBars, bp.BPM, opts.DurationSeconds)
	return c.generate(ctx, blueprintPrompt(bp, opts.StyleHint), duration)
}

// RenderProject renders an instrumental for a manual project.
func (c *Client) RenderProject(ctx context.Context, detail domain.ProjectDetail, opts ports.RenderOptions) (string, int, error) {
	lastBar := 0
	for _, p := range detail.Patterns {
		if end := p.StartBar + p.LengthBars; end > lastBar {
			lastBar = end
		}
	}
	if lastBar == 0 {
		lastBar = 16
	}
	duration := renderDuration(lastBar, detail.Project.TempoBPM, opts.DurationSeconds)
	return c.generate(ctx, projectPrompt(detail, opts.StyleHint), duration)
}

func (c *Client) generate(ctx context.Context, prompt string, durationSeconds int) (string, int, error) {
	payload := generateRequest{
		Model:        c.model,
		Prompt:       prompt,
		SecondsTotal: durationSeconds,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", 0, fmt.Errorf("stableaudio adapter: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/generate/audio", bytes.NewReader(body))
	if err != nil {
		return "", 0, fmt.Errorf("stableaudio adapter: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("stableaudio adapter: unexpected status %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", 0, fmt.Errorf("stableaudio adapter: decode response: %w", err)
	}
	if parsed.Status != "ready" || parsed.AudioURL == "" {
		return "", 0, fmt.Errorf("stableaudio adapter: unexpected response status %q", parsed.Status)
	}

	return parsed.AudioURL, durationSeconds, nil
}

// renderDuration converts a bar count at the given tempo to seconds in 4/4
// time, clamped to [8, 600]. An explicit override wins.
func renderDuration(bars, bpm, override int) int {
	if override > 0 {
		return override
	}
	if bpm <= 0 {
		bpm = 120
	}
	secondsPerBar := (60.0 / float64(bpm)) * 4
	duration := int(float64(bars) * secondsPerBar)
	if duration < 8 {
		duration = 8
	}
	if duration > 600 {
		duration = 600
	}
	return duration
}

func blueprintPrompt(bp domain.Blueprint, styleHint string) string {
	var sb strings.Builder
	if bp.Mood != "" {
		sb.WriteString(bp.Mood + " ")
	}
	if bp.Genre != "" {
		sb.WriteString(bp.Genre + " ")
	}
	sb.WriteString("instrumental")
	if bp.BPM > 0 {
		fmt.Fprintf(&sb, ", %d bpm", bp.BPM)
	}
	if bp.Key != "" {
		fmt.Fprintf(&sb, ", key of %s", bp.Key)
	}
	instruments := map[string]bool{}
	for _, s := range bp.Sections {
		for _, inst := range s.Instruments {
			if !instruments[inst] {
				instruments[inst] = true
				sb.WriteString(", " + inst)
			}
		}
	}
	if styleHint != "" {
		sb.WriteString(". " + styleHint)
	}
	return sb.String()
}

func projectPrompt(detail domain.ProjectDetail, styleHint string) string {
	var sb strings.Builder
	sb.WriteString("instrumental")
	if detail.Project.Key != "" {
		fmt.Fprintf(&sb, " in %s", detail.Project.Key)
	}
	if detail.Project.TempoBPM > 0 {
		fmt.Fprintf(&sb, ", %d bpm", detail.Project.TempoBPM)
	}
	for _, t := range detail.Tracks {
		sb.WriteString(", " + t.InstrumentType)
	}
	if detail.Project.Description != "" {
		sb.WriteString(". " + detail.Project.Description)
	}
	if styleHint != "" {
		sb.WriteString(". " + styleHint)
	}
	return sb.String()
}
