// Package musicgen renders instrumentals through a hosted MusicGen
// predictions API: submit a prediction, then poll until it settles.
package musicgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/calliope-labs/songforge/internal/core/domain"
	"github.com/calliope-labs/songforge/internal/core/ports"
)

const (
	defaultPollInterval = time.Second
	defaultPollTimeout  = 90 * time.Second
)

// Config carries the connection settings for the predictions API. Either
// APIToken or the OAuth client-credentials triple must be set.
type Config struct {
	BaseURL      string
	Version      string
	APIToken     string
	TokenURL     string
	ClientID     string
	ClientSecret string
	PollInterval time.Duration
	PollTimeout  time.Duration
}

// Client implements ports.InstrumentalEngine against the predictions API.
type Client struct {
	baseURL      string
	version      string
	apiToken     string
	pollInterval time.Duration
	pollTimeout  time.Duration
	httpClient   *http.Client
}

// NewClient validates the config and builds a Client. When OAuth client
// credentials are configured, the underlying HTTP client refreshes its
// token automatically.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("musicgen adapter: base URL is not configured")
	}
	if cfg.Version == "" {
		return nil, fmt.Errorf("musicgen adapter: model version is not configured")
	}
	if cfg.APIToken == "" && (cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.TokenURL == "") {
		return nil, fmt.Errorf("musicgen adapter: no API token or OAuth client credentials configured")
	}

	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	pollTimeout := cfg.PollTimeout
	if pollTimeout <= 0 {
		pollTimeout = defaultPollTimeout
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	if cfg.APIToken == "" {
		creds := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
		}
		httpClient = creds.Client(context.Background())
	}

	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		version:      cfg.Version,
		apiToken:     cfg.APIToken,
		pollInterval: pollInterval,
		pollTimeout:  pollTimeout,
		httpClient:   httpClient,
	}, nil
}

type predictionInput struct {
	Prompt   string `json:"prompt"`
	Duration int    `json:"duration"`
}

type createPredictionRequest struct {
	Version string          `json:"version"`
	Input   predictionInput `json:"input"`
}

type prediction struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Output json.RawMessage `json:"output"`
	Error  string          `json:"error"`
}

// RenderBlueprint renders an instrumental for a generated blueprint.
func (c *Client) RenderBlueprint(ctx context.Context, bp domain.Blueprint, opts ports.RenderOptions) (string, int, error) {
	totalBars := 0
	for _, s := range bp.Sections {
		totalBars += s.Bars
	}
	duration := renderDuration(totalBars, bp.BPM, opts.DurationSeconds)

	var sb strings.Builder
	if bp.Mood != "" {
		sb.WriteString(bp.Mood + " ")
	}
	if bp.Genre != "" {
		sb.WriteString(bp.Genre + " ")
	}
	sb.WriteString("instrumental")
	if bp.BPM > 0 {
		fmt.Fprintf(&sb, " at %d bpm", bp.BPM)
	}
	if opts.StyleHint != "" {
		sb.WriteString(". " + opts.StyleHint)
	}

	url, err := c.generate(ctx, sb.String(), duration)
	return url, duration, err
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

	var sb strings.Builder
	sb.WriteString("instrumental")
	if detail.Project.TempoBPM > 0 {
		fmt.Fprintf(&sb, " at %d bpm", detail.Project.TempoBPM)
	}
	for _, t := range detail.Tracks {
		sb.WriteString(", " + t.InstrumentType)
	}
	if opts.StyleHint != "" {
		sb.WriteString(". " + opts.StyleHint)
	}

	url, err := c.generate(ctx, sb.String(), duration)
	return url, duration, err
}

// generate submits a prediction and polls it until it succeeds or fails.
func (c *Client) generate(ctx context.Context, prompt string, durationSeconds int) (string, error) {
	pred, err := c.createPrediction(ctx, prompt, durationSeconds)
	if err != nil {
		return "", err
	}

	deadline := time.Now().Add(c.pollTimeout)
	for {
		switch pred.Status {
		case "succeeded":
			return audioURLFromOutput(pred.Output)
		case "failed", "canceled":
			if pred.Error != "" {
				return "", fmt.Errorf("musicgen adapter: prediction %s %s: %s", pred.ID, pred.Status, pred.Error)
			}
			return "", fmt.Errorf("musicgen adapter: prediction %s %s", pred.ID, pred.Status)
		}

		if time.Now().After(deadline) {
			return "", fmt.Errorf("musicgen adapter: prediction %s timed out after %s", pred.ID, c.pollTimeout)
		}
		if err := sleepWithContext(ctx, c.pollInterval); err != nil {
			return "", err
		}

		pred, err = c.getPrediction(ctx, pred.ID)
		if err != nil {
			return "", err
		}
	}
}

func (c *Client) createPrediction(ctx context.Context, prompt string, durationSeconds int) (prediction, error) {
	payload := createPredictionRequest{
		Version: c.version,
		Input:   predictionInput{Prompt: prompt, Duration: durationSeconds},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return prediction{}, fmt.Errorf("musicgen adapter: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/predictions", bytes.NewReader(body))
	if err != nil {
		return prediction{}, fmt.Errorf("musicgen adapter: build request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return prediction{}, fmt.Errorf("musicgen adapter: create prediction: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return prediction{}, fmt.Errorf("musicgen adapter: create prediction: unexpected status %d", resp.StatusCode)
	}

	var pred prediction
	if err := json.NewDecoder(resp.Body).Decode(&pred); err != nil {
		return prediction{}, fmt.Errorf("musicgen adapter: decode prediction: %w", err)
	}
	if pred.ID == "" {
		return prediction{}, fmt.Errorf("musicgen adapter: prediction response missing id")
	}
	return pred, nil
}

func (c *Client) getPrediction(ctx context.Context, id string) (prediction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/predictions/"+id, nil)
	if err != nil {
		return prediction{}, fmt.Errorf("musicgen adapter: build poll request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return prediction{}, fmt.Errorf("musicgen adapter: poll prediction: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return prediction{}, fmt.Errorf("musicgen adapter: poll prediction: unexpected status %d", resp.StatusCode)
	}

	var pred prediction
	if err := json.NewDecoder(resp.Body).Decode(&pred); err != nil {
		return prediction{}, fmt.Errorf("musicgen adapter: decode prediction: %w", err)
	}
	return pred, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Token "+c.apiToken)
	}
}

// audioURLFromOutput handles the two shapes the API returns: a single URL
// string or a list of URLs.
func audioURLFromOutput(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("musicgen adapter: prediction succeeded without output")
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil && single != "" {
		return single, nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 && list[0] != "" {
		return list[0], nil
	}

	return "", fmt.Errorf("musicgen adapter: unrecognized prediction output %s", string(raw))
}

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

func sleepWithContext(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("musicgen adapter: request canceled: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
