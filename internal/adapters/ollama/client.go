// Package ollama provides an adapter for the Ollama LLM service.
// It implements blueprint generation by sending the song request to a local
// Ollama instance and parsing the structured JSON response into a domain
// Blueprint.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/calliope-labs/songforge/internal/core/domain"
)

const defaultBaseURL = "http://localhost:11434"

const defaultModel = "llama3.1:8b"

const systemPrompt = "You are the Songforge Blueprint Engine. Your goal is to turn a song description into a structured JSON song blueprint.\n\nRules:\nStructure: Produce an ordered list of sections (intro, verse, pre_chorus, chorus, bridge, drop, outro) with bar counts that fit the requested duration and tempo.\nLyrics: Write short lyrics for every section, keyed by the section id. Use '[Instrumental]' for sections without vocals.\nMetadata: Fill title, genre, mood, bpm, key and a vocal_style object {gender, tone, energy}.\nOutput: Return ONLY a valid JSON object matching this shape: { 'title': ..., 'genre': ..., 'mood': ..., 'bpm': ..., 'key': ..., 'sections': [{'id': ..., 'type': ..., 'name': ..., 'bars': ..., 'mood': ..., 'description': ..., 'instruments': [...]}], 'lyrics': {...}, 'vocal_style': {...}, 'notes': ... }. No conversational text."

// Client generates song blueprints through a local Ollama instance.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Format   string        `json:"format,omitempty"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
	Error   string      `json:"error,omitempty"`
}

// NewClient builds a Client for the given base URL and model. Empty
// arguments fall back to the local default instance and model.
func NewClient(baseURL, model string) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}
	return &Client{
		baseURL: baseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// GenerateBlueprint implements ports.BlueprintGenerator.
func (c *Client) GenerateBlueprint(ctx context.Context, req domain.BlueprintRequest) (domain.Blueprint, error) {
	payload := chatRequest{
		Model:  c.model,
		Stream: false,
		Format: "json",
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildUserPrompt(req)},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return domain.Blueprint{}, fmt.Errorf("ollama: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return domain.Blueprint{}, fmt.Errorf("ollama: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return domain.Blueprint{}, fmt.Errorf("ollama: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.Blueprint{}, fmt.Errorf("ollama: unexpected status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return domain.Blueprint{}, fmt.Errorf("ollama: decode response: %w", err)
	}
	if parsed.Error != "" {
		return domain.Blueprint{}, fmt.Errorf("ollama: %s", parsed.Error)
	}
	if strings.TrimSpace(parsed.Message.Content) == "" {
		return domain.Blueprint{}, fmt.Errorf("ollama: empty response")
	}

	var bp domain.Blueprint
	if err := json.Unmarshal([]byte(parsed.Message.Content), &bp); err != nil {
		return domain.Blueprint{}, fmt.Errorf("ollama: decode blueprint: %w", err)
	}

	return normalizeBlueprint(bp, req)
}

func buildUserPrompt(req domain.BlueprintRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Song description: %s\n", req.Prompt)
	if req.Genre != "" {
		fmt.Fprintf(&sb, "Genre: %s\n", req.Genre)
	}
	if req.Mood != "" {
		fmt.Fprintf(&sb, "Mood: %s\n", req.Mood)
	}
	if req.BPM > 0 {
		fmt.Fprintf(&sb, "Tempo: %d bpm\n", req.BPM)
	}
	if req.Key != "" {
		fmt.Fprintf(&sb, "Key: %s\n", req.Key)
	}
	if req.DurationSeconds > 0 {
		fmt.Fprintf(&sb, "Target duration: %d seconds\n", req.DurationSeconds)
	}
	if req.ReferenceText != "" {
		fmt.Fprintf(&sb, "Reference lyrics or notes:\n%s\n", req.ReferenceText)
	}
	return sb.String()
}

// normalizeBlueprint assigns identity and backfills fields a model might
// omit so downstream consumers always see a well-formed blueprint.
func normalizeBlueprint(bp domain.Blueprint, req domain.BlueprintRequest) (domain.Blueprint, error) {
	if len(bp.Sections) == 0 {
		return domain.Blueprint{}, fmt.Errorf("ollama: blueprint has no sections")
	}

	u := uuid.New()
	bp.SongID = fmt.Sprintf("song_llm_%s", strings.ReplaceAll(u.String(), "-", "")[:16])

	if bp.Genre == "" {
		bp.Genre = req.Genre
	}
	if bp.Mood == "" {
		bp.Mood = req.Mood
	}
	if bp.BPM <= 0 {
		if req.BPM > 0 {
			bp.BPM = req.BPM
		} else {
			bp.BPM = 120
		}
	}
	if bp.Title == "" {
		bp.Title = "Untitled Song"
	}
	if bp.Lyrics == nil {
		bp.Lyrics = map[string]string{}
	}

	for i := range bp.Sections {
		if bp.Sections[i].ID == "" {
			bp.Sections[i].ID = fmt.Sprintf("sec_%d", i+1)
		}
		if bp.Sections[i].Bars <= 0 {
			bp.Sections[i].Bars = 8
		}
	}

	return bp, nil
}
