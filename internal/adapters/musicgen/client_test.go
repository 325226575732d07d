package musicgen

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/calliope-labs/songforge/internal/core/domain"
	"github.com/calliope-labs/songforge/internal/core/ports"
)

func testBlueprint() domain.Blueprint {
	return domain.Blueprint{
		SongID: "song_abc",
		Genre:  "edm",
		Mood:   "energetic",
		BPM:    128,
		Sections: []domain.Section{
			{ID: "s1", Type: domain.SectionIntro, Bars: 8},
			{ID: "s2", Type: domain.SectionDrop, Bars: 8},
		},
	}
}

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	c, err := NewClient(Config{
		BaseURL:      url,
		Version:      "musicgen-medium",
		APIToken:     "test-token",
		PollInterval: time.Millisecond,
		PollTimeout:  time.Second,
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestNewClient_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "missing base url", cfg: Config{Version: "v", APIToken: "t"}},
		{name: "missing version", cfg: Config{BaseURL: "http://x", APIToken: "t"}},
		{name: "no credentials", cfg: Config{BaseURL: "http://x", Version: "v"}},
		{name: "partial oauth", cfg: Config{BaseURL: "http://x", Version: "v", ClientID: "id"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewClient(tt.cfg); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	if _, err := NewClient(Config{
		BaseURL: "http://x", Version: "v",
		ClientID: "id", ClientSecret: "secret", TokenURL: "http://x/token",
	}); err != nil {
		t.Fatalf("oauth config rejected: %v", err)
	}
}

func TestClient_RenderBlueprint_PollsUntilSucceeded(t *testing.T) {
	var polls atomic.Int32
	var gotCreate createPredictionRequest
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/predictions":
			gotAuth = r.Header.Get("Authorization")
			if err := json.NewDecoder(r.Body).Decode(&gotCreate); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"pred-1","status":"starting"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/v1/predictions/pred-1":
			if polls.Add(1) < 3 {
				_, _ = w.Write([]byte(`{"id":"pred-1","status":"processing"}`))
				return
			}
			_, _ = w.Write([]byte(`{"id":"pred-1","status":"succeeded","output":["https://cdn.test/out.mp3"]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	url, duration, err := c.RenderBlueprint(context.Background(), testBlueprint(), ports.RenderOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://cdn.test/out.mp3" {
		t.Fatalf("audio url: %q", url)
	}
	// 16 bars at 128 bpm in 4/4 is 30 seconds.
	if duration != 30 || gotCreate.Input.Duration != 30 {
		t.Fatalf("duration: %d/%d", duration, gotCreate.Input.Duration)
	}
	if gotAuth != "Token test-token" {
		t.Fatalf("authorization header: %q", gotAuth)
	}
	if gotCreate.Version != "musicgen-medium" {
		t.Fatalf("version: %q", gotCreate.Version)
	}
	if polls.Load() != 3 {
		t.Fatalf("polls: %d", polls.Load())
	}
}

func TestClient_FailedPrediction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"pred-2","status":"starting"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"pred-2","status":"failed","error":"NSFW content detected"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, _, err := c.RenderBlueprint(context.Background(), testBlueprint(), ports.RenderOptions{})
	if err == nil {
		t.Fatal("expected error for failed prediction")
	}
}

func TestClient_CreateRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	if _, _, err := c.RenderBlueprint(context.Background(), testBlueprint(), ports.RenderOptions{}); err == nil {
		t.Fatal("expected error for rejected create")
	}
}

func TestClient_PollTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"pred-3","status":"starting"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"pred-3","status":"processing"}`))
	}))
	defer srv.Close()

	c, err := NewClient(Config{
		BaseURL:      srv.URL,
		Version:      "musicgen-medium",
		APIToken:     "t",
		PollInterval: time.Millisecond,
		PollTimeout:  20 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, _, err := c.RenderBlueprint(context.Background(), testBlueprint(), ports.RenderOptions{}); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestAudioURLFromOutput(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "string output", raw: `"https://cdn.test/a.mp3"`, want: "https://cdn.test/a.mp3"},
		{name: "list output", raw: `["https://cdn.test/b.mp3","https://cdn.test/c.mp3"]`, want: "https://cdn.test/b.mp3"},
		{name: "empty list", raw: `[]`, wantErr: true},
		{name: "empty", raw: ``, wantErr: true},
		{name: "object", raw: `{"weird":true}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := audioURLFromOutput(json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err=%v, wantErr=%v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderDuration(t *testing.T) {
	tests := []struct {
		bars, bpm, override, want int
	}{
		{bars: 16, bpm: 128, want: 30},
		{bars: 1, bpm: 200, want: 8},
		{bars: 1000, bpm: 60, want: 600},
		{bars: 16, bpm: 0, want: 32},
		{bars: 16, bpm: 128, override: 45, want: 45},
	}

	for _, tt := range tests {
		name := fmt.Sprintf("%dbars_%dbpm_%dovr", tt.bars, tt.bpm, tt.override)
		t.Run(name, func(t *testing.T) {
			if got := renderDuration(tt.bars, tt.bpm, tt.override); got != tt.want {
				t.Fatalf("got %d, want %d", got, tt.want)
			}
		})
	}
}
