// Package config loads application settings from the environment, with an
// optional .env file for local development.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Modes for the blueprint generation engine.
const (
	SongEngineFake = "fake"
	SongEngineLLM  = "llm"
)

// Config holds every runtime setting. Zero-config startup works: all
// fields default to the local fake providers.
type Config struct {
	AppName    string
	AppVersion string

	Addr   string
	DBPath string

	SongEngineMode string
	OllamaHost     string
	LLMModel       string

	AudioProvider   string
	AudioBaseURL    string
	AudioAPIKey     string
	AudioModel      string
	AudioMaxRetries int
	AudioBackoff    time.Duration

	MusicGenVersion      string
	MusicGenTokenURL     string
	MusicGenClientID     string
	MusicGenClientSecret string

	ElevenLabsAPIKey       string
	ElevenLabsBaseURL      string
	ElevenLabsDefaultModel string

	WorkerCount int
	QueueSize   int
}

// Load reads .env (if present) and the environment. Missing values fall
// back to defaults; nothing here is fatal.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("WARN config: could not load .env file: %v", err)
	}

	return Config{
		AppName:    "Songforge",
		AppVersion: "0.1.0",

		Addr:   envString("SONGFORGE_ADDR", ":8080"),
		DBPath: envString("SONGFORGE_DB_PATH", "songforge.db"),

		SongEngineMode: envString("SONGFORGE_SONG_ENGINE_MODE", SongEngineFake),
		OllamaHost:     envString("SONGFORGE_OLLAMA_HOST", ""),
		LLMModel:       envString("SONGFORGE_LLM_MODEL", ""),

		AudioProvider:   envString("SONGFORGE_AUDIO_PROVIDER", "fake"),
		AudioBaseURL:    envString("SONGFORGE_AUDIO_API_BASE_URL", ""),
		AudioAPIKey:     envString("SONGFORGE_AUDIO_API_KEY", ""),
		AudioModel:      envString("SONGFORGE_AUDIO_MODEL", ""),
		AudioMaxRetries: envInt("SONGFORGE_AUDIO_MAX_RETRIES", 3),
		AudioBackoff:    time.Duration(envInt("SONGFORGE_AUDIO_RETRY_BACKOFF_MS", 500)) * time.Millisecond,

		MusicGenVersion:      envString("SONGFORGE_MUSICGEN_VERSION", ""),
		MusicGenTokenURL:     envString("SONGFORGE_MUSICGEN_TOKEN_URL", ""),
		MusicGenClientID:     envString("SONGFORGE_MUSICGEN_CLIENT_ID", ""),
		MusicGenClientSecret: envString("SONGFORGE_MUSICGEN_CLIENT_SECRET", ""),

		ElevenLabsAPIKey:       envString("SONGFORGE_ELEVENLABS_API_KEY", ""),
		ElevenLabsBaseURL:      envString("SONGFORGE_ELEVENLABS_BASE_URL", ""),
		ElevenLabsDefaultModel: envString("SONGFORGE_ELEVENLABS_DEFAULT_MODEL", ""),

		WorkerCount: envInt("SONGFORGE_WORKER_COUNT", 2),
		QueueSize:   envInt("SONGFORGE_WORKER_QUEUE_SIZE", 100),
	}
}

// ExternalAudioConfigured reports whether the external audio provider can
// actually be used.
func (c Config) ExternalAudioConfigured() bool {
	switch c.AudioProvider {
	case "stable_audio_http":
		return c.AudioBaseURL != "" && c.AudioAPIKey != ""
	case "musicgen":
		if c.AudioBaseURL == "" || c.MusicGenVersion == "" {
			return false
		}
		if c.AudioAPIKey != "" {
			return true
		}
		return c.MusicGenClientID != "" && c.MusicGenClientSecret != "" && c.MusicGenTokenURL != ""
	default:
		return false
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		log.Printf("WARN config: invalid %s value %q, using %d", key, raw, fallback)
		return fallback
	}
	return parsed
}
