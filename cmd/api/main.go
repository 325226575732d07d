package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/calliope-labs/songforge/internal/adapters/elevenlabs"
	"github.com/calliope-labs/songforge/internal/adapters/musicgen"
	"github.com/calliope-labs/songforge/internal/adapters/ollama"
	"github.com/calliope-labs/songforge/internal/adapters/rest"
	"github.com/calliope-labs/songforge/internal/adapters/sqlite"
	"github.com/calliope-labs/songforge/internal/adapters/stableaudio"
	"github.com/calliope-labs/songforge/internal/config"
	"github.com/calliope-labs/songforge/internal/core/hitmaker"
	"github.com/calliope-labs/songforge/internal/core/ports"
	"github.com/calliope-labs/songforge/internal/core/services"
	"github.com/calliope-labs/songforge/internal/worker"
)

func main() {
	cfg := config.Load()

	// Database adapter: one SQLite file backs every repository port.
	repo, err := sqlite.NewAdapter(cfg.DBPath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	defer repo.Close()

	// Blueprint generation: the fake engine is always available as a
	// fallback; the LLM engine is primary only when configured.
	fakeGen := services.NewFakeGenerator()
	var blueprints *services.BlueprintService
	if cfg.SongEngineMode == config.SongEngineLLM {
		llm := ollama.NewClient(cfg.OllamaHost, cfg.LLMModel)
		blueprints = services.NewBlueprintService(llm, fakeGen, repo)
	} else {
		blueprints = services.NewBlueprintService(fakeGen, nil, repo)
	}

	// Instrumental engines, resolved per render request.
	engineFor := buildEngineFactory(cfg)

	// Background loudness analysis.
	pool := worker.NewPool(repo, cfg.QueueSize)
	pool.Start(cfg.WorkerCount)
	defer pool.Stop()

	projects := services.NewProjectService(repo)
	hm := services.NewHitMakerService(hitmaker.New(), repo, repo)
	renders := services.NewRenderService(repo, repo, repo, engineFor, pool)

	var vocals ports.VocalSynthesizer
	if cfg.ElevenLabsAPIKey != "" {
		ttsClient, err := elevenlabs.NewClient(cfg.ElevenLabsAPIKey, cfg.ElevenLabsBaseURL, cfg.ElevenLabsDefaultModel)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize ElevenLabs client: %v", err)
		}
		vocals = ttsClient
	}

	handler := rest.NewHandler(blueprints, projects, hm, renders, vocals, rest.AppInfo{
		Name:          cfg.AppName,
		Version:       cfg.AppVersion,
		AudioProvider: cfg.AudioProvider,
		ExternalAudio: cfg.ExternalAudioConfigured(),
	})

	log.Println("------------------------------------------------")
	log.Printf("🎵 Songforge API is running on %s", cfg.Addr)
	log.Printf("   song engine: %s, audio provider: %s", cfg.SongEngineMode, cfg.AudioProvider)
	log.Println("------------------------------------------------")

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Fatal(err)
		}
	case <-ctx.Done():
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
}

// buildEngineFactory resolves engine types to instrumental engines. A
// provider that is requested but not fully configured degrades to the
// fake engine with a warning instead of failing the render.
func buildEngineFactory(cfg config.Config) services.EngineFactory {
	fake := services.NewFakeInstrumentalEngine()

	var external ports.InstrumentalEngine
	switch cfg.AudioProvider {
	case "stable_audio_http":
		client, err := stableaudio.NewClient(stableaudio.Config{
			BaseURL:     cfg.AudioBaseURL,
			APIKey:      cfg.AudioAPIKey,
			Model:       cfg.AudioModel,
			MaxRetries:  cfg.AudioMaxRetries,
			BaseBackoff: cfg.AudioBackoff,
		})
		if err != nil {
			log.Printf("WARN main: stable audio not available: %v", err)
		} else {
			external = client
		}
	case "musicgen":
		client, err := musicgen.NewClient(musicgen.Config{
			BaseURL:      cfg.AudioBaseURL,
			Version:      cfg.MusicGenVersion,
			APIToken:     cfg.AudioAPIKey,
			TokenURL:     cfg.MusicGenTokenURL,
			ClientID:     cfg.MusicGenClientID,
			ClientSecret: cfg.MusicGenClientSecret,
		})
		if err != nil {
			log.Printf("WARN main: musicgen not available: %v", err)
		} else {
			external = client
		}
	}

	return func(engineType string) ports.InstrumentalEngine {
		switch engineType {
		case "", "fake":
			return fake
		case cfg.AudioProvider:
			if external != nil {
				return external
			}
			log.Printf("WARN main: engine %q not configured, using fake engine", engineType)
			return fake
		default:
			log.Printf("WARN main: unknown engine type %q, using fake engine", engineType)
			return fake
		}
	}
}
