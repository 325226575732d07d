// Package sqlite provides SQLite-backed implementations of the repository
// ports for blueprints, manual projects and render jobs.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/calliope-labs/songforge/internal/core/domain"
	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously
)

// Adapter implements the repository ports on a single SQLite database.
type Adapter struct {
	db *sql.DB
}

// NewAdapter opens the database, enables foreign key enforcement and runs
// the schema migration.
func NewAdapter(storagePath string) (*Adapter, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on", storagePath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	// SQLite serializes writes; a single pooled connection also keeps
	// in-memory databases from splitting across connections.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	adapter := &Adapter{db: db}

	if err := adapter.migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return adapter, nil
}

// Close ensures the DB connection is closed gracefully.
func (a *Adapter) Close() error {
	return a.db.Close()
}

// SaveBlueprint upserts the blueprint, storing the full document as JSON
// alongside indexed metadata columns.
func (a *Adapter) SaveBlueprint(ctx context.Context, bp domain.Blueprint) error {
	doc, err := json.Marshal(bp)
	if err != nil {
		return fmt.Errorf("failed to encode blueprint: %w", err)
	}

	query := `
		INSERT INTO blueprints (song_id, title, genre, mood, bpm, blueprint_json)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(song_id) DO UPDATE SET
			title=excluded.title,
			genre=excluded.genre,
			mood=excluded.mood,
			bpm=excluded.bpm,
			blueprint_json=excluded.blueprint_json;
	`
	if _, err := a.db.ExecContext(ctx, query, bp.SongID, bp.Title, bp.Genre, bp.Mood, bp.BPM, string(doc)); err != nil {
		return fmt.Errorf("failed to save blueprint: %w", err)
	}
	return nil
}

// GetBlueprint loads a blueprint by song id.
func (a *Adapter) GetBlueprint(ctx context.Context, id string) (domain.Blueprint, error) {
	row := a.db.QueryRowContext(ctx, "SELECT blueprint_json FROM blueprints WHERE song_id = ?", id)

	var doc string
	if err := row.Scan(&doc); err != nil {
		if err == sql.ErrNoRows {
			return domain.Blueprint{}, domain.ErrNotFound
		}
		return domain.Blueprint{}, fmt.Errorf("failed to load blueprint: %w", err)
	}

	var bp domain.Blueprint
	if err := json.Unmarshal([]byte(doc), &bp); err != nil {
		return domain.Blueprint{}, fmt.Errorf("failed to decode blueprint: %w", err)
	}
	return bp, nil
}

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS blueprints (
		song_id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		genre TEXT,
		mood TEXT,
		bpm INTEGER,
		blueprint_json TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS manual_projects (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		tempo_bpm INTEGER NOT NULL,
		time_signature TEXT NOT NULL,
		key TEXT,
		description TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tracks (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL,
		name TEXT NOT NULL,
		instrument_type TEXT NOT NULL,
		channel_index INTEGER NOT NULL,
		volume REAL NOT NULL DEFAULT 0.8,
		pan REAL NOT NULL DEFAULT 0,
		muted INTEGER NOT NULL DEFAULT 0,
		solo INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY(project_id) REFERENCES manual_projects(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS patterns (
		id TEXT PRIMARY KEY,
		track_id TEXT NOT NULL,
		name TEXT NOT NULL,
		length_bars INTEGER NOT NULL,
		start_bar INTEGER NOT NULL,
		FOREIGN KEY(track_id) REFERENCES tracks(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS notes (
		id TEXT PRIMARY KEY,
		pattern_id TEXT NOT NULL,
		step_index INTEGER NOT NULL,
		pitch INTEGER NOT NULL,
		velocity INTEGER NOT NULL,
		FOREIGN KEY(pattern_id) REFERENCES patterns(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS render_jobs (
		id TEXT PRIMARY KEY,
		status TEXT NOT NULL,
		engine_type TEXT NOT NULL,
		model TEXT,
		source_type TEXT NOT NULL,
		source_id TEXT NOT NULL,
		duration_seconds INTEGER,
		audio_url TEXT,
		loudness REAL,
		error_message TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_tracks_project ON tracks(project_id);
	CREATE INDEX IF NOT EXISTS idx_patterns_track ON patterns(track_id);
	CREATE INDEX IF NOT EXISTS idx_notes_pattern ON notes(pattern_id);
	`
	if _, err := a.db.Exec(query); err != nil {
		return err
	}
	return nil
}
