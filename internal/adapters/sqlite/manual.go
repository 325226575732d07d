package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/calliope-labs/songforge/internal/core/domain"
)

// CreateProject inserts a new manual project.
func (a *Adapter) CreateProject(ctx context.Context, p domain.Project) error {
	query := `
		INSERT INTO manual_projects (id, name, tempo_bpm, time_signature, key, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := a.db.ExecContext(ctx, query,
		p.ID, p.Name, p.TempoBPM, p.TimeSignature, p.Key, p.Description, p.CreatedAt, p.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// ListProjects returns all projects, most recently updated first.
func (a *Adapter) ListProjects(ctx context.Context) ([]domain.Project, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, name, tempo_bpm, time_signature, IFNULL(key, ''), IFNULL(description, ''), created_at, updated_at
		FROM manual_projects
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.TempoBPM, &p.TimeSignature, &p.Key, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}
	return projects, nil
}

// GetProject loads one project row.
func (a *Adapter) GetProject(ctx context.Context, id string) (domain.Project, error) {
	row := a.db.QueryRowContext(ctx, `
		SELECT id, name, tempo_bpm, time_signature, IFNULL(key, ''), IFNULL(description, ''), created_at, updated_at
		FROM manual_projects WHERE id = ?
	`, id)

	var p domain.Project
	if err := row.Scan(&p.ID, &p.Name, &p.TempoBPM, &p.TimeSignature, &p.Key, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return domain.Project{}, domain.ErrNotFound
		}
		return domain.Project{}, fmt.Errorf("failed to load project: %w", err)
	}
	return p, nil
}

// GetProjectDetail loads a project with all tracks, patterns and notes.
// Tracks come back in channel order, notes in step order.
func (a *Adapter) GetProjectDetail(ctx context.Context, id string) (domain.ProjectDetail, error) {
	project, err := a.GetProject(ctx, id)
	if err != nil {
		return domain.ProjectDetail{}, err
	}

	detail := domain.ProjectDetail{
		Project:  project,
		Tracks:   []domain.Track{},
		Patterns: []domain.Pattern{},
		Notes:    []domain.Note{},
	}

	trackRows, err := a.db.QueryContext(ctx, `
		SELECT id, project_id, name, instrument_type, channel_index, volume, pan, muted, solo
		FROM tracks WHERE project_id = ? ORDER BY channel_index
	`, id)
	if err != nil {
		return domain.ProjectDetail{}, fmt.Errorf("failed to load tracks: %w", err)
	}
	defer trackRows.Close()

	for trackRows.Next() {
		var t domain.Track
		if err := trackRows.Scan(&t.ID, &t.ProjectID, &t.Name, &t.InstrumentType, &t.ChannelIndex, &t.Volume, &t.Pan, &t.Muted, &t.Solo); err != nil {
			return domain.ProjectDetail{}, fmt.Errorf("failed to scan track: %w", err)
		}
		detail.Tracks = append(detail.Tracks, t)
	}
	if err := trackRows.Err(); err != nil {
		return domain.ProjectDetail{}, fmt.Errorf("failed to iterate tracks: %w", err)
	}

	patternRows, err := a.db.QueryContext(ctx, `
		SELECT p.id, p.track_id, p.name, p.length_bars, p.start_bar
		FROM patterns p
		JOIN tracks t ON t.id = p.track_id
		WHERE t.project_id = ?
		ORDER BY t.channel_index, p.start_bar
	`, id)
	if err != nil {
		return domain.ProjectDetail{}, fmt.Errorf("failed to load patterns: %w", err)
	}
	defer patternRows.Close()

	for patternRows.Next() {
		var p domain.Pattern
		if err := patternRows.Scan(&p.ID, &p.TrackID, &p.Name, &p.LengthBars, &p.StartBar); err != nil {
			return domain.ProjectDetail{}, fmt.Errorf("failed to scan pattern: %w", err)
		}
		detail.Patterns = append(detail.Patterns, p)
	}
	if err := patternRows.Err(); err != nil {
		return domain.ProjectDetail{}, fmt.Errorf("failed to iterate patterns: %w", err)
	}

	noteRows, err := a.db.QueryContext(ctx, `
		SELECT n.id, n.pattern_id, n.step_index, n.pitch, n.velocity
		FROM notes n
		JOIN patterns p ON p.id = n.pattern_id
		JOIN tracks t ON t.id = p.track_id
		WHERE t.project_id = ?
		ORDER BY n.pattern_id, n.step_index
	`, id)
	if err != nil {
		return domain.ProjectDetail{}, fmt.Errorf("failed to load notes: %w", err)
	}
	defer noteRows.Close()

	for noteRows.Next() {
		var n domain.Note
		if err := noteRows.Scan(&n.ID, &n.PatternID, &n.StepIndex, &n.Pitch, &n.Velocity); err != nil {
			return domain.ProjectDetail{}, fmt.Errorf("failed to scan note: %w", err)
		}
		detail.Notes = append(detail.Notes, n)
	}
	if err := noteRows.Err(); err != nil {
		return domain.ProjectDetail{}, fmt.Errorf("failed to iterate notes: %w", err)
	}

	return detail, nil
}

// DeleteProject removes a project; tracks, patterns and notes cascade.
func (a *Adapter) DeleteProject(ctx context.Context, id string) error {
	return a.deleteRow(ctx, "manual_projects", id, "project")
}

// CreateTrack inserts a new track.
func (a *Adapter) CreateTrack(ctx context.Context, t domain.Track) error {
	query := `
		INSERT INTO tracks (id, project_id, name, instrument_type, channel_index, volume, pan, muted, solo)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := a.db.ExecContext(ctx, query,
		t.ID, t.ProjectID, t.Name, t.InstrumentType, t.ChannelIndex, t.Volume, t.Pan, t.Muted, t.Solo); err != nil {
		return fmt.Errorf("failed to create track: %w", err)
	}
	return nil
}

// UpdateTrack overwrites the mutable track columns.
func (a *Adapter) UpdateTrack(ctx context.Context, t domain.Track) error {
	query := `
		UPDATE tracks
		SET name = ?, channel_index = ?, volume = ?, pan = ?, muted = ?, solo = ?
		WHERE id = ?
	`
	res, err := a.db.ExecContext(ctx, query, t.Name, t.ChannelIndex, t.Volume, t.Pan, t.Muted, t.Solo, t.ID)
	if err != nil {
		return fmt.Errorf("failed to update track: %w", err)
	}
	return requireRow(res, "track")
}

// GetTrack loads one track row.
func (a *Adapter) GetTrack(ctx context.Context, id string) (domain.Track, error) {
	row := a.db.QueryRowContext(ctx, `
		SELECT id, project_id, name, instrument_type, channel_index, volume, pan, muted, solo
		FROM tracks WHERE id = ?
	`, id)

	var t domain.Track
	if err := row.Scan(&t.ID, &t.ProjectID, &t.Name, &t.InstrumentType, &t.ChannelIndex, &t.Volume, &t.Pan, &t.Muted, &t.Solo); err != nil {
		if err == sql.ErrNoRows {
			return domain.Track{}, domain.ErrNotFound
		}
		return domain.Track{}, fmt.Errorf("failed to load track: %w", err)
	}
	return t, nil
}

// DeleteTrack removes a track; patterns and notes cascade.
func (a *Adapter) DeleteTrack(ctx context.Context, id string) error {
	return a.deleteRow(ctx, "tracks", id, "track")
}

// CreatePattern inserts a new pattern.
func (a *Adapter) CreatePattern(ctx context.Context, p domain.Pattern) error {
	query := `
		INSERT INTO patterns (id, track_id, name, length_bars, start_bar)
		VALUES (?, ?, ?, ?, ?)
	`
	if _, err := a.db.ExecContext(ctx, query, p.ID, p.TrackID, p.Name, p.LengthBars, p.StartBar); err != nil {
		return fmt.Errorf("failed to create pattern: %w", err)
	}
	return nil
}

// UpdatePattern overwrites the mutable pattern columns.
func (a *Adapter) UpdatePattern(ctx context.Context, p domain.Pattern) error {
	query := `
		UPDATE patterns SET name = ?, length_bars = ?, start_bar = ? WHERE id = ?
	`
	res, err := a.db.ExecContext(ctx, query, p.Name, p.LengthBars, p.StartBar, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update pattern: %w", err)
	}
	return requireRow(res, "pattern")
}

// GetPattern loads one pattern row.
func (a *Adapter) GetPattern(ctx context.Context, id string) (domain.Pattern, error) {
	row := a.db.QueryRowContext(ctx,
		"SELECT id, track_id, name, length_bars, start_bar FROM patterns WHERE id = ?", id)

	var p domain.Pattern
	if err := row.Scan(&p.ID, &p.TrackID, &p.Name, &p.LengthBars, &p.StartBar); err != nil {
		if err == sql.ErrNoRows {
			return domain.Pattern{}, domain.ErrNotFound
		}
		return domain.Pattern{}, fmt.Errorf("failed to load pattern: %w", err)
	}
	return p, nil
}

// DeletePattern removes a pattern; notes cascade.
func (a *Adapter) DeletePattern(ctx context.Context, id string) error {
	return a.deleteRow(ctx, "patterns", id, "pattern")
}

// ListPatternNotes returns a pattern's notes in step order.
func (a *Adapter) ListPatternNotes(ctx context.Context, patternID string) ([]domain.Note, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, pattern_id, step_index, pitch, velocity
		FROM notes WHERE pattern_id = ? ORDER BY step_index
	`, patternID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := []domain.Note{}
	for rows.Next() {
		var n domain.Note
		if err := rows.Scan(&n.ID, &n.PatternID, &n.StepIndex, &n.Pitch, &n.Velocity); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notes: %w", err)
	}
	return notes, nil
}

// ReplacePatternNotes swaps the full note set of a pattern in one
// transaction.
func (a *Adapter) ReplacePatternNotes(ctx context.Context, patternID string, notes []domain.Note) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Safety net: auto-rollback if we error before commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM notes WHERE pattern_id = ?", patternID); err != nil {
		return fmt.Errorf("failed to clear old notes: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO notes (id, pattern_id, step_index, pitch, velocity)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, n := range notes {
		if _, err := stmt.ExecContext(ctx, n.ID, patternID, n.StepIndex, n.Pitch, n.Velocity); err != nil {
			return fmt.Errorf("failed to save note %s: %w", n.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("transaction commit failed: %w", err)
	}
	return nil
}

func (a *Adapter) deleteRow(ctx context.Context, table, id, kind string) error {
	res, err := a.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id) // #nosec G202 -- table name is a package-internal constant
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", kind, err)
	}
	return requireRow(res, kind)
}

func requireRow(res sql.Result, kind string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to inspect %s result: %w", kind, err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
