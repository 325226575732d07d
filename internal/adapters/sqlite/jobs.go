package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/calliope-labs/songforge/internal/core/domain"
)

// CreateJob inserts a new render job row.
func (a *Adapter) CreateJob(ctx context.Context, job domain.RenderJob) error {
	query := `
		INSERT INTO render_jobs (id, status, engine_type, model, source_type, source_id, duration_seconds, audio_url, error_message, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := a.db.ExecContext(ctx, query,
		job.ID, job.Status, job.EngineType, job.Model, job.SourceType, job.SourceID,
		job.DurationSeconds, job.AudioURL, job.ErrorMessage, job.CreatedAt, job.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create render job: %w", err)
	}
	return nil
}

// GetJob loads a render job by id.
func (a *Adapter) GetJob(ctx context.Context, id string) (domain.RenderJob, error) {
	row := a.db.QueryRowContext(ctx, `
		SELECT id, status, engine_type, IFNULL(model, ''), source_type, source_id,
			IFNULL(duration_seconds, 0), IFNULL(audio_url, ''), loudness, IFNULL(error_message, ''),
			created_at, updated_at
		FROM render_jobs WHERE id = ?
	`, id)

	var job domain.RenderJob
	var loudness sql.NullFloat64
	if err := row.Scan(
		&job.ID, &job.Status, &job.EngineType, &job.Model, &job.SourceType, &job.SourceID,
		&job.DurationSeconds, &job.AudioURL, &loudness, &job.ErrorMessage,
		&job.CreatedAt, &job.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return domain.RenderJob{}, domain.ErrNotFound
		}
		return domain.RenderJob{}, fmt.Errorf("failed to load render job: %w", err)
	}
	if loudness.Valid {
		job.Loudness = &loudness.Float64
	}
	return job, nil
}

// MarkJobReady records a successful render.
func (a *Adapter) MarkJobReady(ctx context.Context, id, audioURL string, durationSeconds int) error {
	query := `
		UPDATE render_jobs
		SET status = ?, audio_url = ?, duration_seconds = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	res, err := a.db.ExecContext(ctx, query, domain.RenderReady, audioURL, durationSeconds, id)
	if err != nil {
		return fmt.Errorf("failed to mark render job ready: %w", err)
	}
	return requireRow(res, "render job")
}

// MarkJobFailed records a failed render with its error message.
func (a *Adapter) MarkJobFailed(ctx context.Context, id, message string) error {
	query := `
		UPDATE render_jobs SET status = ?, error_message = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`
	res, err := a.db.ExecContext(ctx, query, domain.RenderFailed, message, id)
	if err != nil {
		return fmt.Errorf("failed to mark render job failed: %w", err)
	}
	return requireRow(res, "render job")
}

// SetJobLoudness stores the asynchronously computed loudness value.
func (a *Adapter) SetJobLoudness(ctx context.Context, id string, loudness float64) error {
	query := `
		UPDATE render_jobs SET loudness = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`
	res, err := a.db.ExecContext(ctx, query, loudness, id)
	if err != nil {
		return fmt.Errorf("failed to set render job loudness: %w", err)
	}
	return requireRow(res, "render job")
}
