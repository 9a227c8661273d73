package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/types"
)

// SaveResume inserts a resume, filling ContentHash when empty
func (db *DB) SaveResume(ctx context.Context, resume *types.Resume) error {
	id, err := uuid.Parse(resume.ID)
	if err != nil {
		return fmt.Errorf("invalid resume id %q: %w", resume.ID, err)
	}
	if resume.ContentHash == "" {
		resume.ContentHash = ingestion.HashText(resume.Content)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO resumes (id, title, content, content_hash, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET title = $2, content = $3, content_hash = $4`,
		id, resume.Title, resume.Content, resume.ContentHash, resume.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save resume: %w", err)
	}
	return nil
}

// GetResume retrieves a resume by ID, returning nil when it does not exist
func (db *DB) GetResume(ctx context.Context, resumeID string) (*types.Resume, error) {
	id, err := uuid.Parse(resumeID)
	if err != nil {
		return nil, nil
	}

	var resume types.Resume
	var rowID uuid.UUID
	err = db.pool.QueryRow(ctx,
		`SELECT id, title, content, content_hash, created_at FROM resumes WHERE id = $1`,
		id,
	).Scan(&rowID, &resume.Title, &resume.Content, &resume.ContentHash, &resume.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	resume.ID = rowID.String()
	resume.CreatedAt = resume.CreatedAt.UTC()
	return &resume, nil
}
