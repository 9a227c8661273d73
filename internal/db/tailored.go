package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-tailor/internal/types"
)

const tailoredColumns = `id, resume_id, job_description_hash, text, report, plan_id, plan, attempts, met_target, created_at`

// SaveTailoredResume stores a tailored result. An empty ResumeID is stored as NULL.
func (db *DB) SaveTailoredResume(ctx context.Context, tailored *types.TailoredResume) error {
	id, err := uuid.Parse(tailored.ID)
	if err != nil {
		return fmt.Errorf("invalid tailored resume id %q: %w", tailored.ID, err)
	}
	planID, err := uuid.Parse(tailored.PlanID)
	if err != nil {
		return fmt.Errorf("invalid plan id %q: %w", tailored.PlanID, err)
	}
	resumeID, err := nullableID(tailored.ResumeID)
	if err != nil {
		return fmt.Errorf("invalid resume id %q: %w", tailored.ResumeID, err)
	}

	report, err := json.Marshal(tailored.Report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	var plan []byte
	if tailored.Plan != nil {
		if plan, err = json.Marshal(tailored.Plan); err != nil {
			return fmt.Errorf("failed to marshal plan: %w", err)
		}
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO tailored_resumes (`+tailoredColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		id, resumeID, tailored.JobDescriptionHash, tailored.Text, report,
		planID, plan, tailored.Attempts, tailored.MetTarget, tailored.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save tailored resume: %w", err)
	}
	return nil
}

// GetTailoredResume retrieves a tailored result by ID, returning nil when absent
func (db *DB) GetTailoredResume(ctx context.Context, tailoredID string) (*types.TailoredResume, error) {
	id, err := uuid.Parse(tailoredID)
	if err != nil {
		return nil, nil
	}
	row := db.pool.QueryRow(ctx,
		`SELECT `+tailoredColumns+` FROM tailored_resumes WHERE id = $1`, id)
	return scanOptional(row)
}

// GetLatestTailoredResume returns the most recent result for a resume, or nil
func (db *DB) GetLatestTailoredResume(ctx context.Context, resumeID string) (*types.TailoredResume, error) {
	id, err := uuid.Parse(resumeID)
	if err != nil {
		return nil, nil
	}
	row := db.pool.QueryRow(ctx,
		`SELECT `+tailoredColumns+` FROM tailored_resumes
		 WHERE resume_id = $1 ORDER BY created_at DESC LIMIT 1`, id)
	return scanOptional(row)
}

// ListTailoredByResume returns up to limit results for a resume, newest first
func (db *DB) ListTailoredByResume(ctx context.Context, resumeID string, limit int) ([]types.TailoredResume, error) {
	id, err := uuid.Parse(resumeID)
	if err != nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.pool.Query(ctx,
		`SELECT `+tailoredColumns+` FROM tailored_resumes
		 WHERE resume_id = $1 ORDER BY created_at DESC LIMIT $2`, id, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list tailored resumes: %w", err)
	}
	defer rows.Close()

	var results []types.TailoredResume
	for rows.Next() {
		tailored, err := scanTailored(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *tailored)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tailored resumes: %w", err)
	}
	return results, nil
}

func scanOptional(row pgx.Row) (*types.TailoredResume, error) {
	tailored, err := scanTailored(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return tailored, err
}

func scanTailored(row pgx.Row) (*types.TailoredResume, error) {
	var (
		t        types.TailoredResume
		id       uuid.UUID
		resumeID *uuid.UUID
		planID   uuid.UUID
		report   []byte
		plan     []byte
	)
	err := row.Scan(&id, &resumeID, &t.JobDescriptionHash, &t.Text, &report,
		&planID, &plan, &t.Attempts, &t.MetTarget, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan tailored resume: %w", err)
	}

	t.ID = id.String()
	t.PlanID = planID.String()
	if resumeID != nil {
		t.ResumeID = resumeID.String()
	}
	t.CreatedAt = t.CreatedAt.UTC()
	if err := decodeJSON(report, &t.Report); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	if len(plan) > 0 {
		if err := decodeJSON(plan, &t.Plan); err != nil {
			return nil, fmt.Errorf("failed to decode plan: %w", err)
		}
	}
	return &t, nil
}

// nullableID parses s, mapping the empty string to SQL NULL
func nullableID(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func decodeJSON(raw []byte, v any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, v)
}
