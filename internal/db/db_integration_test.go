//go:build integration

package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/types"
)

func getTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	db, err := Connect(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, db.EnsureSchema(ctx))
	t.Cleanup(db.Close)
	return db
}

func cleanupResume(t *testing.T, db *DB, id string) {
	t.Helper()
	_, _ = db.pool.Exec(context.Background(), "DELETE FROM resumes WHERE id = $1", uuid.MustParse(id))
}

func testResume(t *testing.T, db *DB) *types.Resume {
	t.Helper()
	resume := &types.Resume{
		ID:        uuid.NewString(),
		Title:     "Platform Engineer",
		Content:   "Summary\nBuilt Go services.",
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	require.NoError(t, db.SaveResume(context.Background(), resume))
	t.Cleanup(func() { cleanupResume(t, db, resume.ID) })
	return resume
}

func TestIntegration_Resume_SaveAndGet(t *testing.T) {
	db := getTestDB(t)
	ctx := context.Background()
	resume := testResume(t, db)

	assert.Equal(t, ingestion.HashText(resume.Content), resume.ContentHash)

	got, err := db.GetResume(ctx, resume.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, resume.ID, got.ID)
	assert.Equal(t, resume.Content, got.Content)
	assert.True(t, resume.CreatedAt.Equal(got.CreatedAt))

	missing, err := db.GetResume(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestIntegration_Tailored_SaveAndQuery(t *testing.T) {
	db := getTestDB(t)
	ctx := context.Background()
	resume := testResume(t, db)

	base := time.Now().UTC().Truncate(time.Microsecond)
	var ids []string
	for i := 0; i < 3; i++ {
		tailored := &types.TailoredResume{
			ID:                 uuid.NewString(),
			ResumeID:           resume.ID,
			JobDescriptionHash: "hash",
			Text:               "Summary\nBuilt Go services on Kubernetes.",
			Report:             &types.ScoreReport{TotalTokens: 6, Coverage: 1},
			PlanID:             uuid.NewString(),
			Plan:               &types.RewritePlan{TargetDensity: 0.025, ToleranceFactor: 1.5, Ceiling: 0.0375},
			Attempts:           i + 1,
			MetTarget:          true,
			CreatedAt:          base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, db.SaveTailoredResume(ctx, tailored))
		ids = append(ids, tailored.ID)
	}

	got, err := db.GetTailoredResume(ctx, ids[0])
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, resume.ID, got.ResumeID)
	assert.Equal(t, 6, got.Report.TotalTokens)
	require.NotNil(t, got.Plan)
	assert.Equal(t, 1.5, got.Plan.ToleranceFactor)

	latest, err := db.GetLatestTailoredResume(ctx, resume.ID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, ids[2], latest.ID)

	list, err := db.ListTailoredByResume(ctx, resume.ID, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, ids[2], list[0].ID)
	assert.Equal(t, ids[1], list[1].ID)
}

func TestIntegration_Tailored_WithoutResume(t *testing.T) {
	db := getTestDB(t)
	ctx := context.Background()

	tailored := &types.TailoredResume{
		ID:                 uuid.NewString(),
		JobDescriptionHash: "hash",
		Text:               "text",
		Report:             &types.ScoreReport{},
		PlanID:             uuid.NewString(),
		CreatedAt:          time.Now().UTC(),
	}
	require.NoError(t, db.SaveTailoredResume(ctx, tailored))
	t.Cleanup(func() {
		_, _ = db.pool.Exec(ctx, "DELETE FROM tailored_resumes WHERE id = $1", uuid.MustParse(tailored.ID))
	})

	got, err := db.GetTailoredResume(ctx, tailored.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.ResumeID)
	assert.Nil(t, got.Plan)
}
