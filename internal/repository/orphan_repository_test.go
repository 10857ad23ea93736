package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drawing-review-api/internal/domain"
)

func TestOrphanRepository_LifeCycle(t *testing.T) {
	db := setupWorkflowTestDB(t)
	repo := NewOrphanRepository(db)
	ctx := context.Background()

	orphan := &domain.OrphanedUpload{
		DrawingID: uuid.New(),
		FileKey:   "drawings/p/d/2026/01/orphan.pdf",
		Reason:    "deadlock detected",
	}
	require.NoError(t, repo.Create(ctx, orphan))

	unresolved, err := repo.FindUnresolved(ctx)
	require.NoError(t, err)
	require.Len(t, unresolved, 1)
	assert.Equal(t, orphan.FileKey, unresolved[0].FileKey)
	assert.Nil(t, unresolved[0].ResolvedAt)

	require.NoError(t, repo.MarkResolved(ctx, orphan.ID))

	unresolved, err = repo.FindUnresolved(ctx)
	require.NoError(t, err)
	assert.Empty(t, unresolved)
}
