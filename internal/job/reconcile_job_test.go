package job

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"drawing-review-api/internal/client"
	"drawing-review-api/internal/domain"
)

// MockOrphanRepository is a mock implementation of OrphanRepository
type MockOrphanRepository struct {
	FindUnresolvedFunc func(ctx context.Context) ([]*domain.OrphanedUpload, error)
	MarkResolvedFunc   func(ctx context.Context, id uuid.UUID) error

	Resolved []uuid.UUID
}

func (m *MockOrphanRepository) Create(ctx context.Context, orphan *domain.OrphanedUpload) error {
	return nil
}

func (m *MockOrphanRepository) FindUnresolved(ctx context.Context) ([]*domain.OrphanedUpload, error) {
	if m.FindUnresolvedFunc != nil {
		return m.FindUnresolvedFunc(ctx)
	}
	return nil, nil
}

func (m *MockOrphanRepository) MarkResolved(ctx context.Context, id uuid.UUID) error {
	if m.MarkResolvedFunc != nil {
		return m.MarkResolvedFunc(ctx, id)
	}
	m.Resolved = append(m.Resolved, id)
	return nil
}

func orphanRow(fileKey string) *domain.OrphanedUpload {
	return &domain.OrphanedUpload{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		DrawingID: uuid.New(),
		FileKey:   fileKey,
		Reason:    "commit failed",
	}
}

func TestReconcileJob_ResolvesOrphans(t *testing.T) {
	orphan := orphanRow("drawings/p/d/2026/01/a.pdf")
	orphanRepo := &MockOrphanRepository{
		FindUnresolvedFunc: func(ctx context.Context) ([]*domain.OrphanedUpload, error) {
			return []*domain.OrphanedUpload{orphan}, nil
		},
	}
	s3 := client.NewMockS3Client()

	job := NewReconcileJob(orphanRepo, s3, nil, zap.NewNop())
	job.Run()

	assert.Equal(t, []uuid.UUID{orphan.ID}, orphanRepo.Resolved)
}

func TestReconcileJob_KeepsOrphanOnDeleteFailure(t *testing.T) {
	orphan := orphanRow("drawings/p/d/2026/01/b.pdf")
	orphanRepo := &MockOrphanRepository{
		FindUnresolvedFunc: func(ctx context.Context) ([]*domain.OrphanedUpload, error) {
			return []*domain.OrphanedUpload{orphan}, nil
		},
	}
	s3 := client.NewMockS3Client()
	s3.DeleteFileFunc = func(ctx context.Context, key string) error {
		return errors.New("service unavailable")
	}

	job := NewReconcileJob(orphanRepo, s3, nil, zap.NewNop())
	job.Run()

	assert.Empty(t, orphanRepo.Resolved)
}

func TestReconcileJob_NoOrphans(t *testing.T) {
	orphanRepo := &MockOrphanRepository{}
	s3 := client.NewMockS3Client()

	job := NewReconcileJob(orphanRepo, s3, nil, zap.NewNop())
	job.Run()

	assert.Empty(t, orphanRepo.Resolved)
}
