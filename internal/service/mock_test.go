package service

import (
	"context"

	"github.com/google/uuid"

	"drawing-review-api/internal/domain"
	"drawing-review-api/internal/repository"
)

// MockDrawingRepository is a mock implementation of DrawingRepository
type MockDrawingRepository struct {
	CreateFunc                 func(ctx context.Context, drawing *domain.Drawing) error
	FindByIDFunc               func(ctx context.Context, id uuid.UUID) (*domain.Drawing, error)
	FindByIDWithSubmissionFunc func(ctx context.Context, id uuid.UUID) (*domain.Drawing, error)
	FindByProjectIDFunc        func(ctx context.Context, projectID uuid.UUID) ([]*domain.Drawing, error)
	DeleteFunc                 func(ctx context.Context, id uuid.UUID) error
	CountFunc                  func(ctx context.Context) (int64, error)
}

func (m *MockDrawingRepository) Create(ctx context.Context, drawing *domain.Drawing) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, drawing)
	}
	return nil
}

func (m *MockDrawingRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Drawing, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockDrawingRepository) FindByIDWithSubmission(ctx context.Context, id uuid.UUID) (*domain.Drawing, error) {
	if m.FindByIDWithSubmissionFunc != nil {
		return m.FindByIDWithSubmissionFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockDrawingRepository) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.Drawing, error) {
	if m.FindByProjectIDFunc != nil {
		return m.FindByProjectIDFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *MockDrawingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockDrawingRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// MockSubmissionRepository is a mock implementation of SubmissionRepository
type MockSubmissionRepository struct {
	FindByIDFunc                func(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
	FindByDrawingIDFunc         func(ctx context.Context, drawingID uuid.UUID) ([]*domain.Submission, error)
	FindByDrawingAndVersionFunc func(ctx context.Context, drawingID uuid.UUID, version int) (*domain.Submission, error)
}

func (m *MockSubmissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockSubmissionRepository) FindByDrawingID(ctx context.Context, drawingID uuid.UUID) ([]*domain.Submission, error) {
	if m.FindByDrawingIDFunc != nil {
		return m.FindByDrawingIDFunc(ctx, drawingID)
	}
	return nil, nil
}

func (m *MockSubmissionRepository) FindByDrawingAndVersion(ctx context.Context, drawingID uuid.UUID, version int) (*domain.Submission, error) {
	if m.FindByDrawingAndVersionFunc != nil {
		return m.FindByDrawingAndVersionFunc(ctx, drawingID, version)
	}
	return nil, nil
}

// MockReviewRepository is a mock implementation of ReviewRepository
type MockReviewRepository struct {
	FindByDrawingIDFunc    func(ctx context.Context, drawingID uuid.UUID) ([]*domain.Review, error)
	FindBySubmissionIDFunc func(ctx context.Context, submissionID uuid.UUID) ([]*domain.Review, error)
}

func (m *MockReviewRepository) FindByDrawingID(ctx context.Context, drawingID uuid.UUID) ([]*domain.Review, error) {
	if m.FindByDrawingIDFunc != nil {
		return m.FindByDrawingIDFunc(ctx, drawingID)
	}
	return nil, nil
}

func (m *MockReviewRepository) FindBySubmissionID(ctx context.Context, submissionID uuid.UUID) ([]*domain.Review, error) {
	if m.FindBySubmissionIDFunc != nil {
		return m.FindBySubmissionIDFunc(ctx, submissionID)
	}
	return nil, nil
}

// MockWorkflowRepository is a mock implementation of WorkflowRepository
type MockWorkflowRepository struct {
	CommitSubmissionFunc func(ctx context.Context, drawingID uuid.UUID, submission *domain.Submission) (*domain.Submission, error)
	ApplyReviewFunc      func(ctx context.Context, drawingID uuid.UUID, apply repository.ReviewFunc) (*domain.Drawing, error)
	OpenClientReviewFunc func(ctx context.Context, drawingID uuid.UUID) (*domain.Drawing, error)
}

func (m *MockWorkflowRepository) CommitSubmission(ctx context.Context, drawingID uuid.UUID, submission *domain.Submission) (*domain.Submission, error) {
	if m.CommitSubmissionFunc != nil {
		return m.CommitSubmissionFunc(ctx, drawingID, submission)
	}
	return submission, nil
}

func (m *MockWorkflowRepository) ApplyReview(ctx context.Context, drawingID uuid.UUID, apply repository.ReviewFunc) (*domain.Drawing, error) {
	if m.ApplyReviewFunc != nil {
		return m.ApplyReviewFunc(ctx, drawingID, apply)
	}
	return nil, nil
}

func (m *MockWorkflowRepository) OpenClientReview(ctx context.Context, drawingID uuid.UUID) (*domain.Drawing, error) {
	if m.OpenClientReviewFunc != nil {
		return m.OpenClientReviewFunc(ctx, drawingID)
	}
	return nil, nil
}

// MockOrphanRepository is a mock implementation of OrphanRepository
type MockOrphanRepository struct {
	CreateFunc         func(ctx context.Context, orphan *domain.OrphanedUpload) error
	FindUnresolvedFunc func(ctx context.Context) ([]*domain.OrphanedUpload, error)
	MarkResolvedFunc   func(ctx context.Context, id uuid.UUID) error

	Created []*domain.OrphanedUpload
}

func (m *MockOrphanRepository) Create(ctx context.Context, orphan *domain.OrphanedUpload) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, orphan)
	}
	m.Created = append(m.Created, orphan)
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
	return nil
}
