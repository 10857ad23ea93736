package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"drawing-review-api/internal/domain"
)

// SubmissionRepository defines read access to submission history. Submission
// writes go through the WorkflowRepository so they always run inside a
// transaction holding the drawing row lock.
type SubmissionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
	FindByDrawingID(ctx context.Context, drawingID uuid.UUID) ([]*domain.Submission, error)
	FindByDrawingAndVersion(ctx context.Context, drawingID uuid.UUID, version int) (*domain.Submission, error)
}

// submissionRepositoryImpl is the GORM implementation of SubmissionRepository
type submissionRepositoryImpl struct {
	db *gorm.DB
}

// NewSubmissionRepository creates a new instance of SubmissionRepository
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepositoryImpl{db: db}
}

// FindByID finds a submission by its ID
func (r *submissionRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	var submission domain.Submission
	if err := r.db.WithContext(ctx).First(&submission, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

// FindByDrawingID returns the full version history for a drawing, newest first
func (r *submissionRepositoryImpl) FindByDrawingID(ctx context.Context, drawingID uuid.UUID) ([]*domain.Submission, error) {
	var submissions []*domain.Submission
	if err := r.db.WithContext(ctx).
		Where("drawing_id = ?", drawingID).
		Order("version_number DESC").
		Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}

// FindByDrawingAndVersion finds one submission by drawing and version number
func (r *submissionRepositoryImpl) FindByDrawingAndVersion(ctx context.Context, drawingID uuid.UUID, version int) (*domain.Submission, error) {
	var submission domain.Submission
	if err := r.db.WithContext(ctx).
		Where("drawing_id = ? AND version_number = ?", drawingID, version).
		First(&submission).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}
