package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"drawing-review-api/internal/domain"
)

// ReviewRepository defines read access to the review audit trail. Review rows
// are created only inside WorkflowRepository.ApplyReview and are never
// updated or deleted.
type ReviewRepository interface {
	FindByDrawingID(ctx context.Context, drawingID uuid.UUID) ([]*domain.Review, error)
	FindBySubmissionID(ctx context.Context, submissionID uuid.UUID) ([]*domain.Review, error)
}

// reviewRepositoryImpl is the GORM implementation of ReviewRepository
type reviewRepositoryImpl struct {
	db *gorm.DB
}

// NewReviewRepository creates a new instance of ReviewRepository
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepositoryImpl{db: db}
}

// FindByDrawingID returns all reviews across a drawing's submissions, newest first
func (r *reviewRepositoryImpl) FindByDrawingID(ctx context.Context, drawingID uuid.UUID) ([]*domain.Review, error) {
	var reviews []*domain.Review
	if err := r.db.WithContext(ctx).
		Where("drawing_id = ?", drawingID).
		Order("reviewed_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// FindBySubmissionID returns all reviews for one submission, newest first
func (r *reviewRepositoryImpl) FindBySubmissionID(ctx context.Context, submissionID uuid.UUID) ([]*domain.Review, error) {
	var reviews []*domain.Review
	if err := r.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		Order("reviewed_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}
