package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"drawing-review-api/internal/domain"
)

// ReviewFunc validates a review decision against the locked drawing and its
// current submission, mutates their statuses, and returns the review record
// to append. Returning an error rolls the transaction back with no state
// change.
type ReviewFunc func(drawing *domain.Drawing, current *domain.Submission) (*domain.Review, error)

// WorkflowRepository provides the multi-record transactional writes of the
// submission workflow. Every operation takes a row-level lock on the drawing
// being mutated, so all mutations to one drawing are serialized while
// different drawings proceed independently.
type WorkflowRepository interface {
	// CommitSubmission allocates the next version number and writes the new
	// submission together with the drawing update in a single transaction.
	// The drawing's submittability is re-checked under the lock.
	CommitSubmission(ctx context.Context, drawingID uuid.UUID, submission *domain.Submission) (*domain.Submission, error)

	// ApplyReview updates drawing status, current submission status and the
	// appended review record in a single transaction.
	ApplyReview(ctx context.Context, drawingID uuid.UUID, apply ReviewFunc) (*domain.Drawing, error)

	// OpenClientReview performs the explicit ready_for_client_review to
	// client_reviewing transition, moving the current submission to
	// ready_for_client. No review record is written.
	OpenClientReview(ctx context.Context, drawingID uuid.UUID) (*domain.Drawing, error)
}

// workflowRepositoryImpl is the GORM implementation of WorkflowRepository
type workflowRepositoryImpl struct {
	db *gorm.DB
}

// NewWorkflowRepository creates a new instance of WorkflowRepository
func NewWorkflowRepository(db *gorm.DB) WorkflowRepository {
	return &workflowRepositoryImpl{db: db}
}

// lockDrawing loads the drawing under a FOR UPDATE lock. SQLite has no row
// locks; its single-writer lock serializes the transaction anyway, so the
// clause is only added on Postgres.
func lockDrawing(tx *gorm.DB, drawingID uuid.UUID) (*domain.Drawing, error) {
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var drawing domain.Drawing
	if err := q.First(&drawing, "id = ?", drawingID).Error; err != nil {
		return nil, err
	}
	return &drawing, nil
}

// CommitSubmission writes the submission and the drawing update atomically
func (r *workflowRepositoryImpl) CommitSubmission(ctx context.Context, drawingID uuid.UUID, submission *domain.Submission) (*domain.Submission, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		drawing, err := lockDrawing(tx, drawingID)
		if err != nil {
			return err
		}

		if !drawing.IsSubmittable() {
			return ErrNotSubmittable
		}

		version, err := nextVersionNumber(tx, drawingID)
		if err != nil {
			return err
		}

		submission.DrawingID = drawingID
		submission.VersionNumber = version
		submission.Status = domain.SubmissionStatusPending
		if submission.SubmittedAt.IsZero() {
			submission.SubmittedAt = time.Now().UTC()
		}

		if err := tx.Create(submission).Error; err != nil {
			return err
		}

		return tx.Model(&domain.Drawing{}).
			Where("id = ?", drawingID).
			Updates(map[string]interface{}{
				"status":                domain.DrawingStatusPendingInternalReview,
				"current_submission_id": submission.ID,
				"version":               version,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return submission, nil
}

// ApplyReview applies a review decision atomically
func (r *workflowRepositoryImpl) ApplyReview(ctx context.Context, drawingID uuid.UUID, apply ReviewFunc) (*domain.Drawing, error) {
	var result *domain.Drawing

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		drawing, err := lockDrawing(tx, drawingID)
		if err != nil {
			return err
		}

		if drawing.CurrentSubmissionID == nil {
			return ErrNoCurrentSubmission
		}

		var current domain.Submission
		if err := tx.First(&current, "id = ?", *drawing.CurrentSubmissionID).Error; err != nil {
			return err
		}

		review, err := apply(drawing, &current)
		if err != nil {
			return err
		}

		review.DrawingID = drawingID
		review.SubmissionID = current.ID
		if review.ReviewedAt.IsZero() {
			review.ReviewedAt = time.Now().UTC()
		}

		if err := tx.Model(&domain.Drawing{}).
			Where("id = ?", drawingID).
			Update("status", drawing.Status).Error; err != nil {
			return err
		}

		if err := tx.Model(&domain.Submission{}).
			Where("id = ?", current.ID).
			Update("status", current.Status).Error; err != nil {
			return err
		}

		if err := tx.Create(review).Error; err != nil {
			return err
		}

		drawing.CurrentSubmission = &current
		result = drawing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// OpenClientReview transitions the drawing into client review
func (r *workflowRepositoryImpl) OpenClientReview(ctx context.Context, drawingID uuid.UUID) (*domain.Drawing, error) {
	var result *domain.Drawing

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		drawing, err := lockDrawing(tx, drawingID)
		if err != nil {
			return err
		}

		if drawing.Status != domain.DrawingStatusReadyForClientReview {
			return ErrNotReadyForClient
		}

		if err := tx.Model(&domain.Drawing{}).
			Where("id = ?", drawingID).
			Update("status", domain.DrawingStatusClientReviewing).Error; err != nil {
			return err
		}

		if drawing.CurrentSubmissionID != nil {
			if err := tx.Model(&domain.Submission{}).
				Where("id = ?", *drawing.CurrentSubmissionID).
				Update("status", domain.SubmissionStatusReadyForClient).Error; err != nil {
				return err
			}
		}

		drawing.Status = domain.DrawingStatusClientReviewing
		result = drawing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
