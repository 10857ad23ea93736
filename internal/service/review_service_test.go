package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"drawing-review-api/internal/client"
	"drawing-review-api/internal/domain"
	"drawing-review-api/internal/dto"
	"drawing-review-api/internal/repository"
	"drawing-review-api/internal/response"
)

func newTestReviewService(
	drawingRepo *MockDrawingRepository,
	workflowRepo *MockWorkflowRepository,
	perm *client.MockPermissionClient,
) ReviewService {
	return NewReviewService(
		drawingRepo,
		&MockReviewRepository{},
		workflowRepo,
		client.NewMockS3Client(),
		perm,
		nil,
		nil,
		zap.NewNop(),
	)
}

// applyingWorkflowRepo runs the review closure against the given drawing and
// submission the way the real repository does inside its transaction
func applyingWorkflowRepo(drawing *domain.Drawing, current *domain.Submission) *MockWorkflowRepository {
	return &MockWorkflowRepository{
		ApplyReviewFunc: func(ctx context.Context, drawingID uuid.UUID, apply repository.ReviewFunc) (*domain.Drawing, error) {
			if drawing.CurrentSubmissionID == nil {
				return nil, repository.ErrNoCurrentSubmission
			}
			review, err := apply(drawing, current)
			if err != nil {
				return nil, err
			}
			review.DrawingID = drawing.ID
			review.SubmissionID = current.ID
			review.ID = uuid.New()
			drawing.CurrentSubmission = current
			return drawing, nil
		},
	}
}

func drawingUnderInternalReview() (*domain.Drawing, *domain.Submission) {
	submissionID := uuid.New()
	submission := &domain.Submission{
		BaseModel:     domain.BaseModel{ID: submissionID},
		VersionNumber: 1,
		Status:        domain.SubmissionStatusPending,
	}
	drawing := &domain.Drawing{
		BaseModel:           domain.BaseModel{ID: uuid.New()},
		ProjectID:           uuid.New(),
		Status:              domain.DrawingStatusPendingInternalReview,
		CurrentSubmissionID: &submissionID,
		Version:             1,
	}
	submission.DrawingID = drawing.ID
	return drawing, submission
}

func TestReview_InternalApproval(t *testing.T) {
	drawing, submission := drawingUnderInternalReview()
	reviewerID := uuid.New()

	svc := newTestReviewService(&MockDrawingRepository{}, applyingWorkflowRepo(drawing, submission), &client.MockPermissionClient{})

	result, err := svc.Review(context.Background(), drawing.ID, reviewerID, &dto.ReviewRequest{
		ReviewType: domain.ReviewTypeInternal,
		Decision:   domain.DecisionApproved,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.DrawingStatusReadyForClientReview, result.Drawing.Status)
	assert.Equal(t, domain.SubmissionStatusInternalApproved, result.Drawing.CurrentSubmission.Status)
	assert.Equal(t, domain.DecisionApproved, result.Review.Decision)
	assert.Equal(t, reviewerID, result.Review.ReviewerID)
	assert.Equal(t, submission.ID, result.Review.SubmissionID)
}

func TestReview_ClientRevisionRequested(t *testing.T) {
	drawing, submission := drawingUnderInternalReview()
	drawing.Status = domain.DrawingStatusClientReviewing
	submission.Status = domain.SubmissionStatusReadyForClient

	svc := newTestReviewService(&MockDrawingRepository{}, applyingWorkflowRepo(drawing, submission), &client.MockPermissionClient{})

	result, err := svc.Review(context.Background(), drawing.ID, uuid.New(), &dto.ReviewRequest{
		ReviewType: domain.ReviewTypeClient,
		Decision:   domain.DecisionRevisionRequested,
		Comments:   "fix dims",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.DrawingStatusRevisionRequested, result.Drawing.Status)
	assert.Equal(t, domain.SubmissionStatusRevisionRequested, result.Drawing.CurrentSubmission.Status)
	assert.Equal(t, "fix dims", result.Review.Comments)
}

func TestReview_CommentsRequiredForRejection(t *testing.T) {
	drawing, _ := drawingUnderInternalReview()
	applyCalled := false
	workflowRepo := &MockWorkflowRepository{
		ApplyReviewFunc: func(ctx context.Context, drawingID uuid.UUID, apply repository.ReviewFunc) (*domain.Drawing, error) {
			applyCalled = true
			return nil, nil
		},
	}

	svc := newTestReviewService(&MockDrawingRepository{}, workflowRepo, &client.MockPermissionClient{})

	for _, decision := range []domain.ReviewDecision{domain.DecisionRejected, domain.DecisionRevisionRequested} {
		_, err := svc.Review(context.Background(), drawing.ID, uuid.New(), &dto.ReviewRequest{
			ReviewType: domain.ReviewTypeInternal,
			Decision:   decision,
			Comments:   "   ",
		})
		assert.Equal(t, response.ErrCodeValidation, appErrorCode(t, err))
	}
	assert.False(t, applyCalled)
}

func TestReview_UnknownTypeAndDecision(t *testing.T) {
	svc := newTestReviewService(&MockDrawingRepository{}, &MockWorkflowRepository{}, &client.MockPermissionClient{})

	_, err := svc.Review(context.Background(), uuid.New(), uuid.New(), &dto.ReviewRequest{
		ReviewType: "external",
		Decision:   domain.DecisionApproved,
	})
	assert.Equal(t, response.ErrCodeValidation, appErrorCode(t, err))

	_, err = svc.Review(context.Background(), uuid.New(), uuid.New(), &dto.ReviewRequest{
		ReviewType: domain.ReviewTypeInternal,
		Decision:   "maybe",
	})
	assert.Equal(t, response.ErrCodeValidation, appErrorCode(t, err))
}

func TestReview_IllegalTransitionLeavesStateUnchanged(t *testing.T) {
	drawing, submission := drawingUnderInternalReview()
	originalDrawingStatus := drawing.Status
	originalSubmissionStatus := submission.Status

	svc := newTestReviewService(&MockDrawingRepository{}, applyingWorkflowRepo(drawing, submission), &client.MockPermissionClient{})

	// Client decision while still under internal review
	_, err := svc.Review(context.Background(), drawing.ID, uuid.New(), &dto.ReviewRequest{
		ReviewType: domain.ReviewTypeClient,
		Decision:   domain.DecisionApproved,
	})

	assert.Equal(t, response.ErrCodeStateConflict, appErrorCode(t, err))
	assert.Equal(t, originalDrawingStatus, drawing.Status)
	assert.Equal(t, originalSubmissionStatus, submission.Status)
}

func TestReview_NoCurrentSubmission(t *testing.T) {
	drawing := &domain.Drawing{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		Status:    domain.DrawingStatusDraft,
	}

	svc := newTestReviewService(&MockDrawingRepository{}, applyingWorkflowRepo(drawing, nil), &client.MockPermissionClient{})

	_, err := svc.Review(context.Background(), drawing.ID, uuid.New(), &dto.ReviewRequest{
		ReviewType: domain.ReviewTypeInternal,
		Decision:   domain.DecisionApproved,
	})

	assert.Equal(t, response.ErrCodeStateConflict, appErrorCode(t, err))
}

func TestReview_PermissionCheckedByReviewType(t *testing.T) {
	drawing, submission := drawingUnderInternalReview()
	drawing.Status = domain.DrawingStatusClientReviewing

	var checkedAction string
	perm := &client.MockPermissionClient{
		CanPerformFunc: func(ctx context.Context, actorID uuid.UUID, action string, drawingID uuid.UUID) (bool, error) {
			checkedAction = action
			return false, nil
		},
	}

	svc := newTestReviewService(&MockDrawingRepository{}, applyingWorkflowRepo(drawing, submission), perm)

	_, err := svc.Review(context.Background(), drawing.ID, uuid.New(), &dto.ReviewRequest{
		ReviewType: domain.ReviewTypeClient,
		Decision:   domain.DecisionApproved,
	})

	assert.Equal(t, response.ErrCodePermissionDenied, appErrorCode(t, err))
	assert.Equal(t, client.ActionReviewClient, checkedAction)
}

func TestReview_DrawingNotFound(t *testing.T) {
	workflowRepo := &MockWorkflowRepository{
		ApplyReviewFunc: func(ctx context.Context, drawingID uuid.UUID, apply repository.ReviewFunc) (*domain.Drawing, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := newTestReviewService(&MockDrawingRepository{}, workflowRepo, &client.MockPermissionClient{})

	_, err := svc.Review(context.Background(), uuid.New(), uuid.New(), &dto.ReviewRequest{
		ReviewType: domain.ReviewTypeInternal,
		Decision:   domain.DecisionApproved,
	})

	assert.Equal(t, response.ErrCodeNotFound, appErrorCode(t, err))
}

func TestOpenClientReview_Success(t *testing.T) {
	drawing, _ := drawingUnderInternalReview()
	drawing.Status = domain.DrawingStatusClientReviewing

	workflowRepo := &MockWorkflowRepository{
		OpenClientReviewFunc: func(ctx context.Context, drawingID uuid.UUID) (*domain.Drawing, error) {
			return drawing, nil
		},
	}

	svc := newTestReviewService(&MockDrawingRepository{}, workflowRepo, &client.MockPermissionClient{})

	result, err := svc.OpenClientReview(context.Background(), drawing.ID, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, domain.DrawingStatusClientReviewing, result.Status)
}

func TestOpenClientReview_NotReady(t *testing.T) {
	workflowRepo := &MockWorkflowRepository{
		OpenClientReviewFunc: func(ctx context.Context, drawingID uuid.UUID) (*domain.Drawing, error) {
			return nil, repository.ErrNotReadyForClient
		},
	}

	svc := newTestReviewService(&MockDrawingRepository{}, workflowRepo, &client.MockPermissionClient{})

	_, err := svc.OpenClientReview(context.Background(), uuid.New(), uuid.New())
	assert.Equal(t, response.ErrCodeStateConflict, appErrorCode(t, err))
}

func TestOpenClientReview_RequiresClientReviewCapability(t *testing.T) {
	var checkedAction string
	perm := &client.MockPermissionClient{
		CanPerformFunc: func(ctx context.Context, actorID uuid.UUID, action string, drawingID uuid.UUID) (bool, error) {
			checkedAction = action
			return false, nil
		},
	}

	svc := newTestReviewService(&MockDrawingRepository{}, &MockWorkflowRepository{}, perm)

	_, err := svc.OpenClientReview(context.Background(), uuid.New(), uuid.New())
	assert.Equal(t, response.ErrCodePermissionDenied, appErrorCode(t, err))
	assert.Equal(t, client.ActionReviewClient, checkedAction)
}

func TestGetReviews(t *testing.T) {
	drawingID := uuid.New()
	drawingRepo := &MockDrawingRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Drawing, error) {
			return &domain.Drawing{BaseModel: domain.BaseModel{ID: drawingID}}, nil
		},
	}
	reviewRepo := &MockReviewRepository{
		FindByDrawingIDFunc: func(ctx context.Context, dID uuid.UUID) ([]*domain.Review, error) {
			return []*domain.Review{
				{BaseModel: domain.BaseModel{ID: uuid.New()}, DrawingID: dID, Decision: domain.DecisionApproved},
			}, nil
		},
	}

	svc := NewReviewService(
		drawingRepo,
		reviewRepo,
		&MockWorkflowRepository{},
		client.NewMockS3Client(),
		&client.MockPermissionClient{},
		nil,
		nil,
		zap.NewNop(),
	)

	reviews, err := svc.GetReviews(context.Background(), drawingID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, domain.DecisionApproved, reviews[0].Decision)
}
