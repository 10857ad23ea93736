package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"drawing-review-api/internal/client"
	"drawing-review-api/internal/domain"
	"drawing-review-api/internal/dto"
	"drawing-review-api/internal/metrics"
	"drawing-review-api/internal/repository"
	"drawing-review-api/internal/response"
)

// ReviewService defines the interface for review business logic
type ReviewService interface {
	Review(ctx context.Context, drawingID uuid.UUID, reviewerID uuid.UUID, req *dto.ReviewRequest) (*dto.ReviewOutcomeResponse, error)
	OpenClientReview(ctx context.Context, drawingID uuid.UUID, actorID uuid.UUID) (*dto.DrawingResponse, error)
	GetReviews(ctx context.Context, drawingID uuid.UUID) ([]*dto.ReviewResponse, error)
	GetSubmissionReviews(ctx context.Context, submissionID uuid.UUID) ([]*dto.ReviewResponse, error)
}

// reviewServiceImpl is the implementation of ReviewService
type reviewServiceImpl struct {
	drawingRepo        repository.DrawingRepository
	reviewRepo         repository.ReviewRepository
	workflowRepo       repository.WorkflowRepository
	s3Client           client.S3ClientInterface
	permissionClient   client.PermissionClient
	notificationClient client.NotificationClient
	metrics            *metrics.Metrics
	logger             *zap.Logger
}

// NewReviewService creates a new instance of ReviewService
func NewReviewService(
	drawingRepo repository.DrawingRepository,
	reviewRepo repository.ReviewRepository,
	workflowRepo repository.WorkflowRepository,
	s3Client client.S3ClientInterface,
	permissionClient client.PermissionClient,
	notificationClient client.NotificationClient,
	m *metrics.Metrics,
	logger *zap.Logger,
) ReviewService {
	return &reviewServiceImpl{
		drawingRepo:        drawingRepo,
		reviewRepo:         reviewRepo,
		workflowRepo:       workflowRepo,
		s3Client:           s3Client,
		permissionClient:   permissionClient,
		notificationClient: notificationClient,
		metrics:            m,
		logger:             logger,
	}
}

// Review records a reviewer decision against the drawing's current
// submission and transitions both statuses through the state table
func (s *reviewServiceImpl) Review(ctx context.Context, drawingID uuid.UUID, reviewerID uuid.UUID, req *dto.ReviewRequest) (*dto.ReviewOutcomeResponse, error) {
	if !req.ReviewType.IsValid() {
		return nil, response.NewValidationError("Unknown review type: " + string(req.ReviewType))
	}
	if !req.Decision.IsValid() {
		return nil, response.NewValidationError("Unknown decision: " + string(req.Decision))
	}
	if req.Decision.RequiresComments() && strings.TrimSpace(req.Comments) == "" {
		return nil, response.NewValidationError("Comments are required when rejecting or requesting revision")
	}

	action := client.ActionReviewInternal
	if req.ReviewType == domain.ReviewTypeClient {
		action = client.ActionReviewClient
	}
	allowed, err := s.permissionClient.CanPerform(ctx, reviewerID, action, drawingID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check permission", err.Error())
	}
	if !allowed {
		return nil, response.NewPermissionDeniedError("No permission to review this drawing")
	}

	var recorded *domain.Review
	drawing, err := s.workflowRepo.ApplyReview(ctx, drawingID, func(drawing *domain.Drawing, current *domain.Submission) (*domain.Review, error) {
		nextDrawing, nextSubmission, ok := MapReviewStatus(drawing.Status, req.ReviewType, req.Decision)
		if !ok {
			return nil, repository.ErrIllegalTransition
		}

		drawing.Status = nextDrawing
		current.Status = nextSubmission

		recorded = &domain.Review{
			ReviewerID: reviewerID,
			ReviewType: req.ReviewType,
			Decision:   req.Decision,
			Comments:   req.Comments,
			ReviewedAt: time.Now().UTC(),
		}
		return recorded, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrIllegalTransition):
			return nil, response.NewStateConflictError("Review is not legal for the drawing's current status")
		case errors.Is(err, repository.ErrNoCurrentSubmission):
			return nil, response.NewStateConflictError("Drawing has no submission to review")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, response.NewNotFoundError("Drawing not found")
		default:
			return nil, response.NewAppError(response.ErrCodePersistence, "Failed to record review", err.Error())
		}
	}

	if s.metrics != nil {
		s.metrics.IncrementReviewRecorded(string(req.ReviewType), string(req.Decision))
	}

	s.logger.Info("Review recorded",
		zap.String("drawing_id", drawingID.String()),
		zap.String("reviewer_id", reviewerID.String()),
		zap.String("review_type", string(req.ReviewType)),
		zap.String("decision", string(req.Decision)),
		zap.String("drawing_status", string(drawing.Status)),
	)

	s.notify(client.NotificationEvent{
		Type:      client.NotificationDrawingReviewed,
		ActorID:   reviewerID,
		DrawingID: drawingID,
		ProjectID: drawing.ProjectID,
		NewStatus: string(drawing.Status),
		Metadata: map[string]interface{}{
			"review_type": string(req.ReviewType),
			"decision":    string(req.Decision),
		},
	})

	return &dto.ReviewOutcomeResponse{
		Review:  toReviewResponse(recorded),
		Drawing: toDrawingResponse(drawing, s.s3Client),
	}, nil
}

// OpenClientReview transitions a drawing from ready_for_client_review to
// client_reviewing. This is an explicit workflow step, not a review decision,
// so no review record is produced.
func (s *reviewServiceImpl) OpenClientReview(ctx context.Context, drawingID uuid.UUID, actorID uuid.UUID) (*dto.DrawingResponse, error) {
	allowed, err := s.permissionClient.CanPerform(ctx, actorID, client.ActionReviewClient, drawingID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check permission", err.Error())
	}
	if !allowed {
		return nil, response.NewPermissionDeniedError("No permission to open client review")
	}

	drawing, err := s.workflowRepo.OpenClientReview(ctx, drawingID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotReadyForClient):
			return nil, response.NewStateConflictError("Drawing is not ready for client review")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, response.NewNotFoundError("Drawing not found")
		default:
			return nil, response.NewAppError(response.ErrCodePersistence, "Failed to open client review", err.Error())
		}
	}

	s.logger.Info("Client review opened",
		zap.String("drawing_id", drawingID.String()),
		zap.String("actor_id", actorID.String()),
	)

	s.notify(client.NotificationEvent{
		Type:      client.NotificationClientReviewOpened,
		ActorID:   actorID,
		DrawingID: drawingID,
		ProjectID: drawing.ProjectID,
		NewStatus: string(drawing.Status),
	})

	return toDrawingResponse(drawing, s.s3Client), nil
}

// GetReviews returns the full review audit trail for a drawing
func (s *reviewServiceImpl) GetReviews(ctx context.Context, drawingID uuid.UUID) ([]*dto.ReviewResponse, error) {
	if _, err := s.drawingRepo.FindByID(ctx, drawingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Drawing not found")
		}
		return nil, response.NewAppError(response.ErrCodePersistence, "Failed to load drawing", err.Error())
	}

	reviews, err := s.reviewRepo.FindByDrawingID(ctx, drawingID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodePersistence, "Failed to load reviews", err.Error())
	}

	responses := make([]*dto.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		responses = append(responses, toReviewResponse(review))
	}
	return responses, nil
}

// GetSubmissionReviews returns the reviews recorded against one submission
func (s *reviewServiceImpl) GetSubmissionReviews(ctx context.Context, submissionID uuid.UUID) ([]*dto.ReviewResponse, error) {
	reviews, err := s.reviewRepo.FindBySubmissionID(ctx, submissionID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodePersistence, "Failed to load reviews", err.Error())
	}

	responses := make([]*dto.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		responses = append(responses, toReviewResponse(review))
	}
	return responses, nil
}

// notify delivers a workflow notification without blocking or failing the
// operation that triggered it
func (s *reviewServiceImpl) notify(event client.NotificationEvent) {
	if s.notificationClient == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.notificationClient.SendNotification(ctx, event); err != nil {
			s.logger.Warn("Failed to send notification",
				zap.String("type", string(event.Type)),
				zap.String("drawing_id", event.DrawingID.String()),
				zap.Error(err),
			)
		}
	}()
}
