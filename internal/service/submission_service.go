package service

import (
	"context"
	"errors"
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

// SubmissionService defines the interface for submission business logic
type SubmissionService interface {
	Submit(ctx context.Context, req *dto.SubmitRequest) (*dto.SubmissionResponse, error)
	GetSubmission(ctx context.Context, submissionID uuid.UUID) (*dto.SubmissionResponse, error)
	GetSubmissionByVersion(ctx context.Context, drawingID uuid.UUID, version int) (*dto.SubmissionResponse, error)
	GetSubmissionHistory(ctx context.Context, drawingID uuid.UUID) ([]*dto.SubmissionResponse, error)
}

// submissionServiceImpl is the implementation of SubmissionService
type submissionServiceImpl struct {
	drawingRepo        repository.DrawingRepository
	submissionRepo     repository.SubmissionRepository
	workflowRepo       repository.WorkflowRepository
	orphanRepo         repository.OrphanRepository
	s3Client           client.S3ClientInterface
	permissionClient   client.PermissionClient
	notificationClient client.NotificationClient
	metrics            *metrics.Metrics
	logger             *zap.Logger
}

// NewSubmissionService creates a new instance of SubmissionService
func NewSubmissionService(
	drawingRepo repository.DrawingRepository,
	submissionRepo repository.SubmissionRepository,
	workflowRepo repository.WorkflowRepository,
	orphanRepo repository.OrphanRepository,
	s3Client client.S3ClientInterface,
	permissionClient client.PermissionClient,
	notificationClient client.NotificationClient,
	m *metrics.Metrics,
	logger *zap.Logger,
) SubmissionService {
	return &submissionServiceImpl{
		drawingRepo:        drawingRepo,
		submissionRepo:     submissionRepo,
		workflowRepo:       workflowRepo,
		orphanRepo:         orphanRepo,
		s3Client:           s3Client,
		permissionClient:   permissionClient,
		notificationClient: notificationClient,
		metrics:            m,
		logger:             logger,
	}
}

// Submit uploads the file and commits the new submission version. The blob
// store and the database are not jointly transactional, so the upload happens
// first and is compensated with a delete if the database commit fails.
func (s *submissionServiceImpl) Submit(ctx context.Context, req *dto.SubmitRequest) (*dto.SubmissionResponse, error) {
	drawing, err := s.drawingRepo.FindByID(ctx, req.DrawingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Drawing not found")
		}
		return nil, response.NewAppError(response.ErrCodePersistence, "Failed to load drawing", err.Error())
	}

	allowed, err := s.permissionClient.CanPerform(ctx, req.SubmittedBy, client.ActionSubmitDrawing, drawing.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check permission", err.Error())
	}
	if !allowed {
		return nil, response.NewPermissionDeniedError("No permission to submit this drawing")
	}

	// Early check to avoid an upload that is doomed to be compensated.
	// Re-checked under the drawing row lock inside the transaction.
	if !drawing.IsSubmittable() {
		return nil, response.NewStateConflictError("Drawing cannot accept a new submission in its current status")
	}

	fileKey := s.s3Client.GenerateFileKey(drawing.ProjectID, drawing.ID, req.FileName)
	if err := s.s3Client.UploadFile(ctx, fileKey, req.File, req.ContentType); err != nil {
		s.logger.Error("Failed to upload submission file",
			zap.String("drawing_id", drawing.ID.String()),
			zap.String("file_key", fileKey),
			zap.Error(err),
		)
		return nil, response.NewAppError(response.ErrCodeStorage, "Failed to upload file", err.Error())
	}

	submission := &domain.Submission{
		FileKey:     fileKey,
		FileName:    req.FileName,
		FileSize:    req.FileSize,
		ContentType: req.ContentType,
		Comments:    req.Comments,
		SubmittedBy: req.SubmittedBy,
		SubmittedAt: time.Now().UTC(),
	}

	created, err := s.workflowRepo.CommitSubmission(ctx, drawing.ID, submission)
	if err != nil {
		s.compensateUpload(drawing.ID, fileKey, err)

		switch {
		case errors.Is(err, repository.ErrNotSubmittable):
			return nil, response.NewStateConflictError("Drawing cannot accept a new submission in its current status")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, response.NewNotFoundError("Drawing not found")
		default:
			return nil, response.NewAppError(response.ErrCodePersistence, "Failed to commit submission", err.Error())
		}
	}

	if s.metrics != nil {
		s.metrics.IncrementSubmissionCreated()
	}

	s.logger.Info("Submission created",
		zap.String("drawing_id", drawing.ID.String()),
		zap.String("submission_id", created.ID.String()),
		zap.Int("version_number", created.VersionNumber),
	)

	s.notify(client.NotificationEvent{
		Type:      client.NotificationDrawingSubmitted,
		ActorID:   req.SubmittedBy,
		DrawingID: drawing.ID,
		ProjectID: drawing.ProjectID,
		NewStatus: string(domain.DrawingStatusPendingInternalReview),
		Metadata: map[string]interface{}{
			"version_number": created.VersionNumber,
			"file_name":      created.FileName,
		},
	})

	return toSubmissionResponse(created, s.s3Client), nil
}

// compensateUpload removes the uploaded file after a failed commit. The
// delete is best-effort; when it also fails the file is recorded as an
// orphaned upload so the reconciliation job can retry it. Compensation runs
// on its own bounded context: the commit often fails precisely because the
// caller's context was cancelled, and a dead context would make the delete
// and the orphan insert fail with it, stranding the blob.
func (s *submissionServiceImpl) compensateUpload(drawingID uuid.UUID, fileKey string, cause error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if s.metrics != nil {
		s.metrics.IncrementCompensationDelete()
	}

	err := s.s3Client.DeleteFile(ctx, fileKey)
	if err == nil {
		s.logger.Warn("Rolled back uploaded file after failed submission commit",
			zap.String("drawing_id", drawingID.String()),
			zap.String("file_key", fileKey),
			zap.Error(cause),
		)
		return
	}

	s.logger.Error("Compensating delete failed, flagging upload for reconciliation",
		zap.String("drawing_id", drawingID.String()),
		zap.String("file_key", fileKey),
		zap.Error(err),
	)

	if s.metrics != nil {
		s.metrics.IncrementCompensationFailure()
	}

	orphan := &domain.OrphanedUpload{
		DrawingID: drawingID,
		FileKey:   fileKey,
		Reason:    cause.Error(),
	}
	if err := s.orphanRepo.Create(ctx, orphan); err != nil {
		s.logger.Error("Failed to record orphaned upload",
			zap.String("file_key", fileKey),
			zap.Error(err),
		)
	}
}

// notify delivers a workflow notification without blocking or failing the
// operation that triggered it
func (s *submissionServiceImpl) notify(event client.NotificationEvent) {
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

// GetSubmission returns a single submission by ID
func (s *submissionServiceImpl) GetSubmission(ctx context.Context, submissionID uuid.UUID) (*dto.SubmissionResponse, error) {
	submission, err := s.submissionRepo.FindByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Submission not found")
		}
		return nil, response.NewAppError(response.ErrCodePersistence, "Failed to load submission", err.Error())
	}
	return toSubmissionResponse(submission, s.s3Client), nil
}

// GetSubmissionByVersion returns the submission at a specific version of a
// drawing's history
func (s *submissionServiceImpl) GetSubmissionByVersion(ctx context.Context, drawingID uuid.UUID, version int) (*dto.SubmissionResponse, error) {
	submission, err := s.submissionRepo.FindByDrawingAndVersion(ctx, drawingID, version)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Submission version not found")
		}
		return nil, response.NewAppError(response.ErrCodePersistence, "Failed to load submission", err.Error())
	}
	return toSubmissionResponse(submission, s.s3Client), nil
}

// GetSubmissionHistory returns the full version history for a drawing,
// newest version first
func (s *submissionServiceImpl) GetSubmissionHistory(ctx context.Context, drawingID uuid.UUID) ([]*dto.SubmissionResponse, error) {
	if _, err := s.drawingRepo.FindByID(ctx, drawingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Drawing not found")
		}
		return nil, response.NewAppError(response.ErrCodePersistence, "Failed to load drawing", err.Error())
	}

	submissions, err := s.submissionRepo.FindByDrawingID(ctx, drawingID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodePersistence, "Failed to load submission history", err.Error())
	}

	responses := make([]*dto.SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		responses = append(responses, toSubmissionResponse(submission, s.s3Client))
	}
	return responses, nil
}
