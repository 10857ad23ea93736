package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"drawing-review-api/internal/client"
	"drawing-review-api/internal/domain"
	"drawing-review-api/internal/dto"
	"drawing-review-api/internal/metrics"
	"drawing-review-api/internal/repository"
	"drawing-review-api/internal/response"
)

// DrawingService defines the interface for drawing business logic
type DrawingService interface {
	CreateDrawing(ctx context.Context, req *dto.CreateDrawingRequest, createdBy uuid.UUID) (*dto.DrawingResponse, error)
	GetDrawing(ctx context.Context, drawingID uuid.UUID) (*dto.DrawingResponse, error)
	GetDrawingsByProject(ctx context.Context, projectID uuid.UUID) ([]*dto.DrawingResponse, error)
	DeleteDrawing(ctx context.Context, drawingID uuid.UUID, actorID uuid.UUID) error
}

// drawingServiceImpl is the implementation of DrawingService
type drawingServiceImpl struct {
	drawingRepo      repository.DrawingRepository
	s3Client         client.S3ClientInterface
	permissionClient client.PermissionClient
	metrics          *metrics.Metrics
	logger           *zap.Logger
}

// NewDrawingService creates a new instance of DrawingService
func NewDrawingService(
	drawingRepo repository.DrawingRepository,
	s3Client client.S3ClientInterface,
	permissionClient client.PermissionClient,
	m *metrics.Metrics,
	logger *zap.Logger,
) DrawingService {
	return &drawingServiceImpl{
		drawingRepo:      drawingRepo,
		s3Client:         s3Client,
		permissionClient: permissionClient,
		metrics:          m,
		logger:           logger,
	}
}

// CreateDrawing creates a new drawing in draft with no submission
func (s *drawingServiceImpl) CreateDrawing(ctx context.Context, req *dto.CreateDrawingRequest, createdBy uuid.UUID) (*dto.DrawingResponse, error) {
	drawing := &domain.Drawing{
		ProjectID:     req.ProjectID,
		DrawingNumber: req.DrawingNumber,
		Title:         req.Title,
		Discipline:    req.Discipline,
		Status:        domain.DrawingStatusDraft,
		Version:       0,
		CreatedBy:     createdBy,
	}

	if len(req.CustomFields) > 0 {
		fieldsJSON, err := json.Marshal(req.CustomFields)
		if err != nil {
			return nil, response.NewValidationError("Invalid custom fields")
		}
		drawing.CustomFields = datatypes.JSON(fieldsJSON)
	}

	if err := s.drawingRepo.Create(ctx, drawing); err != nil {
		return nil, response.NewAppError(response.ErrCodePersistence, "Failed to create drawing", err.Error())
	}

	s.logger.Info("Drawing created",
		zap.String("drawing_id", drawing.ID.String()),
		zap.String("project_id", drawing.ProjectID.String()),
		zap.String("drawing_number", drawing.DrawingNumber),
	)

	s.updateDrawingCount(ctx)

	return toDrawingResponse(drawing, s.s3Client), nil
}

// GetDrawing returns a drawing with its current submission
func (s *drawingServiceImpl) GetDrawing(ctx context.Context, drawingID uuid.UUID) (*dto.DrawingResponse, error) {
	drawing, err := s.drawingRepo.FindByIDWithSubmission(ctx, drawingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Drawing not found")
		}
		return nil, response.NewAppError(response.ErrCodePersistence, "Failed to load drawing", err.Error())
	}
	return toDrawingResponse(drawing, s.s3Client), nil
}

// GetDrawingsByProject returns all drawings belonging to a project
func (s *drawingServiceImpl) GetDrawingsByProject(ctx context.Context, projectID uuid.UUID) ([]*dto.DrawingResponse, error) {
	drawings, err := s.drawingRepo.FindByProjectID(ctx, projectID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodePersistence, "Failed to load drawings", err.Error())
	}

	responses := make([]*dto.DrawingResponse, 0, len(drawings))
	for _, drawing := range drawings {
		responses = append(responses, toDrawingResponse(drawing, s.s3Client))
	}
	return responses, nil
}

// DeleteDrawing soft deletes a drawing. Submission and review rows are
// retained for audit.
func (s *drawingServiceImpl) DeleteDrawing(ctx context.Context, drawingID uuid.UUID, actorID uuid.UUID) error {
	drawing, err := s.drawingRepo.FindByID(ctx, drawingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Drawing not found")
		}
		return response.NewAppError(response.ErrCodePersistence, "Failed to load drawing", err.Error())
	}

	allowed, err := s.permissionClient.CanPerform(ctx, actorID, client.ActionDeleteDrawing, drawing.ID)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to check permission", err.Error())
	}
	if !allowed {
		return response.NewPermissionDeniedError("No permission to delete this drawing")
	}

	if err := s.drawingRepo.Delete(ctx, drawingID); err != nil {
		return response.NewAppError(response.ErrCodePersistence, "Failed to delete drawing", err.Error())
	}

	s.logger.Info("Drawing deleted",
		zap.String("drawing_id", drawingID.String()),
		zap.String("actor_id", actorID.String()),
	)

	s.updateDrawingCount(ctx)
	return nil
}

// updateDrawingCount refreshes the drawings gauge
func (s *drawingServiceImpl) updateDrawingCount(ctx context.Context) {
	if s.metrics == nil {
		return
	}
	count, err := s.drawingRepo.Count(ctx)
	if err != nil {
		s.logger.Warn("Failed to count drawings for metrics", zap.Error(err))
		return
	}
	s.metrics.SetDrawingsTotal(count)
}
