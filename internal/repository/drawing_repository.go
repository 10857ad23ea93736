package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"drawing-review-api/internal/domain"
)

// DrawingRepository defines the interface for drawing data access
type DrawingRepository interface {
	Create(ctx context.Context, drawing *domain.Drawing) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Drawing, error)
	FindByIDWithSubmission(ctx context.Context, id uuid.UUID) (*domain.Drawing, error)
	FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.Drawing, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// drawingRepositoryImpl is the GORM implementation of DrawingRepository
type drawingRepositoryImpl struct {
	db *gorm.DB
}

// NewDrawingRepository creates a new instance of DrawingRepository
func NewDrawingRepository(db *gorm.DB) DrawingRepository {
	return &drawingRepositoryImpl{db: db}
}

// Create creates a new drawing
func (r *drawingRepositoryImpl) Create(ctx context.Context, drawing *domain.Drawing) error {
	if err := r.db.WithContext(ctx).Create(drawing).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a drawing by its ID
func (r *drawingRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Drawing, error) {
	var drawing domain.Drawing
	if err := r.db.WithContext(ctx).First(&drawing, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &drawing, nil
}

// FindByIDWithSubmission finds a drawing with its current submission preloaded
func (r *drawingRepositoryImpl) FindByIDWithSubmission(ctx context.Context, id uuid.UUID) (*domain.Drawing, error) {
	var drawing domain.Drawing
	if err := r.db.WithContext(ctx).
		Preload("CurrentSubmission").
		First(&drawing, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &drawing, nil
}

// FindByProjectID finds all drawings for a project
func (r *drawingRepositoryImpl) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.Drawing, error) {
	var drawings []*domain.Drawing
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("drawing_number ASC").
		Find(&drawings).Error; err != nil {
		return nil, err
	}
	return drawings, nil
}

// Delete soft deletes a drawing. Submissions and reviews are retained for
// audit regardless of drawing lifecycle.
func (r *drawingRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Drawing{}, "id = ?", id).Error; err != nil {
		return err
	}
	return nil
}

// Count returns the number of active drawings
func (r *drawingRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Drawing{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
