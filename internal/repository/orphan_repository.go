package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"drawing-review-api/internal/domain"
)

// OrphanRepository defines data access for orphaned upload records
type OrphanRepository interface {
	Create(ctx context.Context, orphan *domain.OrphanedUpload) error
	FindUnresolved(ctx context.Context) ([]*domain.OrphanedUpload, error)
	MarkResolved(ctx context.Context, id uuid.UUID) error
}

// orphanRepositoryImpl is the GORM implementation of OrphanRepository
type orphanRepositoryImpl struct {
	db *gorm.DB
}

// NewOrphanRepository creates a new instance of OrphanRepository
func NewOrphanRepository(db *gorm.DB) OrphanRepository {
	return &orphanRepositoryImpl{db: db}
}

// Create records an orphaned upload for later reconciliation
func (r *orphanRepositoryImpl) Create(ctx context.Context, orphan *domain.OrphanedUpload) error {
	if err := r.db.WithContext(ctx).Create(orphan).Error; err != nil {
		return err
	}
	return nil
}

// FindUnresolved returns all orphaned uploads not yet reconciled
func (r *orphanRepositoryImpl) FindUnresolved(ctx context.Context) ([]*domain.OrphanedUpload, error) {
	var orphans []*domain.OrphanedUpload
	if err := r.db.WithContext(ctx).
		Where("resolved_at IS NULL").
		Order("created_at ASC").
		Find(&orphans).Error; err != nil {
		return nil, err
	}
	return orphans, nil
}

// MarkResolved stamps an orphaned upload as reconciled
func (r *orphanRepositoryImpl) MarkResolved(ctx context.Context, id uuid.UUID) error {
	now := time.Now().UTC()
	if err := r.db.WithContext(ctx).
		Model(&domain.OrphanedUpload{}).
		Where("id = ?", id).
		Update("resolved_at", now).Error; err != nil {
		return err
	}
	return nil
}
