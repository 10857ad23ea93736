package repository

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"drawing-review-api/internal/domain"
)

// nextVersionNumber allocates the next submission version for a drawing.
// It must only be called from a transaction that already holds the drawing
// row lock: the lock serializes concurrent submitters, so the max-plus-one
// read cannot race. The unique index on (drawing_id, version_number) rejects
// any duplicate that would slip through regardless.
//
// Superseded submissions count toward the maximum, so version numbers are
// never reused even after a rejection round.
func nextVersionNumber(tx *gorm.DB, drawingID uuid.UUID) (int, error) {
	var maxVersion int
	err := tx.Model(&domain.Submission{}).
		Where("drawing_id = ?", drawingID).
		Select("COALESCE(MAX(version_number), 0)").
		Scan(&maxVersion).Error
	if err != nil {
		return 0, fmt.Errorf("failed to read max version number: %w", err)
	}
	return maxVersion + 1, nil
}
