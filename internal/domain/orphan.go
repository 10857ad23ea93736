package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrphanedUpload records a blob that could not be removed during the
// compensating delete after a failed submission commit. The file exists in
// the blob store but no submission references it; the reconciliation job
// retries the delete until the row is resolved.
type OrphanedUpload struct {
	BaseModel
	DrawingID  uuid.UUID  `gorm:"type:uuid;not null;index:idx_orphaned_uploads_drawing_id" json:"drawing_id"`
	FileKey    string     `gorm:"type:text;not null" json:"file_key"`
	Reason     string     `gorm:"type:text" json:"reason"`
	ResolvedAt *time.Time `gorm:"type:timestamp;index:idx_orphaned_uploads_resolved_at" json:"resolved_at"`
}

// TableName specifies the table name for OrphanedUpload
func (OrphanedUpload) TableName() string {
	return "orphaned_uploads"
}
