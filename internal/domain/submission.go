package domain

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionStatus represents the status of a single submitted version
type SubmissionStatus string

const (
	SubmissionStatusPending           SubmissionStatus = "pending"
	SubmissionStatusInternalApproved  SubmissionStatus = "internal_approved"
	SubmissionStatusReadyForClient    SubmissionStatus = "ready_for_client"
	SubmissionStatusClientApproved    SubmissionStatus = "client_approved"
	SubmissionStatusRejected          SubmissionStatus = "rejected"
	SubmissionStatusRevisionRequested SubmissionStatus = "revision_requested"
)

// Submission represents one uploaded version of a drawing's file.
// Version numbers are strictly increasing per drawing and never reused; the
// unique index on (drawing_id, version_number) backs that invariant at the
// database level. Once superseded, a submission is an immutable historical
// record.
type Submission struct {
	BaseModel
	DrawingID     uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_submissions_drawing_version,priority:1" json:"drawing_id"`
	VersionNumber int              `gorm:"not null;uniqueIndex:idx_submissions_drawing_version,priority:2" json:"version_number"`
	FileKey       string           `gorm:"type:text;not null" json:"file_key"`
	FileName      string           `gorm:"type:varchar(255);not null" json:"file_name"`
	FileSize      int64            `gorm:"not null" json:"file_size"`
	ContentType   string           `gorm:"type:varchar(100);not null" json:"content_type"`
	Status        SubmissionStatus `gorm:"type:varchar(30);not null;default:'pending';index:idx_submissions_status" json:"status"`
	Comments      string           `gorm:"type:text" json:"comments"`
	SubmittedBy   uuid.UUID        `gorm:"type:uuid;not null;index:idx_submissions_submitted_by" json:"submitted_by"`
	SubmittedAt   time.Time        `gorm:"type:timestamp;not null" json:"submitted_at"`

	Reviews []Review `gorm:"foreignKey:SubmissionID" json:"reviews,omitempty"`
}

// TableName specifies the table name for Submission
func (Submission) TableName() string {
	return "submissions"
}
