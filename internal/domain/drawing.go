package domain

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DrawingStatus represents the lifecycle status of a drawing
type DrawingStatus string

const (
	DrawingStatusDraft                 DrawingStatus = "draft"
	DrawingStatusPendingInternalReview DrawingStatus = "pending_internal_review"
	DrawingStatusReadyForClientReview  DrawingStatus = "ready_for_client_review"
	DrawingStatusClientReviewing       DrawingStatus = "client_reviewing"
	DrawingStatusApproved              DrawingStatus = "approved"
	DrawingStatusRejected              DrawingStatus = "rejected"
	DrawingStatusRevisionRequested     DrawingStatus = "revision_requested"
)

// Drawing represents a shop drawing tracked across its review lifecycle.
// Version always mirrors the version number of the submission referenced by
// CurrentSubmissionID (0 while no submission exists).
type Drawing struct {
	BaseModel
	ProjectID           uuid.UUID      `gorm:"type:uuid;not null;index:idx_drawings_project_id" json:"project_id"`
	DrawingNumber       string         `gorm:"type:varchar(100);not null" json:"drawing_number"`
	Title               string         `gorm:"type:varchar(255);not null" json:"title"`
	Discipline          string         `gorm:"type:varchar(100)" json:"discipline"`
	Status              DrawingStatus  `gorm:"type:varchar(30);not null;default:'draft';index:idx_drawings_status" json:"status"`
	CurrentSubmissionID *uuid.UUID     `gorm:"type:uuid" json:"current_submission_id"`
	Version             int            `gorm:"not null;default:0" json:"version"`
	CustomFields        datatypes.JSON `gorm:"type:jsonb" json:"custom_fields"`
	CreatedBy           uuid.UUID      `gorm:"type:uuid;not null;index:idx_drawings_created_by" json:"created_by"`

	CurrentSubmission *Submission  `gorm:"foreignKey:CurrentSubmissionID" json:"current_submission,omitempty"`
	Submissions       []Submission `gorm:"foreignKey:DrawingID" json:"submissions,omitempty"`
}

// TableName specifies the table name for Drawing
func (Drawing) TableName() string {
	return "drawings"
}

// IsSubmittable reports whether a new submission may be created for the
// drawing in its current status. A drawing under active review must first
// reach rejected or revision_requested before accepting a new version.
func (d *Drawing) IsSubmittable() bool {
	switch d.Status {
	case DrawingStatusDraft, DrawingStatusRejected, DrawingStatusRevisionRequested:
		return true
	default:
		return false
	}
}
