package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReviewType distinguishes internal review from client review
type ReviewType string

const (
	ReviewTypeInternal ReviewType = "internal"
	ReviewTypeClient   ReviewType = "client"
)

// IsValid reports whether the review type is a known value
func (t ReviewType) IsValid() bool {
	return t == ReviewTypeInternal || t == ReviewTypeClient
}

// ReviewDecision represents a reviewer's decision on a submission
type ReviewDecision string

const (
	DecisionApproved          ReviewDecision = "approved"
	DecisionRejected          ReviewDecision = "rejected"
	DecisionRevisionRequested ReviewDecision = "revision_requested"
)

// IsValid reports whether the decision is a known value
func (d ReviewDecision) IsValid() bool {
	switch d {
	case DecisionApproved, DecisionRejected, DecisionRevisionRequested:
		return true
	default:
		return false
	}
}

// RequiresComments reports whether the decision requires reviewer comments
func (d ReviewDecision) RequiresComments() bool {
	return d == DecisionRejected || d == DecisionRevisionRequested
}

// Review is an append-only audit record of a reviewer's decision on a
// specific submission. Reviews are never mutated or deleted; they always
// reference the submission that was current when the decision was recorded.
type Review struct {
	BaseModel
	SubmissionID uuid.UUID      `gorm:"type:uuid;not null;index:idx_reviews_submission_id" json:"submission_id"`
	DrawingID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_reviews_drawing_id" json:"drawing_id"`
	ReviewerID   uuid.UUID      `gorm:"type:uuid;not null;index:idx_reviews_reviewer_id" json:"reviewer_id"`
	ReviewType   ReviewType     `gorm:"type:varchar(20);not null" json:"review_type"`
	Decision     ReviewDecision `gorm:"type:varchar(30);not null" json:"decision"`
	Comments     string         `gorm:"type:text" json:"comments"`
	ReviewedAt   time.Time      `gorm:"type:timestamp;not null" json:"reviewed_at"`
}

// TableName specifies the table name for Review
func (Review) TableName() string {
	return "reviews"
}
