package dto

import (
	"time"

	"github.com/google/uuid"

	"drawing-review-api/internal/domain"
)

// ReviewRequest records one reviewer decision against the current submission
type ReviewRequest struct {
	ReviewType domain.ReviewType     `json:"review_type" binding:"required"`
	Decision   domain.ReviewDecision `json:"decision" binding:"required"`
	Comments   string                `json:"comments"`
}

// ReviewResponse is the API representation of a recorded review
type ReviewResponse struct {
	ID           uuid.UUID             `json:"id"`
	SubmissionID uuid.UUID             `json:"submission_id"`
	DrawingID    uuid.UUID             `json:"drawing_id"`
	ReviewerID   uuid.UUID             `json:"reviewer_id"`
	ReviewType   domain.ReviewType     `json:"review_type"`
	Decision     domain.ReviewDecision `json:"decision"`
	Comments     string                `json:"comments,omitempty"`
	ReviewedAt   time.Time             `json:"reviewed_at"`
}

// ReviewOutcomeResponse bundles the recorded review with the resulting
// drawing state so callers see both in one round trip
type ReviewOutcomeResponse struct {
	Review  *ReviewResponse  `json:"review"`
	Drawing *DrawingResponse `json:"drawing"`
}
