// Package dto defines request and response types for the HTTP API.
package dto

import (
	"time"

	"github.com/google/uuid"

	"drawing-review-api/internal/domain"
)

// CreateDrawingRequest is the request body for creating a drawing
type CreateDrawingRequest struct {
	ProjectID     uuid.UUID              `json:"project_id" binding:"required"`
	DrawingNumber string                 `json:"drawing_number" binding:"required"`
	Title         string                 `json:"title" binding:"required"`
	Discipline    string                 `json:"discipline"`
	CustomFields  map[string]interface{} `json:"custom_fields"`
}

// DrawingResponse is the API representation of a drawing
type DrawingResponse struct {
	ID                  uuid.UUID              `json:"id"`
	ProjectID           uuid.UUID              `json:"project_id"`
	DrawingNumber       string                 `json:"drawing_number"`
	Title               string                 `json:"title"`
	Discipline          string                 `json:"discipline"`
	Status              domain.DrawingStatus   `json:"status"`
	CurrentSubmissionID *uuid.UUID             `json:"current_submission_id"`
	Version             int                    `json:"version"`
	CustomFields        map[string]interface{} `json:"custom_fields,omitempty"`
	CreatedBy           uuid.UUID              `json:"created_by"`
	CreatedAt           time.Time              `json:"created_at"`
	UpdatedAt           time.Time              `json:"updated_at"`

	CurrentSubmission *SubmissionResponse `json:"current_submission,omitempty"`
}
