package dto

import (
	"io"
	"time"

	"github.com/google/uuid"

	"drawing-review-api/internal/domain"
)

// SubmitRequest carries one drawing file submission into the workflow
type SubmitRequest struct {
	DrawingID   uuid.UUID
	File        io.Reader
	FileName    string
	FileSize    int64
	ContentType string
	Comments    string
	SubmittedBy uuid.UUID
}

// SubmissionResponse is the API representation of a submission
type SubmissionResponse struct {
	ID            uuid.UUID               `json:"id"`
	DrawingID     uuid.UUID               `json:"drawing_id"`
	VersionNumber int                     `json:"version_number"`
	FileName      string                  `json:"file_name"`
	FileURL       string                  `json:"file_url"`
	FileSize      int64                   `json:"file_size"`
	ContentType   string                  `json:"content_type"`
	Status        domain.SubmissionStatus `json:"status"`
	Comments      string                  `json:"comments,omitempty"`
	SubmittedBy   uuid.UUID               `json:"submitted_by"`
	SubmittedAt   time.Time               `json:"submitted_at"`
}
