package service

import (
	"encoding/json"

	"drawing-review-api/internal/client"
	"drawing-review-api/internal/domain"
	"drawing-review-api/internal/dto"
)

// toDrawingResponse converts a drawing to its API representation. The current
// submission is included when it was preloaded.
func toDrawingResponse(drawing *domain.Drawing, s3Client client.S3ClientInterface) *dto.DrawingResponse {
	resp := &dto.DrawingResponse{
		ID:                  drawing.ID,
		ProjectID:           drawing.ProjectID,
		DrawingNumber:       drawing.DrawingNumber,
		Title:               drawing.Title,
		Discipline:          drawing.Discipline,
		Status:              drawing.Status,
		CurrentSubmissionID: drawing.CurrentSubmissionID,
		Version:             drawing.Version,
		CreatedBy:           drawing.CreatedBy,
		CreatedAt:           drawing.CreatedAt,
		UpdatedAt:           drawing.UpdatedAt,
	}

	if len(drawing.CustomFields) > 0 {
		var fields map[string]interface{}
		if err := json.Unmarshal(drawing.CustomFields, &fields); err == nil {
			resp.CustomFields = fields
		}
	}

	if drawing.CurrentSubmission != nil {
		resp.CurrentSubmission = toSubmissionResponse(drawing.CurrentSubmission, s3Client)
	}

	return resp
}

// toSubmissionResponse converts a submission to its API representation
func toSubmissionResponse(submission *domain.Submission, s3Client client.S3ClientInterface) *dto.SubmissionResponse {
	resp := &dto.SubmissionResponse{
		ID:            submission.ID,
		DrawingID:     submission.DrawingID,
		VersionNumber: submission.VersionNumber,
		FileName:      submission.FileName,
		FileSize:      submission.FileSize,
		ContentType:   submission.ContentType,
		Status:        submission.Status,
		Comments:      submission.Comments,
		SubmittedBy:   submission.SubmittedBy,
		SubmittedAt:   submission.SubmittedAt,
	}
	if s3Client != nil {
		resp.FileURL = s3Client.GetFileURL(submission.FileKey)
	}
	return resp
}

// toReviewResponse converts a review to its API representation
func toReviewResponse(review *domain.Review) *dto.ReviewResponse {
	return &dto.ReviewResponse{
		ID:           review.ID,
		SubmissionID: review.SubmissionID,
		DrawingID:    review.DrawingID,
		ReviewerID:   review.ReviewerID,
		ReviewType:   review.ReviewType,
		Decision:     review.Decision,
		Comments:     review.Comments,
		ReviewedAt:   review.ReviewedAt,
	}
}
