package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"drawing-review-api/internal/dto"
	"drawing-review-api/internal/response"
	"drawing-review-api/internal/service"
)

// ReviewHandler handles review-related requests
type ReviewHandler struct {
	reviewService service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// Review handles POST /api/drawings/:drawingId/reviews
func (h *ReviewHandler) Review(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	drawingID, ok := parseUUIDParam(c, "drawingId")
	if !ok {
		return
	}

	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body: "+err.Error())
		return
	}

	outcome, err := h.reviewService.Review(c.Request.Context(), drawingID, userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, outcome)
}

// OpenClientReview handles POST /api/drawings/:drawingId/open-client-review
func (h *ReviewHandler) OpenClientReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	drawingID, ok := parseUUIDParam(c, "drawingId")
	if !ok {
		return
	}

	drawing, err := h.reviewService.OpenClientReview(c.Request.Context(), drawingID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, drawing)
}

// GetReviews handles GET /api/drawings/:drawingId/reviews
func (h *ReviewHandler) GetReviews(c *gin.Context) {
	drawingID, ok := parseUUIDParam(c, "drawingId")
	if !ok {
		return
	}

	reviews, err := h.reviewService.GetReviews(c.Request.Context(), drawingID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, reviews)
}

// GetSubmissionReviews handles GET /api/submissions/:submissionId/reviews
func (h *ReviewHandler) GetSubmissionReviews(c *gin.Context) {
	submissionID, ok := parseUUIDParam(c, "submissionId")
	if !ok {
		return
	}

	reviews, err := h.reviewService.GetSubmissionReviews(c.Request.Context(), submissionID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, reviews)
}
