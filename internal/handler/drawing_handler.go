package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"drawing-review-api/internal/dto"
	"drawing-review-api/internal/response"
	"drawing-review-api/internal/service"
)

// DrawingHandler handles drawing-related requests
type DrawingHandler struct {
	drawingService service.DrawingService
}

// NewDrawingHandler creates a new DrawingHandler
func NewDrawingHandler(drawingService service.DrawingService) *DrawingHandler {
	return &DrawingHandler{drawingService: drawingService}
}

// CreateDrawing handles POST /api/drawings
func (h *DrawingHandler) CreateDrawing(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateDrawingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body: "+err.Error())
		return
	}

	drawing, err := h.drawingService.CreateDrawing(c.Request.Context(), &req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, drawing)
}

// GetDrawing handles GET /api/drawings/:drawingId
func (h *DrawingHandler) GetDrawing(c *gin.Context) {
	drawingID, ok := parseUUIDParam(c, "drawingId")
	if !ok {
		return
	}

	drawing, err := h.drawingService.GetDrawing(c.Request.Context(), drawingID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, drawing)
}

// GetDrawingsByProject handles GET /api/projects/:projectId/drawings
func (h *DrawingHandler) GetDrawingsByProject(c *gin.Context) {
	projectID, ok := parseUUIDParam(c, "projectId")
	if !ok {
		return
	}

	drawings, err := h.drawingService.GetDrawingsByProject(c.Request.Context(), projectID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, drawings)
}

// DeleteDrawing handles DELETE /api/drawings/:drawingId
func (h *DrawingHandler) DeleteDrawing(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	drawingID, ok := parseUUIDParam(c, "drawingId")
	if !ok {
		return
	}

	if err := h.drawingService.DeleteDrawing(c.Request.Context(), drawingID, userID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Drawing deleted successfully"})
}
