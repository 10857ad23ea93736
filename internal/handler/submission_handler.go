package handler

import (
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"drawing-review-api/internal/dto"
	"drawing-review-api/internal/response"
	"drawing-review-api/internal/service"
)

// MaxFileSize defines the maximum allowed drawing file size (100MB)
const MaxFileSize = 100 * 1024 * 1024

var (
	// AllowedContentTypes covers drawing exchange formats and scanned sheets
	AllowedContentTypes = map[string]bool{
		"application/pdf":          true,
		"application/acad":         true, // .dwg
		"image/vnd.dwg":            true,
		"image/vnd.dxf":            true,
		"application/dxf":          true,
		"application/octet-stream": true, // CAD exports without a registered type
		"image/jpeg":               true,
		"image/png":                true,
		"image/tiff":               true,
	}

	AllowedExtensions = map[string]bool{
		".pdf":  true,
		".dwg":  true,
		".dxf":  true,
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".tif":  true,
		".tiff": true,
	}
)

// SubmissionHandler handles submission-related requests
type SubmissionHandler struct {
	submissionService service.SubmissionService
}

// NewSubmissionHandler creates a new SubmissionHandler
func NewSubmissionHandler(submissionService service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

// validateSubmissionFile checks size, extension and content type before any
// upload happens
func validateSubmissionFile(fileName string, fileSize int64, contentType string) error {
	if fileSize <= 0 {
		return response.NewValidationError("File is empty")
	}
	if fileSize > MaxFileSize {
		return response.NewValidationError("File exceeds the maximum size of 100MB")
	}

	ext := strings.ToLower(path.Ext(fileName))
	if !AllowedExtensions[ext] {
		return response.NewValidationError("File type is not allowed: " + ext)
	}

	if contentType != "" && !AllowedContentTypes[contentType] {
		return response.NewValidationError("Content type is not allowed: " + contentType)
	}

	return nil
}

// Submit handles POST /api/drawings/:drawingId/submissions.
// Expects multipart form data with a "file" part and an optional "comments"
// field.
func (h *SubmissionHandler) Submit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	drawingID, ok := parseUUIDParam(c, "drawingId")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Missing file")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if err := validateSubmissionFile(fileHeader.Filename, fileHeader.Size, contentType); err != nil {
		handleServiceError(c, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Failed to read file")
		return
	}
	defer file.Close()

	submission, err := h.submissionService.Submit(c.Request.Context(), &dto.SubmitRequest{
		DrawingID:   drawingID,
		File:        file,
		FileName:    fileHeader.Filename,
		FileSize:    fileHeader.Size,
		ContentType: contentType,
		Comments:    c.PostForm("comments"),
		SubmittedBy: userID,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, submission)
}

// GetSubmission handles GET /api/submissions/:submissionId
func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	submissionID, ok := parseUUIDParam(c, "submissionId")
	if !ok {
		return
	}

	submission, err := h.submissionService.GetSubmission(c.Request.Context(), submissionID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, submission)
}

// GetSubmissionByVersion handles GET /api/drawings/:drawingId/submissions/:versionNumber
func (h *SubmissionHandler) GetSubmissionByVersion(c *gin.Context) {
	drawingID, ok := parseUUIDParam(c, "drawingId")
	if !ok {
		return
	}

	version, err := strconv.Atoi(c.Param("versionNumber"))
	if err != nil || version < 1 {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid versionNumber")
		return
	}

	submission, err := h.submissionService.GetSubmissionByVersion(c.Request.Context(), drawingID, version)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, submission)
}

// GetSubmissionHistory handles GET /api/drawings/:drawingId/submissions
func (h *SubmissionHandler) GetSubmissionHistory(c *gin.Context) {
	drawingID, ok := parseUUIDParam(c, "drawingId")
	if !ok {
		return
	}

	history, err := h.submissionService.GetSubmissionHistory(c.Request.Context(), drawingID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, history)
}
